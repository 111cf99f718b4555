// Package coinsbuy is the live payment gateway backed by the Coinsbuy
// deposit API.
package coinsbuy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/orris-inc/payrelay/internal/application/payment/paymentgateway"
	vo "github.com/orris-inc/payrelay/internal/domain/payment/valueobjects"
	"github.com/orris-inc/payrelay/internal/shared/errors"
	"github.com/orris-inc/payrelay/internal/shared/logger"
	"github.com/orris-inc/payrelay/internal/shared/utils/jsonutil"
	"github.com/orris-inc/payrelay/internal/shared/utils/logutil"
)

const (
	defaultTimeout = 10 * time.Second
	// Maximum response body size read from the deposit API (1MB)
	maxResponseSize = 1 << 20

	msgProviderRejected    = "Payment provider rejected the request"
	msgProviderUnreachable = "Payment provider unreachable"
)

// Config holds everything the gateway needs to create deposits.
type Config struct {
	BaseURL      string
	AuthToken    string
	WalletID     int
	Label        string
	ButtonText   string
	DashboardURL string
	Timeout      time.Duration
}

// Gateway creates hosted deposit pages through Coinsbuy.
type Gateway struct {
	httpClient *http.Client
	config     Config
	logger     logger.Interface
}

// NewGateway creates a new Coinsbuy payment gateway
func NewGateway(config Config, logger logger.Interface) *Gateway {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gateway{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: config,
		logger: logger,
	}
}

// Ensure Gateway implements PaymentGateway
var _ paymentgateway.PaymentGateway = (*Gateway)(nil)

func (g *Gateway) Provider() vo.Provider {
	return vo.ProviderCoinsbuy
}

// CreatePayment posts a deposit and returns its hosted page. Non-2xx answers
// become upstream rejections; transport failures become upstream unreachable.
func (g *Gateway) CreatePayment(ctx context.Context, req paymentgateway.CreatePaymentRequest) (*paymentgateway.CreatePaymentResponse, error) {
	redirectURL := req.ReturnURL
	if redirectURL == "" {
		redirectURL = g.config.DashboardURL
	}

	payload := depositRequest{
		Data: depositRequestData{
			Type: depositResourceType,
			Attributes: depositAttributes{
				Label:                  g.config.Label,
				TrackingID:             req.OrderID,
				TargetAmountRequested:  req.Amount.String(),
				ConfirmationsNeeded:    confirmationsNeeded,
				CallbackURL:            req.CallbackURL,
				PaymentPageRedirectURL: redirectURL,
				PaymentPageButtonText:  g.config.ButtonText,
			},
			Relationships: depositRelationships{
				Wallet: relationship{
					Data: resourceIdentifier{Type: walletResourceType, ID: g.config.WalletID},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode deposit request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL+"/deposit/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.config.AuthToken)
	httpReq.Header.Set("Content-Type", jsonAPIContentType)
	httpReq.Header.Set("Accept", jsonAPIContentType)

	g.logger.Infow("creating coinsbuy deposit",
		"order_id", req.OrderID,
		"amount", req.Amount.String(),
		"currency", req.Currency,
		"client_id", req.ClientID,
	)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		g.logger.Errorw("coinsbuy request failed", "order_id", req.OrderID, "error", err)
		return nil, errors.NewUpstreamUnreachableError(msgProviderUnreachable, err.Error()).WithCause(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.NewUpstreamUnreachableError(msgProviderUnreachable, err.Error()).WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody := jsonutil.DecodeOrText(raw)
		g.logger.Errorw("coinsbuy rejected deposit",
			"order_id", req.OrderID,
			"status", resp.StatusCode,
			"body", logutil.SanitizeBody(respBody),
		)
		return nil, errors.NewUpstreamRejectionError(msgProviderRejected, resp.StatusCode, jsonutil.MessageOf(respBody))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var deposit depositResponse
	if err := dec.Decode(&deposit); err != nil {
		return nil, fmt.Errorf("failed to decode deposit response: %w", err)
	}
	if deposit.Data.Attributes.PaymentURL == "" {
		return nil, fmt.Errorf("deposit response has no payment_url (status %d)", resp.StatusCode)
	}

	result := &paymentgateway.CreatePaymentResponse{
		PaymentURL:        deposit.Data.Attributes.PaymentURL,
		ProviderReference: jsonutil.ScalarText(deposit.Data.ID),
		ProviderStatus:    jsonutil.ScalarText(deposit.Data.Attributes.Status),
	}

	g.logger.Infow("coinsbuy deposit created",
		"order_id", req.OrderID,
		"deposit_id", result.ProviderReference,
		"provider_status", result.ProviderStatus,
	)

	return result, nil
}
