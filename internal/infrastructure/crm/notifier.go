// Package crm forwards normalized payment callbacks to the CRM.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/orris-inc/payrelay/internal/domain/payment"
	"github.com/orris-inc/payrelay/internal/shared/errors"
	"github.com/orris-inc/payrelay/internal/shared/logger"
	"github.com/orris-inc/payrelay/internal/shared/utils/jsonutil"
	"github.com/orris-inc/payrelay/internal/shared/utils/logutil"
)

const (
	// PayTokenHeader carries the shared secret in both directions.
	PayTokenHeader = "crm-pay-token"

	callbackPath   = "/pay/callback"
	defaultTimeout = 10 * time.Second
	// Maximum CRM response body size (1MB)
	maxResponseSize = 1 << 20

	MsgNotifyFailed  = "Failed to notify CRM"
	MsgNetworkFailed = "Failed to notify CRM - network error"
)

type Config struct {
	CallbackURL string
	PayToken    string
	Timeout     time.Duration
}

// Notifier posts callbacks to {CallbackURL}/pay/callback. There is no retry:
// a failed forward is reported to the PSP, which owns redelivery.
type Notifier struct {
	httpClient *http.Client
	config     Config
	logger     logger.Interface
}

func NewNotifier(config Config, logger logger.Interface) *Notifier {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Notifier{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: config,
		logger: logger,
	}
}

// Enabled reports whether a CRM endpoint is configured.
func (n *Notifier) Enabled() bool {
	return n.config.CallbackURL != ""
}

// Notify sends cb and returns the CRM's response body, decoded as JSON when
// possible and as text otherwise.
func (n *Notifier) Notify(ctx context.Context, cb payment.CanonicalCallback) (any, error) {
	body, err := json.Marshal(cb)
	if err != nil {
		return nil, fmt.Errorf("failed to encode callback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.config.CallbackURL+callbackPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(PayTokenHeader, n.config.PayToken)

	start := time.Now()
	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Errorw("crm callback request failed",
			"order_id", cb.MerchantReference,
			"error", err,
			"duration", time.Since(start),
		)
		return nil, errors.NewUpstreamUnreachableError(MsgNetworkFailed, err.Error()).WithCause(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.NewUpstreamUnreachableError(MsgNetworkFailed, err.Error()).WithCause(err)
	}
	crmResponse := jsonutil.DecodeOrText(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Errorw("crm rejected callback",
			"order_id", cb.MerchantReference,
			"status", resp.StatusCode,
			"body", logutil.SanitizeBody(crmResponse),
			"duration", time.Since(start),
		)
		return nil, errors.NewUpstreamRejectionError(MsgNotifyFailed, resp.StatusCode, crmResponse)
	}

	n.logger.Infow("crm callback delivered",
		"order_id", cb.MerchantReference,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return crmResponse, nil
}
