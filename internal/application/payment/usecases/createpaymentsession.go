package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/payrelay/internal/application/payment/paymentgateway"
	"github.com/orris-inc/payrelay/internal/domain/payment"
	"github.com/orris-inc/payrelay/internal/shared/errors"
	"github.com/orris-inc/payrelay/internal/shared/id"
	"github.com/orris-inc/payrelay/internal/shared/logger"
	"github.com/orris-inc/payrelay/internal/shared/utils/logutil"
)

type CreatePaymentSessionUseCase struct {
	gateway     paymentgateway.PaymentGateway
	callbackURL string
	logger      logger.Interface
}

// NewCreatePaymentSessionUseCase wires the gateway selected at startup.
// callbackURL is this relay's public webhook endpoint.
func NewCreatePaymentSessionUseCase(
	gateway paymentgateway.PaymentGateway,
	callbackURL string,
	logger logger.Interface,
) *CreatePaymentSessionUseCase {
	return &CreatePaymentSessionUseCase{
		gateway:     gateway,
		callbackURL: callbackURL,
		logger:      logger,
	}
}

// Execute mints a fresh order id and asks the gateway for a payment page.
// The order id exists before the gateway call so failures can be traced.
func (uc *CreatePaymentSessionUseCase) Execute(ctx context.Context, req payment.SessionRequest) (*payment.SessionResult, error) {
	orderID := id.NewOrderID()
	provider := uc.gateway.Provider()

	resp, err := uc.gateway.CreatePayment(ctx, paymentgateway.CreatePaymentRequest{
		OrderID:     orderID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		ClientID:    req.ClientID,
		ReturnURL:   req.ReturnURL,
		CallbackURL: uc.callbackURL,
	})
	if err != nil {
		uc.logger.Errorw("failed to create payment session",
			"order_id", orderID,
			"provider", provider,
			"error_type", errors.TypeOf(err),
			"upstream", errors.IsUpstreamError(err),
			"error", err,
		)
		return nil, fmt.Errorf("failed to create payment session %s: %w", orderID, err)
	}

	uc.logger.Infow("payment session created",
		"order_id", orderID,
		"provider", provider,
		"amount", req.Amount.String(),
		"currency", req.Currency,
		"client_id", req.ClientID,
		"live", provider.IsLive(),
		"custom_return_url", req.HasReturnURL(),
		"metadata", logutil.Sanitize(req.Metadata),
	)

	return &payment.SessionResult{
		PaymentURL:        resp.PaymentURL,
		OrderID:           orderID,
		Provider:          provider,
		ProviderReference: resp.ProviderReference,
		ProviderStatus:    resp.ProviderStatus,
	}, nil
}
