package handlers

import (
	"context"

	"github.com/orris-inc/payrelay/internal/application/payment/usecases"
	"github.com/orris-inc/payrelay/internal/domain/payment"
)

// Use case interfaces for PaymentHandler

type createPaymentSessionUseCase interface {
	Execute(ctx context.Context, req payment.SessionRequest) (*payment.SessionResult, error)
}

type relayWebhookUseCase interface {
	Execute(ctx context.Context, cmd usecases.RelayWebhookCommand) (*usecases.RelayOutcome, error)
}
