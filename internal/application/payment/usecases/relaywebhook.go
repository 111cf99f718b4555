package usecases

import (
	"context"
	"fmt"
	"net/http"

	"github.com/orris-inc/payrelay/internal/application/payment/paymentgateway"
	"github.com/orris-inc/payrelay/internal/application/payment/validation"
	"github.com/orris-inc/payrelay/internal/domain/payment"
	"github.com/orris-inc/payrelay/internal/shared/errors"
	"github.com/orris-inc/payrelay/internal/shared/logger"
)

const (
	MsgInvalidSignature = "Invalid PSP signature."
	MsgSimulatedForward = "CRM callback URL not configured - simulated success"
)

// CRMNotifier delivers canonical callbacks to the CRM.
type CRMNotifier interface {
	Enabled() bool
	Notify(ctx context.Context, cb payment.CanonicalCallback) (any, error)
}

// RelayWebhookCommand is one inbound webhook delivery. Body is the decoded
// JSON value (numbers as json.Number); RawBody is kept for signature checks.
type RelayWebhookCommand struct {
	Body    any
	RawBody []byte
	Headers http.Header
}

// RelayOutcome is the successful result of a relay. Forwarded is false when
// no CRM endpoint is configured and delivery was simulated.
type RelayOutcome struct {
	OrderID     string
	Callback    payment.CanonicalCallback
	Forwarded   bool
	CRMResponse any
}

type RelayWebhookUseCase struct {
	verifier paymentgateway.WebhookVerifier
	notifier CRMNotifier
	logger   logger.Interface
}

func NewRelayWebhookUseCase(
	verifier paymentgateway.WebhookVerifier,
	notifier CRMNotifier,
	logger logger.Interface,
) *RelayWebhookUseCase {
	return &RelayWebhookUseCase{
		verifier: verifier,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute runs validate, verify, normalize and forward in order and stops at
// the first failure. Each delivery is forwarded independently; duplicates are
// not detected.
func (uc *RelayWebhookUseCase) Execute(ctx context.Context, cmd RelayWebhookCommand) (*RelayOutcome, error) {
	envelope, err := validation.ValidateCallbackRequest(cmd.Body)
	if err != nil {
		uc.logger.Warnw("rejected malformed webhook", "body_size", len(cmd.RawBody))
		return nil, err
	}

	if err := uc.verifier.VerifyCallback(cmd.Headers, cmd.RawBody); err != nil {
		uc.logger.Warnw("webhook signature rejected", "error", err)
		return nil, errors.NewUnauthorizedError(MsgInvalidSignature).WithCause(err)
	}

	cb := payment.Normalize(envelope)
	uc.logger.Infow("webhook normalized", append(cb.LogFields(), "final", cb.Status.IsFinal())...)

	outcome := &RelayOutcome{
		OrderID:  cb.MerchantReference,
		Callback: cb,
	}

	if !uc.notifier.Enabled() {
		uc.logger.Warnw("crm callback url not configured, simulating delivery", "order_id", cb.MerchantReference)
		return outcome, nil
	}

	// The forward is bounded by the notifier timeout only; a caller hanging
	// up does not retract a callback already being delivered.
	crmResponse, err := uc.notifier.Notify(context.WithoutCancel(ctx), cb)
	if err != nil {
		uc.logger.Errorw("failed to forward webhook to crm",
			"order_id", cb.MerchantReference,
			"error_type", errors.TypeOf(err),
			"error", err,
		)
		return nil, fmt.Errorf("failed to forward callback for order %s: %w", cb.MerchantReference, err)
	}

	outcome.Forwarded = true
	outcome.CRMResponse = crmResponse
	return outcome, nil
}
