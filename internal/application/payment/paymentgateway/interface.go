package paymentgateway

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/payrelay/internal/domain/payment/valueobjects"
)

// PaymentGateway defines the interface for hosted payment page providers.
// Exactly one implementation is selected at startup.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResponse, error)
	Provider() vo.Provider
}

// WebhookVerifier authenticates an inbound provider webhook from its headers
// and raw body. A non-nil error rejects the webhook.
type WebhookVerifier interface {
	VerifyCallback(headers http.Header, rawBody []byte) error
}

// CreatePaymentRequest contains the data needed to create a payment
type CreatePaymentRequest struct {
	OrderID   string
	Amount    decimal.Decimal
	Currency  string
	ClientID  string
	ReturnURL string
	// CallbackURL is where the provider sends status webhooks.
	CallbackURL string
}

type CreatePaymentResponse struct {
	PaymentURL        string
	ProviderReference string
	ProviderStatus    string
}
