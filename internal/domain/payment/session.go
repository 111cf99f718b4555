package payment

import (
	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/payrelay/internal/domain/payment/valueobjects"
)

// SessionRequest is a validated request from the CRM for a hosted payment page.
// It lives for the duration of one call and is never stored.
type SessionRequest struct {
	Amount    decimal.Decimal
	Currency  string
	ClientID  string
	ReturnURL string
	Metadata  map[string]any
}

// HasReturnURL reports whether the caller asked for a specific redirect.
func (r SessionRequest) HasReturnURL() bool {
	return r.ReturnURL != ""
}

// SessionResult is what the CRM gets back. OrderID is minted by the relay
// and later comes back from the PSP as the webhook's tracking id.
type SessionResult struct {
	PaymentURL        string
	OrderID           string
	Provider          vo.Provider
	ProviderReference string
	ProviderStatus    string
}
