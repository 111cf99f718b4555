package payment

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/payrelay/internal/domain/payment/valueobjects"
)

// CanonicalCallback is the body POSTed to the CRM's callback endpoint.
// MerchantReference carries the order id issued at session creation.
type CanonicalCallback struct {
	Amount            decimal.Decimal
	Currency          string
	Status            vo.CallbackStatus
	MerchantReference string
	TransactionID     string
	ClientID          string
	ExchangeRate      *decimal.Decimal
}

type canonicalCallbackJSON struct {
	Amount            json.Number       `json:"amount"`
	Currency          string            `json:"currency"`
	Status            vo.CallbackStatus `json:"status"`
	MerchantReference string            `json:"merchant_reference"`
	TransactionID     string            `json:"transaction_id"`
	ClientID          string            `json:"client_id"`
	ExchangeRate      *json.Number      `json:"exchange_rate,omitempty"`
}

// MarshalJSON writes decimals as JSON numbers, not strings.
func (c CanonicalCallback) MarshalJSON() ([]byte, error) {
	out := canonicalCallbackJSON{
		Amount:            json.Number(c.Amount.String()),
		Currency:          c.Currency,
		Status:            c.Status,
		MerchantReference: c.MerchantReference,
		TransactionID:     c.TransactionID,
		ClientID:          c.ClientID,
	}
	if c.ExchangeRate != nil {
		rate := json.Number(c.ExchangeRate.String())
		out.ExchangeRate = &rate
	}
	return json.Marshal(out)
}

// LogFields returns the callback as structured log attributes.
func (c CanonicalCallback) LogFields() []any {
	fields := []any{
		"order_id", c.MerchantReference,
		"transaction_id", c.TransactionID,
		"status", c.Status,
		"amount", c.Amount.String(),
		"currency", c.Currency,
		"client_id", c.ClientID,
	}
	if c.ExchangeRate != nil {
		fields = append(fields, "exchange_rate", c.ExchangeRate.String())
	}
	return fields
}
