package payment

import (
	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/payrelay/internal/domain/payment/valueobjects"
)

const (
	defaultCallbackCurrency = "USD"
	unknownClientID         = "unknown"
)

// Normalize translates a Coinsbuy deposit webhook into the CRM callback schema.
// Every field has a fallback; Normalize never fails on a JSON object.
func Normalize(envelope WebhookEnvelope) CanonicalCallback {
	data := envelope.Data()
	attrs := envelope.Attributes()

	cb := CanonicalCallback{
		Amount:   normalizeAmount(attrs),
		Currency: defaultCallbackCurrency,
		Status:   vo.MapProviderStatus(statusOf(attrs)),
		ClientID: unknownClientID,
	}

	if currency, ok := stringField(attrs, "currency"); ok {
		cb.Currency = currency
	}

	transactionID, _ := stringField(data, "id")
	cb.TransactionID = transactionID

	if trackingID, ok := stringField(attrs, "tracking_id"); ok {
		cb.MerchantReference = trackingID
	} else {
		cb.MerchantReference = transactionID
	}

	if clientID, ok := stringField(attrs, "client_id"); ok {
		cb.ClientID = clientID
	}

	if rate, present, ok := decimalField(attrs, "exchange_rate"); present && ok {
		cb.ExchangeRate = &rate
	}

	return cb
}

// normalizeAmount prefers the requested target amount over the paid amount.
// Non-numeric input becomes zero.
func normalizeAmount(attrs map[string]any) decimal.Decimal {
	for _, key := range []string{"target_amount_requested", "amount"} {
		if value, present, _ := decimalField(attrs, key); present {
			return value
		}
	}
	return decimal.Zero
}

func statusOf(attrs map[string]any) string {
	status, _ := attrs["status"].(string)
	return status
}
