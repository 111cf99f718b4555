// Package validation checks inbound CRM and PSP requests before any outbound
// call is made. Every failure is an *errors.AppError ready to be rendered.
package validation

import (
	"crypto/subtle"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/payrelay/internal/domain/payment"
	"github.com/orris-inc/payrelay/internal/shared/errors"
	"github.com/orris-inc/payrelay/internal/shared/logger"
	"github.com/orris-inc/payrelay/internal/shared/utils"
)

const (
	MsgUnauthorized   = "Unauthorized: Invalid token."
	MsgMissingFields  = "Missing required fields: "
	MsgInvalidAmount  = "Invalid amount: must be a positive number"
	MsgInvalidCurr    = "Invalid currency: must be a 3-4 character uppercase code"
	MsgInvalidClient  = "Invalid client_id: must be a non-empty string (max 100 characters)"
	MsgInvalidReturn  = "Invalid return_url: must be a valid URL"
	MsgInvalidPayload = "Invalid payload: must be a JSON object"
)

var requiredSessionFields = []string{"amount", "currency", "client_id"}

// sessionFields carries the string rules checked by the shared validator.
// Declaration order is the order errors are reported in.
type sessionFields struct {
	Currency  string `json:"currency" validate:"currency_code"`
	ClientID  string `json:"client_id" validate:"required,max=100"`
	ReturnURL string `json:"return_url" validate:"omitempty,url"`
}

var fieldMessages = map[string]string{
	"currency":   MsgInvalidCurr,
	"client_id":  MsgInvalidClient,
	"return_url": MsgInvalidReturn,
}

// ValidateSessionRequest checks a decoded /api/pay/url body and converts it
// into a SessionRequest. Checks run in a fixed order and stop at the first
// failure: missing fields, amount, currency, client_id, return_url.
func ValidateSessionRequest(body map[string]any) (*payment.SessionRequest, error) {
	var missing []string
	for _, name := range requiredSessionFields {
		if isBlank(body[name]) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewValidationError(MsgMissingFields + strings.Join(missing, ", "))
	}

	amount, ok := parseAmount(body["amount"])
	if !ok || !amount.IsPositive() || !payment.InAmountRange(amount) {
		return nil, errors.NewBadRequestError(MsgInvalidAmount)
	}

	fields := sessionFields{
		Currency:  stringOrEmpty(body["currency"]),
		ClientID:  stringOrEmpty(body["client_id"]),
		ReturnURL: stringOrEmpty(body["return_url"]),
	}
	if fe := utils.FirstFieldError(fields); fe != nil {
		return nil, errors.NewBadRequestError(fieldMessages[fe.Field()])
	}
	if !isBlank(body["return_url"]) && fields.ReturnURL == "" {
		return nil, errors.NewBadRequestError(MsgInvalidReturn)
	}

	req := &payment.SessionRequest{
		Amount:    amount,
		Currency:  fields.Currency,
		ClientID:  fields.ClientID,
		ReturnURL: fields.ReturnURL,
	}
	if metadata, ok := body["metadata"].(map[string]any); ok {
		req.Metadata = metadata
	}
	return req, nil
}

// ValidateCallbackRequest accepts any JSON object. The relay is tolerant of
// provider schema changes, so no inner field is required.
func ValidateCallbackRequest(body any) (payment.WebhookEnvelope, error) {
	obj, ok := body.(map[string]any)
	if !ok || obj == nil {
		return nil, errors.NewBadRequestError(MsgInvalidPayload)
	}
	return payment.WebhookEnvelope(obj), nil
}

// Authenticate compares the caller's token with the configured secret.
// An unset secret rejects every request.
func Authenticate(provided, expected string, log logger.Interface) error {
	if expected == "" {
		log.Warnw("crm pay token is not configured, rejecting request")
		return errors.NewUnauthorizedError(MsgUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		return errors.NewUnauthorizedError(MsgUnauthorized)
	}
	return nil
}

func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	default:
		return false
	}
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}

// parseAmount accepts JSON numbers and numeric strings.
func parseAmount(v any) (decimal.Decimal, bool) {
	var text string
	switch val := v.(type) {
	case json.Number:
		text = val.String()
	case string:
		text = strings.TrimSpace(val)
	case float64:
		return decimal.NewFromFloat(val), true
	default:
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
