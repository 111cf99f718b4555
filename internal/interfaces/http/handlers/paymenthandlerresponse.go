package handlers

import "github.com/orris-inc/payrelay/internal/domain/payment"

const callbackStatusSuccess = "success"

type PaymentURLResponse struct {
	PaymentURL string `json:"payment_url"`
	OrderID    string `json:"order_id"`
	Provider   string `json:"provider"`
}

func toPaymentURLResponse(result *payment.SessionResult) PaymentURLResponse {
	return PaymentURLResponse{
		PaymentURL: result.PaymentURL,
		OrderID:    result.OrderID,
		Provider:   result.Provider.String(),
	}
}

// CallbackForwardedResponse is returned once the CRM accepted the callback.
type CallbackForwardedResponse struct {
	Status      string `json:"status"`
	OrderID     string `json:"order_id"`
	CRMResponse any    `json:"crm_response"`
}

// CallbackSimulatedResponse is returned when no CRM endpoint is configured.
type CallbackSimulatedResponse struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}
