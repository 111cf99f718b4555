package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/payrelay/internal/application/payment/usecases"
	"github.com/orris-inc/payrelay/internal/application/payment/validation"
	"github.com/orris-inc/payrelay/internal/shared/errors"
	"github.com/orris-inc/payrelay/internal/shared/logger"
	"github.com/orris-inc/payrelay/internal/shared/utils"
)

// PayTokenHeader carries the CRM's shared secret.
const PayTokenHeader = "crm-pay-token"

type PaymentHandler struct {
	createSessionUC createPaymentSessionUseCase
	relayWebhookUC  relayWebhookUseCase
	payToken        string
	logger          logger.Interface
}

func NewPaymentHandler(
	createSessionUC createPaymentSessionUseCase,
	relayWebhookUC relayWebhookUseCase,
	payToken string,
	logger logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		createSessionUC: createSessionUC,
		relayWebhookUC:  relayWebhookUC,
		payToken:        payToken,
		logger:          logger,
	}
}

// @Summary		Create payment URL
// @Description	Create a hosted payment page for a CRM deposit
// @Tags			payments
// @Accept			json
// @Produce		json
// @Param			crm-pay-token	header		string				true	"CRM shared secret"
// @Success		200				{object}	PaymentURLResponse
// @Failure		400				{object}	utils.ErrorBody	"Missing or invalid field"
// @Failure		401				{object}	utils.ErrorBody	"Invalid token"
// @Failure		500				{object}	utils.ErrorBody	"Provider or internal failure"
// @Router			/api/pay/url [post]
func (h *PaymentHandler) CreatePaymentURL(c *gin.Context) {
	utils.WriteReply(c, h.createPaymentURL(c.Request.Context(), c.Request.Header, c.Request.Body))
}

func (h *PaymentHandler) createPaymentURL(ctx context.Context, headers http.Header, body io.Reader) utils.Reply {
	if err := validation.Authenticate(headers.Get(PayTokenHeader), h.payToken, h.logger); err != nil {
		h.logger.Warnw("payment url request rejected", "reason", "invalid crm pay token")
		return utils.ErrorReply(err)
	}

	_, decoded, err := readJSONBody(body)
	if err != nil {
		h.logger.Warnw("failed to read payment url request", "error", err)
		return utils.ErrorReply(errors.NewBadRequestError(validation.MsgInvalidPayload))
	}

	// A non-object body has none of the required fields.
	fields, _ := decoded.(map[string]any)
	req, err := validation.ValidateSessionRequest(fields)
	if err != nil {
		h.logger.Warnw("invalid payment url request", "error", err)
		return utils.ErrorReply(err)
	}

	result, err := h.createSessionUC.Execute(ctx, *req)
	if err != nil {
		// Provider failures are reported to the CRM as a plain 500.
		h.logger.Errorw("failed to create payment url",
			"error_type", errors.TypeOf(err),
			"error", err,
		)
		return utils.ErrorReply(errors.NewInternalError("failed to create payment url").WithCause(err))
	}

	return utils.OK(toPaymentURLResponse(result))
}

// @Summary		Payment provider webhook
// @Description	Normalize a provider deposit webhook and forward it to the CRM
// @Tags			payments
// @Accept			json
// @Produce		json
// @Param			x-coinsbuy-signature	header		string	false	"Provider signature"
// @Success		200						{object}	CallbackForwardedResponse
// @Failure		400						{object}	utils.ErrorBody	"Body is not a JSON object"
// @Failure		401						{object}	utils.ErrorBody	"Signature rejected"
// @Failure		502						{object}	utils.ErrorBody	"CRM rejected or unreachable"
// @Router			/api/pay/callback [post]
func (h *PaymentHandler) HandleCallback(c *gin.Context) {
	utils.WriteReply(c, h.handleCallback(c.Request.Context(), c.Request.Header, c.Request.Body))
}

func (h *PaymentHandler) handleCallback(ctx context.Context, headers http.Header, body io.Reader) utils.Reply {
	raw, decoded, err := readJSONBody(body)
	if err != nil {
		h.logger.Warnw("failed to read webhook body", "error", err)
		return utils.ErrorReply(errors.NewBadRequestError(validation.MsgInvalidPayload))
	}

	outcome, err := h.relayWebhookUC.Execute(ctx, usecases.RelayWebhookCommand{
		Body:    decoded,
		RawBody: raw,
		Headers: headers,
	})
	if err != nil {
		switch {
		case errors.IsValidationError(err), errors.TypeOf(err) == errors.ErrorTypeUnauthorized:
			h.logger.Warnw("webhook rejected", "error", err)
		case errors.IsUpstreamError(err):
			h.logger.Errorw("webhook relay to crm failed", "error", err)
		}
		return utils.ErrorReply(err)
	}

	if !outcome.Forwarded {
		return utils.OK(CallbackSimulatedResponse{
			Status:  callbackStatusSuccess,
			OrderID: outcome.OrderID,
			Message: usecases.MsgSimulatedForward,
		})
	}

	return utils.OK(CallbackForwardedResponse{
		Status:      callbackStatusSuccess,
		OrderID:     outcome.OrderID,
		CRMResponse: outcome.CRMResponse,
	})
}
