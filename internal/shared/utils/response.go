package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/payrelay/internal/shared/errors"
)

// InternalErrorMessage is the only thing a caller ever sees for unexpected failures.
const InternalErrorMessage = "Internal Server Error."

// ErrorBody is the flat error shape the CRM integration expects.
type ErrorBody struct {
	Error  string `json:"error"`
	Detail any    `json:"detail,omitempty"`
	Status int    `json:"status,omitempty"`
}

// Reply is a complete HTTP answer built by a handler and written once by the
// gin adapter.
type Reply struct {
	StatusCode int
	Body       any
}

// OK builds a 200 reply.
func OK(body any) Reply {
	return Reply{StatusCode: http.StatusOK, Body: body}
}

// ErrorReply builds the reply for err, see ErrorBodyFor.
func ErrorReply(err error) Reply {
	statusCode, body := ErrorBodyFor(err)
	return Reply{StatusCode: statusCode, Body: body}
}

// WriteReply writes r as JSON.
func WriteReply(c *gin.Context, r Reply) {
	c.JSON(r.StatusCode, r.Body)
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// ErrorBodyFor maps err to a status code and body. Upstream rejections echo
// the downstream status and body; non-AppErrors never leak their message.
func ErrorBodyFor(err error) (int, ErrorBody) {
	appErr := errors.GetAppError(err)
	if appErr == nil || appErr.Type == errors.ErrorTypeInternal {
		return http.StatusInternalServerError, ErrorBody{Error: InternalErrorMessage}
	}

	body := ErrorBody{Error: appErr.Message}
	switch appErr.Type {
	case errors.ErrorTypeUpstreamRejection:
		// detail is always present on rejections, even for an empty body
		body.Detail = appErr.UpstreamBody
		if body.Detail == nil {
			body.Detail = ""
		}
		body.Status = appErr.UpstreamStatus
	case errors.ErrorTypeUpstreamUnreachable:
		if appErr.Details != "" {
			body.Detail = appErr.Details
		}
	}
	return appErr.Code, body
}
