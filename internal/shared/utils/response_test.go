package utils

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/payrelay/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func render(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	WriteReply(c, ErrorReply(err))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestErrorReply_AppError(t *testing.T) {
	code, body := render(t, errors.NewUnauthorizedError("Unauthorized: Invalid token."))

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, map[string]any{"error": "Unauthorized: Invalid token."}, body)
}

func TestErrorReply_HidesUnknownErrors(t *testing.T) {
	code, body := render(t, stderrors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, map[string]any{"error": InternalErrorMessage}, body)
}

func TestErrorReply_InternalAppErrorHidesDetails(t *testing.T) {
	code, body := render(t, errors.NewInternalError("marshal failed", "json: unsupported type"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, map[string]any{"error": InternalErrorMessage}, body)
}

func TestErrorReply_UpstreamRejectionEchoesStatus(t *testing.T) {
	err := fmt.Errorf("forward: %w", errors.NewUpstreamRejectionError("Failed to notify CRM", http.StatusServiceUnavailable, "maintenance"))

	code, body := render(t, err)

	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "Failed to notify CRM", body["error"])
	assert.Equal(t, "maintenance", body["detail"])
	assert.EqualValues(t, http.StatusServiceUnavailable, body["status"])
}

func TestErrorReply_UpstreamRejectionWithoutBody(t *testing.T) {
	for _, upstreamBody := range []any{nil, ""} {
		code, body := render(t, errors.NewUpstreamRejectionError("Failed to notify CRM", http.StatusInternalServerError, upstreamBody))

		assert.Equal(t, http.StatusBadGateway, code)
		require.Contains(t, body, "detail")
		assert.Equal(t, "", body["detail"])
		assert.EqualValues(t, http.StatusInternalServerError, body["status"])
	}
}

func TestErrorReply_UpstreamUnreachable(t *testing.T) {
	code, body := render(t, errors.NewUpstreamUnreachableError("Failed to notify CRM - network error", "context deadline exceeded"))

	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "Failed to notify CRM - network error", body["error"])
	assert.Equal(t, "context deadline exceeded", body["detail"])
	assert.NotContains(t, body, "status")
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorResponse(c, http.StatusNotFound, "Endpoint not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Endpoint not found"}`, w.Body.String())
}

func TestReply(t *testing.T) {
	r := OK(map[string]string{"status": "healthy"})
	assert.Equal(t, http.StatusOK, r.StatusCode)

	r = ErrorReply(errors.NewBadRequestError("Invalid payload: must be a JSON object"))
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)
	assert.Equal(t, ErrorBody{Error: "Invalid payload: must be a JSON object"}, r.Body)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	WriteReply(c, Reply{StatusCode: http.StatusAccepted, Body: map[string]int{"n": 1}})
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"n":1}`, w.Body.String())
}
