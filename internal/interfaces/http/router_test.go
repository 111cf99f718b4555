package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/payrelay/internal/infrastructure/config"
	sharedConfig "github.com/orris-inc/payrelay/internal/shared/config"
	"github.com/orris-inc/payrelay/internal/shared/id"
	"github.com/orris-inc/payrelay/internal/shared/logger"
)

const testPayToken = "crm-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: sharedConfig.ServerConfig{
			Host:          "127.0.0.1",
			Port:          3000,
			Mode:          "test",
			Environment:   "test",
			BaseURL:       "https://relay.example.com",
			AllowedOrigin: "*",
		},
		PSP: sharedConfig.PSPConfig{
			WalletID:           1,
			SandboxMode:        true,
			MockPaymentBaseURL: "https://mock-psp.pay/url/",
			DashboardURL:       "https://my.itrader.global/dashboard",
			Label:              "BROCTAGON_CRM_DEPOSIT",
			ButtonText:         "Back to dashboard",
			Timeout:            2 * time.Second,
		},
		CRM: sharedConfig.CRMConfig{
			PayToken: testPayToken,
			Timeout:  2 * time.Second,
		},
	}
}

func newTestEngine(cfg *config.Config) *gin.Engine {
	r := NewRouter(cfg, logger.NewDiscardLogger())
	r.SetupRoutes()
	return r.GetEngine()
}

func parseJSON(w *httptest.ResponseRecorder, target any) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

func do(engine *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_SandboxPaymentURL(t *testing.T) {
	engine := newTestEngine(testConfig())

	w := do(engine, http.MethodPost, "/api/pay/url",
		`{"amount":"75.5","currency":"EUR","client_id":"client-9","return_url":"https://crm.example.com/back"}`,
		map[string]string{"crm-pay-token": testPayToken})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		PaymentURL string `json:"payment_url"`
		OrderID    string `json:"order_id"`
		Provider   string `json:"provider"`
	}
	require.NoError(t, parseJSON(w, &resp))
	assert.Equal(t, "mock", resp.Provider)

	u, err := url.Parse(resp.PaymentURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, resp.OrderID, q.Get("order_id"))
	assert.Equal(t, "75.5", q.Get("amount"))
	assert.Equal(t, "EUR", q.Get("currency"))
	assert.Equal(t, "client-9", q.Get("client_id"))
	assert.Equal(t, "https://crm.example.com/back", q.Get("return_url"))
}

func TestRouter_LivePaymentURL_UnauthorizedMakesNoProviderCall(t *testing.T) {
	var hits atomic.Int32
	psp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"data":{"id":"1","attributes":{"payment_url":"https://pay/1","status":"created"}}}`))
	}))
	defer psp.Close()

	cfg := testConfig()
	cfg.PSP.SandboxMode = false
	cfg.PSP.BaseURL = psp.URL
	cfg.PSP.AuthToken = "cb-token"
	engine := newTestEngine(cfg)

	body := `{"amount":10,"currency":"USD","client_id":"c1"}`

	w := do(engine, http.MethodPost, "/api/pay/url", body, map[string]string{"crm-pay-token": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized: Invalid token."}`, w.Body.String())

	w = do(engine, http.MethodPost, "/api/pay/url", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, hits.Load())

	w = do(engine, http.MethodPost, "/api/pay/url", body, map[string]string{"crm-pay-token": testPayToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"provider":"coinsbuy"`)
	assert.Contains(t, w.Body.String(), `"payment_url":"https://pay/1"`)
	assert.EqualValues(t, 1, hits.Load())
}

func TestRouter_LivePaymentURL_ProviderFailureIs500(t *testing.T) {
	psp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer psp.Close()

	cfg := testConfig()
	cfg.PSP.SandboxMode = false
	cfg.PSP.BaseURL = psp.URL
	engine := newTestEngine(cfg)

	w := do(engine, http.MethodPost, "/api/pay/url", `{"amount":10,"currency":"USD","client_id":"c1"}`,
		map[string]string{"crm-pay-token": testPayToken})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error."}`, w.Body.String())
}

func TestRouter_SessionValidation(t *testing.T) {
	engine := newTestEngine(testConfig())
	auth := map[string]string{"crm-pay-token": testPayToken}

	w := do(engine, http.MethodPost, "/api/pay/url", `{"currency":"USD","client_id":"c"}`, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "amount")

	w = do(engine, http.MethodPost, "/api/pay/url", `{"amount":1,"currency":"us","client_id":"c"}`, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid currency")
}

func TestRouter_CallbackSimulatedWithoutCRM(t *testing.T) {
	engine := newTestEngine(testConfig())

	w := do(engine, http.MethodPost, "/api/pay/callback",
		`{"data":{"id":"d1","attributes":{"status":"confirmed","tracking_id":"order-1"}}}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","order_id":"order-1","message":"CRM callback URL not configured - simulated success"}`, w.Body.String())
}

func TestRouter_CallbackNonObjectIs400(t *testing.T) {
	engine := newTestEngine(testConfig())

	for _, body := range []string{`"not-json"`, `not-json`, `42`, `[]`, `null`} {
		w := do(engine, http.MethodPost, "/api/pay/callback", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Invalid payload: must be a JSON object"}`, w.Body.String(), body)
	}
}

func TestRouter_CallbackForwardedToCRM(t *testing.T) {
	var received atomic.Value
	crmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pay/callback", r.URL.Path)
		assert.Equal(t, testPayToken, r.Header.Get("crm-pay-token"))
		raw, _ := io.ReadAll(r.Body)
		received.Store(string(raw))
		_, _ = w.Write([]byte(`{"accepted":true}`))
	}))
	defer crmServer.Close()

	cfg := testConfig()
	cfg.CRM.CallbackURL = crmServer.URL
	engine := newTestEngine(cfg)

	w := do(engine, http.MethodPost, "/api/pay/callback",
		`{"data":{"id":"d1","attributes":{"status":"confirmed","target_amount_requested":"100","currency":"USD","tracking_id":"order-1","client_id":"c1"}}}`,
		map[string]string{"x-coinsbuy-signature": "abc"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"status":"success","order_id":"order-1","crm_response":{"accepted":true}}`, w.Body.String())
	assert.JSONEq(t, `{"amount":100,"currency":"USD","status":"success","merchant_reference":"order-1","transaction_id":"d1","client_id":"c1"}`, received.Load().(string))
}

func TestRouter_CallbackCRMRejection(t *testing.T) {
	crmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer crmServer.Close()

	cfg := testConfig()
	cfg.CRM.CallbackURL = crmServer.URL
	engine := newTestEngine(cfg)

	w := do(engine, http.MethodPost, "/api/pay/callback", `{"data":{"id":"d1"}}`, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Failed to notify CRM","detail":"maintenance","status":503}`, w.Body.String())
}

func TestRouter_CallbackOutOfRangeAmountForwardedAsZero(t *testing.T) {
	var received atomic.Value
	crmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		received.Store(string(raw))
		_, _ = w.Write([]byte(`{"accepted":true}`))
	}))
	defer crmServer.Close()

	cfg := testConfig()
	cfg.CRM.CallbackURL = crmServer.URL
	engine := newTestEngine(cfg)

	w := do(engine, http.MethodPost, "/api/pay/callback",
		`{"data":{"id":"d7","attributes":{"target_amount_requested":"1e3000000","exchange_rate":1e200000000,"tracking_id":"order-7"}}}`,
		nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"amount":0,"currency":"USD","status":"pending","merchant_reference":"order-7","transaction_id":"d7","client_id":"unknown"}`, received.Load().(string))
}

func TestRouter_CallbackCRMEmptyRejectionKeepsDetail(t *testing.T) {
	crmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer crmServer.Close()

	cfg := testConfig()
	cfg.CRM.CallbackURL = crmServer.URL
	engine := newTestEngine(cfg)

	w := do(engine, http.MethodPost, "/api/pay/callback", `{"data":{"id":"d1"}}`, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Failed to notify CRM","detail":"","status":500}`, w.Body.String())
}

func TestRouter_CallbackCRMTimeoutIs502(t *testing.T) {
	release := make(chan struct{})
	crmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer crmServer.Close()
	defer close(release)

	cfg := testConfig()
	cfg.CRM.CallbackURL = crmServer.URL
	cfg.CRM.Timeout = 50 * time.Millisecond
	engine := newTestEngine(cfg)

	w := do(engine, http.MethodPost, "/api/pay/callback", `{"data":{"id":"d1"}}`, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp map[string]any
	require.NoError(t, parseJSON(w, &resp))
	assert.Equal(t, "Failed to notify CRM - network error", resp["error"])
	assert.NotEmpty(t, resp["detail"])
}

func TestRouter_Health(t *testing.T) {
	engine := newTestEngine(testConfig())

	w := do(engine, http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, parseJSON(w, &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "1.0.0", resp["version"])
	assert.Equal(t, "test", resp["environment"])
	_, err := time.Parse(time.RFC3339, resp["timestamp"].(string))
	assert.NoError(t, err)
}

func TestRouter_Fallbacks(t *testing.T) {
	engine := newTestEngine(testConfig())

	w := do(engine, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Endpoint not found"}`, w.Body.String())
	assert.True(t, id.IsRequestID(w.Header().Get("X-Request-ID")))

	w = do(engine, http.MethodGet, "/api/pay/url", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, w.Body.String())

	w = do(engine, http.MethodOptions, "/api/pay/callback", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "crm-pay-token")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "x-coinsbuy-signature")
}

func TestRouter_RequestIDsAreUnique(t *testing.T) {
	engine := newTestEngine(testConfig())

	first := do(engine, http.MethodGet, "/health", "", nil).Header().Get("X-Request-ID")
	second := do(engine, http.MethodGet, "/health", "", nil).Header().Get("X-Request-ID")

	assert.True(t, id.IsRequestID(first))
	assert.NotEqual(t, first, second)
}

func TestRouter_PanicIs500(t *testing.T) {
	engine := newTestEngine(testConfig())
	engine.GET("/boom", func(c *gin.Context) {
		panic("secret internals")
	})

	w := do(engine, http.MethodGet, "/boom", "", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error."}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "secret")
}
