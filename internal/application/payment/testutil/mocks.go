// Package testutil provides mock implementations for testing the payment application layer.
package testutil

import (
	"context"
	"net/http"
	"sync"

	"github.com/orris-inc/payrelay/internal/application/payment/paymentgateway"
	"github.com/orris-inc/payrelay/internal/domain/payment"
	vo "github.com/orris-inc/payrelay/internal/domain/payment/valueobjects"
	"github.com/orris-inc/payrelay/internal/shared/logger"
)

// MockGateway is a mock implementation of paymentgateway.PaymentGateway for testing.
type MockGateway struct {
	mu       sync.Mutex
	provider vo.Provider
	requests []paymentgateway.CreatePaymentRequest

	// Error injection for testing
	err error
}

// NewMockGateway creates a mock gateway reporting the given provider.
func NewMockGateway(provider vo.Provider) *MockGateway {
	return &MockGateway{provider: provider}
}

func (m *MockGateway) Provider() vo.Provider {
	return m.provider
}

// CreatePayment records the request and returns a URL derived from the order id.
func (m *MockGateway) CreatePayment(ctx context.Context, req paymentgateway.CreatePaymentRequest) (*paymentgateway.CreatePaymentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &paymentgateway.CreatePaymentResponse{
		PaymentURL:        "https://pay.test/" + req.OrderID,
		ProviderReference: "ref-" + req.OrderID,
		ProviderStatus:    "pending",
	}, nil
}

// SetError sets the error to return on CreatePayment calls.
func (m *MockGateway) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Requests returns every request received so far.
func (m *MockGateway) Requests() []paymentgateway.CreatePaymentRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]paymentgateway.CreatePaymentRequest(nil), m.requests...)
}

// MockVerifier is a mock implementation of paymentgateway.WebhookVerifier for testing.
type MockVerifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func NewMockVerifier() *MockVerifier {
	return &MockVerifier{}
}

func (m *MockVerifier) VerifyCallback(headers http.Header, rawBody []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.err
}

// SetError sets the error to return on VerifyCallback calls.
func (m *MockVerifier) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the number of VerifyCallback calls.
func (m *MockVerifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockNotifier is a mock CRM notifier for testing.
type MockNotifier struct {
	mu        sync.Mutex
	enabled   bool
	callbacks []payment.CanonicalCallback
	ctxErrs   []error
	response  any
	err       error
}

// NewMockNotifier creates a mock notifier; a disabled one models a missing CRM endpoint.
func NewMockNotifier(enabled bool) *MockNotifier {
	return &MockNotifier{enabled: enabled}
}

func (m *MockNotifier) Enabled() bool {
	return m.enabled
}

func (m *MockNotifier) Notify(ctx context.Context, cb payment.CanonicalCallback) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

// SetResponse sets the CRM response returned on success.
func (m *MockNotifier) SetResponse(response any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = response
}

// SetError sets the error to return on Notify calls.
func (m *MockNotifier) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Callbacks returns every callback received so far.
func (m *MockNotifier) Callbacks() []payment.CanonicalCallback {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]payment.CanonicalCallback(nil), m.callbacks...)
}

// ContextErrors returns ctx.Err() as observed by each Notify call.
func (m *MockNotifier) ContextErrors() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]error(nil), m.ctxErrs...)
}

// MockLogger is a mock implementation of logger.Interface for testing.
type MockLogger struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// LogEntry records a log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]any
}

// NewMockLogger creates a new mock logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{
		entries: make([]LogEntry, 0),
	}
}

var _ logger.Interface = (*MockLogger)(nil)

func (m *MockLogger) Debug(msg string, args ...any) { m.log("DEBUG", msg, args...) }
func (m *MockLogger) Info(msg string, args ...any)  { m.log("INFO", msg, args...) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.log("WARN", msg, args...) }
func (m *MockLogger) Error(msg string, args ...any) { m.log("ERROR", msg, args...) }

func (m *MockLogger) With(args ...any) logger.Interface  { return m }
func (m *MockLogger) Named(name string) logger.Interface { return m }

func (m *MockLogger) Debugw(msg string, keysAndValues ...any) { m.log("DEBUG", msg, keysAndValues...) }
func (m *MockLogger) Infow(msg string, keysAndValues ...any)  { m.log("INFO", msg, keysAndValues...) }
func (m *MockLogger) Warnw(msg string, keysAndValues ...any)  { m.log("WARN", msg, keysAndValues...) }
func (m *MockLogger) Errorw(msg string, keysAndValues ...any) { m.log("ERROR", msg, keysAndValues...) }

func (m *MockLogger) log(level, msg string, fields ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := LogEntry{
		Level:   level,
		Message: msg,
		Fields:  make(map[string]any),
	}

	// Parse fields (key-value pairs)
	for i := 0; i < len(fields)-1; i += 2 {
		if key, ok := fields[i].(string); ok {
			entry.Fields[key] = fields[i+1]
		}
	}

	m.entries = append(m.entries, entry)
}

// GetEntries returns all logged entries.
func (m *MockLogger) GetEntries() []LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]LogEntry(nil), m.entries...)
}

// FindEntry returns the first entry with the given level and message.
func (m *MockLogger) FindEntry(level, msg string) (LogEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.Level == level && e.Message == msg {
			return e, true
		}
	}
	return LogEntry{}, false
}
