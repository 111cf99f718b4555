package paymentgateway

import (
	"context"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/orris-inc/payrelay/internal/domain/payment/valueobjects"
)

func TestSandboxGateway_CreatePayment(t *testing.T) {
	gw := NewSandboxGateway("https://mock-psp.pay/url/")

	resp, err := gw.CreatePayment(context.Background(), CreatePaymentRequest{
		OrderID:   "0b6f3c1e-8f6a-4d5e-9c2b-1a2b3c4d5e6f",
		Amount:    decimal.RequireFromString("49.90"),
		Currency:  "USD",
		ClientID:  "client 7",
		ReturnURL: "https://crm.example.com/back?x=1",
	})
	require.NoError(t, err)

	u, err := url.Parse(resp.PaymentURL)
	require.NoError(t, err)
	assert.Equal(t, "mock-psp.pay", u.Host)
	assert.Equal(t, "/url/", u.Path)

	q := u.Query()
	assert.Equal(t, "0b6f3c1e-8f6a-4d5e-9c2b-1a2b3c4d5e6f", q.Get("order_id"))
	assert.Equal(t, "49.9", q.Get("amount"))
	assert.Equal(t, "USD", q.Get("currency"))
	assert.Equal(t, "client 7", q.Get("client_id"))
	assert.Equal(t, "https://crm.example.com/back?x=1", q.Get("return_url"))
	assert.Empty(t, resp.ProviderReference)
}

func TestSandboxGateway_OmitsEmptyReturnURL(t *testing.T) {
	gw := NewSandboxGateway("https://mock-psp.pay/url/")

	resp, err := gw.CreatePayment(context.Background(), CreatePaymentRequest{
		OrderID:  "o-1",
		Amount:   decimal.NewFromInt(5),
		Currency: "EUR",
		ClientID: "c",
	})
	require.NoError(t, err)

	u, err := url.Parse(resp.PaymentURL)
	require.NoError(t, err)
	assert.NotContains(t, u.Query(), "return_url")
}

func TestSandboxGateway_Provider(t *testing.T) {
	assert.Equal(t, vo.ProviderMock, NewSandboxGateway("https://x").Provider())
}
