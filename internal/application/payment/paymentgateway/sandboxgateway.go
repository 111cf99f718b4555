package paymentgateway

import (
	"context"
	"fmt"
	"net/url"

	vo "github.com/orris-inc/payrelay/internal/domain/payment/valueobjects"
)

// SandboxGateway builds a mock payment page URL locally. It never performs
// network I/O and never fails for a well-formed base URL.
type SandboxGateway struct {
	baseURL string
}

func NewSandboxGateway(baseURL string) *SandboxGateway {
	return &SandboxGateway{
		baseURL: baseURL,
	}
}

var _ PaymentGateway = (*SandboxGateway)(nil)

func (g *SandboxGateway) Provider() vo.Provider {
	return vo.ProviderMock
}

func (g *SandboxGateway) CreatePayment(_ context.Context, req CreatePaymentRequest) (*CreatePaymentResponse, error) {
	u, err := url.Parse(g.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mock payment base url: %w", err)
	}

	q := u.Query()
	q.Set("order_id", req.OrderID)
	q.Set("amount", req.Amount.String())
	q.Set("currency", req.Currency)
	q.Set("client_id", req.ClientID)
	if req.ReturnURL != "" {
		q.Set("return_url", req.ReturnURL)
	}
	u.RawQuery = q.Encode()

	return &CreatePaymentResponse{
		PaymentURL: u.String(),
	}, nil
}
