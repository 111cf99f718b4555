package coinsbuy

import (
	"net/http"

	"github.com/orris-inc/payrelay/internal/application/payment/paymentgateway"
	"github.com/orris-inc/payrelay/internal/shared/logger"
)

// signatureHeaders are checked in order; the first non-empty one is used.
var signatureHeaders = []string{"X-Coinsbuy-Signature", "X-Psp-Signature"}

// SignatureVerifier is the webhook signature gate.
//
// Security: no cryptographic check is performed yet. A webhook without a
// signature header is logged and accepted, and any present header value is
// accepted. Real verification (HMAC over the raw body with a shared secret)
// is an open requirement and changes observable behavior once added.
type SignatureVerifier struct {
	logger logger.Interface
}

func NewSignatureVerifier(logger logger.Interface) *SignatureVerifier {
	return &SignatureVerifier{
		logger: logger,
	}
}

var _ paymentgateway.WebhookVerifier = (*SignatureVerifier)(nil)

func (v *SignatureVerifier) VerifyCallback(headers http.Header, rawBody []byte) error {
	signature, header := "", ""
	for _, name := range signatureHeaders {
		if value := headers.Get(name); value != "" {
			signature, header = value, name
			break
		}
	}

	if signature == "" {
		v.logger.Warnw("webhook received without signature header, accepting unverified",
			"body_size", len(rawBody),
		)
		return nil
	}

	v.logger.Debugw("webhook signature header present, not verified",
		"header", header,
		"body_size", len(rawBody),
	)
	return nil
}
