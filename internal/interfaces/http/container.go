package http

import (
	"github.com/orris-inc/payrelay/internal/application/payment/paymentgateway"
	"github.com/orris-inc/payrelay/internal/application/payment/usecases"
	"github.com/orris-inc/payrelay/internal/infrastructure/config"
	"github.com/orris-inc/payrelay/internal/infrastructure/crm"
	"github.com/orris-inc/payrelay/internal/infrastructure/payment/coinsbuy"
	"github.com/orris-inc/payrelay/internal/interfaces/http/handlers"
	"github.com/orris-inc/payrelay/internal/shared/logger"
)

// Container wires configuration into gateways, use cases and handlers.
// Everything is built once at startup and shared read-only by requests.
type Container struct {
	cfg *config.Config
	log logger.Interface

	// Services
	gateway  paymentgateway.PaymentGateway
	verifier paymentgateway.WebhookVerifier
	notifier *crm.Notifier

	// Use cases
	createSessionUC *usecases.CreatePaymentSessionUseCase
	relayWebhookUC  *usecases.RelayWebhookUseCase

	// Handlers
	paymentHandler *handlers.PaymentHandler
	healthHandler  *handlers.HealthHandler
}

// NewContainer builds the dependency graph for cfg.
func NewContainer(cfg *config.Config, log logger.Interface) *Container {
	c := &Container{cfg: cfg, log: log}
	c.initServices()
	c.initUseCases()
	c.initHandlers()
	return c
}

func (c *Container) initServices() {
	c.gateway = newPaymentGateway(c.cfg, c.log)
	c.verifier = coinsbuy.NewSignatureVerifier(c.log.Named("webhook"))
	c.notifier = crm.NewNotifier(crm.Config{
		CallbackURL: c.cfg.CRM.CallbackURL,
		PayToken:    c.cfg.CRM.PayToken,
		Timeout:     c.cfg.CRM.Timeout,
	}, c.log.Named("crm"))
}

// newPaymentGateway selects the session strategy once; it never changes at runtime.
func newPaymentGateway(cfg *config.Config, log logger.Interface) paymentgateway.PaymentGateway {
	if cfg.PSP.SandboxMode {
		log.Infow("payment gateway initialized", "provider", "mock", "base_url", cfg.PSP.MockPaymentBaseURL)
		return paymentgateway.NewSandboxGateway(cfg.PSP.MockPaymentBaseURL)
	}

	log.Infow("payment gateway initialized", "provider", "coinsbuy", "base_url", cfg.PSP.BaseURL, "wallet_id", cfg.PSP.WalletID)
	return coinsbuy.NewGateway(coinsbuy.Config{
		BaseURL:      cfg.PSP.BaseURL,
		AuthToken:    cfg.PSP.AuthToken,
		WalletID:     cfg.PSP.WalletID,
		Label:        cfg.PSP.Label,
		ButtonText:   cfg.PSP.ButtonText,
		DashboardURL: cfg.PSP.DashboardURL,
		Timeout:      cfg.PSP.Timeout,
	}, log.Named("coinsbuy"))
}

func (c *Container) initUseCases() {
	c.createSessionUC = usecases.NewCreatePaymentSessionUseCase(
		c.gateway,
		c.cfg.Server.CallbackURL(),
		c.log.Named("payment"),
	)
	c.relayWebhookUC = usecases.NewRelayWebhookUseCase(
		c.verifier,
		c.notifier,
		c.log.Named("relay"),
	)
}

func (c *Container) initHandlers() {
	c.paymentHandler = handlers.NewPaymentHandler(
		c.createSessionUC,
		c.relayWebhookUC,
		c.cfg.CRM.PayToken,
		c.log.Named("http"),
	)
	c.healthHandler = handlers.NewHealthHandler(c.cfg.Server.Environment)
}
