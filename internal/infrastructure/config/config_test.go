package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "http://localhost:3000/api/pay/callback", cfg.Server.CallbackURL())
	assert.Equal(t, "https://mock-psp.pay/url/", cfg.PSP.MockPaymentBaseURL)
	assert.Equal(t, 1, cfg.PSP.WalletID)
	assert.Equal(t, 10*time.Second, cfg.PSP.Timeout)
	assert.Equal(t, 10*time.Second, cfg.CRM.Timeout)
	assert.False(t, cfg.CRM.Enabled())
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("BASE_URL", "https://relay.example.com/")
	t.Setenv("COINSBUY_URL", "https://v3.api.coinsbuy.com/")
	t.Setenv("COINSBUY_AUTH_TOKEN", "cb-token")
	t.Setenv("COINSBUY_WALLET_ID", "42")
	t.Setenv("PSP_SANDBOX_MODE", "true")
	t.Setenv("CRM_CALLBACK_URL", "https://crm.example.com/api/")
	t.Setenv("CRM_PAY_TOKEN", "crm-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "https://relay.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "https://v3.api.coinsbuy.com", cfg.PSP.BaseURL)
	assert.Equal(t, "cb-token", cfg.PSP.AuthToken)
	assert.Equal(t, 42, cfg.PSP.WalletID)
	assert.True(t, cfg.PSP.SandboxMode)
	assert.Equal(t, "https://crm.example.com/api", cfg.CRM.CallbackURL)
	assert.Equal(t, "crm-secret", cfg.CRM.PayToken)
	assert.True(t, cfg.CRM.Enabled())
}

func TestLoad_PrefixedEnvWins(t *testing.T) {
	t.Setenv("CRM_PAY_TOKEN", "legacy")
	t.Setenv("PAYRELAY_CRM_PAY_TOKEN", "prefixed")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "prefixed", cfg.CRM.PayToken)
}

func TestLoad_EnvironmentArgument(t *testing.T) {
	t.Setenv("NODE_ENV", "staging")

	cfg, err := Load("production")
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Server.Environment)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Server.Environment)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("PAYRELAY_SERVER_PORT", "70000")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestWarnings(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	warnings := cfg.Warnings()
	assert.Contains(t, warnings, "crm.pay_token is not configured, every /api/pay/url request will be rejected")
	assert.Contains(t, warnings, "crm.callback_url is not configured, webhook forwarding will be simulated")
	assert.Contains(t, warnings, "psp.base_url is not configured while sandbox mode is disabled")

	t.Setenv("PSP_SANDBOX_MODE", "true")
	t.Setenv("CRM_PAY_TOKEN", "x")
	t.Setenv("CRM_CALLBACK_URL", "https://crm.example.com")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings())
}
