package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/payrelay/internal/shared/config"
	"github.com/orris-inc/payrelay/internal/shared/utils"
)

type Config struct {
	Server sharedConfig.ServerConfig `mapstructure:"server" yaml:"server"`
	Logger sharedConfig.LoggerConfig `mapstructure:"logger" yaml:"logger"`
	PSP    sharedConfig.PSPConfig    `mapstructure:"psp" yaml:"psp"`
	CRM    sharedConfig.CRMConfig    `mapstructure:"crm" yaml:"crm"`
}

// legacyEnv maps config keys to the un-prefixed variable names used by
// existing deployments. The PAYRELAY_ prefixed name always wins.
var legacyEnv = map[string]string{
	"server.port":               "PORT",
	"server.environment":        "NODE_ENV",
	"server.base_url":           "BASE_URL",
	"server.allowed_origin":     "ALLOWED_ORIGINS",
	"logger.level":              "LOG_LEVEL",
	"psp.base_url":              "COINSBUY_URL",
	"psp.auth_token":            "COINSBUY_AUTH_TOKEN",
	"psp.wallet_id":             "COINSBUY_WALLET_ID",
	"psp.sandbox_mode":          "PSP_SANDBOX_MODE",
	"psp.mock_payment_base_url": "PSP_PAYMENT_BASE_URL",
	"crm.callback_url":          "CRM_CALLBACK_URL",
	"crm.pay_token":             "CRM_PAY_TOKEN",
}

const envPrefix = "PAYRELAY"

// Load reads configs/config.yaml (optional), a .env file (optional) and the
// process environment. The returned Config is not modified afterwards.
func Load(env string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	for key, legacy := range legacyEnv {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.environment", env)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")
	cfg.PSP.BaseURL = strings.TrimRight(cfg.PSP.BaseURL, "/")
	cfg.CRM.CallbackURL = strings.TrimRight(cfg.CRM.CallbackURL, "/")

	if err := utils.ValidateStruct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Warnings reports settings that leave part of the relay unusable without
// preventing startup.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.CRM.PayToken == "" {
		warnings = append(warnings, "crm.pay_token is not configured, every /api/pay/url request will be rejected")
	}
	if !c.PSP.SandboxMode {
		if c.PSP.BaseURL == "" {
			warnings = append(warnings, "psp.base_url is not configured while sandbox mode is disabled")
		}
		if c.PSP.AuthToken == "" {
			warnings = append(warnings, "psp.auth_token is not configured while sandbox mode is disabled")
		}
	}
	if !c.CRM.Enabled() {
		warnings = append(warnings, "crm.callback_url is not configured, webhook forwarding will be simulated")
	}
	return warnings
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.base_url", "http://localhost:3000")
	v.SetDefault("server.allowed_origin", "*")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.max_size_mb", 20)
	v.SetDefault("logger.max_age_days", 14)

	// PSP defaults
	v.SetDefault("psp.base_url", "")
	v.SetDefault("psp.auth_token", "")
	v.SetDefault("psp.wallet_id", 1)
	v.SetDefault("psp.sandbox_mode", false)
	v.SetDefault("psp.mock_payment_base_url", "https://mock-psp.pay/url/")
	v.SetDefault("psp.dashboard_url", "https://my.itrader.global/dashboard")
	v.SetDefault("psp.label", "BROCTAGON_CRM_DEPOSIT")
	v.SetDefault("psp.button_text", "Back to dashboard")
	v.SetDefault("psp.timeout", 10*time.Second)

	// CRM defaults
	v.SetDefault("crm.callback_url", "")
	v.SetDefault("crm.pay_token", "")
	v.SetDefault("crm.timeout", 10*time.Second)
}
