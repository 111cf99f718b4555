package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host          string `mapstructure:"host" yaml:"host"`
	Port          int    `mapstructure:"port" yaml:"port" validate:"min=1,max=65535"`
	Mode          string `mapstructure:"mode" yaml:"mode" validate:"oneof=debug release test"`
	Environment   string `mapstructure:"environment" yaml:"environment"`
	BaseURL       string `mapstructure:"base_url" yaml:"base_url" validate:"required,url"`
	AllowedOrigin string `mapstructure:"allowed_origin" yaml:"allowed_origin"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CallbackURL is the webhook endpoint the PSP is told to notify.
func (s *ServerConfig) CallbackURL() string {
	return s.BaseURL + "/api/pay/callback"
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format" validate:"oneof=console json"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// PSPConfig configures the payment service provider integration.
// When SandboxMode is set no live provider call is ever made.
type PSPConfig struct {
	BaseURL            string        `mapstructure:"base_url" yaml:"base_url"`
	AuthToken          string        `mapstructure:"auth_token" yaml:"auth_token"`
	WalletID           int           `mapstructure:"wallet_id" yaml:"wallet_id" validate:"min=1"`
	SandboxMode        bool          `mapstructure:"sandbox_mode" yaml:"sandbox_mode"`
	MockPaymentBaseURL string        `mapstructure:"mock_payment_base_url" yaml:"mock_payment_base_url" validate:"required,url"`
	DashboardURL       string        `mapstructure:"dashboard_url" yaml:"dashboard_url"`
	Label              string        `mapstructure:"label" yaml:"label"`
	ButtonText         string        `mapstructure:"button_text" yaml:"button_text"`
	Timeout            time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gt=0"`
}

// CRMConfig configures the downstream CRM. An empty CallbackURL disables forwarding.
type CRMConfig struct {
	CallbackURL string        `mapstructure:"callback_url" yaml:"callback_url"`
	PayToken    string        `mapstructure:"pay_token" yaml:"pay_token"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gt=0"`
}

func (c *CRMConfig) Enabled() bool {
	return c.CallbackURL != ""
}
