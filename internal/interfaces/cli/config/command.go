package config

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	appConfig "github.com/orris-inc/payrelay/internal/infrastructure/config"
	"github.com/orris-inc/payrelay/internal/shared/utils"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  `Load configuration the same way the server does (config file, .env, environment) and print it as YAML with credentials masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appConfig.Load(env)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return writeConfig(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")

	return cmd
}

func writeConfig(w io.Writer, cfg *appConfig.Config) error {
	masked := *cfg
	masked.PSP.AuthToken = utils.MaskSecret(cfg.PSP.AuthToken)
	masked.CRM.PayToken = utils.MaskSecret(cfg.CRM.PayToken)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&masked); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	for _, warning := range cfg.Warnings() {
		if _, err := fmt.Fprintf(w, "# warning: %s\n", warning); err != nil {
			return err
		}
	}
	return nil
}
