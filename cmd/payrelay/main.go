package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/payrelay/internal/interfaces/cli/config"
	"github.com/orris-inc/payrelay/internal/interfaces/cli/server"
	"github.com/orris-inc/payrelay/internal/interfaces/cli/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "payrelay",
		Short:        "Payrelay - PSP to CRM payment relay",
		Long:         `Payrelay creates hosted payment sessions for the CRM and relays payment provider webhooks back to it in a canonical shape.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		config.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
