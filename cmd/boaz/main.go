package main

import (
	"os"

	"github.com/spf13/cobra"

	"boaz/internal/interfaces/cli/migrate"
	"boaz/internal/interfaces/cli/server"
	"boaz/internal/interfaces/cli/sweep"
	"boaz/internal/interfaces/cli/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "boaz",
		Short: "Boaz - housing subscription administration",
		Long:  `Boaz manages housing units, tenant subscriptions and the attestation documents issued on delivery.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sweep.NewCommand(),
		user.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
