package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/templui/proofstreak/cmd/streakctl/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "streakctl",
		Short:         "Admin tools for proofstreak",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.UserCmd())
	rootCmd.AddCommand(cmd.TokenCmd())
	rootCmd.AddCommand(cmd.ProgressCmd())
	rootCmd.AddCommand(cmd.GoalsCmd())
	rootCmd.AddCommand(cmd.TickCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
