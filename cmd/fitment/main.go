package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/fitment/internal/interfaces/cli/report"
	"github.com/orris-inc/fitment/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fitment",
		Short: "Fitment - parts catalog explorer",
		Long:  `Fitment serves the parts fitment dashboard and runs catalog reports from the command line.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		report.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
