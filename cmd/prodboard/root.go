package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for prodboard.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prodboard",
		Short: "Production-tracking dashboard for video accounts",
		Long: `prodboard tracks required and revised videos per account, highlights
urgent accounts and charts editor workload.

Data is read from a JSON, JS, YAML or Excel file, stored in SQLite and
served as an HTML dashboard, a JSON API and MCP tools.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().StringP("config", "c", "", "Path to config YAML (default: $"+configEnv+")")
	cmd.PersistentFlags().StringP("data", "d", "", "Data file to load, overrides data_file from config")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewSummaryCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
