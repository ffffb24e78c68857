package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaakkos/prodboard/internal/report"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the board as a Markdown report",
		Long:  `Write the summary, urgent accounts, filtered table and editor charts (as a mermaid pie) in Markdown.`,
		RunE:  runReport,
	}
	addFilterFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().Bool("no-reload", false, "Use stored data without reading the data file")
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	b, err := boardFromCmd(cmd)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		out = f
	}

	n, err := report.NewMarkdownWriter(out).Write(b)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if outputPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d bytes to %s\n", n, outputPath)
	}
	return nil
}
