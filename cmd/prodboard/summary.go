package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jaakkos/prodboard/internal/app"
	"github.com/jaakkos/prodboard/internal/domain"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print production totals and urgent accounts",
		Long: `Load the data file and print the summary cards and the urgent-account
list. With --editor or --category the filtered table is printed too.`,
		RunE: runSummary,
	}
	addFilterFlags(cmd)
	cmd.Flags().BoolP("json", "j", false, "Print the board as JSON")
	cmd.Flags().Bool("no-reload", false, "Use stored data without reading the data file")
	return cmd
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("editor", "e", domain.FilterAll, "Only show this editor's accounts")
	cmd.Flags().StringP("category", "g", domain.FilterAll, "Only show this category")
}

func filterFromFlags(cmd *cobra.Command) (domain.Filter, error) {
	editor, err := cmd.Flags().GetString("editor")
	if err != nil {
		return domain.Filter{}, err
	}
	category, err := cmd.Flags().GetString("category")
	if err != nil {
		return domain.Filter{}, err
	}
	return domain.NewFilter(editor, category), nil
}

// boardFromCmd opens the environment, reloads unless --no-reload, and composes the board.
func boardFromCmd(cmd *cobra.Command) (*app.Board, error) {
	e, err := openEnv(cmd)
	if err != nil {
		return nil, err
	}
	defer e.close()

	if noReload, _ := cmd.Flags().GetBool("no-reload"); !noReload {
		e.reload()
	}
	f, err := filterFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	return e.svc.Board(f), nil
}

func runSummary(cmd *cobra.Command, _ []string) error {
	b, err := boardFromCmd(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	}

	fmt.Fprintf(out, "Production summary, %s\n", b.Date)
	if !b.Available {
		fmt.Fprintln(out, b.Notice)
		return nil
	}
	fmt.Fprintf(out, "  Required videos: %d\n", b.Summary.Required)
	fmt.Fprintf(out, "  Under revision:  %d\n", b.Summary.Revision)
	fmt.Fprintf(out, "  Missing videos:  %d\n", b.Summary.Missing)
	fmt.Fprintf(out, "  Active editors:  %d\n", b.Summary.Editors)
	if b.LoadError != "" {
		fmt.Fprintf(out, "Warning: last reload failed: %s\n", b.LoadError)
	}

	fmt.Fprintf(out, "\nUrgent accounts (%d):\n", len(b.Urgent))
	for _, r := range b.Urgent {
		fmt.Fprintf(out, "  %s: %d missing (%s, %s)\n", r.Account, r.Missing, r.Editor, r.Category)
	}

	if !b.View.Filter.IsAll() {
		fmt.Fprintf(out, "\nAccounts (editor=%s, category=%s):\n", b.View.Filter.Editor, b.View.Filter.Category)
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ACCOUNT\tREQUIRED\tREVISION\tMISSING\tEDITOR\tCATEGORY\tPROGRESS")
		for _, r := range b.View.Rows {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%s\t%d%%\n", r.Account, r.Required, r.Revision, r.Missing, r.Editor, r.Category, r.Progress)
		}
		ft := b.View.Footer
		fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%d\t\t\t\n", ft.Required, ft.Revision, ft.Missing)
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
