package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jaakkos/prodboard/internal/source"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load a data file into the store",
		Long: `Read a .json, .js, .yaml or .xlsx file and replace the stored accounts
with its records. The configured data file is not changed: the imported
accounts are served until that file's content changes, then the next
reload replaces them.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	res, err := source.Load(path)
	if err != nil {
		return err
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	out, err := e.svc.Import(path, res.Checksum, res.Accounts)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	e.logger.Printf("Imported %d account(s) from %s", out.Accounts, path)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d accounts from %s\n", out.Accounts, path)
	return nil
}
