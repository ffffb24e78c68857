package main

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// NewMCPCmd creates the mcp command.
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the board tools over MCP stdio",
		Long:  `Run an MCP server on stdin/stdout for editors and agents that launch prodboard as a subprocess. Logs go to the log file or stderr, never stdout.`,
		RunE:  runMCP,
	}
	cmd.Flags().Bool("no-watch", false, "Do not reload the data file when it changes")
	return cmd
}

func runMCP(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	noWatch, _ := cmd.Flags().GetBool("no-watch")

	e.reload()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if w := e.watcher(); w != nil && !noWatch {
		go w.Start(ctx)
		defer w.Stop()
	}

	e.logger.Println("Stdio ready")
	stdioSrv := server.NewStdioServer(newMCPServer(e))
	if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		e.logger.Printf("Stdio server stopped: %v", err)
	}
	return nil
}
