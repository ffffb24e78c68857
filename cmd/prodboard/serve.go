package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/jaakkos/prodboard/internal/dashboard"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard, JSON API and MCP over HTTP",
		Long: `Serve the HTML dashboard at /dashboard, the JSON API under /api and
MCP (streamable HTTP) at /mcp. The data file is loaded at startup and
reloaded when it changes unless watching is disabled.`,
		RunE: runServe,
	}
	cmd.Flags().IntP("port", "p", -1, "HTTP port (default: http_port from config, 0 picks a free port)")
	cmd.Flags().Bool("no-watch", false, "Do not reload the data file when it changes")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	port := e.pol.HTTPPort()
	if p, _ := cmd.Flags().GetInt("port"); p >= 0 {
		port = p
	}
	noWatch, _ := cmd.Flags().GetBool("no-watch")

	e.logger.Println("Starting prodboard server...")
	e.logger.Printf("Data file: %s", e.pol.DataFile())
	e.logger.Printf("State file: %s", e.stateFile)
	e.reload()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			e.logger.Printf("Received signal %v, shutting down...", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var watcher interface{ Stop() }
	if w := e.watcher(); w != nil && !noWatch {
		go w.Start(ctx)
		watcher = w
	}

	shutdown, err := startHTTPServer(ctx, e, port)
	if err != nil {
		return err
	}

	<-ctx.Done()
	shutdown()
	if watcher != nil {
		watcher.Stop()
	}
	e.logger.Println("Server stopped")
	return nil
}

// startHTTPServer serves the dashboard and MCP on port and returns a shutdown func.
func startHTTPServer(ctx context.Context, e *env, port int) (func(), error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("HTTP listen: %w", err)
	}
	actualPort := ln.Addr().(*net.TCPAddr).Port
	baseURL := fmt.Sprintf("http://localhost:%d", actualPort)

	e.logger.Printf("HTTP server on :%d", actualPort)
	e.logger.Printf("  Dashboard:  %s/dashboard", baseURL)
	e.logger.Printf("  MCP:        %s/mcp", baseURL)

	streamSrv := server.NewStreamableHTTPServer(newMCPServer(e))

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamSrv)
	dash := dashboard.NewHandler(e.svc, dashboard.WithLogger(e.logger))
	dash.RegisterRoutes(mux)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})

	httpServer := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpServer.Serve(ln); err != http.ErrServerClosed {
			e.logger.Printf("HTTP server error: %v", err)
		}
	}()

	return func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			e.logger.Printf("HTTP shutdown error: %v", err)
		}
	}, nil
}
