package board

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/prodboard/internal/app"
)

// registerFilterAccounts registers the filter_accounts tool.
func registerFilterAccounts(s *server.MCPServer, svc *app.BoardService, logger *log.Logger) {
	s.AddTool(
		mcp.NewTool("filter_accounts",
			mcp.WithDescription("List accounts matching an editor and/or category, with per-row progress and footer totals for the visible rows. Returns JSON."),
			mcp.WithString("editor", mcp.Description("Editor name, or 'all' (default: all)")),
			mcp.WithString("category", mcp.Description("Category, or 'all' (default: all)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			b := svc.Board(filterFromArgs(req.GetArguments()))
			if !b.Available {
				return mcp.NewToolResultError(b.Notice), nil
			}
			out, err := json.MarshalIndent(struct {
				app.View
				Options app.FilterOptions `json:"options"`
			}{b.View, b.Options}, "", "  ")
			if err != nil {
				return nil, err
			}
			logger.Printf("filter_accounts: editor=%s category=%s -> %d row(s)", b.View.Filter.Editor, b.View.Filter.Category, len(b.View.Rows))
			return mcp.NewToolResultText(string(out)), nil
		},
	)
}

// registerAccountProgress registers the account_progress tool.
func registerAccountProgress(s *server.MCPServer, svc *app.BoardService, logger *log.Logger) {
	s.AddTool(
		mcp.NewTool("account_progress",
			mcp.WithDescription("Show one account's counts and revision progress. Names match exactly first, then case-insensitively."),
			mcp.WithString("account", mcp.Required(), mcp.Description("Account name")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			name, err := requireString(req.GetArguments(), "account")
			if err != nil {
				return nil, err
			}
			ds := svc.Dataset()
			if !ds.Available() {
				return mcp.NewToolResultError(app.MissingDataNotice), nil
			}

			idx := -1
			for i, r := range ds.Accounts {
				if r.Account == name {
					idx = i
					break
				}
			}
			if idx < 0 {
				for i, r := range ds.Accounts {
					if strings.EqualFold(r.Account, name) {
						idx = i
						break
					}
				}
			}
			if idx < 0 {
				return nil, fmt.Errorf("account %q not found", name)
			}

			r := ds.Accounts[idx]
			progress := app.ProgressPercent(r.Required, r.Revision)
			urgent := r.Missing >= svc.Options().UrgentThreshold
			text := fmt.Sprintf("%s\nEditor: %s\nCategory: %s\nRequired: %d\nUnder revision: %d\nMissing: %d\nProgress: %d%%\nUrgent: %v",
				r.Account, r.Editor, r.Category, r.Required, r.Revision, r.Missing, progress, urgent)
			logger.Printf("account_progress: %s %d%%", r.Account, progress)
			return mcp.NewToolResultText(text), nil
		},
	)
}
