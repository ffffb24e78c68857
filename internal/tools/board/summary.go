package board

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/prodboard/internal/app"
	"github.com/jaakkos/prodboard/internal/domain"
)

// registerGetSummary registers the get_summary tool.
func registerGetSummary(s *server.MCPServer, svc *app.BoardService, logger *log.Logger) {
	s.AddTool(
		mcp.NewTool("get_summary",
			mcp.WithDescription("Get the production summary: total required videos, videos under revision, missing videos and active editors."),
			mcp.WithString("editor", mcp.Description("Only count this editor's accounts when totals_scope is 'filtered' (default: all)")),
			mcp.WithString("category", mcp.Description("Only count this category when totals_scope is 'filtered' (default: all)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			b := svc.Board(filterFromArgs(req.GetArguments()))
			if !b.Available {
				return mcp.NewToolResultError(b.Notice), nil
			}

			var sb strings.Builder
			fmt.Fprintf(&sb, "Production summary for %s\n", b.Date)
			fmt.Fprintf(&sb, "Required videos: %d\n", b.Summary.Required)
			fmt.Fprintf(&sb, "Under revision:  %d\n", b.Summary.Revision)
			fmt.Fprintf(&sb, "Missing videos:  %d\n", b.Summary.Missing)
			fmt.Fprintf(&sb, "Active editors:  %d\n", b.Summary.Editors)
			if b.Scope == domain.ScopeFiltered && !b.View.Filter.IsAll() {
				fmt.Fprintf(&sb, "(filtered: editor=%s, category=%s)\n", b.View.Filter.Editor, b.View.Filter.Category)
			}
			if b.LoadError != "" {
				fmt.Fprintf(&sb, "Warning: last reload failed: %s\n", b.LoadError)
			}
			logger.Printf("get_summary: %d required, %d missing", b.Summary.Required, b.Summary.Missing)
			return mcp.NewToolResultText(sb.String()), nil
		},
	)
}

// registerListUrgent registers the list_urgent tool.
func registerListUrgent(s *server.MCPServer, svc *app.BoardService, logger *log.Logger) {
	s.AddTool(
		mcp.NewTool("list_urgent",
			mcp.WithDescription("List urgent accounts: those missing at least the threshold number of videos, most missing first."),
			mcp.WithNumber("threshold", mcp.Description("Minimum missing videos (default: configured urgent_threshold)")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of accounts to return (default: all)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			threshold := int(optionalFloat64(args, "threshold", float64(svc.Options().UrgentThreshold)))
			if threshold < 0 {
				return nil, fmt.Errorf("threshold must be >= 0, got %d", threshold)
			}
			limit := int(optionalFloat64(args, "limit", 0))

			ds := svc.Dataset()
			if !ds.Available() {
				return mcp.NewToolResultError(app.MissingDataNotice), nil
			}
			urgent := app.SelectUrgent(ds.Accounts, threshold)
			if limit > 0 && len(urgent) > limit {
				urgent = urgent[:limit]
			}
			if len(urgent) == 0 {
				return mcp.NewToolResultText(fmt.Sprintf("No accounts are missing %d or more videos.", threshold)), nil
			}

			var sb strings.Builder
			fmt.Fprintf(&sb, "%d urgent account(s) (missing >= %d):\n", len(urgent), threshold)
			for _, r := range urgent {
				fmt.Fprintf(&sb, "- %s: %d missing (%d required, %d under revision) | editor: %s | category: %s\n",
					r.Account, r.Missing, r.Required, r.Revision, r.Editor, r.Category)
			}
			logger.Printf("list_urgent: %d account(s)", len(urgent))
			return mcp.NewToolResultText(sb.String()), nil
		},
	)
}
