package board

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/prodboard/internal/app"
)

// registerChartData registers the chart_data tool.
func registerChartData(s *server.MCPServer, svc *app.BoardService, logger *log.Logger) {
	s.AddTool(
		mcp.NewTool("chart_data",
			mcp.WithDescription("Get the chart datasets: editor distribution (pie) or editor workload (bar). Returns JSON."),
			mcp.WithString("chart", mcp.Description("Which chart to return (default: both)"), mcp.Enum("distribution", "workload", "both")),
			mcp.WithString("editor", mcp.Description("Editor filter, applied when totals_scope is 'filtered'")),
			mcp.WithString("category", mcp.Description("Category filter, applied when totals_scope is 'filtered'")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			which := optionalString(args, "chart", "both")

			b := svc.Board(filterFromArgs(args))
			if !b.Available {
				return mcp.NewToolResultError(b.Notice), nil
			}
			if b.Charts == nil {
				return mcp.NewToolResultError("chart rendering failed: " + b.ChartError), nil
			}

			var v any
			switch which {
			case "distribution":
				v = b.Charts.Distribution
			case "workload":
				v = b.Charts.Workload
			case "both":
				v = b.Charts
			default:
				return nil, fmt.Errorf("chart must be one of distribution, workload, both; got %q", which)
			}
			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return nil, err
			}
			logger.Printf("chart_data: %s", which)
			return mcp.NewToolResultText(string(out)), nil
		},
	)
}
