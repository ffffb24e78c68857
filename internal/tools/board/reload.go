package board

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/prodboard/internal/app"
)

// registerReloadData registers the reload_data tool.
func registerReloadData(s *server.MCPServer, svc *app.BoardService, logger *log.Logger) {
	s.AddTool(
		mcp.NewTool("reload_data",
			mcp.WithDescription("Re-read the production data file. Optionally switch to another data file inside the workspace first."),
			mcp.WithString("data_file", mcp.Description("Path of a new data file (.json, .js, .yaml, .xlsx), relative to the workspace root")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if path := optionalString(req.GetArguments(), "data_file", ""); path != "" {
				resolved, err := svc.Policy().SetDataFile(path)
				if err != nil {
					return nil, err
				}
				logger.Printf("reload_data: data file set to %s", resolved)
			}

			res, err := svc.Reload()
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Reload of %s failed: %v (previous data kept)", res.Source, err)), nil
			}
			if !res.Changed {
				return mcp.NewToolResultText(fmt.Sprintf("%s is unchanged (%d accounts).", res.Source, res.Accounts)), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("Loaded %d accounts from %s.", res.Accounts, res.Source)), nil
		},
	)
}
