// Package board exposes the production board as MCP tools and resources.
package board

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/prodboard/internal/app"
)

type registerFunc func(s *server.MCPServer, svc *app.BoardService, logger *log.Logger)

// tools lists every board tool by name. Order is the order clients see.
var tools = []struct {
	name     string
	register registerFunc
}{
	{"get_summary", registerGetSummary},
	{"list_urgent", registerListUrgent},
	{"filter_accounts", registerFilterAccounts},
	{"account_progress", registerAccountProgress},
	{"chart_data", registerChartData},
	{"reload_data", registerReloadData},
}

// ToolNames returns the names of all board tools.
func ToolNames() []string {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.name)
	}
	return names
}

// Register registers the enabled board tools and the report resource with the mcp-go server.
// A tool is skipped when the policy does not enable it.
func Register(s *server.MCPServer, svc *app.BoardService, logger *log.Logger) {
	registered := 0
	for _, t := range tools {
		if !svc.Policy().IsToolEnabled(t.name) {
			logger.Printf("Tool disabled by config: %s", t.name)
			continue
		}
		t.register(s, svc, logger)
		registered++
	}
	logger.Printf("Registered %d board tool(s)", registered)

	registerResources(s, svc, logger)
}
