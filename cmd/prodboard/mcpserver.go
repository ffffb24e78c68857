package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/prodboard/internal/tools/board"
)

const instructions = `prodboard tracks video production per account.
Use get_summary for totals, list_urgent for accounts missing the most videos,
filter_accounts for the table by editor or category, and reload_data after
the data file changes. The resource prodboard://report/markdown holds the full board.`

// newMCPServer builds the MCP server with the board tools registered.
func newMCPServer(e *env) *server.MCPServer {
	hooks := &server.Hooks{}
	hooks.AddAfterCallTool(func(ctx context.Context, id any, message *mcp.CallToolRequest, result *mcp.CallToolResult) {
		if message != nil {
			e.logger.Printf("Calling tool: %s", message.Params.Name)
		}
	})
	hooks.AddBeforeInitialize(func(ctx context.Context, id any, message *mcp.InitializeRequest) {
		if message != nil {
			ci := message.Params.ClientInfo
			e.logger.Printf("Client: %s %s, Protocol: %s", ci.Name, ci.Version, message.Params.ProtocolVersion)
		}
	})

	s := server.NewMCPServer(
		"prodboard",
		getVersion(),
		server.WithInstructions(instructions),
		server.WithHooks(hooks),
		server.WithResourceCapabilities(false, false),
	)
	board.Register(s, e.svc, e.logger)
	return s
}
