package board

import (
	"context"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/prodboard/internal/app"
	"github.com/jaakkos/prodboard/internal/domain"
	"github.com/jaakkos/prodboard/internal/report"
)

// ReportURI is the resource URI of the Markdown board report.
const ReportURI = "prodboard://report/markdown"

// registerResources adds the Markdown report resource.
func registerResources(s *server.MCPServer, svc *app.BoardService, logger *log.Logger) {
	s.AddResource(
		mcp.NewResource(
			ReportURI,
			"Production report",
			mcp.WithResourceDescription("The full production board (summary, urgent accounts, table and editor charts) as Markdown."),
			mcp.WithMIMEType("text/markdown"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			logger.Printf("Resource read: report/markdown")
			var sb strings.Builder
			if _, err := report.NewMarkdownWriter(&sb).Write(svc.Board(domain.NewFilter("", ""))); err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      req.Params.URI,
					MIMEType: "text/markdown",
					Text:     sb.String(),
				},
			}, nil
		},
	)
}
