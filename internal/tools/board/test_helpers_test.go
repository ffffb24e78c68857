package board

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/prodboard/internal/app"
	"github.com/jaakkos/prodboard/internal/domain"
	"github.com/jaakkos/prodboard/internal/source"
)

type mockRepository struct {
	ds *domain.Dataset
	mu sync.Mutex
}

func (m *mockRepository) Load() (*domain.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ds.Clone(), nil
}

func (m *mockRepository) Save(ds *domain.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ds = ds.Clone()
	return nil
}

type mockPolicy struct {
	dataFile string
	disabled map[string]bool
	scope    domain.TotalsScope
}

func (p *mockPolicy) DataFile() string { return p.dataFile }
func (p *mockPolicy) SetDataFile(path string) (string, error) {
	if path == "../outside.json" {
		return "", fmt.Errorf("path outside workspace: %s", path)
	}
	p.dataFile = path
	return path, nil
}
func (p *mockPolicy) UrgentThreshold() int            { return 3 }
func (p *mockPolicy) MissingMode() domain.MissingMode { return domain.MissingFromInput }
func (p *mockPolicy) TotalsScope() domain.TotalsScope { return p.scope }
func (p *mockPolicy) Editors() []string               { return []string{"Ramon", "Duno"} }
func (p *mockPolicy) ChartColors() []string           { return []string{"#4fc3f7", "#ff9800"} }
func (p *mockPolicy) IsToolEnabled(name string) bool  { return !p.disabled[name] }

func sampleDataset() *domain.Dataset {
	ds := domain.NewDataset()
	ds.Source = "data.json"
	ds.LoadedAt = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	ds.Accounts = []domain.AccountRecord{
		{Account: "Acme", Required: 10, Revision: 4, Missing: 6, Editor: "Ramon", Category: "Tier 1"},
		{Account: "Bolt", Required: 5, Revision: 5, Missing: 0, Editor: "Duno", Category: "Tier 1"},
		{Account: "Crux", Required: 8, Revision: 2, Missing: 6, Editor: "Ramon", Category: "Tier 2"},
	}
	return ds
}

// newTestService builds a service over an in-memory repository.
func newTestService(ds *domain.Dataset, pol *mockPolicy, opts ...app.ServiceOption) (*app.BoardService, *mockRepository) {
	repo := &mockRepository{ds: ds}
	if pol == nil {
		pol = &mockPolicy{dataFile: "data.json", scope: domain.ScopeAll}
	}
	svc := app.NewBoardService(repo, pol, log.New(io.Discard, "", 0), opts...)
	return svc, repo
}

// testServer creates a MCPServer with all enabled tools registered for testing.
func testServer(svc *app.BoardService) *server.MCPServer {
	s := server.NewMCPServer("test", "1.0.0", server.WithResourceCapabilities(false, false))
	Register(s, svc, log.New(io.Discard, "", 0))
	return s
}

func staticLoader(raws []domain.RawAccount) app.Loader {
	return func(path string) (*source.Result, error) {
		return &source.Result{Path: path, Checksum: "sum-" + path, Accounts: raws}, nil
	}
}

// rpc sends one JSON-RPC request and returns the raw result, or an error for an RPC error.
func rpc(t *testing.T, s *server.MCPServer, method string, params map[string]any) (json.RawMessage, error) {
	t.Helper()

	reqJSON, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	respJSON := s.HandleMessage(context.Background(), reqJSON)

	respBytes, marshalErr := json.Marshal(respJSON)
	if marshalErr != nil {
		t.Fatalf("marshal response: %v", marshalErr)
	}

	var resp struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("RPC error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	return resp.Result, nil
}

// callTool calls a registered tool via the MCPServer's HandleMessage.
// Returns the parsed CallToolResult or an error.
func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) (*mcp.CallToolResult, error) {
	t.Helper()
	raw, err := rpc(t, s, "tools/call", map[string]any{"name": name, "arguments": args})
	if err != nil {
		return nil, err
	}
	var result mcp.CallToolResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	return &result, nil
}

// resultText extracts the first text content from a CallToolResult.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("result is nil")
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("no text content in result")
	return ""
}

// listToolNames returns the names from tools/list.
func listToolNames(t *testing.T, s *server.MCPServer) []string {
	t.Helper()
	raw, err := rpc(t, s, "tools/list", map[string]any{})
	if err != nil {
		t.Fatalf("tools/list: %v", err)
	}
	var res struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		t.Fatalf("unmarshal tools: %v", err)
	}
	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names
}
