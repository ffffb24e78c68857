package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jaakkos/prodboard/internal/app"
	"github.com/jaakkos/prodboard/internal/domain"
)

func testBoard(f domain.Filter, roster []string) *app.Board {
	ds := domain.NewDataset()
	ds.Source = "data.json"
	ds.LoadedAt = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	ds.Accounts = []domain.AccountRecord{
		{Account: "Acme", Required: 10, Revision: 4, Missing: 6, Editor: "Ramon", Category: "Tier 1"},
		{Account: "Bolt", Required: 5, Revision: 5, Missing: 0, Editor: "Duno", Category: "Tier 1"},
	}
	opts := app.BoardOptions{UrgentThreshold: 3, Roster: roster, Palette: []string{"#4fc3f7"}}
	return app.Compose(ds, f, opts, time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC))
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := NewMarkdownWriter(&buf).Write(testBoard(domain.NewFilter("", ""), []string{"Ramon", "Duno", "Chris"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n == 0 {
		t.Error("expected non-zero byte count")
	}
	output := buf.String()
	for _, want := range []string{
		"# Production Dashboard",
		"October 14, 2026",
		"## Summary",
		"Required Videos",
		"## Urgent Accounts",
		"**Acme**: 6 missing",
		"## Production Status",
		"**Total**",
		"40%",
		"```mermaid",
		"pie",
		"Ramon",
		"Missing Videos",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestMarkdownWriter_Unavailable(t *testing.T) {
	t.Parallel()

	b := app.Compose(domain.NewDataset(), domain.NewFilter("", ""), app.BoardOptions{}, time.Now())
	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, app.MissingDataNotice) {
		t.Error("expected missing-data notice")
	}
	if strings.Contains(output, "## Summary") {
		t.Error("summary should not render without data")
	}
}

func TestMarkdownWriter_FilterAndChartError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(testBoard(domain.NewFilter("Nobody", "all"), nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "No accounts match the current filter.") {
		t.Error("expected empty-filter message")
	}
	if !strings.Contains(output, "Nobody") {
		t.Error("expected filter in header")
	}
	if !strings.Contains(output, "Charts are unavailable") {
		t.Error("expected chart error note")
	}
	if strings.Contains(output, "```mermaid") {
		t.Error("no pie chart expected")
	}
}
