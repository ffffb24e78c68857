// Package report renders a production board as a Markdown document.
package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/jaakkos/prodboard/internal/app"
	"github.com/jaakkos/prodboard/internal/domain"
)

// MarkdownWriter writes boards as GitHub-flavored Markdown.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write outputs the board and returns the number of bytes written.
func (w *MarkdownWriter) Write(b *app.Board) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, b)
	if !b.Available {
		md.Cautionf("%s", b.Notice)
		md.PlainText("")
		return len(md.String()), md.Build()
	}
	w.writeSummary(md, b)
	w.writeUrgent(md, b)
	w.writeTable(md, b)
	w.writeCharts(md, b)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, b *app.Board) {
	md.H1("Production Dashboard")
	md.PlainText("")
	rows := [][]string{{"Date", b.Date}}
	if b.Source != "" {
		rows = append(rows, []string{"Source", "`" + b.Source + "`"})
	}
	if !b.LoadedAt.IsZero() {
		rows = append(rows, []string{"Loaded", b.LoadedAt.Format("2006-01-02 15:04:05 MST")})
	}
	if b.View.Filter.Editor != "" && b.View.Filter.Editor != domain.FilterAll {
		rows = append(rows, []string{"Editor", b.View.Filter.Editor})
	}
	if b.View.Filter.Category != "" && b.View.Filter.Category != domain.FilterAll {
		rows = append(rows, []string{"Category", b.View.Filter.Category})
	}
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")
	if b.LoadError != "" {
		md.Warningf("Last reload failed, showing previous data: %s", b.LoadError)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, b *app.Board) {
	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Required Videos", strconv.Itoa(b.Summary.Required)},
			{"Under Revision", strconv.Itoa(b.Summary.Revision)},
			{"Missing Videos", strconv.Itoa(b.Summary.Missing)},
			{"Active Editors", strconv.Itoa(b.Summary.Editors)},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeUrgent(md *markdown.Markdown, b *app.Board) {
	md.H2("Urgent Accounts")
	md.PlainText("")
	if len(b.Urgent) == 0 {
		md.Tip("No urgent accounts.")
		md.PlainText("")
		return
	}
	md.Warningf("%d account(s) are missing videos at or above the urgent threshold.", len(b.Urgent))
	md.PlainText("")
	items := make([]string, 0, len(b.Urgent))
	for _, r := range b.Urgent {
		items = append(items, "**"+r.Account+"**: "+strconv.Itoa(r.Missing)+" missing ("+
			strconv.Itoa(r.Required)+" required, "+strconv.Itoa(r.Revision)+" under revision), "+
			r.Editor+", "+r.Category)
	}
	md.BulletList(items...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeTable(md *markdown.Markdown, b *app.Board) {
	md.H2("Production Status")
	md.PlainText("")
	if len(b.View.Rows) == 0 {
		md.PlainText("No accounts match the current filter.")
		md.PlainText("")
		return
	}
	rows := make([][]string, 0, len(b.View.Rows)+1)
	for _, r := range b.View.Rows {
		rows = append(rows, []string{
			r.Account,
			strconv.Itoa(r.Required),
			strconv.Itoa(r.Revision),
			strconv.Itoa(r.Missing),
			r.Editor,
			r.Category,
			strconv.Itoa(r.Progress) + "%",
		})
	}
	f := b.View.Footer
	rows = append(rows, []string{
		"**Total**",
		"**" + strconv.Itoa(f.Required) + "**",
		"**" + strconv.Itoa(f.Revision) + "**",
		"**" + strconv.Itoa(f.Missing) + "**",
		"", "", "",
	})
	md.Table(markdown.TableSet{
		Header: []string{"Account", "Required", "Under Revision", "Missing", "Editor", "Category", "Progress"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeCharts(md *markdown.Markdown, b *app.Board) {
	md.H2("Editors")
	md.PlainText("")
	if b.Charts == nil {
		md.Note("Charts are unavailable: " + b.ChartError)
		md.PlainText("")
		return
	}

	pie := b.Charts.Distribution
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Required Videos by Editor"),
		piechart.WithShowData(true),
	)
	slices := 0
	for i, label := range pie.Labels {
		if pie.Data[i] > 0 {
			chart.LabelAndIntValue(label, uint64(pie.Data[i]))
			slices++
		}
	}
	if slices > 0 {
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	bar := b.Charts.Workload
	header := []string{"Editor"}
	for _, ds := range bar.Datasets {
		header = append(header, ds.Label)
	}
	header = append(header, "Share")
	rows := make([][]string, 0, len(bar.Labels))
	for i, label := range bar.Labels {
		row := []string{label}
		for _, ds := range bar.Datasets {
			row = append(row, strconv.Itoa(ds.Data[i]))
		}
		row = append(row, strconv.Itoa(pie.Shares[i])+"%")
		rows = append(rows, row)
	}
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}
