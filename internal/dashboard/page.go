package dashboard

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/jaakkos/prodboard/internal/app"
	"github.com/jaakkos/prodboard/internal/domain"
)

var pageTemplate = template.Must(template.New("dashboard").Parse(dashboardHTML))

type pageData struct {
	*app.Board
	AllValue string
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	b := h.board(r)
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{Board: b, AllValue: domain.FilterAll}); err != nil {
		h.logger.Printf("Dashboard: render failed: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(buf.Bytes())
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Production Dashboard</title>
<style>
  :root {
    --bg: #0d1117;
    --surface: #161b22;
    --border: #30363d;
    --text: #e6edf3;
    --text-dim: #8b949e;
    --accent: #4fc3f7;
    --green: #4caf50;
    --red: #f44336;
  }
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif;
    background: var(--bg);
    color: var(--text);
    font-size: 14px;
    line-height: 1.5;
    padding: 16px;
  }
  header {
    display: flex;
    align-items: center;
    justify-content: space-between;
    margin-bottom: 16px;
    padding-bottom: 12px;
    border-bottom: 1px solid var(--border);
  }
  header h1 { font-size: 20px; font-weight: 600; }
  .meta { font-size: 12px; color: var(--text-dim); }
  .stats { display: grid; grid-template-columns: repeat(4, 1fr); gap: 12px; margin-bottom: 16px; }
  .card { background: var(--surface); border: 1px solid var(--border); border-radius: 6px; padding: 12px; }
  .card .value { font-size: 24px; font-weight: 600; }
  .card .label { color: var(--text-dim); font-size: 12px; }
  section { margin-bottom: 16px; }
  section h2 { font-size: 16px; margin-bottom: 8px; }
  .urgent-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(240px, 1fr)); gap: 12px; }
  .missing { color: var(--red); font-weight: 600; }
  .error-message { color: var(--red); }
  .charts { display: grid; grid-template-columns: 1fr 1fr; gap: 12px; }
  .chart-box { height: 300px; }
  form.filters { display: flex; gap: 8px; margin-bottom: 8px; }
  select, button { background: var(--surface); color: var(--text); border: 1px solid var(--border); border-radius: 4px; padding: 4px 8px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid var(--border); }
  tfoot td { font-weight: 600; }
  .progress-container { background: var(--border); border-radius: 3px; height: 6px; width: 100px; }
  .progress-bar { background: var(--green); height: 6px; border-radius: 3px; }
  .progress-label { font-size: 11px; color: var(--text-dim); }
</style>
</head>
<body>
<header>
  <h1>Production Dashboard</h1>
  <div class="meta"><span id="current-date">{{.Date}}</span>{{if .Source}} &middot; {{.Source}}{{end}}{{if .LoadError}} &middot; <span class="error-message">last reload failed: {{.LoadError}}</span>{{end}}</div>
</header>

<div class="stats">
  <div class="card"><div class="value" id="total-required">{{.Summary.Required}}</div><div class="label">Required Videos</div></div>
  <div class="card"><div class="value" id="total-revision">{{.Summary.Revision}}</div><div class="label">Under Revision</div></div>
  <div class="card"><div class="value" id="total-missing">{{.Summary.Missing}}</div><div class="label">Missing Videos</div></div>
  <div class="card"><div class="value" id="active-editors">{{.Summary.Editors}}</div><div class="label">Active Editors</div></div>
</div>

<section>
  <h2>Urgent Accounts</h2>
  <div id="urgent-accounts" class="urgent-grid">
  {{- if .Notice}}
    <p class="error-message">{{.Notice}}</p>
  {{- else}}
    {{- range .Urgent}}
    <div class="card">
      <h3>{{.Account}}</h3>
      <p>{{.Required}} required | {{.Revision}} under revision | <span class="missing">{{.Missing}} missing</span></p>
      <p>Editor: {{.Editor}}</p>
      <p>Category: {{.Category}}</p>
    </div>
    {{- else}}
    <p class="meta">No urgent accounts.</p>
    {{- end}}
  {{- end}}
  </div>
</section>

{{if .Charts}}
<section class="charts">
  <div class="card"><h2>Editor Distribution</h2><div class="chart-box"><canvas id="editor-distribution"></canvas></div></div>
  <div class="card"><h2>Editor Workload</h2><div class="chart-box"><canvas id="editor-workload"></canvas></div></div>
</section>
{{end}}

<section>
  <h2>Production Status</h2>
  <form class="filters" method="get" action="/dashboard">
    <select id="editor-filter" name="editor">
      <option value="{{.AllValue}}">All editors</option>
      {{- range .Options.Editors}}
      <option value="{{.}}"{{if eq . $.View.Filter.Editor}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
    <select id="category-filter" name="category">
      <option value="{{.AllValue}}">All categories</option>
      {{- range .Options.Categories}}
      <option value="{{.}}"{{if eq . $.View.Filter.Category}} selected{{end}}>{{.}}</option>
      {{- end}}
    </select>
    <button type="submit">Filter</button>
  </form>
  <table>
    <thead>
      <tr><th>Account</th><th>Required</th><th>Under Revision</th><th>Missing</th><th>Editor</th><th>Category</th><th>Progress</th></tr>
    </thead>
    <tbody id="production-table">
    {{- range .View.Rows}}
      <tr>
        <td class="account">{{.Account}}</td>
        <td class="required">{{.Required}}</td>
        <td class="revision">{{.Revision}}</td>
        <td class="missing">{{.Missing}}</td>
        <td class="editor">{{.Editor}}</td>
        <td class="category">{{.Category}}</td>
        <td>
          <div class="progress-container"><div class="progress-bar" style="width: {{.Progress}}%"></div></div>
          <div class="progress-label">{{.Progress}}%</div>
        </td>
      </tr>
    {{- end}}
    </tbody>
    <tfoot>
      <tr>
        <td>Total</td>
        <td id="footer-required">{{.View.Footer.Required}}</td>
        <td id="footer-revision">{{.View.Footer.Revision}}</td>
        <td id="footer-missing">{{.View.Footer.Missing}}</td>
        <td colspan="3"></td>
      </tr>
    </tfoot>
  </table>
</section>

{{if .Charts}}
<script id="chart-data" type="application/json">{{.Charts}}</script>
<script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
<script>
(function () {
  try {
    const charts = JSON.parse(document.getElementById("chart-data").textContent);
    const pie = charts.distribution;
    new Chart(document.getElementById("editor-distribution"), {
      type: "pie",
      data: { labels: pie.labels, datasets: [{ data: pie.data, backgroundColor: pie.colors }] },
      options: {
        responsive: true,
        maintainAspectRatio: false,
        plugins: {
          legend: { position: "right", labels: { color: "#fff", font: { size: 12 } } },
          tooltip: { callbacks: { label: (ctx) => ctx.label + ": " + ctx.parsed + " (" + pie.shares[ctx.dataIndex] + "%)" } },
        },
      },
    });
    const bar = charts.workload;
    new Chart(document.getElementById("editor-workload"), {
      type: "bar",
      data: {
        labels: bar.labels,
        datasets: bar.datasets.map((d) => ({ label: d.label, data: d.data, backgroundColor: d.color })),
      },
      options: {
        responsive: true,
        maintainAspectRatio: false,
        scales: { y: { beginAtZero: true, title: { display: true, text: "Number of Videos" } } },
        plugins: {
          legend: { position: "top", labels: { color: "#fff" } },
          tooltip: { mode: "index", intersect: false },
        },
      },
    });
  } catch (e) {
    console.error("Chart rendering failed", e);
  }
})();
</script>
{{end}}
</body>
</html>
`
