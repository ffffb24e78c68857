package app

import (
	"time"

	"github.com/jaakkos/prodboard/internal/domain"
)

// MissingDataNotice is shown in place of the urgent-accounts panel when no data was ever loaded.
const MissingDataNotice = "Could not load production data. Please check the data file."

// DateLayout renders the board date the way en-US long dates read (October 14, 2026).
const DateLayout = "January 2, 2006"

// BoardOptions carries the configuration Compose needs.
type BoardOptions struct {
	UrgentThreshold int
	Scope           domain.TotalsScope
	Roster          []string
	Palette         []string
}

// Board is the fully computed dashboard for one filter.
type Board struct {
	Available  bool                   `json:"available"`
	Notice     string                 `json:"notice,omitempty"`
	Source     string                 `json:"source,omitempty"`
	LoadedAt   time.Time              `json:"loaded_at,omitempty"`
	LoadError  string                 `json:"load_error,omitempty"`
	Date       string                 `json:"date"`
	Scope      domain.TotalsScope     `json:"scope"`
	Summary    domain.Totals          `json:"summary"`
	Urgent     []domain.AccountRecord `json:"urgent"`
	View       View                   `json:"view"`
	Options    FilterOptions          `json:"options"`
	Charts     *ChartSet              `json:"charts,omitempty"`
	ChartError string                 `json:"chart_error,omitempty"`
}

// Compose runs the aggregator, urgent selector, filter view and chart
// builder over ds. Summary and charts cover every record unless the scope
// is filtered; the urgent list always covers every record and the footer
// always covers the visible rows. A chart failure leaves Charts nil and
// sets ChartError; the rest of the board is still built.
func Compose(ds *domain.Dataset, f domain.Filter, opts BoardOptions, now time.Time) *Board {
	if opts.Scope == "" {
		opts.Scope = domain.ScopeAll
	}
	b := &Board{
		Date:  now.Format(DateLayout),
		Scope: opts.Scope,
	}
	if ds != nil {
		b.Source = ds.Source
		b.LoadedAt = ds.LoadedAt
		b.LoadError = ds.LoadError
	}
	if !ds.Available() {
		b.Notice = MissingDataNotice
		b.Urgent = []domain.AccountRecord{}
		b.View = View{Filter: f, Rows: []Row{}}
		b.Options = FilterOptions{Editors: []string{}, Categories: []string{}}
		return b
	}
	b.Available = true

	records := ds.Accounts
	b.View = FilterView(records, f)
	b.Urgent = SelectUrgent(records, opts.UrgentThreshold)
	b.Options = Options(records)

	scoped := records
	if opts.Scope == domain.ScopeFiltered {
		scoped = ApplyFilter(records, f)
	}
	b.Summary = Aggregate(scoped)

	charts, err := BuildCharts(scoped, opts.Roster, opts.Palette)
	if err != nil {
		b.ChartError = err.Error()
	} else {
		b.Charts = charts
	}
	return b
}
