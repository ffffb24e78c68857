package app

import "github.com/jaakkos/prodboard/internal/domain"

// Row is one visible table row.
type Row struct {
	domain.AccountRecord
	Progress int `json:"progress"`
}

// FilterOptions are the values offered by the editor and category filter controls.
type FilterOptions struct {
	Editors    []string `json:"editors"`
	Categories []string `json:"categories"`
}

// View is the filtered table: visible rows in input order plus their totals.
type View struct {
	Filter domain.Filter `json:"filter"`
	Rows   []Row         `json:"rows"`
	Footer domain.Totals `json:"footer"`
}

// ProgressPercent returns round(revision/required * 100), or 0 when required is 0.
// Halves round up.
func ProgressPercent(required, revision int) int {
	if required <= 0 {
		return 0
	}
	return (200*revision + required) / (2 * required)
}

// ApplyFilter returns the records that pass f, in input order.
func ApplyFilter(records []domain.AccountRecord, f domain.Filter) []domain.AccountRecord {
	out := []domain.AccountRecord{}
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterView applies f and recomputes the footer for the visible rows only.
func FilterView(records []domain.AccountRecord, f domain.Filter) View {
	visible := ApplyFilter(records, f)
	rows := make([]Row, 0, len(visible))
	for _, r := range visible {
		rows = append(rows, Row{AccountRecord: r, Progress: ProgressPercent(r.Required, r.Revision)})
	}
	return View{Filter: f, Rows: rows, Footer: FooterTotals(visible)}
}

// Options lists the distinct editors and categories across all records.
func Options(records []domain.AccountRecord) FilterOptions {
	return FilterOptions{
		Editors:    sortedDistinct(records, func(r domain.AccountRecord) string { return r.Editor }),
		Categories: sortedDistinct(records, func(r domain.AccountRecord) string { return r.Category }),
	}
}
