package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jaakkos/prodboard/internal/domain"
)

// ErrEmptyRoster is returned when no editors are configured for the charts.
var ErrEmptyRoster = errors.New("chart roster is empty")

// PieChart is the editor distribution: required videos per roster editor.
type PieChart struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
	Colors []string `json:"colors"`
	// Shares holds round(data/total * 100) per slice; all zero when total is 0.
	Shares []int `json:"shares"`
}

// BarDataset is one series of the workload chart.
type BarDataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
	Color string `json:"color"`
}

// BarChart is the editor workload: required and missing videos per roster editor.
type BarChart struct {
	Labels   []string     `json:"labels"`
	Datasets []BarDataset `json:"datasets"`
}

// ChartSet holds both chart datasets.
type ChartSet struct {
	Distribution PieChart `json:"distribution"`
	Workload     BarChart `json:"workload"`
}

const (
	requiredSeriesColor = "#4fc3f7"
	missingSeriesColor  = "#f44336"
)

// BuildCharts buckets required and missing totals per roster editor.
// Records whose editor is not on the roster do not appear in the charts.
// The palette cycles when the roster is longer than it.
func BuildCharts(records []domain.AccountRecord, roster, palette []string) (*ChartSet, error) {
	if len(roster) == 0 {
		return nil, ErrEmptyRoster
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("chart palette is empty")
	}
	for _, c := range palette {
		if !validColor(c) {
			return nil, fmt.Errorf("invalid chart colour %q", c)
		}
	}
	index := make(map[string]int, len(roster))
	for i, name := range roster {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate editor %q in chart roster", name)
		}
		index[name] = i
	}

	required := make([]int, len(roster))
	missing := make([]int, len(roster))
	for _, r := range records {
		i, ok := index[r.Editor]
		if !ok {
			continue
		}
		required[i] += r.Required
		missing[i] += r.Missing
	}

	labels := append([]string(nil), roster...)
	colors := make([]string, len(roster))
	for i := range roster {
		colors[i] = palette[i%len(palette)]
	}

	return &ChartSet{
		Distribution: PieChart{
			Labels: labels,
			Data:   required,
			Colors: colors,
			Shares: shares(required),
		},
		Workload: BarChart{
			Labels: labels,
			Datasets: []BarDataset{
				{Label: "Required Videos", Data: append([]int(nil), required...), Color: requiredSeriesColor},
				{Label: "Missing Videos", Data: missing, Color: missingSeriesColor},
			},
		},
	}, nil
}

func shares(values []int) []int {
	total := 0
	for _, v := range values {
		total += v
	}
	out := make([]int, len(values))
	if total <= 0 {
		return out
	}
	for i, v := range values {
		out[i] = ProgressPercent(total, v)
	}
	return out
}

// validColor accepts #rgb and #rrggbb hex colours.
func validColor(c string) bool {
	if !strings.HasPrefix(c, "#") || (len(c) != 4 && len(c) != 7) {
		return false
	}
	for _, r := range c[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
