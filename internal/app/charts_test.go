package app

import (
	"errors"
	"testing"

	"github.com/jaakkos/prodboard/internal/domain"
)

func TestBuildCharts(t *testing.T) {
	records := append(sampleRecords(), domain.AccountRecord{Account: "D", Required: 7, Missing: 7, Editor: "Outsider"})
	cs, err := BuildCharts(records, []string{"Ramon", "Duno", "Chris"}, []string{"#111111", "#222222"})
	if err != nil {
		t.Fatalf("BuildCharts: %v", err)
	}

	pie := cs.Distribution
	if got, want := pie.Data, []int{18, 5, 0}; !equalInts(got, want) {
		t.Errorf("pie data = %v, want %v", got, want)
	}
	if got, want := pie.Colors, []string{"#111111", "#222222", "#111111"}; !equalStrings(got, want) {
		t.Errorf("pie colors = %v, want %v", got, want)
	}
	if got, want := pie.Shares, []int{78, 22, 0}; !equalInts(got, want) {
		t.Errorf("pie shares = %v, want %v", got, want)
	}

	bar := cs.Workload
	if len(bar.Datasets) != 2 {
		t.Fatalf("expected 2 bar datasets, got %d", len(bar.Datasets))
	}
	if bar.Datasets[0].Label != "Required Videos" || bar.Datasets[1].Label != "Missing Videos" {
		t.Errorf("unexpected series labels: %q, %q", bar.Datasets[0].Label, bar.Datasets[1].Label)
	}
	if got, want := bar.Datasets[1].Data, []int{12, 0, 0}; !equalInts(got, want) {
		t.Errorf("missing series = %v, want %v", got, want)
	}
	if !equalStrings(bar.Labels, []string{"Ramon", "Duno", "Chris"}) {
		t.Errorf("bar labels = %v", bar.Labels)
	}
}

func TestBuildCharts_NoRecords(t *testing.T) {
	cs, err := BuildCharts(nil, []string{"Ramon"}, []string{"#4fc3f7"})
	if err != nil {
		t.Fatalf("BuildCharts: %v", err)
	}
	if cs.Distribution.Data[0] != 0 || cs.Distribution.Shares[0] != 0 {
		t.Errorf("expected zero slice, got %+v", cs.Distribution)
	}
}

func TestBuildCharts_Errors(t *testing.T) {
	tests := []struct {
		name    string
		roster  []string
		palette []string
	}{
		{"empty roster", nil, []string{"#fff"}},
		{"empty palette", []string{"Ramon"}, nil},
		{"bad colour", []string{"Ramon"}, []string{"blue"}},
		{"bad hex", []string{"Ramon"}, []string{"#12345z"}},
		{"duplicate editor", []string{"Ramon", "Ramon"}, []string{"#fff"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildCharts(sampleRecords(), tt.roster, tt.palette); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := BuildCharts(nil, nil, []string{"#fff"}); !errors.Is(err, ErrEmptyRoster) {
		t.Errorf("expected ErrEmptyRoster, got %v", err)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
