package domain

import (
	"testing"
	"time"
)

func TestNewDataset(t *testing.T) {
	d := NewDataset()
	if d == nil {
		t.Fatal("NewDataset() returned nil")
	}
	if d.Accounts == nil {
		t.Error("Accounts should not be nil")
	}
	if d.Available() {
		t.Error("new dataset should not be available")
	}
	d.LoadedAt = time.Now()
	if !d.Available() {
		t.Error("dataset with LoadedAt should be available")
	}
}

func TestDatasetClone(t *testing.T) {
	d := &Dataset{Accounts: []AccountRecord{{Account: "a", Required: 2}}, Source: "x.json"}
	c := d.Clone()
	c.Accounts[0].Required = 9
	if d.Accounts[0].Required != 2 {
		t.Errorf("clone shares accounts slice: original Required = %d", d.Accounts[0].Required)
	}
	if c.Source != "x.json" {
		t.Errorf("Source = %q, want x.json", c.Source)
	}

	var nilSet *Dataset
	if got := nilSet.Clone(); got == nil || got.Accounts == nil {
		t.Error("Clone of nil should return an empty dataset")
	}
}

func TestFilterMatches(t *testing.T) {
	r := AccountRecord{Account: "acme", Editor: "Ramon", Category: "Shorts"}
	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"all", NewFilter("", ""), true},
		{"explicit all", NewFilter("all", "all"), true},
		{"editor match", NewFilter("Ramon", ""), true},
		{"editor mismatch", NewFilter("Duno", ""), false},
		{"category match", NewFilter("", "Shorts"), true},
		{"both match", NewFilter(" Ramon ", "Shorts"), true},
		{"category mismatch", NewFilter("Ramon", "Long"), false},
		{"zero value", Filter{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(r); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterIsAll(t *testing.T) {
	if !NewFilter("", "").IsAll() {
		t.Error("blank filter should be all")
	}
	if NewFilter("Chris", "").IsAll() {
		t.Error("editor filter should not be all")
	}
}
