// Package domain holds production-tracking entities and the loaded dataset.
// It has no dependencies on other packages.
package domain

import (
	"strings"
	"time"
)

// FilterAll is the filter value that matches every editor or category.
const FilterAll = "all"

// MissingMode selects how a record's missing count is obtained.
type MissingMode string

const (
	// MissingFromInput trusts a supplied missing value and derives it otherwise.
	MissingFromInput MissingMode = "input"
	// MissingDerived always recomputes missing as required - revision.
	MissingDerived MissingMode = "derived"
)

// TotalsScope selects which records feed the summary cards and charts.
type TotalsScope string

const (
	ScopeAll      TotalsScope = "all"
	ScopeFiltered TotalsScope = "filtered"
)

// RawAccount is an account as read from a data source, before normalization.
// Revision and Missing are optional in every source format.
type RawAccount struct {
	Account  string `json:"account" yaml:"account"`
	Required int    `json:"required" yaml:"required"`
	Revision *int   `json:"revision,omitempty" yaml:"revision,omitempty"`
	Editor   string `json:"editor" yaml:"editor"`
	Category string `json:"category" yaml:"category"`
	Missing  *int   `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// AccountRecord is a tracked production unit with required and revised video counts.
type AccountRecord struct {
	Account  string `json:"account"`
	Required int    `json:"required"`
	Revision int    `json:"revision"`
	Editor   string `json:"editor"`
	Category string `json:"category"`
	Missing  int    `json:"missing"`
	// MissingSupplied is true when Missing came from the source rather than being derived.
	MissingSupplied bool `json:"missing_supplied,omitempty"`
}

// Dataset is the set of accounts currently served, plus where it came from.
// DataFile and DataChecksum identify the configured data file content the
// accounts stand for; after an import they differ from Source and Checksum.
type Dataset struct {
	Accounts     []AccountRecord `json:"accounts"`
	Source       string          `json:"source"`
	LoadedAt     time.Time       `json:"loaded_at"`
	Checksum     string          `json:"checksum,omitempty"`
	LoadError    string          `json:"load_error,omitempty"`
	MissingMode  MissingMode     `json:"missing_mode,omitempty"`
	DataFile     string          `json:"data_file,omitempty"`
	DataChecksum string          `json:"data_checksum,omitempty"`
}

// NewDataset returns an empty dataset that has never been loaded.
func NewDataset() *Dataset {
	return &Dataset{Accounts: []AccountRecord{}}
}

// Available reports whether any data was ever loaded into the dataset.
func (d *Dataset) Available() bool {
	return d != nil && !d.LoadedAt.IsZero()
}

// Clone returns a deep copy of d safe to hand out past a lock.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return NewDataset()
	}
	c := *d
	c.Accounts = append([]AccountRecord(nil), d.Accounts...)
	if c.Accounts == nil {
		c.Accounts = []AccountRecord{}
	}
	return &c
}

// Filter holds independent equality constraints on editor and category.
type Filter struct {
	Editor   string `json:"editor"`
	Category string `json:"category"`
}

// NewFilter builds a filter, treating blank values as FilterAll.
func NewFilter(editor, category string) Filter {
	f := Filter{Editor: strings.TrimSpace(editor), Category: strings.TrimSpace(category)}
	if f.Editor == "" {
		f.Editor = FilterAll
	}
	if f.Category == "" {
		f.Category = FilterAll
	}
	return f
}

// Matches reports whether r passes both constraints.
func (f Filter) Matches(r AccountRecord) bool {
	if f.Editor != "" && f.Editor != FilterAll && r.Editor != f.Editor {
		return false
	}
	if f.Category != "" && f.Category != FilterAll && r.Category != f.Category {
		return false
	}
	return true
}

// IsAll reports whether the filter lets every record through.
func (f Filter) IsAll() bool {
	return (f.Editor == "" || f.Editor == FilterAll) && (f.Category == "" || f.Category == FilterAll)
}

// Totals are aggregate counts over a set of records.
type Totals struct {
	Required int `json:"required"`
	Revision int `json:"revision"`
	Missing  int `json:"missing"`
	Editors  int `json:"editors"`
}
