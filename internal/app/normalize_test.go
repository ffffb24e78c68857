package app

import (
	"testing"

	"github.com/jaakkos/prodboard/internal/domain"
)

func TestNormalize(t *testing.T) {
	raws := []domain.RawAccount{
		{Account: " Alpha ", Required: 10, Revision: intPtr(4), Editor: " Ramon", Category: "Tier 1 "},
		{Account: "Beta", Required: 5, Editor: "Duno", Category: "Tier 2"},
		{Account: "Gamma", Required: 8, Revision: intPtr(2), Editor: "Duno", Category: "Tier 2", Missing: intPtr(1)},
	}

	tests := []struct {
		name         string
		mode         domain.MissingMode
		wantMissing  []int
		wantSupplied []bool
	}{
		{"input", domain.MissingFromInput, []int{6, 5, 1}, []bool{false, false, true}},
		{"derived", domain.MissingDerived, []int{6, 5, 6}, []bool{false, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(raws, tt.mode)
			if len(got) != 3 {
				t.Fatalf("expected 3 records, got %d", len(got))
			}
			for i, r := range got {
				if r.Missing != tt.wantMissing[i] {
					t.Errorf("record %d missing = %d, want %d", i, r.Missing, tt.wantMissing[i])
				}
				if r.MissingSupplied != tt.wantSupplied[i] {
					t.Errorf("record %d supplied = %v, want %v", i, r.MissingSupplied, tt.wantSupplied[i])
				}
			}
		})
	}
}

func TestNormalize_TrimsAndDefaultsRevision(t *testing.T) {
	got := Normalize([]domain.RawAccount{
		{Account: " Alpha ", Required: 5, Editor: " Ramon", Category: "Tier 1 "},
	}, domain.MissingFromInput)
	r := got[0]
	if r.Account != "Alpha" || r.Editor != "Ramon" || r.Category != "Tier 1" {
		t.Errorf("fields not trimmed: %+v", r)
	}
	if r.Revision != 0 {
		t.Errorf("absent revision = %d, want 0", r.Revision)
	}
}

func TestNormalize_Empty(t *testing.T) {
	got := Normalize(nil, domain.MissingFromInput)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}
