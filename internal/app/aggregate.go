package app

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jaakkos/prodboard/internal/domain"
)

// Aggregate sums required and revision over records. Missing is the
// difference of the two sums, and Editors counts distinct editor values,
// a blank editor included.
func Aggregate(records []domain.AccountRecord) domain.Totals {
	var t domain.Totals
	editors := make(map[string]struct{})
	for _, r := range records {
		t.Required += r.Required
		t.Revision += r.Revision
		editors[r.Editor] = struct{}{}
	}
	t.Missing = t.Required - t.Revision
	t.Editors = len(editors)
	return t
}

// FooterTotals sums the rows' own missing values, so the footer always
// equals the sum of the visible missing column even when some missing
// counts were supplied rather than derived.
func FooterTotals(records []domain.AccountRecord) domain.Totals {
	t := Aggregate(records)
	t.Missing = 0
	for _, r := range records {
		t.Missing += r.Missing
	}
	return t
}

// SelectUrgent returns the records with missing >= threshold, most missing
// first, ties ordered by account name.
func SelectUrgent(records []domain.AccountRecord, threshold int) []domain.AccountRecord {
	urgent := []domain.AccountRecord{}
	for _, r := range records {
		if r.Missing >= threshold {
			urgent = append(urgent, r)
		}
	}
	cmp := newNameComparer()
	sort.SliceStable(urgent, func(i, j int) bool {
		if urgent[i].Missing != urgent[j].Missing {
			return urgent[i].Missing > urgent[j].Missing
		}
		return cmp.less(urgent[i].Account, urgent[j].Account)
	})
	return urgent
}

// nameComparer orders names with an English collator, falling back to
// byte order when the collator ranks two names equal. Not safe for
// concurrent use; create one per sort.
type nameComparer struct {
	c *collate.Collator
}

func newNameComparer() *nameComparer {
	return &nameComparer{c: collate.New(language.English)}
}

func (n *nameComparer) less(a, b string) bool {
	if c := n.c.CompareString(a, b); c != 0 {
		return c < 0
	}
	return a < b
}

// sortedDistinct returns the distinct non-empty values of field over records, collated.
func sortedDistinct(records []domain.AccountRecord, field func(domain.AccountRecord) string) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, r := range records {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	cmp := newNameComparer()
	sort.Slice(values, func(i, j int) bool { return cmp.less(values[i], values[j]) })
	return values
}
