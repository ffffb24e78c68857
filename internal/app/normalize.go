package app

import (
	"strings"

	"github.com/jaakkos/prodboard/internal/domain"
)

// Normalize turns source records into account records, deriving missing
// as required - revision unless mode trusts a supplied value. An absent
// revision counts as zero. Text fields are trimmed so filter values match
// what the table displays.
func Normalize(raws []domain.RawAccount, mode domain.MissingMode) []domain.AccountRecord {
	out := make([]domain.AccountRecord, 0, len(raws))
	for _, raw := range raws {
		rec := domain.AccountRecord{
			Account:  strings.TrimSpace(raw.Account),
			Required: raw.Required,
			Editor:   strings.TrimSpace(raw.Editor),
			Category: strings.TrimSpace(raw.Category),
		}
		if raw.Revision != nil {
			rec.Revision = *raw.Revision
		}
		if mode != domain.MissingDerived && raw.Missing != nil {
			rec.Missing = *raw.Missing
			rec.MissingSupplied = true
		} else {
			rec.Missing = rec.Required - rec.Revision
		}
		out = append(out, rec)
	}
	return out
}
