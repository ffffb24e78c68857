package app

import "github.com/jaakkos/prodboard/internal/domain"

// Policy is the configuration port used by the application.
// Implemented by internal/policy.Policy.
type Policy interface {
	DataFile() string
	SetDataFile(path string) (string, error)
	UrgentThreshold() int
	MissingMode() domain.MissingMode
	TotalsScope() domain.TotalsScope
	Editors() []string
	ChartColors() []string
	IsToolEnabled(name string) bool
}
