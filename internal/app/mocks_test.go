package app

import (
	"errors"
	"io"
	"log"
	"sync"

	"github.com/jaakkos/prodboard/internal/domain"
)

type testRepo struct {
	ds      *domain.Dataset
	saves   int
	loadErr error
	mu      sync.Mutex
}

func (r *testRepo) Load() (*domain.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.ds == nil {
		return domain.NewDataset(), nil
	}
	return r.ds.Clone(), nil
}

func (r *testRepo) Save(ds *domain.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ds = ds.Clone()
	r.saves++
	return nil
}

type testPolicy struct {
	dataFile  string
	threshold int
	mode      domain.MissingMode
	scope     domain.TotalsScope
	editors   []string
	colors    []string
	disabled  map[string]bool
}

func newTestPolicy(dataFile string) *testPolicy {
	return &testPolicy{
		dataFile:  dataFile,
		threshold: 3,
		mode:      domain.MissingFromInput,
		scope:     domain.ScopeAll,
		editors:   []string{"Ramon", "Duno"},
		colors:    []string{"#4fc3f7", "#ff9800"},
	}
}

func (p *testPolicy) DataFile() string { return p.dataFile }
func (p *testPolicy) SetDataFile(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	p.dataFile = path
	return path, nil
}
func (p *testPolicy) UrgentThreshold() int            { return p.threshold }
func (p *testPolicy) MissingMode() domain.MissingMode { return p.mode }
func (p *testPolicy) TotalsScope() domain.TotalsScope { return p.scope }
func (p *testPolicy) Editors() []string               { return p.editors }
func (p *testPolicy) ChartColors() []string           { return p.colors }
func (p *testPolicy) IsToolEnabled(name string) bool  { return !p.disabled[name] }

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func intPtr(v int) *int { return &v }
