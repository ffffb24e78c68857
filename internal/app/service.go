package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jaakkos/prodboard/internal/domain"
	"github.com/jaakkos/prodboard/internal/source"
)

// Loader reads and decodes a data file. source.Load is the default.
type Loader func(path string) (*source.Result, error)

// ReloadResult reports what a reload did.
type ReloadResult struct {
	Source   string `json:"source"`
	Accounts int    `json:"accounts"`
	Changed  bool   `json:"changed"`
	Error    string `json:"error,omitempty"`
}

// BoardService runs board use cases over the persisted dataset.
type BoardService struct {
	repo   DatasetRepository
	policy Policy
	logger *log.Logger
	load   Loader
	now    func() time.Time
	mu     sync.Mutex
}

// ServiceOption configures optional dependencies of the service.
type ServiceOption func(*BoardService)

// WithLoader replaces the data file loader (tests use an in-memory one).
func WithLoader(l Loader) ServiceOption {
	return func(s *BoardService) { s.load = l }
}

// WithClock replaces time.Now for load timestamps and board dates.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BoardService) { s.now = now }
}

// NewBoardService returns a new BoardService.
func NewBoardService(repo DatasetRepository, policy Policy, logger *log.Logger, opts ...ServiceOption) *BoardService {
	s := &BoardService{repo: repo, policy: policy, logger: logger, load: source.Load, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loads the dataset, runs fn, then saves. Caller must not retain the dataset after fn returns.
// If the store cannot be loaded the error is returned; a write never starts from an empty dataset.
func (s *BoardService) Run(fn func(*domain.Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, err := s.repo.Load()
	if err != nil {
		return fmt.Errorf("dataset load: %w", err)
	}
	if err := fn(ds); err != nil {
		return err
	}
	return s.repo.Save(ds)
}

// Query loads the dataset and runs fn without saving.
// If the store cannot be loaded, falls back to an empty dataset since no save will occur.
func (s *BoardService) Query(fn func(*domain.Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, err := s.repo.Load()
	if err != nil {
		s.logger.Printf("Warning: dataset load failed in Query: %v (using empty dataset)", err)
		ds = domain.NewDataset()
	}
	return fn(ds)
}

// Policy returns the configuration port.
func (s *BoardService) Policy() Policy { return s.policy }

// Reload reads the configured data file into the store. The store is not
// rewritten when the file content (path and checksum) and the missing mode
// match what the stored accounts were built from; an imported dataset thus
// stays until the configured file changes. On a load error the previous
// accounts are kept, the error is recorded on the dataset and returned.
func (s *BoardService) Reload() (ReloadResult, error) {
	path := s.policy.DataFile()
	mode := s.policy.MissingMode()
	res := ReloadResult{Source: path}
	if path == "" {
		err := fmt.Errorf("no data file configured")
		res.Error = err.Error()
		return res, err
	}

	loaded, loadErr := s.load(path)
	if loadErr == nil {
		unchanged := false
		_ = s.Query(func(ds *domain.Dataset) error {
			unchanged = ds.Available() && ds.LoadError == "" &&
				ds.DataFile == path && ds.DataChecksum == loaded.Checksum && ds.MissingMode == mode
			res.Accounts = len(ds.Accounts)
			return nil
		})
		if unchanged {
			return res, nil
		}
	}

	err := s.Run(func(ds *domain.Dataset) error {
		if loadErr != nil {
			ds.LoadError = loadErr.Error()
			res.Accounts = len(ds.Accounts)
			return nil
		}
		ds.Accounts = Normalize(loaded.Accounts, mode)
		ds.Source = path
		ds.Checksum = loaded.Checksum
		ds.MissingMode = mode
		ds.DataFile = path
		ds.DataChecksum = loaded.Checksum
		ds.LoadedAt = s.now()
		ds.LoadError = ""
		res.Accounts = len(ds.Accounts)
		res.Changed = true
		return nil
	})
	if err != nil {
		res.Error = err.Error()
		return res, fmt.Errorf("save dataset: %w", err)
	}
	if loadErr != nil {
		s.logger.Printf("Reload: %s failed: %v (keeping %d account(s))", path, loadErr, res.Accounts)
		res.Error = loadErr.Error()
		return res, loadErr
	}
	s.logger.Printf("Reload: %d account(s) from %s", res.Accounts, path)
	return res, nil
}

// Import loads raws directly into the store under the given source label.
// The configured data file's current checksum is recorded so a later Reload
// keeps the imported accounts until that file changes.
func (s *BoardService) Import(sourceLabel, checksum string, raws []domain.RawAccount) (ReloadResult, error) {
	res := ReloadResult{Source: sourceLabel, Changed: true}
	mode := s.policy.MissingMode()
	var dataFile, dataChecksum string
	if path := s.policy.DataFile(); path != "" {
		if current, err := s.load(path); err == nil {
			dataFile, dataChecksum = path, current.Checksum
		}
	}
	err := s.Run(func(ds *domain.Dataset) error {
		ds.Accounts = Normalize(raws, mode)
		ds.Source = sourceLabel
		ds.Checksum = checksum
		ds.MissingMode = mode
		ds.DataFile = dataFile
		ds.DataChecksum = dataChecksum
		ds.LoadedAt = s.now()
		ds.LoadError = ""
		res.Accounts = len(ds.Accounts)
		return nil
	})
	if err != nil {
		return ReloadResult{Source: sourceLabel, Error: err.Error()}, err
	}
	return res, nil
}

// Dataset returns a copy of the stored dataset.
func (s *BoardService) Dataset() *domain.Dataset {
	var out *domain.Dataset
	_ = s.Query(func(ds *domain.Dataset) error {
		out = ds.Clone()
		return nil
	})
	return out
}

// Options returns the board options from the current policy.
func (s *BoardService) Options() BoardOptions {
	return BoardOptions{
		UrgentThreshold: s.policy.UrgentThreshold(),
		Scope:           s.policy.TotalsScope(),
		Roster:          s.policy.Editors(),
		Palette:         s.policy.ChartColors(),
	}
}

// Board composes the dashboard for f from the stored dataset. Chart
// failures are logged and the board is returned without charts.
func (s *BoardService) Board(f domain.Filter) *Board {
	b := Compose(s.Dataset(), f, s.Options(), s.now())
	if b.ChartError != "" {
		s.logger.Printf("Chart rendering failed: %s", b.ChartError)
	}
	return b
}
