package repository

import (
	"github.com/jaakkos/prodboard/internal/app"
	"github.com/jaakkos/prodboard/internal/repository/sqlite"
)

// NewDatasetRepository returns a DatasetRepository backed by SQLite at the given path.
// The path is typically from policy.StateFile() (default ~/.config/prodboard/state.sqlite).
func NewDatasetRepository(path string) (app.DatasetRepository, error) {
	return sqlite.New(path)
}
