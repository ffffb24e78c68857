// Package app implements the board use cases and defines ports (repository and policy interfaces).
package app

import (
	"github.com/jaakkos/prodboard/internal/domain"
)

// DatasetRepository loads and saves the served dataset.
// Implementation: internal/repository/sqlite.
type DatasetRepository interface {
	Load() (*domain.Dataset, error)
	Save(*domain.Dataset) error
}
