package repository

import (
	"context"
	"errors"

	"clearpass/internal/domain/entity"
)

// ErrImporterNotFound is returned when an importer record does not exist.
var ErrImporterNotFound = errors.New("importer not found")

// ImporterRepository defines persistence operations for importer records.
type ImporterRepository interface {
	// GetAll returns every stored importer.
	GetAll(ctx context.Context) ([]entity.Importer, error)

	// FindByID retrieves a single importer by ID.
	FindByID(ctx context.Context, id string) (*entity.Importer, error)

	// Save upserts an importer, generating an ID when absent.
	Save(ctx context.Context, importer *entity.Importer) (*entity.Importer, error)

	// Delete removes an importer. Returns true iff a record was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
