package jsonstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"clearpass/internal/domain/entity"
	"clearpass/internal/domain/repository"

	"github.com/pkg/errors"
)

const importersCollection = "importers"

// ImporterRepositoryImpl stores importer companies in the JSON store.
type ImporterRepositoryImpl struct {
	store  *Store
	logger *slog.Logger
}

// NewImporterRepository creates a new importer repository.
func NewImporterRepository(store *Store, logger *slog.Logger) repository.ImporterRepository {
	return &ImporterRepositoryImpl{store: store, logger: logger}
}

// GetAll implements repository.ImporterRepository interface
func (r *ImporterRepositoryImpl) GetAll(ctx context.Context) ([]entity.Importer, error) {
	records := r.store.GetAll(importersCollection)

	importers := make([]entity.Importer, 0, len(records))
	for _, rec := range records {
		imp, err := recordToImporter(rec)
		if err != nil {
			r.logger.Warn("Skipping malformed importer record",
				slog.Any("id", rec["id"]), slog.Any("error", err))
			continue
		}
		importers = append(importers, *imp)
	}

	return importers, nil
}

// FindByID implements repository.ImporterRepository interface
func (r *ImporterRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Importer, error) {
	rec := r.store.GetByID(importersCollection, id)
	if rec == nil {
		return nil, repository.ErrImporterNotFound
	}

	return recordToImporter(rec)
}

// Save implements repository.ImporterRepository interface
func (r *ImporterRepositoryImpl) Save(ctx context.Context, importer *entity.Importer) (*entity.Importer, error) {
	rec, err := importerToRecord(importer)
	if err != nil {
		return nil, err
	}

	saved, err := r.store.SaveEntity(importersCollection, rec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save importer")
	}

	result, err := recordToImporter(saved)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Importer saved", slog.String("id", result.ID))

	return result, nil
}

// Delete implements repository.ImporterRepository interface
func (r *ImporterRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	return r.store.DeleteEntity(importersCollection, id)
}

func importerToRecord(importer *entity.Importer) (Record, error) {
	raw, err := json.Marshal(importer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode importer")
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Wrap(err, "failed to convert importer to record")
	}

	return rec, nil
}

func recordToImporter(rec Record) (*entity.Importer, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode importer record")
	}

	var importer entity.Importer
	if err := json.Unmarshal(raw, &importer); err != nil {
		return nil, errors.Wrap(err, "failed to decode importer record")
	}

	return &importer, nil
}
