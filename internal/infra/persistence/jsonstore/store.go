// Package jsonstore persists entities in a single JSON file on disk. Each
// collection is a list of records under a top-level key, so the file doubles
// as a human-readable database for local deployments.
package jsonstore

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"clearpass/config"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Record is a stored entity. Fields the application does not know about are
// preserved across save cycles.
type Record = map[string]any

// Store is a thread-safe JSON file store. All public methods take the lock;
// writes reload the file first so the in-memory view never clobbers changes
// another process made to the file.
type Store struct {
	path   string
	mu     sync.Mutex
	data   map[string][]Record
	logger *slog.Logger
}

// New opens (or creates) the data file configured in storage.dataFile.
func New(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg.Storage == nil || cfg.Storage.DataFile == "" {
		return nil, errors.New("storage.dataFile is not configured")
	}

	s := &Store{
		path:   cfg.Storage.DataFile,
		logger: logger,
	}

	if err := s.ensureFile(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = s.load()
	logger.Info("JSON store initialized", slog.String("path", s.path))

	return s, nil
}

// GetAll returns a snapshot of every record in the collection.
func (s *Store) GetAll(collection string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[collection]; !ok {
		s.data[collection] = []Record{}
	}

	return snapshot(s.data[collection])
}

// GetByID returns the record with the given id, or nil if absent.
func (s *Store) GetByID(collection, id string) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.data[collection] {
		if rec["id"] == id {
			return copyRecord(rec)
		}
	}

	return nil
}

// FindByAttribute returns every record whose attribute equals value.
func (s *Store) FindByAttribute(collection, attribute string, value any) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []Record
	for _, rec := range s.data[collection] {
		if rec[attribute] == value {
			results = append(results, copyRecord(rec))
		}
	}

	return results
}

// SaveEntity inserts or updates a record by its "id" field. A missing or
// empty id gets a generated UUID. The stored record is returned.
func (s *Store) SaveEntity(collection string, record Record) (Record, error) {
	record = copyRecord(record)

	id, _ := record["id"].(string)
	if id == "" {
		id = uuid.New().String()
		record["id"] = id
		s.logger.Debug("Generated id for new record",
			slog.String("collection", collection), slog.String("id", id))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Resync with the file before mutating
	s.data = s.load()

	records := s.data[collection]
	found := false
	for i, existing := range records {
		if existing["id"] == id {
			records[i] = record
			found = true
			break
		}
	}
	if !found {
		records = append(records, record)
	}
	s.data[collection] = records

	if err := s.persist(); err != nil {
		return nil, err
	}

	return copyRecord(record), nil
}

// DeleteEntity removes the record with the given id. It reports whether a
// record was removed; the file is rewritten only when one was.
func (s *Store) DeleteEntity(collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, ok := s.data[collection]
	if !ok {
		return false, nil
	}

	kept := records[:0]
	for _, rec := range records {
		if rec["id"] != id {
			kept = append(kept, rec)
		}
	}

	if len(kept) == len(records) {
		return false, nil
	}
	s.data[collection] = kept

	if err := s.persist(); err != nil {
		return false, err
	}
	s.logger.Info("Record deleted",
		slog.String("collection", collection), slog.String("id", id))

	return true, nil
}

func (s *Store) ensureFile() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.Wrapf(err, "failed to create data directory %s", dir)
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.logger.Info("Creating empty data file", slog.String("path", s.path))
		if err := os.WriteFile(s.path, []byte("{}"), 0o640); err != nil {
			return errors.Wrapf(err, "failed to create data file %s", s.path)
		}
	} else if err != nil {
		return errors.Wrapf(err, "failed to stat data file %s", s.path)
	}

	return nil
}

// load reads the data file. A missing, empty, or corrupt file degrades to an
// empty data set with a warning rather than taking the service down.
// Callers must hold the lock.
func (s *Store) load() map[string][]Record {
	raw, err := os.ReadFile(s.path)
	if err != nil || len(raw) == 0 {
		s.logger.Warn("Data file missing or empty, starting with no records",
			slog.String("path", s.path))

		return map[string][]Record{}
	}

	var data map[string][]Record
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Error("Data file is not valid JSON, starting with no records",
			slog.String("path", s.path), slog.Any("error", err))

		return map[string][]Record{}
	}
	if data == nil {
		data = map[string][]Record{}
	}

	return data
}

// persist writes the in-memory data back to the file. Callers must hold the
// lock.
func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.data, "", "    ")
	if err != nil {
		return errors.Wrap(err, "failed to encode data file")
	}

	if err := os.WriteFile(s.path, raw, 0o640); err != nil {
		s.logger.Error("Failed to write data file",
			slog.String("path", s.path), slog.Any("error", err))

		return errors.Wrapf(err, "failed to write data file %s", s.path)
	}

	return nil
}

func snapshot(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = copyRecord(rec)
	}

	return out
}

func copyRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}

	return out
}
