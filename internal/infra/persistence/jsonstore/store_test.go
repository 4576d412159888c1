package jsonstore

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"clearpass/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := &config.Config{Storage: &config.StorageConfig{
		DataFile: filepath.Join(t.TempDir(), "data.json"),
	}}

	s, err := New(cfg, slog.Default())
	require.NoError(t, err)

	return s
}

func TestStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)

	saved, err := s.SaveEntity("users", Record{"email": "a@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved["id"], "new records get a generated id")

	id := saved["id"].(string)
	got := s.GetByID("users", id)
	require.NotNil(t, got)
	assert.Equal(t, "a@example.com", got["email"])

	assert.Nil(t, s.GetByID("users", "missing"))
	assert.Nil(t, s.GetByID("nope", id))
}

func TestStore_SaveUpdatesExisting(t *testing.T) {
	s := newTestStore(t)

	saved, err := s.SaveEntity("users", Record{"id": "u1", "name": "old"})
	require.NoError(t, err)
	assert.Equal(t, "u1", saved["id"])

	_, err = s.SaveEntity("users", Record{"id": "u1", "name": "new"})
	require.NoError(t, err)

	all := s.GetAll("users")
	require.Len(t, all, 1)
	assert.Equal(t, "new", all[0]["name"])
}

func TestStore_PreservesUnknownFields(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveEntity("users", Record{"id": "u1", "legacy_field": "keep me"})
	require.NoError(t, err)

	got := s.GetByID("users", "u1")
	require.NotNil(t, got)
	assert.Equal(t, "keep me", got["legacy_field"])
}

func TestStore_FindByAttribute(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveEntity("users", Record{"id": "u1", "role": "admin"})
	require.NoError(t, err)
	_, err = s.SaveEntity("users", Record{"id": "u2", "role": "member"})
	require.NoError(t, err)
	_, err = s.SaveEntity("users", Record{"id": "u3", "role": "admin"})
	require.NoError(t, err)

	admins := s.FindByAttribute("users", "role", "admin")
	assert.Len(t, admins, 2)

	assert.Empty(t, s.FindByAttribute("users", "role", "ghost"))
	assert.Empty(t, s.FindByAttribute("missing", "role", "admin"))
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveEntity("users", Record{"id": "u1"})
	require.NoError(t, err)

	removed, err := s.DeleteEntity("users", "u1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Nil(t, s.GetByID("users", "u1"))

	removed, err = s.DeleteEntity("users", "u1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	cfg := &config.Config{Storage: &config.StorageConfig{DataFile: path}}

	first, err := New(cfg, slog.Default())
	require.NoError(t, err)
	_, err = first.SaveEntity("importers", Record{"id": "i1", "company_name": "Acme"})
	require.NoError(t, err)

	second, err := New(cfg, slog.Default())
	require.NoError(t, err)

	got := second.GetByID("importers", "i1")
	require.NotNil(t, got)
	assert.Equal(t, "Acme", got["company_name"])
}

func TestStore_CorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o640))

	cfg := &config.Config{Storage: &config.StorageConfig{DataFile: path}}
	s, err := New(cfg, slog.Default())
	require.NoError(t, err)

	assert.Empty(t, s.GetAll("users"))
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveEntity("users", Record{"id": "u1", "name": "original"})
	require.NoError(t, err)

	all := s.GetAll("users")
	all[0]["name"] = "mutated"

	got := s.GetByID("users", "u1")
	assert.Equal(t, "original", got["name"])
}
