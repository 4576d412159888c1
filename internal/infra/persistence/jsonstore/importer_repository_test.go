package jsonstore

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"clearpass/config"
	"clearpass/internal/domain/entity"
	"clearpass/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImporterRepo(t *testing.T) repository.ImporterRepository {
	t.Helper()

	cfg := &config.Config{Storage: &config.StorageConfig{
		DataFile: filepath.Join(t.TempDir(), "data.json"),
	}}

	store, err := New(cfg, slog.Default())
	require.NoError(t, err)

	return NewImporterRepository(store, slog.Default())
}

func TestImporterRepository_SaveAndFind(t *testing.T) {
	repo := newTestImporterRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, &entity.Importer{
		CompanyName:        "Dragon Trade Solutions",
		RUC:                "20100070970",
		CountryOfOrigin:    "China",
		ContactEmail:       "contact@dragontrade.example",
		SpecialtyProducts:  []string{"electronics", "textiles"},
		ImportVolumeUSD:    30000000,
		YearsInBusiness:    15,
		SuccessfulImports:  480,
		ClientSatisfaction: 4.8,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dragon Trade Solutions", found.CompanyName)
	assert.Equal(t, []string{"electronics", "textiles"}, found.SpecialtyProducts)
	assert.InDelta(t, 30000000, found.ImportVolumeUSD, 0.01)
	assert.Equal(t, 15, found.YearsInBusiness)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrImporterNotFound)
}

func TestImporterRepository_GetAll(t *testing.T) {
	repo := newTestImporterRepo(t)
	ctx := context.Background()

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = repo.Save(ctx, &entity.Importer{CompanyName: "First"})
	require.NoError(t, err)
	_, err = repo.Save(ctx, &entity.Importer{CompanyName: "Second"})
	require.NoError(t, err)

	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImporterRepository_UpdateByID(t *testing.T) {
	repo := newTestImporterRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, &entity.Importer{CompanyName: "Before", ImportVolumeUSD: 100})
	require.NoError(t, err)

	saved.CompanyName = "After"
	saved.ImportVolumeUSD = 200

	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "After", updated.CompanyName)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestImporterRepository_Delete(t *testing.T) {
	repo := newTestImporterRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, &entity.Importer{CompanyName: "Temp"})
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, saved.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
