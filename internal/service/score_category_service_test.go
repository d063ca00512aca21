package service

import (
	"testing"

	"github.com/nandaakram/chapter-assessment/internal/model"
	"github.com/nandaakram/chapter-assessment/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultsOnEmptyCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoreCategoryService(repository.NewScoreCategoryRepository(db))

	require.NoError(t, svc.SeedDefaults())

	bands, err := svc.List()
	require.NoError(t, err)
	require.Len(t, bands, 4)
	assert.Equal(t, "A", bands[0].Name)
	assert.Equal(t, 90, bands[0].MinScore)
	assert.Equal(t, "D", bands[3].Name)
	assert.Equal(t, 64, bands[3].MaxScore)

	// Second run is a no-op, never a duplicate seed.
	require.NoError(t, svc.SeedDefaults())
	var count int64
	require.NoError(t, db.Model(&model.ScoreCategory{}).Count(&count).Error)
	assert.EqualValues(t, 4, count)
}

func TestSeedDefaultsSkipsNonEmptyCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := NewScoreCategoryService(repository.NewScoreCategoryRepository(db))

	custom := model.ScoreCategory{Name: "Pass", MinScore: 0, MaxScore: 100}
	require.NoError(t, db.Create(&custom).Error)

	require.NoError(t, svc.SeedDefaults())

	bands, err := svc.List()
	require.NoError(t, err)
	require.Len(t, bands, 1)
	assert.Equal(t, "Pass", bands[0].Name)
}
