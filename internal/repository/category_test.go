package repository

import (
	"context"
	"errors"
	"testing"

	"bazaar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCategoryRepository_List(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	createTestCategory(t, db, "Электроника", "electronics")
	createTestCategory(t, db, "Мебель", "furniture")

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Электроника", categories[0].Name)
	assert.Equal(t, "Мебель", categories[1].Name)
}

func TestCategoryRepository_ListWithAdsCount(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "seller")
	electronics := createTestCategory(t, db, "Электроника", "electronics")
	furniture := createTestCategory(t, db, "Мебель", "furniture")

	createTestAd(t, db, &models.Ad{Title: "Phone", CategoryID: electronics.ID, UserID: user.ID})
	createTestAd(t, db, &models.Ad{Title: "Laptop", CategoryID: electronics.ID, UserID: user.ID})
	// sold ads do not count
	createTestAd(t, db, &models.Ad{Title: "Tablet", CategoryID: electronics.ID, UserID: user.ID, Status: models.AdStatusSold})

	categories, err := repo.ListWithAdsCount(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	byID := map[uint]*models.Category{}
	for _, c := range categories {
		byID[c.ID] = c
	}
	assert.Equal(t, 2, byID[electronics.ID].AdsCount)
	assert.Equal(t, 0, byID[furniture.ID].AdsCount)
}

func TestCategoryRepository_GetBySlug(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	createTestCategory(t, db, "Электроника", "electronics")

	category, err := repo.GetBySlug(ctx, "electronics")
	require.NoError(t, err)
	assert.Equal(t, "Электроника", category.Name)

	_, err = repo.GetBySlug(ctx, "missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCategoryRepository_GetByIDs(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	electronics := createTestCategory(t, db, "Электроника", "electronics")

	categories, err := repo.GetByIDs(ctx, []uint{electronics.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	categories, err = repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, categories)
}
