package repository

import (
	"testing"
	"time"

	"bazaar/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory SQLite database and migrates the
// full schema. Each test gets its own isolated database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Ad{},
		&models.Message{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Name:     "User " + username,
		Phone:    "+7 (999) 000-00-00",
		Rating:   4.5,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug, Icon: "📦"}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestAd(t *testing.T, db *gorm.DB, ad *models.Ad) *models.Ad {
	t.Helper()
	if ad.Status == "" {
		ad.Status = models.AdStatusActive
	}
	if ad.CreatedAt.IsZero() {
		ad.CreatedAt = time.Now()
	}
	require.NoError(t, db.Create(ad).Error)
	return ad
}
