package seed

import (
	"testing"

	"bazaar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
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

func TestBaseline(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)

	require.NoError(t, Baseline(db))

	var categoryCount, userCount, adCount int64
	db.Model(&models.Category{}).Count(&categoryCount)
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Ad{}).Count(&adCount)

	assert.Equal(t, int64(6), categoryCount)
	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(1), adCount)

	var demo models.User
	require.NoError(t, db.Where("username = ?", "alexey_k").First(&demo).Error)
	assert.True(t, demo.Verified)

	var electronics models.Category
	require.NoError(t, db.Where("slug = ?", "electronics").First(&electronics).Error)

	var ad models.Ad
	require.NoError(t, db.First(&ad).Error)
	assert.Equal(t, electronics.ID, ad.CategoryID)
	assert.Equal(t, demo.ID, ad.UserID)
	assert.Equal(t, models.AdStatusActive, ad.Status)
}

func TestBaseline_Idempotent(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)

	require.NoError(t, Baseline(db))
	require.NoError(t, Baseline(db))

	var categoryCount, userCount, adCount int64
	db.Model(&models.Category{}).Count(&categoryCount)
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Ad{}).Count(&adCount)

	assert.Equal(t, int64(6), categoryCount)
	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(1), adCount)
}

func TestSeed(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 5, NumAds: 12}))

	var userCount, adCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Ad{}).Count(&adCount)

	// baseline demo user plus the generated ones
	assert.Equal(t, int64(6), userCount)
	assert.Equal(t, int64(13), adCount)

	var ads []models.Ad
	require.NoError(t, db.Find(&ads).Error)
	for _, ad := range ads {
		assert.NotZero(t, ad.UserID)
		assert.NotZero(t, ad.CategoryID)
		assert.True(t, models.ValidAdCondition(ad.Condition), "condition %q", ad.Condition)
	}
}

func TestSeed_CleanResets(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 2, NumAds: 3}))
	require.NoError(t, Seed(db, Options{NumUsers: 2, NumAds: 3, ShouldClean: true}))

	var userCount, adCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Ad{}).Count(&adCount)

	assert.Equal(t, int64(3), userCount)
	assert.Equal(t, int64(4), adCount)
}

func TestFactory_CreateUserOverrides(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser(func(u *models.User) {
		u.Username = "fixed_name"
		u.Verified = true
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed_name", user.Username)
	assert.True(t, user.Verified)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "fixed_name", stored.Username)
}

func TestFactory_CreateMessageSnapshotsOwner(t *testing.T) {
	t.Parallel()
	db := setupSeedTestDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser()
	require.NoError(t, err)
	category := &models.Category{Name: "Электроника", Slug: "electronics"}
	require.NoError(t, db.Create(category).Error)
	ad, err := factory.CreateAd(user, category)
	require.NoError(t, err)

	message, err := factory.CreateMessage(ad)
	require.NoError(t, err)
	require.NotNil(t, message.RecipientID)
	assert.Equal(t, user.ID, *message.RecipientID)
}
