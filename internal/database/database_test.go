package database

import (
	"testing"

	"bazaar/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestConnect_SqliteInMemory(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBPath:   ":memory:",
		Env:      "test",
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)

	// Non-production connections auto-migrate the full schema.
	for _, table := range []string{"users", "categories", "ads", "messages"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	// migrations are idempotent
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable("ads"))
	assert.True(t, db.Migrator().HasColumn("ads", "contact_info"))
}
