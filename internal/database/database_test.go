package database_test

import (
	"fmt"
	"testing"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLite(t *testing.T) {
	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseURL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}

	db, err := database.Connect(cfg)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.Product{}))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasColumn(&models.Product{}, "is_active"))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := database.Open("mysql", "root@/store")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
