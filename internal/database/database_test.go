package database

import (
	"path/filepath"
	"testing"

	"subsmanager-miniapp/internal/config"
	"subsmanager-miniapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Driver: "oracle"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestInitialize_SQLite(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "miniapp.db"),
		MaxConnections: 1,
		MaxIdleConns:   1,
	}}

	db, err := Initialize(cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.HealthCheck())
	assert.True(t, db.Migrator().HasTable(&models.ViewSession{}))
	assert.True(t, db.Migrator().HasTable(&models.ActionLog{}))
}

func TestSetupTestDB(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	require.NoError(t, db.Create(&models.ViewSession{UserID: 1, CurrentTab: "tips"}).Error)

	var count int64
	require.NoError(t, db.Model(&models.ViewSession{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
