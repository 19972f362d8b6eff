package database

import (
	"path/filepath"
	"testing"

	"github.com/Tapee2025/TCITapeecement2025-sub000/config"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "data", "rewards.db"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	assert.Same(t, db, DB)

	require.NoError(t, AutoMigrate(db))
	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	u := models.User{Email: "a@b.c", Password: "x", Role: models.RoleContractor, ShortCode: "TC000001"}
	require.NoError(t, db.Create(&u).Error)
	assert.Equal(t, 0, u.Points)
}

func TestConnectUnsupportedDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{RedisAddr: mr.Host(), RedisPort: mr.Port()}
	require.NoError(t, ConnectRedis(cfg))
	assert.NotNil(t, RedisClient)
}
