package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB gives each test its own in-memory database.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	database.DB = db
	database.RedisClient = nil
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		database.RedisClient.Close()
		database.RedisClient = nil
	})
	return mr
}

func seedUser(t *testing.T, role models.Role, district string, points int) models.User {
	t.Helper()

	u := models.User{
		Email:     fmt.Sprintf("%s-%s@example.com", role, newShortCode()),
		Password:  "hashed",
		FullName:  string(role) + " user",
		Role:      role,
		District:  district,
		ShortCode: newShortCode(),
		Points:    points,
	}
	if role == models.RoleDealer {
		u.GSTNumber = "27ABCDE1234F1Z5"
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func seedReward(t *testing.T, cost int, roles ...models.Role) models.Reward {
	t.Helper()

	r := models.Reward{
		Title:          fmt.Sprintf("Reward %d", cost),
		PointsRequired: cost,
		Available:      true,
	}
	r.SetRoles(roles)
	require.NoError(t, database.DB.Create(&r).Error)
	return r
}

func balanceOf(t *testing.T, userID uint) int {
	t.Helper()

	var u models.User
	require.NoError(t, database.DB.First(&u, userID).Error)
	return u.Points
}

func statusOf(t *testing.T, transactionID uint) models.TransactionStatus {
	t.Helper()

	var tx models.Transaction
	require.NoError(t, database.DB.First(&tx, transactionID).Error)
	return tx.Status
}
