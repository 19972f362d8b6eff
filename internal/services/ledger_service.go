package services

import (
	"errors"
	"sync"
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/config"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/metrics"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInsufficientPoints = errors.New("insufficient points")

const fallbackLedgerSecret = "default-secret"

var (
	ledgerKeyOnce sync.Once
	ledgerKey     string
)

// InitLedgerSecret fixes the key that signs ledger entries for the life of the
// process. Later calls are ignored.
func InitLedgerSecret(cfg *config.Config) {
	ledgerKeyOnce.Do(func() {
		ledgerKey = resolveLedgerSecret(cfg)
	})
}

// ledgerSecret returns the signing key, loading configuration on first use when
// InitLedgerSecret was never called.
func ledgerSecret() string {
	ledgerKeyOnce.Do(func() {
		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Log.Warn("load config for ledger secret", zap.Error(err))
		}
		ledgerKey = resolveLedgerSecret(cfg)
	})
	return ledgerKey
}

func resolveLedgerSecret(cfg *config.Config) string {
	if cfg != nil {
		if cfg.LedgerSecret != "" {
			return cfg.LedgerSecret
		}
		if cfg.JWTSecret != "" {
			logger.Log.Warn("LEDGER_SECRET not set, signing ledger entries with JWT_SECRET")
			return cfg.JWTSecret
		}
	}
	logger.Log.Warn("LEDGER_SECRET and JWT_SECRET not set, signing ledger entries with the built-in default")
	return fallbackLedgerSecret
}

// creditPoints adds amount to the user's balance with a single relative UPDATE
// and records the ledger entry. It must run inside tx.
func creditPoints(tx *gorm.DB, userID, transactionID, operatorID uint, amount int, entryType models.LedgerEntryType) (*models.PointsLedgerEntry, error) {
	res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"points":  gorm.Expr("points + ?", amount),
		"version": gorm.Expr("version + 1"),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return recordLedgerEntry(tx, userID, transactionID, operatorID, amount, entryType)
}

// debitPoints subtracts amount only if the balance covers it. The balance check
// and the write are one conditional UPDATE.
func debitPoints(tx *gorm.DB, userID, transactionID, operatorID uint, amount int, entryType models.LedgerEntryType) (*models.PointsLedgerEntry, error) {
	res := tx.Model(&models.User{}).Where("id = ? AND points >= ?", userID, amount).Updates(map[string]interface{}{
		"points":  gorm.Expr("points - ?", amount),
		"version": gorm.Expr("version + 1"),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrUserNotFound
		}
		return nil, ErrInsufficientPoints
	}
	return recordLedgerEntry(tx, userID, transactionID, operatorID, -amount, entryType)
}

func recordLedgerEntry(tx *gorm.DB, userID, transactionID, operatorID uint, delta int, entryType models.LedgerEntryType) (*models.PointsLedgerEntry, error) {
	var balances []int
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Pluck("points", &balances).Error; err != nil {
		return nil, err
	}
	if len(balances) == 0 {
		return nil, ErrUserNotFound
	}

	entry := models.PointsLedgerEntry{
		// The column keeps milliseconds; the hash must survive a reload.
		CreatedAt:     time.Now().Truncate(time.Millisecond),
		UserID:        userID,
		TransactionID: transactionID,
		Type:          entryType,
		Delta:         delta,
		BalanceBefore: balances[0] - delta,
		BalanceAfter:  balances[0],
		OperatorID:    operatorID,
	}
	entry.Hash = entry.GenerateHash(ledgerSecret())

	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func observeLedgerEntry(entry *models.PointsLedgerEntry) {
	if entry == nil {
		return
	}
	amount := entry.Delta
	if amount < 0 {
		amount = -amount
	}
	metrics.PointsMoved.WithLabelValues(string(entry.Type)).Add(float64(amount))
}

// FindLedgerEntries returns a user's balance history, newest first.
func FindLedgerEntries(userID uint, limit int) ([]models.PointsLedgerEntry, error) {
	var entries []models.PointsLedgerEntry
	err := database.DB.Where("user_id = ?", userID).Order("id desc").Limit(limit).Find(&entries).Error
	return entries, err
}
