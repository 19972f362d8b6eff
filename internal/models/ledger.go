package models

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

type LedgerEntryType string

const (
	LedgerEntryEarnCredit   LedgerEntryType = "earn_credit"
	LedgerEntryRedeemDebit  LedgerEntryType = "redeem_debit"
	LedgerEntryRedeemRefund LedgerEntryType = "redeem_refund"
)

// PointsLedgerEntry records one change of a user's point balance.
type PointsLedgerEntry struct {
	ID            uint            `gorm:"primarykey"`
	CreatedAt     time.Time       `gorm:"precision:3"` // Millisecond precision
	UserID        uint            `gorm:"index;not null"`
	TransactionID uint            `gorm:"index;not null"`
	Type          LedgerEntryType `gorm:"type:varchar(30);index;not null"`
	Delta         int             `gorm:"not null"`
	BalanceBefore int             `gorm:"not null"`
	BalanceAfter  int             `gorm:"not null"`
	OperatorID    uint            `gorm:"index;default:0"`
	Hash          string          `gorm:"type:varchar(64);default:''"` // HMAC SHA256
}

// GenerateHash generates a tamper-proof hash for the entry. CreatedAt enters at
// millisecond resolution, matching the stored column.
func (e *PointsLedgerEntry) GenerateHash(secret string) string {
	data := fmt.Sprintf("%d|%d|%d|%s|%d|%d|%d|%d",
		e.UserID, e.TransactionID, e.CreatedAt.UnixMilli(), e.Type,
		e.Delta, e.BalanceBefore, e.BalanceAfter, e.OperatorID)

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether Hash matches the entry's current content.
func (e *PointsLedgerEntry) Verify(secret string) bool {
	return hmac.Equal([]byte(e.Hash), []byte(e.GenerateHash(secret)))
}
