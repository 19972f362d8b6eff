package models

import (
	"time"

	"gorm.io/datatypes"
)

// DealerApproval is an audit snapshot taken when a dealer vouches for an earned
// request. The transaction row stays the source of truth.
type DealerApproval struct {
	ID            uint      `gorm:"primarykey"`
	CreatedAt     time.Time `gorm:"precision:3"`
	TransactionID uint      `gorm:"uniqueIndex;not null"`
	UserID        uint      `gorm:"index;not null"`
	DealerID      uint      `gorm:"index;not null"`
	Amount        int       `gorm:"not null"`
	Description   string    `gorm:"type:text"`
	Snapshot      datatypes.JSON
}
