package models

import "time"

type TransactionType string

const (
	TransactionTypeEarned   TransactionType = "earned"
	TransactionTypeRedeemed TransactionType = "redeemed"
)

type TransactionStatus string

const (
	TransactionStatusPending        TransactionStatus = "pending"
	TransactionStatusDealerApproved TransactionStatus = "dealer_approved"
	TransactionStatusApproved       TransactionStatus = "approved"
	TransactionStatusCompleted      TransactionStatus = "completed"
	TransactionStatusRejected       TransactionStatus = "rejected"
)

// CementType tags the product a bag purchase was made in.
type CementType string

const (
	CementTypeOPC CementType = "OPC"
	CementTypePPC CementType = "PPC"
)

func (c CementType) Valid() bool {
	return c == CementTypeOPC || c == CementTypePPC
}

// Transaction is a points request. Amount is fixed at creation; afterwards only
// Status, Version and UpdatedAt change.
type Transaction struct {
	ID          uint              `gorm:"primarykey"`
	CreatedAt   time.Time         `gorm:"precision:3"`
	UpdatedAt   time.Time         `gorm:"precision:3"`
	UserID      uint              `gorm:"index;not null"`
	DealerID    *uint             `gorm:"index"`
	RewardID    *uint             `gorm:"index"`
	Type        TransactionType   `gorm:"type:varchar(20);index;not null"`
	Amount      int               `gorm:"not null"`
	Description string            `gorm:"type:text"`
	Status      TransactionStatus `gorm:"type:varchar(20);index;not null;default:'pending'"`
	Version     int               `gorm:"not null;default:1"`
}
