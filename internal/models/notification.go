package models

import "time"

type Notification struct {
	ID            uint      `gorm:"primarykey"`
	CreatedAt     time.Time `gorm:"precision:3"`
	UserID        uint      `gorm:"index;not null"`
	TransactionID *uint     `gorm:"index"`
	Title         string    `gorm:"type:varchar(200);not null"`
	Message       string    `gorm:"type:text"`
	Data          JSON      `gorm:"type:text"`
	IsRead        bool      `gorm:"default:false;index"`
}
