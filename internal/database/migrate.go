package database

import (
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Reward{},
		&models.Transaction{},
		&models.DealerApproval{},
		&models.PointsLedgerEntry{},
		&models.Notification{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
