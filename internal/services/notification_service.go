package services

import (
	"errors"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

func createNotification(tx *gorm.DB, userID uint, t *models.Transaction, title, message string) error {
	n := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if t != nil {
		id := t.ID
		n.TransactionID = &id
		n.Data = models.JSON{
			"type":   string(t.Type),
			"status": string(t.Status),
			"amount": t.Amount,
		}
	}
	return tx.Create(&n).Error
}

// ListNotifications returns the user's notifications, newest first.
func ListNotifications(userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	var out []models.Notification
	query := database.DB.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	err := query.Order("id desc").Limit(limit).Find(&out).Error
	return out, err
}

// MarkNotificationRead flags one of the user's notifications as read.
func MarkNotificationRead(userID, notificationID uint) error {
	res := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := database.DB.Model(&models.Notification{}).Where("id = ? AND user_id = ?", notificationID, userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotificationNotFound
		}
	}
	return nil
}
