package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")
var ErrOptimisticLock = errors.New("data has been modified by another user, please refresh and try again")
var ErrDealerNotFound = errors.New("dealer not found")
var ErrDealerOutsideDistrict = errors.New("dealer is not in your district")

func userCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func FindUserByID(userID uint) (models.User, error) {
	// Try cache
	cacheKey := userCacheKey(userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	// Set cache
	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, time.Hour)
		}
	}

	return user, nil
}

// InvalidateUserCache drops the cached copy of a user after a committed change.
func InvalidateUserCache(userIDs ...uint) {
	if database.RedisClient == nil {
		return
	}
	for _, id := range userIDs {
		if err := database.RedisClient.Del(database.Ctx, userCacheKey(id)).Err(); err != nil {
			logger.Log.Warn("failed to invalidate user cache", zap.Uint("user_id", id), zap.Error(err))
		}
	}
}

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Role     *models.Role
	District *string
	Page     int
	Limit    int
}

// FindUsers retrieves a paginated list of users.
func FindUsers(filter UserFilter) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := database.DB.Model(&models.User{})
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.District != nil {
		query = query.Where("district = ?", *filter.District)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Order("id asc").Limit(filter.Limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// FindDealersByDistrict lists dealers a buyer in district may claim purchases from.
func FindDealersByDistrict(district string) ([]models.User, error) {
	var dealers []models.User
	err := database.DB.
		Where("role = ? AND district = ?", models.RoleDealer, district).
		Order("full_name asc").
		Find(&dealers).Error
	return dealers, err
}

// ValidateDealerForRequester checks that dealerID names a dealer in the
// requester's district. Earn requests are submitted only after this passes.
func ValidateDealerForRequester(requester models.User, dealerID uint) (*models.User, error) {
	var dealer models.User
	if err := database.DB.First(&dealer, dealerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealerNotFound
		}
		return nil, err
	}
	if dealer.Role != models.RoleDealer {
		return nil, ErrDealerNotFound
	}
	if dealer.District != requester.District {
		return nil, ErrDealerOutsideDistrict
	}
	return &dealer, nil
}

// UpdateUser updates a user with optimistic locking and selective fields.
// Points are never accepted here; they move only through the workflow.
func UpdateUser(id uint, updates map[string]interface{}, operator string) (*models.User, error) {
	delete(updates, "points")

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if role, ok := updates["role"].(models.Role); ok {
		if !role.Valid() {
			tx.Rollback()
			return nil, ErrInvalidRole
		}
		gst := user.GSTNumber
		if v, ok := updates["gst_number"].(string); ok {
			gst = v
		}
		if role == models.RoleDealer && gst == "" {
			tx.Rollback()
			return nil, ErrGSTRequired
		}
	}

	if password, ok := updates["password"].(string); ok && password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		updates["password"] = string(hashedPassword)
	}

	currentVersion := user.Version
	updates["version"] = currentVersion + 1

	result := tx.Model(&user).Where("version = ?", currentVersion).Updates(updates)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrOptimisticLock
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	InvalidateUserCache(id)

	fields := make([]string, 0, len(updates))
	for k := range updates {
		if k != "password" {
			fields = append(fields, k)
		}
	}
	logger.Log.Info("user updated", zap.Uint("user_id", id), zap.String("operator", operator), zap.Strings("fields", fields))

	if err := database.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
