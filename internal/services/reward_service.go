package services

import (
	"errors"
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRewardNotFound    = errors.New("reward not found")
	ErrRewardUnavailable = errors.New("reward is not available")
	ErrInvalidRewardCost = errors.New("points required must be positive")
)

type RewardInput struct {
	Title          string
	Description    string
	ImageURL       string
	PointsRequired int
	Available      bool
	VisibleTo      []models.Role
	ExpiresAt      *time.Time
}

func FindRewardByID(id uint) (*models.Reward, error) {
	var reward models.Reward
	if err := database.DB.First(&reward, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	return &reward, nil
}

// ListVisibleRewards returns the catalog as seen by a user with role.
func ListVisibleRewards(role models.Role) ([]models.Reward, error) {
	var rewards []models.Reward
	if err := database.DB.Where("available = ?", true).Order("points_required asc").Find(&rewards).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	visible := make([]models.Reward, 0, len(rewards))
	for i := range rewards {
		if rewards[i].VisibleFor(role, now) {
			visible = append(visible, rewards[i])
		}
	}
	return visible, nil
}

// ListAllRewards returns every reward including hidden and expired ones.
func ListAllRewards() ([]models.Reward, error) {
	var rewards []models.Reward
	err := database.DB.Order("id asc").Find(&rewards).Error
	return rewards, err
}

func CreateReward(actor models.User, in RewardInput) (*models.Reward, error) {
	if err := Authorize(actor, CapManageRewards); err != nil {
		return nil, err
	}
	if in.PointsRequired <= 0 {
		return nil, ErrInvalidRewardCost
	}
	for _, r := range in.VisibleTo {
		if !r.Valid() {
			return nil, ErrInvalidRole
		}
	}

	reward := models.Reward{
		Title:          in.Title,
		Description:    in.Description,
		ImageURL:       in.ImageURL,
		PointsRequired: in.PointsRequired,
		Available:      in.Available,
		ExpiresAt:      in.ExpiresAt,
	}
	reward.SetRoles(in.VisibleTo)

	if err := database.DB.Create(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

// UpdateReward replaces the editable fields of a reward. Existing redemptions
// keep the amount they were created with.
func UpdateReward(actor models.User, id uint, in RewardInput) (*models.Reward, error) {
	if err := Authorize(actor, CapManageRewards); err != nil {
		return nil, err
	}
	if in.PointsRequired <= 0 {
		return nil, ErrInvalidRewardCost
	}
	for _, r := range in.VisibleTo {
		if !r.Valid() {
			return nil, ErrInvalidRole
		}
	}

	reward, err := FindRewardByID(id)
	if err != nil {
		return nil, err
	}

	reward.Title = in.Title
	reward.Description = in.Description
	reward.ImageURL = in.ImageURL
	reward.PointsRequired = in.PointsRequired
	reward.Available = in.Available
	reward.ExpiresAt = in.ExpiresAt
	reward.SetRoles(in.VisibleTo)

	if err := database.DB.Save(reward).Error; err != nil {
		return nil, err
	}
	return reward, nil
}
