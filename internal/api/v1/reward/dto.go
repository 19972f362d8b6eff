package reward

import (
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
)

type RewardResponse struct {
	ID             uint          `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	ImageURL       string        `json:"image_url,omitempty"`
	PointsRequired int           `json:"points_required"`
	Available      bool          `json:"available"`
	VisibleTo      []models.Role `json:"visible_to"`
	ExpiresAt      *time.Time    `json:"expires_at,omitempty"`
}

func NewRewardResponse(r models.Reward) RewardResponse {
	roles := r.Roles()
	if roles == nil {
		roles = []models.Role{}
	}
	return RewardResponse{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		PointsRequired: r.PointsRequired,
		Available:      r.Available,
		VisibleTo:      roles,
		ExpiresAt:      r.ExpiresAt,
	}
}
