package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Reward is a catalog item that can be redeemed for points. Redemption never
// mutates the reward row.
type Reward struct {
	ID             uint `gorm:"primarykey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Title          string `gorm:"type:varchar(200);not null"`
	Description    string `gorm:"type:text"`
	ImageURL       string `gorm:"type:varchar(500)"`
	PointsRequired int    `gorm:"not null"`
	Available      bool   `gorm:"not null"`
	// VisibleTo is a JSON array of roles. An empty list means every role.
	VisibleTo datatypes.JSON
	ExpiresAt *time.Time
}

// Roles decodes VisibleTo. Malformed content is treated as an empty list.
func (r *Reward) Roles() []Role {
	var roles []Role
	if len(r.VisibleTo) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.VisibleTo, &roles); err != nil {
		return nil
	}
	return roles
}

// SetRoles encodes roles into VisibleTo.
func (r *Reward) SetRoles(roles []Role) {
	if len(roles) == 0 {
		r.VisibleTo = datatypes.JSON("[]")
		return
	}
	data, _ := json.Marshal(roles)
	r.VisibleTo = datatypes.JSON(data)
}

// VisibleFor reports whether a user with role can see and redeem the reward at now.
func (r *Reward) VisibleFor(role Role, now time.Time) bool {
	if !r.Available {
		return false
	}
	if r.ExpiresAt != nil && !now.Before(*r.ExpiresAt) {
		return false
	}
	roles := r.Roles()
	if len(roles) == 0 {
		return true
	}
	for _, allowed := range roles {
		if allowed == role {
			return true
		}
	}
	return false
}
