package user

import (
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
)

// UserResponse defines the response structure for user information.
type UserResponse struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Role      models.Role `json:"role"`
	District  string      `json:"district"`
	City      string      `json:"city"`
	Address   string      `json:"address,omitempty"`
	GSTNumber string      `json:"gst_number,omitempty"`
	ShortCode string      `json:"short_code"`
	Points    int         `json:"points"`
	CreatedAt time.Time   `json:"created_at"`
	Token     string      `json:"token,omitempty"`
}

// NewUserResponse converts a stored user into its public shape.
func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		District:  u.District,
		City:      u.City,
		Address:   u.Address,
		GSTNumber: u.GSTNumber,
		ShortCode: u.ShortCode,
		Points:    u.Points,
		CreatedAt: u.CreatedAt,
	}
}

// DealerItem is what buyers see when picking the dealer they bought from.
type DealerItem struct {
	ID        uint   `json:"id"`
	FullName  string `json:"full_name"`
	City      string `json:"city"`
	District  string `json:"district"`
	ShortCode string `json:"short_code"`
}

type LedgerItem struct {
	ID            uint                   `json:"id"`
	CreatedAt     time.Time              `json:"created_at"`
	TransactionID uint                   `json:"transaction_id"`
	Type          models.LedgerEntryType `json:"type"`
	Delta         int                    `json:"delta"`
	BalanceBefore int                    `json:"balance_before"`
	BalanceAfter  int                    `json:"balance_after"`
}
