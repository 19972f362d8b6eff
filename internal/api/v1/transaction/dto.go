package transaction

import (
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
)

type EarnRequest struct {
	DealerID   uint              `json:"dealer_id" binding:"required"`
	CementType models.CementType `json:"cement_type" binding:"required,oneof=OPC PPC"`
	BagCount   int               `json:"bag_count" binding:"required,gt=0"`
}

type RedeemRequest struct {
	RewardID uint `json:"reward_id" binding:"required"`
}

// TransactionResponse is the public shape of a points request.
type TransactionResponse struct {
	ID          uint                     `json:"id"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
	UserID      uint                     `json:"user_id"`
	DealerID    *uint                    `json:"dealer_id,omitempty"`
	RewardID    *uint                    `json:"reward_id,omitempty"`
	Type        models.TransactionType   `json:"type"`
	Status      models.TransactionStatus `json:"status"`
	Amount      int                      `json:"amount"`
	Description string                   `json:"description"`
}

func NewTransactionResponse(t models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		UserID:      t.UserID,
		DealerID:    t.DealerID,
		RewardID:    t.RewardID,
		Type:        t.Type,
		Status:      t.Status,
		Amount:      t.Amount,
		Description: t.Description,
	}
}

func NewTransactionResponses(ts []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}
