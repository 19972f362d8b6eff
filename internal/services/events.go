package services

import (
	"encoding/json"
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/pkg/logger"

	"go.uber.org/zap"
)

// TransactionChannel is the redis pub/sub channel clients subscribe to for
// live transaction updates.
const TransactionChannel = "transactions"

const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
)

type TransactionEvent struct {
	Event         string                   `json:"event"`
	TransactionID uint                     `json:"transaction_id"`
	UserID        uint                     `json:"user_id"`
	DealerID      *uint                    `json:"dealer_id,omitempty"`
	Type          models.TransactionType   `json:"type"`
	Status        models.TransactionStatus `json:"status"`
	Amount        int                      `json:"amount"`
	At            time.Time                `json:"at"`
}

// publishTransactionEvent is called after commit. Delivery is best effort: a
// failed publish is logged and never undoes the committed change.
func publishTransactionEvent(event string, t *models.Transaction) {
	if database.RedisClient == nil || t == nil {
		return
	}
	payload, err := json.Marshal(TransactionEvent{
		Event:         event,
		TransactionID: t.ID,
		UserID:        t.UserID,
		DealerID:      t.DealerID,
		Type:          t.Type,
		Status:        t.Status,
		Amount:        t.Amount,
		At:            t.UpdatedAt,
	})
	if err != nil {
		logger.Log.Warn("failed to encode transaction event", zap.Error(err))
		return
	}
	if err := database.RedisClient.Publish(database.Ctx, TransactionChannel, payload).Err(); err != nil {
		logger.Log.Warn("failed to publish transaction event",
			zap.Uint("transaction_id", t.ID), zap.String("event", event), zap.Error(err))
	}
}
