package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/metrics"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RedeemReward debits the reward's cost from the actor immediately and opens a
// pending redemption. An admin later approves it or rejects it with a refund.
// If the balance does not cover the cost nothing is written.
func RedeemReward(actor models.User, rewardID uint) (*models.Transaction, error) {
	if err := Authorize(actor, CapRedeem); err != nil {
		metrics.TransitionFailures.WithLabelValues("forbidden").Inc()
		return nil, err
	}

	var (
		t     models.Transaction
		entry *models.PointsLedgerEntry
	)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.First(&reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}
		if !reward.VisibleFor(actor.Role, time.Now()) || reward.PointsRequired <= 0 {
			return ErrRewardUnavailable
		}

		id := reward.ID
		t = models.Transaction{
			UserID:      actor.ID,
			RewardID:    &id,
			Type:        models.TransactionTypeRedeemed,
			Amount:      reward.PointsRequired,
			Description: fmt.Sprintf("Redeemed: %s", reward.Title),
			Status:      models.TransactionStatusPending,
			Version:     1,
		}
		if err := tx.Create(&t).Error; err != nil {
			return err
		}

		var err error
		entry, err = debitPoints(tx, actor.ID, t.ID, actor.ID, t.Amount, models.LedgerEntryRedeemDebit)
		if err != nil {
			return err
		}

		return createNotification(tx, actor.ID, &t, "Redemption requested",
			fmt.Sprintf("%d points were reserved for %s.", t.Amount, reward.Title))
	})
	if err != nil {
		observeFailure(err)
		return nil, err
	}

	metrics.TransactionsSubmitted.WithLabelValues(string(t.Type)).Inc()
	observeLedgerEntry(entry)
	InvalidateUserCache(actor.ID)

	logger.Log.Info("redemption requested",
		zap.Uint("transaction_id", t.ID),
		zap.Uint("user_id", actor.ID),
		zap.Uint("reward_id", rewardID),
		zap.Int("amount", t.Amount))
	publishTransactionEvent(EventTransactionCreated, &t)

	return &t, nil
}
