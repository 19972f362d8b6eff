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
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidTransition   = errors.New("transaction cannot move to the requested status")
	ErrStaleState          = errors.New("transaction was changed by someone else, please reload and try again")
)

// SubmitEarnRequest records a buyer's claim of bags bought from dealerID.
// The dealer is expected to have passed ValidateDealerForRequester. The
// requester's balance is not touched until an admin approves.
func SubmitEarnRequest(requester models.User, dealerID uint, cement models.CementType, bags int) (*models.Transaction, error) {
	if err := Authorize(requester, CapSubmitEarn); err != nil {
		metrics.TransitionFailures.WithLabelValues("forbidden").Inc()
		return nil, err
	}
	if err := validateEarnInput(cement, bags); err != nil {
		return nil, err
	}

	dealer := dealerID
	t := models.Transaction{
		UserID:      requester.ID,
		DealerID:    &dealer,
		Type:        models.TransactionTypeEarned,
		Amount:      CalculatePoints(bags, cement),
		Description: fmt.Sprintf("%d bags of %s cement", bags, cement),
		Status:      models.TransactionStatusPending,
		Version:     1,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		return createNotification(tx, dealerID, &t, "New points request",
			fmt.Sprintf("%s is claiming %d points for %s.", requesterName(requester), t.Amount, t.Description))
	})
	if err != nil {
		return nil, err
	}

	metrics.TransactionsSubmitted.WithLabelValues(string(t.Type)).Inc()
	logger.Log.Info("earn request submitted",
		zap.Uint("transaction_id", t.ID),
		zap.Uint("user_id", t.UserID),
		zap.Uint("dealer_id", dealerID),
		zap.Int("amount", t.Amount))
	publishTransactionEvent(EventTransactionCreated, &t)

	return &t, nil
}

// DealerApprove moves a pending earned request to dealer_approved.
func DealerApprove(actor models.User, transactionID uint) (*models.Transaction, error) {
	return applyTransition(actor, transactionID, models.ActionDealerApprove)
}

// DealerReject rejects a pending earned request. No points were credited yet.
func DealerReject(actor models.User, transactionID uint) (*models.Transaction, error) {
	return applyTransition(actor, transactionID, models.ActionDealerReject)
}

// AdminApprove finalizes a request. For earned requests this is where the
// owner's balance is credited.
func AdminApprove(actor models.User, transactionID uint) (*models.Transaction, error) {
	return applyTransition(actor, transactionID, models.ActionAdminApprove)
}

// AdminReject rejects a request. Rejecting a redemption refunds its points.
func AdminReject(actor models.User, transactionID uint) (*models.Transaction, error) {
	return applyTransition(actor, transactionID, models.ActionAdminReject)
}

// AdminComplete marks an approved redemption as dispatched.
func AdminComplete(actor models.User, transactionID uint) (*models.Transaction, error) {
	return applyTransition(actor, transactionID, models.ActionComplete)
}

func authorizeAction(actor models.User, t *models.Transaction, action models.TransitionAction) error {
	switch action {
	case models.ActionDealerApprove, models.ActionDealerReject:
		if err := Authorize(actor, CapDealerReview); err != nil {
			return err
		}
		if t.DealerID == nil || *t.DealerID != actor.ID {
			return ErrForbidden
		}
		return nil
	default:
		return Authorize(actor, CapAdminReview)
	}
}

// transitionStatus moves the row from one status to another only if it still
// holds from. Zero affected rows means another writer got there first.
func transitionStatus(tx *gorm.DB, transactionID uint, from, to models.TransactionStatus, now time.Time) error {
	res := tx.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", transactionID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": now,
			"version":    gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}

// applyTransition runs one edge of the status automaton. The status change, any
// balance change, and the audit rows commit together or not at all.
func applyTransition(actor models.User, transactionID uint, action models.TransitionAction) (*models.Transaction, error) {
	var (
		t     models.Transaction
		step  models.Transition
		entry *models.PointsLedgerEntry
	)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, transactionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}

		if err := authorizeAction(actor, &t, action); err != nil {
			return err
		}

		var ok bool
		step, ok = models.NextTransition(t.Type, t.Status, action)
		if !ok {
			return fmt.Errorf("%w: %s on %s %s request", ErrInvalidTransition, action, t.Status, t.Type)
		}

		now := time.Now()
		if err := transitionStatus(tx, t.ID, step.From, step.To, now); err != nil {
			return err
		}
		t.Status = step.To
		t.UpdatedAt = now
		t.Version++

		if step.Credit {
			entryType := models.LedgerEntryEarnCredit
			if t.Type == models.TransactionTypeRedeemed {
				entryType = models.LedgerEntryRedeemRefund
			}
			var err error
			entry, err = creditPoints(tx, t.UserID, t.ID, actor.ID, t.Amount, entryType)
			if err != nil {
				return err
			}
		}

		if action == models.ActionDealerApprove {
			if err := recordDealerApproval(tx, &t, actor); err != nil {
				return err
			}
		}

		title, message := transitionMessage(&t)
		return createNotification(tx, t.UserID, &t, title, message)
	})
	if err != nil {
		observeFailure(err)
		logger.Log.Warn("transaction transition refused",
			zap.Uint("transaction_id", transactionID),
			zap.String("action", string(action)),
			zap.Uint("actor_id", actor.ID),
			zap.Error(err))
		return nil, err
	}

	metrics.TransactionTransitions.WithLabelValues(string(t.Type), string(step.From), string(step.To)).Inc()
	observeLedgerEntry(entry)
	if entry != nil {
		InvalidateUserCache(t.UserID)
	}

	logger.Log.Info("transaction transitioned",
		zap.Uint("transaction_id", t.ID),
		zap.String("type", string(t.Type)),
		zap.String("from", string(step.From)),
		zap.String("to", string(step.To)),
		zap.Uint("actor_id", actor.ID))
	publishTransactionEvent(EventTransactionUpdated, &t)

	return &t, nil
}

func recordDealerApproval(tx *gorm.DB, t *models.Transaction, dealer models.User) error {
	snapshot := datatypes.JSONMap{
		"transaction_id": t.ID,
		"user_id":        t.UserID,
		"dealer_id":      dealer.ID,
		"dealer_code":    dealer.ShortCode,
		"amount":         t.Amount,
		"description":    t.Description,
		"approved_at":    t.UpdatedAt,
	}
	raw, err := snapshot.MarshalJSON()
	if err != nil {
		return err
	}
	return tx.Create(&models.DealerApproval{
		TransactionID: t.ID,
		UserID:        t.UserID,
		DealerID:      dealer.ID,
		Amount:        t.Amount,
		Description:   t.Description,
		Snapshot:      datatypes.JSON(raw),
	}).Error
}

func transitionMessage(t *models.Transaction) (string, string) {
	switch {
	case t.Type == models.TransactionTypeEarned && t.Status == models.TransactionStatusDealerApproved:
		return "Dealer approved your request", fmt.Sprintf("Your claim for %d points is awaiting admin approval.", t.Amount)
	case t.Type == models.TransactionTypeEarned && t.Status == models.TransactionStatusApproved:
		return "Points credited", fmt.Sprintf("%d points were added to your balance.", t.Amount)
	case t.Type == models.TransactionTypeRedeemed && t.Status == models.TransactionStatusApproved:
		return "Redemption approved", fmt.Sprintf("Your redemption of %d points was approved.", t.Amount)
	case t.Type == models.TransactionTypeRedeemed && t.Status == models.TransactionStatusCompleted:
		return "Reward dispatched", "Your reward is on its way."
	case t.Type == models.TransactionTypeRedeemed && t.Status == models.TransactionStatusRejected:
		return "Redemption rejected", fmt.Sprintf("%d points were returned to your balance.", t.Amount)
	default:
		return "Request rejected", fmt.Sprintf("Your claim for %d points was rejected.", t.Amount)
	}
}

func observeFailure(err error) {
	switch {
	case errors.Is(err, ErrInvalidTransition):
		metrics.TransitionFailures.WithLabelValues("invalid_transition").Inc()
	case errors.Is(err, ErrStaleState):
		metrics.TransitionFailures.WithLabelValues("stale_state").Inc()
	case errors.Is(err, ErrForbidden):
		metrics.TransitionFailures.WithLabelValues("forbidden").Inc()
	case errors.Is(err, ErrInsufficientPoints):
		metrics.TransitionFailures.WithLabelValues("insufficient_points").Inc()
	}
}

func requesterName(u models.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.ShortCode
}
