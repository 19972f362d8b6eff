package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTransition(t *testing.T) {
	tests := []struct {
		name   string
		typ    TransactionType
		from   TransactionStatus
		action TransitionAction
		ok     bool
		to     TransactionStatus
		credit bool
	}{
		{"earned dealer approve", TransactionTypeEarned, TransactionStatusPending, ActionDealerApprove, true, TransactionStatusDealerApproved, false},
		{"earned dealer reject", TransactionTypeEarned, TransactionStatusPending, ActionDealerReject, true, TransactionStatusRejected, false},
		{"earned admin approve credits", TransactionTypeEarned, TransactionStatusDealerApproved, ActionAdminApprove, true, TransactionStatusApproved, true},
		{"earned admin reject", TransactionTypeEarned, TransactionStatusDealerApproved, ActionAdminReject, true, TransactionStatusRejected, false},
		{"earned admin approve skips dealer", TransactionTypeEarned, TransactionStatusPending, ActionAdminApprove, false, "", false},
		{"earned double dealer approve", TransactionTypeEarned, TransactionStatusDealerApproved, ActionDealerApprove, false, "", false},
		{"earned complete", TransactionTypeEarned, TransactionStatusApproved, ActionComplete, false, "", false},
		{"redeemed admin approve", TransactionTypeRedeemed, TransactionStatusPending, ActionAdminApprove, true, TransactionStatusApproved, false},
		{"redeemed admin reject refunds", TransactionTypeRedeemed, TransactionStatusPending, ActionAdminReject, true, TransactionStatusRejected, true},
		{"redeemed complete", TransactionTypeRedeemed, TransactionStatusApproved, ActionComplete, true, TransactionStatusCompleted, false},
		{"redeemed dealer approve", TransactionTypeRedeemed, TransactionStatusPending, ActionDealerApprove, false, "", false},
		{"redeemed reject after approval", TransactionTypeRedeemed, TransactionStatusApproved, ActionAdminReject, false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, ok := NextTransition(tt.typ, tt.from, tt.action)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.from, tr.From)
				assert.Equal(t, tt.to, tr.To)
				assert.Equal(t, tt.credit, tr.Credit)
			}
		})
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	terminal := map[TransactionType][]TransactionStatus{
		TransactionTypeEarned:   {TransactionStatusApproved, TransactionStatusRejected},
		TransactionTypeRedeemed: {TransactionStatusCompleted, TransactionStatusRejected},
	}
	actions := []TransitionAction{ActionDealerApprove, ActionDealerReject, ActionAdminApprove, ActionAdminReject, ActionComplete}

	for typ, states := range terminal {
		for _, s := range states {
			assert.True(t, IsTerminal(typ, s), "%s/%s", typ, s)
			for _, a := range actions {
				_, ok := NextTransition(typ, s, a)
				assert.False(t, ok, "%s/%s/%s", typ, s, a)
			}
		}
	}
	assert.False(t, IsTerminal(TransactionTypeRedeemed, TransactionStatusApproved))
}

func TestRewardVisibleFor(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	r := Reward{Available: true}
	r.SetRoles([]Role{RoleContractor})
	assert.True(t, r.VisibleFor(RoleContractor, now))
	assert.False(t, r.VisibleFor(RoleDealer, now))

	r.SetRoles(nil)
	assert.True(t, r.VisibleFor(RoleDealer, now))

	r.ExpiresAt = &past
	assert.False(t, r.VisibleFor(RoleDealer, now))

	r.ExpiresAt = nil
	r.Available = false
	assert.False(t, r.VisibleFor(RoleDealer, now))
}

func TestLedgerEntryHash(t *testing.T) {
	e := PointsLedgerEntry{
		UserID:        3,
		TransactionID: 9,
		CreatedAt:     time.Now(),
		Type:          LedgerEntryEarnCredit,
		Delta:         100,
		BalanceBefore: 0,
		BalanceAfter:  100,
	}
	e.Hash = e.GenerateHash("secret")
	require.Len(t, e.Hash, 64)
	assert.True(t, e.Verify("secret"))

	e.BalanceAfter = 1000
	assert.False(t, e.Verify("secret"))
}

func TestLedgerEntryHash_MillisecondColumn(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 30, 0, 504_000_000, time.UTC)
	e := PointsLedgerEntry{
		UserID:        3,
		TransactionID: 9,
		CreatedAt:     created,
		Type:          LedgerEntryRedeemDebit,
		Delta:         -40,
		BalanceBefore: 100,
		BalanceAfter:  60,
	}
	e.Hash = e.GenerateHash("secret")

	// Read back through a timestamp(3) column in another zone.
	e.CreatedAt = created.Round(time.Millisecond).In(time.FixedZone("IST", 5*3600+1800))
	assert.True(t, e.Verify("secret"))

	e.CreatedAt = created.Add(time.Millisecond)
	assert.False(t, e.Verify("secret"))
}

func TestJSONScan(t *testing.T) {
	var j JSON
	require.NoError(t, j.Scan(`{"status":"approved"}`))
	assert.Equal(t, "approved", j["status"])

	require.NoError(t, j.Scan(nil))
	assert.Empty(t, j)

	assert.Error(t, j.Scan(42))
}
