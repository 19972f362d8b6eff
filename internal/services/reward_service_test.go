package services

import (
	"testing"
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndUpdateReward(t *testing.T) {
	setupTestDB(t)

	admin := seedUser(t, models.RoleAdmin, "", 0)
	dealer := seedUser(t, models.RoleDealer, "Pune", 0)

	_, err := CreateReward(dealer, RewardInput{Title: "Helmet", PointsRequired: 50, Available: true})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = CreateReward(admin, RewardInput{Title: "Helmet", PointsRequired: 0, Available: true})
	assert.ErrorIs(t, err, ErrInvalidRewardCost)
	_, err = CreateReward(admin, RewardInput{Title: "Helmet", PointsRequired: 10, VisibleTo: []models.Role{"mason"}})
	assert.ErrorIs(t, err, ErrInvalidRole)

	r, err := CreateReward(admin, RewardInput{
		Title:          "Helmet",
		PointsRequired: 50,
		Available:      false,
		VisibleTo:      []models.Role{models.RoleContractor},
	})
	require.NoError(t, err)

	stored, err := FindRewardByID(r.ID)
	require.NoError(t, err)
	assert.False(t, stored.Available)
	assert.Equal(t, []models.Role{models.RoleContractor}, stored.Roles())

	updated, err := UpdateReward(admin, r.ID, RewardInput{Title: "Safety Helmet", PointsRequired: 60, Available: true})
	require.NoError(t, err)
	assert.Equal(t, "Safety Helmet", updated.Title)
	assert.Empty(t, updated.Roles())

	_, err = UpdateReward(admin, 999, RewardInput{Title: "x", PointsRequired: 1})
	assert.ErrorIs(t, err, ErrRewardNotFound)
}

func TestListVisibleRewards(t *testing.T) {
	setupTestDB(t)

	admin := seedUser(t, models.RoleAdmin, "", 0)
	past := time.Now().Add(-time.Hour)

	everyone := seedReward(t, 10)
	dealerOnly := seedReward(t, 20, models.RoleDealer)
	_, err := CreateReward(admin, RewardInput{Title: "Hidden", PointsRequired: 30, Available: false})
	require.NoError(t, err)
	_, err = CreateReward(admin, RewardInput{Title: "Expired", PointsRequired: 40, Available: true, ExpiresAt: &past})
	require.NoError(t, err)

	contractorView, err := ListVisibleRewards(models.RoleContractor)
	require.NoError(t, err)
	require.Len(t, contractorView, 1)
	assert.Equal(t, everyone.ID, contractorView[0].ID)

	dealerView, err := ListVisibleRewards(models.RoleDealer)
	require.NoError(t, err)
	require.Len(t, dealerView, 2)
	assert.Equal(t, dealerOnly.ID, dealerView[1].ID)

	all, err := ListAllRewards()
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
