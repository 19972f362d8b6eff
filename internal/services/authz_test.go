package services

import (
	"testing"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		role    models.Role
		cap     Capability
		allowed bool
	}{
		{models.RoleContractor, CapSubmitEarn, true},
		{models.RoleSubDealer, CapSubmitEarn, true},
		{models.RoleDealer, CapSubmitEarn, false},
		{models.RoleAdmin, CapSubmitEarn, false},
		{models.RoleDealer, CapRedeem, true},
		{models.RoleAdmin, CapRedeem, false},
		{models.RoleDealer, CapDealerReview, true},
		{models.RoleContractor, CapDealerReview, false},
		{models.RoleAdmin, CapAdminReview, true},
		{models.RoleDealer, CapAdminReview, false},
		{models.RoleAdmin, CapManageRewards, true},
		{models.RoleSubDealer, CapManageUsers, false},
		{models.Role("guest"), CapRedeem, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.cap), func(t *testing.T) {
			err := Authorize(models.User{Role: tt.role}, tt.cap)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
			assert.Equal(t, tt.allowed, Can(models.User{Role: tt.role}, tt.cap))
		})
	}
}
