package services

import (
	"errors"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
)

var ErrForbidden = errors.New("you are not allowed to perform this action")

// Capability names an operation guarded by a role check.
type Capability string

const (
	CapSubmitEarn    Capability = "submit_earn"
	CapRedeem        Capability = "redeem"
	CapDealerReview  Capability = "dealer_review"
	CapAdminReview   Capability = "admin_review"
	CapManageRewards Capability = "manage_rewards"
	CapManageUsers   Capability = "manage_users"
)

var capabilityRoles = map[Capability][]models.Role{
	CapSubmitEarn:    {models.RoleContractor, models.RoleSubDealer},
	CapRedeem:        {models.RoleContractor, models.RoleSubDealer, models.RoleDealer},
	CapDealerReview:  {models.RoleDealer},
	CapAdminReview:   {models.RoleAdmin},
	CapManageRewards: {models.RoleAdmin},
	CapManageUsers:   {models.RoleAdmin},
}

// Authorize is the only place roles are compared against operations.
func Authorize(user models.User, capability Capability) error {
	for _, role := range capabilityRoles[capability] {
		if user.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// Can is Authorize as a predicate, for views that only hide or show things.
func Can(user models.User, capability Capability) bool {
	return Authorize(user, capability) == nil
}
