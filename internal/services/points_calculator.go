package services

import (
	"errors"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
)

var (
	ErrInvalidBagCount   = errors.New("bag count must be a positive integer")
	ErrInvalidCementType = errors.New("cement type must be OPC or PPC")
)

// pointsPerBag is the earn rate per cement type.
var pointsPerBag = map[models.CementType]int{
	models.CementTypeOPC: 5,
	models.CementTypePPC: 10,
}

// CalculatePoints returns the points earned for bags of cement. Inputs must have
// passed ValidateBagCount and CementType.Valid.
func CalculatePoints(bags int, cement models.CementType) int {
	return bags * pointsPerBag[cement]
}

func ValidateBagCount(bags int) error {
	if bags <= 0 {
		return ErrInvalidBagCount
	}
	return nil
}

func validateEarnInput(cement models.CementType, bags int) error {
	if err := ValidateBagCount(bags); err != nil {
		return err
	}
	if !cement.Valid() {
		return ErrInvalidCementType
	}
	return nil
}
