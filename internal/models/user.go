package models

import "time"

// Role identifies what a program participant is allowed to do.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDealer     Role = "dealer"
	RoleContractor Role = "contractor"
	RoleSubDealer  Role = "sub_dealer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDealer, RoleContractor, RoleSubDealer:
		return true
	}
	return false
}

type User struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null" json:"-"`
	FullName  string `gorm:"type:varchar(120)"`
	Role      Role   `gorm:"type:varchar(20);not null;default:'contractor';index"`
	District  string `gorm:"type:varchar(100);index"`
	City      string `gorm:"type:varchar(100)"`
	Address   string `gorm:"type:text"`
	GSTNumber string `gorm:"type:varchar(20)"`
	ShortCode string `gorm:"type:varchar(12);uniqueIndex"`
	// Points is mutated only by the approval, redemption and refund paths.
	Points  int `gorm:"not null;default:0"`
	Version int `gorm:"default:1"`
}
