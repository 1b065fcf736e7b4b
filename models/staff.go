package models

import (
	"time"

	"gorm.io/gorm"
)

type StaffRole string

const (
	RoleAdmin  StaffRole = "org:admin"
	RoleMember StaffRole = "org:member"
)

func (r StaffRole) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

type StaffPosition string

const (
	PositionHousekeeping   StaffPosition = "HOUSEKEEPING"
	PositionFrontDesk      StaffPosition = "FRONT_DESK"
	PositionMaintenance    StaffPosition = "MAINTENANCE"
	PositionManagement     StaffPosition = "MANAGEMENT"
	PositionBellhop        StaffPosition = "BELLHOP"
	PositionFoodBeverage   StaffPosition = "FOOD_AND_BEVERAGE"
	PositionChef           StaffPosition = "CHEF"
	PositionSecurity       StaffPosition = "SECURITY"
	PositionEventPlanning  StaffPosition = "EVENT_PLANNING"
	PositionValet          StaffPosition = "VALET"
	PositionLaundry        StaffPosition = "LAUNDRY"
	PositionGuestRelations StaffPosition = "GUEST_RELATIONS"
)

var staffPositions = map[StaffPosition]struct{}{
	PositionHousekeeping: {}, PositionFrontDesk: {}, PositionMaintenance: {},
	PositionManagement: {}, PositionBellhop: {}, PositionFoodBeverage: {},
	PositionChef: {}, PositionSecurity: {}, PositionEventPlanning: {},
	PositionValet: {}, PositionLaundry: {}, PositionGuestRelations: {},
}

func (p StaffPosition) Valid() bool {
	_, ok := staffPositions[p]
	return ok
}

type Staff struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Username  string        `gorm:"uniqueIndex;size:150" json:"username"`
	Email     string        `gorm:"uniqueIndex;size:150" json:"email"`
	FirstName string        `gorm:"size:100" json:"firstName"`
	LastName  string        `gorm:"size:100" json:"lastName"`
	Password  string        `gorm:"size:255" json:"-"` // bcrypt hash
	Role      StaffRole     `gorm:"size:20" json:"role"`
	Position  StaffPosition `gorm:"size:40" json:"position"`
	ImageURL  string        `gorm:"size:255" json:"imageUrl,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s Staff) IsAdmin() bool {
	return s.Role == RoleAdmin
}
