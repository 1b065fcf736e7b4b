package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a guest's booking of one room for a time window.
// Records are deleted outright (only while PENDING), so there is no soft delete.
type Transaction struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GuestID uint `gorm:"column:guest_id;index;not null" json:"guestId"`
	RoomID  uint `gorm:"column:room_id;index;not null" json:"roomId"`
	StaffID uint `gorm:"column:staff_id;index" json:"staffId"`

	CheckIn    time.Time         `gorm:"column:check_in;index" json:"checkIn"`
	CheckOut   time.Time         `gorm:"column:check_out;index" json:"checkOut"`
	TotalPrice decimal.Decimal   `gorm:"column:total_price;type:decimal(12,2)" json:"totalPrice"`
	Status     TransactionStatus `gorm:"column:status;type:varchar(20);index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Guest *Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Room  *Room  `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
