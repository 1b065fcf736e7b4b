package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomType is the priced category a room belongs to. Price is per 24 hours.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string                      `json:"name" gorm:"size:100"`
	Description string                      `json:"description" gorm:"type:text"`
	Capacity    int                         `json:"capacity"`
	Price       decimal.Decimal             `json:"price" gorm:"type:decimal(12,2)"`
	Amenities   datatypes.JSONSlice[string] `json:"amenities"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
