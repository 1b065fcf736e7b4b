package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	RoomNumber string     `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Floor      int        `json:"floor"`
	Status     RoomStatus `json:"status" gorm:"type:varchar(20);index"`

	// image urls, at least one
	Images datatypes.JSONSlice[string] `json:"images" gorm:"column:images"`

	RoomTypeID    uint      `json:"roomTypeId" gorm:"column:room_type_id;index"`
	DateEffective time.Time `json:"dateEffective" gorm:"column:date_effective"`

	RoomType RoomType `json:"type" gorm:"foreignKey:RoomTypeID"`
}
