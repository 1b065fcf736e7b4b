package models

import (
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FirstName  string `json:"firstName" gorm:"size:100"`
	LastName   string `json:"lastName" gorm:"size:100"`
	Email      string `json:"email" gorm:"size:150;index"`
	Phone      string `json:"phone" gorm:"size:50"`
	Address    string `json:"address" gorm:"type:text"`
	IdentityNo string `json:"identityNo" gorm:"column:identity_no;size:100"`
	ImageURL   string `json:"imageUrl,omitempty" gorm:"column:image_url;size:255"`
}
