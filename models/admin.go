package models

import (
	"time"
)

type Admin struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;column:user_id" json:"user_id"`
	FirstName   string    `gorm:"size:100" json:"first_name"`
	LastName    string    `gorm:"size:100" json:"last_name"`
	PhoneNumber string    `gorm:"size:32" json:"phone_number,omitempty"`
	Position    string    `gorm:"size:100" json:"position,omitempty"`
	AddedAt     time.Time `gorm:"autoCreateTime" json:"added_at"`

	User       User        `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Highlights []Highlight `gorm:"foreignKey:AdminID" json:"highlights,omitempty"`
}
