package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:255" json:"full_name"`
	Email        string    `gorm:"uniqueIndex;size:150" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	Role         string    `gorm:"size:32;default:visitor" json:"role"`
	Image        *string   `gorm:"size:255" json:"image,omitempty"`
	AddedAt      time.Time `gorm:"autoCreateTime" json:"added_at"`

	Visitor *Visitor `gorm:"foreignKey:UserID" json:"visitor,omitempty"`
	Admin   *Admin   `gorm:"foreignKey:UserID" json:"admin,omitempty"`
}
