package models

import (
	"time"
)

type Review struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	VisitorID    uint       `gorm:"index;column:visitor_id" json:"visitor_id"`
	ExperienceID uint       `gorm:"index;column:experience_id" json:"experience_id"`
	BookingID    *uint      `gorm:"index;column:booking_id" json:"booking_id,omitempty"`
	Rating       int        `json:"rating"`
	Comment      string     `gorm:"type:text" json:"comment,omitempty"`
	ReviewTime   *time.Time `json:"review_time,omitempty"`
	AddedAt      time.Time  `gorm:"autoCreateTime" json:"added_at"`

	Visitor    Visitor    `gorm:"foreignKey:VisitorID;references:ID" json:"visitor,omitempty"`
	Experience Experience `gorm:"foreignKey:ExperienceID;references:ID" json:"experience,omitempty"`
	Booking    *Booking   `gorm:"foreignKey:BookingID;references:ID" json:"booking,omitempty"`
}
