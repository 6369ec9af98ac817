package models

import (
	"time"
)

// Experience is an event offering that owns date/time/price slots, images,
// bookings and reviews.
type Experience struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Type        string     `gorm:"size:64;index" json:"type,omitempty"`
	Location    string     `gorm:"size:255" json:"location,omitempty"`
	MinPrice    float64    `gorm:"column:min_price" json:"min_price"`
	MaxPrice    float64    `gorm:"column:max_price" json:"max_price"`
	StartDate   *time.Time `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"column:end_date;type:date" json:"end_date,omitempty"`
	MaxCapacity int        `gorm:"column:max_capacity" json:"max_capacity"`
	Lat         *float64   `json:"lat,omitempty"`
	Lng         *float64   `json:"lng,omitempty"`
	AddedAt     time.Time  `gorm:"autoCreateTime" json:"added_at"`

	Details     []ExperienceDetail `gorm:"foreignKey:ExperienceID" json:"details,omitempty"`
	Images      []Image            `gorm:"foreignKey:ExperienceID" json:"images,omitempty"`
	Bookings    []Booking          `gorm:"foreignKey:ExperienceID" json:"bookings,omitempty"`
	Reviews     []Review           `gorm:"foreignKey:ExperienceID" json:"reviews,omitempty"`
	Itineraries []Itinerary        `gorm:"foreignKey:ExperienceID" json:"itineraries,omitempty"`
}

// ExperienceDetail is one orderable date/time/price slot of an experience.
// Friend invitations reference it as "the slot you're invited to", so edits
// never remove existing rows.
type ExperienceDetail struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ExperienceID uint       `gorm:"index;column:experience_id" json:"experience_id"`
	Date         *time.Time `gorm:"type:date" json:"date,omitempty"`
	StartTime    string     `gorm:"size:8" json:"start_time,omitempty"`
	Price        float64    `json:"price"`
	Status       string     `gorm:"size:32;default:Active" json:"status"`
	AddedAt      time.Time  `gorm:"autoCreateTime" json:"added_at"`

	Experience Experience         `gorm:"foreignKey:ExperienceID;references:ID" json:"experience,omitempty"`
	Invites    []FriendInvitation `gorm:"foreignKey:ExperienceDetailID" json:"invites,omitempty"`
}

type Image struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ExperienceID *uint     `gorm:"index;column:experience_id" json:"experience_id,omitempty"`
	Attachment   string    `gorm:"size:255" json:"attachment"`
	AddedAt      time.Time `gorm:"autoCreateTime" json:"added_at"`
}
