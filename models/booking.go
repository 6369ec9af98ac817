package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking is a visitor's reservation against one experience. TotalAmount is
// fixed at creation time (tickets * price per ticket) and never recomputed
// from Payment.
type Booking struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ExperienceID uint      `gorm:"index;column:experience_id" json:"experience_id"`
	VisitorID    uint      `gorm:"index;column:visitor_id" json:"visitor_id"`
	BookingDate  time.Time `gorm:"type:date" json:"booking_date"`

	NumberOfTickets int     `gorm:"column:number_of_tickets" json:"number_of_tickets"`
	PricePerTicket  float64 `gorm:"column:price_per_ticket" json:"price_per_ticket"`
	TotalAmount     float64 `gorm:"column:total_amount" json:"total_amount"`
	Status          string  `gorm:"size:32;default:Pending" json:"status"`
	Description     string  `gorm:"type:text" json:"description,omitempty"`

	// Optional per-ticket holder names captured at booking time, applied when
	// minting the tickets.
	TicketHolders datatypes.JSON `gorm:"column:ticket_holders" json:"ticket_holders,omitempty"`

	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`

	Experience Experience `gorm:"foreignKey:ExperienceID;references:ID" json:"experience,omitempty"`
	Visitor    Visitor    `gorm:"foreignKey:VisitorID;references:ID" json:"visitor,omitempty"`
	Tickets    []Ticket   `gorm:"foreignKey:BookingID" json:"tickets,omitempty"`
	Payments   []Payment  `gorm:"foreignKey:BookingID" json:"payments,omitempty"`
	Reviews    []Review   `gorm:"foreignKey:BookingID" json:"reviews,omitempty"`
}

// Ticket is one QR-codeable unit belonging to a booking. Its status mirrors
// the booking status on cancellation but is not otherwise synchronized.
type Ticket struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	BookingID  uint       `gorm:"index;column:booking_id" json:"booking_id"`
	Code       string     `gorm:"uniqueIndex;size:64" json:"code"`
	Status     string     `gorm:"size:32;default:Issued" json:"status"`
	Type       string     `gorm:"size:64" json:"type,omitempty"`
	SeatNumber string     `gorm:"size:16" json:"seat_number,omitempty"`
	HolderName string     `gorm:"size:150" json:"holder_name,omitempty"`
	IssuedAt   *time.Time `json:"issued_at,omitempty"`
	AddedAt    time.Time  `gorm:"autoCreateTime" json:"added_at"`

	Booking Booking `gorm:"foreignKey:BookingID;references:ID" json:"booking,omitempty"`
}

// Payment is the settlement record of a booking. Report aggregates filter
// strictly on the Paid status.
type Payment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	BookingID uint       `gorm:"index;column:booking_id" json:"booking_id"`
	Date      *time.Time `gorm:"type:date" json:"date,omitempty"`
	Amount    float64    `json:"amount"`
	Method    string     `gorm:"size:64" json:"method,omitempty"`
	Status    string     `gorm:"size:32;default:Pending" json:"status"`
	AddedAt   time.Time  `gorm:"autoCreateTime" json:"added_at"`

	Booking Booking `gorm:"foreignKey:BookingID;references:ID" json:"booking,omitempty"`
}

// Invoice references a Payment by id only; lookups join manually.
type Invoice struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Date           *time.Time `gorm:"type:date" json:"date,omitempty"`
	VisitorAddress string     `gorm:"size:255" json:"visitor_address,omitempty"`
	TotalAmount    float64    `gorm:"column:total_amount" json:"total_amount"`
	TaxAmount      float64    `gorm:"column:tax_amount" json:"tax_amount"`
	PaymentID      *uint      `gorm:"index;column:payment_id" json:"payment_id,omitempty"`
	AddedAt        time.Time  `gorm:"autoCreateTime" json:"added_at"`
}
