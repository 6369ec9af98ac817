package models

// Status strings and role names shared across controllers and services.
const (
	RoleVisitor = "visitor"
	RoleAdmin   = "admin"

	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"

	TicketIssued    = "Issued"
	TicketCancelled = "Cancelled"

	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
	PaymentFailed  = "Failed"

	InvitationPending  = "Pending"
	InvitationAccepted = "Accepted"
	InvitationRejected = "Rejected"

	DetailActive = "Active"
)

// ValidBookingStatus reports whether s is one of the three allowed booking states.
func ValidBookingStatus(s string) bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingCancelled
}
