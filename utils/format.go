package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Pure display helpers computed at the response-shaping boundary; nothing in
// here is ever stored.

// PriceLabel renders an amount for listing cards ("120 SAR", "Free").
func PriceLabel(amount float64) string {
	if amount <= 0 {
		return "Free"
	}
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%d SAR", int64(amount))
	}
	return fmt.Sprintf("%.2f SAR", amount)
}

// RelativeTime renders a "time ago" string for feed entries.
func RelativeTime(t *time.Time, now time.Time) string {
	if t == nil {
		return ""
	}
	d := now.Sub(*t)
	switch {
	case d.Hours() >= 24*365:
		return fmt.Sprintf("%d years ago", int(d.Hours()/(24*365)))
	case d.Hours() >= 24*30:
		return fmt.Sprintf("%d months ago", int(d.Hours()/(24*30)))
	case d.Hours() >= 24*7:
		return fmt.Sprintf("%d weeks ago", int(d.Hours()/(24*7)))
	case d.Hours() >= 24:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	case d.Hours() >= 1:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	case d.Minutes() >= 1:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	default:
		return "just now"
	}
}

// Initials builds avatar initials from a full name ("Sara Noor" -> "SN").
// Takes the first rune of each word, not the first byte, so Arabic names
// stay valid UTF-8.
func Initials(name string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		sb.WriteString(strings.ToUpper(string(r)))
	}
	return sb.String()
}

var categoryIcons = map[string]string{
	"Music":     "🎵",
	"Tech":      "💻",
	"Sports":    "⚽",
	"Cultural":  "🎭",
	"Food":      "🍽️",
	"Art":       "🎨",
	"Business":  "💼",
	"Education": "📚",
}

// CategoryIcon maps an experience category to its display icon.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return "🎪"
}

// StatusBadge maps a booking status to a frontend badge class.
func StatusBadge(status string) string {
	switch status {
	case "Confirmed":
		return "badge-success"
	case "Cancelled":
		return "badge-danger"
	case "Pending":
		return "badge-warning"
	default:
		return "badge-secondary"
	}
}

// FormatDate renders a nullable date as yyyy-mm-dd.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
