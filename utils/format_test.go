package utils

import (
	"testing"
	"time"
)

func TestPriceLabel(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "Free"},
		{-5, "Free"},
		{120, "120 SAR"},
		{49.5, "49.50 SAR"},
	}
	for _, tt := range tests {
		if got := PriceLabel(tt.amount); got != tt.want {
			t.Errorf("PriceLabel(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"seconds", 30 * time.Second, "just now"},
		{"minutes", 5 * time.Minute, "5 minutes ago"},
		{"hours", 3 * time.Hour, "3 hours ago"},
		{"days", 2 * 24 * time.Hour, "2 days ago"},
		{"weeks", 10 * 24 * time.Hour, "1 weeks ago"},
		{"months", 70 * 24 * time.Hour, "2 months ago"},
		{"years", 400 * 24 * time.Hour, "1 years ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			then := now.Add(-tt.ago)
			if got := RelativeTime(&then, now); got != tt.want {
				t.Errorf("RelativeTime(-%v) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}

	if got := RelativeTime(nil, now); got != "" {
		t.Errorf("nil time should render empty, got %q", got)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Sara Noor", "SN"},
		{"sara", "S"},
		{"سارة نور", "سن"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Initials(tt.name); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCategoryIcon(t *testing.T) {
	if got := CategoryIcon("Music"); got != "🎵" {
		t.Errorf("CategoryIcon(Music) = %q", got)
	}
	if got := CategoryIcon("Skydiving"); got != "🎪" {
		t.Errorf("unknown categories should use the default icon, got %q", got)
	}
}

func TestGenerateTicketCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenerateTicketCode()
		if err != nil {
			t.Fatalf("GenerateTicketCode() error: %v", err)
		}
		if len(code) != 13 || code[:3] != "MP-" {
			t.Fatalf("unexpected code format: %q", code)
		}
		for _, r := range code[3:] {
			if r == '0' || r == 'O' || r == '1' || r == 'I' {
				t.Fatalf("code %q contains an ambiguous character", code)
			}
		}
		if seen[code] {
			t.Fatalf("duplicate code generated: %q", code)
		}
		seen[code] = true
	}
}
