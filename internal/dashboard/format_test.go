package dashboard

import (
	"testing"
	"time"
)

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"negative clamps to zero", -5 * time.Second, "00:00:00"},
		{"zero", 0, "00:00:00"},
		{"sub-second truncates", 900 * time.Millisecond, "00:00:00"},
		{"seconds only", 59 * time.Second, "00:00:59"},
		{"hours minutes seconds", time.Hour + time.Minute + time.Second, "01:01:01"},
		{"just under a day", 24*time.Hour - time.Second, "23:59:59"},
		{"exactly one day", 24 * time.Hour, "1d 00:00:00"},
		{"multiple days", 49*time.Hour + 30*time.Minute, "2d 01:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCountdown(tt.d); got != tt.want {
				t.Errorf("FormatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

// Display value never increases as the remaining duration shrinks.
func TestFormatCountdownMonotonic(t *testing.T) {
	prev := ""
	for d := 3 * time.Hour; d >= 0; d -= 7 * time.Minute {
		got := FormatCountdown(d)
		if prev != "" && got > prev {
			t.Fatalf("countdown grew: %q then %q", prev, got)
		}
		prev = got
	}
}

func TestFormatGMTOffset(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{9, "GMT+9"},
		{-5, "GMT-5"},
		{5.5, "GMT+5.5"},
		{0, "GMT+0"},
	}
	for _, tt := range tests {
		if got := FormatGMTOffset(tt.hours); got != tt.want {
			t.Errorf("FormatGMTOffset(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}
