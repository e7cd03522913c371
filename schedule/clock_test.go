package schedule

import (
	"testing"
	"time"
)

func TestClockString(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"one day one hour one minute one second", 90061000 * time.Millisecond, "1d 01:01:01"},
		{"under a day", 3661 * time.Second, "01:01:01"},
		{"zero", 0, "00:00:00"},
		{"negative clamps", -5 * time.Minute, "00:00:00"},
		{"sub-second truncates", 900 * time.Millisecond, "00:00:00"},
		{"multi day", 3*24*time.Hour + 18*time.Hour + time.Minute + time.Second, "3d 18:01:01"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := ClockString(tc.d); got != tc.want {
				t.Fatalf("ClockString(%v) = %q, want %q", tc.d, got, tc.want)
			}
		})
	}
}

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"morning", time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC), "2025-01-01 08:00 AM"},
		{"evening", time.Date(2025, 3, 9, 18, 5, 0, 0, time.UTC), "2025-03-09 06:05 PM"},
		{"midnight", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "2025-12-31 12:00 AM"},
		{"noon", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC), "2025-06-15 12:00 PM"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDisplay(tc.in); got != tc.want {
				t.Fatalf("FormatDisplay(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC)
	b := time.Date(2025, 1, 1, 23, 59, 59, 0, time.UTC)
	c := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	if DateKey(a) != "2025-01-01" {
		t.Fatalf("DateKey = %q, want 2025-01-01", DateKey(a))
	}
	if DateKey(a) != DateKey(b) {
		t.Fatal("same calendar day must share a date key")
	}
	if DateKey(b) == DateKey(c) {
		t.Fatal("different days must not share a date key")
	}
}

func TestAddDaysAddMinutes(t *testing.T) {
	start := time.Date(2025, 1, 31, 8, 30, 0, 0, time.UTC)

	if got := AddDays(start, 1); !got.Equal(time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC)) {
		t.Fatalf("AddDays across month boundary = %v", got)
	}
	if got := AddMinutes(start, 120); !got.Equal(time.Date(2025, 1, 31, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("AddMinutes(120) = %v", got)
	}
	if got := AddMinutes(AddDays(start, 6), 120); !got.Equal(time.Date(2025, 2, 6, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("compound window end = %v", got)
	}
}
