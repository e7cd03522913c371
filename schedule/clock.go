// Package schedule derives entitlements, training windows, and daily
// sessions from reviewed payment proofs. Everything here is pure: callers
// pass the current time explicitly, so the same inputs always produce the
// same outputs.
package schedule

import (
	"fmt"
	"time"
)

// AddDays advances t by n calendar days, keeping the clock fields.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddMinutes advances t by n minutes.
func AddMinutes(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}

// FormatDisplay renders t as "YYYY-MM-DD hh:mm AM/PM".
func FormatDisplay(t time.Time) string {
	return t.Format("2006-01-02 03:04 PM")
}

// DateKey renders the calendar date of t as "YYYY-MM-DD". Two times share a
// key exactly when they fall on the same day in their location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ClockString renders a countdown as "Dd HH:MM:SS" when at least one full
// day remains, otherwise "HH:MM:SS". Negative durations clamp to zero.
func ClockString(d time.Duration) string {
	sec := int64(d / time.Second)
	if sec < 0 {
		sec = 0
	}
	days := sec / 86400
	h := (sec % 86400) / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, h, m, s)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
