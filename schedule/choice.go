package schedule

import (
	"regexp"
	"time"
)

// Slot is a fixed daily training window learners pick at payment time.
type Slot string

const (
	SlotMorning Slot = "08:00-10:00"
	SlotEvening Slot = "18:00-20:00"
)

// ValidSlot reports whether s is one of the two offered slots.
func ValidSlot(s Slot) bool {
	return s == SlotMorning || s == SlotEvening
}

// StartHour returns the hour of day the slot begins at. Unknown slots fall
// back to the morning window.
func (s Slot) StartHour() int {
	if s == SlotEvening {
		return 18
	}
	return 8
}

// Choice is a learner's schedule selection: an optional preferred start
// date and the daily slot. A zero Choice means "no preference" and resolves
// to the proof's review timestamp in the morning slot.
type Choice struct {
	StartAt *time.Time
	Slot    Slot
}

// Older rows carry the choice inside free text:
//
//	ref:GCASH-12345; start:2025-01-01T08:00:00Z; slot:08:00-10:00
//
// These patterns are the only place that format is understood; everything
// downstream works off the structured Choice.
var (
	legacyStartRe = regexp.MustCompile(`(?i)start:([0-9T:\-\.Z\+]+)`)
	legacySlotRe  = regexp.MustCompile(`(?i)slot:(08:00-10:00|18:00-20:00)`)
)

// DecodeLegacyRef extracts a Choice from a legacy ref-text value. Parsing
// never fails: an unreadable start is left nil (callers fall back to row
// timestamps) and a missing slot defaults to the morning window.
func DecodeLegacyRef(refText string) Choice {
	c := Choice{Slot: SlotMorning}
	if m := legacyStartRe.FindStringSubmatch(refText); m != nil {
		if t, err := time.Parse(time.RFC3339, m[1]); err == nil {
			c.StartAt = &t
		}
	}
	if m := legacySlotRe.FindStringSubmatch(refText); m != nil {
		c.Slot = Slot(m[1])
	}
	return c
}
