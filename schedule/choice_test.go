package schedule

import (
	"testing"
	"time"
)

func TestDecodeLegacyRef(t *testing.T) {
	start := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		refText   string
		wantStart *time.Time
		wantSlot  Slot
	}{
		{
			name:      "full reference",
			refText:   "ref:GCASH-12345; start:2025-01-01T08:00:00Z; slot:08:00-10:00",
			wantStart: &start,
			wantSlot:  SlotMorning,
		},
		{
			name:      "evening slot",
			refText:   "ref:BPI-9; start:2025-01-01T08:00:00Z; slot:18:00-20:00",
			wantStart: &start,
			wantSlot:  SlotEvening,
		},
		{
			name:      "case insensitive keys",
			refText:   "REF:x; START:2025-01-01T08:00:00Z; SLOT:18:00-20:00",
			wantStart: &start,
			wantSlot:  SlotEvening,
		},
		{
			name:     "missing start keeps nil",
			refText:  "ref:GCASH-777; slot:18:00-20:00",
			wantSlot: SlotEvening,
		},
		{
			name:     "missing slot defaults to morning",
			refText:  "ref:GCASH-777",
			wantSlot: SlotMorning,
		},
		{
			name:     "unparseable start is not an error",
			refText:  "ref:x; start:not-a-date; slot:08:00-10:00",
			wantSlot: SlotMorning,
		},
		{
			name:     "unknown slot value ignored",
			refText:  "ref:x; slot:12:00-14:00",
			wantSlot: SlotMorning,
		},
		{
			name:     "empty text",
			refText:  "",
			wantSlot: SlotMorning,
		},
		{
			name:     "free-form note without keys",
			refText:  "paid via gcash, see attached screenshot",
			wantSlot: SlotMorning,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeLegacyRef(tc.refText)
			if tc.wantStart == nil {
				if got.StartAt != nil {
					t.Fatalf("StartAt = %v, want nil", got.StartAt)
				}
			} else {
				if got.StartAt == nil || !got.StartAt.Equal(*tc.wantStart) {
					t.Fatalf("StartAt = %v, want %v", got.StartAt, tc.wantStart)
				}
			}
			if got.Slot != tc.wantSlot {
				t.Fatalf("Slot = %q, want %q", got.Slot, tc.wantSlot)
			}
		})
	}
}

func TestSlotStartHour(t *testing.T) {
	if SlotMorning.StartHour() != 8 {
		t.Fatalf("morning slot start hour = %d", SlotMorning.StartHour())
	}
	if SlotEvening.StartHour() != 18 {
		t.Fatalf("evening slot start hour = %d", SlotEvening.StartHour())
	}
	if Slot("").StartHour() != 8 {
		t.Fatal("unset slot must fall back to the morning hour")
	}
	if ValidSlot(Slot("12:00-14:00")) {
		t.Fatal("unknown slot must not validate")
	}
}
