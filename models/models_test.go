package models

import (
	"testing"
	"time"

	"tuklashub_go/catalog"
	"tuklashub_go/schedule"
)

func TestScheduleProofStructuredColumnsWin(t *testing.T) {
	chosen := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	approved := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	row := PaymentProof{
		BaseModel:     BaseModel{ID: 42, CreatedAt: time.Date(2025, 2, 20, 14, 0, 0, 0, time.UTC)},
		ProgramID:     "VDAA",
		Level:         "Beginner",
		Status:        "approved",
		RefText:       "ref:GCASH-1; start:2025-02-01T08:00:00Z; slot:18:00-20:00",
		ChosenStartAt: &chosen,
		ChosenSlot:    "08:00-10:00",
		ApprovedAt:    &approved,
	}

	p := row.ScheduleProof()

	if p.ID != "42" {
		t.Fatalf("ID = %q", p.ID)
	}
	if p.ProgramID != "vdaa" || p.Level != catalog.LevelBeginner {
		t.Fatalf("normalization failed: program %q, level %q", p.ProgramID, p.Level)
	}
	// The structured columns override everything the ref text says.
	if p.Choice.StartAt == nil || !p.Choice.StartAt.Equal(chosen) {
		t.Fatalf("Choice.StartAt = %v, want chosen column %v", p.Choice.StartAt, chosen)
	}
	if p.Choice.Slot != schedule.SlotMorning {
		t.Fatalf("Choice.Slot = %q, want chosen column slot", p.Choice.Slot)
	}
}

func TestScheduleProofLegacyRefFallback(t *testing.T) {
	row := PaymentProof{
		BaseModel: BaseModel{ID: 7, CreatedAt: time.Date(2025, 1, 15, 11, 0, 0, 0, time.UTC)},
		ProgramID: "vadmin",
		Level:     "intermediate",
		Status:    "pending",
		RefText:   "ref:GCASH-2; start:2025-02-01T08:00:00Z; slot:18:00-20:00",
	}

	p := row.ScheduleProof()

	want := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	if p.Choice.StartAt == nil || !p.Choice.StartAt.Equal(want) {
		t.Fatalf("Choice.StartAt = %v, want decoded ref %v", p.Choice.StartAt, want)
	}
	if p.Choice.Slot != schedule.SlotEvening {
		t.Fatalf("Choice.Slot = %q, want decoded ref slot", p.Choice.Slot)
	}
	if p.Status != "pending" {
		t.Fatalf("Status = %q", p.Status)
	}
}

func TestScheduleProofIgnoresInvalidChosenSlot(t *testing.T) {
	row := PaymentProof{
		BaseModel:  BaseModel{ID: 9},
		ProgramID:  "veditorial",
		Level:      "expert",
		Status:     "approved",
		RefText:    "ref:GCASH-3; slot:18:00-20:00",
		ChosenSlot: "12:00-14:00",
	}

	p := row.ScheduleProof()

	// An unknown slot column cannot clobber the decoded ref slot.
	if p.Choice.Slot != schedule.SlotEvening {
		t.Fatalf("Choice.Slot = %q, want ref slot to survive", p.Choice.Slot)
	}
}
