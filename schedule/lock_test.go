package schedule

import (
	"testing"

	"tuklashub_go/catalog"
)

func TestActiveLock(t *testing.T) {
	windows := []Window{
		{ProofID: "1", ProgramID: "vdaa", Level: catalog.LevelBeginner,
			StartsAt: ts("2025-01-01T08:00:00Z"), EndsAt: ts("2025-01-07T10:00:00Z")},
		{ProofID: "2", ProgramID: "vadmin", Level: catalog.LevelIntermediate,
			StartsAt: ts("2025-01-03T18:00:00Z"), EndsAt: ts("2025-01-12T20:00:00Z")},
	}

	lock, active := ActiveLock(windows, ts("2025-01-05T09:00:00Z"))
	if !active {
		t.Fatal("lock should be active while windows are running")
	}
	if len(lock.ProgramIDs) != 2 {
		t.Fatalf("lock programs = %v", lock.ProgramIDs)
	}
	if !lock.StartsAt.Equal(ts("2025-01-01T08:00:00Z")) {
		t.Fatalf("lock starts %v, want earliest window start", lock.StartsAt)
	}
	if !lock.EndsAt.Equal(ts("2025-01-12T20:00:00Z")) {
		t.Fatalf("lock ends %v, want latest window end", lock.EndsAt)
	}
	if lock.Blocks("vdaa") || lock.Blocks("vadmin") {
		t.Fatal("locked programs stay payable for further levels")
	}
	if !lock.Blocks("vmarketing") {
		t.Fatal("programs outside the lock must be blocked")
	}
}

func TestActiveLockBoundary(t *testing.T) {
	windows := []Window{
		{ProofID: "1", ProgramID: "vdaa", Level: catalog.LevelBeginner,
			StartsAt: ts("2025-01-01T08:00:00Z"), EndsAt: ts("2025-01-07T10:00:00Z")},
	}

	// A window counts only while now is strictly before its end.
	if _, active := ActiveLock(windows, ts("2025-01-07T09:59:59Z")); !active {
		t.Fatal("lock should still be active one second before the window ends")
	}
	if _, active := ActiveLock(windows, ts("2025-01-07T10:00:00Z")); active {
		t.Fatal("lock must release exactly at the window end")
	}
}

func TestActiveLockStartsAtIgnoresEndedWindows(t *testing.T) {
	windows := []Window{
		{ProofID: "1", ProgramID: "vdaa", Level: catalog.LevelBeginner,
			StartsAt: ts("2025-01-01T08:00:00Z"), EndsAt: ts("2025-01-03T10:00:00Z")},
		{ProofID: "2", ProgramID: "vadmin", Level: catalog.LevelIntermediate,
			StartsAt: ts("2025-01-02T18:00:00Z"), EndsAt: ts("2025-01-12T20:00:00Z")},
	}

	lock, active := ActiveLock(windows, ts("2025-01-05T09:00:00Z"))
	if !active {
		t.Fatal("lock should be active")
	}
	// The ended vdaa window contributes nothing, so the lock starts with
	// the still-running vadmin window.
	if !lock.StartsAt.Equal(ts("2025-01-02T18:00:00Z")) {
		t.Fatalf("lock starts %v", lock.StartsAt)
	}
	if len(lock.ProgramIDs) != 1 || lock.ProgramIDs[0] != "vadmin" {
		t.Fatalf("lock programs = %v", lock.ProgramIDs)
	}
}

func TestActiveLockNoWindows(t *testing.T) {
	if _, active := ActiveLock(nil, ts("2025-01-01T00:00:00Z")); active {
		t.Fatal("no windows, no lock")
	}
}
