package schedule

import (
	"strings"
	"time"

	"tuklashub_go/catalog"
)

// Proof is a validated payment-proof row as the derivation core sees it.
// Construction from storage rows happens at the controller boundary, so
// this package never touches raw column values.
type Proof struct {
	ID         string
	ProgramID  string
	Level      catalog.Level
	Status     string
	CreatedAt  time.Time
	ApprovedAt *time.Time
	Choice     Choice
}

// Approved reports whether the proof unlocks anything.
func (p Proof) Approved() bool {
	return strings.EqualFold(p.Status, "approved")
}

// ResolveStart returns the schedule anchor for a proof: the chosen start
// date when one was given, otherwise the review timestamp, otherwise the
// submission timestamp. The chosen slot's start hour is applied to the day
// in every case.
func ResolveStart(p Proof) time.Time {
	base := p.CreatedAt
	if p.Choice.StartAt != nil {
		base = *p.Choice.StartAt
	} else if p.ApprovedAt != nil {
		base = *p.ApprovedAt
	}
	return time.Date(base.Year(), base.Month(), base.Day(),
		p.Choice.Slot.StartHour(), 0, 0, 0, base.Location())
}

// Window is one proof's training window: days(level) daily sessions
// starting at StartsAt, ending when the last session ends.
type Window struct {
	ProofID   string
	ProgramID string
	Level     catalog.Level
	StartsAt  time.Time
	EndsAt    time.Time
}

// WindowFor computes the training window for an approved proof.
func WindowFor(p Proof, sessionMinutes int) Window {
	start := ResolveStart(p)
	return Window{
		ProofID:   p.ID,
		ProgramID: p.ProgramID,
		Level:     p.Level,
		StartsAt:  start,
		EndsAt:    AddMinutes(AddDays(start, catalog.Days(p.Level)-1), sessionMinutes),
	}
}

// Entitlement is what a learner holds for one program.
type Entitlement struct {
	ProgramID      string
	UnlockedLevels []catalog.Level
	Permanent      bool
	Window         *Window
}

// Unlocked reports whether the given level's modules are open.
func (e Entitlement) Unlocked(l catalog.Level) bool {
	for _, have := range e.UnlockedLevels {
		if have == l {
			return true
		}
	}
	return false
}

// ResolveEntitlements folds approved proofs into per-program entitlements.
// Module access is permanent once a level is approved; the schedule window
// is the latest-ending one among the program's approved proofs. Rows for
// unknown programs or levels are skipped.
func ResolveEntitlements(proofs []Proof, sessionMinutes int) map[string]Entitlement {
	out := make(map[string]Entitlement)
	for _, p := range proofs {
		if !p.Approved() {
			continue
		}
		if !catalog.ValidProgramID(p.ProgramID) || !catalog.ValidLevel(p.Level) {
			continue
		}
		ent, ok := out[p.ProgramID]
		if !ok {
			ent = Entitlement{ProgramID: p.ProgramID, Permanent: true}
		}
		if !ent.Unlocked(p.Level) {
			ent.UnlockedLevels = append(ent.UnlockedLevels, p.Level)
		}
		w := WindowFor(p, sessionMinutes)
		if ent.Window == nil || w.EndsAt.After(ent.Window.EndsAt) {
			ent.Window = &w
		}
		out[p.ProgramID] = ent
	}
	for id, ent := range out {
		ent.UnlockedLevels = sortLevels(ent.UnlockedLevels)
		out[id] = ent
	}
	return out
}

// AllWindows derives one window per approved proof, skipping the same rows
// the entitlement fold skips. Unlike the fold it keeps overlapping windows
// for the same program, so calendars built from it cover every run a
// learner still has going.
func AllWindows(proofs []Proof, sessionMinutes int) []Window {
	out := make([]Window, 0, len(proofs))
	for _, p := range proofs {
		if !p.Approved() {
			continue
		}
		if !catalog.ValidProgramID(p.ProgramID) || !catalog.ValidLevel(p.Level) {
			continue
		}
		out = append(out, WindowFor(p, sessionMinutes))
	}
	return out
}

// Windows collects the schedule windows out of a resolved entitlement map.
func Windows(ents map[string]Entitlement) []Window {
	out := make([]Window, 0, len(ents))
	for _, ent := range ents {
		if ent.Window != nil {
			out = append(out, *ent.Window)
		}
	}
	return out
}

func sortLevels(in []catalog.Level) []catalog.Level {
	out := make([]catalog.Level, 0, len(in))
	for _, lvl := range catalog.Levels {
		for _, have := range in {
			if have == lvl {
				out = append(out, lvl)
				break
			}
		}
	}
	return out
}
