package schedule

import "time"

// Lock is the global scheduling lock. While any training window is still
// running, payments for programs outside the lock are held back so a
// learner cannot stack overlapping schedules across programs.
type Lock struct {
	ProgramIDs []string  `json:"program_ids"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

// ActiveLock reports the lock derived from the given windows at now. A
// window counts while now is strictly before its end. The lock spans every
// program with an active window, starts when the earliest of them started
// and releases when the latest one ends.
func ActiveLock(windows []Window, now time.Time) (Lock, bool) {
	var lock Lock
	seen := make(map[string]bool)
	for _, w := range windows {
		if !now.Before(w.EndsAt) {
			continue
		}
		if !seen[w.ProgramID] {
			seen[w.ProgramID] = true
			lock.ProgramIDs = append(lock.ProgramIDs, w.ProgramID)
		}
		if lock.StartsAt.IsZero() || w.StartsAt.Before(lock.StartsAt) {
			lock.StartsAt = w.StartsAt
		}
		if w.EndsAt.After(lock.EndsAt) {
			lock.EndsAt = w.EndsAt
		}
	}
	return lock, len(lock.ProgramIDs) > 0
}

// Blocks reports whether a payment for programID is held back by the lock.
// Programs already inside the lock stay payable for further levels.
func (l Lock) Blocks(programID string) bool {
	for _, id := range l.ProgramIDs {
		if id == programID {
			return false
		}
	}
	return true
}
