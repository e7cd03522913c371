package schedule

import (
	"fmt"
	"time"

	"tuklashub_go/catalog"
)

// Session is one derived training day.
type Session struct {
	ID        string        `json:"id"`
	ProofID   string        `json:"proof_id"`
	ProgramID string        `json:"program_id"`
	Level     catalog.Level `json:"level"`
	Title     string        `json:"title"`
	StartsAt  time.Time     `json:"starts_at"`
	EndsAt    time.Time     `json:"ends_at"`
	Display   string        `json:"display"`
	Location  string        `json:"location"`
	JoinURL   string        `json:"join_url"`
}

// JoinState describes where a session stands relative to now.
type JoinState string

const (
	JoinUpcoming JoinState = "upcoming"
	JoinOpen     JoinState = "open"
	JoinEnded    JoinState = "ended"
)

// BuildSessions expands a window into its daily sessions: one per calendar
// day, titles drawn from a seeded permutation of the program/level pool so
// a learner's calendar is stable across requests and deploys.
func BuildSessions(w Window, sessionMinutes int) []Session {
	seed := fmt.Sprintf("%s-%s-%s-%s",
		w.ProofID, w.StartsAt.UTC().Format(time.RFC3339), w.ProgramID, w.Level)
	titles := ShuffleDeterministic(catalog.Titles(w.ProgramID, w.Level), seed)
	joinURL := catalog.MeetingLink(w.ProgramID)

	days := catalog.Days(w.Level)
	out := make([]Session, 0, days)
	for i := 0; i < days; i++ {
		start := AddDays(w.StartsAt, i)
		out = append(out, Session{
			ID:        fmt.Sprintf("%s-%d", w.ProofID, i),
			ProofID:   w.ProofID,
			ProgramID: w.ProgramID,
			Level:     w.Level,
			Title:     fmt.Sprintf("%s %d", titles[i%len(titles)], i+1),
			StartsAt:  start,
			EndsAt:    AddMinutes(start, sessionMinutes),
			Display:   FormatDisplay(start),
			Location:  catalog.DefaultLocation,
			JoinURL:   joinURL,
		})
	}
	return out
}

// TodaysSessions filters sessions to those on the same calendar day as now.
func TodaysSessions(sessions []Session, now time.Time) []Session {
	key := DateKey(now)
	out := make([]Session, 0, 2)
	for _, s := range sessions {
		if DateKey(s.StartsAt) == key {
			out = append(out, s)
		}
	}
	return out
}

// SessionJoinState reports whether a session can be joined at now.
func SessionJoinState(s Session, now time.Time) JoinState {
	switch {
	case now.Before(s.StartsAt):
		return JoinUpcoming
	case now.Before(s.EndsAt) || now.Equal(s.EndsAt):
		return JoinOpen
	default:
		return JoinEnded
	}
}
