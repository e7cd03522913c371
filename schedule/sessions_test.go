package schedule

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"tuklashub_go/catalog"
)

func beginnerWindow() Window {
	return WindowFor(Proof{
		ID:        "42",
		ProgramID: "vdaa",
		Level:     catalog.LevelBeginner,
		Status:    "approved",
		CreatedAt: ts("2024-12-20T14:30:00Z"),
		Choice:    Choice{StartAt: tsp("2025-01-01T08:00:00Z"), Slot: SlotMorning},
	}, 120)
}

func TestBuildSessionsBeginnerWeek(t *testing.T) {
	sessions := BuildSessions(beginnerWindow(), 120)

	if len(sessions) != 7 {
		t.Fatalf("expected 7 sessions, got %d", len(sessions))
	}
	for i, s := range sessions {
		wantID := fmt.Sprintf("42-%d", i)
		if s.ID != wantID {
			t.Fatalf("session %d id = %q, want %q", i, s.ID, wantID)
		}
		wantStart := ts("2025-01-01T08:00:00Z").AddDate(0, 0, i)
		if !s.StartsAt.Equal(wantStart) {
			t.Fatalf("session %d starts %v, want %v", i, s.StartsAt, wantStart)
		}
		if got := s.EndsAt.Sub(s.StartsAt); got != 2*time.Hour {
			t.Fatalf("session %d duration = %v", i, got)
		}
		if !strings.HasSuffix(s.Title, fmt.Sprintf(" %d", i+1)) {
			t.Fatalf("session %d title %q missing day number", i, s.Title)
		}
		if s.JoinURL == "" || s.Location != catalog.DefaultLocation {
			t.Fatalf("session %d missing join info: %+v", i, s)
		}
	}
	if sessions[0].Display != "2025-01-01 08:00 AM" {
		t.Fatalf("display = %q", sessions[0].Display)
	}
}

func TestBuildSessionsDeterministic(t *testing.T) {
	w := beginnerWindow()

	first := BuildSessions(w, 120)
	second := BuildSessions(w, 120)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical windows must derive identical sessions")
	}

	other := w
	other.ProofID = "43"
	third := BuildSessions(other, 120)
	same := true
	for i := range first {
		if first[i].Title != third[i].Title {
			same = false
			break
		}
	}
	if same {
		t.Fatal("a different proof id must reshuffle session titles")
	}
}

func TestBuildSessionsTitleWrap(t *testing.T) {
	// Unknown program/level falls back to a single-title pool, so every
	// session reuses it with its own day number.
	w := Window{
		ProofID:   "9",
		ProgramID: "mystery",
		Level:     catalog.LevelBeginner,
		StartsAt:  ts("2025-01-01T08:00:00Z"),
	}

	sessions := BuildSessions(w, 90)

	if len(sessions) != 7 {
		t.Fatalf("expected 7 sessions, got %d", len(sessions))
	}
	for i, s := range sessions {
		want := fmt.Sprintf("Training Session • Day %d", i+1)
		if s.Title != want {
			t.Fatalf("session %d title = %q, want %q", i, s.Title, want)
		}
	}
}

func TestTodaysSessions(t *testing.T) {
	sessions := BuildSessions(beginnerWindow(), 120)

	now := ts("2025-01-03T07:00:00Z")
	today := TodaysSessions(sessions, now)
	if len(today) != 1 {
		t.Fatalf("expected 1 session on %s, got %d", DateKey(now), len(today))
	}
	if today[0].ID != "42-2" {
		t.Fatalf("today's session id = %q", today[0].ID)
	}

	if got := TodaysSessions(sessions, ts("2025-02-01T08:00:00Z")); len(got) != 0 {
		t.Fatalf("expected no sessions outside the window, got %d", len(got))
	}
}

func TestSessionJoinState(t *testing.T) {
	s := Session{
		StartsAt: ts("2025-01-01T08:00:00Z"),
		EndsAt:   ts("2025-01-01T10:00:00Z"),
	}

	tests := []struct {
		name string
		now  time.Time
		want JoinState
	}{
		{"before start", ts("2025-01-01T07:59:59Z"), JoinUpcoming},
		{"at start", ts("2025-01-01T08:00:00Z"), JoinOpen},
		{"mid session", ts("2025-01-01T09:00:00Z"), JoinOpen},
		{"at end", ts("2025-01-01T10:00:00Z"), JoinOpen},
		{"after end", ts("2025-01-01T10:00:01Z"), JoinEnded},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := SessionJoinState(s, tc.now); got != tc.want {
				t.Fatalf("SessionJoinState at %v = %q, want %q", tc.now, got, tc.want)
			}
		})
	}
}
