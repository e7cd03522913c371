package controllers

import (
	"sort"
	"time"

	"tuklashub_go/catalog"
	"tuklashub_go/middleware"
	"tuklashub_go/schedule"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct{}

// GetDashboard returns the learner's program windows with countdowns and
// the sessions running today, each with its join state.
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	proofs, err := loadScheduleProofs(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payment history"})
	}
	ents := schedule.ResolveEntitlements(proofs, sessionMinutes())
	allWindows := schedule.AllWindows(proofs, sessionMinutes())
	now := time.Now()

	// The countdown card shows one window per program: the latest-ending
	// run from the entitlement fold.
	windows := make([]fiber.Map, 0, len(ents))
	for _, ent := range ents {
		if ent.Window == nil {
			continue
		}
		w := *ent.Window
		program, _ := catalog.ProgramByID(w.ProgramID)
		windows = append(windows, fiber.Map{
			"program_id": w.ProgramID,
			"title":      program.Title,
			"level":      w.Level,
			"starts_at":  w.StartsAt,
			"ends_at":    w.EndsAt,
			"active":     now.Before(w.EndsAt),
			"countdown":  schedule.ClockString(w.EndsAt.Sub(now)),
		})
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i]["program_id"].(string) < windows[j]["program_id"].(string)
	})

	// Today's sessions come from every per-proof window, so a learner who
	// levels up mid-run keeps the earlier run's remaining sessions.
	today := make([]fiber.Map, 0, 2)
	for _, w := range allWindows {
		for _, s := range schedule.TodaysSessions(schedule.BuildSessions(w, sessionMinutes()), now) {
			today = append(today, fiber.Map{
				"session":    s,
				"join_state": schedule.SessionJoinState(s, now),
			})
		}
	}

	lock, lockActive := schedule.ActiveLock(allWindows, now)
	resp := fiber.Map{
		"windows":          windows,
		"todays_sessions":  today,
		"lock_active":      lockActive,
		"credits":          user.Credits,
		"generated_at":     now,
		"session_minutes":  sessionMinutes(),
		"date_key":         schedule.DateKey(now),
	}
	if lockActive {
		resp["lock"] = lock
		resp["lock_countdown"] = schedule.ClockString(lock.EndsAt.Sub(now))
	}
	return c.JSON(resp)
}

// GetEvents returns the learner's full derived session calendar, sorted by
// start time.
func (dc *DashboardController) GetEvents(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	proofs, err := loadScheduleProofs(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payment history"})
	}
	var sessions []schedule.Session
	for _, w := range schedule.AllWindows(proofs, sessionMinutes()) {
		sessions = append(sessions, schedule.BuildSessions(w, sessionMinutes())...)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartsAt.Before(sessions[j].StartsAt)
	})

	return c.JSON(fiber.Map{"events": sessions, "total": len(sessions)})
}
