package controllers

import (
	"fmt"
	"time"

	"tuklashub_go/catalog"
	"tuklashub_go/middleware"
	"tuklashub_go/schedule"

	"github.com/gofiber/fiber/v2"
)

type ProgramController struct{}

// GetPublicPrograms returns the program catalog for the landing page.
func (pc *ProgramController) GetPublicPrograms(c *fiber.Ctx) error {
	programs := catalog.Programs()
	out := make([]fiber.Map, 0, len(programs))
	for _, p := range programs {
		levels := make([]fiber.Map, 0, len(catalog.Levels))
		for _, lvl := range catalog.Levels {
			levels = append(levels, fiber.Map{
				"level":   lvl,
				"days":    catalog.Days(lvl),
				"price":   catalog.Price(lvl),
				"credits": catalog.Credits(lvl),
			})
		}
		out = append(out, fiber.Map{
			"id":       p.ID,
			"title":    p.Title,
			"overview": p.Overview,
			"outcomes": p.Outcomes,
			"levels":   levels,
		})
	}
	return c.JSON(fiber.Map{"programs": out})
}

// GetPrograms returns the catalog with the caller's access state per
// program: unlocked levels, the permanent-access flag, and the current
// schedule window with a live countdown.
func (pc *ProgramController) GetPrograms(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	proofs, err := loadScheduleProofs(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payment history"})
	}
	ents := schedule.ResolveEntitlements(proofs, sessionMinutes())
	now := time.Now()

	programs := catalog.Programs()
	out := make([]fiber.Map, 0, len(programs))
	for _, p := range programs {
		access := fiber.Map{
			"unlocked_levels": []catalog.Level{},
			"permanent":       false,
		}
		if ent, ok := ents[p.ID]; ok {
			access["unlocked_levels"] = ent.UnlockedLevels
			access["permanent"] = ent.Permanent
			if ent.Window != nil {
				access["window"] = fiber.Map{
					"starts_at": ent.Window.StartsAt,
					"ends_at":   ent.Window.EndsAt,
					"level":     ent.Window.Level,
					"active":    now.Before(ent.Window.EndsAt),
					"countdown": schedule.ClockString(ent.Window.EndsAt.Sub(now)),
				}
			}
		}
		out = append(out, fiber.Map{
			"id":       p.ID,
			"title":    p.Title,
			"overview": p.Overview,
			"outcomes": p.Outcomes,
			"access":   access,
		})
	}
	return c.JSON(fiber.Map{"programs": out})
}

// GetProgramModules lists the curriculum modules the caller has unlocked
// for one program. Locked levels are listed without their topics.
func (pc *ProgramController) GetProgramModules(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	program, ok := catalog.ProgramByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Program not found"})
	}

	proofs, err := loadScheduleProofs(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payment history"})
	}
	ent := schedule.ResolveEntitlements(proofs, sessionMinutes())[program.ID]

	modules := make([]fiber.Map, 0, len(catalog.Levels))
	for _, lvl := range catalog.Levels {
		cur := program.Curricula[lvl]
		m := fiber.Map{
			"level":    lvl,
			"days":     cur.Days,
			"unlocked": ent.Unlocked(lvl),
		}
		if ent.Unlocked(lvl) {
			m["topics"] = cur.Topics
		}
		modules = append(modules, m)
	}

	return c.JSON(fiber.Map{
		"program_id": program.ID,
		"title":      program.Title,
		"modules":    modules,
	})
}

// GetProgramLessons returns the lesson previews for an unlocked level: the
// leading curriculum topics expanded into outline points.
func (pc *ProgramController) GetProgramLessons(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	program, ok := catalog.ProgramByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Program not found"})
	}
	level := catalog.Level(c.Params("level"))
	if !catalog.ValidLevel(level) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid level"})
	}

	proofs, err := loadScheduleProofs(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payment history"})
	}
	ent := schedule.ResolveEntitlements(proofs, sessionMinutes())[program.ID]
	if !ent.Unlocked(level) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "This level is locked. Submit a payment proof to unlock it.",
		})
	}

	topics := program.Curricula[level].Topics
	preview := topics
	if len(preview) > 2 {
		preview = preview[:2]
	}
	lessons := make([]fiber.Map, 0, len(preview))
	for i, topic := range preview {
		lessons = append(lessons, fiber.Map{
			"id":    fmt.Sprintf("%s-%s-%d", program.ID, level, i+1),
			"title": topic,
			"points": []string{
				"Overview: " + topic,
				"Guided practice and examples",
				"Apply it to a real VA task",
				"Recap and self-check",
			},
		})
	}

	return c.JSON(fiber.Map{
		"program_id": program.ID,
		"level":      level,
		"lessons":    lessons,
	})
}
