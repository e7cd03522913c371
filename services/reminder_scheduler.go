package services

import (
	"fmt"
	"time"

	"tuklashub_go/catalog"
	"tuklashub_go/config"
	"tuklashub_go/database"
	"tuklashub_go/models"
	"tuklashub_go/schedule"
	"tuklashub_go/services/notifications"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderScheduler sends daily session reminders and access-expiry
// warnings derived from approved payments.
type ReminderScheduler struct {
	cron *cron.Cron
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start registers the cron jobs. No-op when reminders are disabled.
func (rs *ReminderScheduler) Start() {
	if config.AppConfig != nil && !config.AppConfig.EnableReminders {
		logrus.Info("Reminder scheduler disabled by config")
		return
	}

	if _, err := rs.cron.AddFunc("0 7 * * *", rs.SendDailySessionReminders); err != nil {
		logrus.WithError(err).Error("Failed to register daily reminder job")
	}
	if _, err := rs.cron.AddFunc("0 * * * *", rs.SendExpiryWarnings); err != nil {
		logrus.WithError(err).Error("Failed to register expiry warning job")
	}

	rs.cron.Start()
	logrus.Info("Reminder scheduler started")
}

// Stop halts the cron runner.
func (rs *ReminderScheduler) Stop() {
	if rs.cron != nil {
		rs.cron.Stop()
	}
}

func sessionLength() int {
	if config.AppConfig != nil {
		return config.AppConfig.SessionMinutes
	}
	return 120
}

// proofsByUser loads all approved proofs grouped by owner.
func proofsByUser() (map[uint][]schedule.Proof, error) {
	var rows []models.PaymentProof
	if err := database.DB.Where("status = ?", "approved").Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint][]schedule.Proof)
	for _, r := range rows {
		out[r.UserID] = append(out[r.UserID], r.ScheduleProof())
	}
	return out, nil
}

// SendDailySessionReminders notifies each learner of the sessions running
// today. Runs at 07:00 server time.
func (rs *ReminderScheduler) SendDailySessionReminders() {
	byUser, err := proofsByUser()
	if err != nil {
		logrus.WithError(err).Error("Daily reminders: failed to load payments")
		return
	}

	now := time.Now()
	minutes := sessionLength()
	svc := notifications.NewService()
	sent := 0

	for userID, proofs := range byUser {
		// One window per approved proof: overlapping runs of the same
		// program each keep their own reminders.
		for _, w := range schedule.AllWindows(proofs, minutes) {
			sessions := schedule.TodaysSessions(schedule.BuildSessions(w, minutes), now)
			for _, s := range sessions {
				if rs.reminderAlreadySent(userID, s.ID) {
					continue
				}
				program, _ := catalog.ProgramByID(w.ProgramID)
				msg := fmt.Sprintf("%s starts today at %s", s.Title, s.StartsAt.Format("15:04"))
				err := svc.EnqueueOrCreate([]uint{userID}, notifications.QueuedWithData(
					"Today's session: "+program.Title, msg, "info",
					map[string]interface{}{
						"session_id": s.ID,
						"program_id": w.ProgramID,
						"join_url":   s.JoinURL,
						"starts_at":  s.StartsAt,
					},
					"normal", "popup",
				))
				if err != nil {
					logrus.WithError(err).Errorf("Daily reminders: failed for user %d", userID)
					continue
				}
				sent++
			}
		}
	}

	logrus.Infof("Daily session reminders sent: %d", sent)
}

// SendExpiryWarnings notifies learners whose schedule window ends within
// the next 24 hours. Runs hourly; the dedup check keeps it to one warning
// per window.
func (rs *ReminderScheduler) SendExpiryWarnings() {
	byUser, err := proofsByUser()
	if err != nil {
		logrus.WithError(err).Error("Expiry warnings: failed to load payments")
		return
	}

	now := time.Now()
	horizon := now.Add(24 * time.Hour)
	minutes := sessionLength()
	svc := notifications.NewService()
	sent := 0

	for userID, proofs := range byUser {
		ents := schedule.ResolveEntitlements(proofs, minutes)
		for _, ent := range ents {
			w := ent.Window
			if w == nil || !w.EndsAt.After(now) || w.EndsAt.After(horizon) {
				continue
			}
			marker := fmt.Sprintf("window:%s:%s", w.ProgramID, w.EndsAt.Format(time.RFC3339))
			if rs.reminderAlreadySent(userID, marker) {
				continue
			}
			program, _ := catalog.ProgramByID(w.ProgramID)
			msg := fmt.Sprintf("Your %s schedule ends at %s. Module access stays unlocked permanently.",
				program.Title, w.EndsAt.Format("2006-01-02 15:04"))
			err := svc.EnqueueOrCreate([]uint{userID}, notifications.QueuedWithData(
				"Schedule ending soon", msg, "warning",
				map[string]interface{}{"marker": marker, "program_id": w.ProgramID, "ends_at": w.EndsAt},
				"normal", "popup",
			))
			if err != nil {
				logrus.WithError(err).Errorf("Expiry warnings: failed for user %d", userID)
				continue
			}
			sent++
		}
	}

	if sent > 0 {
		logrus.Infof("Expiry warnings sent: %d", sent)
	}
}

// reminderAlreadySent checks recent notifications for a matching data
// marker so hourly runs do not repeat themselves.
func (rs *ReminderScheduler) reminderAlreadySent(userID uint, marker string) bool {
	var count int64
	err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND data LIKE ? AND created_at > ?",
			userID, "%"+marker+"%", time.Now().Add(-36*time.Hour)).
		Count(&count).Error
	if err != nil {
		return false
	}
	return count > 0
}
