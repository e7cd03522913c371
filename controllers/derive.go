package controllers

import (
	"tuklashub_go/config"
	"tuklashub_go/database"
	"tuklashub_go/models"
	"tuklashub_go/schedule"
)

// loadScheduleProofs fetches a user's proof rows as schedule inputs.
func loadScheduleProofs(userID uint) ([]schedule.Proof, error) {
	var rows []models.PaymentProof
	if err := database.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	proofs := make([]schedule.Proof, 0, len(rows))
	for _, r := range rows {
		proofs = append(proofs, r.ScheduleProof())
	}
	return proofs, nil
}

// sessionMinutes returns the configured session length.
func sessionMinutes() int {
	if config.AppConfig != nil {
		return config.AppConfig.SessionMinutes
	}
	return 120
}
