package seeders

import (
	"log"
	"time"

	"tuklashub_go/database"
	"tuklashub_go/models"
	"tuklashub_go/utils"
)

// SeedAll runs all seeders.
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedUsers()
	SeedPayments()
	SeedReviews()

	log.Println("Database seeding completed successfully!")
}

// SeedUsers seeds the admin account and a demo learner.
func SeedUsers() {
	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already seeded, skipping...")
		return
	}

	hashedPassword, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			BaseModel: models.BaseModel{ID: 1, CreatedAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)},
			Email:     "admin@tuklashub.com",
			Password:  hashedPassword,
			FullName:  "Hub Administrator",
			Role:      "admin",
			Status:    "active",
		},
		{
			BaseModel: models.BaseModel{ID: 2, CreatedAt: time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)},
			Email:     "maria.santos@gmail.com",
			Password:  hashedPassword,
			FullName:  "Maria Santos",
			Role:      "user",
			Status:    "active",
			Credits:   1,
		},
	}

	for _, user := range users {
		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("Error seeding user %s: %v", user.Email, err)
		}
	}

	log.Println("Users seeded successfully")
}

// SeedPayments gives the demo learner an approved beginner enrollment so a
// fresh install shows a live schedule.
func SeedPayments() {
	var count int64
	database.DB.Model(&models.PaymentProof{}).Count(&count)
	if count > 0 {
		log.Println("Payments already seeded, skipping...")
		return
	}

	approvedAt := time.Date(2025, 6, 3, 10, 15, 0, 0, time.UTC)
	chosenStart := time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC)
	adminID := uint(1)

	proof := models.PaymentProof{
		BaseModel:      models.BaseModel{ID: 1, CreatedAt: time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)},
		UserID:         2,
		ProgramID:      "vdaa",
		Level:          "beginner",
		Amount:         3000,
		CreditsAwarded: 1,
		ImageURL:       "payment_proofs/2/2025/06/02/seed-receipt.png",
		Status:         "approved",
		RefText:        "ref:GCASH-558812; start:2025-06-09T08:00:00Z; slot:08:00-10:00",
		ChosenStartAt:  &chosenStart,
		ChosenSlot:     "08:00-10:00",
		ApprovedAt:     &approvedAt,
		ApprovedByID:   &adminID,
	}

	if err := database.DB.Create(&proof).Error; err != nil {
		log.Printf("Error seeding payment proof: %v", err)
		return
	}

	log.Println("Payments seeded successfully")
}

// SeedReviews seeds a few starter reviews for the landing page.
func SeedReviews() {
	var count int64
	database.DB.Model(&models.Review{}).Count(&count)
	if count > 0 {
		log.Println("Reviews already seeded, skipping...")
		return
	}

	reviews := []models.Review{
		{
			BaseModel:   models.BaseModel{ID: 1, CreatedAt: time.Date(2025, 6, 20, 14, 0, 0, 0, time.UTC)},
			UserID:      2,
			DisplayName: "Maria S.",
			Rating:      5,
			Comment:     "The data analytics track landed me my first VA client within a month. The daily sessions kept me accountable.",
		},
		{
			BaseModel:   models.BaseModel{ID: 2, CreatedAt: time.Date(2025, 7, 2, 19, 45, 0, 0, time.UTC)},
			UserID:      2,
			DisplayName: "Maria S.",
			Rating:      4,
			Comment:     "Clear curriculum and the evening slot fits around my day job. Wish the beginner track were a little longer.",
		},
	}

	for _, review := range reviews {
		if err := database.DB.Create(&review).Error; err != nil {
			log.Printf("Error seeding review %d: %v", review.ID, err)
		}
	}

	log.Println("Reviews seeded successfully")
}
