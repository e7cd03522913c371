package controllers

import (
	"encoding/json"
	"time"

	"tuklashub_go/database"
	"tuklashub_go/middleware"
	"tuklashub_go/models"
	"tuklashub_go/utils"

	"github.com/gofiber/fiber/v2"
)

type EnrollController struct{}

// EnrollRequest is the one-time enrollment questionnaire.
type EnrollRequest struct {
	ProgramTitle     string `json:"program_title" validate:"required"`
	FirstName        string `json:"first_name" validate:"required,min=2"`
	LastName         string `json:"last_name" validate:"required,min=2"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required,len=11,numeric"`
	Gender           string `json:"gender" validate:"required"`
	Birthdate        string `json:"birthdate" validate:"required"`
	AddressLine      string `json:"address_line" validate:"required"`
	City             string `json:"city" validate:"required"`
	Province         string `json:"province" validate:"required"`
	PostalCode       string `json:"postal_code" validate:"required"`
	Goals            string `json:"goals" validate:"required,min=10"`
	Referral         string `json:"referral"`
	EmergencyName    string `json:"emergency_name" validate:"required"`
	EmergencyPhone   string `json:"emergency_phone" validate:"required,len=11,numeric"`
	Newsletter       bool   `json:"newsletter"`
	AgreeTerms       bool   `json:"agree_terms" validate:"required,eq=true"`
	AgreeDataPrivacy bool   `json:"agree_data_privacy" validate:"required,eq=true"`
}

// SubmitEnrollForm stores the enrollment questionnaire. Learners must
// enroll once before they can browse programs and pay for levels.
func (ec *EnrollController) SubmitEnrollForm(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Validation failed", "details": validationDetails(err),
		})
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to encode form"})
	}

	form := models.EnrollForm{
		UserID:       user.ID,
		ProgramTitle: utils.SanitizeString(req.ProgramTitle),
		FullName:     utils.SanitizeString(req.FirstName + " " + req.LastName),
		Email:        utils.SanitizeString(req.Email),
		Payload:      payload,
		SubmittedAt:  time.Now(),
	}

	if err := database.DB.Create(&form).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save enrollment form"})
	}

	middleware.LogActivity(c, "CREATE", "enrollments", form.ID, fiber.Map{
		"program_title": form.ProgramTitle,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Enrollment form submitted",
		"form_id": form.ID,
	})
}

// GetMyEnrollForm returns the caller's latest enrollment form.
func (ec *EnrollController) GetMyEnrollForm(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	var form models.EnrollForm
	if err := database.DB.Where("user_id = ?", user.ID).Order("submitted_at desc").First(&form).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No enrollment form on file"})
	}

	return c.JSON(fiber.Map{"form": form})
}
