package controllers

import (
	"tuklashub_go/database"
	"tuklashub_go/middleware"
	"tuklashub_go/models"
	"tuklashub_go/utils"

	"github.com/gofiber/fiber/v2"
)

type ReviewController struct{}

type createReviewRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=80"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Comment     string `json:"comment" validate:"required,min=10,max=1000"`
}

// GetReviews returns the latest published reviews. Public endpoint.
func (rc *ReviewController) GetReviews(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var reviews []models.Review
	if err := database.DB.Order("created_at desc").Limit(limit).Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reviews"})
	}

	out := make([]fiber.Map, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, fiber.Map{
			"id":           r.ID,
			"display_name": r.DisplayName,
			"rating":       r.Rating,
			"comment":      r.Comment,
			"created_at":   r.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"reviews": out, "total": len(out)})
}

// CreateReview stores a review from a signed-in learner.
func (rc *ReviewController) CreateReview(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Validation failed", "details": validationDetails(err),
		})
	}

	review := models.Review{
		UserID:      user.ID,
		DisplayName: utils.SanitizeString(req.DisplayName),
		Rating:      req.Rating,
		Comment:     utils.SanitizeString(req.Comment),
	}
	if err := database.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save review"})
	}

	middleware.LogActivity(c, "CREATE", "reviews", review.ID, fiber.Map{"rating": review.Rating})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review published",
		"review": fiber.Map{
			"id":           review.ID,
			"display_name": review.DisplayName,
			"rating":       review.Rating,
			"comment":      review.Comment,
		},
	})
}
