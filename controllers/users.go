package controllers

import (
	"strconv"
	"strings"
	"time"

	"tuklashub_go/catalog"
	"tuklashub_go/database"
	"tuklashub_go/middleware"
	"tuklashub_go/models"
	"tuklashub_go/services/notifications"
	"tuklashub_go/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct{}

// GetUsers returns all users with pagination (admin only).
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.User{})

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		query = query.Where("email LIKE ? OR full_name LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	out := make([]fiber.Map, 0, len(users))
	now := time.Now()
	for _, u := range users {
		out = append(out, fiber.Map{
			"id":              u.ID,
			"email":           u.Email,
			"full_name":       u.FullName,
			"role":            u.Role,
			"status":          u.Status,
			"credits":         u.Credits,
			"suspended":       u.Suspended(now),
			"suspended_until": u.SuspendedUntil,
			"created_at":      u.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"users": out,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetUser returns one user with their latest enrollment form and payment
// history (admin only).
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var user models.User
	if err := database.DB.First(&user, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	resp := fiber.Map{
		"id":              user.ID,
		"email":           user.Email,
		"full_name":       user.FullName,
		"role":            user.Role,
		"status":          user.Status,
		"credits":         user.Credits,
		"suspended_until": user.SuspendedUntil,
		"created_at":      user.CreatedAt,
	}

	var form models.EnrollForm
	if err := database.DB.Where("user_id = ?", user.ID).Order("submitted_at desc").First(&form).Error; err == nil {
		resp["enroll_form"] = form
	}

	var proofs []models.PaymentProof
	database.DB.Where("user_id = ?", user.ID).Order("created_at desc").Find(&proofs)
	dtos := make([]utils.PaymentProofDTO, 0, len(proofs))
	for _, p := range proofs {
		dtos = append(dtos, utils.ToPaymentProofDTO(p))
	}
	resp["payments"] = dtos

	return c.JSON(fiber.Map{"user": resp})
}

// SuspendUser blocks a learner from authenticated surfaces until the given
// time (admin only). Admin accounts cannot be suspended.
func (uc *UserController) SuspendUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req struct {
		Until  string `json:"until" validate:"required"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	until, err := time.Parse(time.RFC3339, req.Until)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "until must be RFC3339"})
	}
	if !until.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "until must be in the future"})
	}

	var user models.User
	if err := database.DB.First(&user, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if user.Role == "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Cannot suspend an admin account"})
	}

	if err := database.DB.Model(&user).Update("suspended_until", &until).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to suspend user"})
	}

	msg := "Your account is suspended until " + until.Format(time.RFC3339)
	if req.Reason != "" {
		msg += ". Reason: " + req.Reason
	}
	svc := notifications.NewService()
	_ = svc.EnqueueOrCreate([]uint{user.ID},
		notifications.Queued("Account suspended", msg, "warning", "normal", "popup"))

	middleware.LogActivity(c, "UPDATE", "users", user.ID, fiber.Map{
		"action": "suspend",
		"until":  until,
	})

	return c.JSON(fiber.Map{
		"message":         "User suspended",
		"suspended_until": until,
	})
}

// UnsuspendUser lifts a suspension immediately (admin only).
func (uc *UserController) UnsuspendUser(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var user models.User
	if err := database.DB.First(&user, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if err := database.DB.Model(&user).Update("suspended_until", nil).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to unsuspend user"})
	}

	svc := notifications.NewService()
	_ = svc.EnqueueOrCreate([]uint{user.ID},
		notifications.Queued("Account reinstated", "Your account suspension has been lifted.", "success", "normal"))

	middleware.LogActivity(c, "UPDATE", "users", user.ID, fiber.Map{"action": "unsuspend"})

	return c.JSON(fiber.Map{"message": "User unsuspended"})
}

// GetAdminStats returns headline counts for the admin dashboard.
func (uc *UserController) GetAdminStats(c *fiber.Ctx) error {
	var users, pending, approved, rejected, forms, reviews int64
	database.DB.Model(&models.User{}).Where("role = ?", "user").Count(&users)
	database.DB.Model(&models.PaymentProof{}).Where("status = ?", "pending").Count(&pending)
	database.DB.Model(&models.PaymentProof{}).Where("status = ?", "approved").Count(&approved)
	database.DB.Model(&models.PaymentProof{}).Where("status = ?", "rejected").Count(&rejected)
	database.DB.Model(&models.EnrollForm{}).Count(&forms)
	database.DB.Model(&models.Review{}).Count(&reviews)

	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"learners":          users,
			"payments_pending":  pending,
			"payments_approved": approved,
			"payments_rejected": rejected,
			"enroll_forms":      forms,
			"reviews":           reviews,
		},
	})
}

// GetPublicStats powers the landing-page counters. Learners served counts
// distinct users with at least one approved payment.
func (uc *UserController) GetPublicStats(c *fiber.Ctx) error {
	var learnersServed int64
	database.DB.Model(&models.PaymentProof{}).
		Where("status = ?", "approved").
		Distinct("user_id").
		Count(&learnersServed)

	var reviews int64
	var avgRating float64
	database.DB.Model(&models.Review{}).Count(&reviews)
	if reviews > 0 {
		database.DB.Model(&models.Review{}).Select("AVG(rating)").Scan(&avgRating)
	}

	return c.JSON(fiber.Map{
		"learners_served": learnersServed,
		"programs":        len(catalog.Programs()),
		"reviews":         reviews,
		"average_rating":  avgRating,
	})
}
