package controllers

import (
	"fmt"
	"strings"
	"time"

	"tuklashub_go/catalog"
	"tuklashub_go/database"
	"tuklashub_go/middleware"
	"tuklashub_go/models"
	"tuklashub_go/schedule"
	"tuklashub_go/services/notifications"
	"tuklashub_go/storage"
	"tuklashub_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type PaymentController struct{}

// SubmitPayment accepts a payment proof for review: multipart form with a
// program, level, receipt image, and an optional schedule choice. Price and
// credits come from the catalog, never from the client.
func (pc *PaymentController) SubmitPayment(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	rawProgram := strings.TrimSpace(c.FormValue("program_id"))
	if rawProgram == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing program_id"})
	}
	programID := catalog.NormalizeProgramID(rawProgram)
	level := catalog.Level(strings.ToLower(strings.TrimSpace(c.FormValue("level"))))
	if !catalog.ValidLevel(level) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid level"})
	}

	// Optional schedule choice
	var chosenStartAt *time.Time
	if v := c.FormValue("chosen_start_at"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "chosen_start_at must be RFC3339"})
		}
		chosenStartAt = &t
	}
	chosenSlot := schedule.Slot(c.FormValue("chosen_slot"))
	if chosenSlot == "" {
		chosenSlot = schedule.SlotMorning
	}
	if !schedule.ValidSlot(chosenSlot) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "chosen_slot must be 08:00-10:00 or 18:00-20:00"})
	}

	// Global scheduling lock: while any training window runs, only the
	// locked programs accept further payments.
	proofs, err := loadScheduleProofs(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payment history"})
	}
	if lock, active := schedule.ActiveLock(schedule.AllWindows(proofs, sessionMinutes()), time.Now()); active && lock.Blocks(programID) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Scheduling is locked while a training window is running",
			"lock":  lock,
		})
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing receipt image"})
	}

	storageService, err := storage.NewStorageService()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Storage unavailable"})
	}
	imageURL, err := storageService.UploadReceipt(file, user.ID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	proof := models.PaymentProof{
		UserID:         user.ID,
		ProgramID:      programID,
		Level:          string(level),
		Amount:         catalog.Price(level),
		CreditsAwarded: catalog.Credits(level),
		ImageURL:       imageURL,
		Status:         "pending",
		RefText:        utils.SanitizeString(c.FormValue("ref")),
		ChosenStartAt:  chosenStartAt,
		ChosenSlot:     string(chosenSlot),
	}

	if err := database.DB.Create(&proof).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save payment proof"})
	}

	middleware.LogActivity(c, "CREATE", "payments", proof.ID, fiber.Map{
		"program_id": proof.ProgramID,
		"level":      proof.Level,
		"amount":     proof.Amount,
	})

	// Let the review desk know there is work waiting.
	notifyAdmins(
		"New payment proof",
		fmt.Sprintf("%s submitted a %s/%s payment proof", user.Email, proof.ProgramID, proof.Level),
		"info",
		fiber.Map{"proof_id": proof.ID},
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Payment proof submitted for review",
		"proof":   utils.ToPaymentProofDTO(proof),
	})
}

// GetMyPayments lists the current user's submissions, newest first.
func (pc *PaymentController) GetMyPayments(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	var rows []models.PaymentProof
	if err := database.DB.Where("user_id = ?", user.ID).Order("created_at desc").Limit(50).Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payments"})
	}

	dtos := make([]utils.PaymentProofDTO, 0, len(rows))
	for _, r := range rows {
		dtos = append(dtos, utils.ToPaymentProofDTO(r))
	}
	return c.JSON(fiber.Map{"payments": dtos})
}

// GetPaymentLock reports the current global scheduling lock for the user.
func (pc *PaymentController) GetPaymentLock(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	proofs, err := loadScheduleProofs(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payment history"})
	}
	lock, active := schedule.ActiveLock(schedule.AllWindows(proofs, sessionMinutes()), time.Now())

	resp := fiber.Map{"active": active}
	if active {
		resp["lock"] = lock
		resp["countdown"] = schedule.ClockString(time.Until(lock.EndsAt))
	}
	return c.JSON(resp)
}

// GetAllPayments lists proofs for the review desk, filterable by status
// and a free-text search over email, program, and level.
func (pc *PaymentController) GetAllPayments(c *fiber.Ctx) error {
	query := database.DB.Model(&models.PaymentProof{}).Preload("User").Order("created_at desc")

	if status := c.Query("status"); status != "" {
		if !utils.IsValidProofStatus(status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status filter"})
		}
		query = query.Where("status = ?", status)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		query = query.Joins("JOIN users ON users.id = payment_proofs.user_id").
			Where("users.email LIKE ? OR payment_proofs.program_id LIKE ? OR payment_proofs.level LIKE ?", like, like, like)
	}

	var rows []models.PaymentProof
	if err := query.Limit(200).Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payments"})
	}

	dtos := make([]utils.PaymentProofDTO, 0, len(rows))
	for _, r := range rows {
		dtos = append(dtos, utils.ToPaymentProofDTO(r))
	}
	return c.JSON(fiber.Map{"payments": dtos, "total": len(dtos)})
}

// ApprovePayment marks a proof approved, stamps the reviewer, and awards
// the level's credits to the learner.
func (pc *PaymentController) ApprovePayment(c *fiber.Ctx) error {
	admin, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	var proof models.PaymentProof
	if err := database.DB.First(&proof, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment proof not found"})
	}
	if proof.Status == "approved" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Payment proof already approved"})
	}

	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&proof).Updates(map[string]interface{}{
			"status":         "approved",
			"approved_at":    now,
			"approved_by_id": admin.ID,
			"reject_reason":  "",
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", proof.UserID).
			UpdateColumn("credits", gorm.Expr("credits + ?", proof.CreditsAwarded)).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve payment"})
	}

	middleware.LogActivity(c, "UPDATE", "payments", proof.ID, fiber.Map{
		"action":     "approve",
		"program_id": proof.ProgramID,
		"level":      proof.Level,
	})

	notifications.NewService().EnqueueOrCreate([]uint{proof.UserID}, notifications.QueuedWithData(
		"Payment approved",
		fmt.Sprintf("Your %s %s payment was approved. Your training schedule is ready.", proof.ProgramID, proof.Level),
		"success",
		fiber.Map{"proof_id": proof.ID, "program_id": proof.ProgramID, "level": proof.Level},
		"normal", "popup",
	))

	database.DB.Preload("User").First(&proof, proof.ID)
	return c.JSON(fiber.Map{
		"message": "Payment approved",
		"proof":   utils.ToPaymentProofDTO(proof),
	})
}

// RejectPayment marks a proof rejected with an optional reason.
func (pc *PaymentController) RejectPayment(c *fiber.Ctx) error {
	if _, err := middleware.GetCurrentUser(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User not found"})
	}

	var proof models.PaymentProof
	if err := database.DB.First(&proof, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment proof not found"})
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := database.DB.Model(&proof).Updates(map[string]interface{}{
		"status":        "rejected",
		"reject_reason": utils.SanitizeString(req.Reason),
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reject payment"})
	}

	middleware.LogActivity(c, "UPDATE", "payments", proof.ID, fiber.Map{
		"action": "reject",
		"reason": req.Reason,
	})

	msg := "Your payment proof was rejected. Please re-submit with a clearer receipt."
	if req.Reason != "" {
		msg = fmt.Sprintf("Your payment proof was rejected: %s", req.Reason)
	}
	notifications.NewService().EnqueueOrCreate([]uint{proof.UserID}, notifications.QueuedWithData(
		"Payment rejected", msg, "warning",
		fiber.Map{"proof_id": proof.ID, "program_id": proof.ProgramID, "level": proof.Level},
		"normal", "popup",
	))

	return c.JSON(fiber.Map{"message": "Payment rejected"})
}

// ExportPayments streams the proof list as an xlsx workbook.
func (pc *PaymentController) ExportPayments(c *fiber.Ctx) error {
	query := database.DB.Model(&models.PaymentProof{}).Preload("User").Order("created_at desc")
	if status := c.Query("status"); status != "" && utils.IsValidProofStatus(status) {
		query = query.Where("status = ?", status)
	}

	var rows []models.PaymentProof
	if err := query.Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load payments"})
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Payments"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Submitted", "Email", "Program", "Level", "Amount", "Credits", "Status", "Approved At", "Reject Reason"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for rIdx, p := range rows {
		approvedAt := ""
		if p.ApprovedAt != nil {
			approvedAt = p.ApprovedAt.Format(time.RFC3339)
		}
		values := []interface{}{
			p.ID, p.CreatedAt.Format(time.RFC3339), p.User.Email, p.ProgramID, p.Level,
			p.Amount, p.CreditsAwarded, p.Status, approvedAt, p.RejectReason,
		}
		for cIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build workbook"})
	}

	middleware.LogActivity(c, "EXPORT", "payments", 0, fiber.Map{"rows": len(rows)})

	filename := fmt.Sprintf("payments-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}

// notifyAdmins queues a notification for every active admin account.
func notifyAdmins(title, message, typ string, data interface{}) {
	var adminIDs []uint
	if err := database.DB.Model(&models.User{}).
		Where("role = ? AND status = ?", "admin", "active").
		Pluck("id", &adminIDs).Error; err != nil || len(adminIDs) == 0 {
		return
	}
	notifications.NewService().EnqueueOrCreate(adminIDs, notifications.QueuedWithData(title, message, typ, data, "normal"))
}
