package routes

import (
	"tuklashub_go/controllers"
	"tuklashub_go/middleware"
	"tuklashub_go/services/websocket"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, wsHub *websocket.Hub) {
	authController := &controllers.AuthController{}
	programController := &controllers.ProgramController{}
	paymentController := &controllers.PaymentController{}
	dashboardController := &controllers.DashboardController{}
	enrollController := &controllers.EnrollController{}
	reviewController := &controllers.ReviewController{}
	userController := &controllers.UserController{}
	notificationController := &controllers.NotificationController{}
	logController := &controllers.LogController{}
	healthController := controllers.NewHealthController(nil)
	wsController := controllers.NewWebSocketController(wsHub)

	app.Get("/health", healthController.GetHealthStatus)

	// API group
	api := app.Group("/api")

	// Public routes (no authentication required)
	public := api.Group("/public")
	public.Get("/programs", programController.GetPublicPrograms)
	public.Get("/reviews", reviewController.GetReviews)
	public.Get("/stats", userController.GetPublicStats)

	// Authentication routes (no middleware)
	auth := api.Group("/auth")
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/profile", middleware.JWTMiddleware(), authController.GetProfile)

	// Protected routes (require authentication; suspended accounts are
	// blocked except for admins)
	protected := api.Group("/", middleware.JWTMiddleware(), middleware.SuspensionGate())

	protected.Get("/profile", authController.GetProfile)
	protected.Put("/profile/password", authController.ChangePassword)
	protected.Post("/auth/logout", authController.Logout)

	// Enrollment form
	protected.Post("/enroll", enrollController.SubmitEnrollForm)
	protected.Get("/enroll", enrollController.GetMyEnrollForm)

	// Program catalog with the caller's access state
	programs := protected.Group("/programs")
	programs.Get("/", programController.GetPrograms)
	programs.Get("/:id/modules", programController.GetProgramModules)
	programs.Get("/:id/lessons/:level", programController.GetProgramLessons)

	// Payments
	payments := protected.Group("/payments")
	payments.Post("/", paymentController.SubmitPayment)
	payments.Get("/", paymentController.GetMyPayments)
	payments.Get("/lock", paymentController.GetPaymentLock)

	// Derived schedule
	protected.Get("/dashboard", dashboardController.GetDashboard)
	protected.Get("/events", dashboardController.GetEvents)

	// Reviews
	protected.Post("/reviews", reviewController.CreateReview)

	// Notifications
	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationController.GetNotifications)
	notifications.Get("/unread-count", notificationController.GetUnreadCount)
	notifications.Get("/:id", notificationController.GetNotification)
	notifications.Patch("/:id/read", notificationController.MarkAsRead)
	notifications.Patch("/read-all", notificationController.MarkAllAsRead)
	notifications.Delete("/:id", notificationController.DeleteNotification)

	// Admin routes
	admin := protected.Group("/admin", middleware.RequireAdmin())

	admin.Get("/payments", paymentController.GetAllPayments)
	admin.Patch("/payments/:id/approve", paymentController.ApprovePayment)
	admin.Patch("/payments/:id/reject", paymentController.RejectPayment)
	admin.Get("/payments/export", paymentController.ExportPayments)

	admin.Get("/users", userController.GetUsers)
	admin.Get("/users/:id", userController.GetUser)
	admin.Patch("/users/:id/suspend", userController.SuspendUser)
	admin.Patch("/users/:id/unsuspend", userController.UnsuspendUser)
	admin.Get("/stats", userController.GetAdminStats)

	admin.Post("/notifications", notificationController.CreateNotification)

	admin.Get("/logs", logController.GetLogs)
	admin.Get("/logs/stats", logController.GetLogStats)
	admin.Get("/logs/export", logController.ExportLogs)
	admin.Get("/logs/archives", logController.GetLogArchives)
	admin.Get("/logs/archives/:id/download", logController.DownloadLogArchive)
	admin.Get("/logs/:id", logController.GetLog)
	admin.Post("/logs/flush", logController.FlushCachedLogs)
	admin.Delete("/logs", logController.DeleteOldLogs)

	admin.Get("/ws/stats", wsController.GetWebSocketStats)

	// WebSocket connection endpoint - use websocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", wsController.WebSocketHandler())
}
