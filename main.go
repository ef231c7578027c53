// main.go - HackSphere API server
package main

import (
	"log"
	"os"
	"time"

	"hacksphere/database"
	"hacksphere/handlers"
	"hacksphere/handlers/admin"
	"hacksphere/middleware"
	"hacksphere/models"
	"hacksphere/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	database.InitDB()
	defer database.CloseDB()

	appStore := store.NewGorm(database.GetDB())
	handlers.Init(appStore)
	admin.Init(appStore)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.RateLimit())

	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimit())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Get("/me", middleware.Protect, handlers.Me)

	// Announcement routes
	announcementGroup := api.Group("/announcements")
	announcementGroup.Get("/", middleware.Protect, handlers.ListAnnouncements)
	announcementGroup.Get("/admin", middleware.Protect, middleware.Authorize(models.RoleAdmin, models.RoleSpoc), handlers.AdminListAnnouncements)
	announcementGroup.Post("/", middleware.Protect, middleware.Authorize(models.RoleAdmin, models.RoleSpoc), handlers.CreateAnnouncement)
	announcementGroup.Put("/read-all", middleware.Protect, handlers.MarkAllAnnouncementsRead)
	announcementGroup.Put("/:id/read", middleware.Protect, handlers.MarkAnnouncementRead)
	announcementGroup.Put("/:id", middleware.Protect, middleware.Authorize(models.RoleAdmin, models.RoleSpoc), handlers.UpdateAnnouncement)
	announcementGroup.Delete("/:id", middleware.Protect, middleware.Authorize(models.RoleAdmin, models.RoleSpoc), handlers.DeleteAnnouncement)

	// Notification routes
	notificationGroup := api.Group("/notifications")
	notificationGroup.Use(middleware.Protect)
	notificationGroup.Get("/", handlers.ListNotifications)
	notificationGroup.Get("/unread-count", handlers.UnreadNotificationCount)
	notificationGroup.Post("/", middleware.Authorize(models.RoleAdmin, models.RoleSpoc), handlers.CreateNotification)
	notificationGroup.Put("/read-all", handlers.MarkAllNotificationsRead)
	notificationGroup.Put("/:id/read", handlers.MarkNotificationRead)
	notificationGroup.Delete("/:id", middleware.Authorize(models.RoleAdmin, models.RoleSpoc), handlers.DeleteNotification)

	// Team routes; registration stays public for the signup form
	teamGroup := api.Group("/teams")
	teamGroup.Post("/register", handlers.RegisterTeam)
	teamGroup.Get("/", middleware.Protect, handlers.ListTeams)
	teamGroup.Get("/:id", middleware.Protect, handlers.GetTeam)
	teamGroup.Put("/:id/approve", middleware.Protect, middleware.Authorize(models.RoleAdmin, models.RoleSpoc), handlers.ApproveTeam)
	teamGroup.Put("/:id/reject", middleware.Protect, middleware.Authorize(models.RoleAdmin, models.RoleSpoc), handlers.RejectTeam)
	teamGroup.Put("/:id", middleware.Protect, handlers.UpdateTeam)

	// Invite routes (leader checks live in the service)
	inviteGroup := api.Group("/invites")
	inviteGroup.Use(middleware.Protect)
	inviteGroup.Post("/send", handlers.SendInvite)
	inviteGroup.Get("/my-invites", handlers.MyInvites)
	inviteGroup.Put("/:id/accept", handlers.AcceptInvite)
	inviteGroup.Put("/:id/decline", handlers.RejectInvite)

	// Join request routes
	joinGroup := api.Group("/join-requests")
	joinGroup.Use(middleware.Protect)
	joinGroup.Post("/send", handlers.SendJoinRequest)
	joinGroup.Get("/pending", handlers.PendingJoinRequests)
	joinGroup.Put("/:id/accept", handlers.AcceptJoinRequest)
	joinGroup.Put("/:id/reject", handlers.RejectJoinRequest)

	// Problem catalog routes
	problemGroup := api.Group("/problems")
	problemGroup.Get("/", handlers.ListProblems)
	problemGroup.Post("/", middleware.Protect, middleware.Authorize(models.RoleAdmin), handlers.CreateProblem)
	problemGroup.Get("/:id", handlers.GetProblem)
	problemGroup.Put("/:id", middleware.Protect, middleware.Authorize(models.RoleAdmin), handlers.UpdateProblem)

	// Problem selection routes
	selectionGroup := api.Group("/problem-selection")
	selectionGroup.Get("/status", handlers.SelectionStatus)
	selectionGroup.Get("/my-selection", middleware.Protect, handlers.MySelection)
	selectionGroup.Put("/select", middleware.Protect, handlers.SelectProblem)
	selectionGroup.Post("/toggle-window", middleware.Protect, middleware.Authorize(models.RoleAdmin), handlers.ToggleSelectionWindow)
	selectionGroup.Get("/all", middleware.Protect, middleware.Authorize(models.RoleAdmin), handlers.AllSelections)

	// Rubric routes
	rubricGroup := api.Group("/rubrics")
	rubricGroup.Use(middleware.Protect)
	rubricGroup.Get("/", handlers.ListRubrics)
	rubricGroup.Get("/validate-weights", middleware.Authorize(models.RoleAdmin), handlers.ValidateRubricWeights)
	rubricGroup.Post("/", middleware.Authorize(models.RoleAdmin), handlers.CreateRubric)
	rubricGroup.Put("/reorder", middleware.Authorize(models.RoleAdmin), handlers.ReorderRubrics)
	rubricGroup.Put("/:id", middleware.Authorize(models.RoleAdmin), handlers.UpdateRubric)
	rubricGroup.Delete("/:id", middleware.Authorize(models.RoleAdmin), handlers.DeleteRubric)

	// Certificate routes
	certGroup := api.Group("/certificates")
	certGroup.Get("/config", handlers.GetCertificateConfig)
	certGroup.Put("/config", middleware.Protect, middleware.Authorize(models.RoleAdmin), handlers.UpdateCertificateConfig)
	certGroup.Post("/generate", middleware.Protect, middleware.Authorize(models.RoleAdmin), handlers.GenerateCertificates)
	certGroup.Get("/my", middleware.Protect, handlers.MyCertificates)
	certGroup.Get("/:id/download", middleware.Protect, handlers.DownloadCertificate)

	// Timeline and countdown are public reads
	timelineGroup := api.Group("/timeline")
	timelineGroup.Get("/", handlers.ListTimeline)
	timelineGroup.Post("/", middleware.Protect, middleware.Authorize(models.RoleAdmin), handlers.CreateTimelineEvent)
	timelineGroup.Put("/:id", middleware.Protect, middleware.Authorize(models.RoleAdmin), handlers.UpdateTimelineEvent)
	timelineGroup.Delete("/:id", middleware.Protect, middleware.Authorize(models.RoleAdmin), handlers.DeleteTimelineEvent)

	countdownGroup := api.Group("/countdown")
	countdownGroup.Get("/", handlers.GetCountdown)
	countdownGroup.Put("/disable", middleware.Protect, middleware.Authorize(models.RoleAdmin), handlers.DisableCountdown)
	countdownGroup.Put("/", middleware.Protect, middleware.Authorize(models.RoleAdmin), handlers.SetCountdown)

	// Mentor routes
	mentorGroup := api.Group("/mentors")
	mentorGroup.Use(middleware.Protect)
	mentorGroup.Get("/my-teams", middleware.Authorize(models.RoleMentor), handlers.MyMentorTeams)
	mentorGroup.Get("/stats", middleware.Authorize(models.RoleMentor), handlers.MentorStats)
	mentorGroup.Get("/team/:id", middleware.Authorize(models.RoleMentor, models.RoleAdmin), handlers.MentorTeam)
	mentorGroup.Get("/", middleware.Authorize(models.RoleAdmin), handlers.ListMentors)
	mentorGroup.Post("/", middleware.Authorize(models.RoleAdmin), handlers.CreateMentor)
	mentorGroup.Put("/assign", middleware.Authorize(models.RoleAdmin), handlers.AssignMentorTeams)
	mentorGroup.Put("/unassign", middleware.Authorize(models.RoleAdmin), handlers.UnassignMentorTeams)
	mentorGroup.Put("/:id", middleware.Authorize(models.RoleAdmin), handlers.UpdateMentor)
	mentorGroup.Delete("/:id", middleware.Authorize(models.RoleAdmin), handlers.DeleteMentor)

	// User routes
	userGroup := api.Group("/users")
	userGroup.Use(middleware.Protect)
	userGroup.Get("/search-available", handlers.SearchAvailableStudents)
	userGroup.Get("/", middleware.Authorize(models.RoleAdmin, models.RoleSpoc), handlers.ListUsers)
	userGroup.Get("/:id", middleware.Authorize(models.RoleAdmin, models.RoleSpoc), handlers.GetUser)
	userGroup.Delete("/:id", middleware.Authorize(models.RoleAdmin), handlers.DeleteUser)

	// Password reset routes; filing one is public
	resetGroup := api.Group("/password-resets")
	resetGroup.Post("/", handlers.RequestPasswordReset)
	resetGroup.Get("/", middleware.Protect, middleware.Authorize(models.RoleAdmin), admin.ListPasswordResets)
	resetGroup.Put("/:id/approve", middleware.Protect, middleware.Authorize(models.RoleAdmin), admin.ApprovePasswordReset)
	resetGroup.Put("/:id/reject", middleware.Protect, middleware.Authorize(models.RoleAdmin), admin.RejectPasswordReset)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.Protect)
	adminGroup.Get("/stats", middleware.Authorize(models.RoleAdmin, models.RoleSpoc), admin.Stats)
	adminGroup.Get("/institutes", middleware.Authorize(models.RoleAdmin), admin.ListInstitutes)
	adminGroup.Post("/institutes", middleware.Authorize(models.RoleAdmin), admin.CreateInstitute)
	adminGroup.Put("/institutes/:code", middleware.Authorize(models.RoleAdmin), admin.UpdateInstitute)
	adminGroup.Delete("/institutes/:code", middleware.Authorize(models.RoleAdmin), admin.DeleteInstitute)

	// Live announcement feed
	app.Get("/ws/status", handlers.FeedStatus)
	app.Use("/ws/feed", middleware.OptionalAuth, handlers.FeedUpgrade)
	app.Get("/ws/feed", websocket.New(handlers.FeedSocket))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HackSphere API starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🌐 Live feed available at ws://localhost:%s/ws/feed", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
