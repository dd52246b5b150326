package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/http/handlers"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/http/middleware"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/config"
	"github.com/swearleehlairlookus-boop/erp/internal/core/services"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	auditRepo := repositories.NewAuditRepository(db)
	patientRepo := repositories.NewPatientRepository(db)
	clinicalRepo := repositories.NewClinicalRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	scheduleRepo := repositories.NewScheduleRepository(db)

	// Initialize services
	auditService := services.NewAuditService(auditRepo)
	authService := services.NewAuthService(userRepo, auditService, cfg)
	userService := services.NewUserService(userRepo, auditService)
	patientService := services.NewPatientService(patientRepo, auditService)
	clinicalService := services.NewClinicalService(clinicalRepo, patientRepo, auditService)
	inventoryService := services.NewInventoryService(inventoryRepo, auditService)
	scheduleService := services.NewScheduleService(scheduleRepo, auditService)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, auditService)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	patientHandler := handlers.NewPatientHandler(patientService)
	clinicalHandler := handlers.NewClinicalHandler(clinicalService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, auditService)

	// Health check routes
	app.Get("/health", healthHandler.Health)
	app.Get("/health/ready", healthHandler.Ready)
	app.Get("/health/detailed",
		middleware.RequireAuth(cfg),
		middleware.RequireRole(models.RoleAdministrator),
		healthHandler.Detailed)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Appointment routes mix the public booking portal with staff
	// endpoints, so auth is attached per route
	apptRoutes := apiV1.Group("/appointments")
	setupAppointmentRoutes(apptRoutes, scheduleHandler, cfg)

	// Everything below requires a valid token
	apiV1.Use(middleware.RequireAuth(cfg))

	// Profile routes, available to any authenticated user
	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Get("/", authHandler.Me)
	profileRoutes.Put("/", userHandler.UpdateProfile)
	profileRoutes.Put("/password", userHandler.ChangePassword)

	// User management routes
	userRoutes := apiV1.Group("/users")
	setupUserRoutes(userRoutes, userHandler)

	// Patient routes
	patientRoutes := apiV1.Group("/patients")
	setupPatientRoutes(patientRoutes, patientHandler)

	// Clinical routes
	clinicalRoutes := apiV1.Group("/clinical")
	setupClinicalRoutes(clinicalRoutes, clinicalHandler)

	// Inventory routes
	inventoryRoutes := apiV1.Group("/inventory")
	setupInventoryRoutes(inventoryRoutes, inventoryHandler)

	// Route planning routes
	routePlanRoutes := apiV1.Group("/routes")
	setupRoutePlanRoutes(routePlanRoutes, scheduleHandler)

	// Dashboard routes (Administrator only)
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.RequireRole(models.RoleAdministrator))
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public, rate limited against brute force
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)

	// Protected
	router.Post("/logout", middleware.RequireAuth(cfg), handler.Logout)
	router.Get("/verify", middleware.RequireAuth(cfg), handler.Verify)
	router.Get("/me", middleware.RequireAuth(cfg), handler.Me)
}

// setupAppointmentRoutes configures booking routes. The portal routes are
// public behind the booking limiter; the staff routes carry their own auth
// and must register before the :reference wildcards.
func setupAppointmentRoutes(router fiber.Router, handler *handlers.ScheduleHandler, cfg *config.Config) {
	staffRoles := middleware.RequireRole(models.RoleAdministrator, models.RoleClerk, models.RoleNurse)

	router.Get("/admin", middleware.RequireAuth(cfg), staffRoles, handler.ListAppointments)
	router.Get("/stats/today", middleware.RequireAuth(cfg), staffRoles, handler.TodayStats)
	router.Put("/:reference/status", middleware.RequireAuth(cfg), staffRoles, handler.UpdateAppointmentStatus)

	router.Get("/locations/:id/availability", handler.GetLocationAvailability)
	router.Post("/", middleware.BookingRateLimiter(), handler.BookAppointment)
	router.Get("/:reference", handler.GetAppointment)
	router.Delete("/:reference", middleware.BookingRateLimiter(), handler.CancelAppointment)
}

// setupUserRoutes configures user management routes (administrator only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Use(middleware.RequireRole(models.RoleAdministrator))
	router.Get("/roles", handler.ListRoles)
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Deactivate)
}

// setupPatientRoutes configures patient registry routes
func setupPatientRoutes(router fiber.Router, handler *handlers.PatientHandler) {
	readRoles := middleware.RequireRole(
		models.RoleAdministrator, models.RoleDoctor, models.RoleNurse,
		models.RoleClerk, models.RoleSocialWorker, models.RoleViewer,
	)
	writeRoles := middleware.RequireRole(
		models.RoleAdministrator, models.RoleDoctor, models.RoleNurse, models.RoleClerk,
	)

	router.Get("/", readRoles, handler.List)
	router.Get("/:id", readRoles, handler.Get)
	router.Post("/", writeRoles, handler.Create)
	router.Put("/:id", writeRoles, handler.Update)
	router.Delete("/:id", middleware.RequireRole(models.RoleAdministrator, models.RoleClerk), handler.Deactivate)
}

// setupClinicalRoutes configures visit and referral routes
func setupClinicalRoutes(router fiber.Router, handler *handlers.ClinicalHandler) {
	readRoles := middleware.RequireRole(
		models.RoleAdministrator, models.RoleDoctor, models.RoleNurse,
		models.RoleSocialWorker, models.RoleViewer,
	)
	careRoles := middleware.RequireRole(
		models.RoleAdministrator, models.RoleDoctor, models.RoleNurse,
	)
	// Social workers run counseling sessions and referrals
	referralRoles := middleware.RequireRole(
		models.RoleAdministrator, models.RoleDoctor, models.RoleNurse, models.RoleSocialWorker,
	)

	router.Get("/visits", readRoles, handler.ListVisits)
	router.Get("/visits/:id", readRoles, handler.GetVisit)
	router.Post("/visits", careRoles, handler.CreateVisit)
	router.Put("/visits/:id/update-stage", referralRoles, handler.UpdateStage)
	router.Post("/visits/:id/vitals", careRoles, handler.RecordVitals)
	router.Post("/visits/:id/notes", referralRoles, handler.AddNote)
	router.Post("/visits/:id/prescriptions", middleware.RequireRole(models.RoleAdministrator, models.RoleDoctor), handler.AddPrescription)

	router.Get("/referrals", readRoles, handler.ListReferrals)
	router.Post("/referrals", referralRoles, handler.CreateReferral)
	router.Put("/referrals/:id/status", referralRoles, handler.UpdateReferralStatus)
}

// setupInventoryRoutes configures asset and stock routes
func setupInventoryRoutes(router fiber.Router, handler *handlers.InventoryHandler) {
	readRoles := middleware.RequireRole(
		models.RoleAdministrator, models.RoleInventoryManager, models.RoleNurse,
		models.RoleFinance, models.RoleViewer,
	)
	writeRoles := middleware.RequireRole(
		models.RoleAdministrator, models.RoleInventoryManager, models.RoleNurse,
	)

	router.Get("/assets", readRoles, handler.ListAssets)
	router.Get("/asset-categories", readRoles, handler.ListAssetCategories)
	router.Get("/assets/:id", readRoles, handler.GetAsset)
	router.Post("/assets", writeRoles, handler.CreateAsset)
	router.Put("/assets/:id", writeRoles, handler.UpdateAsset)
	router.Get("/assets/:id/maintenance", readRoles, handler.ListMaintenance)
	router.Post("/assets/:id/maintenance", writeRoles, handler.AddMaintenance)

	router.Get("/consumables", readRoles, handler.ListConsumables)
	router.Get("/consumable-categories", readRoles, handler.ListConsumableCategories)
	router.Get("/consumables/:id", readRoles, handler.GetConsumable)
	router.Get("/consumables/:id/batches", readRoles, handler.ListBatches)
	router.Post("/consumables", writeRoles, handler.CreateConsumable)
	router.Delete("/consumables/:id", middleware.RequireRole(models.RoleAdministrator, models.RoleInventoryManager), handler.DeactivateConsumable)

	router.Get("/suppliers", readRoles, handler.ListSuppliers)
	router.Post("/suppliers", writeRoles, handler.CreateSupplier)

	router.Post("/stock/receive", writeRoles, handler.ReceiveStock)
	router.Put("/stock/:id/adjust", writeRoles, handler.AdjustStock)

	router.Get("/alerts", readRoles, handler.ListAlerts)
	router.Get("/alerts/warranty", readRoles, handler.WarrantyAlerts)
	router.Put("/alerts/:id/acknowledge", writeRoles, handler.AcknowledgeAlert)
}

// setupRoutePlanRoutes configures clinic route planning
func setupRoutePlanRoutes(router fiber.Router, handler *handlers.ScheduleHandler) {
	plannerRoles := middleware.RequireRole(models.RoleAdministrator, models.RoleClerk)

	// Route listings are visible to all staff
	router.Get("/", handler.ListRoutes)
	router.Get("/:id", handler.GetRoute)

	router.Post("/", plannerRoles, handler.CreateRoute)
	router.Delete("/:id", plannerRoles, handler.DeactivateRoute)
	router.Post("/:id/locations", plannerRoles, handler.AddLocation)
}

// setupDashboardRoutes configures dashboard and audit trail routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/stats", handler.Stats)
	router.Get("/audit-logs", handler.AuditLogs)
}
