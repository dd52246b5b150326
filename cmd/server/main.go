package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/http/middleware"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/http/routes"
	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/repositories"
	"github.com/swearleehlairlookus-boop/erp/internal/config"
	"github.com/swearleehlairlookus-boop/erp/internal/core/services"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/logger"

	_ "github.com/swearleehlairlookus-boop/erp/docs" // Swagger docs
)

// @title POLMED Mobile Clinic API
// @version 1.0
// @description Administration backend for POLMED mobile health clinics

// @contact.name API Support
// @contact.email support@polmed.co.za

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	// Connect to database, migrations run inside
	db, err := config.ConnectDatabase(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Seed roles and category reference data
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Warn().Err(err).Msg("failed to seed reference data")
	}

	// Daily inventory alert scan
	alertCron := services.NewAlertCronService(repositories.NewInventoryRepository(db), cfg.Cron.AlertScanSpec)
	if err := alertCron.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule inventory alert scan")
	}
	defer alertCron.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	log.Info().
		Str("port", cfg.App.Port).
		Str("env", cfg.App.Env).
		Msg("server starting")
	if err := app.Listen(cfg.App.Host + ":" + cfg.App.Port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// gracefulShutdown waits for SIGINT/SIGTERM and drains in-flight requests
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log := logger.Get()
	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped")
}
