package config

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/swearleehlairlookus-boop/erp/internal/adapters/persistence/models"
	"github.com/swearleehlairlookus-boop/erp/internal/pkg/logger"
)

// ConnectDatabase establishes the database connection and runs migrations.
// The returned handle is the only reference to the pool; callers inject it
// into whatever needs it.
func ConnectDatabase(cfg *DatabaseConfig) (*gorm.DB, error) {
	log := logger.Get()

	gormLogLevel := gormlogger.Silent
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("database connected")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info().Msg("database migration completed")

	return db, nil
}

// autoMigrate runs database migrations
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity and audit
		&models.UserRole{},
		&models.User{},
		&models.AuditLog{},

		// Patient administration
		&models.Patient{},

		// Clinical workflow
		&models.Visit{},
		&models.VitalSigns{},
		&models.ClinicalNote{},
		&models.Prescription{},
		&models.Referral{},

		// Inventory
		&models.AssetCategory{},
		&models.Asset{},
		&models.MaintenanceRecord{},
		&models.ConsumableCategory{},
		&models.Consumable{},
		&models.Supplier{},
		&models.StockBatch{},
		&models.StockAdjustment{},
		&models.InventoryAlert{},

		// Scheduling
		&models.Route{},
		&models.Location{},
		&models.Appointment{},
	)
}

// HealthCheck verifies database connectivity
func HealthCheck(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
