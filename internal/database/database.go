package database

import (
	"context"
	"fmt"

	"hospital-queue/internal/config"
	"hospital-queue/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB holds the database connection.
var DB *gorm.DB

// QueueSystemModels are the tables of the queue system.
var QueueSystemModels = []any{
	&models.Clinic{},
	&models.User{},
	&models.Doctor{},
	&models.Queue{},
	&models.VisitHistory{},
}

// HospitalRecordModels are the tables of the hospital records schema, in
// foreign-key dependency order.
var HospitalRecordModels = []any{
	&models.HospitalPatient{},
	&models.HospitalDoctor{},
	&models.Appointment{},
	&models.Treatment{},
	&models.Billing{},
	&models.Record{},
}

// InitDB initializes the database connection and sizes the pool.
func InitDB(cfg *config.Config, logger zerolog.Logger) error {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         NewGormLogger(logger),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	DB = db
	return nil
}

// Migrate creates or updates the tables of both schemas.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(QueueSystemModels...); err != nil {
		return fmt.Errorf("migrate queue system: %w", err)
	}
	if err := db.AutoMigrate(HospitalRecordModels...); err != nil {
		return fmt.Errorf("migrate hospital records: %w", err)
	}
	return nil
}

// Ping checks that the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
