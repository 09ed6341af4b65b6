package infra

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"wanderwise/internal/config"
	"wanderwise/internal/models/db_models"
)

func InitPostgresql(cfg config.StorageConfig, logger *zap.Logger) (*gorm.DB, error) {
	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	sqlDB, err := connectionPool.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if cfg.AutoMigrate {
		if err := Migrate(connectionPool, cfg.Driver); err != nil {
			return nil, err
		}
		logger.Info("database schema migrated")
	}

	return connectionPool, nil
}

// Migrate creates or updates the tables. Saved plans only get a table when
// postgres is also their backend.
func Migrate(db *gorm.DB, driver string) error {
	models := []any{&db_models.Account{}, &db_models.ContactMessage{}}
	if driver == "postgres" {
		models = append(models, &db_models.SavedPlan{})
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("error closing database connection", zap.Error(err))
		return err
	}
	logger.Info("PostgreSQL database connection closed")
	return nil
}

func PingPostgresql(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
