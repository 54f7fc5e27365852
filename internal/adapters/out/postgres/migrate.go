package postgres

import (
	"fmt"

	"washroute/internal/adapters/out/postgres/orderrepo"
	"washroute/internal/adapters/out/postgres/staterepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres and migrates the order and state tables.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables used by the repositories.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.SubtaskDTO{}, &staterepo.StateDTO{}); err != nil {
		return fmt.Errorf("migrate postgres schema: %w", err)
	}
	return nil
}
