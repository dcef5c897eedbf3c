// database/bootstrap.go
package database

import (
	"fmt"
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agrocrm/entities"
)

// Models is every table the service owns, in migration order.
var Models = []any{
	&entities.Lead{},
	&entities.Appointment{},
	&entities.SprayCalculation{},
	&entities.DroneFlight{},
	&entities.Activity{},
}

// Open connects to the sqlite file at path and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// a single writer avoids SQLITE_BUSY under concurrent handlers
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec(`PRAGMA foreign_keys=ON`).Error; err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if err := migrateAppointmentTimes(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

func OpenSQLite(path string) *gorm.DB {
	db, err := Open(path)
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	log.Printf("[db] sqlite ready at %s", path)
	return db
}

// migrateAppointmentTimes pads legacy "HH:MM" rows to the "HH:MM:SS" form the
// appointment service stores and compares on.
func migrateAppointmentTimes(db *gorm.DB) error {
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='appointments'`).Scan(&tbl).Error; err != nil {
		return fmt.Errorf("check table exist: %w", err)
	}
	if tbl == "" {
		// fresh DB, nothing to do
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`UPDATE appointments SET time = time || ':00' WHERE length(time) = 5`).Error; err != nil {
			return err
		}
		return tx.Exec(`UPDATE appointments SET end_time = end_time || ':00' WHERE end_time IS NOT NULL AND length(end_time) = 5`).Error
	})
}
