package database

import (
	"fmt"
	"log"
	"strings"

	"office-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres connection and runs migrations.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(normalizeDSN(dsn)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database connected and migrated")
	return db, nil
}

// Migrate creates/updates the schema for every model. On postgres it also
// installs the exclusion constraint that enforces the room non-overlap
// invariant at the database level, closing the check-then-insert race.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Employee{},
		&models.Project{},
		&models.Participation{},
		&models.Room{},
		&models.Resource{},
		&models.Reservation{},
		&models.Incident{},
		&models.ResetRequest{},
		&models.ActionLog{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		if err := installReservationExclusion(db); err != nil {
			return err
		}
	}

	return nil
}

func installReservationExclusion(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return fmt.Errorf("btree_gist extension: %w", err)
	}

	err := db.Exec(`
		ALTER TABLE reservations
		ADD CONSTRAINT reservations_no_overlap
		EXCLUDE USING gist (
			room_id WITH =,
			tsrange(start_time, end_time, '[)') WITH &&
		)
		WHERE (status <> 'ANNULEE')
	`).Error
	if err != nil {
		// Re-running migrations on an existing schema hits "already exists".
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return fmt.Errorf("reservation exclusion constraint: %w", err)
	}
	return nil
}

func normalizeDSN(raw string) string {
	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"'`))
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return s
	}
	if s != "" && !strings.Contains(lower, "sslmode=") {
		s += " sslmode=disable"
	}
	return s
}
