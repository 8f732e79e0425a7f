package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/SmileHubSystems/dental-scheduler/internal/config"
	"github.com/SmileHubSystems/dental-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Clinic{},
		&models.User{},
		&models.Procedure{},
		&models.WorkingHours{},
		&models.Patient{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// AutoMigrate cannot express an exclusion constraint; the in-memory
	// conflict check is advisory and this is the real serialization point
	// for two racing bookings on the same dentist.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            dentist_id WITH =,
            tstzrange(scheduled_time, end_time) WITH &&
        )
        WHERE (status IN ('PENDING', 'CONFIRMED'))
    `)

	db.Exec(`
        UPDATE clinics
        SET timezone = 'Asia/Ho_Chi_Minh'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
