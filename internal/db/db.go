package db

import (
	"log"
	"time"

	"github.com/StudioAgenda/salon-scheduler/internal/config"
	"github.com/StudioAgenda/salon-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
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
		&models.Service{},
		&models.Professional{},
		&models.User{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Guarda final contra reserva dupla: índice único parcial por
	// (profissional, início), ignorando canceladas
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_appointment_slot
        ON appointments (professional_id, start_time)
        WHERE status <> 'cancelled'
    `)

	return db
}
