package db

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/marcou-app/marcou/internal/config"
	"github.com/marcou-app/marcou/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Service{},
		&models.OperatingHours{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	migrateExclusionConstraint(db)

	return db
}

// A constraint de exclusão é a autoridade final contra double-booking:
// dois agendamentos não cancelados do mesmo (empresa, profissional) nunca
// podem ter intervalos que se intersectam, mesmo sob concorrência.
func migrateExclusionConstraint(db *gorm.DB) {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Warn().Err(err).Msg("btree_gist extension unavailable")
		return
	}

	err := db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    company_id WITH =,
                    staff_id WITH =,
                    tsrange(start_time, end_time) WITH &&
                )
                WHERE (status <> 'cancelled');
            END IF;
        END
        $$;
    `).Error
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create exclusion constraint")
	}
}
