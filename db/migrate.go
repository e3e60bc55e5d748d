package db

import (
	"github.com/clinicflow/clinic-api/logger"
	"github.com/clinicflow/clinic-api/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Department{},
		&models.Procedure{},
		&models.Doctor{},
		&models.Patient{},
		&models.Appointment{},
	)
	if err != nil {
		logger.L.Fatalw("Failed to run migrations", "error", err)
	}

	logger.L.Info("✅ Migrations applied successfully!")
}
