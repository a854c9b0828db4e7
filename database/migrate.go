package database

import (
	"gorm.io/gorm"

	"dienstmarkt_backend/internal/models"
)

// Migrate applies the schema via GORM AutoMigrate. The uuid-ossp
// extension backs the uuid_generate_v4 column default.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Review{},
		&models.JobListing{},
		&models.Favorite{},
		&models.BannedEmail{},
		&models.Upload{},
	)
}
