package repositories

import (
	"errors"
	"strings"

	"dienstmarkt_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBannedEmailNotFound = errors.New("banned email entry not found")

type BannedEmailRepository interface {
	Create(db *gorm.DB, entry *models.BannedEmail) error
	DeleteByEmail(db *gorm.DB, email string) error
	IsBanned(db *gorm.DB, email string) (bool, error)
	FindAll(db *gorm.DB) ([]models.BannedEmail, error)
}

type BannedEmailRepositoryImpl struct{}

func NewBannedEmailRepository() BannedEmailRepository {
	return &BannedEmailRepositoryImpl{}
}

func (r *BannedEmailRepositoryImpl) Create(db *gorm.DB, entry *models.BannedEmail) error {
	entry.Email = strings.ToLower(entry.Email)

	// Re-banning an already banned email is a no-op, not an error.
	var existing models.BannedEmail
	if err := db.Where("email = ?", entry.Email).First(&existing).Error; err == nil {
		return nil
	}
	return db.Create(entry).Error
}

func (r *BannedEmailRepositoryImpl) DeleteByEmail(db *gorm.DB, email string) error {
	result := db.Where("email = ?", strings.ToLower(email)).Delete(&models.BannedEmail{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBannedEmailNotFound
	}
	return nil
}

func (r *BannedEmailRepositoryImpl) IsBanned(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.BannedEmail{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *BannedEmailRepositoryImpl) FindAll(db *gorm.DB) ([]models.BannedEmail, error) {
	var entries []models.BannedEmail
	err := db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}
