package repositories

import (
	"errors"
	"time"

	"dienstmarkt_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
)

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	FindByID(db *gorm.DB, id string) (*models.Profile, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Profile, error)
	Update(db *gorm.DB, profile *models.Profile) error
	UpdateImageURL(db *gorm.DB, id, imageURL string) error
	Delete(db *gorm.DB, id string) error
	DeleteWithDependents(db *gorm.DB, id string) error
	FindAll(db *gorm.DB) ([]models.Profile, error)
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.Profile) error {
	var existing models.Profile
	if err := db.Where("user_id = ?", profile.UserID).First(&existing).Error; err == nil {
		return ErrProfileAlreadyExists
	}
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	err := db.First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) Update(db *gorm.DB, profile *models.Profile) error {
	result := db.Model(profile).Updates(map[string]interface{}{
		"first_name":      profile.FirstName,
		"last_name":       profile.LastName,
		"description":     profile.Description,
		"services":        profile.Services,
		"custom_services": profile.CustomServices,
		"regions":         profile.Regions,
		"availability":    profile.Availability,
		"phone":           profile.Phone,
		"contact_email":   profile.ContactEmail,
		"social_media":    profile.SocialMedia,
		"available":       profile.Available,
		"updated_at":      time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) UpdateImageURL(db *gorm.DB, id, imageURL string) error {
	result := db.Model(&models.Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"image_url":  imageURL,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Profile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// DeleteWithDependents removes a profile together with its reviews and
// favorites in a single transaction, so a failure between steps cannot
// leave orphaned rows.
func (r *ProfileRepositoryImpl) DeleteWithDependents(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Profile{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProfileNotFound
		}
		return nil
	})
}

// FindAll loads the complete candidate set for search in insertion order.
// Filtering happens in the service layer over this slice; acceptable while
// the table stays small.
func (r *ProfileRepositoryImpl) FindAll(db *gorm.DB) ([]models.Profile, error) {
	var profiles []models.Profile
	err := db.Order("created_at ASC").Find(&profiles).Error
	return profiles, err
}
