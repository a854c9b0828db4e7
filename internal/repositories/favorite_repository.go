package repositories

import (
	"errors"

	"dienstmarkt_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("favorite already exists")
)

type FavoriteRepository interface {
	Create(db *gorm.DB, favorite *models.Favorite) error
	Delete(db *gorm.DB, userID, profileID string) error
	FindByUser(db *gorm.DB, userID string) ([]models.Favorite, error)
	Exists(db *gorm.DB, userID, profileID string) (bool, error)
}

type FavoriteRepositoryImpl struct{}

func NewFavoriteRepository() FavoriteRepository {
	return &FavoriteRepositoryImpl{}
}

func (r *FavoriteRepositoryImpl) Create(db *gorm.DB, favorite *models.Favorite) error {
	exists, err := r.Exists(db, favorite.UserID, favorite.ProfileID)
	if err != nil {
		return err
	}
	if exists {
		return ErrFavoriteExists
	}
	return db.Create(favorite).Error
}

func (r *FavoriteRepositoryImpl) Delete(db *gorm.DB, userID, profileID string) error {
	result := db.Where("user_id = ? AND profile_id = ?", userID, profileID).Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := db.Where("user_id = ?", userID).
		Preload("Profile").
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

func (r *FavoriteRepositoryImpl) Exists(db *gorm.DB, userID, profileID string) (bool, error) {
	var count int64
	err := db.Model(&models.Favorite{}).
		Where("user_id = ? AND profile_id = ?", userID, profileID).
		Count(&count).Error
	return count > 0, err
}
