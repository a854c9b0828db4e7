package repositories

import (
	"errors"

	"dienstmarkt_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	FindByProfile(db *gorm.DB, profileID string) ([]models.Review, error)
	FindByProfileWithPagination(db *gorm.DB, profileID string, page, pageSize int) ([]models.Review, int64, error)
	FindByReviewer(db *gorm.DB, reviewerID string) ([]models.Review, error)
	Delete(db *gorm.DB, id string) error
	AverageRating(db *gorm.DB, profileID string) (float64, int64, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	// No uniqueness per (reviewer, profile): a user may leave several
	// reviews for the same provider.
	return db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	err := db.First(&review, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByProfile(db *gorm.DB, profileID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("profile_id = ?", profileID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) FindByProfileWithPagination(db *gorm.DB, profileID string, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	query := db.Model(&models.Review{}).Where("profile_id = ?", profileID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepositoryImpl) FindByReviewer(db *gorm.DB, reviewerID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("reviewer_id = ?", reviewerID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) AverageRating(db *gorm.DB, profileID string) (float64, int64, error) {
	var total int64
	if err := db.Model(&models.Review{}).Where("profile_id = ?", profileID).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if total == 0 {
		return 0, 0, nil
	}

	var avg float64
	err := db.Model(&models.Review{}).Where("profile_id = ?", profileID).
		Select("AVG(rating)").Scan(&avg).Error
	return avg, total, err
}
