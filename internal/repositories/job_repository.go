package repositories

import (
	"errors"

	"dienstmarkt_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job listing not found")

type JobFilter struct {
	Category string `form:"category"`
	Location string `form:"location"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.JobListing) error
	FindByID(db *gorm.DB, id string) (*models.JobListing, error)
	FindWithFilter(db *gorm.DB, filter JobFilter) ([]models.JobListing, int64, error)
	FindByUser(db *gorm.DB, userID string) ([]models.JobListing, error)
	Update(db *gorm.DB, job *models.JobListing) error
	Delete(db *gorm.DB, id string) error
	DeleteByUser(db *gorm.DB, userID string) error
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.JobListing) error {
	return db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.JobListing, error) {
	var job models.JobListing
	err := db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindWithFilter(db *gorm.DB, filter JobFilter) ([]models.JobListing, int64, error) {
	var jobs []models.JobListing
	query := db.Model(&models.JobListing{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	} else {
		query = query.Where("status = ?", models.JobStatusActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Limit(filter.PageSize).Offset((filter.Page - 1) * filter.PageSize).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.JobListing, error) {
	var jobs []models.JobListing
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.JobListing) error {
	result := db.Model(job).Updates(map[string]interface{}{
		"title":        job.Title,
		"description":  job.Description,
		"location":     job.Location,
		"date":         job.Date,
		"category":     job.Category,
		"contact_info": job.ContactInfo,
		"images":       job.Images,
		"status":       job.Status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// Delete removes the row for good. Job listings are never soft-deleted.
func (r *JobRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.JobListing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) DeleteByUser(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.JobListing{}).Error
}
