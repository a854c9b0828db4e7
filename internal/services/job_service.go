package services

import (
	"errors"

	"gorm.io/gorm"

	"dienstmarkt_backend/internal/models"
	"dienstmarkt_backend/internal/repositories"
	"dienstmarkt_backend/internal/services/dto"
	"dienstmarkt_backend/pkg/apperrors"
)

type JobService interface {
	CreateJob(userID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(jobID string) (*dto.JobResponse, error)
	ListJobs(filter repositories.JobFilter) (*dto.JobListResponse, error)
	ListUserJobs(userID string) ([]*dto.JobResponse, error)
	UpdateJob(callerID string, isAdmin bool, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(callerID string, isAdmin bool, jobID string) error
}

type jobService struct {
	db      *gorm.DB
	jobRepo repositories.JobRepository
}

func NewJobService(db *gorm.DB, jobRepo repositories.JobRepository) JobService {
	return &jobService{db: db, jobRepo: jobRepo}
}

func (s *jobService) CreateJob(userID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	job := &models.JobListing{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Category:    req.Category,
		ContactInfo: req.ContactInfo,
		Status:      models.JobStatusActive,
	}
	if err := s.jobRepo.Create(s.db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toJobResponse(job), nil
}

func (s *jobService) GetJob(jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(s.db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return toJobResponse(job), nil
}

func (s *jobService) ListJobs(filter repositories.JobFilter) (*dto.JobListResponse, error) {
	filter.Page, filter.PageSize = NormalizePagination(filter.Page, filter.PageSize)
	jobs, total, err := s.jobRepo.FindWithFilter(s.db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, toJobResponse(&jobs[i]))
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	return &dto.JobListResponse{
		Jobs:       out,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *jobService) ListUserJobs(userID string) ([]*dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindByUser(s.db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, toJobResponse(&jobs[i]))
	}
	return out, nil
}

func (s *jobService) UpdateJob(callerID string, isAdmin bool, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.loadOwned(callerID, isAdmin, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Date != nil {
		job.Date = req.Date
	}
	if req.Category != nil {
		job.Category = *req.Category
	}
	if req.ContactInfo != nil {
		job.ContactInfo = *req.ContactInfo
	}
	if req.Images != nil {
		job.SetImages(*req.Images)
	}
	if req.Status != nil {
		job.Status = models.JobStatus(*req.Status)
	}

	if err := s.jobRepo.Update(s.db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toJobResponse(job), nil
}

// DeleteJob removes the listing row outright. Job listings have no
// tombstone state.
func (s *jobService) DeleteJob(callerID string, isAdmin bool, jobID string) error {
	if _, err := s.loadOwned(callerID, isAdmin, jobID); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(s.db, jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *jobService) loadOwned(callerID string, isAdmin bool, jobID string) (*models.JobListing, error) {
	job, err := s.jobRepo.FindByID(s.db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !isAdmin && job.UserID != callerID {
		return nil, apperrors.ErrJobNotEditable
	}
	return job, nil
}

func toJobResponse(job *models.JobListing) *dto.JobResponse {
	return &dto.JobResponse{
		ID:          job.ID,
		UserID:      job.UserID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Date:        job.Date,
		Category:    job.Category,
		ContactInfo: job.ContactInfo,
		Images:      job.GetImages(),
		Status:      string(job.Status),
		CreatedAt:   job.CreatedAt,
	}
}
