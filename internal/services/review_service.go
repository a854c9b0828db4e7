package services

import (
	"errors"

	"gorm.io/gorm"

	"dienstmarkt_backend/internal/models"
	"dienstmarkt_backend/internal/repositories"
	"dienstmarkt_backend/internal/services/dto"
	"dienstmarkt_backend/pkg/apperrors"
)

type ReviewService interface {
	CreateReview(reviewerID, profileID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetProfileReviews(profileID string, page, pageSize int) (*dto.ReviewListResponse, error)
	DeleteReview(callerID string, isAdmin bool, reviewID string) error
}

type reviewService struct {
	db          *gorm.DB
	reviewRepo  repositories.ReviewRepository
	profileRepo repositories.ProfileRepository
}

func NewReviewService(
	db *gorm.DB,
	reviewRepo repositories.ReviewRepository,
	profileRepo repositories.ProfileRepository,
) ReviewService {
	return &reviewService{
		db:          db,
		reviewRepo:  reviewRepo,
		profileRepo: profileRepo,
	}
}

// CreateReview stores a review against a profile. A reviewer may review
// the same profile more than once; only reviewing your own profile is
// rejected.
func (s *reviewService) CreateReview(reviewerID, profileID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	profile, err := s.profileRepo.FindByID(s.db, profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if profile.UserID == reviewerID {
		return nil, apperrors.ErrSelfReviewNotAllowed
	}

	review := &models.Review{
		ProfileID:  profileID,
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviewRepo.Create(s.db, review); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return toReviewResponse(review), nil
}

func (s *reviewService) GetProfileReviews(profileID string, page, pageSize int) (*dto.ReviewListResponse, error) {
	if _, err := s.profileRepo.FindByID(s.db, profileID); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	page, pageSize = NormalizePagination(page, pageSize)
	reviews, total, err := s.reviewRepo.FindByProfileWithPagination(s.db, profileID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &dto.ReviewListResponse{
		Reviews:    out,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// DeleteReview removes a review. Admins may delete any review, regular
// users only their own.
func (s *reviewService) DeleteReview(callerID string, isAdmin bool, reviewID string) error {
	review, err := s.reviewRepo.FindByID(s.db, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !isAdmin && review.ReviewerID != callerID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.reviewRepo.Delete(s.db, reviewID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func toReviewResponse(review *models.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:         review.ID,
		ProfileID:  review.ProfileID,
		ReviewerID: review.ReviewerID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}
