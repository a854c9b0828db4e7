package services

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"dienstmarkt_backend/internal/models"
	"dienstmarkt_backend/internal/repositories"
	"dienstmarkt_backend/internal/services/dto"
	"dienstmarkt_backend/pkg/apperrors"
)

type ProfileService interface {
	CreateProfile(userID string, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error)
	GetProfile(profileID string) (*dto.ProfileResponse, error)
	GetProfileByUser(userID string) (*dto.ProfileResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	DeleteProfile(userID string) error
	Search(req *dto.SearchProfilesRequest) (*dto.SearchProfilesResponse, error)
	SetProfileImage(userID, imageURL string) error
}

type profileService struct {
	db          *gorm.DB
	profileRepo repositories.ProfileRepository
	reviewRepo  repositories.ReviewRepository
	userRepo    repositories.UserRepository
}

func NewProfileService(
	db *gorm.DB,
	profileRepo repositories.ProfileRepository,
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
) ProfileService {
	return &profileService{
		db:          db,
		profileRepo: profileRepo,
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
	}
}

func (s *profileService) CreateProfile(userID string, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	if _, err := s.userRepo.FindByID(s.db, userID); err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	profile := &models.Profile{
		UserID:         userID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Description:    req.Description,
		CustomServices: req.CustomServices,
		Phone:          req.Phone,
		ContactEmail:   req.ContactEmail,
		SocialMedia:    req.SocialMedia,
		Available:      true,
	}
	profile.SetServices(req.Services)
	profile.SetRegions(req.Regions)
	profile.SetAvailability(req.Availability)
	if req.Available != nil {
		profile.Available = *req.Available
	}

	if !profile.HasContactMethod() {
		return nil, apperrors.ErrProfileIncomplete
	}

	if err := s.profileRepo.Create(s.db, profile); err != nil {
		if errors.Is(err, repositories.ErrProfileAlreadyExists) {
			return nil, apperrors.ErrProfileAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return s.toProfileResponse(profile, false)
}

func (s *profileService) GetProfile(profileID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByID(s.db, profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.toProfileResponse(profile, true)
}

func (s *profileService) GetProfileByUser(userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.toProfileResponse(profile, true)
}

func (s *profileService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Description = req.Description
	profile.CustomServices = req.CustomServices
	profile.Phone = req.Phone
	profile.ContactEmail = req.ContactEmail
	profile.SocialMedia = req.SocialMedia
	profile.SetServices(req.Services)
	profile.SetRegions(req.Regions)
	profile.SetAvailability(req.Availability)
	if req.Available != nil {
		profile.Available = *req.Available
	}

	if !profile.HasContactMethod() {
		return nil, apperrors.ErrProfileIncomplete
	}

	if err := s.profileRepo.Update(s.db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.toProfileResponse(profile, true)
}

// DeleteProfile removes the caller's profile together with its reviews
// and the favorites pointing at it, in one transaction.
func (s *profileService) DeleteProfile(userID string) error {
	profile, err := s.profileRepo.FindByUserID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if err := s.profileRepo.DeleteWithDependents(s.db, profile.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *profileService) SetProfileImage(userID, imageURL string) error {
	profile, err := s.profileRepo.FindByUserID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if err := s.profileRepo.UpdateImageURL(s.db, profile.ID, imageURL); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Search loads every profile and narrows the set in memory. The catalog
// is small enough that filtering in the application keeps the matching
// rules (list membership, substring fallbacks) in one place instead of
// spreading them across SQL.
func (s *profileService) Search(req *dto.SearchProfilesRequest) (*dto.SearchProfilesResponse, error) {
	profiles, err := s.profileRepo.FindAll(s.db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	matched := FilterProfiles(profiles, req.Service, req.Region, req.Name)
	SortProfiles(matched, req.Sort)
	total := int64(len(matched))
	page, pageSize := NormalizePagination(req.Page, req.PageSize)
	pageItems := PaginateProfiles(matched, page, pageSize)

	results := make([]*dto.ProfileResponse, 0, len(pageItems))
	for i := range pageItems {
		resp, err := s.toProfileResponse(&pageItems[i], true)
		if err != nil {
			return nil, err
		}
		results = append(results, resp)
	}

	return &dto.SearchProfilesResponse{
		Results:  results,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// filterAll is the sentinel query value that disables a filter.
const filterAll = "all"

// FilterProfiles applies the service, region and name filters in order.
// An empty value or the "all" sentinel skips the corresponding filter.
func FilterProfiles(profiles []models.Profile, service, region, name string) []models.Profile {
	out := profiles
	if service != "" && !strings.EqualFold(service, filterAll) {
		out = filterMatching(out, func(p *models.Profile) bool {
			return matchesService(p, service)
		})
	}
	if region != "" && !strings.EqualFold(region, filterAll) {
		out = filterMatching(out, func(p *models.Profile) bool {
			return matchesRegion(p, region)
		})
	}
	if name != "" {
		out = filterMatching(out, func(p *models.Profile) bool {
			return matchesName(p, name)
		})
	}
	return out
}

func filterMatching(profiles []models.Profile, keep func(*models.Profile) bool) []models.Profile {
	out := make([]models.Profile, 0, len(profiles))
	for i := range profiles {
		if keep(&profiles[i]) {
			out = append(out, profiles[i])
		}
	}
	return out
}

// matchesService accepts a profile when the query equals one of its
// listed services, or appears as a substring of its free-text custom
// services. Both checks are case-insensitive.
func matchesService(p *models.Profile, query string) bool {
	for _, s := range p.GetServices() {
		if strings.EqualFold(s, query) {
			return true
		}
	}
	if p.CustomServices != "" {
		return strings.Contains(strings.ToLower(p.CustomServices), strings.ToLower(query))
	}
	return false
}

// matchesRegion requires an exact (case-insensitive) entry in the
// profile's region list. Regions come from a fixed set, so there is no
// substring fallback.
func matchesRegion(p *models.Profile, query string) bool {
	for _, r := range p.GetRegions() {
		if strings.EqualFold(r, query) {
			return true
		}
	}
	return false
}

// matchesName checks the first name, last name and the joined full name
// for a case-insensitive substring. The full-name check lets queries like
// "anna m" span the name boundary.
func matchesName(p *models.Profile, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.FirstName), q) ||
		strings.Contains(strings.ToLower(p.LastName), q) ||
		strings.Contains(strings.ToLower(p.FullName()), q)
}

// SortProfiles orders the slice in place. Only "newest" has an effect;
// every other key, including "rating", leaves the filtered order as is.
// Sorting by rating would need the aggregated review scores, which are
// computed after pagination, so the key is accepted but not applied.
func SortProfiles(profiles []models.Profile, key string) {
	if key != "newest" {
		return
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})
}

// NormalizePagination clamps page and pageSize to usable values.
// Pages are 1-based.
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return page, pageSize
}

// PaginateProfiles slices out the requested page. A page past the end of
// the result set yields an empty slice, not an error.
func PaginateProfiles(profiles []models.Profile, page, pageSize int) []models.Profile {
	start := (page - 1) * pageSize
	if start >= len(profiles) {
		return []models.Profile{}
	}
	end := start + pageSize
	if end > len(profiles) {
		end = len(profiles)
	}
	return profiles[start:end]
}

// toProfileResponse builds the API shape, optionally attaching the
// profile's reviews and its aggregated rating.
func (s *profileService) toProfileResponse(profile *models.Profile, withReviews bool) (*dto.ProfileResponse, error) {
	resp := &dto.ProfileResponse{
		ID:             profile.ID,
		UserID:         profile.UserID,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		Description:    profile.Description,
		Services:       profile.GetServices(),
		CustomServices: profile.CustomServices,
		Regions:        profile.GetRegions(),
		Availability:   profile.GetAvailability(),
		Phone:          profile.Phone,
		ContactEmail:   profile.ContactEmail,
		SocialMedia:    profile.SocialMedia,
		Available:      profile.Available,
		ImageURL:       profile.ImageURL,
		CreatedAt:      profile.CreatedAt,
	}

	if !withReviews {
		return resp, nil
	}

	avg, count, err := s.reviewRepo.AverageRating(s.db, profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Rating = avg
	resp.ReviewCount = count

	reviews, err := s.reviewRepo.FindByProfile(s.db, profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp.Reviews = make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp.Reviews = append(resp.Reviews, toReviewResponse(&reviews[i]))
	}

	return resp, nil
}
