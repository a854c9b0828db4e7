package services

import (
	"errors"

	"gorm.io/gorm"

	"dienstmarkt_backend/internal/models"
	"dienstmarkt_backend/internal/repositories"
	"dienstmarkt_backend/internal/services/dto"
	"dienstmarkt_backend/pkg/apperrors"
)

type FavoriteService interface {
	AddFavorite(userID, profileID string) error
	RemoveFavorite(userID, profileID string) error
	ListFavorites(userID string) ([]*dto.FavoriteResponse, error)
}

type favoriteService struct {
	db           *gorm.DB
	favoriteRepo repositories.FavoriteRepository
	profileRepo  repositories.ProfileRepository
}

func NewFavoriteService(
	db *gorm.DB,
	favoriteRepo repositories.FavoriteRepository,
	profileRepo repositories.ProfileRepository,
) FavoriteService {
	return &favoriteService{
		db:           db,
		favoriteRepo: favoriteRepo,
		profileRepo:  profileRepo,
	}
}

func (s *favoriteService) AddFavorite(userID, profileID string) error {
	if _, err := s.profileRepo.FindByID(s.db, profileID); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	favorite := &models.Favorite{UserID: userID, ProfileID: profileID}
	if err := s.favoriteRepo.Create(s.db, favorite); err != nil {
		if errors.Is(err, repositories.ErrFavoriteExists) {
			return apperrors.ErrAlreadyFavorited
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *favoriteService) RemoveFavorite(userID, profileID string) error {
	if err := s.favoriteRepo.Delete(s.db, userID, profileID); err != nil {
		if errors.Is(err, repositories.ErrFavoriteNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *favoriteService) ListFavorites(userID string) ([]*dto.FavoriteResponse, error) {
	favorites, err := s.favoriteRepo.FindByUser(s.db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		fav := &favorites[i]
		resp := &dto.FavoriteResponse{
			ProfileID: fav.ProfileID,
			CreatedAt: fav.CreatedAt,
		}
		if fav.Profile.UserID != "" {
			resp.Profile = toFavoriteProfile(&fav.Profile)
		}
		out = append(out, resp)
	}
	return out, nil
}

// toFavoriteProfile renders the preloaded profile without its review
// aggregate. Favorites listings do not need ratings.
func toFavoriteProfile(profile *models.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:             profile.ID,
		UserID:         profile.UserID,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		Description:    profile.Description,
		Services:       profile.GetServices(),
		CustomServices: profile.CustomServices,
		Regions:        profile.GetRegions(),
		Availability:   profile.GetAvailability(),
		Available:      profile.Available,
		ImageURL:       profile.ImageURL,
		CreatedAt:      profile.CreatedAt,
	}
}
