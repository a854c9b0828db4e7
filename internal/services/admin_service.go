package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"dienstmarkt_backend/internal/email"
	"dienstmarkt_backend/internal/logger"
	"dienstmarkt_backend/internal/models"
	"dienstmarkt_backend/internal/repositories"
	"dienstmarkt_backend/internal/services/dto"
	"dienstmarkt_backend/pkg/apperrors"
)

type AdminService interface {
	ListUsers(filter repositories.UserFilter) (*dto.UserListResponse, error)
	SuspendUser(adminID, userID string, req *dto.SuspendUserRequest) error
	ReinstateUser(adminID, userID string) error
	DeleteUser(adminID, userID string, req *dto.DeleteUserRequest) error
	DeleteProfile(profileID string) error
	BanEmail(adminID string, req *dto.BanEmailRequest) error
	UnbanEmail(emailAddr string) error
	ListBannedEmails() ([]*dto.BannedEmailResponse, error)
}

type adminService struct {
	db              *gorm.DB
	userRepo        repositories.UserRepository
	profileRepo     repositories.ProfileRepository
	reviewRepo      repositories.ReviewRepository
	jobRepo         repositories.JobRepository
	favoriteRepo    repositories.FavoriteRepository
	bannedEmailRepo repositories.BannedEmailRepository
	mailer          email.Provider
}

func NewAdminService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	reviewRepo repositories.ReviewRepository,
	jobRepo repositories.JobRepository,
	favoriteRepo repositories.FavoriteRepository,
	bannedEmailRepo repositories.BannedEmailRepository,
	mailer email.Provider,
) AdminService {
	return &adminService{
		db:              db,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		reviewRepo:      reviewRepo,
		jobRepo:         jobRepo,
		favoriteRepo:    favoriteRepo,
		bannedEmailRepo: bannedEmailRepo,
		mailer:          mailer,
	}
}

func (s *adminService) ListUsers(filter repositories.UserFilter) (*dto.UserListResponse, error) {
	filter.Page, filter.PageSize = NormalizePagination(filter.Page, filter.PageSize)
	users, total, err := s.userRepo.FindWithFilter(s.db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return &dto.UserListResponse{
		Users:    out,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *adminService) SuspendUser(adminID, userID string, req *dto.SuspendUserRequest) error {
	user, err := s.loadTarget(adminID, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateStatus(s.db, userID, models.UserStatusSuspended); err != nil {
		return apperrors.InternalError(err)
	}

	subject, body := email.SuspensionBody(req.Reason)
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		logger.WithError(err).Warn("failed to send suspension email", "email", user.Email)
	}
	return nil
}

func (s *adminService) ReinstateUser(adminID, userID string) error {
	user, err := s.loadTarget(adminID, userID)
	if err != nil {
		return err
	}
	if user.Status == models.UserStatusDeleted {
		return apperrors.ErrInvalidOperation("admin", "deleted accounts cannot be reinstated")
	}
	if err := s.userRepo.UpdateStatus(s.db, userID, models.UserStatusActive); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// DeleteUser soft-deletes the account and removes everything it owns:
// profile with reviews and incoming favorites, job listings, favorites
// the user placed, and reviews the user wrote for other profiles. All of
// it runs in one transaction so a crash cannot leave orphans behind.
func (s *adminService) DeleteUser(adminID, userID string, req *dto.DeleteUserRequest) error {
	user, err := s.loadTarget(adminID, userID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		profile, err := s.profileRepo.FindByUserID(tx, userID)
		if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
			return err
		}
		if profile != nil {
			if err := s.profileRepo.DeleteWithDependents(tx, profile.ID); err != nil {
				return err
			}
		}

		if err := tx.Where("reviewer_id = ?", userID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := s.jobRepo.DeleteByUser(tx, userID); err != nil {
			return err
		}

		if err := s.userRepo.UpdateStatus(tx, userID, models.UserStatusDeleted); err != nil {
			return err
		}

		if req.BanEmail {
			entry := &models.BannedEmail{
				Email:    user.Email,
				Reason:   req.Reason,
				BannedBy: &adminID,
			}
			if err := s.bannedEmailRepo.Create(tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	subject, body := email.DeletionBody()
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		logger.WithError(err).Warn("failed to send deletion email", "email", user.Email)
	}
	return nil
}

// DeleteProfile removes any profile together with its reviews and the
// favorites pointing at it. The owning user account stays.
func (s *adminService) DeleteProfile(profileID string) error {
	if _, err := s.profileRepo.FindByID(s.db, profileID); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if err := s.profileRepo.DeleteWithDependents(s.db, profileID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *adminService) BanEmail(adminID string, req *dto.BanEmailRequest) error {
	entry := &models.BannedEmail{
		Email:    strings.ToLower(req.Email),
		Reason:   req.Reason,
		BannedBy: &adminID,
	}
	if err := s.bannedEmailRepo.Create(s.db, entry); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *adminService) UnbanEmail(emailAddr string) error {
	if err := s.bannedEmailRepo.DeleteByEmail(s.db, emailAddr); err != nil {
		if errors.Is(err, repositories.ErrBannedEmailNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *adminService) ListBannedEmails() ([]*dto.BannedEmailResponse, error) {
	entries, err := s.bannedEmailRepo.FindAll(s.db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.BannedEmailResponse, 0, len(entries))
	for _, e := range entries {
		resp := &dto.BannedEmailResponse{Email: e.Email, Reason: e.Reason}
		if e.BannedBy != nil {
			resp.BannedBy = *e.BannedBy
		}
		out = append(out, resp)
	}
	return out, nil
}

// loadTarget fetches the moderation target and refuses actions an admin
// takes against their own account.
func (s *adminService) loadTarget(adminID, userID string) (*models.User, error) {
	if adminID == userID {
		return nil, apperrors.ErrCannotModifySelf
	}
	user, err := s.userRepo.FindByID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}
