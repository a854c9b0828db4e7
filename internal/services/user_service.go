package services

import (
	"errors"

	"gorm.io/gorm"

	"dienstmarkt_backend/internal/auth"
	"dienstmarkt_backend/internal/repositories"
	"dienstmarkt_backend/internal/services/dto"
	"dienstmarkt_backend/pkg/apperrors"
)

type UserService interface {
	GetUser(userID string) (*dto.UserResponse, error)
	ChangePassword(userID string, req *dto.ChangePasswordRequest) error
}

type userService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
}

func NewUserService(db *gorm.DB, userRepo repositories.UserRepository) UserService {
	return &userService{db: db, userRepo: userRepo}
}

func (s *userService) GetUser(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return toUserResponse(user), nil
}

func (s *userService) ChangePassword(userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(s.db, userID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
