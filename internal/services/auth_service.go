package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"dienstmarkt_backend/internal/auth"
	"dienstmarkt_backend/internal/email"
	"dienstmarkt_backend/internal/logger"
	"dienstmarkt_backend/internal/models"
	"dienstmarkt_backend/internal/repositories"
	"dienstmarkt_backend/internal/services/dto"
	"dienstmarkt_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	// ResolveToken validates a bearer token against the current user table
	// and returns the user it names.
	ResolveToken(token string) (*models.User, error)
	// ResolveSessionUser re-validates a session-stored user id.
	ResolveSessionUser(userID string) (*models.User, error)
}

type authService struct {
	db              *gorm.DB
	userRepo        repositories.UserRepository
	bannedEmailRepo repositories.BannedEmailRepository
	mailer          email.Provider
}

func NewAuthService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	bannedEmailRepo repositories.BannedEmailRepository,
	mailer email.Provider,
) AuthService {
	return &authService{
		db:              db,
		userRepo:        userRepo,
		bannedEmailRepo: bannedEmailRepo,
		mailer:          mailer,
	}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	banned, err := s.bannedEmailRepo.IsBanned(s.db, emailAddr)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if banned {
		return nil, apperrors.ErrEmailBanned
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        emailAddr,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// The welcome mail is best effort, registration never fails on it.
	subject, body := email.WelcomeBody(user.Email)
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		logger.WithError(err).Warn("failed to send welcome email", "email", user.Email)
	}

	return s.buildAuthResponse(user), nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(s.db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	switch user.Status {
	case models.UserStatusSuspended:
		return nil, apperrors.ErrUserSuspended
	case models.UserStatusDeleted:
		return nil, apperrors.ErrUserDeleted
	}

	return s.buildAuthResponse(user), nil
}

func (s *authService) ResolveToken(token string) (*models.User, error) {
	claims, err := auth.ParseToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(s.db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive() {
		return nil, apperrors.ErrInvalidToken
	}
	return user, nil
}

func (s *authService) ResolveSessionUser(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("unknown session user")
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive() {
		return nil, apperrors.NewUnauthorizedError("account is not active")
	}
	return user, nil
}

func (s *authService) buildAuthResponse(user *models.User) *dto.AuthResponse {
	return &dto.AuthResponse{
		Token: auth.GenerateToken(user.ID, user.Email),
		User:  toUserResponse(user),
	}
}

func toUserResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Status:    string(user.Status),
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}
