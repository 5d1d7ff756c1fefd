package auth

import (
	"context"
	"fmt"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/repositories"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
	"github.com/yigit/fitnesshub/internal/pkg/logger"
)

// AuthorizationService answers role questions for an authenticated email.
// The user is read fresh from the store on every call; nothing is cached.
type AuthorizationService struct {
	userRepo repositories.UserRepository
	// legacyInvertedAdmin reproduces the historical check that admitted
	// every role except admin to admin routes.
	legacyInvertedAdmin bool
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo repositories.UserRepository, legacyInvertedAdmin bool) *AuthorizationService {
	if legacyInvertedAdmin {
		logger.Warn().Msg("Legacy inverted admin check is enabled: admin routes admit every role except admin")
	}
	return &AuthorizationService{
		userRepo:            userRepo,
		legacyInvertedAdmin: legacyInvertedAdmin,
	}
}

func (s *AuthorizationService) loadUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error loading user for role check")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreFailure, err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// IsInstructor checks if the user is an instructor
func (s *AuthorizationService) IsInstructor(ctx context.Context, email string) (bool, error) {
	user, err := s.loadUser(ctx, email)
	if err != nil {
		return false, err
	}
	return user.HasRole(models.RoleInstructor), nil
}

// IsAdmin checks the admin role, honoring the legacy polarity flag
func (s *AuthorizationService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.loadUser(ctx, email)
	if err != nil {
		return false, err
	}
	if s.legacyInvertedAdmin {
		return !user.HasRole(models.RoleAdmin), nil
	}
	return user.HasRole(models.RoleAdmin), nil
}

// ValidateInstructor validates if the user is an instructor or returns an error
func (s *AuthorizationService) ValidateInstructor(ctx context.Context, email string) error {
	ok, err := s.IsInstructor(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotInstructor
	}
	return nil
}

// ValidateAdmin validates if the user passes the admin check or returns an error
func (s *AuthorizationService) ValidateAdmin(ctx context.Context, email string) error {
	ok, err := s.IsAdmin(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotAdmin
	}
	return nil
}
