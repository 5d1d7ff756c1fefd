package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/repositories"
	"github.com/yigit/fitnesshub/internal/pkg/helpers"
)

// UserService defines the interface for user account operations
type UserService interface {
	CreateUser(ctx context.Context, req *dto.UserRequest) (*models.InsertResult, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, req *dto.UserUpdateRequest) (*models.UpdateResult, error)
	DeleteUser(ctx context.Context, id string) (*models.DeleteResult, error)
}

type userServiceImpl struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

// skillsOrNil stores an empty skills field as null
func skillsOrNil(skills string) *string {
	if strings.TrimSpace(skills) == "" {
		return nil
	}
	return &skills
}

// CreateUser registers a profile; role defaults to student.
// A taken email returns apperrors.ErrEmailAlreadyExists.
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.UserRequest) (*models.InsertResult, error) {
	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     models.RoleType(strings.TrimSpace(req.Role)),
		Address:  req.Address,
		Gender:   req.Gender,
		Phone:    req.Phone,
		About:    req.About,
		PhotoURL: req.PhotoURL,
		Skills:   skillsOrNil(req.Skills),
	}
	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	res, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return res, nil
}

func (s *userServiceImpl) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := helpers.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userServiceImpl) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUser overwrites the profile fields; the role comes from req.Option
func (s *userServiceImpl) UpdateUser(ctx context.Context, id string, req *dto.UserUpdateRequest) (*models.UpdateResult, error) {
	oid, err := helpers.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     models.RoleType(strings.TrimSpace(req.Option)),
		Address:  req.Address,
		Gender:   req.Gender,
		Phone:    req.Phone,
		About:    req.About,
		PhotoURL: req.PhotoURL,
		Skills:   skillsOrNil(req.Skills),
	}

	res, err := s.userRepo.Replace(ctx, oid, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return res, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, id string) (*models.DeleteResult, error) {
	oid, err := helpers.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	res, err := s.userRepo.Delete(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return res, nil
}
