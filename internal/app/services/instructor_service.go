package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/repositories"
)

// InstructorService defines the interface for instructor listings and applications
type InstructorService interface {
	GetInstructors(ctx context.Context) ([]models.User, error)
	Apply(ctx context.Context, req *dto.InstructorApplicationRequest) (*models.InsertResult, error)
	GetApplications(ctx context.Context, email string) ([]models.AppliedInstructor, error)
}

type instructorServiceImpl struct {
	userRepo    repositories.UserRepository
	appliedRepo repositories.AppliedRepository
}

// NewInstructorService creates a new instructor service instance
func NewInstructorService(userRepo repositories.UserRepository, appliedRepo repositories.AppliedRepository) InstructorService {
	return &instructorServiceImpl{
		userRepo:    userRepo,
		appliedRepo: appliedRepo,
	}
}

func (s *instructorServiceImpl) GetInstructors(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.FindByRole(ctx, models.RoleInstructor)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructors: %w", err)
	}
	return users, nil
}

// Apply files an application. Nothing reviews it here; admins change roles via user updates.
func (s *instructorServiceImpl) Apply(ctx context.Context, req *dto.InstructorApplicationRequest) (*models.InsertResult, error) {
	res, err := s.appliedRepo.Create(ctx, &models.AppliedInstructor{
		Name:       req.Name,
		Email:      req.Email,
		Experience: req.Experience,
		PhotoURL:   req.PhotoURL,
		Date:       time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store application: %w", err)
	}
	return res, nil
}

func (s *instructorServiceImpl) GetApplications(ctx context.Context, email string) ([]models.AppliedInstructor, error) {
	apps, err := s.appliedRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}
