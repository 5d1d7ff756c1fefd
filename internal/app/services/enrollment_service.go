package services

import (
	"context"
	"fmt"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/repositories"
)

// EnrollmentService defines the interface for reading enrollments
type EnrollmentService interface {
	// GetEnrolledClasses lists every class the user enrolled in, one row per class,
	// with the class instructor attached when one is on record.
	GetEnrolledClasses(ctx context.Context, email string) ([]models.EnrolledClass, error)
}

type enrollmentServiceImpl struct {
	enrollmentRepo repositories.EnrollmentRepository
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(enrollmentRepo repositories.EnrollmentRepository) EnrollmentService {
	return &enrollmentServiceImpl{enrollmentRepo: enrollmentRepo}
}

func (s *enrollmentServiceImpl) GetEnrolledClasses(ctx context.Context, email string) ([]models.EnrolledClass, error) {
	rows, err := s.enrollmentRepo.FindEnrolledClasses(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrolled classes: %w", err)
	}
	return rows, nil
}
