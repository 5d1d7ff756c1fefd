package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/repositories"
	"github.com/yigit/fitnesshub/internal/pkg/helpers"
	"github.com/yigit/fitnesshub/internal/pkg/websocket"
)

// ClassService defines the interface for class-related operations
type ClassService interface {
	CreateClass(ctx context.Context, req *dto.ClassRequest) (*models.InsertResult, error)
	GetAllClasses(ctx context.Context) ([]models.Class, error)
	GetClassesByInstructor(ctx context.Context, email string) ([]models.Class, error)
	GetApprovedClasses(ctx context.Context) ([]models.Class, error)
	GetClassByID(ctx context.Context, id string) (*models.Class, error)
	UpdateClass(ctx context.Context, id string, req *dto.ClassRequest) (*models.UpdateResult, error)
	UpdateClassStatus(ctx context.Context, id string, req *dto.ClassStatusRequest) (*models.UpdateResult, error)
	GetPopularClasses(ctx context.Context) ([]models.Class, error)
	GetPopularInstructors(ctx context.Context) ([]models.PopularInstructor, error)
}

type classServiceImpl struct {
	classRepo repositories.ClassRepository
	feed      ClassFeed
}

// NewClassService creates a new class service instance
func NewClassService(classRepo repositories.ClassRepository, feed ClassFeed) ClassService {
	if feed == nil {
		feed = noopFeed{}
	}
	return &classServiceImpl{classRepo: classRepo, feed: feed}
}

func classFromRequest(req *dto.ClassRequest) *models.Class {
	return &models.Class{
		Name:            req.Name,
		Image:           req.Image,
		AvailableSeats:  req.AvailableSeats.Int(),
		Price:           req.Price.Float(),
		VideoLink:       req.VideoLink,
		Description:     req.Description,
		InstructorName:  req.InstructorName,
		InstructorEmail: req.InstructorEmail,
		Status:          models.ClassStatus(strings.TrimSpace(req.Status)),
		Submitted:       req.Submitted,
		TotalEnrolled:   req.TotalEnrolled.Int(),
		Reason:          req.Reason,
	}
}

// CreateClass stores a new listing. New listings wait for review unless a status is given.
func (s *classServiceImpl) CreateClass(ctx context.Context, req *dto.ClassRequest) (*models.InsertResult, error) {
	class := classFromRequest(req)
	if class.Status == "" {
		class.Status = models.ClassStatusPending
	}

	res, err := s.classRepo.Create(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}
	return res, nil
}

func (s *classServiceImpl) GetAllClasses(ctx context.Context) ([]models.Class, error) {
	classes, err := s.classRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, nil
}

func (s *classServiceImpl) GetClassesByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	classes, err := s.classRepo.FindByInstructorEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor classes: %w", err)
	}
	return classes, nil
}

func (s *classServiceImpl) GetApprovedClasses(ctx context.Context) ([]models.Class, error) {
	classes, err := s.classRepo.FindByStatus(ctx, models.ClassStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved classes: %w", err)
	}
	return classes, nil
}

// GetClassByID returns nil without error when no class has the id
func (s *classServiceImpl) GetClassByID(ctx context.Context, id string) (*models.Class, error) {
	oid, err := helpers.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	class, err := s.classRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	return class, nil
}

// UpdateClass overwrites every listing field and upserts
func (s *classServiceImpl) UpdateClass(ctx context.Context, id string, req *dto.ClassRequest) (*models.UpdateResult, error) {
	oid, err := helpers.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	class := classFromRequest(req)
	res, err := s.classRepo.Replace(ctx, oid, class)
	if err != nil {
		return nil, fmt.Errorf("failed to update class: %w", err)
	}

	s.feed.PublishClassEvent(websocket.ClassEvent{
		Type:           websocket.EventSeats,
		ClassID:        id,
		AvailableSeats: class.AvailableSeats,
		TotalEnrolled:  class.TotalEnrolled,
		Status:         string(class.Status),
	})
	return res, nil
}

// UpdateClassStatus sets status and reason; an unknown id matches nothing
func (s *classServiceImpl) UpdateClassStatus(ctx context.Context, id string, req *dto.ClassStatusRequest) (*models.UpdateResult, error) {
	oid, err := helpers.ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	status := models.ClassStatus(strings.TrimSpace(req.Status))
	res, err := s.classRepo.UpdateStatus(ctx, oid, status, req.Reason)
	if err != nil {
		return nil, fmt.Errorf("failed to update class status: %w", err)
	}

	if res.MatchedCount > 0 {
		s.feed.PublishClassEvent(websocket.ClassEvent{
			Type:    websocket.EventStatus,
			ClassID: id,
			Status:  string(status),
		})
	}
	return res, nil
}

func (s *classServiceImpl) GetPopularClasses(ctx context.Context) ([]models.Class, error) {
	classes, err := s.classRepo.FindPopular(ctx, popularLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular classes: %w", err)
	}
	return classes, nil
}

func (s *classServiceImpl) GetPopularInstructors(ctx context.Context) ([]models.PopularInstructor, error) {
	rows, err := s.classRepo.FindPopularInstructors(ctx, popularLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular instructors: %w", err)
	}
	return rows, nil
}
