package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tealeg/xlsx"
	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/repositories"
)

// AdminService defines the interface for admin dashboards
type AdminService interface {
	GetStats(ctx context.Context) (*models.AdminStats, error)
	// ExportPayments writes every payment as an xlsx workbook
	ExportPayments(ctx context.Context, w io.Writer) error
}

type adminServiceImpl struct {
	classRepo      repositories.ClassRepository
	userRepo       repositories.UserRepository
	paymentRepo    repositories.PaymentRepository
	enrollmentRepo repositories.EnrollmentRepository
}

// NewAdminService creates a new admin service instance
func NewAdminService(repos *repositories.Repositories) AdminService {
	return &adminServiceImpl{
		classRepo:      repos.Classes,
		userRepo:       repos.Users,
		paymentRepo:    repos.Payments,
		enrollmentRepo: repos.Enrollments,
	}
}

func (s *adminServiceImpl) GetStats(ctx context.Context) (*models.AdminStats, error) {
	approved, err := s.classRepo.CountByStatus(ctx, models.ClassStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats: %w", err)
	}
	pending, err := s.classRepo.CountByStatus(ctx, models.ClassStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats: %w", err)
	}
	instructors, err := s.userRepo.CountByRole(ctx, models.RoleInstructor)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats: %w", err)
	}
	total, err := s.classRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats: %w", err)
	}
	enrolled, err := s.enrollmentRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build stats: %w", err)
	}

	return &models.AdminStats{
		ApprovedClasses: approved,
		PendingClasses:  pending,
		Instructors:     instructors,
		TotalClasses:    total,
		TotalEnrolled:   enrolled,
	}, nil
}

var paymentExportHeader = []string{"Date", "User", "Email", "Transaction", "Classes", "Quantity", "Price", "Status"}

func (s *adminServiceImpl) ExportPayments(ctx context.Context, w io.Writer) error {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load payments: %w", err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Payments")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, title := range paymentExportHeader {
		header.AddCell().SetValue(title)
	}

	for _, p := range payments {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.Date.Format(time.RFC3339))
		row.AddCell().SetValue(p.UserName)
		row.AddCell().SetValue(p.UserEmail)
		row.AddCell().SetValue(p.TransactionID)
		row.AddCell().SetValue(strings.Join(p.ClassID, ","))
		row.AddCell().SetInt(p.Quantity)
		row.AddCell().SetFloat(p.Price)
		row.AddCell().SetValue(p.PaymentStatus)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
