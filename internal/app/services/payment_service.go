package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/repositories"
	"github.com/yigit/fitnesshub/internal/pkg/helpers"
	"github.com/yigit/fitnesshub/internal/pkg/payment"
)

// PaymentService defines the interface for payment records and gateway intents
type PaymentService interface {
	RecordPayment(ctx context.Context, req *dto.PaymentRequest) (*models.InsertResult, error)
	GetPaymentsByID(ctx context.Context, id string) ([]models.Payment, error)
	GetLatestPayment(ctx context.Context, email string) (*models.Payment, error)
	CountPayments(ctx context.Context, email string) (int64, error)
	CreatePaymentIntent(ctx context.Context, req *dto.PaymentIntentRequest) (*payment.Intent, error)
}

type paymentServiceImpl struct {
	paymentRepo repositories.PaymentRepository
	gateway     payment.Gateway
	currency    string
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(paymentRepo repositories.PaymentRepository, gateway payment.Gateway, currency string) PaymentService {
	return &paymentServiceImpl{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		currency:    currency,
	}
}

func paymentFromRequest(req *dto.PaymentRequest) *models.Payment {
	p := &models.Payment{
		UserName:      req.UserName,
		UserEmail:     req.UserEmail,
		ClassID:       append([]string{}, req.ClassID...),
		TransactionID: req.TransactionID,
		Price:         req.Price.Float(),
		Quantity:      req.Quantity.Int(),
		PaymentStatus: req.PaymentStatus,
		Date:          time.Now().UTC(),
	}
	if req.Date != nil {
		p.Date = *req.Date
	}
	return p
}

// RecordPayment stores a payment without touching classes, carts or enrollments
func (s *paymentServiceImpl) RecordPayment(ctx context.Context, req *dto.PaymentRequest) (*models.InsertResult, error) {
	res, err := s.paymentRepo.Create(ctx, paymentFromRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return res, nil
}

func (s *paymentServiceImpl) GetPaymentsByID(ctx context.Context, id string) ([]models.Payment, error) {
	oid, err := helpers.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return payments, nil
}

// GetLatestPayment returns the newest payment of the user, or nil
func (s *paymentServiceImpl) GetLatestPayment(ctx context.Context, email string) (*models.Payment, error) {
	p, err := s.paymentRepo.FindLatestByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest payment: %w", err)
	}
	return p, nil
}

func (s *paymentServiceImpl) CountPayments(ctx context.Context, email string) (int64, error) {
	n, err := s.paymentRepo.CountByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return n, nil
}

// CreatePaymentIntent charges the integer part of price, in cents
func (s *paymentServiceImpl) CreatePaymentIntent(ctx context.Context, req *dto.PaymentIntentRequest) (*payment.Intent, error) {
	amount := int64(req.Price.Int()) * 100
	intent, err := s.gateway.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent, nil
}
