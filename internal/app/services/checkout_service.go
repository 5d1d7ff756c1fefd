package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/repositories"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
	"github.com/yigit/fitnesshub/internal/pkg/helpers"
	"github.com/yigit/fitnesshub/internal/pkg/logger"
	"github.com/yigit/fitnesshub/internal/pkg/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckoutService turns a confirmed payment into enrollments
type CheckoutService interface {
	// Checkout enrolls email into the resolved classes. Class ids come from
	// singleClassID, then req.ClassID, then the user's cart.
	Checkout(ctx context.Context, email, singleClassID string, req *dto.PaymentRequest) (*dto.CheckoutResult, error)
}

type checkoutServiceImpl struct {
	classRepo      repositories.ClassRepository
	cartRepo       repositories.CartRepository
	paymentRepo    repositories.PaymentRepository
	enrollmentRepo repositories.EnrollmentRepository
	feed           ClassFeed
	logger         zerolog.Logger
}

// NewCheckoutService creates a new checkout service instance
func NewCheckoutService(repos *repositories.Repositories, feed ClassFeed) CheckoutService {
	if feed == nil {
		feed = noopFeed{}
	}
	return &checkoutServiceImpl{
		classRepo:      repos.Classes,
		cartRepo:       repos.Cart,
		paymentRepo:    repos.Payments,
		enrollmentRepo: repos.Enrollments,
		feed:           feed,
		logger:         logger.Component("checkout"),
	}
}

// compensation undoes one completed step
type compensation struct {
	step string
	undo func(ctx context.Context) error
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, email, singleClassID string, req *dto.PaymentRequest) (*dto.CheckoutResult, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: user email is required", apperrors.ErrValidationFailed)
	}

	classIDs, err := s.resolveClassIDs(ctx, email, singleClassID, req.ClassID)
	if err != nil {
		return nil, err
	}
	if len(classIDs) == 0 {
		return nil, apperrors.ErrNothingToCheckout
	}

	hexIDs := make([]string, len(classIDs))
	for i, id := range classIDs {
		hexIDs[i] = id.Hex()
	}

	var undo []compensation

	// Seats: one conditional decrement per class.
	for _, id := range classIDs {
		classID := id
		ok, err := s.classRepo.ReserveSeat(ctx, classID)
		if err != nil {
			return nil, s.abort(ctx, undo, fmt.Errorf("reserve seat: %w", err))
		}
		if !ok {
			return nil, s.abort(ctx, undo, s.unavailable(ctx, classID))
		}
		undo = append(undo, compensation{
			step: "release seat " + classID.Hex(),
			undo: func(ctx context.Context) error { return s.classRepo.ReleaseSeat(ctx, classID) },
		})
	}
	reserved := int64(len(classIDs))
	updated := &models.UpdateResult{Acknowledged: true, MatchedCount: reserved, ModifiedCount: reserved}

	enrollment := &models.Enrollment{
		UserEmail:     email,
		ClassID:       classIDs,
		TransactionID: req.TransactionID,
	}
	p := paymentFromRequest(req)
	p.UserEmail = email
	p.ClassID = hexIDs
	enrollment.Date = p.Date

	enrolled, err := s.enrollmentRepo.Create(ctx, enrollment)
	if err != nil {
		return nil, s.abort(ctx, undo, fmt.Errorf("insert enrollment: %w", err))
	}
	undo = append(undo, compensation{
		step: "delete enrollment",
		undo: func(ctx context.Context) error { return s.enrollmentRepo.Delete(ctx, enrolled.InsertedID) },
	})

	snapshot, err := s.cartRepo.FindByUserAndClasses(ctx, email, hexIDs)
	if err != nil {
		return nil, s.abort(ctx, undo, fmt.Errorf("read cart: %w", err))
	}
	deleted, err := s.cartRepo.DeleteByUserAndClasses(ctx, email, hexIDs)
	if err != nil {
		return nil, s.abort(ctx, undo, fmt.Errorf("clear cart: %w", err))
	}
	undo = append(undo, compensation{
		step: "restore cart",
		undo: func(ctx context.Context) error { return s.cartRepo.InsertMany(ctx, snapshot) },
	})

	paid, err := s.paymentRepo.Create(ctx, p)
	if err != nil {
		return nil, s.abort(ctx, undo, fmt.Errorf("insert payment: %w", err))
	}

	s.logger.Info().
		Str("userEmail", email).
		Strs("classIds", hexIDs).
		Str("transactionId", req.TransactionID).
		Msg("Checkout completed")

	s.publishSeats(ctx, classIDs)

	return &dto.CheckoutResult{
		UpdatedResult:     updated,
		UpdatedEnrollment: enrolled,
		DeletedResult:     deleted,
		PaymentResult:     paid,
	}, nil
}

// resolveClassIDs returns the distinct classes to enroll in. Explicit ids must
// all be well formed; cart entries with a malformed class id are skipped, the
// same way the cart listing skips them.
func (s *checkoutServiceImpl) resolveClassIDs(ctx context.Context, email, singleClassID string, bodyIDs []string) ([]primitive.ObjectID, error) {
	if singleClassID != "" {
		return helpers.ParseObjectIDs([]string{singleClassID})
	}
	if len(bodyIDs) > 0 {
		return helpers.ParseObjectIDs(bodyIDs)
	}

	items, err := s.cartRepo.FindByUserEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: read cart: %w", apperrors.ErrCheckoutFailed, err)
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, err := helpers.ParseObjectID(item.ClassID); err != nil {
			s.logger.Warn().Str("cartId", item.ID.Hex()).Str("classId", item.ClassID).Msg("Skipping cart entry with malformed class id")
			continue
		}
		ids = append(ids, item.ClassID)
	}
	return helpers.ParseObjectIDs(ids)
}

// unavailable explains a failed reservation: the class is either gone or full
func (s *checkoutServiceImpl) unavailable(ctx context.Context, id primitive.ObjectID) error {
	class, err := s.classRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("read class: %w", err)
	}
	if class == nil {
		return fmt.Errorf("%w: class %s", apperrors.ErrResourceNotFound, id.Hex())
	}
	return fmt.Errorf("%w: class %s", apperrors.ErrSeatsUnavailable, id.Hex())
}

// abort runs the compensations newest first. They run detached from request
// cancellation so a dropped client cannot leave seats reserved.
func (s *checkoutServiceImpl) abort(ctx context.Context, undo []compensation, cause error) error {
	cleanupCtx := context.WithoutCancel(ctx)

	var failed []string
	for i := len(undo) - 1; i >= 0; i-- {
		if err := undo[i].undo(cleanupCtx); err != nil {
			s.logger.Error().Err(err).Str("step", undo[i].step).Msg("Checkout compensation failed")
			failed = append(failed, undo[i].step)
		}
	}

	if len(failed) > 0 {
		return (&apperrors.CustomError{
			Err:     apperrors.ErrCheckoutFailed,
			Message: fmt.Sprintf("checkout failed: %v; compensation incomplete", cause),
		}).WithDetails(map[string]interface{}{"failedSteps": failed})
	}

	s.logger.Warn().Err(cause).Int("compensated", len(undo)).Msg("Checkout rolled back")
	if errors.Is(cause, apperrors.ErrSeatsUnavailable) || errors.Is(cause, apperrors.ErrResourceNotFound) {
		return cause
	}
	return fmt.Errorf("%w: %w", apperrors.ErrCheckoutFailed, cause)
}

func (s *checkoutServiceImpl) publishSeats(ctx context.Context, ids []primitive.ObjectID) {
	classes, err := s.classRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Could not read classes for feed update")
		return
	}
	for _, c := range classes {
		s.feed.PublishClassEvent(websocket.ClassEvent{
			Type:           websocket.EventSeats,
			ClassID:        c.ID.Hex(),
			AvailableSeats: c.AvailableSeats,
			TotalEnrolled:  c.TotalEnrolled,
			Status:         string(c.Status),
		})
	}
}
