package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/repositories"
	"github.com/yigit/fitnesshub/internal/pkg/helpers"
	"github.com/yigit/fitnesshub/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService defines the interface for cart operations
type CartService interface {
	AddToCart(ctx context.Context, req *dto.CartRequest) (*models.InsertResult, error)
	GetCartItem(ctx context.Context, id string) ([]models.CartItem, error)
	// GetCartClasses resolves the user's cart entries to class documents
	GetCartClasses(ctx context.Context, email string) ([]models.Class, error)
	RemoveFromCart(ctx context.Context, id string) (*models.DeleteResult, error)
}

type cartServiceImpl struct {
	cartRepo  repositories.CartRepository
	classRepo repositories.ClassRepository
}

// NewCartService creates a new cart service instance
func NewCartService(cartRepo repositories.CartRepository, classRepo repositories.ClassRepository) CartService {
	return &cartServiceImpl{cartRepo: cartRepo, classRepo: classRepo}
}

func (s *cartServiceImpl) AddToCart(ctx context.Context, req *dto.CartRequest) (*models.InsertResult, error) {
	item := &models.CartItem{
		ClassID:   req.ClassID,
		UserEmail: req.UserEmail,
		Date:      time.Now().UTC(),
	}
	if req.Date != nil {
		item.Date = *req.Date
	}

	res, err := s.cartRepo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	return res, nil
}

func (s *cartServiceImpl) GetCartItem(ctx context.Context, id string) ([]models.CartItem, error) {
	oid, err := helpers.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	return items, nil
}

func (s *cartServiceImpl) GetCartClasses(ctx context.Context, email string) ([]models.Class, error) {
	items, err := s.cartRepo.FindByUserEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		oid, err := helpers.ParseObjectID(item.ClassID)
		if err != nil {
			logger.Warn().Str("cartId", item.ID.Hex()).Str("classId", item.ClassID).Msg("Skipping cart entry with malformed class id")
			continue
		}
		ids = append(ids, oid)
	}
	if len(ids) == 0 {
		return []models.Class{}, nil
	}

	classes, err := s.classRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart classes: %w", err)
	}
	return classes, nil
}

func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, id string) (*models.DeleteResult, error) {
	oid, err := helpers.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	res, err := s.cartRepo.Delete(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return res, nil
}
