package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCartRepository handles cart persistence in MongoDB
type MongoCartRepository struct {
	coll *mongo.Collection
}

// NewCartRepository creates a new MongoCartRepository
func NewCartRepository(coll *mongo.Collection) *MongoCartRepository {
	return &MongoCartRepository{coll: coll}
}

// Create inserts a cart entry
func (r *MongoCartRepository) Create(ctx context.Context, item *models.CartItem) (*models.InsertResult, error) {
	res, err := insertOne(ctx, r.coll, item)
	if err != nil {
		logger.Error().Err(err).Str("userEmail", item.UserEmail).Msg("Error inserting cart item")
		return nil, fmt.Errorf("error creating cart item: %w", err)
	}
	item.ID = res.InsertedID
	return res, nil
}

// InsertMany restores previously removed entries, ids included
func (r *MongoCartRepository) InsertMany(ctx context.Context, items []models.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		docs = append(docs, item)
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		logger.Error().Err(err).Int("count", len(items)).Msg("Error restoring cart items")
		return fmt.Errorf("error inserting cart items: %w", err)
	}
	return nil
}

// FindByID returns the entry with the id as a list
func (r *MongoCartRepository) FindByID(ctx context.Context, id primitive.ObjectID) ([]models.CartItem, error) {
	return findMany[models.CartItem](ctx, r.coll, bson.D{{Key: "_id", Value: id}})
}

// FindByUserEmail returns a user's cart
func (r *MongoCartRepository) FindByUserEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	return findMany[models.CartItem](ctx, r.coll, bson.D{{Key: "userEmail", Value: email}})
}

// FindByUserAndClasses returns the user's entries for any of the classes
func (r *MongoCartRepository) FindByUserAndClasses(ctx context.Context, email string, classIDs []string) ([]models.CartItem, error) {
	return findMany[models.CartItem](ctx, r.coll, userClassesFilter(email, classIDs))
}

// Delete removes one entry
func (r *MongoCartRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		logger.Error().Err(err).Str("cartId", id.Hex()).Msg("Error deleting cart item")
		return nil, fmt.Errorf("error deleting cart item: %w", err)
	}
	return toDeleteResult(res), nil
}

// DeleteByUserAndClasses clears the user's entries for the classes
func (r *MongoCartRepository) DeleteByUserAndClasses(ctx context.Context, email string, classIDs []string) (*models.DeleteResult, error) {
	res, err := r.coll.DeleteMany(ctx, userClassesFilter(email, classIDs))
	if err != nil {
		logger.Error().Err(err).Str("userEmail", email).Msg("Error clearing cart items")
		return nil, fmt.Errorf("error clearing cart: %w", err)
	}
	return toDeleteResult(res), nil
}

func userClassesFilter(email string, classIDs []string) bson.D {
	return bson.D{
		{Key: "userEmail", Value: email},
		{Key: "classID", Value: bson.D{{Key: "$in", Value: classIDs}}},
	}
}
