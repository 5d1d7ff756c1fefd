package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/pkg/dberrors"
	"github.com/yigit/fitnesshub/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findMany runs a find and decodes every document. Never returns a nil slice.
func findMany[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		logger.Error().Err(err).Str("collection", coll.Name()).Bool("timeout", dberrors.IsTimeout(err)).Msg("Error executing find")
		return nil, fmt.Errorf("error querying %s: %w", coll.Name(), err)
	}

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		logger.Error().Err(err).Str("collection", coll.Name()).Msg("Error decoding find results")
		return nil, fmt.Errorf("error decoding %s: %w", coll.Name(), err)
	}
	return results, nil
}

// aggregate runs a pipeline and decodes every output document.
func aggregate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Error().Err(err).Str("collection", coll.Name()).Bool("timeout", dberrors.IsTimeout(err)).Msg("Error executing aggregation")
		return nil, fmt.Errorf("error aggregating %s: %w", coll.Name(), err)
	}

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		logger.Error().Err(err).Str("collection", coll.Name()).Msg("Error decoding aggregation results")
		return nil, fmt.Errorf("error decoding %s aggregation: %w", coll.Name(), err)
	}
	return results, nil
}

// findOne decodes a single document, mapping "no documents" to (nil, nil).
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOneOptions) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter, opts...).Decode(&doc)
	if err != nil {
		if dberrors.IsNoDocuments(err) {
			return nil, nil
		}
		logger.Error().Err(err).Str("collection", coll.Name()).Bool("timeout", dberrors.IsTimeout(err)).Msg("Error executing findOne")
		return nil, fmt.Errorf("error querying %s: %w", coll.Name(), err)
	}
	return &doc, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) (*models.InsertResult, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func toUpdateResult(res *mongo.UpdateResult) *models.UpdateResult {
	out := &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = &id
	}
	return out
}

func toDeleteResult(res *mongo.DeleteResult) *models.DeleteResult {
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}
