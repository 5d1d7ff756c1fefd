package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppliedRepository handles instructor applications in MongoDB
type MongoAppliedRepository struct {
	coll *mongo.Collection
}

// NewAppliedRepository creates a new MongoAppliedRepository
func NewAppliedRepository(coll *mongo.Collection) *MongoAppliedRepository {
	return &MongoAppliedRepository{coll: coll}
}

// Create inserts an application
func (r *MongoAppliedRepository) Create(ctx context.Context, application *models.AppliedInstructor) (*models.InsertResult, error) {
	res, err := insertOne(ctx, r.coll, application)
	if err != nil {
		logger.Error().Err(err).Str("email", application.Email).Msg("Error inserting instructor application")
		return nil, fmt.Errorf("error creating application: %w", err)
	}
	application.ID = res.InsertedID
	return res, nil
}

// FindByEmail returns every application filed under the email
func (r *MongoAppliedRepository) FindByEmail(ctx context.Context, email string) ([]models.AppliedInstructor, error) {
	return findMany[models.AppliedInstructor](ctx, r.coll, bson.D{{Key: "email", Value: email}})
}
