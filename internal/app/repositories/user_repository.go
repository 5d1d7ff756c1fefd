package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
	"github.com/yigit/fitnesshub/internal/pkg/dberrors"
	"github.com/yigit/fitnesshub/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository handles user persistence in MongoDB
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new MongoUserRepository
func NewUserRepository(coll *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{coll: coll}
}

// Create inserts a user. A taken email yields apperrors.ErrEmailAlreadyExists.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	res, err := insertOne(ctx, r.coll, user)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error inserting user")
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	user.ID = res.InsertedID
	return res, nil
}

// FindAll returns every user
func (r *MongoUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	return findMany[models.User](ctx, r.coll, bson.D{})
}

// FindByID returns a user or nil
func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.D{{Key: "_id", Value: id}})
}

// FindByEmail returns a user or nil
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.D{{Key: "email", Value: email}})
}

// FindByRole returns the users holding a role
func (r *MongoUserRepository) FindByRole(ctx context.Context, role models.RoleType) ([]models.User, error) {
	return findMany[models.User](ctx, r.coll, bson.D{{Key: "role", Value: role}})
}

// CountByRole counts the users holding a role
func (r *MongoUserRepository) CountByRole(ctx context.Context, role models.RoleType) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "role", Value: role}})
	if err != nil {
		return 0, fmt.Errorf("error counting %s users: %w", role, err)
	}
	return n, nil
}

// Replace sets the profile fields on every user with the id, upserting when absent
func (r *MongoUserRepository) Replace(ctx context.Context, id primitive.ObjectID, user *models.User) (*models.UpdateResult, error) {
	fields := *user
	fields.ID = primitive.NilObjectID

	res, err := r.coll.UpdateMany(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: fields}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("userId", id.Hex()).Msg("Error updating user")
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	return toUpdateResult(res), nil
}

// Delete removes a user by id. Carts, payments and enrollments are left as they are.
func (r *MongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		logger.Error().Err(err).Str("userId", id.Hex()).Msg("Error deleting user")
		return nil, fmt.Errorf("error deleting user: %w", err)
	}
	return toDeleteResult(res), nil
}
