package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaymentRepository handles payment persistence in MongoDB
type MongoPaymentRepository struct {
	coll *mongo.Collection
}

// NewPaymentRepository creates a new MongoPaymentRepository
func NewPaymentRepository(coll *mongo.Collection) *MongoPaymentRepository {
	return &MongoPaymentRepository{coll: coll}
}

// Create inserts a payment record
func (r *MongoPaymentRepository) Create(ctx context.Context, payment *models.Payment) (*models.InsertResult, error) {
	res, err := insertOne(ctx, r.coll, payment)
	if err != nil {
		logger.Error().Err(err).Str("transactionId", payment.TransactionID).Msg("Error inserting payment")
		return nil, fmt.Errorf("error creating payment: %w", err)
	}
	payment.ID = res.InsertedID
	return res, nil
}

// FindAll returns every payment, newest first
func (r *MongoPaymentRepository) FindAll(ctx context.Context) ([]models.Payment, error) {
	return findMany[models.Payment](ctx, r.coll, bson.D{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}

// FindByID returns the payment with the id as a list
func (r *MongoPaymentRepository) FindByID(ctx context.Context, id primitive.ObjectID) ([]models.Payment, error) {
	return findMany[models.Payment](ctx, r.coll, bson.D{{Key: "_id", Value: id}})
}

// FindLatestByEmail returns the user's most recent payment or nil
func (r *MongoPaymentRepository) FindLatestByEmail(ctx context.Context, email string) (*models.Payment, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})
	return findOne[models.Payment](ctx, r.coll, bson.D{{Key: "userEmail", Value: email}}, opts)
}

// CountByEmail counts a user's payments
func (r *MongoPaymentRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "userEmail", Value: email}})
	if err != nil {
		return 0, fmt.Errorf("error counting payments: %w", err)
	}
	return n, nil
}
