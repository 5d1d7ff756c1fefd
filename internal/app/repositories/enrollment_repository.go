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

// MongoEnrollmentRepository handles enrollment persistence in MongoDB
type MongoEnrollmentRepository struct {
	coll *mongo.Collection
}

// NewEnrollmentRepository creates a new MongoEnrollmentRepository
func NewEnrollmentRepository(coll *mongo.Collection) *MongoEnrollmentRepository {
	return &MongoEnrollmentRepository{coll: coll}
}

// Create inserts an enrollment record
func (r *MongoEnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (*models.InsertResult, error) {
	res, err := insertOne(ctx, r.coll, enrollment)
	if err != nil {
		logger.Error().Err(err).Str("userEmail", enrollment.UserEmail).Msg("Error inserting enrollment")
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}
	enrollment.ID = res.InsertedID
	return res, nil
}

// Delete removes an enrollment record
func (r *MongoEnrollmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		logger.Error().Err(err).Str("enrollmentId", id.Hex()).Msg("Error deleting enrollment")
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	return nil
}

// Count returns the number of enrollment records
func (r *MongoEnrollmentRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return n, nil
}

// FindEnrolledClasses joins each enrolled class of the user with its instructor
func (r *MongoEnrollmentRepository) FindEnrolledClasses(ctx context.Context, email string) ([]models.EnrolledClass, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userEmail", Value: email}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: ClassesCollection},
			{Key: "localField", Value: "classID"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "classes"},
		}}},
		{{Key: "$unwind", Value: "$classes"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: UsersCollection},
			{Key: "localField", Value: "classes.instructorEmail"},
			{Key: "foreignField", Value: "email"},
			{Key: "as", Value: "instructor"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "classes", Value: 1},
			{Key: "instructor", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$instructor", 0}}}},
		}}},
	}
	return aggregate[models.EnrolledClass](ctx, r.coll, pipeline)
}

// CountByClass counts enrollment records per referenced class
func (r *MongoEnrollmentRepository) CountByClass(ctx context.Context) (map[primitive.ObjectID]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$classID"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$classID"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	type classCount struct {
		ClassID primitive.ObjectID `bson:"_id"`
		Count   int                `bson:"count"`
	}
	rows, err := aggregate[classCount](ctx, r.coll, pipeline)
	if err != nil {
		return nil, err
	}

	counts := make(map[primitive.ObjectID]int, len(rows))
	for _, row := range rows {
		counts[row.ClassID] = row.Count
	}
	return counts, nil
}
