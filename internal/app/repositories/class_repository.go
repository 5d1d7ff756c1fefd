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

// MongoClassRepository handles class persistence in MongoDB
type MongoClassRepository struct {
	coll *mongo.Collection
}

// NewClassRepository creates a new MongoClassRepository
func NewClassRepository(coll *mongo.Collection) *MongoClassRepository {
	return &MongoClassRepository{coll: coll}
}

// Create inserts a class listing
func (r *MongoClassRepository) Create(ctx context.Context, class *models.Class) (*models.InsertResult, error) {
	res, err := insertOne(ctx, r.coll, class)
	if err != nil {
		logger.Error().Err(err).Str("name", class.Name).Msg("Error inserting class")
		return nil, fmt.Errorf("error creating class: %w", err)
	}
	class.ID = res.InsertedID
	return res, nil
}

// FindAll returns every class in natural order
func (r *MongoClassRepository) FindAll(ctx context.Context) ([]models.Class, error) {
	return findMany[models.Class](ctx, r.coll, bson.D{})
}

// FindByID returns a class or nil
func (r *MongoClassRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error) {
	return findOne[models.Class](ctx, r.coll, bson.D{{Key: "_id", Value: id}})
}

// FindByIDs returns the classes matching any of the ids
func (r *MongoClassRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Class, error) {
	return findMany[models.Class](ctx, r.coll, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}

// FindByStatus returns classes in the given review state
func (r *MongoClassRepository) FindByStatus(ctx context.Context, status models.ClassStatus) ([]models.Class, error) {
	return findMany[models.Class](ctx, r.coll, bson.D{{Key: "status", Value: status}})
}

// FindByInstructorEmail returns the classes an instructor owns
func (r *MongoClassRepository) FindByInstructorEmail(ctx context.Context, email string) ([]models.Class, error) {
	return findMany[models.Class](ctx, r.coll, bson.D{{Key: "instructorEmail", Value: email}})
}

// FindPopular returns the classes with the most enrollments
func (r *MongoClassRepository) FindPopular(ctx context.Context, limit int64) ([]models.Class, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "totalEnrolled", Value: -1}}).
		SetLimit(limit)
	return findMany[models.Class](ctx, r.coll, bson.D{}, opts)
}

// FindPopularInstructors sums enrollments per instructor and joins the matching user
func (r *MongoClassRepository) FindPopularInstructors(ctx context.Context, limit int64) ([]models.PopularInstructor, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$instructorEmail"},
			{Key: "totalEnrolled", Value: bson.D{{Key: "$sum", Value: "$totalEnrolled"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: UsersCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "email"},
			{Key: "as", Value: "instructor"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "instructor", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$instructor", 0}}}},
			{Key: "totalEnrolled", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "totalEnrolled", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	return aggregate[models.PopularInstructor](ctx, r.coll, pipeline)
}

// Replace sets every listing field, upserting when the id is unknown
func (r *MongoClassRepository) Replace(ctx context.Context, id primitive.ObjectID, class *models.Class) (*models.UpdateResult, error) {
	fields := *class
	fields.ID = primitive.NilObjectID

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: fields}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		logger.Error().Err(err).Str("classId", id.Hex()).Msg("Error updating class")
		return nil, fmt.Errorf("error updating class: %w", err)
	}
	return toUpdateResult(res), nil
}

// UpdateStatus sets status and reason without upserting
func (r *MongoClassRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus, reason string) (*models.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: status},
			{Key: "reason", Value: reason},
		}}},
		options.Update().SetUpsert(false),
	)
	if err != nil {
		logger.Error().Err(err).Str("classId", id.Hex()).Msg("Error updating class status")
		return nil, fmt.Errorf("error updating class status: %w", err)
	}
	return toUpdateResult(res), nil
}

// ReserveSeat is a conditional write: the filter only matches while a seat is left.
func (r *MongoClassRepository) ReserveSeat(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: id},
			{Key: "availableSeats", Value: bson.D{{Key: "$gt", Value: 0}}},
		},
		bson.D{{Key: "$inc", Value: bson.D{
			{Key: "availableSeats", Value: -1},
			{Key: "totalEnrolled", Value: 1},
		}}},
	)
	if err != nil {
		logger.Error().Err(err).Str("classId", id.Hex()).Msg("Error reserving seat")
		return false, fmt.Errorf("error reserving seat: %w", err)
	}
	return res.MatchedCount == 1, nil
}

// ReleaseSeat undoes ReserveSeat
func (r *MongoClassRepository) ReleaseSeat(ctx context.Context, id primitive.ObjectID) error {
	return r.AdjustEnrollment(ctx, id, -1)
}

// AdjustEnrollment applies delta to totalEnrolled and -delta to availableSeats
func (r *MongoClassRepository) AdjustEnrollment(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$inc", Value: bson.D{
			{Key: "totalEnrolled", Value: delta},
			{Key: "availableSeats", Value: -delta},
		}}},
	)
	if err != nil {
		logger.Error().Err(err).Str("classId", id.Hex()).Int("delta", delta).Msg("Error adjusting enrollment counters")
		return fmt.Errorf("error adjusting enrollment: %w", err)
	}
	return nil
}

// CorrectEnrollment is AdjustEnrollment guarded by the counter value the caller read.
// A concurrent checkout or rollback moves totalEnrolled and the filter stops matching.
func (r *MongoClassRepository) CorrectEnrollment(ctx context.Context, id primitive.ObjectID, observed, delta int) (bool, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "totalEnrolled", Value: observed},
	}
	if delta > 0 {
		filter = append(filter, bson.E{Key: "availableSeats", Value: bson.D{{Key: "$gte", Value: delta}}})
	}

	res, err := r.coll.UpdateOne(ctx, filter,
		bson.D{{Key: "$inc", Value: bson.D{
			{Key: "totalEnrolled", Value: delta},
			{Key: "availableSeats", Value: -delta},
		}}},
	)
	if err != nil {
		logger.Error().Err(err).Str("classId", id.Hex()).Int("delta", delta).Msg("Error correcting enrollment counters")
		return false, fmt.Errorf("error correcting enrollment: %w", err)
	}
	return res.MatchedCount == 1, nil
}

// Count returns the number of classes
func (r *MongoClassRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("error counting classes: %w", err)
	}
	return n, nil
}

// CountByStatus returns the number of classes in a review state
func (r *MongoClassRepository) CountByStatus(ctx context.Context, status models.ClassStatus) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "status", Value: status}})
	if err != nil {
		return 0, fmt.Errorf("error counting %s classes: %w", status, err)
	}
	return n, nil
}
