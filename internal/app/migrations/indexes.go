package migrations

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/fitnesshub/internal/app/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpec is one index on one collection
type IndexSpec struct {
	Collection string
	Name       string
	Keys       bson.D
	Unique     bool
}

// Indexes lists every index the application expects
var Indexes = []IndexSpec{
	{Collection: repositories.UsersCollection, Name: "users_email_unique", Keys: bson.D{{Key: "email", Value: 1}}, Unique: true},
	{Collection: repositories.ClassesCollection, Name: "classes_status", Keys: bson.D{{Key: "status", Value: 1}}},
	{Collection: repositories.ClassesCollection, Name: "classes_instructor_email", Keys: bson.D{{Key: "instructorEmail", Value: 1}}},
	{Collection: repositories.ClassesCollection, Name: "classes_total_enrolled", Keys: bson.D{{Key: "totalEnrolled", Value: -1}}},
	{Collection: repositories.CartCollection, Name: "cart_user_email", Keys: bson.D{{Key: "userEmail", Value: 1}}},
	{Collection: repositories.PaymentsCollection, Name: "payments_user_email_date", Keys: bson.D{{Key: "userEmail", Value: 1}, {Key: "date", Value: -1}}},
	{Collection: repositories.EnrollmentsCollection, Name: "enrolled_user_email", Keys: bson.D{{Key: "userEmail", Value: 1}}},
	{Collection: repositories.AppliedCollection, Name: "applied_email", Keys: bson.D{{Key: "email", Value: 1}}},
}

// Migrator manages index creation
type Migrator struct {
	db     *mongo.Database
	logger zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *mongo.Database, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger,
	}
}

// Migrate creates every index in Indexes. Creating an existing index with the
// same options is a no-op on the server, so it is safe on every startup.
func (m *Migrator) Migrate(ctx context.Context) error {
	for _, spec := range Indexes {
		model := mongo.IndexModel{
			Keys:    spec.Keys,
			Options: options.Index().SetName(spec.Name).SetUnique(spec.Unique),
		}

		if _, err := m.db.Collection(spec.Collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index %s on %s: %w", spec.Name, spec.Collection, err)
		}
		m.logger.Debug().Str("collection", spec.Collection).Str("index", spec.Name).Msg("Index ensured")
	}

	m.logger.Info().Int("count", len(Indexes)).Msg("Indexes applied")
	return nil
}
