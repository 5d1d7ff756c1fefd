package helpers

import (
	"fmt"

	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsObjectID reports whether s is a 24 character hex object id.
func IsObjectID(s string) bool {
	return primitive.IsValidObjectID(s)
}

// ParseObjectID converts a hex string into an ObjectID, wrapping apperrors.ErrInvalidID on failure.
func ParseObjectID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", apperrors.ErrInvalidID, s)
	}
	return id, nil
}

// ParseObjectIDs converts every entry, dropping duplicates while keeping first-seen order.
func ParseObjectIDs(values []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(values))
	seen := make(map[primitive.ObjectID]struct{}, len(values))
	for _, v := range values {
		id, err := ParseObjectID(v)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
