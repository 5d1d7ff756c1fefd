package dberrors

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// IsDuplicateKeyError reports whether err is a unique index violation (E11000).
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// IsNoDocuments reports whether err signals an empty single-document result.
func IsNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// IsTimeout reports whether err is a driver or network timeout.
func IsTimeout(err error) bool {
	return mongo.IsTimeout(err)
}
