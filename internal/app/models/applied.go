package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppliedInstructor is a pending instructor application. Reviewed out of band.
type AppliedInstructor struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Experience string             `json:"experience" bson:"experience"`
	PhotoURL   string             `json:"photoUrl" bson:"photoUrl"`
	Date       time.Time          `json:"date" bson:"date"`
}
