package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enrollment links a user to the classes bought in one checkout.
type Enrollment struct {
	ID            primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	UserEmail     string               `json:"userEmail" bson:"userEmail"`
	ClassID       []primitive.ObjectID `json:"classID" bson:"classID"`
	TransactionID string               `json:"transactionID" bson:"transactionID"`
	Date          time.Time            `json:"date" bson:"date"`
}

// EnrolledClass is one class of a user's enrollments with its instructor joined in.
type EnrolledClass struct {
	Classes    Class `json:"classes" bson:"classes"`
	Instructor *User `json:"instructor,omitempty" bson:"instructor,omitempty"`
}
