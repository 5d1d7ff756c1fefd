package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a (userEmail, classID) pair awaiting checkout.
type CartItem struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ClassID   string             `json:"classID" bson:"classID"`
	UserEmail string             `json:"userEmail" bson:"userEmail"`
	Date      time.Time          `json:"date" bson:"date"`
}
