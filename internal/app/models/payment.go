package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a completed gateway transaction. Immutable once written.
type Payment struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserName      string             `json:"userName" bson:"userName"`
	UserEmail     string             `json:"userEmail" bson:"userEmail"`
	ClassID       []string           `json:"classID" bson:"classID"`
	TransactionID string             `json:"transactionID" bson:"transactionID"`
	Price         float64            `json:"price" bson:"price"`
	Quantity      int                `json:"quantity" bson:"quantity"`
	PaymentStatus string             `json:"paymentStatus" bson:"paymentStatus"`
	Date          time.Time          `json:"date" bson:"date"`
}
