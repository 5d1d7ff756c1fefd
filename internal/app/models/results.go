package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// InsertResult is the acknowledgment of a single-document insert.
type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

// UpdateResult carries the match/modify counts of an update.
type UpdateResult struct {
	Acknowledged  bool                `json:"acknowledged"`
	MatchedCount  int64               `json:"matchedCount"`
	ModifiedCount int64               `json:"modifiedCount"`
	UpsertedCount int64               `json:"upsertedCount"`
	UpsertedID    *primitive.ObjectID `json:"upsertedId"`
}

// DeleteResult carries the number of removed documents.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// AdminStats is the dashboard summary for administrators.
type AdminStats struct {
	ApprovedClasses int64 `json:"approvedClasses"`
	PendingClasses  int64 `json:"pendingClasses"`
	Instructors     int64 `json:"instructors"`
	TotalClasses    int64 `json:"totalClasses"`
	TotalEnrolled   int64 `json:"totalEnrolled"`
}
