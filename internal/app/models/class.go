package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Class is a fitness class listing owned by an instructor.
// AvailableSeats and TotalEnrolled move in opposite directions on enrollment.
type Class struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Image           string             `json:"image" bson:"image"`
	AvailableSeats  int                `json:"availableSeats" bson:"availableSeats"`
	Price           float64            `json:"price" bson:"price"`
	VideoLink       string             `json:"videoLink" bson:"videoLink"`
	Description     string             `json:"description" bson:"description"`
	InstructorName  string             `json:"instructorName" bson:"instructorName"`
	InstructorEmail string             `json:"instructorEmail" bson:"instructorEmail"`
	Status          ClassStatus        `json:"status" bson:"status"`
	Submitted       string             `json:"submitted" bson:"submitted"`
	TotalEnrolled   int                `json:"totalEnrolled" bson:"totalEnrolled"`
	Reason          string             `json:"reason" bson:"reason"`
}

// PopularInstructor is one row of the popular instructors view.
type PopularInstructor struct {
	Instructor    *User `json:"instructor,omitempty" bson:"instructor,omitempty"`
	TotalEnrolled int   `json:"totalEnrolled" bson:"totalEnrolled"`
}
