package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents a registered account. Email is unique.
type User struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Role     RoleType           `json:"role" bson:"role"`
	Address  string             `json:"address" bson:"address"`
	Gender   string             `json:"gender" bson:"gender"`
	Phone    string             `json:"phone" bson:"phone"`
	About    string             `json:"about" bson:"about"`
	PhotoURL string             `json:"photoUrl" bson:"photoUrl"`
	Skills   *string            `json:"skills" bson:"skills"`
}

// HasRole checks whether the user holds the given role
func (u *User) HasRole(role RoleType) bool {
	return u != nil && u.Role == role
}
