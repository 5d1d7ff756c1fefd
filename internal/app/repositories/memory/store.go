// Package memory is an in-process implementation of every repository interface.
// It backs the "memory" database driver and the handler and service tests.
package memory

import (
	"sync"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store keeps every collection in insertion order behind one lock,
// so the joined views see a consistent snapshot.
type Store struct {
	mu          sync.RWMutex
	classes     []models.Class
	users       []models.User
	cart        []models.CartItem
	payments    []models.Payment
	enrollments []models.Enrollment
	applied     []models.AppliedInstructor
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Classes:     &ClassRepository{s: s},
		Users:       &UserRepository{s: s},
		Cart:        &CartRepository{s: s},
		Payments:    &PaymentRepository{s: s},
		Enrollments: &EnrollmentRepository{s: s},
		Applied:     &AppliedRepository{s: s},
	}
}

// NewRepositories is shorthand for NewStore().Repositories()
func NewRepositories() *repositories.Repositories {
	return NewStore().Repositories()
}

func ensureID(id primitive.ObjectID) primitive.ObjectID {
	if id.IsZero() {
		return primitive.NewObjectID()
	}
	return id
}

func inserted(id primitive.ObjectID) *models.InsertResult {
	return &models.InsertResult{Acknowledged: true, InsertedID: id}
}

func cloneUser(u models.User) models.User {
	if u.Skills != nil {
		skills := *u.Skills
		u.Skills = &skills
	}
	return u
}

func clonePayment(p models.Payment) models.Payment {
	p.ClassID = append([]string(nil), p.ClassID...)
	return p
}

func cloneEnrollment(e models.Enrollment) models.Enrollment {
	e.ClassID = append([]primitive.ObjectID(nil), e.ClassID...)
	return e
}

var (
	_ repositories.ClassRepository      = (*ClassRepository)(nil)
	_ repositories.UserRepository       = (*UserRepository)(nil)
	_ repositories.CartRepository       = (*CartRepository)(nil)
	_ repositories.PaymentRepository    = (*PaymentRepository)(nil)
	_ repositories.EnrollmentRepository = (*EnrollmentRepository)(nil)
	_ repositories.AppliedRepository    = (*AppliedRepository)(nil)
)
