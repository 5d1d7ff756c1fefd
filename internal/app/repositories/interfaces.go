package repositories

import (
	"context"

	"github.com/yigit/fitnesshub/internal/app/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Single-document lookups return (nil, nil) when nothing matches.

// ClassRepository stores class listings and their seat counters.
type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) (*models.InsertResult, error)
	FindAll(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Class, error)
	FindByStatus(ctx context.Context, status models.ClassStatus) ([]models.Class, error)
	FindByInstructorEmail(ctx context.Context, email string) ([]models.Class, error)
	FindPopular(ctx context.Context, limit int64) ([]models.Class, error)
	FindPopularInstructors(ctx context.Context, limit int64) ([]models.PopularInstructor, error)
	// Replace sets every listing field on the class, inserting it when the id is unknown.
	Replace(ctx context.Context, id primitive.ObjectID, class *models.Class) (*models.UpdateResult, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus, reason string) (*models.UpdateResult, error)
	// ReserveSeat takes one seat only while availableSeats > 0. It reports whether a seat was taken.
	ReserveSeat(ctx context.Context, id primitive.ObjectID) (bool, error)
	ReleaseSeat(ctx context.Context, id primitive.ObjectID) error
	// AdjustEnrollment adds delta to totalEnrolled and subtracts it from availableSeats.
	AdjustEnrollment(ctx context.Context, id primitive.ObjectID, delta int) error
	// CorrectEnrollment applies delta like AdjustEnrollment, but only while totalEnrolled still
	// equals observed and availableSeats stays at or above 0. It reports whether the write matched.
	CorrectEnrollment(ctx context.Context, id primitive.ObjectID, observed, delta int) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.ClassStatus) (int64, error)
}

// UserRepository stores accounts keyed by a unique email.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.InsertResult, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByRole(ctx context.Context, role models.RoleType) ([]models.User, error)
	CountByRole(ctx context.Context, role models.RoleType) (int64, error)
	// Replace sets the profile fields on every user with the id, upserting when absent.
	Replace(ctx context.Context, id primitive.ObjectID, user *models.User) (*models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error)
}

// CartRepository stores pending (userEmail, classID) pairs.
type CartRepository interface {
	Create(ctx context.Context, item *models.CartItem) (*models.InsertResult, error)
	InsertMany(ctx context.Context, items []models.CartItem) error
	FindByID(ctx context.Context, id primitive.ObjectID) ([]models.CartItem, error)
	FindByUserEmail(ctx context.Context, email string) ([]models.CartItem, error)
	FindByUserAndClasses(ctx context.Context, email string, classIDs []string) ([]models.CartItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error)
	DeleteByUserAndClasses(ctx context.Context, email string, classIDs []string) (*models.DeleteResult, error)
}

// PaymentRepository stores completed payments. Records are never updated.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) (*models.InsertResult, error)
	FindAll(ctx context.Context) ([]models.Payment, error)
	FindByID(ctx context.Context, id primitive.ObjectID) ([]models.Payment, error)
	FindLatestByEmail(ctx context.Context, email string) (*models.Payment, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
}

// EnrollmentRepository stores enrollment records and the joined enrolled-classes view.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) (*models.InsertResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	FindEnrolledClasses(ctx context.Context, email string) ([]models.EnrolledClass, error)
	// CountByClass returns how many enrollment records reference each class.
	CountByClass(ctx context.Context) (map[primitive.ObjectID]int, error)
}

// AppliedRepository stores instructor applications.
type AppliedRepository interface {
	Create(ctx context.Context, application *models.AppliedInstructor) (*models.InsertResult, error)
	FindByEmail(ctx context.Context, email string) ([]models.AppliedInstructor, error)
}
