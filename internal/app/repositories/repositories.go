package repositories

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names
const (
	ClassesCollection     = "classes"
	UsersCollection       = "users"
	CartCollection        = "cart"
	PaymentsCollection    = "payments"
	EnrollmentsCollection = "enrolled"
	AppliedCollection     = "applied"
)

// Repositories holds every store handle. It is built once at startup and injected.
type Repositories struct {
	Classes     ClassRepository
	Users       UserRepository
	Cart        CartRepository
	Payments    PaymentRepository
	Enrollments EnrollmentRepository
	Applied     AppliedRepository
}

// NewRepositories initializes the Mongo-backed repositories
func NewRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Classes:     NewClassRepository(db.Collection(ClassesCollection)),
		Users:       NewUserRepository(db.Collection(UsersCollection)),
		Cart:        NewCartRepository(db.Collection(CartCollection)),
		Payments:    NewPaymentRepository(db.Collection(PaymentsCollection)),
		Enrollments: NewEnrollmentRepository(db.Collection(EnrollmentsCollection)),
		Applied:     NewAppliedRepository(db.Collection(AppliedCollection)),
	}
}

var (
	_ ClassRepository      = (*MongoClassRepository)(nil)
	_ UserRepository       = (*MongoUserRepository)(nil)
	_ CartRepository       = (*MongoCartRepository)(nil)
	_ PaymentRepository    = (*MongoPaymentRepository)(nil)
	_ EnrollmentRepository = (*MongoEnrollmentRepository)(nil)
	_ AppliedRepository    = (*MongoAppliedRepository)(nil)
)
