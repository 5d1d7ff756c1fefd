package services

import (
	"github.com/yigit/fitnesshub/internal/app/repositories"
	"github.com/yigit/fitnesshub/internal/pkg/payment"
	"github.com/yigit/fitnesshub/internal/pkg/websocket"
)

// Popular views are capped at six rows.
const popularLimit = 6

// ClassFeed receives class changes for live subscribers
type ClassFeed interface {
	PublishClassEvent(event websocket.ClassEvent)
}

type noopFeed struct{}

func (noopFeed) PublishClassEvent(websocket.ClassEvent) {}

// Services groups every service the controllers depend on
type Services struct {
	Classes     ClassService
	Cart        CartService
	Payments    PaymentService
	Checkout    CheckoutService
	Enrollments EnrollmentService
	Users       UserService
	Instructors InstructorService
	Admin       AdminService
}

// NewServices wires the services over one set of repositories. A nil feed disables live updates.
func NewServices(repos *repositories.Repositories, gateway payment.Gateway, currency string, feed ClassFeed) *Services {
	return &Services{
		Classes:     NewClassService(repos.Classes, feed),
		Cart:        NewCartService(repos.Cart, repos.Classes),
		Payments:    NewPaymentService(repos.Payments, gateway, currency),
		Checkout:    NewCheckoutService(repos, feed),
		Enrollments: NewEnrollmentService(repos.Enrollments),
		Users:       NewUserService(repos.Users),
		Instructors: NewInstructorService(repos.Users, repos.Applied),
		Admin:       NewAdminService(repos),
	}
}
