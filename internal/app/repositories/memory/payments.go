package memory

import (
	"context"
	"sort"

	"github.com/yigit/fitnesshub/internal/app/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentRepository is the in-memory payment store
type PaymentRepository struct {
	s *Store
}

func (r *PaymentRepository) Create(_ context.Context, payment *models.Payment) (*models.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	payment.ID = ensureID(payment.ID)
	r.s.payments = append(r.s.payments, clonePayment(*payment))
	return inserted(payment.ID), nil
}

func (r *PaymentRepository) FindAll(_ context.Context) ([]models.Payment, error) {
	payments := r.filter(func(models.Payment) bool { return true })
	sortNewestFirst(payments)
	return payments, nil
}

func (r *PaymentRepository) FindByID(_ context.Context, id primitive.ObjectID) ([]models.Payment, error) {
	return r.filter(func(p models.Payment) bool { return p.ID == id }), nil
}

func (r *PaymentRepository) FindLatestByEmail(_ context.Context, email string) (*models.Payment, error) {
	payments := r.filter(func(p models.Payment) bool { return p.UserEmail == email })
	if len(payments) == 0 {
		return nil, nil
	}
	sortNewestFirst(payments)
	return &payments[0], nil
}

func (r *PaymentRepository) CountByEmail(_ context.Context, email string) (int64, error) {
	return int64(len(r.filter(func(p models.Payment) bool { return p.UserEmail == email }))), nil
}

func (r *PaymentRepository) filter(keep func(models.Payment) bool) []models.Payment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Payment, 0)
	for _, p := range r.s.payments {
		if keep(p) {
			out = append(out, clonePayment(p))
		}
	}
	return out
}

func sortNewestFirst(payments []models.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date.After(payments[j].Date)
	})
}
