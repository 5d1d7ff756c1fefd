package memory

import (
	"context"

	"github.com/yigit/fitnesshub/internal/app/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartRepository is the in-memory cart store
type CartRepository struct {
	s *Store
}

func (r *CartRepository) Create(_ context.Context, item *models.CartItem) (*models.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item.ID = ensureID(item.ID)
	r.s.cart = append(r.s.cart, *item)
	return inserted(item.ID), nil
}

func (r *CartRepository) InsertMany(_ context.Context, items []models.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, item := range items {
		item.ID = ensureID(item.ID)
		r.s.cart = append(r.s.cart, item)
	}
	return nil
}

func (r *CartRepository) FindByID(_ context.Context, id primitive.ObjectID) ([]models.CartItem, error) {
	return r.filter(func(c models.CartItem) bool { return c.ID == id }), nil
}

func (r *CartRepository) FindByUserEmail(_ context.Context, email string) ([]models.CartItem, error) {
	return r.filter(func(c models.CartItem) bool { return c.UserEmail == email }), nil
}

func (r *CartRepository) FindByUserAndClasses(_ context.Context, email string, classIDs []string) ([]models.CartItem, error) {
	return r.filter(userClasses(email, classIDs)), nil
}

func (r *CartRepository) Delete(_ context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	return r.remove(func(c models.CartItem) bool { return c.ID == id }, 1), nil
}

func (r *CartRepository) DeleteByUserAndClasses(_ context.Context, email string, classIDs []string) (*models.DeleteResult, error) {
	return r.remove(userClasses(email, classIDs), -1), nil
}

// remove deletes up to limit matching entries; a negative limit removes all.
func (r *CartRepository) remove(match func(models.CartItem) bool, limit int) *models.DeleteResult {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := &models.DeleteResult{Acknowledged: true}
	kept := r.s.cart[:0]
	for _, item := range r.s.cart {
		if (limit < 0 || res.DeletedCount < int64(limit)) && match(item) {
			res.DeletedCount++
			continue
		}
		kept = append(kept, item)
	}
	r.s.cart = kept
	return res
}

func (r *CartRepository) filter(keep func(models.CartItem) bool) []models.CartItem {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.CartItem, 0)
	for _, item := range r.s.cart {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func userClasses(email string, classIDs []string) func(models.CartItem) bool {
	wanted := make(map[string]struct{}, len(classIDs))
	for _, id := range classIDs {
		wanted[id] = struct{}{}
	}
	return func(c models.CartItem) bool {
		_, ok := wanted[c.ClassID]
		return ok && c.UserEmail == email
	}
}
