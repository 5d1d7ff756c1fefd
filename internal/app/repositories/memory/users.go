package memory

import (
	"context"
	"reflect"

	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository is the in-memory user store. Emails are unique.
type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, user *models.User) (*models.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(user.Email, primitive.NilObjectID) {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	user.ID = ensureID(user.ID)
	r.s.users = append(r.s.users, cloneUser(*user))
	return inserted(user.ID), nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]models.User, error) {
	return r.filter(func(models.User) bool { return true }), nil
}

func (r *UserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.first(func(u models.User) bool { return u.ID == id }), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.first(func(u models.User) bool { return u.Email == email }), nil
}

func (r *UserRepository) FindByRole(_ context.Context, role models.RoleType) ([]models.User, error) {
	return r.filter(func(u models.User) bool { return u.Role == role }), nil
}

func (r *UserRepository) CountByRole(_ context.Context, role models.RoleType) (int64, error) {
	return int64(len(r.filter(func(u models.User) bool { return u.Role == role }))), nil
}

func (r *UserRepository) Replace(_ context.Context, id primitive.ObjectID, user *models.User) (*models.UpdateResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(user.Email, id) {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	next := cloneUser(*user)
	next.ID = id

	res := &models.UpdateResult{Acknowledged: true}
	for i := range r.s.users {
		if r.s.users[i].ID != id {
			continue
		}
		res.MatchedCount++
		if !reflect.DeepEqual(r.s.users[i], next) {
			r.s.users[i] = next
			res.ModifiedCount++
		}
	}

	if res.MatchedCount == 0 {
		r.s.users = append(r.s.users, next)
		res.UpsertedCount = 1
		res.UpsertedID = &id
	}
	return res, nil
}

func (r *UserRepository) Delete(_ context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := &models.DeleteResult{Acknowledged: true}
	for i := range r.s.users {
		if r.s.users[i].ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			res.DeletedCount = 1
			break
		}
	}
	return res, nil
}

// emailTaken expects the caller to hold the lock
func (r *UserRepository) emailTaken(email string, except primitive.ObjectID) bool {
	if email == "" {
		return false
	}
	for _, u := range r.s.users {
		if u.Email == email && u.ID != except {
			return true
		}
	}
	return false
}

func (r *UserRepository) first(match func(models.User) bool) *models.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			user := cloneUser(u)
			return &user
		}
	}
	return nil
}

func (r *UserRepository) filter(keep func(models.User) bool) []models.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.User, 0)
	for _, u := range r.s.users {
		if keep(u) {
			out = append(out, cloneUser(u))
		}
	}
	return out
}
