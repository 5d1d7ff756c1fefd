package memory

import (
	"context"

	"github.com/yigit/fitnesshub/internal/app/models"
)

// AppliedRepository is the in-memory instructor application store
type AppliedRepository struct {
	s *Store
}

func (r *AppliedRepository) Create(_ context.Context, application *models.AppliedInstructor) (*models.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	application.ID = ensureID(application.ID)
	r.s.applied = append(r.s.applied, *application)
	return inserted(application.ID), nil
}

func (r *AppliedRepository) FindByEmail(_ context.Context, email string) ([]models.AppliedInstructor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.AppliedInstructor, 0)
	for _, a := range r.s.applied {
		if a.Email == email {
			out = append(out, a)
		}
	}
	return out, nil
}
