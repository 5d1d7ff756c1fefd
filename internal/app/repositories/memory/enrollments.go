package memory

import (
	"context"

	"github.com/yigit/fitnesshub/internal/app/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrollmentRepository is the in-memory enrollment store
type EnrollmentRepository struct {
	s *Store
}

func (r *EnrollmentRepository) Create(_ context.Context, enrollment *models.Enrollment) (*models.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	enrollment.ID = ensureID(enrollment.ID)
	r.s.enrollments = append(r.s.enrollments, cloneEnrollment(*enrollment))
	return inserted(enrollment.ID), nil
}

func (r *EnrollmentRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.enrollments {
		if r.s.enrollments[i].ID == id {
			r.s.enrollments = append(r.s.enrollments[:i], r.s.enrollments[i+1:]...)
			break
		}
	}
	return nil
}

func (r *EnrollmentRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.enrollments)), nil
}

// FindEnrolledClasses mirrors the lookup/unwind pipeline: one row per matched class,
// in class store order, with the first user whose email matches the instructor.
func (r *EnrollmentRepository) FindEnrolledClasses(_ context.Context, email string) ([]models.EnrolledClass, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.EnrolledClass, 0)
	for _, e := range r.s.enrollments {
		if e.UserEmail != email {
			continue
		}
		ids := make(map[primitive.ObjectID]struct{}, len(e.ClassID))
		for _, id := range e.ClassID {
			ids[id] = struct{}{}
		}
		for _, c := range r.s.classes {
			if _, ok := ids[c.ID]; !ok {
				continue
			}
			row := models.EnrolledClass{Classes: c}
			for _, u := range r.s.users {
				if u.Email == c.InstructorEmail {
					user := cloneUser(u)
					row.Instructor = &user
					break
				}
			}
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *EnrollmentRepository) CountByClass(_ context.Context) (map[primitive.ObjectID]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[primitive.ObjectID]int)
	for _, e := range r.s.enrollments {
		for _, id := range e.ClassID {
			counts[id]++
		}
	}
	return counts, nil
}
