package memory

import (
	"context"
	"sort"

	"github.com/yigit/fitnesshub/internal/app/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassRepository is the in-memory class store
type ClassRepository struct {
	s *Store
}

func (r *ClassRepository) Create(_ context.Context, class *models.Class) (*models.InsertResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	class.ID = ensureID(class.ID)
	r.s.classes = append(r.s.classes, *class)
	return inserted(class.ID), nil
}

func (r *ClassRepository) FindAll(_ context.Context) ([]models.Class, error) {
	return r.filter(func(models.Class) bool { return true }), nil
}

func (r *ClassRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		class := r.s.classes[i]
		return &class, nil
	}
	return nil, nil
}

func (r *ClassRepository) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Class, error) {
	wanted := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return r.filter(func(c models.Class) bool {
		_, ok := wanted[c.ID]
		return ok
	}), nil
}

func (r *ClassRepository) FindByStatus(_ context.Context, status models.ClassStatus) ([]models.Class, error) {
	return r.filter(func(c models.Class) bool { return c.Status == status }), nil
}

func (r *ClassRepository) FindByInstructorEmail(_ context.Context, email string) ([]models.Class, error) {
	return r.filter(func(c models.Class) bool { return c.InstructorEmail == email }), nil
}

func (r *ClassRepository) FindPopular(_ context.Context, limit int64) ([]models.Class, error) {
	classes := r.filter(func(models.Class) bool { return true })
	sort.SliceStable(classes, func(i, j int) bool {
		return classes[i].TotalEnrolled > classes[j].TotalEnrolled
	})
	if limit > 0 && int64(len(classes)) > limit {
		classes = classes[:limit]
	}
	return classes, nil
}

func (r *ClassRepository) FindPopularInstructors(_ context.Context, limit int64) ([]models.PopularInstructor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var order []string
	totals := make(map[string]int)
	for _, c := range r.s.classes {
		if _, seen := totals[c.InstructorEmail]; !seen {
			order = append(order, c.InstructorEmail)
		}
		totals[c.InstructorEmail] += c.TotalEnrolled
	}

	rows := make([]models.PopularInstructor, 0, len(order))
	for _, email := range order {
		row := models.PopularInstructor{TotalEnrolled: totals[email]}
		for _, u := range r.s.users {
			if u.Email == email {
				user := cloneUser(u)
				row.Instructor = &user
				break
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalEnrolled > rows[j].TotalEnrolled
	})
	if limit > 0 && int64(len(rows)) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *ClassRepository) Replace(_ context.Context, id primitive.ObjectID, class *models.Class) (*models.UpdateResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	next := *class
	next.ID = id

	i := r.indexOf(id)
	if i < 0 {
		r.s.classes = append(r.s.classes, next)
		return &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &id}, nil
	}

	res := &models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if r.s.classes[i] != next {
		r.s.classes[i] = next
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *ClassRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ClassStatus, reason string) (*models.UpdateResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := &models.UpdateResult{Acknowledged: true}
	i := r.indexOf(id)
	if i < 0 {
		return res, nil
	}

	res.MatchedCount = 1
	c := &r.s.classes[i]
	if c.Status != status || c.Reason != reason {
		c.Status = status
		c.Reason = reason
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *ClassRepository) ReserveSeat(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 || r.s.classes[i].AvailableSeats <= 0 {
		return false, nil
	}
	r.s.classes[i].AvailableSeats--
	r.s.classes[i].TotalEnrolled++
	return true, nil
}

func (r *ClassRepository) ReleaseSeat(ctx context.Context, id primitive.ObjectID) error {
	return r.AdjustEnrollment(ctx, id, -1)
}

func (r *ClassRepository) AdjustEnrollment(_ context.Context, id primitive.ObjectID, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.s.classes[i].TotalEnrolled += delta
		r.s.classes[i].AvailableSeats -= delta
	}
	return nil
}

func (r *ClassRepository) CorrectEnrollment(_ context.Context, id primitive.ObjectID, observed, delta int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	class := &r.s.classes[i]
	if class.TotalEnrolled != observed || (delta > 0 && class.AvailableSeats < delta) {
		return false, nil
	}
	class.TotalEnrolled += delta
	class.AvailableSeats -= delta
	return true, nil
}

func (r *ClassRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.classes)), nil
}

func (r *ClassRepository) CountByStatus(_ context.Context, status models.ClassStatus) (int64, error) {
	return int64(len(r.filter(func(c models.Class) bool { return c.Status == status }))), nil
}

// indexOf expects the caller to hold the lock
func (r *ClassRepository) indexOf(id primitive.ObjectID) int {
	for i := range r.s.classes {
		if r.s.classes[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *ClassRepository) filter(keep func(models.Class) bool) []models.Class {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Class, 0)
	for _, c := range r.s.classes {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
