package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestReserveSeatNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	class := &models.Class{Name: "Spin", AvailableSeats: 3}
	_, err := repos.Classes.Create(ctx, class)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	taken := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repos.Classes.ReserveSeat(ctx, class.ID)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				taken++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	got, err := repos.Classes.FindByID(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, taken)
	assert.Equal(t, 0, got.AvailableSeats)
	assert.Equal(t, 3, got.TotalEnrolled)

	require.NoError(t, repos.Classes.ReleaseSeat(ctx, class.ID))
	got, _ = repos.Classes.FindByID(ctx, class.ID)
	assert.Equal(t, 1, got.AvailableSeats)
	assert.Equal(t, 2, got.TotalEnrolled)
}

func TestUserEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	_, err := repos.Users.Create(ctx, &models.User{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = repos.Users.Create(ctx, &models.User{Name: "Other Ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestUserReplaceUpserts(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	id := primitive.NewObjectID()

	res, err := repos.Users.Replace(ctx, id, &models.User{Name: "Bo", Email: "bo@example.com", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.UpsertedCount)
	require.NotNil(t, res.UpsertedID)
	assert.Equal(t, id, *res.UpsertedID)

	res, err = repos.Users.Replace(ctx, id, &models.User{Name: "Bo", Email: "bo@example.com", Role: models.RoleInstructor})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
	assert.Equal(t, int64(1), res.ModifiedCount)

	user, err := repos.Users.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, user.Role)
}

func TestPopularInstructorsGroupsAndJoins(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	_, _ = repos.Users.Create(ctx, &models.User{Name: "Kim", Email: "kim@example.com", Role: models.RoleInstructor})
	_, _ = repos.Classes.Create(ctx, &models.Class{Name: "Yoga", InstructorEmail: "kim@example.com", TotalEnrolled: 4})
	_, _ = repos.Classes.Create(ctx, &models.Class{Name: "Pilates", InstructorEmail: "kim@example.com", TotalEnrolled: 3})
	_, _ = repos.Classes.Create(ctx, &models.Class{Name: "Boxing", InstructorEmail: "ghost@example.com", TotalEnrolled: 5})

	rows, err := repos.Classes.FindPopularInstructors(ctx, 6)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 7, rows[0].TotalEnrolled)
	require.NotNil(t, rows[0].Instructor)
	assert.Equal(t, "Kim", rows[0].Instructor.Name)
	assert.Equal(t, 5, rows[1].TotalEnrolled)
	assert.Nil(t, rows[1].Instructor)
}

func TestEnrolledClassesJoinsInstructor(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	_, _ = repos.Users.Create(ctx, &models.User{Name: "Kim", Email: "kim@example.com"})
	yoga := &models.Class{Name: "Yoga", InstructorEmail: "kim@example.com"}
	box := &models.Class{Name: "Boxing", InstructorEmail: "lee@example.com"}
	_, _ = repos.Classes.Create(ctx, yoga)
	_, _ = repos.Classes.Create(ctx, box)
	_, _ = repos.Enrollments.Create(ctx, &models.Enrollment{
		UserEmail: "ana@example.com",
		ClassID:   []primitive.ObjectID{yoga.ID, box.ID},
		Date:      time.Now(),
	})

	rows, err := repos.Enrollments.FindEnrolledClasses(ctx, "ana@example.com")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Yoga", rows[0].Classes.Name)
	require.NotNil(t, rows[0].Instructor)
	assert.Equal(t, "Kim", rows[0].Instructor.Name)
	assert.Nil(t, rows[1].Instructor)

	counts, err := repos.Enrollments.CountByClass(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[yoga.ID])
	assert.Equal(t, 1, counts[box.ID])
}

func TestLatestPaymentByDate(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	now := time.Now()

	_, _ = repos.Payments.Create(ctx, &models.Payment{UserEmail: "ana@example.com", TransactionID: "old", Date: now.Add(-time.Hour)})
	_, _ = repos.Payments.Create(ctx, &models.Payment{UserEmail: "ana@example.com", TransactionID: "new", Date: now})
	_, _ = repos.Payments.Create(ctx, &models.Payment{UserEmail: "bo@example.com", TransactionID: "other", Date: now.Add(time.Hour)})

	latest, err := repos.Payments.FindLatestByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "new", latest.TransactionID)

	none, err := repos.Payments.FindLatestByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}
