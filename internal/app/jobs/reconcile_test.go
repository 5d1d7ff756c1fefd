package jobs

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/repositories"
	"github.com/yigit/fitnesshub/internal/app/repositories/memory"
	"github.com/yigit/fitnesshub/internal/app/services"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRunOnceCorrectsDrift(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	drifted := &models.Class{Name: "Yoga", AvailableSeats: 10, TotalEnrolled: 5, Status: models.ClassStatusApproved}
	inSync := &models.Class{Name: "Boxing", AvailableSeats: 4, TotalEnrolled: 1, Status: models.ClassStatusApproved}
	res, err := repos.Classes.Create(ctx, drifted)
	require.NoError(t, err)
	driftedID := res.InsertedID
	res, err = repos.Classes.Create(ctx, inSync)
	require.NoError(t, err)
	inSyncID := res.InsertedID

	_, err = repos.Enrollments.Create(ctx, &models.Enrollment{UserEmail: "a@x.io", ClassID: []primitive.ObjectID{driftedID, inSyncID}})
	require.NoError(t, err)
	_, err = repos.Enrollments.Create(ctx, &models.Enrollment{UserEmail: "b@x.io", ClassID: []primitive.ObjectID{driftedID}})
	require.NoError(t, err)

	r := NewEnrollmentReconciler(repos.Classes, repos.Enrollments, zerolog.Nop())
	adjusted, err := r.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, adjusted, "first sighting only records the drift")

	got, err := repos.Classes.FindByID(ctx, driftedID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalEnrolled)

	adjusted, err = r.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, adjusted)

	got, err = repos.Classes.FindByID(ctx, driftedID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalEnrolled)
	assert.Equal(t, 13, got.AvailableSeats, "capacity is preserved")

	got, err = repos.Classes.FindByID(ctx, inSyncID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalEnrolled)
	assert.Equal(t, 4, got.AvailableSeats)

	adjusted, err = r.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, adjusted)
}

// enrollmentsWithHook runs hook right before each enrollment insert
type enrollmentsWithHook struct {
	repositories.EnrollmentRepository
	hook func()
}

func (e enrollmentsWithHook) Create(ctx context.Context, enrollment *models.Enrollment) (*models.InsertResult, error) {
	e.hook()
	return e.EnrollmentRepository.Create(ctx, enrollment)
}

func TestRunOnceDuringCheckoutKeepsSeatReserved(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	class := &models.Class{Name: "Spin", AvailableSeats: 1, Status: models.ClassStatusApproved}
	_, err := repos.Classes.Create(ctx, class)
	require.NoError(t, err)

	r := NewEnrollmentReconciler(repos.Classes, repos.Enrollments, zerolog.Nop())

	wired := *repos
	wired.Enrollments = enrollmentsWithHook{
		EnrollmentRepository: repos.Enrollments,
		hook: func() {
			_, err := r.RunOnce(ctx)
			require.NoError(t, err)
		},
	}
	checkout := services.NewCheckoutService(&wired, nil)

	_, err = checkout.Checkout(ctx, "a@x.io", class.ID.Hex(), &dto.PaymentRequest{})
	require.NoError(t, err)
	_, err = checkout.Checkout(ctx, "b@x.io", class.ID.Hex(), &dto.PaymentRequest{})
	assert.ErrorIs(t, err, apperrors.ErrSeatsUnavailable)

	for i := 0; i < 2; i++ {
		adjusted, err := r.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, adjusted)
	}

	got, err := repos.Classes.FindByID(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableSeats)
	assert.Equal(t, 1, got.TotalEnrolled)

	enrolled, err := repos.Enrollments.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, enrolled)
}

func TestRunOnceNeverDrivesSeatsNegative(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	class := &models.Class{Name: "Row", AvailableSeats: 1, Status: models.ClassStatusApproved}
	_, err := repos.Classes.Create(ctx, class)
	require.NoError(t, err)
	for _, email := range []string{"a@x.io", "b@x.io", "c@x.io"} {
		_, err := repos.Enrollments.Create(ctx, &models.Enrollment{UserEmail: email, ClassID: []primitive.ObjectID{class.ID}})
		require.NoError(t, err)
	}

	r := NewEnrollmentReconciler(repos.Classes, repos.Enrollments, zerolog.Nop())
	for i := 0; i < 3; i++ {
		adjusted, err := r.RunOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, adjusted)
	}

	got, err := repos.Classes.FindByID(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AvailableSeats)
	assert.Equal(t, 0, got.TotalEnrolled)
}

func TestStartSchedule(t *testing.T) {
	repos := memory.NewRepositories()
	r := NewEnrollmentReconciler(repos.Classes, repos.Enrollments, zerolog.Nop())

	assert.NoError(t, r.Start(""))
	r.Stop()

	assert.Error(t, r.Start("not a schedule"))

	require.NoError(t, r.Start("@every 1h"))
	r.Stop()
}
