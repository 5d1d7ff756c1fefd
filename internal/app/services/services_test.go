package services

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/repositories/memory"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
	"github.com/yigit/fitnesshub/internal/pkg/payment"
	"github.com/yigit/fitnesshub/internal/pkg/websocket"
)

type recordingFeed struct {
	mu     sync.Mutex
	events []websocket.ClassEvent
}

func (f *recordingFeed) PublishClassEvent(event websocket.ClassEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

type fakeGateway struct {
	amount   int64
	currency string
	err      error
}

func (g *fakeGateway) CreatePaymentIntent(_ context.Context, amount int64, currency string) (*payment.Intent, error) {
	g.amount = amount
	g.currency = currency
	if g.err != nil {
		return nil, g.err
	}
	return &payment.Intent{ClientSecret: "secret_123", Amount: amount, Currency: currency}, nil
}

func TestCreateClassDefaultsToPending(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := NewClassService(repos.Classes, &recordingFeed{})

	res, err := svc.CreateClass(ctx, &dto.ClassRequest{Name: "Yoga", AvailableSeats: 10, Price: 25})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)

	class, err := svc.GetClassByID(ctx, res.InsertedID.Hex())
	require.NoError(t, err)
	require.NotNil(t, class)
	assert.Equal(t, models.ClassStatusPending, class.Status)
	assert.Equal(t, 10, class.AvailableSeats)
}

func TestGetClassByIDMissingIsNil(t *testing.T) {
	svc := NewClassService(memory.NewRepositories().Classes, nil)

	class, err := svc.GetClassByID(context.Background(), "64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)
	assert.Nil(t, class)

	_, err = svc.GetClassByID(context.Background(), "xyz")
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestGetCartClassesResolvesEntries(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	classes := NewClassService(repos.Classes, nil)
	cart := NewCartService(repos.Cart, repos.Classes)

	yoga, err := classes.CreateClass(ctx, &dto.ClassRequest{Name: "Yoga", AvailableSeats: 5})
	require.NoError(t, err)
	_, err = cart.AddToCart(ctx, &dto.CartRequest{ClassID: yoga.InsertedID.Hex(), UserEmail: "s@x.com"})
	require.NoError(t, err)
	_, err = cart.AddToCart(ctx, &dto.CartRequest{ClassID: "not-an-id", UserEmail: "s@x.com"})
	require.NoError(t, err)

	got, err := cart.GetCartClasses(ctx, "s@x.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Yoga", got[0].Name)

	empty, err := cart.GetCartClasses(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestUpdateClassStatusPublishesEvent(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	feed := &recordingFeed{}
	svc := NewClassService(repos.Classes, feed)

	created, err := svc.CreateClass(ctx, &dto.ClassRequest{Name: "Yoga"})
	require.NoError(t, err)

	res, err := svc.UpdateClassStatus(ctx, created.InsertedID.Hex(), &dto.ClassStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	approved, err := svc.GetApprovedClasses(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)

	require.Len(t, feed.events, 1)
	assert.Equal(t, websocket.EventStatus, feed.events[0].Type)
	assert.Equal(t, "approved", feed.events[0].Status)
}

func TestUpdateClassUpsertsAndParsesSeats(t *testing.T) {
	ctx := context.Background()
	svc := NewClassService(memory.NewRepositories().Classes, nil)

	id := "64b7f0c2a1b2c3d4e5f60718"
	res, err := svc.UpdateClass(ctx, id, &dto.ClassRequest{Name: "Boxing", AvailableSeats: 12.7, Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.UpsertedCount)

	class, err := svc.GetClassByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 12, class.AvailableSeats)
}

func TestPopularClassesLimitedToSix(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	for i := 0; i < 8; i++ {
		_, err := repos.Classes.Create(ctx, &models.Class{Name: "C", TotalEnrolled: i})
		require.NoError(t, err)
	}

	classes, err := NewClassService(repos.Classes, nil).GetPopularClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 6)
	assert.Equal(t, 7, classes[0].TotalEnrolled)
	assert.Equal(t, 2, classes[5].TotalEnrolled)
}

func TestCreatePaymentIntentChargesWholeUnitsInCents(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewPaymentService(memory.NewRepositories().Payments, gw, "usd")

	intent, err := svc.CreatePaymentIntent(context.Background(), &dto.PaymentIntentRequest{Price: 19.99})
	require.NoError(t, err)
	assert.Equal(t, "secret_123", intent.ClientSecret)
	assert.Equal(t, int64(1900), gw.amount)
	assert.Equal(t, "usd", gw.currency)
}

func TestCreatePaymentIntentWrapsGatewayError(t *testing.T) {
	gw := &fakeGateway{err: apperrors.ErrGatewayFailure}
	svc := NewPaymentService(memory.NewRepositories().Payments, gw, "usd")

	_, err := svc.CreatePaymentIntent(context.Background(), &dto.PaymentIntentRequest{Price: 5})
	assert.ErrorIs(t, err, apperrors.ErrGatewayFailure)
}

func TestCreateUserDefaultsRoleAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewRepositories().Users)

	res, err := svc.CreateUser(ctx, &dto.UserRequest{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	user, err := svc.GetUserByID(ctx, res.InsertedID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Nil(t, user.Skills)

	_, err = svc.CreateUser(ctx, &dto.UserRequest{Name: "Ana 2", Email: "ana@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestUpdateUserTakesRoleFromOption(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := NewUserService(repos.Users)

	res, err := svc.CreateUser(ctx, &dto.UserRequest{Name: "Kim", Email: "kim@example.com"})
	require.NoError(t, err)

	upd, err := svc.UpdateUser(ctx, res.InsertedID.Hex(), &dto.UserUpdateRequest{
		Name: "Kim", Email: "kim@example.com", Option: "instructor", Skills: "yoga",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), upd.ModifiedCount)

	instructors, err := NewInstructorService(repos.Users, repos.Applied).GetInstructors(ctx)
	require.NoError(t, err)
	require.Len(t, instructors, 1)
	require.NotNil(t, instructors[0].Skills)
	assert.Equal(t, "yoga", *instructors[0].Skills)
}

func TestAdminStats(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	_, _ = repos.Classes.Create(ctx, &models.Class{Status: models.ClassStatusApproved})
	_, _ = repos.Classes.Create(ctx, &models.Class{Status: models.ClassStatusPending})
	_, _ = repos.Classes.Create(ctx, &models.Class{Status: models.ClassStatusDenied})
	_, _ = repos.Users.Create(ctx, &models.User{Email: "kim@example.com", Role: models.RoleInstructor})
	_, _ = repos.Enrollments.Create(ctx, &models.Enrollment{UserEmail: "ana@example.com"})

	stats, err := NewAdminService(repos).GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.AdminStats{
		ApprovedClasses: 1,
		PendingClasses:  1,
		Instructors:     1,
		TotalClasses:    3,
		TotalEnrolled:   1,
	}, *stats)
}

func TestExportPaymentsWritesWorkbook(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	_, _ = repos.Payments.Create(ctx, &models.Payment{
		UserName: "Ana", UserEmail: "ana@example.com", TransactionID: "tx_9",
		ClassID: []string{"a", "b"}, Quantity: 2, Price: 50, Date: time.Now(),
	})

	var buf bytes.Buffer
	require.NoError(t, NewAdminService(repos).ExportPayments(ctx, &buf))

	book, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, book.Sheets, 1)

	sheet := book.Sheets[0]
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Transaction", sheet.Rows[0].Cells[3].String())
	assert.Equal(t, "tx_9", sheet.Rows[1].Cells[3].String())
	assert.Equal(t, "a,b", sheet.Rows[1].Cells[4].String())
}

func TestInstructorApplications(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := NewInstructorService(repos.Users, repos.Applied)

	_, err := svc.Apply(ctx, &dto.InstructorApplicationRequest{Name: "Lee", Email: "lee@example.com", Experience: "5 years"})
	require.NoError(t, err)

	apps, err := svc.GetApplications(ctx, "lee@example.com")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "5 years", apps[0].Experience)
}
