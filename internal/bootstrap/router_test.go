package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/fitnesshub/internal/app/models"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/repositories/memory"
	"github.com/yigit/fitnesshub/internal/config"
	pkgAuth "github.com/yigit/fitnesshub/internal/pkg/auth"
	"github.com/yigit/fitnesshub/internal/pkg/payment"
)

const testSecret = "route-test-secret"

type stubGateway struct{}

func (stubGateway) CreatePaymentIntent(_ context.Context, amount int64, currency string) (*payment.Intent, error) {
	return &payment.Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: amount, Currency: currency}, nil
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	deps   *Dependencies
}

func newTestAPI(t *testing.T, legacyAdmin bool) *testAPI {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = testSecret
	cfg.JWT.Expiration = "24h"
	cfg.Payment.Currency = "usd"
	cfg.Auth.LegacyInvertedAdminCheck = legacyAdmin

	store := &Store{Repos: memory.NewRepositories(), Driver: config.DriverMemory}
	deps, err := BuildDependencies(cfg, store, stubGateway{}, zerolog.Nop())
	require.NoError(t, err)

	return &testAPI{t: t, router: SetupRouter(cfg, deps, zerolog.Nop()), deps: deps}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) token(email string) string {
	a.t.Helper()
	token, _, err := a.deps.JWTService.IssueToken(pkgAuth.Identity{Email: email})
	require.NoError(a.t, err)
	return token
}

func (a *testAPI) addUser(email string, role models.RoleType) {
	a.t.Helper()
	_, err := a.deps.Repos.Users.Create(context.Background(), &models.User{Name: email, Email: email, Role: role})
	require.NoError(a.t, err)
}

func (a *testAPI) addClass(name string, seats int, status models.ClassStatus) string {
	a.t.Helper()
	res, err := a.deps.Repos.Classes.Create(context.Background(), &models.Class{
		Name:            name,
		AvailableSeats:  seats,
		Status:          status,
		InstructorEmail: "coach@fit.io",
	})
	require.NoError(a.t, err)
	return res.InsertedID.Hex()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestGatedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, false)

	gated := []struct{ method, path string }{
		{http.MethodPost, "/new-class"},
		{http.MethodGet, "/classes/coach@fit.io"},
		{http.MethodPut, "/updateAll/64b7f0c2a1e4b5d6c7e8f901"},
		{http.MethodPost, "/addtocart"},
		{http.MethodGet, "/cartcollections/64b7f0c2a1e4b5d6c7e8f901"},
		{http.MethodGet, "/cart/sam@fit.io"},
		{http.MethodDelete, "/deletecart/64b7f0c2a1e4b5d6c7e8f901"},
		{http.MethodPost, "/paymentInfo"},
		{http.MethodGet, "/adminstatus"},
		{http.MethodGet, "/enrolledclasses/sam@fit.io"},
		{http.MethodGet, "/user/sam@fit.io"},
		{http.MethodDelete, "/deleteuser/64b7f0c2a1e4b5d6c7e8f901"},
		{http.MethodPut, "/updateusers/64b7f0c2a1e4b5d6c7e8f901"},
		{http.MethodGet, "/paymentsexport"},
	}

	for _, route := range gated {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := api.do(route.method, route.path, "", map[string]string{})
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			resp := decode[dto.ErrorResponse](t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, dto.ErrorCodeUnauthorized, resp.Error.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestInvalidTokensAreForbidden(t *testing.T) {
	api := newTestAPI(t, false)
	api.addUser("admin@fit.io", models.RoleAdmin)

	forged := pkgAuth.NewJWTService(pkgAuth.JWTConfig{SecretKey: "someone-else"})
	forgedToken, _, err := forged.IssueToken(pkgAuth.Identity{Email: "admin@fit.io"})
	require.NoError(t, err)

	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &pkgAuth.Claims{
		Email: "admin@fit.io",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := api.do(http.MethodGet, "/adminstatus", expiredToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeExpiredToken, decode[dto.ErrorResponse](t, w).Error.Code)

	w = api.do(http.MethodGet, "/adminstatus", forgedToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidToken, decode[dto.ErrorResponse](t, w).Error.Code)

	w = api.do(http.MethodGet, "/adminstatus", "not.a.token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminGate(t *testing.T) {
	for _, tc := range []struct {
		name        string
		legacy      bool
		adminCode   int
		studentCode int
	}{
		{name: "intended", legacy: false, adminCode: http.StatusOK, studentCode: http.StatusForbidden},
		{name: "legacy inverted", legacy: true, adminCode: http.StatusForbidden, studentCode: http.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			api := newTestAPI(t, tc.legacy)
			api.addUser("admin@fit.io", models.RoleAdmin)
			api.addUser("sam@fit.io", models.RoleStudent)
			api.addUser("coach@fit.io", models.RoleInstructor)

			assert.Equal(t, tc.adminCode, api.do(http.MethodGet, "/adminstatus", api.token("admin@fit.io"), nil).Code)
			assert.Equal(t, tc.studentCode, api.do(http.MethodGet, "/adminstatus", api.token("sam@fit.io"), nil).Code)
			assert.Equal(t, tc.studentCode, api.do(http.MethodGet, "/adminstatus", api.token("coach@fit.io"), nil).Code)

			// unknown callers never pass a role gate
			w := api.do(http.MethodGet, "/adminstatus", api.token("ghost@fit.io"), nil)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, dto.ErrorCodeForbidden, decode[dto.ErrorResponse](t, w).Error.Code)
		})
	}
}

func TestInstructorGateAndClassCreation(t *testing.T) {
	api := newTestAPI(t, false)
	api.addUser("coach@fit.io", models.RoleInstructor)
	api.addUser("sam@fit.io", models.RoleStudent)

	body := map[string]interface{}{
		"name":            "Morning Yoga",
		"availableSeats":  "12",
		"price":           25,
		"instructorName":  "Coach",
		"instructorEmail": "coach@fit.io",
	}

	w := api.do(http.MethodPost, "/new-class", api.token("sam@fit.io"), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, "/new-class", api.token("coach@fit.io"), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.InsertResult](t, w)
	assert.True(t, created.Acknowledged)

	w = api.do(http.MethodGet, "/singleclass/"+created.InsertedID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	class := decode[models.Class](t, w)
	assert.Equal(t, "Morning Yoga", class.Name)
	assert.Equal(t, 12, class.AvailableSeats)
	assert.Equal(t, models.ClassStatusPending, class.Status)

	w = api.do(http.MethodGet, "/classes/coach@fit.io", api.token("coach@fit.io"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Class](t, w), 1)
}

func TestGetClassesIsIdempotent(t *testing.T) {
	api := newTestAPI(t, false)
	api.addClass("Yoga", 5, models.ClassStatusApproved)
	api.addClass("Boxing", 3, models.ClassStatusPending)
	api.addClass("Pilates", 4, models.ClassStatusDenied)

	first := api.do(http.MethodGet, "/classes", "", nil)
	second := api.do(http.MethodGet, "/classes", "", nil)

	require.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	catalog := decode[[]models.Class](t, first)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Yoga", catalog[0].Name)
	assert.Equal(t, models.ClassStatusApproved, catalog[0].Status)

	w := api.do(http.MethodGet, "/classesmanagement", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Class](t, w), 3)
}

func TestInstructorApplicationRoundTrip(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(http.MethodPost, "/asinstructor", "", map[string]string{
		"name":       "Kim Lee",
		"email":      "kim@fit.io",
		"experience": "5 years",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/appliedinstructors/kim@fit.io", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	applications := decode[[]models.AppliedInstructor](t, w)
	require.Len(t, applications, 1)
	assert.Equal(t, "Kim Lee", applications[0].Name)
	assert.Equal(t, "5 years", applications[0].Experience)

	w = api.do(http.MethodPost, "/asinstructor", "", "not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewUserRoundTrip(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(http.MethodPost, "/newUser", "", map[string]string{
		"name":     "Sam Doe",
		"email":    "sam@fit.io",
		"gender":   "other",
		"photoUrl": "https://img.fit.io/sam.png",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[models.InsertResult](t, w)

	w = api.do(http.MethodGet, "/user/"+created.InsertedID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[models.User](t, w)
	assert.Equal(t, created.InsertedID, user.ID)
	assert.Equal(t, "Sam Doe", user.Name)
	assert.Equal(t, "sam@fit.io", user.Email)
	assert.Equal(t, "other", user.Gender)
	assert.Equal(t, "https://img.fit.io/sam.png", user.PhotoURL)
	assert.Equal(t, models.RoleStudent, user.Role)

	// duplicate signup
	w = api.do(http.MethodPost, "/newUser", "", map[string]string{"name": "Again", "email": "sam@fit.io"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// email lookups need a token
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/user/sam@fit.io", "", nil).Code)
	w = api.do(http.MethodGet, "/user/sam@fit.io", api.token("sam@fit.io"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sam Doe", decode[models.User](t, w).Name)
}

func TestMissingDocumentIsNull(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(http.MethodGet, "/singleclass/64b7f0c2a1e4b5d6c7e8f901", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = api.do(http.MethodGet, "/singleclass/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidID, decode[dto.ErrorResponse](t, w).Error.Code)
}

func TestCartDeletionLeavesRemainingClass(t *testing.T) {
	api := newTestAPI(t, false)
	classA := api.addClass("A", 5, models.ClassStatusApproved)
	classB := api.addClass("B", 5, models.ClassStatusApproved)
	token := api.token("u@fit.io")

	w := api.do(http.MethodPost, "/addtocart", token, map[string]string{"classID": classA, "userEmail": "u@fit.io"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	entryA := decode[models.InsertResult](t, w).InsertedID.Hex()

	w = api.do(http.MethodPost, "/addtocart", token, map[string]string{"classID": classB, "userEmail": "u@fit.io"})
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/cart/u@fit.io", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Class](t, w), 2)

	w = api.do(http.MethodDelete, "/deletecart/"+entryA, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[models.DeleteResult](t, w).DeletedCount)

	w = api.do(http.MethodGet, "/cart/u@fit.io", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	remaining := decode[[]models.Class](t, w)
	require.Len(t, remaining, 1)
	assert.Equal(t, classB, remaining[0].ID.Hex())
}

func TestClassApprovalShowsInApprovedList(t *testing.T) {
	api := newTestAPI(t, false)
	id := api.addClass("Pilates", 8, models.ClassStatusPending)

	w := api.do(http.MethodGet, "/approvedclass", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.Class](t, w))

	w = api.do(http.MethodPatch, "/classesupdated/"+id, "", map[string]string{"status": "approved", "reason": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode[models.UpdateResult](t, w).MatchedCount)

	w = api.do(http.MethodGet, "/approvedclass", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	approved := decode[[]models.Class](t, w)
	require.Len(t, approved, 1)
	assert.Equal(t, id, approved[0].ID.Hex())
	assert.Equal(t, models.ClassStatusApproved, approved[0].Status)
}

func TestCheckoutOverHTTP(t *testing.T) {
	api := newTestAPI(t, false)
	classID := api.addClass("Spin", 1, models.ClassStatusApproved)

	body := map[string]interface{}{
		"userEmail":     "spoofed@fit.io",
		"classID":       []string{classID},
		"transactionID": "tx_1",
		"price":         "20",
		"quantity":      1,
	}

	w := api.do(http.MethodPost, "/paymentInfo", api.token("buyer@fit.io"), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[dto.CheckoutResult](t, w)
	assert.EqualValues(t, 1, result.UpdatedResult.ModifiedCount)
	assert.True(t, result.PaymentResult.Acknowledged)

	// payment is recorded under the token identity
	w = api.do(http.MethodGet, "/paymentlength/buyer@fit.io", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[dto.TotalResponse](t, w).Total)

	w = api.do(http.MethodGet, "/payment/buyer@fit.io", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	latest := decode[models.Payment](t, w)
	assert.Equal(t, "tx_1", latest.TransactionID)

	w = api.do(http.MethodGet, "/enrolledclasses/buyer@fit.io", api.token("buyer@fit.io"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.EnrolledClass](t, w), 1)

	// sold out now
	w = api.do(http.MethodPost, "/paymentInfo", api.token("late@fit.io"), body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrorCodeSeatsUnavailable, decode[dto.ErrorResponse](t, w).Error.Code)

	w = api.do(http.MethodPost, "/paymentInfo", api.token("late@fit.io"), map[string]interface{}{"transactionID": "tx_2"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentIntentAndExport(t *testing.T) {
	api := newTestAPI(t, false)
	api.addUser("admin@fit.io", models.RoleAdmin)

	w := api.do(http.MethodPost, "/create-payment-intent", "", map[string]interface{}{"price": "12.90"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "pi_1_secret", decode[dto.PaymentIntentResponse](t, w).ClientSecret)

	w = api.do(http.MethodPost, "/payment", "", map[string]interface{}{"userEmail": "a@fit.io", "price": 10, "transactionID": "tx_9"})
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/paymentsexport", api.token("admin@fit.io"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payments.xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestHealthAndRequestID(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[dto.HealthResponse](t, w)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, config.DriverMemory, health.Store)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = api.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
