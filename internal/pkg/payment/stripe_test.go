package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
)

func TestCreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)

		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test_123", user)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "2500", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, []string{"card"}, r.PostForm["payment_method_types[]"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","client_secret":"pi_1_secret_abc","amount":2500,"currency":"usd","status":"requires_payment_method"}`))
	}))
	defer srv.Close()

	gw := NewStripeGateway(StripeConfig{SecretKey: "sk_test_123", BaseURL: srv.URL})
	intent, err := gw.CreatePaymentIntent(context.Background(), 2500, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_abc", intent.ClientSecret)
	assert.Equal(t, int64(2500), intent.Amount)
}

func TestCreatePaymentIntentGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`))
	}))
	defer srv.Close()

	gw := NewStripeGateway(StripeConfig{SecretKey: "bad", BaseURL: srv.URL})
	_, err := gw.CreatePaymentIntent(context.Background(), 100, "usd")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrGatewayFailure)
	assert.Contains(t, err.Error(), "Invalid API Key provided")
}

func TestCreatePaymentIntentRejectsNonPositiveAmount(t *testing.T) {
	gw := NewStripeGateway(StripeConfig{SecretKey: "sk", BaseURL: "http://127.0.0.1:0"})
	_, err := gw.CreatePaymentIntent(context.Background(), 0, "usd")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
