package dto

import (
	"time"

	"github.com/yigit/fitnesshub/internal/app/models"
)

// TokenResponse is returned by the token endpoint
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PaymentIntentResponse carries the gateway client secret
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// TotalResponse wraps a bare count
type TotalResponse struct {
	Total int64 `json:"total"`
}

// CheckoutResult combines the outcome of every checkout write
type CheckoutResult struct {
	UpdatedResult     *models.UpdateResult `json:"updatedResult"`
	UpdatedEnrollment *models.InsertResult `json:"updatedEnrollment"`
	DeletedResult     *models.DeleteResult `json:"deletedResult"`
	PaymentResult     *models.InsertResult `json:"paymentResult"`
}

// HealthResponse reports liveness and the active store driver
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}
