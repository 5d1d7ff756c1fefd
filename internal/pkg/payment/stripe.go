package payment

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
)

// Intent is the part of a gateway payment intent the API hands back to clients
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// Gateway creates payment intents with an external processor
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
}

// StripeConfig configures StripeGateway
type StripeConfig struct {
	SecretKey string
	BaseURL   string
	Timeout   time.Duration
}

// StripeGateway talks to the Stripe REST API with form-encoded requests
type StripeGateway struct {
	client *resty.Client
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewStripeGateway creates a new StripeGateway
func NewStripeGateway(cfg StripeConfig) *StripeGateway {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetBasicAuth(cfg.SecretKey, "").
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &StripeGateway{client: client}
}

// CreatePaymentIntent creates a card-only intent for amount in the smallest currency unit
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidationFailed)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Add("payment_method_types[]", "card")

	var intent Intent
	var apiErr stripeError
	resp, err := g.client.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		SetResult(&intent).
		SetError(&apiErr).
		Post("/v1/payment_intents")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGatewayFailure, err)
	}

	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return nil, fmt.Errorf("%w: status %d: %s", apperrors.ErrGatewayFailure, resp.StatusCode(), msg)
	}

	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("%w: response without client secret", apperrors.ErrGatewayFailure)
	}
	return &intent, nil
}
