package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/services"
	"github.com/yigit/fitnesshub/internal/middleware"
	"github.com/yigit/fitnesshub/internal/pkg/helpers"
)

// PaymentController handles payment records, gateway intents and checkout
type PaymentController struct {
	paymentService  services.PaymentService
	checkoutService services.CheckoutService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService services.PaymentService, checkoutService services.CheckoutService) *PaymentController {
	return &PaymentController{
		paymentService:  paymentService,
		checkoutService: checkoutService,
	}
}

// RecordPayment stores a payment record as posted
// @Summary Record a payment
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.PaymentRequest true "Payment record"
// @Success 200 {object} models.InsertResult
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payment [post]
func (c *PaymentController) RecordPayment(ctx *gin.Context) {
	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	result, err := c.paymentService.RecordPayment(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetPayment dispatches on the key shape. A 24-hex key lists the payment with that id,
// anything else returns the latest payment of that email (or null).
// @Summary Get payments by id or latest payment by email
// @Tags payments
// @Produce json
// @Param key path string true "Payment ID or user email"
// @Success 200 {array} models.Payment "List when key is an ID, single payment or null when key is an email"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payment/{key} [get]
func (c *PaymentController) GetPayment(ctx *gin.Context) {
	key := ctx.Param("key")

	if helpers.IsObjectID(key) {
		payments, err := c.paymentService.GetPaymentsByID(ctx, key)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, payments)
		return
	}

	latest, err := c.paymentService.GetLatestPayment(ctx, key)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, latest)
}

// CountPayments returns how many payments an email has made
// @Summary Count a user's payments
// @Tags payments
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} dto.TotalResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /paymentlength/{email} [get]
func (c *PaymentController) CountPayments(ctx *gin.Context) {
	total, err := c.paymentService.CountPayments(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.TotalResponse{Total: total})
}

// CreatePaymentIntent asks the gateway for a card payment intent
// @Summary Create a payment intent
// @Description Amount is the integer part of price times 100, in the configured currency.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body dto.PaymentIntentRequest true "Price"
// @Success 200 {object} dto.PaymentIntentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid price"
// @Failure 502 {object} dto.ErrorResponse "Payment gateway error"
// @Router /create-payment-intent [post]
func (c *PaymentController) CreatePaymentIntent(ctx *gin.Context) {
	var req dto.PaymentIntentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	intent, err := c.paymentService.CreatePaymentIntent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.PaymentIntentResponse{ClientSecret: intent.ClientSecret})
}

// Checkout enrolls the caller after a confirmed payment
// @Summary Complete checkout
// @Description Reserves a seat in every selected class, records the enrollment, clears the matching cart entries and stores the payment. Any failure rolls back the completed steps.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param singleClassID query string false "Buy only this class"
// @Param request body dto.PaymentRequest true "Confirmed payment"
// @Success 200 {object} dto.CheckoutResult
// @Failure 400 {object} dto.ErrorResponse "No classes selected or invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token"
// @Failure 409 {object} dto.ErrorResponse "A class has no seats left"
// @Failure 500 {object} dto.ErrorResponse "Checkout failed"
// @Router /paymentInfo [post]
func (c *PaymentController) Checkout(ctx *gin.Context) {
	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	// the token identity wins over whatever the body claims
	email := ctx.GetString(middleware.ContextEmail)
	req.UserEmail = email

	result, err := c.checkoutService.Checkout(ctx, email, ctx.Query("singleClassID"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
