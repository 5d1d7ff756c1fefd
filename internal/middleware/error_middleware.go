package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
	"github.com/yigit/fitnesshub/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP status codes and the error envelope
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classify(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("requestId", c.GetString(ContextRequestID)).
			Msg("Request failed")
	}

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Details != nil {
		detail = detail.WithDetails(custom.Details)
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classify(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidID):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidID, "Invalid identifier").WithDetails(err.Error())
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrNothingToCheckout):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "No classes selected for checkout")
	case apperrors.Is(err, apperrors.ErrPermissionDenied, apperrors.ErrNotAdmin, apperrors.ErrNotInstructor):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case apperrors.Is(err, apperrors.ErrResourceNotFound, apperrors.ErrUserNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Conflict")
	// checked before seats: a failed rollback outranks the sold-out cause
	case errors.Is(err, apperrors.ErrCheckoutFailed):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeCheckoutFailed, "Checkout failed, no changes were kept").
			WithSeverity(dto.ErrorSeverityCritical)
	case errors.Is(err, apperrors.ErrSeatsUnavailable):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeSeatsUnavailable, "No seats available for the selected class").WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrGatewayFailure):
		return http.StatusBadGateway, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Payment gateway error")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleBindError answers a malformed request body with 400
func HandleBindError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
