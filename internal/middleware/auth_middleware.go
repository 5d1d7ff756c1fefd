package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/fitnesshub/internal/app/auth"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/pkg/apperrors"
	"github.com/yigit/fitnesshub/internal/pkg/auth"
	"github.com/yigit/fitnesshub/internal/pkg/logger"
)

// Context keys set by JWTAuth
const (
	ContextEmail = "email"
	ContextName  = "name"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	authz      *appauth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authz *appauth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		authz:      authz,
	}
}

// JWTAuth rejects a missing bearer token with 401 and a bad or expired one with 403.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header must be 'Bearer <token>'")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			details := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				details = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Access denied").WithDetails(details)
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextEmail, claims.Email)
		c.Set(ContextName, claims.Name)
		c.Next()
	}
}

// JWTAuthUnless runs JWTAuth only when skip returns false
func (m *AuthMiddleware) JWTAuthUnless(skip func(c *gin.Context) bool) gin.HandlerFunc {
	guard := m.JWTAuth()
	return func(c *gin.Context) {
		if skip(c) {
			c.Next()
			return
		}
		guard(c)
	}
}

// AdminRequired loads the caller and checks the admin role. Must run after JWTAuth.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return m.roleRequired(m.authz.ValidateAdmin, "Admin access required")
}

// InstructorRequired loads the caller and checks the instructor role. Must run after JWTAuth.
func (m *AuthMiddleware) InstructorRequired() gin.HandlerFunc {
	return m.roleRequired(m.authz.ValidateInstructor, "Instructor access required")
}

func (m *AuthMiddleware) roleRequired(validate func(ctx context.Context, email string) error, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(ContextEmail)
		if email == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("User information not found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		err := validate(c.Request.Context(), email)
		switch {
		case err == nil:
			c.Next()
		case apperrors.Is(err, apperrors.ErrNotAdmin, apperrors.ErrNotInstructor, apperrors.ErrUserNotFound):
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, message).
				WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
		default:
			logger.Error().Err(err).Str("email", email).Msg("Role check failed")
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
				WithDetails("Failed to verify permissions")
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		}
	}
}
