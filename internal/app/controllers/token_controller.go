package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/middleware"
	"github.com/yigit/fitnesshub/internal/pkg/auth"
	"github.com/yigit/fitnesshub/internal/pkg/logger"
)

// TokenController issues bearer tokens
type TokenController struct {
	jwtService *auth.JWTService
}

// NewTokenController creates a new TokenController
func NewTokenController(jwtService *auth.JWTService) *TokenController {
	return &TokenController{
		jwtService: jwtService,
	}
}

// IssueToken signs a token for the posted identity
// @Summary Issue an access token
// @Description Signs an HS256 bearer token for the given email. Identity providers verify the user before calling this.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Token claims"
// @Success 200 {object} dto.TokenResponse "Token issued"
// @Failure 400 {object} dto.ErrorResponse "Email missing"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/settoken [post]
func (c *TokenController) IssueToken(ctx *gin.Context) {
	var req dto.TokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	token, expiresAt, err := c.jwtService.IssueToken(auth.Identity{Email: req.Email, Name: req.Name})
	if err != nil {
		if errors.Is(err, auth.ErrMissingEmail) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Email is required").WithField("email")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		logger.Error().Err(err).Msg("Failed to sign token")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{Token: token, ExpiresAt: expiresAt})
}
