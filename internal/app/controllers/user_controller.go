package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/services"
	"github.com/yigit/fitnesshub/internal/middleware"
	"github.com/yigit/fitnesshub/internal/pkg/helpers"
)

// UserController handles user operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// CreateUser handles user signup
// @Summary Create a user
// @Description Stores a new user. Role defaults to student.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UserRequest true "User information"
// @Success 200 {object} models.InsertResult
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /newUser [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	result, err := c.userService.CreateUser(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetAllUsers lists every user
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /user [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.userService.GetAllUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUser returns one user by id or by email, or null.
// Lookups by email are token-gated in the router.
// @Summary Get a user by id or email
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param key path string true "User ID, or email (requires token)"
// @Success 200 {object} models.User
// @Failure 401 {object} dto.ErrorResponse "Missing token on an email lookup"
// @Failure 403 {object} dto.ErrorResponse "Invalid token on an email lookup"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /user/{key} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	key := ctx.Param("key")

	if helpers.IsObjectID(key) {
		user, err := c.userService.GetUserByID(ctx, key)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, user)
		return
	}

	user, err := c.userService.GetUserByEmail(ctx, key)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// DeleteUser removes a user. Related cart, payment and enrollment rows are left in place.
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.DeleteResult
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token or not an admin"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /deleteuser/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	result, err := c.userService.DeleteUser(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// UpdateUser overwrites a user's profile and role
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body dto.UserUpdateRequest true "Profile; option carries the new role"
// @Success 200 {object} models.UpdateResult
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token or not an admin"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /updateusers/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var req dto.UserUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	result, err := c.userService.UpdateUser(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
