package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/services"
	"github.com/yigit/fitnesshub/internal/middleware"
)

// CartController handles cart operations
type CartController struct {
	cartService services.CartService
}

// NewCartController creates a new CartController
func NewCartController(cartService services.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

// AddToCart handles adding a class to a user's cart
// @Summary Add to cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CartRequest true "Cart entry"
// @Success 200 {object} models.InsertResult
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /addtocart [post]
func (c *CartController) AddToCart(ctx *gin.Context) {
	var req dto.CartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	result, err := c.cartService.AddToCart(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetCartItem returns the cart entries with the given id
// @Summary Get a cart entry
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart entry ID"
// @Success 200 {array} models.CartItem
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cartcollections/{id} [get]
func (c *CartController) GetCartItem(ctx *gin.Context) {
	items, err := c.cartService.GetCartItem(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// GetCart returns the classes in a user's cart
// @Summary Get a user's cart classes
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {array} models.Class
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cart/{email} [get]
func (c *CartController) GetCart(ctx *gin.Context) {
	classes, err := c.cartService.GetCartClasses(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, classes)
}

// RemoveFromCart deletes one cart entry
// @Summary Remove a cart entry
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart entry ID"
// @Success 200 {object} models.DeleteResult
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /deletecart/{id} [delete]
func (c *CartController) RemoveFromCart(ctx *gin.Context) {
	result, err := c.cartService.RemoveFromCart(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
