package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/fitnesshub/internal/app/services"
	"github.com/yigit/fitnesshub/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminController handles admin dashboards and exports
type AdminController struct {
	adminService services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// GetStats returns the dashboard counters
// @Summary Admin dashboard counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AdminStats
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token or not an admin"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /adminstatus [get]
func (c *AdminController) GetStats(ctx *gin.Context) {
	stats, err := c.adminService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// ExportPayments downloads every payment as a spreadsheet
// @Summary Export payments
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "payments.xlsx"
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token or not an admin"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /paymentsexport [get]
func (c *AdminController) ExportPayments(ctx *gin.Context) {
	// buffered so a failure can still produce a JSON error
	var buf bytes.Buffer
	if err := c.adminService.ExportPayments(ctx, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="payments.xlsx"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
