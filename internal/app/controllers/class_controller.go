package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/services"
	"github.com/yigit/fitnesshub/internal/middleware"
)

// ClassController handles class catalog operations
type ClassController struct {
	classService services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService services.ClassService) *ClassController {
	return &ClassController{
		classService: classService,
	}
}

// CreateClass handles class creation
// @Summary Create a class
// @Description Inserts a new class. Status defaults to pending until an admin reviews it.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ClassRequest true "Class information"
// @Success 201 {object} models.InsertResult "Class created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token or not an instructor"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /new-class [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	result, err := c.classService.CreateClass(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// GetAllClasses lists the public catalog, which only holds approved classes
// @Summary List classes
// @Tags classes
// @Produce json
// @Success 200 {array} models.Class
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes [get]
func (c *ClassController) GetAllClasses(ctx *gin.Context) {
	classes, err := c.classService.GetApprovedClasses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, classes)
}

// GetClassesByInstructor lists the classes owned by an instructor email
// @Summary List an instructor's classes
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param email path string true "Instructor email"
// @Success 200 {array} models.Class
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token or not an instructor"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classes/{email} [get]
func (c *ClassController) GetClassesByInstructor(ctx *gin.Context) {
	classes, err := c.classService.GetClassesByInstructor(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, classes)
}

// GetClassesForManagement lists every class for the admin review screen
// @Summary List classes for review
// @Tags classes
// @Produce json
// @Success 200 {array} models.Class
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classesmanagement [get]
func (c *ClassController) GetClassesForManagement(ctx *gin.Context) {
	classes, err := c.classService.GetAllClasses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, classes)
}

// UpdateClassStatus sets a class's review status and reason
// @Summary Review a class
// @Tags classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param request body dto.ClassStatusRequest true "New status"
// @Success 200 {object} models.UpdateResult
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /classesupdated/{id} [patch]
func (c *ClassController) UpdateClassStatus(ctx *gin.Context) {
	var req dto.ClassStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	result, err := c.classService.UpdateClassStatus(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetApprovedClasses lists classes open for enrollment
// @Summary List approved classes
// @Tags classes
// @Produce json
// @Success 200 {array} models.Class
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /approvedclass [get]
func (c *ClassController) GetApprovedClasses(ctx *gin.Context) {
	classes, err := c.classService.GetApprovedClasses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, classes)
}

// GetClassByID returns one class, or null when it does not exist
// @Summary Get a class
// @Tags classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} models.Class
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /singleclass/{id} [get]
func (c *ClassController) GetClassByID(ctx *gin.Context) {
	class, err := c.classService.GetClassByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, class)
}

// UpdateClass upserts the editable fields of a class
// @Summary Update a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param request body dto.ClassRequest true "Class information"
// @Success 200 {object} models.UpdateResult
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token or not an instructor"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /updateAll/{id} [put]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	var req dto.ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	result, err := c.classService.UpdateClass(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetPopularClasses returns the six most enrolled classes
// @Summary Popular classes
// @Tags classes
// @Produce json
// @Success 200 {array} models.Class
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /popularclasses [get]
func (c *ClassController) GetPopularClasses(ctx *gin.Context) {
	classes, err := c.classService.GetPopularClasses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, classes)
}

// GetPopularInstructors returns the six instructors with the most enrollments
// @Summary Popular instructors
// @Tags instructors
// @Produce json
// @Success 200 {array} models.PopularInstructor
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /popularinstructors [get]
func (c *ClassController) GetPopularInstructors(ctx *gin.Context) {
	instructors, err := c.classService.GetPopularInstructors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, instructors)
}
