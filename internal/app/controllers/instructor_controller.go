package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/fitnesshub/internal/app/models/dto"
	"github.com/yigit/fitnesshub/internal/app/services"
	"github.com/yigit/fitnesshub/internal/middleware"
)

// InstructorController handles instructor listings, applications and enrollments
type InstructorController struct {
	instructorService services.InstructorService
	enrollmentService services.EnrollmentService
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(instructorService services.InstructorService, enrollmentService services.EnrollmentService) *InstructorController {
	return &InstructorController{
		instructorService: instructorService,
		enrollmentService: enrollmentService,
	}
}

// GetInstructors lists users with the instructor role
// @Summary List instructors
// @Tags instructors
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors [get]
func (c *InstructorController) GetInstructors(ctx *gin.Context) {
	instructors, err := c.instructorService.GetInstructors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, instructors)
}

// Apply stores an instructor application
// @Summary Apply as instructor
// @Tags instructors
// @Accept json
// @Produce json
// @Param request body dto.InstructorApplicationRequest true "Application"
// @Success 200 {object} models.InsertResult
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /asinstructor [post]
func (c *InstructorController) Apply(ctx *gin.Context) {
	var req dto.InstructorApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}

	result, err := c.instructorService.Apply(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetApplications lists the applications filed under an email
// @Summary List instructor applications
// @Tags instructors
// @Produce json
// @Param email path string true "Applicant email"
// @Success 200 {array} models.AppliedInstructor
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appliedinstructors/{email} [get]
func (c *InstructorController) GetApplications(ctx *gin.Context) {
	applications, err := c.instructorService.GetApplications(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, applications)
}

// GetEnrolledClasses lists the classes a user is enrolled in
// @Summary List enrolled classes
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {array} models.EnrolledClass
// @Failure 401 {object} dto.ErrorResponse "Missing token"
// @Failure 403 {object} dto.ErrorResponse "Invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrolledclasses/{email} [get]
func (c *InstructorController) GetEnrolledClasses(ctx *gin.Context) {
	rows, err := c.enrollmentService.GetEnrolledClasses(ctx, ctx.Param("email"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rows)
}
