package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/app/services"
	"github.com/rmoreira/capacita/internal/middleware"
)

// CourseHoursController handles the workload lookup table
type CourseHoursController struct {
	courseHoursService *services.CourseHoursService
}

// NewCourseHoursController creates a new CourseHoursController
func NewCourseHoursController(courseHoursService *services.CourseHoursService) *CourseHoursController {
	return &CourseHoursController{courseHoursService: courseHoursService}
}

// CreateCourseHours adds a workload value
// @Summary Create a workload value
// @Tags carga-horaria
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseHoursRequest true "Workload in hours"
// @Success 201 {object} dto.APIResponse{data=models.CourseHours} "Workload created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /carga-horaria [post]
func (c *CourseHoursController) CreateCourseHours(ctx *gin.Context) {
	var req dto.CreateCourseHoursRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	hours, err := c.courseHoursService.CreateCourseHours(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      hours,
		Timestamp: time.Now(),
	})
}

// ListCourseHours lists the workload values
// @Summary List workload values
// @Tags carga-horaria
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.CourseHours} "Workloads retrieved"
// @Router /carga-horaria [get]
func (c *CourseHoursController) ListCourseHours(ctx *gin.Context) {
	hours, err := c.courseHoursService.ListCourseHours(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      hours,
		Timestamp: time.Now(),
	})
}
