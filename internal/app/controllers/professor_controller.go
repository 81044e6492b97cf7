package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/app/services"
	"github.com/rmoreira/capacita/internal/middleware"
)

// ProfessorController handles instructor operations
type ProfessorController struct {
	professorService *services.ProfessorService
}

// NewProfessorController creates a new ProfessorController
func NewProfessorController(professorService *services.ProfessorService) *ProfessorController {
	return &ProfessorController{professorService: professorService}
}

// CreateProfessor registers an instructor
// @Summary Create a new professor
// @Tags professores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProfessorRequest true "Professor information"
// @Success 201 {object} dto.APIResponse{data=models.Professor} "Professor created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /professores [post]
func (c *ProfessorController) CreateProfessor(ctx *gin.Context) {
	var req dto.CreateProfessorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	professor, err := c.professorService.CreateProfessor(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      professor,
		Timestamp: time.Now(),
	})
}

// GetProfessorByID retrieves a professor by ID
// @Summary Get professor by ID
// @Tags professores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Professor ID"
// @Success 200 {object} dto.APIResponse{data=models.Professor} "Professor retrieved"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professores/{id} [get]
func (c *ProfessorController) GetProfessorByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	professor, err := c.professorService.GetProfessorByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      professor,
		Timestamp: time.Now(),
	})
}

// ListProfessors lists instructors
// @Summary List professors
// @Tags professores
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active professors"
// @Success 200 {object} dto.APIResponse{data=[]models.Professor} "Professors retrieved"
// @Router /professores [get]
func (c *ProfessorController) ListProfessors(ctx *gin.Context) {
	activeOnly, _ := strconv.ParseBool(ctx.DefaultQuery("active", "false"))

	professors, err := c.professorService.ListProfessors(ctx, activeOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      professors,
		Timestamp: time.Now(),
	})
}

// UpdateProfessor applies an edit to an instructor record
// @Summary Update a professor
// @Tags professores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Professor ID"
// @Param request body dto.UpdateProfessorRequest true "Professor information"
// @Success 200 {object} dto.APIResponse{data=models.Professor} "Professor updated"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professores/{id} [put]
func (c *ProfessorController) UpdateProfessor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProfessorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	professor, err := c.professorService.UpdateProfessor(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      professor,
		Timestamp: time.Now(),
	})
}

// UploadSignature stores a professor's signature image
// @Summary Upload a signature image
// @Description The signature is composited onto certificates generated from now on
// @Tags professores
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Professor ID"
// @Param signature formData file true "Signature image"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Signature saved"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /professores/{id}/assinatura [post]
func (c *ProfessorController) UploadSignature(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("signature")
	if err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	path, err := c.professorService.UpdateSignature(ctx, id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"path": path},
		Timestamp: time.Now(),
	})
}

// DeleteProfessor soft deletes an instructor
// @Summary Delete a professor
// @Description Fails when students are assigned to the professor
// @Tags professores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Professor ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Professor deleted"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Failure 409 {object} dto.ErrorResponse "Professor has assigned students"
// @Router /professores/{id} [delete]
func (c *ProfessorController) DeleteProfessor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.professorService.DeleteProfessor(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Professor deleted"},
		Timestamp: time.Now(),
	})
}
