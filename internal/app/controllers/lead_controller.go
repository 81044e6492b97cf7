package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/app/services"
	"github.com/rmoreira/capacita/internal/middleware"
	"github.com/rmoreira/capacita/internal/pkg/helpers"
)

// LeadController handles marketing lead capture and listing
type LeadController struct {
	leadService *services.LeadService
}

// NewLeadController creates a new LeadController
func NewLeadController(leadService *services.LeadService) *LeadController {
	return &LeadController{leadService: leadService}
}

// CreateLead captures a public contact-form submission
// @Summary Submit a contact form
// @Description Public endpoint used by the marketing site; forwards the lead to the sales inbox
// @Tags public
// @Accept json
// @Produce json
// @Param request body dto.CreateLeadRequest true "Contact data"
// @Success 201 {object} dto.APIResponse{data=models.Lead} "Lead captured"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /leads [post]
func (c *LeadController) CreateLead(ctx *gin.Context) {
	var req dto.CreateLeadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	lead, err := c.leadService.CreateLead(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      lead,
		Timestamp: time.Now(),
	})
}

// ListLeads lists captured leads for the back office
// @Summary List leads
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.LeadListResponse} "Leads retrieved"
// @Router /leads [get]
func (c *LeadController) ListLeads(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	leads, total, err := c.leadService.ListLeads(ctx, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.LeadListResponse{
			Leads:      leads,
			Pagination: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}
