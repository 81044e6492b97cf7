package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/app/services"
	"github.com/rmoreira/capacita/internal/middleware"
)

// SettingsController manages white-label configuration
type SettingsController struct {
	settingsService *services.SettingsService
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(settingsService *services.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// GetSettings returns all white-label values
// @Summary Get settings
// @Description Public read so the marketing site can brand itself
// @Tags configuracoes
// @Produce json
// @Success 200 {object} dto.APIResponse{data=map[string]string} "Settings retrieved"
// @Router /configuracoes [get]
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	settings, err := c.settingsService.GetSettings(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      settings,
		Timestamp: time.Now(),
	})
}

// UpdateSettings upserts white-label values
// @Summary Update settings
// @Tags configuracoes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSettingsRequest true "Key/value pairs"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Settings updated"
// @Failure 400 {object} dto.ErrorResponse "Unknown setting key"
// @Router /configuracoes [put]
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.settingsService.UpdateSettings(ctx, req.Settings); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Settings updated"},
		Timestamp: time.Now(),
	})
}
