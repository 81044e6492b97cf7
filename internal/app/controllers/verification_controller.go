package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/app/services"
	"github.com/rmoreira/capacita/internal/middleware"
)

// VerificationController serves the public certificate lookup that the
// QR code on every certificate points at
type VerificationController struct {
	certificateService *services.CertificateService
}

// NewVerificationController creates a new VerificationController
func NewVerificationController(certificateService *services.CertificateService) *VerificationController {
	return &VerificationController{certificateService: certificateService}
}

// VerifyCertificate resolves a student code to its certificate state
// @Summary Verify a certificate
// @Description Public lookup confirming a certificate's authenticity; returns no contact data
// @Tags public
// @Produce json
// @Param code path string true "Student code printed on the certificate"
// @Success 200 {object} dto.APIResponse{data=dto.VerificationResponse} "Certificate state"
// @Failure 404 {object} dto.ErrorResponse "Unknown code"
// @Router /verificar/{code} [get]
func (c *VerificationController) VerifyCertificate(ctx *gin.Context) {
	code := ctx.Param("code")
	if code == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Certificate code is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.certificateService.Verify(ctx, code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
