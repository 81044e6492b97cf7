package controllers

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/app/services"
	"github.com/rmoreira/capacita/internal/middleware"
	"github.com/rmoreira/capacita/internal/pkg/helpers"
)

// CertificateController drives certificate generation and downloads
type CertificateController struct {
	certificateService *services.CertificateService
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService *services.CertificateService) *CertificateController {
	return &CertificateController{certificateService: certificateService}
}

// GenerateCertificate renders a certificate for one student
// @Summary Generate a certificate
// @Description Renders the certificate JPEG and delivers the link over email and WhatsApp
// @Tags certificados
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateResponse} "Certificate generated"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Certificate already generated"
// @Failure 503 {object} dto.ErrorResponse "Template unavailable"
// @Router /certificados/{id}/gerar [post]
func (c *CertificateController) GenerateCertificate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.certificateService.Generate(ctx, id, false)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// RegenerateCertificate replaces an existing certificate
// @Summary Regenerate a certificate
// @Description Renders a fresh certificate, replacing the existing file
// @Tags certificados
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateResponse} "Certificate regenerated"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /certificados/{id}/regerar [post]
func (c *CertificateController) RegenerateCertificate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.certificateService.Generate(ctx, id, true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// GenerateBatch renders certificates for many students
// @Summary Generate certificates in batch
// @Description Tallies generated, skipped and failed students; one failure never aborts the run
// @Tags certificados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateBatchRequest true "Student IDs"
// @Success 200 {object} dto.APIResponse{data=dto.BatchResult} "Batch processed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /certificados/gerar-lote [post]
func (c *CertificateController) GenerateBatch(ctx *gin.Context) {
	var req dto.GenerateBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.certificateService.GenerateBatch(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// DeleteCertificate removes a student's certificate
// @Summary Delete a certificate
// @Description Removes the file and clears the certificate fields together
// @Tags certificados
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Certificate deleted"
// @Failure 404 {object} dto.ErrorResponse "No certificate for this student"
// @Router /certificados/{id} [delete]
func (c *CertificateController) DeleteCertificate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.certificateService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Certificate deleted"},
		Timestamp: time.Now(),
	})
}

// ViewCertificate streams the certificate JPEG inline
// @Summary View a certificate
// @Tags certificados
// @Produce image/jpeg
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {file} file "Certificate image"
// @Failure 404 {object} dto.ErrorResponse "No certificate for this student"
// @Router /certificados/{id}/visualizar [get]
func (c *CertificateController) ViewCertificate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	path, _, err := c.certificateService.CertificatePath(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "image/jpeg")
	ctx.File(path)
}

// DownloadCertificatePDF wraps the certificate in a PDF attachment
// @Summary Download a certificate as PDF
// @Tags certificados
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {file} file "Certificate PDF"
// @Failure 404 {object} dto.ErrorResponse "No certificate for this student"
// @Router /certificados/{id}/download [get]
func (c *CertificateController) DownloadCertificatePDF(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	_, student, err := c.certificateService.CertificatePath(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pdfPath, err := c.certificateService.ExportPDF(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := "certificado_" + helpers.Slugify(student.Name) + filepath.Ext(pdfPath)
	ctx.FileAttachment(pdfPath, filename)
}
