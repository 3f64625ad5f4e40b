package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vitaworks/vitae-backend/internal/response"
	"github.com/vitaworks/vitae-backend/internal/service"
)

// ExportHandler serves enhanced resumes as downloadable documents.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportTXT godoc
// GET /api/v1/resumes/:id/export/txt
func (h *ExportHandler) ExportTXT(c *gin.Context) {
	resumeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	data, fileName, err := h.exportService.ExportTXT(c.Request.Context(), resumeID)
	if err != nil {
		h.failExport(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

// ExportPDF godoc
// GET /api/v1/resumes/:id/export/pdf
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	resumeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	data, fileName, err := h.exportService.ExportPDF(c.Request.Context(), resumeID)
	if err != nil {
		h.failExport(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *ExportHandler) failExport(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrResumeNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNotEnhanced):
		response.Fail(c, http.StatusConflict, response.ErrNotEnhanced)
	case errors.Is(err, service.ErrPDFUnavailable):
		response.Fail(c, http.StatusNotImplemented, response.ErrInternal)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
