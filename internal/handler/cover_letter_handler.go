package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vitaworks/vitae-backend/internal/model"
	"github.com/vitaworks/vitae-backend/internal/response"
	"github.com/vitaworks/vitae-backend/internal/service"
	"github.com/vitaworks/vitae-backend/internal/validator"
)

// CoverLetterHandler handles cover letter generation endpoints.
type CoverLetterHandler struct {
	coverLetterService *service.CoverLetterService
}

// NewCoverLetterHandler creates a new CoverLetterHandler.
func NewCoverLetterHandler(coverLetterService *service.CoverLetterService) *CoverLetterHandler {
	return &CoverLetterHandler{coverLetterService: coverLetterService}
}

// Enqueue godoc
// POST /api/v1/resumes/:id/cover-letters
// Queues generation of all four letter styles from the questionnaire.
func (h *CoverLetterHandler) Enqueue(c *gin.Context) {
	resumeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.GenerateCoverLetterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	job, err := h.coverLetterService.Enqueue(c.Request.Context(), resumeID, req)
	if err != nil {
		if errors.Is(err, service.ErrResumeNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{
		"job":      job,
		"warnings": req.Preferences.Warnings(),
	})
}

// GetLatest godoc
// GET /api/v1/resumes/:id/cover-letters
func (h *CoverLetterHandler) GetLatest(c *gin.Context) {
	resumeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	set, err := h.coverLetterService.GetLatest(c.Request.Context(), resumeID)
	if err != nil {
		if errors.Is(err, service.ErrNoCoverLetters) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, set)
}

// History godoc
// GET /api/v1/resumes/:id/cover-letters/history
func (h *CoverLetterHandler) History(c *gin.Context) {
	resumeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sets, err := h.coverLetterService.History(c.Request.Context(), resumeID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sets": sets})
}
