package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vitaworks/vitae-backend/internal/response"
	"github.com/vitaworks/vitae-backend/internal/service"
)

// EnhancementHandler handles enhancement job and result endpoints.
type EnhancementHandler struct {
	enhancementService *service.EnhancementService
}

// NewEnhancementHandler creates a new EnhancementHandler.
func NewEnhancementHandler(enhancementService *service.EnhancementService) *EnhancementHandler {
	return &EnhancementHandler{enhancementService: enhancementService}
}

// Enqueue godoc
// POST /api/v1/resumes/:id/enhance
// Queues the six-step enhancement pipeline for a resume.
func (h *EnhancementHandler) Enqueue(c *gin.Context) {
	resumeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	job, err := h.enhancementService.Enqueue(c.Request.Context(), resumeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResumeNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrAlreadyEnhancing):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"job": job})
}

// GetJob godoc
// GET /api/v1/jobs/:id
// Returns the persisted job row, merged with live progress when available.
func (h *EnhancementHandler) GetJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	job, progress, err := h.enhancementService.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	payload := gin.H{"job": job}
	if progress != nil {
		payload["progress"] = progress
	}
	response.Success(c, http.StatusOK, payload)
}

// ListJobs godoc
// GET /api/v1/resumes/:id/jobs
func (h *EnhancementHandler) ListJobs(c *gin.Context) {
	resumeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	jobs, err := h.enhancementService.ListJobs(c.Request.Context(), resumeID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"jobs": jobs})
}

// GetResult godoc
// GET /api/v1/resumes/:id/enhancement
// Returns the stored enhancement for a resume.
func (h *EnhancementHandler) GetResult(c *gin.Context) {
	resumeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	enhancement, err := h.enhancementService.GetResult(c.Request.Context(), resumeID)
	if err != nil {
		if errors.Is(err, service.ErrNotEnhanced) {
			response.Fail(c, http.StatusNotFound, response.ErrNotEnhanced)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, enhancement)
}
