package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vitaworks/vitae-backend/internal/response"
	"github.com/vitaworks/vitae-backend/internal/service"
)

// ResumeHandler handles resume upload and lifecycle endpoints.
type ResumeHandler struct {
	resumeService *service.ResumeService
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(resumeService *service.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumeService: resumeService}
}

// Upload godoc
// POST /api/v1/resumes
// Accepts a multipart file upload, extracts text and entities, and stores the
// resume. Responds with the extraction report and quality score.
func (h *ResumeHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	result, err := h.resumeService.Upload(c.Request.Context(), file, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusUnsupportedMediaType, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		case errors.Is(err, service.ErrEmptyFile):
			response.Fail(c, http.StatusBadRequest, response.ErrEmptyFile)
		case errors.Is(err, service.ErrNoExtractableText):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrExtractionEmpty)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Get godoc
// GET /api/v1/resumes/:id
func (h *ResumeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	resume, err := h.resumeService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrResumeNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, resume)
}

// List godoc
// GET /api/v1/resumes?page=1&limit=20
func (h *ResumeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resumes, total, err := h.resumeService.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	totalPages := (total + limit - 1) / limit

	response.SuccessWithPagination(c, http.StatusOK, resumes, &response.Pagination{
		Page:       page,
		PerPage:    limit,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// Delete godoc
// DELETE /api/v1/resumes/:id
func (h *ResumeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.resumeService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrResumeNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Search godoc
// GET /api/v1/resumes/search?q=golang&limit=10
// Full-text search across indexed resume content, skills and file names.
func (h *ResumeHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"q": "query parameter is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	resumes, hits, err := h.resumeService.Search(c.Request.Context(), query, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	results := make([]gin.H, 0, len(resumes))
	for i, resume := range resumes {
		results = append(results, gin.H{
			"resume":    resume,
			"score":     hits[i].Score,
			"fragments": hits[i].Fragments,
		})
	}

	response.Success(c, http.StatusOK, gin.H{
		"query":   query,
		"results": results,
	})
}
