package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codeprep/codeprep-backend/internal/middleware"
	"github.com/codeprep/codeprep-backend/internal/model"
	"github.com/codeprep/codeprep-backend/internal/response"
	"github.com/codeprep/codeprep-backend/internal/service"
	"github.com/codeprep/codeprep-backend/internal/validator"
)

// ProgressHandler handles progress tracking endpoints.
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GetCourseProgress godoc
// GET /api/v1/progress/:course_id
// Returns the authenticated user's progress for one course, lazily creating
// the summary on first read.
func (h *ProgressHandler) GetCourseProgress(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID := c.Param("course_id")

	view, err := h.progressService.GetCourseProgress(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress": view})
}

// MarkCompleted godoc
// POST /api/v1/progress/:course_id/problem/:problem_id
// Records a solved problem. Idempotent: re-submission refreshes the stored
// solution and timestamp without changing counts.
func (h *ProgressHandler) MarkCompleted(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	courseID := c.Param("course_id")
	problemID, err := strconv.Atoi(c.Param("problem_id"))
	if err != nil || problemID < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.MarkCompletedRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.progressService.MarkCompleted(c.Request.Context(), claims.UserID, courseID, problemID, req.Solution); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// GetBatchProgress godoc
// POST /api/v1/progress/batch
// Returns progress for many courses at once. Summaries missing for requested
// courses are created in the background; their entries report zeroed
// defaults until the worker catches up.
func (h *ProgressHandler) GetBatchProgress(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.BatchProgressRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	progress, err := h.progressService.GetBatchProgress(c.Request.Context(), claims.UserID, req.CourseIDs)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"progress": progress})
}
