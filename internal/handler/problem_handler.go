package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codeprep/codeprep-backend/internal/model"
	"github.com/codeprep/codeprep-backend/internal/response"
	"github.com/codeprep/codeprep-backend/internal/service"
)

// ProblemHandler handles problem catalog endpoints.
type ProblemHandler struct {
	catalogService *service.CatalogService
}

// NewProblemHandler creates a new ProblemHandler.
func NewProblemHandler(catalogService *service.CatalogService) *ProblemHandler {
	return &ProblemHandler{catalogService: catalogService}
}

// ListProblems godoc
// GET /api/v1/problems/:course_id
// Lists a course's problems ordered by ordinal. An unknown course returns
// an empty list with 200 — course IDs are permissive lookups.
func (h *ProblemHandler) ListProblems(c *gin.Context) {
	courseID := c.Param("course_id")

	problems, err := h.catalogService.ListProblems(c.Request.Context(), courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if problems == nil {
		problems = []model.ProblemSummary{}
	}

	response.Success(c, http.StatusOK, gin.H{"problems": problems})
}

// GetProblem godoc
// GET /api/v1/problems/:course_id/:problem_id
// Returns one problem with the solution and hidden test cases stripped.
// A miss includes the known course IDs as diagnostic context.
func (h *ProblemHandler) GetProblem(c *gin.Context) {
	courseID := c.Param("course_id")
	problemID, err := strconv.Atoi(c.Param("problem_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	problem, err := h.catalogService.GetProblem(c.Request.Context(), courseID, problemID)
	if err != nil {
		if errors.Is(err, service.ErrProblemNotFound) {
			courseIDs, idsErr := h.catalogService.KnownCourseIDs(c.Request.Context())
			if idsErr != nil {
				courseIDs = []string{}
			}
			response.FailWithDetails(c, http.StatusNotFound, response.ErrNotFound, gin.H{
				"available_course_ids": courseIDs,
			})
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"problem": problem})
}
