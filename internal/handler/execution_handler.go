package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeprep/codeprep-backend/internal/model"
	"github.com/codeprep/codeprep-backend/internal/response"
	"github.com/codeprep/codeprep-backend/internal/service"
	"github.com/codeprep/codeprep-backend/internal/validator"
)

// ExecutionHandler handles the code execution proxy endpoint.
type ExecutionHandler struct {
	executionService *service.ExecutionService
}

// NewExecutionHandler creates a new ExecutionHandler.
func NewExecutionHandler(executionService *service.ExecutionService) *ExecutionHandler {
	return &ExecutionHandler{executionService: executionService}
}

// Execute godoc
// POST /api/v1/execute
// Runs code in the third-party sandbox and relays the result.
func (h *ExecutionHandler) Execute(c *gin.Context) {
	var req model.ExecuteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.executionService.Execute(c.Request.Context(), req.Code, req.Language)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSandboxRejected):
			response.Fail(c, http.StatusBadRequest, response.ErrExecutionFailed)
		case errors.Is(err, service.ErrUpstreamUnavailable):
			response.Fail(c, http.StatusBadGateway, response.ErrUpstreamFailure)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}
