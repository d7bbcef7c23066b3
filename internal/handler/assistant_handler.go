package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/codeprep/codeprep-backend/internal/model"
	"github.com/codeprep/codeprep-backend/internal/response"
	"github.com/codeprep/codeprep-backend/internal/service"
	"github.com/codeprep/codeprep-backend/internal/validator"
)

// Fallback texts when the AI upstream is unreachable. These are returned
// with 200 so the client renders them as a normal assistant message instead
// of an error toast.
const (
	assistantFallback = "I apologize, but I'm having trouble connecting to my knowledge base right now. Please try again later."
	helpFallback      = "I encountered an error while processing your request. Please try again."
)

// AssistantHandler handles the AI assistant proxy endpoints.
type AssistantHandler struct {
	assistantService *service.AssistantService
	log              zerolog.Logger
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistantService *service.AssistantService, log zerolog.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		log:              log.With().Str("component", "assistant_handler").Logger(),
	}
}

// Generate godoc
// POST /api/v1/assistant
// Sends a prompt to the assistant model and returns the generated text.
func (h *AssistantHandler) Generate(c *gin.Context) {
	var req model.AssistantRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	text, err := h.assistantService.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		h.log.Warn().Err(err).Msg("Assistant generation failed, serving fallback")
		response.Success(c, http.StatusOK, gin.H{"response": assistantFallback})
		return
	}

	response.Success(c, http.StatusOK, gin.H{"response": text})
}

// ProblemHelp godoc
// POST /api/v1/problem-help
// Answers a question in the context of a specific problem.
func (h *AssistantHandler) ProblemHelp(c *gin.Context) {
	var req model.ProblemHelpRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	answer, err := h.assistantService.ProblemHelp(c.Request.Context(), &req)
	if err != nil {
		h.log.Warn().Err(err).Msg("Problem help failed, serving fallback")
		response.Success(c, http.StatusOK, gin.H{"answer": helpFallback})
		return
	}

	response.Success(c, http.StatusOK, gin.H{"answer": answer})
}
