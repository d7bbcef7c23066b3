package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/codeprep/codeprep-backend/internal/config"
	"github.com/codeprep/codeprep-backend/internal/model"
)

const (
	geminiGenerateURL  = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"
	huggingFaceModel   = "mistralai/Mistral-7B-Instruct-v0.1"
	huggingFaceBaseURL = "https://api-inference.huggingface.co/models/"
)

// ErrAssistantUnavailable signals that the AI upstream could not produce a
// response. Handlers degrade to a canned fallback message instead of
// surfacing this as an HTTP error.
var ErrAssistantUnavailable = errors.New("assistant upstream unavailable")

// codeBlockRE matches fenced markdown code blocks, used to strip the
// duplicated blocks the model occasionally emits.
var codeBlockRE = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\n.*?```")

// AssistantService proxies chat prompts to the Gemini and Hugging Face
// inference APIs and post-processes the generated text.
type AssistantService struct {
	cfg    *config.Config
	client *http.Client
	log    zerolog.Logger
}

// NewAssistantService creates a new AssistantService.
func NewAssistantService(cfg *config.Config, log zerolog.Logger) *AssistantService {
	return &AssistantService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.UpstreamTimeout},
		log:    log.With().Str("component", "assistant_service").Logger(),
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends a prompt to Gemini and returns the cleaned response text.
func (s *AssistantService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.cfg.GeminiAPIKey == "" {
		return "", fmt.Errorf("%w: no API key configured", ErrAssistantUnavailable)
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := geminiGenerateURL + "?key=" + s.cfg.GeminiAPIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error().Err(err).Msg("Gemini request failed")
		return "", ErrAssistantUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Error().Int("status", resp.StatusCode).Msg("Gemini returned non-OK status")
		return "", ErrAssistantUnavailable
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.log.Error().Err(err).Msg("Gemini response decode failed")
		return "", ErrAssistantUnavailable
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", ErrAssistantUnavailable
	}

	return CleanResponse(result.Candidates[0].Content.Parts[0].Text), nil
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// ProblemHelp asks the Hugging Face inference API a question in the context
// of a specific problem.
func (s *AssistantService) ProblemHelp(ctx context.Context, req *model.ProblemHelpRequest) (string, error) {
	if s.cfg.HuggingFaceAPIKey == "" {
		return "", fmt.Errorf("%w: no API key configured", ErrAssistantUnavailable)
	}

	prompt := buildHelpPrompt(req)

	payload, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   500,
			Temperature:    0.7,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, huggingFaceBaseURL+huggingFaceModel, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.HuggingFaceAPIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.log.Error().Err(err).Msg("Hugging Face request failed")
		return "", ErrAssistantUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Error().Int("status", resp.StatusCode).Msg("Hugging Face returned non-OK status")
		return "", ErrAssistantUnavailable
	}

	// The inference API returns either a bare generation object or a
	// single-element array of them.
	var generations []hfGeneration
	var single hfGeneration

	body := new(bytes.Buffer)
	if _, err := body.ReadFrom(resp.Body); err != nil {
		return "", ErrAssistantUnavailable
	}
	if err := json.Unmarshal(body.Bytes(), &generations); err != nil {
		if err := json.Unmarshal(body.Bytes(), &single); err != nil {
			s.log.Error().Msg("Hugging Face response decode failed")
			return "", ErrAssistantUnavailable
		}
		generations = []hfGeneration{single}
	}

	if len(generations) == 0 || strings.TrimSpace(generations[0].GeneratedText) == "" {
		return "", ErrAssistantUnavailable
	}

	return CleanResponse(generations[0].GeneratedText), nil
}

// buildHelpPrompt formats the Mistral instruction prompt with the problem
// context.
func buildHelpPrompt(req *model.ProblemHelpRequest) string {
	title := req.ProblemTitle
	if title == "" {
		title = "Unknown"
	}
	description := req.ProblemDescription
	if description == "" {
		description = "Not provided"
	}
	language := req.Language
	if language == "" {
		language = "Not specified"
	}

	var b strings.Builder
	b.WriteString("<s>[INST] I'm working on a coding problem and need help.\n\n")
	fmt.Fprintf(&b, "Problem Title: %s\n", title)
	fmt.Fprintf(&b, "Problem Description: %s\n", description)
	fmt.Fprintf(&b, "Programming Language: %s\n\n", language)
	fmt.Fprintf(&b, "Question: %s\n\n", req.Question)
	b.WriteString("Please provide a helpful, concise response. [/INST]")
	return b.String()
}

// CleanResponse removes duplicated fenced code blocks from generated text.
// Small models sometimes emit the same snippet twice in a row; only the
// first occurrence of each identical block is kept.
func CleanResponse(raw string) string {
	seen := make(map[string]bool)
	cleaned := codeBlockRE.ReplaceAllStringFunc(raw, func(block string) string {
		key := strings.TrimSpace(block)
		if seen[key] {
			return ""
		}
		seen[key] = true
		return block
	})

	// Collapse the blank runs left behind by removed blocks.
	for strings.Contains(cleaned, "\n\n\n") {
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(cleaned)
}
