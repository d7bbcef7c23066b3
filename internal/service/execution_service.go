package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/codeprep/codeprep-backend/internal/config"
	"github.com/codeprep/codeprep-backend/internal/model"
)

const jdoodleExecuteURL = "https://api.jdoodle.com/v1/execute"

// Sentinel errors for the execution proxy.
var (
	// ErrSandboxRejected carries the sandbox's own error text (e.g. quota
	// exhausted, unsupported language version).
	ErrSandboxRejected = errors.New("sandbox rejected request")
	// ErrUpstreamUnavailable signals a transport or non-2xx failure talking
	// to the sandbox.
	ErrUpstreamUnavailable = errors.New("execution upstream unavailable")
)

// languageConfig maps an editor language to the sandbox's language name and
// version index.
type languageConfig struct {
	Language     string
	VersionIndex string
}

// jdoodleLanguages follows the sandbox API's naming.
var jdoodleLanguages = map[string]languageConfig{
	"python":     {Language: "python3", VersionIndex: "0"},
	"javascript": {Language: "nodejs", VersionIndex: "0"},
	"java":       {Language: "java", VersionIndex: "0"},
	"c":          {Language: "c", VersionIndex: "0"},
	"cpp":        {Language: "cpp", VersionIndex: "0"},
	"php":        {Language: "php", VersionIndex: "0"},
	"ruby":       {Language: "ruby", VersionIndex: "0"},
	"go":         {Language: "go", VersionIndex: "0"},
	"csharp":     {Language: "csharp", VersionIndex: "0"},
	"typescript": {Language: "typescript", VersionIndex: "0"},
}

// resolveLanguage returns the sandbox mapping for an editor language,
// passing unknown names through unchanged at version index 0.
func resolveLanguage(language string) languageConfig {
	key := strings.ToLower(language)
	if lc, ok := jdoodleLanguages[key]; ok {
		return lc
	}
	return languageConfig{Language: key, VersionIndex: "0"}
}

// ExecutionService proxies code execution to the JDoodle sandbox. Judging a
// submission correct happens client-side against the visible test cases;
// this service only runs code and relays the sandbox verdict.
type ExecutionService struct {
	cfg    *config.Config
	client *http.Client
	log    zerolog.Logger
}

// NewExecutionService creates a new ExecutionService.
func NewExecutionService(cfg *config.Config, log zerolog.Logger) *ExecutionService {
	return &ExecutionService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.UpstreamTimeout},
		log:    log.With().Str("component", "execution_service").Logger(),
	}
}

type jdoodleRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	Script       string `json:"script"`
	Language     string `json:"language"`
	VersionIndex string `json:"versionIndex"`
}

type jdoodleResponse struct {
	Output     string `json:"output"`
	Memory     string `json:"memory"`
	CPUTime    string `json:"cpuTime"`
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
}

// Execute runs code in the sandbox and returns the relayed result.
func (s *ExecutionService) Execute(ctx context.Context, code, language string) (*model.ExecutionResult, error) {
	lc := resolveLanguage(language)

	payload, err := json.Marshal(jdoodleRequest{
		ClientID:     s.cfg.JDoodleClientID,
		ClientSecret: s.cfg.JDoodleClientSecret,
		Script:       code,
		Language:     lc.Language,
		VersionIndex: lc.VersionIndex,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, jdoodleExecuteURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error().Err(err).Str("language", lc.Language).Msg("Sandbox request failed")
		return nil, ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	var result jdoodleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.log.Error().Err(err).Int("status", resp.StatusCode).Msg("Sandbox response decode failed")
		return nil, ErrUpstreamUnavailable
	}

	if result.Error != "" {
		s.log.Warn().Str("sandbox_error", result.Error).Msg("Sandbox rejected execution")
		return nil, fmt.Errorf("%w: %s", ErrSandboxRejected, result.Error)
	}

	return &model.ExecutionResult{
		Output:     result.Output,
		Memory:     result.Memory,
		CPUTime:    result.CPUTime,
		StatusCode: result.StatusCode,
	}, nil
}
