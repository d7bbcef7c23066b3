package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ok", func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"value": 42})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "test-req-id")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
	if got := w.Header().Get("X-Request-ID"); got != "test-req-id" {
		t.Errorf("X-Request-ID header = %q, want %q", got, "test-req-id")
	}

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Error != nil {
		t.Errorf("unexpected error body: %+v", body.Error)
	}
	if body.Metadata.RequestID != "test-req-id" {
		t.Errorf("metadata request_id = %q, want %q", body.Metadata.RequestID, "test-req-id")
	}
	if body.Metadata.Timestamp == "" {
		t.Error("metadata timestamp missing")
	}
}

func TestFailEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/missing", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Error == nil {
		t.Fatal("error body missing")
	}
	if body.Error.Code != ErrNotFound {
		t.Errorf("error code = %q, want %q", body.Error.Code, ErrNotFound)
	}
	if body.Error.Message == "" {
		t.Error("error message missing")
	}
}

func TestFailWithDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/missing", func(c *gin.Context) {
		FailWithDetails(c, http.StatusNotFound, ErrNotFound, gin.H{
			"available_course_ids": []string{"python-basics", "go-basics"},
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var body struct {
		Error struct {
			Details struct {
				AvailableCourseIDs []string `json:"available_course_ids"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Error.Details.AvailableCourseIDs) != 2 {
		t.Errorf("details not relayed: %+v", body.Error.Details)
	}
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ok", func(c *gin.Context) {
		Success(c, http.StatusOK, nil)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated X-Request-ID header")
	}
}
