package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ZaguanLabs/gosocial"
	"github.com/ZaguanLabs/gosocial/composer"
	"github.com/ZaguanLabs/gosocial/internal/config"
	"github.com/ZaguanLabs/gosocial/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	result *gosocial.GenerationResult
	err    error
	last   gosocial.PromptRequest
}

func (f *fakeBackend) Generate(ctx context.Context, req gosocial.PromptRequest) (*gosocial.GenerationResult, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeBackend) Health() composer.Health {
	return composer.Health{Status: "ok", ModelLoaded: true, ModelName: "fake"}
}

func newTestServer(t *testing.T, backend Backend) *gin.Engine {
	t.Helper()
	return New(config.ServerConfig{AllowedOrigins: []string{"*"}}, backend, logger.Discard())
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGenerate_OK(t *testing.T) {
	ai := true
	backend := &fakeBackend{result: &gosocial.GenerationResult{
		Caption:        "Hello",
		PostIdeas:      []string{"one"},
		Hashtags:       []string{"#a"},
		AIPowered:      &ai,
		ModelUsed:      "fake",
		ProcessingTime: "0.10s",
	}}
	h := newTestServer(t, backend)

	rec := post(t, h, `{"theme":"coffee","language":"IT","basePrompt":"Write","tone":"hype"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got gosocial.GenerationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Hello", got.Caption)
	assert.Equal(t, "fake", got.ModelUsed)
	require.NotNil(t, got.AIPowered)
	assert.True(t, *got.AIPowered)

	assert.Equal(t, "coffee", backend.last.Theme)
	assert.Equal(t, "it", backend.last.Language)
	assert.Equal(t, gosocial.ToneHype, backend.last.Tone)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, `"`+gosocial.Fingerprint(backend.result)+`"`, rec.Header().Get("ETag"))
}

func TestGenerate_BadRequests(t *testing.T) {
	h := newTestServer(t, &fakeBackend{})

	tests := []struct {
		name string
		body string
	}{
		{"missing theme", `{"language":"it"}`},
		{"empty theme", `{"theme":"   "}`},
		{"not json", `theme=coffee`},
		{"bad tone", `{"theme":"coffee","tone":"angry"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestGenerate_BackendError(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	h := New(config.ServerConfig{}, &fakeBackend{err: errors.New("boom")}, log)
	rec := post(t, h, `{"theme":"coffee"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.Contains(t, buf.String(), "boom")
}

func TestGenerate_WithComposer(t *testing.T) {
	h := newTestServer(t, composer.NewService())

	rec := post(t, h, `{"theme":"street food"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got gosocial.GenerationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.Caption, "street food")
	assert.Len(t, got.PostIdeas, composer.IdeaCount)
	assert.Equal(t, composer.FallbackModel, got.ModelUsed)
	assert.NotEmpty(t, got.ProcessingTime)
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, &fakeBackend{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got["status"])
	assert.Equal(t, true, got["ai_model_loaded"])
	assert.Equal(t, "fake", got["model_name"])
}

func TestRequestID_Preserved(t *testing.T) {
	h := newTestServer(t, &fakeBackend{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, composer.NewService())

	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	req.Header.Set("Origin", "https://app.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"theme":"coffee"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://app.example.org")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	h := newTestServer(t, composer.NewService())
	post(t, h, `{"theme":"coffee"}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `gosocial_generations_total{outcome="fallback"} 1`)
	assert.Contains(t, body, `gosocial_http_requests_total{method="POST",route="/api/generate",status="200"} 1`)
	assert.Contains(t, body, "gosocial_generation_duration_seconds_count 1")
}

func TestRun_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, config.ServerConfig{Port: 0}, http.NotFoundHandler(), logger.Discard())
	}()
	cancel()
	assert.NoError(t, <-done)
}
