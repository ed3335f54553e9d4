package provider

import (
	"context"
	"sync"

	"github.com/ZaguanLabs/gosocial"
)

// MockGenerator is a scripted generator for tests and offline runs.
type MockGenerator struct {
	mu      sync.Mutex
	results map[string]gosocial.GenerationResult
	errs    map[string]error
	calls   []PromptRequest
}

// NewMockGenerator creates a mock that answers every theme with a canned result.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		results: make(map[string]gosocial.GenerationResult),
		errs:    make(map[string]error),
	}
}

// SetResult scripts the result for theme.
func (m *MockGenerator) SetResult(theme string, r gosocial.GenerationResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[theme] = r.Clone()
}

// SetError scripts a failure for theme.
func (m *MockGenerator) SetError(theme string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[theme] = err
}

// Generate returns the scripted outcome, or a canned result.
func (m *MockGenerator) Generate(ctx context.Context, req PromptRequest) (*gosocial.GenerationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.errs[req.Theme]; ok {
		return nil, err
	}
	if r, ok := m.results[req.Theme]; ok {
		out := r.Clone()
		return &out, nil
	}

	aiPowered := false
	return &gosocial.GenerationResult{
		Caption:   "Mock caption about " + req.Theme,
		PostIdeas: []string{"Behind the scenes: " + req.Theme, "Tips about " + req.Theme},
		Hashtags:  []string{"#mock", "#" + req.Theme},
		AIPowered: &aiPowered,
		ModelUsed: "mock",
	}, nil
}

// CallCount returns the number of Generate calls.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns the received requests in order.
func (m *MockGenerator) Calls() []PromptRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PromptRequest(nil), m.calls...)
}

// Reset clears the call log.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Verify MockGenerator implements Generator
var _ Generator = (*MockGenerator)(nil)
