package gosocial

import (
	"context"
	"errors"
	"sync"
	"time"
)

// mapStore is an in-memory KeyValueStore for tests.
type mapStore struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func newMapStore() *mapStore {
	return &mapStore{data: make(map[string]string)}
}

func (m *mapStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = value
	return nil
}

// stepClock returns a clock that advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := now
		now = now.Add(step)
		return t
	}
}

// scriptedGenerator answers per theme and records every request.
type scriptedGenerator struct {
	mu       sync.Mutex
	results  map[string]*GenerationResult
	errs     map[string]error
	requests []PromptRequest
	block    chan struct{}
}

func newScriptedGenerator() *scriptedGenerator {
	return &scriptedGenerator{
		results: make(map[string]*GenerationResult),
		errs:    make(map[string]error),
	}
}

func (g *scriptedGenerator) Generate(ctx context.Context, req PromptRequest) (*GenerationResult, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	block := g.block
	res, ok := g.results[req.Theme]
	err := g.errs[req.Theme]
	g.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		r := sampleResult(req.Theme)
		return &r, nil
	}
	return res, nil
}

func (g *scriptedGenerator) Requests() []PromptRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]PromptRequest(nil), g.requests...)
}

func sampleResult(theme string) GenerationResult {
	return GenerationResult{
		Caption:   "All about " + theme,
		PostIdeas: []string{"Idea one for " + theme, "Idea two for " + theme},
		Hashtags:  []string{"#viral", "#coffee", "#a"},
	}
}

var errBackend = errors.New("backend down")
