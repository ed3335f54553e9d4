package composer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ZaguanLabs/gosocial"
	"github.com/sirupsen/logrus"
)

// FallbackModel is reported as model_used when the composer answered.
const FallbackModel = "fallback"

// Service answers generation requests, preferring a model and falling
// back to the Composer.
type Service struct {
	model     gosocial.Generator
	modelName string
	composer  *Composer
	logger    logrus.FieldLogger
	clock     func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithModel sets the model generator and its reported name.
func WithModel(g gosocial.Generator, name string) ServiceOption {
	return func(s *Service) {
		s.model = g
		s.modelName = name
	}
}

// WithComposer replaces the default Composer.
func WithComposer(c *Composer) ServiceOption {
	return func(s *Service) {
		s.composer = c
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// WithClock sets the time source used for processing_time.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *Service) {
		s.clock = clock
	}
}

// NewService creates a Service. Without WithModel it always composes.
func NewService(opts ...ServiceOption) *Service {
	l := logrus.New()
	l.SetOutput(io.Discard)

	s := &Service{
		composer: New(),
		logger:   l,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Health describes the service state.
type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"ai_model_loaded"`
	ModelName   string `json:"model_name"`
}

// Health reports whether a model is configured.
func (s *Service) Health() Health {
	h := Health{Status: "ok", ModelName: "none"}
	if s.model != nil {
		h.ModelLoaded = true
		h.ModelName = s.modelName
	}
	return h
}

// Generate implements gosocial.Generator. It only fails for an empty theme.
func (s *Service) Generate(ctx context.Context, req gosocial.PromptRequest) (*gosocial.GenerationResult, error) {
	if err := (gosocial.GenerationRequest{Theme: req.Theme}).Validate(); err != nil {
		return nil, err
	}

	start := s.clock()
	result := s.fromModel(ctx, req)
	if result == nil {
		composed := s.composer.Compose(req.Theme)
		aiPowered := false
		composed.AIPowered = &aiPowered
		composed.ModelUsed = FallbackModel
		result = &composed
	}

	result.ProcessingTime = fmt.Sprintf("%.2fs", s.clock().Sub(start).Seconds())
	return result, nil
}

// fromModel returns the model's answer, or nil when there is none.
func (s *Service) fromModel(ctx context.Context, req gosocial.PromptRequest) *gosocial.GenerationResult {
	if s.model == nil {
		return nil
	}

	res, err := s.model.Generate(ctx, req)
	if err == nil {
		err = res.Validate()
	}
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"theme": req.Theme,
			"model": s.modelName,
		}).WithError(err).Warn("model generation failed, using fallback")
		return nil
	}

	out := res.Clone()
	if cleaned := CleanGeneratedText(out.Caption, req.BasePrompt); cleaned != "" {
		out.Caption = cleaned
	}
	aiPowered := true
	out.AIPowered = &aiPowered
	if out.ModelUsed == "" {
		out.ModelUsed = s.modelName
	}
	return &out
}

// Verify Service implements Generator
var _ gosocial.Generator = (*Service)(nil)
