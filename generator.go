package gosocial

import "context"

// Generator is the interface for content generation backends.
type Generator interface {
	Generate(ctx context.Context, req PromptRequest) (*GenerationResult, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req PromptRequest) (*GenerationResult, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, req PromptRequest) (*GenerationResult, error) {
	return f(ctx, req)
}
