package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/gosocial"
	"github.com/sashabaranov/go-openai"
)

// OpenAIGenerator implements Generator using OpenAI's chat API.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI generator.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.8)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIGenerator creates a new OpenAI generator.
func NewOpenAIGenerator(cfg OpenAIConfig) *OpenAIGenerator {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.8
	}

	return &OpenAIGenerator{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Model returns the model name.
func (g *OpenAIGenerator) Model() string {
	return g.model
}

// Generate asks the model for a caption, post ideas and hashtags.
func (g *OpenAIGenerator) Generate(ctx context.Context, req PromptRequest) (*gosocial.GenerationResult, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: buildUserMessage(req)},
		},
		Temperature: g.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &gosocial.GenerationError{
			Message:    "OpenAI API call failed",
			Cause:      err,
			StatusCode: statusOf(err),
			Retryable:  isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &gosocial.GenerationError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	result, err := parseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	aiPowered := true
	result.AIPowered = &aiPowered
	result.ModelUsed = g.model
	return result, nil
}

func buildSystemPrompt(req PromptRequest) string {
	lang := gosocial.LangIT
	if l, err := gosocial.LanguageForCode(req.Language); err == nil {
		lang = l
	}

	return fmt.Sprintf(`# Role
You are a social media copywriter.

# Task
Write content for a single post about the user's theme, in %s.

# Tone
%s

# Format
Return a valid JSON object with exactly these keys:
- "caption": one engaging caption with a call to action
- "post_ideas": an array of 5 short post ideas
- "hashtags": an array of up to 15 hashtags, each starting with '#'
Do NOT wrap the JSON in Markdown code blocks.`, lang.Name(), toneDescription(req.Tone))
}

func buildUserMessage(req PromptRequest) string {
	prompt := strings.TrimSpace(req.BasePrompt)
	if prompt == "" {
		return req.Theme
	}
	return prompt + " " + req.Theme
}

func toneDescription(tone gosocial.Tone) string {
	switch tone {
	case gosocial.ToneProfessional:
		return "Professional and credible. No slang, few emojis."
	case gosocial.ToneHype:
		return "High energy and enthusiastic. Use emojis and exclamation marks."
	default:
		return "Friendly and warm, as if talking to a follower you know."
	}
}

func parseResponse(content string) (*gosocial.GenerationResult, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var result gosocial.GenerationResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, &gosocial.GenerationError{
			Message: "invalid response format from OpenAI",
			Cause:   err,
		}
	}
	if err := result.Validate(); err != nil {
		return nil, &gosocial.GenerationError{
			Message: "incomplete response from OpenAI",
			Cause:   err,
		}
	}
	return &result, nil
}

func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if status := statusOf(err); status != 0 {
		return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
	}

	// Check for common retryable conditions
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
	}
	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAIGenerator implements Generator
var _ Generator = (*OpenAIGenerator)(nil)
