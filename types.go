package gosocial

import (
	"fmt"
	"strings"
)

// Language is a supported content language.
type Language string

const (
	// LangIT is Italian, the language with diacritic detection.
	LangIT Language = "IT"
	// LangEN is English.
	LangEN Language = "EN"
)

// Languages lists the supported languages in display order.
var Languages = []Language{LangIT, LangEN}

// ParseLanguage accepts "it", "IT", "en" or "EN".
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToUpper(strings.TrimSpace(s))) {
	case LangIT:
		return LangIT, nil
	case LangEN:
		return LangEN, nil
	}
	return "", &ValidationError{Field: "language", Message: fmt.Sprintf("unsupported language %q", s)}
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == LangIT || l == LangEN
}

// Code returns the lowercase two-letter code sent over the wire.
func (l Language) Code() string {
	return strings.ToLower(string(l))
}

// Tone is a named style modifier sent alongside the theme.
type Tone string

const (
	ToneFriendly     Tone = "friendly"
	ToneProfessional Tone = "professional"
	ToneHype         Tone = "hype"
)

// Tones lists the supported tones.
var Tones = []Tone{ToneFriendly, ToneProfessional, ToneHype}

// ParseTone parses a tone name case-insensitively.
func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t, nil
	}
	return "", &ValidationError{Field: "tone", Message: fmt.Sprintf("unsupported tone %q", s)}
}

// Valid reports whether t is a supported tone.
func (t Tone) Valid() bool {
	switch t {
	case ToneFriendly, ToneProfessional, ToneHype:
		return true
	}
	return false
}

// GenerationRequest is what a user asks for.
type GenerationRequest struct {
	Theme    string
	Language Language
	Tone     Tone
}

// Validate checks that the theme is non-empty after trimming.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Theme) == "" {
		return &ValidationError{Field: "theme", Message: "theme is empty"}
	}
	return nil
}

// PromptRequest is the body sent to a generation backend.
type PromptRequest struct {
	Theme      string `json:"theme"`
	Language   string `json:"language"` // lowercase code, e.g. "it"
	BasePrompt string `json:"basePrompt"`
	Tone       Tone   `json:"tone"`
}

// GenerationResult is the structured content returned by a backend.
type GenerationResult struct {
	Caption        string   `json:"caption"`
	PostIdeas      []string `json:"post_ideas"`
	Hashtags       []string `json:"hashtags"`
	AIPowered      *bool    `json:"ai_powered,omitempty"`
	ProcessingTime string   `json:"processing_time,omitempty"`
	ModelUsed      string   `json:"model_used,omitempty"`
}

// Validate checks the result against the expected response schema.
func (r *GenerationResult) Validate() error {
	if r == nil {
		return &SchemaError{Message: "result is empty"}
	}
	if strings.TrimSpace(r.Caption) == "" {
		return &SchemaError{Field: "caption", Message: "missing caption"}
	}
	if r.PostIdeas == nil {
		return &SchemaError{Field: "post_ideas", Message: "missing post ideas"}
	}
	if r.Hashtags == nil {
		return &SchemaError{Field: "hashtags", Message: "missing hashtags"}
	}
	return nil
}

// Clone returns a deep copy of r.
func (r GenerationResult) Clone() GenerationResult {
	out := r
	out.PostIdeas = append([]string(nil), r.PostIdeas...)
	out.Hashtags = append([]string(nil), r.Hashtags...)
	if r.AIPowered != nil {
		v := *r.AIPowered
		out.AIPowered = &v
	}
	return out
}

// WithCaption returns a copy of r with the caption replaced.
func (r GenerationResult) WithCaption(caption string) GenerationResult {
	out := r.Clone()
	out.Caption = caption
	return out
}

// WithPostIdea returns a copy of r with the idea at index i replaced.
func (r GenerationResult) WithPostIdea(i int, idea string) (GenerationResult, error) {
	if i < 0 || i >= len(r.PostIdeas) {
		return r, fmt.Errorf("post idea %d: %w", i, ErrIndexOutOfRange)
	}
	out := r.Clone()
	out.PostIdeas[i] = idea
	return out, nil
}

// WithHashtags returns a copy of r with the whole hashtag set replaced.
func (r GenerationResult) WithHashtags(tags []string) GenerationResult {
	out := r.Clone()
	out.Hashtags = append([]string{}, tags...)
	return out
}

// HistoryEntry is one past generation.
type HistoryEntry struct {
	ID        int64            `json:"id"`
	Theme     string           `json:"theme"`
	Results   GenerationResult `json:"results"`
	Timestamp string           `json:"timestamp"`
	Language  Language         `json:"language,omitempty"`
}

// FeedbackEntry is a single user rating.
type FeedbackEntry struct {
	Rating    int      `json:"rating"`
	Comment   string   `json:"comment"`
	Timestamp string   `json:"timestamp"` // RFC 3339
	Theme     string   `json:"theme"`
	Language  Language `json:"language"`
	Tone      Tone     `json:"tone"`
}

// FeedbackContext describes what the feedback refers to.
type FeedbackContext struct {
	Theme    string
	Language Language
	Tone     Tone
}
