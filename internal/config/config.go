// Package config loads gosocial settings from defaults, an optional YAML
// file and GOSOCIAL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ZaguanLabs/gosocial"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// GOSOCIAL_STORAGE_TYPE.
const EnvPrefix = "GOSOCIAL"

// Backend names accepted by generation.backend.
const (
	BackendHTTP   = "http"
	BackendOpenAI = "openai"
	BackendLocal  = "local"
)

// Config is the complete gosocial configuration.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	API        APIConfig        `mapstructure:"api"`
	Generation GenerationConfig `mapstructure:"generation"`
	Retry      RetryConfig      `mapstructure:"retry"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Storage    StorageConfig    `mapstructure:"storage"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Server     ServerConfig     `mapstructure:"server"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// APIConfig points the HTTP backend at its endpoint.
type APIConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// GenerationConfig holds the user-facing defaults.
type GenerationConfig struct {
	Backend      string `mapstructure:"backend"`
	Language     string `mapstructure:"language"`
	Tone         string `mapstructure:"tone"`
	HistoryLimit int    `mapstructure:"history_limit"`
}

type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries"`
	BaseDelay  time.Duration `mapstructure:"base_delay"`
	MaxDelay   time.Duration `mapstructure:"max_delay"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
}

type StorageConfig struct {
	Type      string        `mapstructure:"type"`
	DataDir   string        `mapstructure:"data_dir"`
	RedisURL  string        `mapstructure:"redis_url"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	BaseURL     string  `mapstructure:"base_url"`
}

// ServerConfig configures the reference backend.
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	// ModelBackend selects the model behind /api/generate: "openai" or
	// "local" (composer only).
	ModelBackend string `mapstructure:"model_backend"`
}

// Default values.
var defaults = map[string]any{
	"log.level":  "info",
	"log.format": "text",

	"api.endpoint":   "http://localhost:5000/api/generate",
	"api.timeout":    60 * time.Second,
	"api.user_agent": gosocial.UserAgent(),

	"generation.backend":       BackendHTTP,
	"generation.language":      string(gosocial.LangIT),
	"generation.tone":          string(gosocial.ToneFriendly),
	"generation.history_limit": gosocial.DefaultHistoryLimit,

	"retry.max_retries": 3,
	"retry.base_delay":  time.Second,
	"retry.max_delay":   30 * time.Second,

	"rate_limit.enabled":             false,
	"rate_limit.requests_per_minute": 30,
	"rate_limit.burst":               30,

	"storage.type":       "file",
	"storage.data_dir":   "",
	"storage.redis_url":  "",
	"storage.key_prefix": "gosocial:",
	"storage.ttl":        time.Duration(0),

	"openai.api_key":     "",
	"openai.model":       "gpt-4o-mini",
	"openai.temperature": 0.8,
	"openai.base_url":    "",

	"server.port":            5000,
	"server.read_timeout":    30 * time.Second,
	"server.write_timeout":   90 * time.Second,
	"server.allowed_origins": []string{"*"},
	"server.model_backend":   BackendLocal,
}

// Load layers defaults, the YAML file at path (skipped when path is empty)
// and the environment. A missing file is an error only when path is set.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaultDataDir()
	}
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if _, err := gosocial.ParseLanguage(c.Generation.Language); err != nil {
		errs = append(errs, fmt.Errorf("generation.language: %w", err))
	}
	if _, err := gosocial.ParseTone(c.Generation.Tone); err != nil {
		errs = append(errs, fmt.Errorf("generation.tone: %w", err))
	}

	switch c.Generation.Backend {
	case BackendHTTP:
		if c.API.Endpoint == "" {
			errs = append(errs, errors.New("api.endpoint is required for the http backend"))
		}
	case BackendOpenAI:
		if c.OpenAI.APIKey == "" {
			errs = append(errs, errors.New("openai.api_key is required for the openai backend"))
		}
	case BackendLocal:
	default:
		errs = append(errs, fmt.Errorf("generation.backend: unknown backend %q", c.Generation.Backend))
	}

	if c.Generation.HistoryLimit < 1 {
		errs = append(errs, errors.New("generation.history_limit must be positive"))
	}

	switch c.Storage.Type {
	case "", "memory", "file":
	case "redis":
		if c.Storage.RedisURL == "" {
			errs = append(errs, errors.New("storage.redis_url is required for redis storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.type: unknown type %q", c.Storage.Type))
	}

	if c.Retry.MaxRetries < 0 {
		errs = append(errs, errors.New("retry.max_retries must not be negative"))
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("rate_limit.requests_per_minute must be positive"))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Server.ModelBackend {
	case BackendLocal, BackendOpenAI:
	default:
		errs = append(errs, fmt.Errorf("server.model_backend: unknown backend %q", c.Server.ModelBackend))
	}

	return errors.Join(errs...)
}

// Language returns the parsed default language.
func (c *Config) Language() gosocial.Language {
	lang, err := gosocial.ParseLanguage(c.Generation.Language)
	if err != nil {
		return gosocial.LangIT
	}
	return lang
}

// Tone returns the parsed default tone.
func (c *Config) Tone() gosocial.Tone {
	tone, err := gosocial.ParseTone(c.Generation.Tone)
	if err != nil {
		return gosocial.ToneFriendly
	}
	return tone
}

// RetryPolicy converts the retry section.
func (c *Config) RetryPolicy() gosocial.RetryConfig {
	return gosocial.RetryConfig{
		MaxRetries: c.Retry.MaxRetries,
		BaseDelay:  c.Retry.BaseDelay,
		MaxDelay:   c.Retry.MaxDelay,
	}
}

// RateLimitPolicy converts the rate_limit section.
func (c *Config) RateLimitPolicy() gosocial.RateLimitConfig {
	return gosocial.RateLimitConfig{
		RequestsPerMinute: c.RateLimit.RequestsPerMinute,
		BurstSize:         c.RateLimit.Burst,
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "gosocial"
	}
	return ".gosocial"
}
