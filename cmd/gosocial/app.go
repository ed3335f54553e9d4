package main

import (
	"fmt"
	"io"

	"github.com/ZaguanLabs/gosocial"
	"github.com/ZaguanLabs/gosocial/composer"
	"github.com/ZaguanLabs/gosocial/internal/config"
	"github.com/ZaguanLabs/gosocial/internal/logger"
	"github.com/ZaguanLabs/gosocial/provider"
	"github.com/ZaguanLabs/gosocial/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries the global flags and the resources built from them.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath  string
	backend     string
	endpoint    string
	lang        string
	tone        string
	storageType string
	dataDir     string
	logLevel    string
	jsonOut     bool

	cfg    *config.Config
	logger *logrus.Logger
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override("backend", &cfg.Generation.Backend, a.backend)
	override("endpoint", &cfg.API.Endpoint, a.endpoint)
	override("lang", &cfg.Generation.Language, a.lang)
	override("tone", &cfg.Generation.Tone, a.tone)
	override("storage", &cfg.Storage.Type, a.storageType)
	override("data-dir", &cfg.Storage.DataDir, a.dataDir)
	override("log-level", &cfg.Log.Level, a.logLevel)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, a.stderr)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = log
	return nil
}

// generator builds the configured backend with its retry and rate limit
// decorators.
func (a *app) generator() gosocial.Generator {
	var gen gosocial.Generator
	switch a.cfg.Generation.Backend {
	case config.BackendOpenAI:
		gen = provider.NewOpenAIGenerator(provider.OpenAIConfig{
			APIKey:      a.cfg.OpenAI.APIKey,
			Model:       a.cfg.OpenAI.Model,
			Temperature: a.cfg.OpenAI.Temperature,
			BaseURL:     a.cfg.OpenAI.BaseURL,
		})
	case config.BackendLocal:
		return composer.NewService(composer.WithLogger(a.logger))
	default:
		gen = provider.NewHTTPGenerator(provider.HTTPConfig{
			Endpoint:  a.cfg.API.Endpoint,
			Timeout:   a.cfg.API.Timeout,
			UserAgent: a.cfg.API.UserAgent,
		})
	}

	if a.cfg.RateLimit.Enabled {
		gen = gosocial.NewRateLimitedGenerator(gen, a.cfg.RateLimitPolicy())
	}
	if a.cfg.Retry.MaxRetries > 0 {
		gen = gosocial.NewRetryableGenerator(gen, a.cfg.RetryPolicy())
	}
	return gen
}

func (a *app) openStore() (store.Store, error) {
	return store.Open(store.Config{
		Type:      a.cfg.Storage.Type,
		DataDir:   a.cfg.Storage.DataDir,
		RedisURL:  a.cfg.Storage.RedisURL,
		KeyPrefix: a.cfg.Storage.KeyPrefix,
		TTL:       a.cfg.Storage.TTL,
	})
}

// session is a Studio bound to the configured store.
type session struct {
	*gosocial.Studio
	store store.Store
}

func (s *session) Close() error {
	return s.store.Close()
}

// openSession opens the store, loads history and builds a Studio. A nil
// generator is fine for commands that never generate.
func (a *app) openSession(gen gosocial.Generator) (*session, error) {
	st, err := a.openStore()
	if err != nil {
		return nil, err
	}

	history := gosocial.NewHistoryStore(
		gosocial.KeySlot(st, gosocial.HistoryKey),
		gosocial.WithHistoryLimit(a.cfg.Generation.HistoryLimit),
		gosocial.WithHistoryLogger(a.logger),
	)
	if err := history.Load(); err != nil {
		st.Close()
		return nil, fmt.Errorf("loading history: %w", err)
	}

	feedback := gosocial.NewFeedbackStore(
		gosocial.KeySlot(st, gosocial.FeedbackKey),
		gosocial.WithFeedbackLogger(a.logger),
	)

	studio := gosocial.NewStudio(gen, history, feedback,
		gosocial.WithLanguage(a.cfg.Language()),
		gosocial.WithTone(a.cfg.Tone()),
		gosocial.WithLogger(a.logger),
	)
	return &session{Studio: studio, store: st}, nil
}

// activateLatest makes the newest history entry current. It reports
// false when history is empty.
func (s *session) activateLatest() (gosocial.HistoryEntry, bool) {
	entries := s.History().List()
	if len(entries) == 0 {
		return gosocial.HistoryEntry{}, false
	}
	s.Activate(entries[0])
	return entries[0], true
}
