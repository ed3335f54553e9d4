// Package store provides persistence backends for the history and
// feedback slots.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/ZaguanLabs/gosocial"
)

// Store is a closable key-value backend.
type Store interface {
	gosocial.KeyValueStore

	// Close releases the backend's resources.
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Type      string        // "memory", "file" or "redis"
	DataDir   string        // file: directory holding one file per key
	RedisURL  string        // redis: connection URL
	KeyPrefix string        // redis: prefix for all keys
	TTL       time.Duration // redis: expiry, 0 keeps keys forever
}

// Open creates the backend named by cfg.Type.
func Open(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "memory":
		return NewInMemoryStore(), nil
	case "file":
		s, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		s, err := NewRedisStore(RedisConfig{
			URL:       cfg.RedisURL,
			TTL:       cfg.TTL,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
