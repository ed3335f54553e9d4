package gosocial

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Rating bounds.
const (
	MinRating = 0
	MaxRating = 5
)

// FeedbackStore is an unbounded append-only log of user ratings.
type FeedbackStore struct {
	slot   Slot
	clock  func() time.Time
	logger logrus.FieldLogger
	mu     sync.Mutex
}

// FeedbackOption configures a FeedbackStore.
type FeedbackOption func(*FeedbackStore)

// WithFeedbackClock sets the time source for entry timestamps.
func WithFeedbackClock(clock func() time.Time) FeedbackOption {
	return func(f *FeedbackStore) {
		f.clock = clock
	}
}

// WithFeedbackLogger sets the logger.
func WithFeedbackLogger(l logrus.FieldLogger) FeedbackOption {
	return func(f *FeedbackStore) {
		f.logger = l
	}
}

// NewFeedbackStore creates a store backed by slot.
func NewFeedbackStore(slot Slot, opts ...FeedbackOption) *FeedbackStore {
	f := &FeedbackStore{
		slot:   slot,
		clock:  time.Now,
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Submit appends a new entry and writes the whole list back.
func (f *FeedbackStore) Submit(rating int, comment string, fc FeedbackContext) (FeedbackEntry, error) {
	if rating < MinRating || rating > MaxRating {
		return FeedbackEntry{}, &ValidationError{
			Field:   "rating",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinRating, MaxRating, rating),
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return FeedbackEntry{}, err
	}

	entry := FeedbackEntry{
		Rating:    rating,
		Comment:   comment,
		Timestamp: f.clock().UTC().Format(time.RFC3339Nano),
		Theme:     fc.Theme,
		Language:  fc.Language,
		Tone:      fc.Tone,
	}
	entries = append(entries, entry)

	data, err := json.Marshal(entries)
	if err != nil {
		return FeedbackEntry{}, err
	}
	if err := f.slot.Write(string(data)); err != nil {
		return FeedbackEntry{}, err
	}
	return entry, nil
}

// List returns all persisted entries in submission order.
func (f *FeedbackStore) List() ([]FeedbackEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *FeedbackStore) read() ([]FeedbackEntry, error) {
	raw, ok, err := f.slot.Read()
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []FeedbackEntry{}, nil
	}

	var entries []FeedbackEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		f.logger.WithError(err).Warn("discarding unreadable feedback log")
		return []FeedbackEntry{}, nil
	}
	if entries == nil {
		entries = []FeedbackEntry{}
	}
	return entries, nil
}
