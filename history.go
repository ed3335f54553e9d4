package gosocial

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultHistoryLimit is the number of entries kept.
const DefaultHistoryLimit = 5

// HistoryStore is a bounded, most-recent-first log of past generations.
// It owns its slot; nothing else should write to it.
type HistoryStore struct {
	slot    Slot
	limit   int
	clock   func() time.Time
	logger  logrus.FieldLogger
	mu      sync.Mutex
	entries []HistoryEntry
	lastID  int64
}

// HistoryOption configures a HistoryStore.
type HistoryOption func(*HistoryStore)

// WithHistoryLimit sets how many entries are kept (default 5).
func WithHistoryLimit(n int) HistoryOption {
	return func(h *HistoryStore) {
		if n > 0 {
			h.limit = n
		}
	}
}

// WithClock sets the time source used for IDs and timestamps.
func WithClock(clock func() time.Time) HistoryOption {
	return func(h *HistoryStore) {
		h.clock = clock
	}
}

// WithHistoryLogger sets the logger.
func WithHistoryLogger(l logrus.FieldLogger) HistoryOption {
	return func(h *HistoryStore) {
		h.logger = l
	}
}

// NewHistoryStore creates an empty store backed by slot. Call Load to
// restore persisted entries.
func NewHistoryStore(slot Slot, opts ...HistoryOption) *HistoryStore {
	h := &HistoryStore{
		slot:   slot,
		limit:  DefaultHistoryLimit,
		clock:  time.Now,
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Load replaces the in-memory list with the persisted one. An absent or
// unparsable blob leaves the list empty.
func (h *HistoryStore) Load() error {
	raw, ok, err := h.slot.Read()
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
	if !ok || raw == "" {
		return nil
	}

	var entries []HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		h.logger.WithError(err).Warn("discarding unreadable history")
		return nil
	}

	h.entries = entries
	for _, e := range entries {
		if e.ID > h.lastID {
			h.lastID = e.ID
		}
	}
	return nil
}

// Record prepends a new entry, truncates to the limit and persists the list.
func (h *HistoryStore) Record(theme string, results GenerationResult, lang Language) (HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.clock()
	id := now.UnixMilli()
	if id <= h.lastID {
		id = h.lastID + 1
	}

	entry := HistoryEntry{
		ID:        id,
		Theme:     theme,
		Results:   results.Clone(),
		Timestamp: now.Format(DisplayTimeLayout),
		Language:  lang,
	}

	updated := make([]HistoryEntry, 0, h.limit)
	updated = append(updated, entry)
	updated = append(updated, h.entries...)
	if len(updated) > h.limit {
		updated = updated[:h.limit]
	}

	if err := h.persist(updated); err != nil {
		return HistoryEntry{}, err
	}

	h.entries = updated
	h.lastID = id
	return entry, nil
}

// List returns a copy of the entries, most recent first.
func (h *HistoryStore) List() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]HistoryEntry, len(h.entries))
	for i, e := range h.entries {
		out[i] = e
		out[i].Results = e.Results.Clone()
	}
	return out
}

// Get returns the entry with the given ID.
func (h *HistoryStore) Get(id int64) (HistoryEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, e := range h.entries {
		if e.ID == id {
			e.Results = e.Results.Clone()
			return e, true
		}
	}
	return HistoryEntry{}, false
}

// Len returns the number of entries.
func (h *HistoryStore) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear removes all entries and persists the empty list.
func (h *HistoryStore) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.persist([]HistoryEntry{}); err != nil {
		return err
	}
	h.entries = nil
	return nil
}

func (h *HistoryStore) persist(entries []HistoryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return h.slot.Write(string(data))
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
