package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ZaguanLabs/gosocial"
)

// ExportVersion is the current backup document version.
const ExportVersion = "1.0"

// DefaultKeys are the slots included in a backup.
var DefaultKeys = []string{gosocial.HistoryKey, gosocial.FeedbackKey}

// ExportFormat represents the JSON structure of a backup.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry represents a single slot.
type ExportEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Exporter writes backups of a store.
type Exporter struct {
	store gosocial.KeyValueStore
	keys  []string
	clock func() time.Time
}

// NewExporter creates an exporter for the given keys, or DefaultKeys if none.
func NewExporter(store gosocial.KeyValueStore, keys ...string) *Exporter {
	if len(keys) == 0 {
		keys = DefaultKeys
	}
	return &Exporter{store: store, keys: keys, clock: time.Now}
}

// Export writes every present key to w as indented JSON.
func (e *Exporter) Export(w io.Writer, metadata map[string]string) error {
	entries := make([]ExportEntry, 0, len(e.keys))
	for _, key := range e.keys {
		v, ok, err := e.store.Get(key)
		if err != nil {
			return &gosocial.StorageError{Op: "read", Key: key, Cause: err}
		}
		if ok {
			entries = append(entries, ExportEntry{Key: key, Value: v})
		}
	}

	export := ExportFormat{
		Version:    ExportVersion,
		ExportedAt: e.clock().UTC().Format(time.RFC3339),
		Entries:    entries,
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ExportToFile exports to a file.
// The path is provided by the caller and is intentionally user-controlled.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := e.Export(f, metadata); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Importer restores backups into a store.
type Importer struct {
	store gosocial.KeyValueStore
}

// NewImporter creates an importer.
func NewImporter(store gosocial.KeyValueStore) *Importer {
	return &Importer{store: store}
}

// ImportResult contains statistics about the import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Failed   int
}

// Import reads a backup from r and writes each entry into the store.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if export.Version != ExportVersion {
		return nil, fmt.Errorf("unsupported backup version %q", export.Version)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}

	for _, entry := range export.Entries {
		if err := i.store.Set(entry.Key, entry.Value); err != nil {
			result.Failed++
			continue
		}
		result.Imported++
	}

	return result, nil
}

// ImportFromFile imports from a file.
// The path is provided by the caller and is intentionally user-controlled.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return i.Import(f)
}
