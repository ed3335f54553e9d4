package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/ZaguanLabs/gosocial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI runs the CLI offline against file storage in dir.
func runCLI(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	full := append(args, "--storage", "file", "--data-dir", dir, "--backend", "local", "--lang", "en", "--log-level", "error")

	var stdout, stderr bytes.Buffer
	err := run(full, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "gosocial "+gosocial.Version)
}

func TestRun_Generate(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runCLI(t, dir, "generate", "yoga")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme: yoga")
	assert.Contains(t, out, "Caption:")
	assert.Contains(t, out, "Post ideas:")
	assert.Contains(t, out, "Hashtags:")
	assert.Contains(t, out, "Model: fallback")

	out, _, err = runCLI(t, dir, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "yoga")
}

func TestRun_GenerateJSON(t *testing.T) {
	out, _, err := runCLI(t, t.TempDir(), "generate", "street", "food", "--json")
	require.NoError(t, err)

	var res gosocial.GenerationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Contains(t, res.Caption, "street food")
	assert.Len(t, res.PostIdeas, 5)
}

func TestRun_GenerateEmptyTheme(t *testing.T) {
	_, _, err := runCLI(t, t.TempDir(), "generate", "   ")
	require.Error(t, err)
	assert.Equal(t, gosocial.MessagesFor(gosocial.LangEN).EmptyInputText, err.Error())
}

func TestRun_GenerateExport(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runCLI(t, dir, "generate", "yoga", "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Type,Content\n"), out)

	exportDir := t.TempDir()
	_, stderr, err := runCLI(t, dir, "generate", "yoga", "--format", "md", "-o", exportDir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Saved")

	files, err := os.ReadDir(exportDir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0].Name(), ".md"))
}

func TestRun_HTTPBackend(t *testing.T) {
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"caption":"From the server","post_ideas":["one"],"hashtags":["#yoga"]}`))
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"generate", "yoga",
		"--backend", "http", "--endpoint", srv.URL,
		"--storage", "memory", "--log-level", "error",
	}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "From the server")
	assert.NotEmpty(t, gotRequestID)
}

func TestRun_Regenerate(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runCLI(t, dir, "regenerate")
	require.Error(t, err)
	assert.Equal(t, gosocial.MessagesFor(gosocial.LangEN).NoPreviousTheme, err.Error())

	_, _, err = runCLI(t, dir, "generate", "yoga")
	require.NoError(t, err)

	out, _, err := runCLI(t, dir, "regenerate")
	require.NoError(t, err)
	assert.Contains(t, out, "Theme: yoga")
	assert.Contains(t, out, "Changes since the previous generation")
}

func TestRun_Batch(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "themes.txt")
	require.NoError(t, os.WriteFile(file, []byte("yoga\n\n   \nsurf\n"), 0o644))

	out, stderr, err := runCLI(t, dir, "batch", "coffee", "--file", file, "--json")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	var items []batchItemJSON
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 3)
	assert.Equal(t, "coffee", items[0].Theme)
	assert.Equal(t, "yoga", items[1].Theme)
	assert.Equal(t, "surf", items[2].Theme)

	out, _, err = runCLI(t, dir, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No history yet")
}

func TestRun_BatchNoThemes(t *testing.T) {
	_, _, err := runCLI(t, t.TempDir(), "batch", " ")
	assert.Error(t, err)
}

func TestRun_HistoryShowAndClear(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runCLI(t, dir, "generate", "yoga")
	require.NoError(t, err)

	out, _, err := runCLI(t, dir, "history", "list", "--json")
	require.NoError(t, err)
	var entries []gosocial.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)

	id := entries[0].ID
	out, _, err = runCLI(t, dir, "history", "show", strconv.FormatInt(id, 10), "--format", "txt")
	require.NoError(t, err)
	assert.Contains(t, out, entries[0].Results.Caption)

	_, _, err = runCLI(t, dir, "history", "show", "12345")
	assert.Error(t, err)

	_, _, err = runCLI(t, dir, "history", "clear")
	require.NoError(t, err)

	out, _, err = runCLI(t, dir, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No history yet")
}

func TestRun_Feedback(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runCLI(t, dir, "generate", "yoga")
	require.NoError(t, err)

	out, _, err := runCLI(t, dir, "feedback", "4", "very", "good")
	require.NoError(t, err)
	assert.Contains(t, out, gosocial.MessagesFor(gosocial.LangEN).FeedbackThanks)

	_, _, err = runCLI(t, dir, "feedback", "9")
	assert.Error(t, err)

	out, _, err = runCLI(t, dir, "feedback", "--list", "--json")
	require.NoError(t, err)
	var entries []gosocial.FeedbackEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 4, entries[0].Rating)
	assert.Equal(t, "very good", entries[0].Comment)
	assert.Equal(t, "yoga", entries[0].Theme)
	assert.Equal(t, gosocial.LangEN, entries[0].Language)
}

func TestRun_Translate(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"translate", "palestra", "città", "--lang", "en", "--storage", "memory"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "gym")
	assert.Contains(t, stdout.String(), gosocial.MessagesFor(gosocial.LangEN).BasePrompt)
}

func TestRun_Classify(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"classify", "#viral", "#coffee", "#a", "--storage", "memory"}, &stdout, &stderr)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "trending")
	assert.Contains(t, lines[1], "optimal")
	assert.Contains(t, lines[2], "plain")
}

func TestRun_Share(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runCLI(t, dir, "share", "linkedin")
	assert.ErrorIs(t, err, gosocial.ErrNoResult)

	_, _, err = runCLI(t, dir, "generate", "yoga")
	require.NoError(t, err)

	out, _, err := runCLI(t, dir, "share", "linkedin", "--url", "https://example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "https://www.linkedin.com/sharing/share-offsite/?")

	out, _, err = runCLI(t, dir, "share", "instagram")
	require.NoError(t, err)
	assert.Contains(t, out, gosocial.MessagesFor(gosocial.LangEN).CopiedForInstagram)

	_, _, err = runCLI(t, dir, "share", "myspace")
	assert.Error(t, err)
}

func TestRun_BackupRestore(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	backup := filepath.Join(t.TempDir(), "backup.json")

	_, _, err := runCLI(t, src, "generate", "yoga")
	require.NoError(t, err)
	_, _, err = runCLI(t, src, "feedback", "5")
	require.NoError(t, err)

	out, _, err := runCLI(t, src, "backup", backup)
	require.NoError(t, err)
	assert.Contains(t, out, backup)

	out, _, err = runCLI(t, dst, "restore", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Restored 2 entries")

	out, _, err = runCLI(t, dst, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "yoga")
}

func TestRun_InvalidConfig(t *testing.T) {
	_, _, err := runCLI(t, t.TempDir(), "generate", "yoga", "--tone", "angry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"publish"}, &stdout, &stderr)
	assert.Error(t, err)
}
