package gosocial

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
)

// DisplayTimeLayout formats human-readable timestamps in exports and history.
const DisplayTimeLayout = "02/01/2006, 15:04:05"

// ExportKind selects an export encoding. The value doubles as file extension.
type ExportKind string

const (
	KindText     ExportKind = "txt"
	KindCSV      ExportKind = "csv"
	KindMarkdown ExportKind = "md"
	KindHTML     ExportKind = "html"
)

// ParseExportKind parses an extension-like name ("txt", "csv", "md", "html").
func ParseExportKind(s string) (ExportKind, error) {
	switch k := ExportKind(strings.ToLower(strings.TrimPrefix(s, "."))); k {
	case KindText, KindCSV, KindMarkdown, KindHTML:
		return k, nil
	case "text", "plain":
		return KindText, nil
	case "markdown":
		return KindMarkdown, nil
	}
	return "", &ValidationError{Field: "format", Message: fmt.Sprintf("unsupported export format %q", s)}
}

// MIMEType returns the content type of the encoding.
func (k ExportKind) MIMEType() string {
	switch k {
	case KindCSV:
		return "text/csv"
	case KindMarkdown:
		return "text/markdown"
	case KindHTML:
		return "text/html"
	default:
		return "text/plain"
	}
}

// FileTimestamp renders t as a filename-safe ISO timestamp (UTC, seconds
// precision, colons replaced by hyphens).
func FileTimestamp(t time.Time) string {
	return strings.ReplaceAll(t.UTC().Format("2006-01-02T15:04:05"), ":", "-")
}

// FileName returns the download name for an export made at t.
func FileName(t time.Time, kind ExportKind) string {
	return "social-content-" + FileTimestamp(t) + "." + string(kind)
}

// Format serializes result. It never touches the network or storage.
func Format(result *GenerationResult, theme string, generatedAt time.Time, kind ExportKind) (string, error) {
	if result == nil {
		return "", ErrNoResult
	}

	switch kind {
	case KindText:
		return formatText(result, theme, generatedAt), nil
	case KindCSV:
		return formatCSV(result), nil
	case KindMarkdown:
		return formatMarkdown(result, theme, generatedAt), nil
	case KindHTML:
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(formatMarkdown(result, theme, generatedAt)), &buf); err != nil {
			return "", fmt.Errorf("rendering html: %w", err)
		}
		return buf.String(), nil
	}
	return "", &ValidationError{Field: "format", Message: fmt.Sprintf("unsupported export format %q", kind)}
}

func formatText(r *GenerationResult, theme string, at time.Time) string {
	var b strings.Builder
	b.WriteString("SOCIAL MEDIA CONTENT\n")
	b.WriteString("Generated on: " + at.Format(DisplayTimeLayout) + "\n")
	b.WriteString("Theme: " + theme + "\n\n")

	b.WriteString("CAPTION:\n" + r.Caption + "\n\n")

	b.WriteString("POST IDEAS:\n")
	for i, idea := range r.PostIdeas {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strconv.Itoa(i+1) + ". " + idea)
	}
	b.WriteString("\n\n")

	b.WriteString("HASHTAGS:\n" + strings.Join(r.Hashtags, " "))
	return b.String()
}

func formatCSV(r *GenerationResult) string {
	var b strings.Builder
	b.WriteString("Type,Content\n")
	writeCSVRow(&b, "Caption", r.Caption)
	for i, idea := range r.PostIdeas {
		writeCSVRow(&b, "Post Idea "+strconv.Itoa(i+1), idea)
	}
	b.WriteString(csvQuote("Hashtags") + "," + csvQuote(strings.Join(r.Hashtags, " ")))
	return b.String()
}

func writeCSVRow(b *strings.Builder, label, content string) {
	b.WriteString(csvQuote(label) + "," + csvQuote(content) + "\n")
}

// csvQuote always quotes; encoding/csv only quotes when it has to.
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatMarkdown(r *GenerationResult, theme string, at time.Time) string {
	var b strings.Builder
	b.WriteString("# Social Media Content\n\n")
	b.WriteString("*Generated on: " + escapeMarkdown(at.Format(DisplayTimeLayout)) + "*\n\n")
	b.WriteString("**Theme:** " + escapeMarkdown(theme) + "\n\n")

	b.WriteString("## Caption\n\n" + escapeMarkdown(r.Caption) + "\n\n")

	b.WriteString("## Post Ideas\n\n")
	for i, idea := range r.PostIdeas {
		b.WriteString(strconv.Itoa(i+1) + ". " + escapeMarkdown(singleLine(idea)) + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Hashtags\n\n" + escapeMarkdown(strings.Join(r.Hashtags, " ")) + "\n")
	return b.String()
}

var markdownEscaper = func() *strings.Replacer {
	const special = "\\`*_{}[]()#+-.!<>|~&"
	pairs := make([]string, 0, len(special)*2)
	for _, c := range special {
		pairs = append(pairs, string(c), "\\"+string(c))
	}
	return strings.NewReplacer(pairs...)
}()

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
