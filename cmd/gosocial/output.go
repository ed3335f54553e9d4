package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ZaguanLabs/gosocial"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type batchItemJSON struct {
	Theme  string                    `json:"theme"`
	Result gosocial.GenerationResult `json:"result"`
}

func batchJSON(items []gosocial.BatchItem) []batchItemJSON {
	out := make([]batchItemJSON, len(items))
	for i, item := range items {
		out[i] = batchItemJSON{Theme: item.Theme, Result: item.Result}
	}
	return out
}

func printResult(w io.Writer, theme string, r *gosocial.GenerationResult) {
	if r == nil {
		return
	}

	fmt.Fprintf(w, "Theme: %s\n\n", theme)
	fmt.Fprintf(w, "Caption:\n  %s\n\n", r.Caption)

	fmt.Fprintf(w, "Post ideas:\n")
	for i, idea := range r.PostIdeas {
		fmt.Fprintf(w, "  %d. %s\n", i+1, idea)
	}

	fmt.Fprintf(w, "\nHashtags:\n ")
	for _, tag := range r.Hashtags {
		fmt.Fprintf(w, " %s", tag)
		if mark := gosocial.Classify(tag).Indicator(); mark != "" {
			fmt.Fprintf(w, " %s", mark)
		}
	}
	fmt.Fprintln(w)

	if r.ModelUsed != "" || r.ProcessingTime != "" {
		fmt.Fprintf(w, "\nModel: %s", orDash(r.ModelUsed))
		if r.ProcessingTime != "" {
			fmt.Fprintf(w, " (%s)", r.ProcessingTime)
		}
		fmt.Fprintln(w)
	}
}

func printDiff(w io.Writer, d *gosocial.DiffResult) {
	fmt.Fprintf(w, "\nChanges since the previous generation:\n")
	if !d.HasChanges() {
		fmt.Fprintf(w, "  none\n")
		return
	}

	stats := d.Stats()
	if d.CaptionChanged {
		fmt.Fprintf(w, "  caption changed\n")
	}
	fmt.Fprintf(w, "  hashtags: +%d -%d =%d\n", stats.AddedHashtags, stats.RemovedHashtags, stats.KeptHashtags)
	fmt.Fprintf(w, "  ideas:    +%d -%d\n", stats.AddedIdeas, stats.RemovedIdeas)
	for _, tag := range d.AddedHashtags {
		fmt.Fprintf(w, "  + %s\n", tag)
	}
	for _, tag := range d.RemovedHashtags {
		fmt.Fprintf(w, "  - %s\n", tag)
	}
}

func printHistory(w io.Writer, entries []gosocial.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history yet")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tLANG\tTHEME")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.ID, e.Timestamp, orDash(string(e.Language)), e.Theme)
	}
	tw.Flush()
}

func printFeedback(w io.Writer, entries []gosocial.FeedbackEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No feedback yet")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tRATING\tTHEME\tCOMMENT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Timestamp, strings.Repeat("★", e.Rating), orDash(e.Theme), e.Comment)
	}
	tw.Flush()
}

func printShare(w io.Writer, s gosocial.Share) {
	fmt.Fprintf(w, "%s\n\n%s\n", s.Title, s.Text)
	if s.URL != "" {
		fmt.Fprintf(w, "\nURL: %s\n", s.URL)
	}
	if s.Notice != "" {
		fmt.Fprintf(w, "\n%s\n", s.Notice)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
