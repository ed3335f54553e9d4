package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZaguanLabs/gosocial"
	"github.com/ZaguanLabs/gosocial/composer"
	"github.com/ZaguanLabs/gosocial/internal/config"
	"github.com/ZaguanLabs/gosocial/provider"
	"github.com/ZaguanLabs/gosocial/server"
	"github.com/ZaguanLabs/gosocial/store"
	"github.com/spf13/cobra"
)

// exportFlags selects an export encoding and destination.
type exportFlags struct {
	format string
	output string
}

func (e *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&e.format, "format", "f", "", "Export format (txt, csv, md, html)")
	cmd.Flags().StringVarP(&e.output, "output", "o", "", "Write the export to a file or directory")
}

// emit prints the current result of s, exported when a format is set.
func (a *app) emit(s *session, e exportFlags) error {
	if e.format == "" && e.output == "" {
		if a.jsonOut {
			return writeJSON(a.stdout, s.Current())
		}
		printResult(a.stdout, s.Theme(), s.Current())
		return nil
	}

	kind := gosocial.KindText
	if e.format != "" {
		k, err := gosocial.ParseExportKind(e.format)
		if err != nil {
			return err
		}
		kind = k
	}

	name, content, err := s.Export(kind)
	if err != nil {
		return err
	}
	if e.output == "" {
		fmt.Fprint(a.stdout, content)
		return nil
	}

	path := e.output
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, name)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintf(a.stderr, "Saved %s\n", path)
	return nil
}

func newGenerateCmd(a *app) *cobra.Command {
	var export exportFlags
	cmd := &cobra.Command{
		Use:   "generate THEME...",
		Short: "Generate a caption, post ideas and hashtags for a theme",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(a.generator())
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.Submit(cmd.Context(), strings.Join(args, " ")); err != nil {
				return err
			}
			return a.emit(s, export)
		},
	}
	export.register(cmd)
	return cmd
}

func newRegenerateCmd(a *app) *cobra.Command {
	var export exportFlags
	cmd := &cobra.Command{
		Use:   "regenerate",
		Short: "Generate again for the most recent theme and show what changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(a.generator())
			if err != nil {
				return err
			}
			defer s.Close()

			previous, _ := s.activateLatest()
			if _, err := s.Regenerate(cmd.Context()); err != nil {
				return err
			}
			if err := a.emit(s, export); err != nil {
				return err
			}
			if !a.jsonOut && export.format == "" {
				current := s.Current()
				if gosocial.Fingerprint(&previous.Results) == gosocial.Fingerprint(current) {
					fmt.Fprintln(a.stdout, "\nSame content as the previous generation")
					return nil
				}
				printDiff(a.stdout, gosocial.DiffResults(&previous.Results, current))
			}
			return nil
		},
	}
	export.register(cmd)
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "batch [THEME...]",
		Short: "Generate content for several themes, one after another",
		Long: `Generate content for each theme in turn. Themes come from the
arguments and from --file (one per line, "-" for stdin). Failed themes
are skipped. Batch results are not added to the history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			themes := append([]string(nil), args...)
			if file != "" {
				lines, err := readLines(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				themes = append(themes, lines...)
			}

			s, err := a.openSession(a.generator())
			if err != nil {
				return err
			}
			defer s.Close()

			valid := gosocial.FilterThemes(themes)
			if len(valid) == 0 {
				return fmt.Errorf("no themes given")
			}

			items, err := s.ProcessBatch(cmd.Context(), valid)
			if a.jsonOut {
				if jerr := writeJSON(a.stdout, batchJSON(items)); jerr != nil {
					return jerr
				}
			} else {
				for i, item := range items {
					if i > 0 {
						fmt.Fprintln(a.stdout)
					}
					printResult(a.stdout, item.Theme, &item.Result)
				}
				fmt.Fprintf(a.stderr, "Generated %d of %d themes\n", len(items), len(valid))
			}
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Read themes from a file, one per line (- for stdin)")
	return cmd
}

func readLines(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path) // #nosec G304 - CLI tool reads user-specified files
		if err != nil {
			return nil, fmt.Errorf("reading themes: %w", err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading themes: %w", err)
	}
	return lines, nil
}

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, show or clear past generations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List past generations, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(nil)
			if err != nil {
				return err
			}
			defer s.Close()

			entries := s.History().List()
			if a.jsonOut {
				return writeJSON(a.stdout, entries)
			}
			printHistory(a.stdout, entries)
			return nil
		},
	}

	var export exportFlags
	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one past generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			s, err := a.openSession(nil)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, ok := s.ActivateID(id); !ok {
				return fmt.Errorf("no history entry with id %d", id)
			}
			return a.emit(s, export)
		},
	}
	export.register(showCmd)

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all past generations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(nil)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.History().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "History cleared")
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd, clearCmd)
	return cmd
}

func newFeedbackCmd(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "feedback [RATING [COMMENT...]]",
		Short: "Rate the most recent generation (0-5) or list feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(nil)
			if err != nil {
				return err
			}
			defer s.Close()

			if list {
				return a.listFeedback(s)
			}
			if len(args) == 0 {
				return fmt.Errorf("a rating is required")
			}

			rating, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid rating %q", args[0])
			}

			s.activateLatest()
			s.SetFeedbackDraft(rating, strings.Join(args[1:], " "))
			entry, err := s.SubmitFeedback()
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(a.stdout, entry)
			}
			lang, _ := s.Settings()
			fmt.Fprintln(a.stdout, gosocial.MessagesFor(lang).FeedbackThanks)
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "List stored feedback instead of adding")
	return cmd
}

func (a *app) listFeedback(s *session) error {
	fb := gosocial.NewFeedbackStore(gosocial.KeySlot(s.store, gosocial.FeedbackKey))
	entries, err := fb.List()
	if err != nil {
		return err
	}
	if a.jsonOut {
		return writeJSON(a.stdout, entries)
	}
	printFeedback(a.stdout, entries)
	return nil
}

func newTranslateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "translate TEXT...",
		Short: "Show how a theme is translated before it is sent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := gosocial.Translate(strings.Join(args, " "), a.cfg.Language())
			if a.jsonOut {
				return writeJSON(a.stdout, tr)
			}
			fmt.Fprintf(a.stdout, "Text:        %s\n", tr.Text)
			fmt.Fprintf(a.stdout, "Base prompt: %s\n", tr.BasePrompt)
			return nil
		},
	}
}

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify HASHTAG...",
		Short: "Mark hashtags as trending, optimal or plain",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tiers := gosocial.ClassifyAll(args)
			if a.jsonOut {
				out := make(map[string]string, len(args))
				for i, tag := range args {
					out[tag] = tiers[i].String()
				}
				return writeJSON(a.stdout, out)
			}
			for i, tag := range args {
				fmt.Fprintf(a.stdout, "%-24s %-9s %s\n", tag, tiers[i], tiers[i].Indicator())
			}
			return nil
		},
	}
}

func newShareCmd(a *app) *cobra.Command {
	var (
		pageURL string
		id      int64
	)
	cmd := &cobra.Command{
		Use:   "share PLATFORM",
		Short: "Prepare a generation for sharing (instagram, linkedin, native, clipboard)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(nil)
			if err != nil {
				return err
			}
			defer s.Close()

			if id != 0 {
				if _, ok := s.ActivateID(id); !ok {
					return fmt.Errorf("no history entry with id %d", id)
				}
			} else if _, ok := s.activateLatest(); !ok {
				return gosocial.ErrNoResult
			}

			share, err := s.Share(gosocial.SharePlatform(strings.ToLower(args[0])), pageURL)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(a.stdout, share)
			}
			printShare(a.stdout, share)
			return nil
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "Page URL to attach to the share")
	cmd.Flags().Int64Var(&id, "id", 0, "History entry to share (default: most recent)")
	return cmd
}

func newBackupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup FILE",
		Short: "Write history and feedback to a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			meta := map[string]string{"version": gosocial.Version}
			if err := store.NewExporter(st).ExportToFile(args[0], meta); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Backup written to %s\n", args[0])
			return nil
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore FILE",
		Short: "Restore history and feedback from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			res, err := store.NewImporter(st).ImportFromFile(args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(a.stdout, res)
			}
			fmt.Fprintf(a.stdout, "Restored %d entries (%d failed) from backup version %s\n",
				res.Imported, res.Failed, res.Version)
			return nil
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference generation backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Server
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			svc, err := a.service()
			if err != nil {
				return err
			}
			return server.Run(cmd.Context(), cfg, server.New(cfg, svc, a.logger), a.logger)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from config)")
	return cmd
}

// service builds the backend served by the serve command.
func (a *app) service() (*composer.Service, error) {
	opts := []composer.ServiceOption{composer.WithLogger(a.logger)}

	if a.cfg.Server.ModelBackend == config.BackendOpenAI {
		if a.cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required (openai.api_key or OPENAI_API_KEY env)")
		}
		model := provider.NewOpenAIGenerator(provider.OpenAIConfig{
			APIKey:      a.cfg.OpenAI.APIKey,
			Model:       a.cfg.OpenAI.Model,
			Temperature: a.cfg.OpenAI.Temperature,
			BaseURL:     a.cfg.OpenAI.BaseURL,
		})
		var gen gosocial.Generator = model
		if a.cfg.Retry.MaxRetries > 0 {
			gen = gosocial.NewRetryableGenerator(gen, a.cfg.RetryPolicy())
		}
		opts = append(opts, composer.WithModel(gen, model.Model()))
	}

	return composer.NewService(opts...), nil
}
