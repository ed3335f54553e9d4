// Command gosocial generates social media captions, post ideas and hashtags
// from a theme.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaguanLabs/gosocial"
	"github.com/spf13/cobra"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = gosocial.Version
	commit    = gosocial.GitCommit
	buildDate = gosocial.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(&app{stdout: stdout, stderr: stderr})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   gosocial.Name,
		Short: "Generate social media content from a theme",
		Long: `gosocial turns a theme or keyword into a caption, post ideas and
hashtags, keeps a short history of past generations and collects
feedback. It can also serve the reference generation backend.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	f.StringVar(&a.backend, "backend", "", "Generation backend (http, openai, local)")
	f.StringVar(&a.endpoint, "endpoint", "", "Generation endpoint for the http backend")
	f.StringVarP(&a.lang, "lang", "l", "", "Content language (it, en)")
	f.StringVarP(&a.tone, "tone", "t", "", "Tone (friendly, professional, hype)")
	f.StringVar(&a.storageType, "storage", "", "Storage type (memory, file, redis)")
	f.StringVar(&a.dataDir, "data-dir", "", "Directory for file storage")
	f.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.BoolVar(&a.jsonOut, "json", false, "Output as JSON")

	cmd.AddCommand(
		newGenerateCmd(a),
		newRegenerateCmd(a),
		newBatchCmd(a),
		newHistoryCmd(a),
		newFeedbackCmd(a),
		newTranslateCmd(a),
		newClassifyCmd(a),
		newShareCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "%s %s\n", gosocial.Name, version)
			if commit != "unknown" && commit != "" {
				fmt.Fprintf(a.stdout, "  commit:  %s\n", commit)
			}
			if buildDate != "unknown" && buildDate != "" {
				fmt.Fprintf(a.stdout, "  built:   %s\n", buildDate)
			}
		},
	}
}
