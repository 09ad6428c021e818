// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/mesh-intelligence/refcheck/pkg/refcheck"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger is built once flags are parsed.
var logger = zap.NewNop()

type options struct {
	format     string
	configPath string
	root       string
	color      bool
	watch      bool
	verbose    bool
}

func newRootCmd(stdout io.Writer, exitCode *int) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "refcheck",
		Short: "Check referential integrity across scaffold documents",
		Long: `Validates cross-document references: system IDs, authority ownership,
signal emitters/consumers, interface endpoints, state machine authorities,
glossary NOT-column violations, design-doc bidirectional sync, spec-slice
coverage, and task-spec references.

Exit code 0 if no errors, 1 if errors found.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zapcore.WarnLevel
			if opts.verbose {
				level = zapcore.DebugLevel
			}
			core := zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())),
				level,
			)
			logger = zap.New(core, zap.AddCaller()).With(zap.String("run_id", uuid.NewString()))
			refcheck.SetLogger(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := run(cmd.Context(), opts, stdout)
			*exitCode = code
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "", "Output format: json (array of issue objects), yaml, or text (human-readable). Default: text.")
	f.StringVar(&opts.configPath, "config", "", "Path to a refcheck.yaml layout file (default: <root>/refcheck.yaml when present)")
	f.StringVar(&opts.root, "root", "", "Directory to start the scaffold root search from (default: working directory)")
	f.BoolVar(&opts.color, "color", false, "Colour severity tags in text output")
	f.BoolVar(&opts.watch, "watch", false, "Re-run the checks whenever a document changes")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	return cmd
}

// execute runs the command line and returns the process exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	code := refcheck.ExitClean
	cmd := newRootCmd(stdout, &code)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "refcheck: %v\n", err)
		return refcheck.ExitFailed
	}
	return code
}

func run(ctx context.Context, opts *options, stdout io.Writer) (int, error) {
	if opts.format != "" {
		if err := refcheck.ValidateFormat(opts.format); err != nil {
			return refcheck.ExitFailed, err
		}
	}

	cfg := refcheck.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = refcheck.LoadConfig(opts.configPath); err != nil {
			return refcheck.ExitFailed, err
		}
	}

	start := opts.root
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return refcheck.ExitFailed, fmt.Errorf("resolving working directory: %w", err)
		}
		start = wd
	}

	root, err := refcheck.FindRoot(start, cfg.Layout)
	if err != nil {
		if !errors.Is(err, refcheck.ErrRootNotFound) {
			return refcheck.ExitFailed, err
		}
		logger.Warn("scaffold root not found", zap.String("start", start))
		return refcheck.ExitFailed, writeSetupFailure(stdout, outputFormat(opts, cfg))
	}
	logger.Debug("scaffold root", zap.String("root", root))

	if opts.configPath == "" {
		if p := filepath.Join(root, refcheck.DefaultConfigFile); fileExists(p) {
			if cfg, err = refcheck.LoadConfig(p); err != nil {
				return refcheck.ExitFailed, err
			}
			logger.Debug("loaded config", zap.String("path", p))
		}
	}

	format := outputFormat(opts, cfg)
	textOpts := refcheck.TextOptions{Color: opts.color}
	corpus := refcheck.NewCorpus(root, cfg.Layout)

	if opts.watch {
		return watch(ctx, corpus, format, textOpts, stdout)
	}

	issues := refcheck.NewEngine(corpus).Run().Issues()
	if err := writeReport(stdout, format, issues, textOpts); err != nil {
		return refcheck.ExitFailed, err
	}
	return refcheck.ExitCode(issues), nil
}

func watch(ctx context.Context, corpus *refcheck.Corpus, format string, textOpts refcheck.TextOptions, stdout io.Writer) (int, error) {
	code := refcheck.ExitClean
	var writeErr error
	w := refcheck.NewWatcher(corpus, func(issues []refcheck.Issue) {
		code = refcheck.ExitCode(issues)
		if err := writeReport(stdout, format, issues, textOpts); err != nil {
			writeErr = err
		}
	})
	if err := w.Run(ctx); err != nil {
		return refcheck.ExitFailed, err
	}
	return code, writeErr
}

func outputFormat(opts *options, cfg refcheck.Config) string {
	if opts.format != "" {
		return opts.format
	}
	return cfg.Format
}

func writeReport(w io.Writer, format string, issues []refcheck.Issue, textOpts refcheck.TextOptions) error {
	out, err := refcheck.Format(format, issues, textOpts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func writeSetupFailure(w io.Writer, format string) error {
	if format == refcheck.FormatText {
		_, err := fmt.Fprintf(w, "ERROR: %s\n", refcheck.RootNotFoundMessage)
		return err
	}
	return writeReport(w, format, []refcheck.Issue{refcheck.SetupIssue()}, refcheck.TextOptions{})
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
