package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/followdiff/config"
)

// logFileName names the log file of a run started at t.
func logFileName(t time.Time) string {
	return "followdiff_" + t.Format("20060102_150405") + ".log"
}

// newLogger builds the process logger. Records go to a per-run log file
// when enabled, at the configured level. Stderr receives the same records
// when verbose and only warnings and errors otherwise.
func newLogger(cfg *config.Config, verbose bool, stderr io.Writer, now time.Time) (*slog.Logger, *os.File, error) {
	level := cfg.SlogLevel()

	var (
		handlers fanoutHandler
		file     *os.File
	)
	if cfg.Log.FileEnabled {
		if err := os.MkdirAll(cfg.Log.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(cfg.Log.Dir, logFileName(now)), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		file = f
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}

	stderrLevel := level
	if !verbose {
		stderrLevel = max(level, slog.LevelWarn)
	}
	handlers = append(handlers, slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: stderrLevel}))

	return slog.New(handlers), file, nil
}

// fanoutHandler passes each record to every handler that accepts its level.
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, next := range h {
		if next.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, next := range h {
		if next.Enabled(ctx, r.Level) {
			errs = append(errs, next.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, next := range h {
		out[i] = next.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, next := range h {
		out[i] = next.WithGroup(name)
	}
	return out
}
