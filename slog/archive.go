package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/followdiff"
)

// Compile-time interface verification.
var (
	_ followdiff.ArchiveLoader = (*LoggingArchiveLoader)(nil)
	_ followdiff.ListLocator   = (*LoggingLocator)(nil)
)

// LoggingArchiveLoader wraps an ArchiveLoader with logging.
type LoggingArchiveLoader struct {
	next   followdiff.ArchiveLoader
	logger *slog.Logger
}

// NewLoggingArchiveLoader creates a new LoggingArchiveLoader.
func NewLoggingArchiveLoader(next followdiff.ArchiveLoader, logger *slog.Logger) *LoggingArchiveLoader {
	return &LoggingArchiveLoader{next: next, logger: logger}
}

// Extract delegates to the wrapped loader and logs the operation.
func (l *LoggingArchiveLoader) Extract(ctx context.Context, archivePath, targetDir string) (err error) {
	defer func(begin time.Time) {
		l.logger.Info("archive extraction",
			"archive", archivePath,
			"target", targetDir,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Extract(ctx, archivePath, targetDir)
}

// LoggingLocator wraps a ListLocator with debug logging.
type LoggingLocator struct {
	next   followdiff.ListLocator
	logger *slog.Logger
}

// NewLoggingLocator creates a new LoggingLocator.
func NewLoggingLocator(next followdiff.ListLocator, logger *slog.Logger) *LoggingLocator {
	return &LoggingLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs where the list was found.
func (l *LoggingLocator) Locate(root string, kind followdiff.ListKind) (path string, err error) {
	defer func(begin time.Time) {
		l.logger.Debug("locate list",
			"kind", kind,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Locate(root, kind)
}
