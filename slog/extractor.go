package slog

import (
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/followdiff"
)

// Ensure LoggingExtractor implements followdiff.RecordExtractor.
var _ followdiff.RecordExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a RecordExtractor with debug logging.
type LoggingExtractor struct {
	next   followdiff.RecordExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next followdiff.RecordExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the record count.
func (e *LoggingExtractor) Extract(r io.Reader) (records []followdiff.Record, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("extract",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(r)
}
