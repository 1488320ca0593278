package rod

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
)

// Ensure LogWriter implements io.Writer.
var _ io.Writer = (*LogWriter)(nil)

// LogWriter forwards browser process output to a logger, one record per
// line. Pass it to WithLauncherOutput.
type LogWriter struct {
	logger *slog.Logger
	mu     sync.Mutex
	buf    []byte
}

// NewLogWriter creates a new LogWriter.
func NewLogWriter(logger *slog.Logger) *LogWriter {
	return &LogWriter{logger: logger}
}

// Write logs every complete line in p at debug level. A trailing partial
// line is held until the next Write.
func (w *LogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		line := bytes.TrimRight(w.buf[:i], "\r")
		if len(line) > 0 {
			w.logger.Debug("browser", "line", string(line))
		}
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}
