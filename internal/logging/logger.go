package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// RuntimeLogger writes structured JSON logs to a file so they never
// interleave with the terminal display.
type RuntimeLogger struct {
	Logger *log.Logger
	file   *os.File
	path   string
}

// DefaultDir returns the log directory for appName under the user cache dir.
func DefaultDir(appName string) (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(cacheDir, appName, "logs"), nil
}

// New opens a timestamped log file in dir.
func New(dir, appName string, level log.Level) (*RuntimeLogger, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	timestamp := time.Now().UTC().Format("20060102-150405")
	filePath := filepath.Join(dir, fmt.Sprintf("%s-%s.log", appName, timestamp))
	// #nosec G304 -- filePath is constructed from trusted local paths.
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger := newLogger(file, level)
	logger.With("log_file", filePath).Debug("logger initialized")

	return &RuntimeLogger{
		Logger: logger,
		file:   file,
		path:   filePath,
	}, nil
}

// Discard returns a logger that drops every record.
func Discard() *log.Logger {
	return newLogger(io.Discard, log.FatalLevel)
}

// Path returns the log file location.
func (r *RuntimeLogger) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// Close flushes and closes the log file.
func (r *RuntimeLogger) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	logger.SetFormatter(log.JSONFormatter)
	return logger
}
