package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Format represents the log format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Logger represents a logger instance
type Logger struct {
	*slog.Logger
	mu      sync.Mutex
	writers []io.Writer
	level   slog.Level
	format  Format
}

// buildHandler constructs the slog handler for the given sink, level and
// format. Unknown formats fall back to text.
func buildHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// New creates a new logger
func New(level slog.Level, format Format, writers ...io.Writer) *Logger {
	l := &Logger{
		writers: writers,
		level:   level,
		format:  format,
	}
	l.Logger = slog.New(buildHandler(io.MultiWriter(writers...), level, format))
	return l
}

// rebuild recreates the handler from the current writers, level and format.
// Callers must hold l.mu.
func (l *Logger) rebuild() {
	l.Logger = slog.New(buildHandler(io.MultiWriter(l.writers...), l.level, l.format))
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level slog.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.rebuild()
}

// AddOutput adds a new output destination
func (l *Logger) AddOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writers = append(l.writers, w)
	l.rebuild()
}

// SetFormat changes the log format
func (l *Logger) SetFormat(format Format) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = format
	l.rebuild()
}

// Rotate closes the current log file and starts a new one at path
func (l *Logger) Rotate(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Close the current file writers, keeping stdio and non-file sinks
	var newWriters []io.Writer
	for _, writer := range l.writers {
		if file, ok := writer.(*os.File); ok {
			if file != os.Stdout && file != os.Stderr {
				file.Close()
			} else {
				newWriters = append(newWriters, writer)
			}
		} else {
			newWriters = append(newWriters, writer)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	l.writers = append(newWriters, file)
	l.rebuild()
	return nil
}

// Close closes all file writers
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, writer := range l.writers {
		if file, ok := writer.(*os.File); ok {
			if file != os.Stdout && file != os.Stderr {
				if err := file.Close(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Level returns the current log level
func (l *Logger) Level() slog.Level {
	return l.level
}

// Init initializes the default logger. Logs go to stderr so stdout stays
// free for protocol traffic, plus any file paths given.
func Init(level slog.Level, format Format, paths ...string) error {
	var writers []io.Writer
	writers = append(writers, os.Stderr)

	for _, path := range paths {
		if path != "" {
			dir := filepath.Dir(path)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}

			file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return err
			}
			writers = append(writers, file)
		}
	}

	defaultLogger = New(level, format, writers...)
	return nil
}

// GetLevelFromString returns the log level from a string
func GetLevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// defaultLogger is the default logger instance. It starts usable so log
// calls before Init are not lost.
var defaultLogger = New(slog.LevelInfo, FormatText, os.Stderr)

// Helper functions for common logging patterns
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}
