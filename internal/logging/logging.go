// Package logging builds the zerolog logger used by the cratedig CLI.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation settings for --log-file.
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

// ParseLevel maps a level name to a zerolog level. Unknown names fall
// back to info.
func ParseLevel(name string) zerolog.Level {
	switch name {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// Setup creates a logger with the specified configuration.
//
// With an empty logFile the logger writes human-readable lines to
// stderr. Otherwise it writes JSON to a size-rotated file.
func Setup(logFile, logLevel string) zerolog.Logger {
	level := ParseLevel(logLevel)

	if logFile == "" {
		return New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, level)
	}

	_ = os.MkdirAll(filepath.Dir(logFile), 0755)
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	return New(rotator, level)
}

// New creates a timestamped logger writing to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// CatalogLogger adapts a zerolog logger to the catalog client's Logger
// interface.
type CatalogLogger struct {
	logger zerolog.Logger
}

// NewCatalogLogger returns a CatalogLogger tagging every line with
// component=catalog.
func NewCatalogLogger(logger zerolog.Logger) *CatalogLogger {
	return &CatalogLogger{
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Debugf logs at debug level.
func (l *CatalogLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}
