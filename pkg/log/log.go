// Package log provides logging configuration for the vizexport CLI and library.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

const (
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
	FormatText   = "text"
)

var (
	// ErrUnknownFormat indicates an unrecognized log format string.
	ErrUnknownFormat = errors.New("unknown log format")

	// ErrUnknownLevel indicates an unrecognized log level string.
	ErrUnknownLevel = errors.New("unknown log level")
)

// CreateHandler creates a [slog.Handler] writing to w.
func CreateHandler(w io.Writer, level slog.Level, format string) (slog.Handler, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil

	case FormatLogfmt:
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
			Formatter:       charmlog.LogfmtFormatter,
		}), nil

	case FormatText, "":
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
			Formatter:       charmlog.TextFormatter,
		}), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// CreateHandlerWithStrings parses logLevel and logFormat, then calls
// [CreateHandler].
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}

	return CreateHandler(w, level, logFormat)
}

// GetLevel parses a [slog.Level] from a string.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "panic", "fatal", "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	}

	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}
