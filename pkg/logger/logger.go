// Package logger wraps log/slog with the process-wide setup used by the
// contribution service: level parsing, dev/prod handler selection, and
// optional rotating file output.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls logger initialization.
// Level accepts debug/info/warn/error, Environment selects the handler
// format (prod emits JSON, anything else text), WithSource records the
// caller position. File, when non-empty, routes output through a
// size/age-rotated log file instead of stdout.
type Config struct {
	Level       string
	Environment string
	WithSource  bool
	File        string
}

var (
	global *slog.Logger
	once   sync.Once
)

func levelFromString(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.New("invalid log level: " + level)
	}
}

// New creates a logger from cfg without touching the global instance.
func New(cfg Config) (*slog.Logger, error) {
	lvl, err := levelFromString(cfg.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    100, // MB
			MaxBackups: 10,
			MaxAge:     30, // days
			Compress:   true,
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: lvl, AddSource: cfg.WithSource}
	var handler slog.Handler
	env := strings.ToLower(cfg.Environment)
	if env == "prod" || env == "production" {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	return slog.New(handler), nil
}

// Init initializes the global logger; repeated calls return the logger
// created by the first call.
func Init(cfg Config) (*slog.Logger, error) {
	var initErr error
	once.Do(func() {
		global, initErr = New(cfg)
	})
	return global, initErr
}

// L returns the initialized global logger and panics if Init was never called.
func L() *slog.Logger {
	if global == nil {
		panic("logger.Init must be called before logger.L")
	}
	return global
}

// LogFetch writes a structured record for one upstream fetch attempt.
// source is "github" or "mock"; reason is empty for real data and carries
// the fallback cause otherwise.
func LogFetch(logger *slog.Logger, username, source, reason string, durationMs int64) {
	attrs := []slog.Attr{
		slog.String("username", username),
		slog.String("source", source),
		slog.Int64("duration_ms", durationMs),
	}

	if reason != "" {
		attrs = append(attrs, slog.String("reason", reason))
		logger.LogAttrs(nil, slog.LevelWarn, "contribution fetch fell back to mock data", attrs...)
	} else {
		logger.LogAttrs(nil, slog.LevelInfo, "contribution fetch served real data", attrs...)
	}
}
