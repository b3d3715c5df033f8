// Package logger holds the process-wide diagnostic logger. User-facing
// progress and reports go to stdout through fmt; this logger is for
// debugging and is quiet unless a level or log file is configured.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	global *zerolog.Logger
	file   *os.File
)

// ParseLevel maps a config level name to a zerolog level.
// Unknown names fall back to warn.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// Init configures the global logger. Console output goes to stderr; when
// path is set, JSON lines are appended to that file as well.
func Init(level string, path string) error {
	mu.Lock()
	defer mu.Unlock()

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}

	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		closeFileLocked()
		file = f
		output = zerolog.MultiLevelWriter(output, f)
	}

	global = New(output, level)
	return nil
}

// New returns a logger writing to w at the given level, without touching
// the global logger
func New(w io.Writer, level string) *zerolog.Logger {
	l := zerolog.New(w).With().Timestamp().Logger().Level(ParseLevel(level))
	return &l
}

// Get returns the global logger, or a disabled one if Init was never called
func Get() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if global == nil {
		l := zerolog.Nop()
		global = &l
	}
	return global
}

// Close releases the log file opened by Init, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeFileLocked()
}

func closeFileLocked() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}
