// Package logging provides file-backed logging for fex. The TUI owns
// the terminal, so nothing is ever written to stdout or stderr; all
// components log through here to a file under $XDG_STATE_HOME.
//
// Usage:
//
//	if err := logging.Init(logging.Config{Level: "info"}); err != nil { ... }
//	defer logging.Close()
//	logging.Get("task").Info("operation submitted", "op", name)
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// Config configures the logging system.
type Config struct {
	// Level is the log level: debug, info, warn, or error.
	Level string

	// Path is the log file path. Empty uses DefaultLogPath().
	Path string

	// MaxSize caps the log file size in bytes; when exceeded at Init
	// the old file is rotated to <path>.1. Zero uses a 10 MiB default.
	MaxSize int64
}

const defaultMaxSize = 10 << 20

// DefaultLogPath returns $XDG_STATE_HOME/fex/fex.log.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, "fex", "fex.log")
}

var global = struct {
	mu      sync.Mutex
	file    *os.File
	level   log.Level
	loggers map[string]*log.Logger
}{
	loggers: make(map[string]*log.Logger),
	level:   log.InfoLevel,
}

// Init opens the log file and sets the level. Before Init, loggers
// discard everything, so logging is safe at any point.
func Init(cfg Config) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	path := cfg.Path
	if path == "" {
		path = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	if info, statErr := os.Stat(path); statErr == nil && info.Size() > maxSize {
		// One-level rotation keeps the previous run around for debugging.
		_ = os.Rename(path, path+".1")
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	if global.file != nil {
		_ = global.file.Close()
	}
	global.file = file
	global.level = level
	// Rebind existing loggers to the new writer.
	for component := range global.loggers {
		global.loggers[component] = newLogger(file, level, component)
	}
	return nil
}

// Get returns the logger for a component, creating it on first use.
func Get(component string) *log.Logger {
	global.mu.Lock()
	defer global.mu.Unlock()

	if logger, ok := global.loggers[component]; ok {
		return logger
	}

	var w io.Writer = io.Discard
	if global.file != nil {
		w = global.file
	}
	logger := newLogger(w, global.level, component)
	global.loggers[component] = logger
	return logger
}

func newLogger(w io.Writer, level log.Level, component string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          component,
	})
}

// Close flushes and closes the log file.
func Close() error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.file == nil {
		return nil
	}
	err := global.file.Close()
	global.file = nil
	for component := range global.loggers {
		global.loggers[component] = newLogger(io.Discard, global.level, component)
	}
	return err
}
