// ============================================================================
// mote - Scripting Language Front End
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      msto63
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	motelog "github.com/msto63/mote/foundation/core/log"
	"github.com/msto63/mote/pkg/core/config"
)

var (
	// Log files opened by the factory, closed by Close
	openFiles   []*os.File
	openFilesMu sync.Mutex
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error, fatal, audit)
	Level string

	// Output format: "json" or "text" (default: text)
	Format string

	// Console receives records unless nil (default: stderr)
	Console io.Writer

	// File additionally receives records when set
	File string

	// Journal additionally sends records to the systemd journal
	Journal bool

	// Additional outputs
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "text",
		Console:     os.Stderr,
	}
}

// FromConfig builds a logger configuration from the application config
func FromConfig(serviceName string, cfg config.LogConfig) LoggerConfig {
	lc := DefaultLoggerConfig(serviceName)
	if cfg.Level != "" {
		lc.Level = cfg.Level
	}
	if cfg.Format != "" {
		lc.Format = cfg.Format
	}
	lc.File = cfg.File
	lc.Journal = cfg.Journal
	return lc
}

// NewLogger creates a new foundation logger
func NewLogger(cfg LoggerConfig) (*motelog.Logger, error) {
	level, err := motelog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	format, err := motelog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	var outputs []io.Writer
	if cfg.Console != nil {
		outputs = append(outputs, cfg.Console)
	}
	if cfg.File != "" {
		file, err := openLogFile(cfg.File)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, file)
	}
	outputs = append(outputs, cfg.AdditionalOutputs...)

	return motelog.NewWithConfig(motelog.Config{
		Level:        level,
		Format:       format,
		Outputs:      outputs,
		Journal:      cfg.Journal,
		Name:         cfg.ServiceName,
		EnableCaller: level <= motelog.LevelDebug,
	}), nil
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *motelog.Logger {
	logger, err := NewLogger(DefaultLoggerConfig(serviceName))
	if err != nil {
		// the default configuration is always valid
		panic(err)
	}
	return logger
}

// Close closes log files opened by NewLogger
func Close() error {
	openFilesMu.Lock()
	defer openFilesMu.Unlock()

	var lastErr error
	for _, f := range openFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
	}
	openFiles = nil
	return lastErr
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	openFilesMu.Lock()
	openFiles = append(openFiles, file)
	openFilesMu.Unlock()

	return file, nil
}

// Compatibility layer for code logging with key/value pairs

// Logger wraps the foundation logger with a key/value API
type Logger struct {
	*motelog.Logger
	name string
}

// New creates a new key/value logger
func New(name string) *Logger {
	return &Logger{
		Logger: NewSimpleLogger(name),
		name:   name,
	}
}

// Wrap adapts an existing foundation logger
func Wrap(logger *motelog.Logger, name string) *Logger {
	return &Logger{
		Logger: logger.WithName(name),
		name:   name,
	}
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	return &Logger{
		Logger: l.Logger.WithLevel(level.foundation()),
		name:   l.name,
	}
}

// Debug logs a debug message with key/value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key/value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key/value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key/value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to motelog.Fields
func toFields(keysAndValues ...interface{}) motelog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(motelog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
