// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the main Logger type that provides structured logging
//              with contextual information on top of log/slog handlers, and the
//              integration with the mote error system.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-17 v0.2.0: Records are written through slog handlers, async worker removed

package log

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	moteerror "github.com/msto63/mote/foundation/core/error"
)

// Logger represents a structured logger with contextual information
type Logger struct {
	level   Level
	handler slog.Handler
	name    string

	// Context fields that are added to all log records
	contextFields Fields
	requestID     string
	correlationID string

	enableCaller bool

	mutex sync.RWMutex
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format

	// Output is the primary writer. Outputs receive the same records.
	Output  io.Writer
	Outputs []io.Writer

	// Journal additionally sends records to the systemd journal when available
	Journal bool

	Name         string
	EnableCaller bool
}

// osExit is replaced in tests
var osExit = os.Exit

// New creates a new logger writing text records to stderr at info level
func New() *Logger {
	return NewWithConfig(Config{
		Level:  DefaultLevel(),
		Format: FormatText,
		Output: os.Stderr,
	})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	if config.Output == nil && len(config.Outputs) == 0 && !config.Journal {
		config.Output = os.Stderr
	}

	return &Logger{
		level:         config.Level,
		handler:       buildHandler(config),
		name:          config.Name,
		contextFields: make(Fields),
		enableCaller:  config.EnableCaller,
	}
}

// NewWithHandler creates a logger on top of an existing slog handler
func NewWithHandler(handler slog.Handler, level Level) *Logger {
	return &Logger{
		level:         level,
		handler:       handler,
		contextFields: make(Fields),
	}
}

// Handler returns the underlying slog handler
func (l *Logger) Handler() slog.Handler {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.handler
}

// Slog returns a *slog.Logger sharing this logger's handler and name
func (l *Logger) Slog() *slog.Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	logger := slog.New(l.handler)
	if l.name != "" {
		logger = logger.With("logger", l.name)
	}
	return logger
}

// WithLevel returns a copy with a different minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// WithName returns a copy with a different logger name
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.name = name
	return clone
}

// WithField returns a copy with an additional context field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// WithFields returns a copy with additional context fields
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// WithRequestID returns a copy tagged with a request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	clone := l.clone()
	clone.requestID = requestID
	return clone
}

// WithCorrelationID returns a copy tagged with a correlation ID
func (l *Logger) WithCorrelationID(correlationID string) *Logger {
	clone := l.clone()
	clone.correlationID = correlationID
	return clone
}

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// Fatal logs a fatal level message and exits the program
func (l *Logger) Fatal(message string, fields ...Fields) {
	l.log(LevelFatal, message, nil, fields...)
	osExit(1)
}

// Audit logs an audit level message (always logged regardless of level)
func (l *Logger) Audit(message string, fields ...Fields) {
	l.log(LevelAudit, message, nil, fields...)
}

// ErrorWithErr logs an error with an error object
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs a warning with an error object
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// LogError logs an error at a level derived from its severity. Structured
// errors contribute their code, operation and details as fields.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	var moteErr *moteerror.Error
	if !errors.As(err, &moteErr) {
		l.log(LevelError, err.Error(), err)
		return
	}

	fields := Fields{
		"error_code":     moteErr.Code(),
		"error_severity": moteErr.Severity().String(),
	}
	if op := moteErr.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range moteErr.Details() {
		fields["error_"+k] = v
	}

	switch moteErr.Severity() {
	case moteerror.SeverityLow:
		l.log(LevelInfo, err.Error(), err, fields)
	case moteerror.SeverityMedium:
		l.log(LevelWarn, err.Error(), err, fields)
	default:
		l.log(LevelError, err.Error(), err, fields)
	}
}

// StartTimer creates and starts a new performance timer
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return level.ShouldLog(l.level)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.level
}

// SetLevel changes the level in place
func (l *Logger) SetLevel(level Level) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.level = level
}

// log is the internal logging method
func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	l.mutex.RLock()
	if !level.ShouldLog(l.level) {
		l.mutex.RUnlock()
		return
	}

	var attrs []slog.Attr
	if l.name != "" {
		attrs = append(attrs, slog.String("logger", l.name))
	}
	if l.requestID != "" {
		attrs = append(attrs, slog.String("request_id", l.requestID))
	}
	if l.correlationID != "" {
		attrs = append(attrs, slog.String("correlation_id", l.correlationID))
	}
	merged := l.contextFields.Merge(fields...)
	handler := l.handler
	enableCaller := l.enableCaller
	l.mutex.RUnlock()

	attrs = append(attrs, merged.attrs()...)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	var pc uintptr
	if enableCaller {
		// skip runtime.Callers, log and the public method
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:])
		pc = pcs[0]
	}

	record := slog.NewRecord(time.Now(), level.slogLevel(), message, pc)
	record.AddAttrs(attrs...)
	_ = handler.Handle(context.Background(), record)
}

// clone creates a copy of the logger for immutable operations
func (l *Logger) clone() *Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return &Logger{
		level:         l.level,
		handler:       l.handler,
		name:          l.name,
		requestID:     l.requestID,
		correlationID: l.correlationID,
		enableCaller:  l.enableCaller,
		contextFields: l.contextFields.Clone(),
	}
}

var (
	defaultLogger = New()
	defaultMutex  sync.RWMutex
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	defaultMutex.RLock()
	defer defaultMutex.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()
	defaultLogger = logger
}

// Debug logs a debug message using the default logger
func Debug(message string, fields ...Fields) {
	GetDefault().Debug(message, fields...)
}

// Info logs an info message using the default logger
func Info(message string, fields ...Fields) {
	GetDefault().Info(message, fields...)
}

// Warn logs a warning message using the default logger
func Warn(message string, fields ...Fields) {
	GetDefault().Warn(message, fields...)
}

// Error logs an error message using the default logger
func Error(message string, fields ...Fields) {
	GetDefault().Error(message, fields...)
}
