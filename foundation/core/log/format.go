// File: format.go
// Title: Output Formats and Handlers
// Description: Selects the slog handler for an output format and assembles the
//              handler chain: one handler per writer, an optional systemd journal
//              handler, fanned out with slog-multi.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with JSON, text, console and logfmt formatters
// - 2026-10-17 v0.2.0: Formatters replaced by slog handlers, journal output

package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Format represents the output format for log records
type Format int

const (
	// FormatJSON writes one JSON object per record
	FormatJSON Format = iota

	// FormatText writes key=value records
	FormatText
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a format
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return FormatJSON, nil
	case "text", "logfmt", "console":
		return FormatText, nil
	default:
		return FormatJSON, &ParseError{
			Input: format,
			Type:  "format",
		}
	}
}

// replaceLevel renders level attributes with this package's level names
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelFromSlog(lvl).String())
		}
	}
	return a
}

func newFormatHandler(format Format, w io.Writer, addSource bool) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:       LevelTrace.slogLevel(),
		AddSource:   addSource,
		ReplaceAttr: replaceLevel,
	}
	if format == FormatText {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func newJournalHandler() (slog.Handler, error) {
	return slogjournal.NewHandler(&slogjournal.Options{
		ReplaceGroup: func(key string) string {
			return toJournalKey(key)
		},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a = replaceLevel(groups, a)
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
}

// buildHandler assembles the handler chain described by config
func buildHandler(config Config) slog.Handler {
	outputs := config.Outputs
	if config.Output != nil {
		outputs = append([]io.Writer{config.Output}, outputs...)
	}

	var handlers []slog.Handler
	for _, w := range outputs {
		handlers = append(handlers, newFormatHandler(config.Format, w, config.EnableCaller))
	}

	if config.Journal {
		journal, err := newJournalHandler()
		if err != nil {
			if len(handlers) > 0 {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
				record.AddAttrs(slog.String("error", err.Error()))
				_ = handlers[0].Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journal)
		}
	}

	switch len(handlers) {
	case 0:
		return slog.NewTextHandler(io.Discard, nil)
	case 1:
		return handlers[0]
	default:
		return slogmulti.Fanout(handlers...)
	}
}

// toJournalKey converts an attribute key into a valid journal field name
func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}
