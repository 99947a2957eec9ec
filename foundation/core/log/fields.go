// File: fields.go
// Title: Structured Log Fields
// Description: Field maps attached to log records and helper constructors.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation as part of log entries
// - 2026-10-17 v0.2.0: Split from entry.go, entries are slog records now

package log

import (
	"log/slog"
	"sort"
	"time"
)

// Fields represents structured key-value pairs attached to a log record
type Fields map[string]interface{}

// Field creates a single-entry field map
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates a field map holding an error message
func Err(err error) Fields {
	if err == nil {
		return Fields{}
	}
	return Fields{"error": err.Error()}
}

// Duration creates a field map holding a duration in milliseconds
func Duration(key string, duration time.Duration) Fields {
	return Fields{key: float64(duration.Nanoseconds()) / 1e6}
}

// Merge returns a new field map containing f overlaid with others
func (f Fields) Merge(others ...Fields) Fields {
	result := make(Fields, len(f))
	for k, v := range f {
		result[k] = v
	}
	for _, other := range others {
		for k, v := range other {
			result[k] = v
		}
	}
	return result
}

// Clone returns a shallow copy of the field map
func (f Fields) Clone() Fields {
	return f.Merge()
}

// attrs converts the fields into slog attributes in key order
func (f Fields) attrs() []slog.Attr {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, f[k]))
	}
	return attrs
}
