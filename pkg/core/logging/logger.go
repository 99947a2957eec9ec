// ============================================================================
// mote - Scripting Language Front End
// ============================================================================
//
// Package:     logging
// Description: Service level logging on top of the foundation logger
// Author:      msto63
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package logging

import motelog "github.com/msto63/mote/foundation/core/log"

// Level represents log severity for the key/value logger
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) foundation() motelog.Level {
	switch l {
	case LevelDebug:
		return motelog.LevelDebug
	case LevelWarn:
		return motelog.LevelWarn
	case LevelError:
		return motelog.LevelError
	default:
		return motelog.LevelInfo
	}
}
