// Package log provides structured logging for the mote front end.
//
// Package: log
// Title: mote Structured Logging
// Description: Leveled, structured logging with contextual fields, request and
//              correlation IDs, and integration with the mote error package.
//              Records are rendered by log/slog handlers; several writers and the
//              systemd journal can receive the same record.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-17 v0.2.0: slog handlers, slog-multi fan-out, journal output
//
// Usage:
//
//	import motelog "github.com/msto63/mote/foundation/core/log"
//
//	logger := motelog.NewWithConfig(motelog.Config{
//		Level:  motelog.LevelDebug,
//		Format: motelog.FormatJSON,
//		Output: os.Stderr,
//	}).WithName("mote-parser")
//
//	logger.Info("parsed", motelog.Fields{"statements": 3})
//
//	timer := logger.StartTimer("parse")
//	// ... parse
//	timer.Stop()
package log
