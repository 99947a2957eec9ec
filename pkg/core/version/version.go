// ============================================================================
// mote - Scripting Language Front End
// ============================================================================
//
// Package:     version
// Description: Central version management for the CLI and the gRPC service
// Author:      msto63
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants for mote components
const (
	// Release version of the mote distribution
	Platform = "0.1.0"

	// Component versions
	Language = "0.1.0"
	FrontEnd = "0.1.0"
	CLI      = "0.1.0"
)

// Build metadata, set with -ldflags "-X github.com/msto63/mote/pkg/core/version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "language":
		return Language
	case "frontend":
		return FrontEnd
	case "cli":
		return CLI
	default:
		return Platform
	}
}

// String returns a one line build description
func String() string {
	return fmt.Sprintf("mote %s (language %s, commit %s, built %s, %s)",
		Platform, Language, Commit, BuildDate, runtime.Version())
}
