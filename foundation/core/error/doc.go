// Package error provides structured error handling for the mote front end.
//
// Package: error
// Title: mote Error Handling
// Description: Structured errors carrying a code, a severity, free-form details
//              and the failed operation. Errors wrap their cause so that
//              errors.Is and errors.As keep working across layers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-17 v0.2.0: Trimmed to codes, severity, details and operation
//
// Usage:
//
//	import moteerror "github.com/msto63/mote/foundation/core/error"
//
//	err := moteerror.New("unexpected token").
//		WithCode(moteerror.CodeSyntax).
//		WithDetail("offset", 12)
//
//	wrapped := moteerror.Wrap(err, "check main.mote").
//		WithOperation("check")
//
//	if moteerror.HasCode(wrapped, moteerror.CodeSyntax) {
//		// report to the user
//	}
package error
