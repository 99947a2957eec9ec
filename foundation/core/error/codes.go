// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for consistent error classification
//              across the mote front end, its services and its command line tools.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-17 v0.2.0: Language front end codes, dropped business/auth codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Language front end
	CodeLexical            Code = "LEXICAL"
	CodeUnterminatedString Code = "UNTERMINATED_STRING"
	CodeSyntax             Code = "SYNTAX"
	CodeUnexpectedEOF      Code = "UNEXPECTED_EOF"
	CodeUnknownKeyword     Code = "UNKNOWN_KEYWORD"
	CodeInvalidLiteral     Code = "INVALID_LITERAL"
	CodeSourceTooLarge     Code = "SOURCE_TOO_LARGE"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Service and network
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeNetworkError       Code = "NETWORK_ERROR"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeLexical, CodeUnterminatedString, CodeSyntax, CodeUnexpectedEOF,
		CodeUnknownKeyword, CodeInvalidLiteral, CodeSourceTooLarge,
		CodeDatabaseError, CodeServiceUnavailable, CodeNetworkError,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexical, CodeUnterminatedString:
		return "lexical"
	case CodeSyntax, CodeUnexpectedEOF, CodeUnknownKeyword, CodeInvalidLiteral:
		return "syntax"
	case CodeSourceTooLarge, CodeInvalidInput:
		return "input"
	case CodeDatabaseError:
		return "database"
	case CodeServiceUnavailable, CodeNetworkError, CodeTimeout:
		return "service"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// IsSourceError reports whether the code describes a defect in the
// submitted source text rather than a failure of the system.
func (c Code) IsSourceError() bool {
	switch c.Category() {
	case "lexical", "syntax", "input":
		return true
	}
	return false
}
