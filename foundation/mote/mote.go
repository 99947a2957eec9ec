// File: mote.go
// Title: mote Engine
// Description: High-level API over the lexer and parser. The engine enforces
//              input limits, logs and times each run, and converts lexer and
//              parser failures into structured errors while keeping the
//              original error reachable through errors.As.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-13 v0.1.0: Initial engine implementation
// - 2026-10-16 v0.1.1: Analyze with statistics

package mote

import (
	"errors"
	"fmt"
	"time"

	moteerror "github.com/msto63/mote/foundation/core/error"
	motelog "github.com/msto63/mote/foundation/core/log"
	moteast "github.com/msto63/mote/foundation/mote/ast"
	moteparser "github.com/msto63/mote/foundation/mote/parser"
)

// DefaultMaxSourceLength is the default limit for a single source text
const DefaultMaxSourceLength = 1 << 20

// Engine tokenizes and parses mote source text. It holds no per-run state
// and is safe for concurrent use.
type Engine struct {
	logger  *motelog.Logger
	options Options
}

// Options configures the engine
type Options struct {
	// Logger for engine operations (optional, defaults to the default logger)
	Logger *motelog.Logger

	// MaxSourceLength limits the source size in bytes (default: 1 MiB)
	MaxSourceLength int
}

// Result bundles everything a single analysis produced
type Result struct {
	Tokens   []moteparser.Token
	Root     *moteast.Node
	Stats    moteast.Stats
	Duration time.Duration
}

// NewEngine creates a new engine with the specified options
func NewEngine(opts ...Options) (*Engine, error) {
	options := Options{
		Logger:          motelog.GetDefault(),
		MaxSourceLength: DefaultMaxSourceLength,
	}

	if len(opts) > 0 {
		provided := opts[0]
		if provided.Logger != nil {
			options.Logger = provided.Logger
		}
		if provided.MaxSourceLength < 0 {
			return nil, fmt.Errorf("invalid max source length %d", provided.MaxSourceLength)
		}
		if provided.MaxSourceLength > 0 {
			options.MaxSourceLength = provided.MaxSourceLength
		}
	}

	return &Engine{
		logger:  options.Logger.WithField("component", "mote-engine"),
		options: options,
	}, nil
}

// MaxSourceLength returns the configured source size limit
func (e *Engine) MaxSourceLength() int {
	return e.options.MaxSourceLength
}

// Tokenize converts source text into tokens
func (e *Engine) Tokenize(source string) ([]moteparser.Token, error) {
	if err := e.validateInput(source); err != nil {
		return nil, err
	}

	tokens, err := moteparser.Tokenize(source)
	if err != nil {
		e.logger.Debug("tokenize failed", motelog.Fields{"length": len(source), "error": err.Error()})
		return nil, wrapError(err, "tokenize")
	}

	e.logger.Trace("tokenized", motelog.Fields{"length": len(source), "tokens": len(tokens)})
	return tokens, nil
}

// Parse tokenizes and parses source text into a tree rooted at a Block
func (e *Engine) Parse(source string) (*moteast.Node, error) {
	result, err := e.Analyze(source)
	if err != nil {
		return nil, err
	}
	return result.Root, nil
}

// ParseTokens parses an existing token stream
func (e *Engine) ParseTokens(tokens []moteparser.Token) (*moteast.Node, error) {
	root, err := moteparser.Parse(tokens)
	if err != nil {
		return nil, wrapError(err, "parse")
	}
	return root, nil
}

// Analyze tokenizes and parses source text and reports tree statistics
func (e *Engine) Analyze(source string) (*Result, error) {
	start := time.Now()
	timer := e.logger.StartTimer("mote_parse").WithField("length", len(source))

	tokens, err := e.Tokenize(source)
	if err != nil {
		timer.StopWithError(err)
		return nil, err
	}

	root, err := e.ParseTokens(tokens)
	if err != nil {
		timer.StopWithError(err)
		return nil, err
	}

	stats := moteast.Collect(root)
	timer.WithFields(motelog.Fields{"tokens": len(tokens), "nodes": stats.Nodes}).Stop()

	return &Result{
		Tokens:   tokens,
		Root:     root,
		Stats:    stats,
		Duration: time.Since(start),
	}, nil
}

func (e *Engine) validateInput(source string) error {
	if len(source) > e.options.MaxSourceLength {
		return moteerror.Newf("source exceeds maximum length: %d > %d", len(source), e.options.MaxSourceLength).
			WithCode(moteerror.CodeSourceTooLarge).
			WithDetail("length", len(source)).
			WithDetail("max_length", e.options.MaxSourceLength)
	}
	return nil
}

// wrapError converts lexer and parser errors into structured errors
func wrapError(err error, operation string) error {
	wrapped := moteerror.Wrap(err, "invalid source").WithOperation(operation)

	var lexErr *moteparser.LexError
	var parseErr *moteparser.ParseError
	switch {
	case errors.As(err, &lexErr):
		code := moteerror.CodeLexical
		if lexErr.Unterminated {
			code = moteerror.CodeUnterminatedString
		}
		return wrapped.WithCode(code).
			WithDetail("offset", lexErr.Offset).
			WithDetail("character", string(lexErr.Char))

	case errors.As(err, &parseErr):
		return wrapped.WithCode(parseErrorCode(parseErr.Kind)).
			WithDetail("offset", parseErr.Offset).
			WithDetail("position", parseErr.Position).
			WithDetail("found", parseErr.Found).
			WithDetail("context", parseErr.Context)
	}
	return wrapped.WithCode(moteerror.CodeInternal)
}

func parseErrorCode(kind moteparser.ParseErrorKind) moteerror.Code {
	switch kind {
	case moteparser.UnexpectedEOF:
		return moteerror.CodeUnexpectedEOF
	case moteparser.UnknownKeyword:
		return moteerror.CodeUnknownKeyword
	case moteparser.InvalidNumber:
		return moteerror.CodeInvalidLiteral
	default:
		return moteerror.CodeSyntax
	}
}

// Offset returns the source offset of a lexer or parser error anywhere in
// the chain of err
func Offset(err error) (int, bool) {
	var lexErr *moteparser.LexError
	if errors.As(err, &lexErr) {
		return lexErr.Offset, true
	}
	var parseErr *moteparser.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Offset, true
	}
	return 0, false
}
