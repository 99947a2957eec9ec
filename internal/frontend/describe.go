package frontend

import (
	"errors"

	moteerror "github.com/msto63/mote/foundation/core/error"
	moteparser "github.com/msto63/mote/foundation/mote/parser"
)

// Error kinds reported to clients
const (
	KindLex      = "lex"
	KindParse    = "parse"
	KindLimit    = "limit"
	KindInternal = "internal"
)

// ErrorInfo is the flat, transport friendly view of a front end error
type ErrorInfo struct {
	Kind     string `json:"kind" yaml:"kind"`
	Code     string `json:"code" yaml:"code"`
	Message  string `json:"message" yaml:"message"`
	Offset   int    `json:"offset" yaml:"offset"`
	Position int    `json:"position" yaml:"position"`
	Found    string `json:"found,omitempty" yaml:"found,omitempty"`
	Context  string `json:"context,omitempty" yaml:"context,omitempty"`
}

// Describe flattens an engine error. Offset and Position are -1 when the
// error does not point into the source.
func Describe(err error) *ErrorInfo {
	if err == nil {
		return nil
	}

	info := &ErrorInfo{
		Kind:     KindInternal,
		Code:     string(moteerror.GetCode(err)),
		Message:  err.Error(),
		Offset:   -1,
		Position: -1,
	}

	var lexErr *moteparser.LexError
	var parseErr *moteparser.ParseError
	switch {
	case errors.As(err, &lexErr):
		info.Kind = KindLex
		info.Message = lexErr.Error()
		info.Offset = lexErr.Offset
		if !lexErr.Unterminated {
			info.Found = string(lexErr.Char)
		}
	case errors.As(err, &parseErr):
		info.Kind = KindParse
		info.Message = parseErr.Error()
		info.Offset = parseErr.Offset
		info.Position = parseErr.Position
		info.Found = parseErr.Found
		info.Context = parseErr.Context
	case moteerror.HasCode(err, moteerror.CodeSourceTooLarge):
		info.Kind = KindLimit
	}
	return info
}
