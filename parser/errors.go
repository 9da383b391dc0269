package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a parse failure.
type Kind int

const (
	// SyntaxError means the input does not match the call chain grammar.
	SyntaxError Kind = iota
	// TypeError means the input is well formed but mixes logic and
	// arithmetic expressions.
	TypeError
)

func (k Kind) String() string {
	if k == TypeError {
		return "TYPE ERROR"
	}
	return "SYNTAX ERROR"
}

// Sentinels for errors.Is.
var (
	ErrSyntax = errors.New("syntax error")
	ErrType   = errors.New("type error")
)

// Error is returned by Parse.
type Error struct {
	Kind Kind
	Pos  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at position %d: %s", e.Kind, e.Pos, e.Msg)
}

// Is makes errors.Is(err, ErrSyntax) and errors.Is(err, ErrType) work.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrSyntax:
		return e.Kind == SyntaxError
	case ErrType:
		return e.Kind == TypeError
	}
	return false
}

func syntaxErrorf(pos int, format string, args ...any) *Error {
	return &Error{Kind: SyntaxError, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func typeErrorf(pos int, format string, args ...any) *Error {
	return &Error{Kind: TypeError, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
