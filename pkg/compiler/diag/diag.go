// Package diag defines the compile-time error taxonomy shared by the
// lexer, parser, evaluator and scene builder. Every failure carries the
// line of the offending token and unwraps to a sentinel kind so callers
// can match with errors.Is.
package diag

import (
	"errors"
	"fmt"
)

var (
	ErrLex   = errors.New("lex error")
	ErrParse = errors.New("parse error")

	// Parse-family errors. They unwrap to ErrParse as well as themselves.
	ErrMissingField   = fmt.Errorf("%w: missing field", ErrParse)
	ErrDuplicateField = fmt.Errorf("%w: duplicate field", ErrParse)
	ErrUnknownBlock   = fmt.Errorf("%w: unknown block", ErrParse)
	ErrMissingCanvas  = fmt.Errorf("%w: missing canvas", ErrParse)
	ErrBlockOrder     = fmt.Errorf("%w: unexpected block order", ErrParse)

	ErrUndefinedName  = errors.New("undefined name")
	ErrDuplicateConst = errors.New("duplicate constant")
	ErrMacroArity     = errors.New("macro arity mismatch")
	ErrDivisionByZero = errors.New("division by zero")
	ErrTypeMismatch   = errors.New("type mismatch")
)

// Error is a positioned compile error. Kind is one of the sentinels above.
type Error struct {
	Kind error
	Line uint32
	Msg  string
}

// New builds a positioned error of the given kind.
func New(kind error, line uint32, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }
