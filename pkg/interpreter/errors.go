package interpreter

import "errors"

// ErrRuntime matches every runtime failure under errors.Is.
var ErrRuntime = errors.New("runtime error")

var (
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrDivideByZero        = errors.New("divide by zero")
	ErrIndexOutOfBounds    = errors.New("index out of bounds")
	ErrImmutableAssignment = errors.New("assignment to immutable variable")
	ErrUnresolvedSymbol    = errors.New("unresolved symbol")
	ErrNegativeExponent    = errors.New("negative exponent")
)

// Error is a fatal contract violation raised while running a program.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return "runtime: " + e.Message
}

func (e *Error) Unwrap() []error {
	return []error{ErrRuntime, e.Kind}
}
