package typechecker

import (
	"errors"
	"fmt"

	"plc/interpreter-go/pkg/ast"
)

// ErrSemantic matches every analysis failure under errors.Is.
var ErrSemantic = errors.New("semantic error")

// Failure kinds. Each Error carries exactly one of these in Kind.
var (
	ErrUnresolvedMain        = errors.New("unresolved main")
	ErrTypeMismatch          = errors.New("type mismatch")
	ErrNotAssignable         = errors.New("not assignable")
	ErrUnknownSymbol         = errors.New("unknown symbol")
	ErrArityMismatch         = errors.New("arity mismatch")
	ErrDuplicateDeclaration  = errors.New("duplicate declaration")
	ErrEmptyThenBlock        = errors.New("empty then block")
	ErrMissingDefault        = errors.New("missing default case")
	ErrLiteralOutOfRange     = errors.New("literal out of range")
	ErrUnknownType           = errors.New("unknown type")
	ErrInvalidStatement      = errors.New("invalid statement")
	ErrInvalidTarget         = errors.New("invalid assignment target")
	ErrImmutableAssignment   = errors.New("assignment to immutable variable")
	ErrInvalidGroup          = errors.New("invalid group expression")
	ErrEmptyList             = errors.New("empty list literal")
	ErrIncompleteDeclaration = errors.New("incomplete declaration")
)

// Error describes the first contract violation found in a program.
type Error struct {
	Kind    error
	Message string
	Node    ast.Node
}

func (e *Error) Error() string {
	return "typechecker: " + e.Message
}

// Unwrap exposes ErrSemantic and the specific kind. An arity mismatch is
// also an unknown symbol, since no function with that (name, arity) exists.
func (e *Error) Unwrap() []error {
	errs := []error{ErrSemantic, e.Kind}
	if e.Kind == ErrArityMismatch {
		errs = append(errs, ErrUnknownSymbol)
	}
	return errs
}

func newError(kind error, node ast.Node, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Node: node}
}
