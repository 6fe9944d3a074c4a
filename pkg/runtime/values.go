package runtime

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"plc/interpreter-go/pkg/types"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindChar
	KindString
	KindInteger
	KindDecimal
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindChar:
		return "character"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// StaticType maps a runtime kind onto the analyzer's type enumeration.
// Lists report Any since the analyzer does not track list element types
// past the literal.
func (k Kind) StaticType() types.Type {
	switch k {
	case KindBool:
		return types.Boolean
	case KindChar:
		return types.Character
	case KindString:
		return types.String
	case KindInteger:
		return types.Integer
	case KindDecimal:
		return types.Decimal
	case KindList:
		return types.Any
	default:
		return types.Nil
	}
}

// Value is the tagged union every evaluated expression produces.
type Value interface {
	Kind() Kind
}

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type CharValue struct {
	Val rune
}

func (v CharValue) Kind() Kind { return KindChar }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// IntegerValue is an arbitrary-precision integer. Val is never mutated after
// construction; arithmetic always allocates a fresh big.Int.
type IntegerValue struct {
	Val *big.Int
}

func (v IntegerValue) Kind() Kind { return KindInteger }

// DecimalValue is an arbitrary-precision decimal. Like IntegerValue, Val is
// treated as immutable.
type DecimalValue struct {
	Val *apd.Decimal
}

func (v DecimalValue) Kind() Kind { return KindDecimal }

// ListValue is the only mutable value; element assignment updates it in place.
type ListValue struct {
	Elements []Value
}

func (v *ListValue) Kind() Kind { return KindList }

// NewInteger wraps a machine integer.
func NewInteger(n int64) IntegerValue {
	return IntegerValue{Val: big.NewInt(n)}
}

// NewDecimal wraps coeff * 10^exponent.
func NewDecimal(coeff int64, exponent int32) DecimalValue {
	return DecimalValue{Val: apd.New(coeff, exponent)}
}

// NewList builds a list value from elements.
func NewList(elements ...Value) *ListValue {
	return &ListValue{Elements: elements}
}

// Equal compares values structurally. Decimals compare by numeric value, so
// 1.0 equals 1.00.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case NilValue:
		return true
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	case CharValue:
		return av.Val == b.(CharValue).Val
	case StringValue:
		return av.Val == b.(StringValue).Val
	case IntegerValue:
		return av.Val.Cmp(b.(IntegerValue).Val) == 0
	case DecimalValue:
		return av.Val.Cmp(b.(DecimalValue).Val) == 0
	case *ListValue:
		bv := b.(*ListValue)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	}
	return false
}
