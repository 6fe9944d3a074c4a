package types

import "fmt"

// Type is the closed set of static types known to the analyzer.
type Type int

const (
	Nil Type = iota
	Boolean
	Integer
	Decimal
	Character
	String
	Comparable
	Any
)

var typeNames = [...]string{
	Nil:        "Nil",
	Boolean:    "Boolean",
	Integer:    "Integer",
	Decimal:    "Decimal",
	Character:  "Character",
	String:     "String",
	Comparable: "Comparable",
	Any:        "Any",
}

// jvmNames maps each type onto the Java type used by the code generator.
var jvmNames = [...]string{
	Nil:        "Void",
	Boolean:    "boolean",
	Integer:    "int",
	Decimal:    "double",
	Character:  "char",
	String:     "String",
	Comparable: "Comparable",
	Any:        "Object",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// JVMName returns the Java spelling of the type.
func (t Type) JVMName() string {
	if t < 0 || int(t) >= len(jvmNames) {
		return "Object"
	}
	return jvmNames[t]
}

// All lists every type in declaration order.
func All() []Type {
	return []Type{Nil, Boolean, Integer, Decimal, Character, String, Comparable, Any}
}

// Lookup resolves a source-level type name.
func Lookup(name string) (Type, bool) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), true
		}
	}
	return Nil, false
}

// IsAssignable reports whether a value of type source may be stored where
// target is expected. The lattice is one hop deep: Any and Comparable accept
// the concrete types listed below, every other type accepts only itself.
func IsAssignable(target, source Type) bool {
	if target == source {
		return true
	}
	switch target {
	case Any:
		switch source {
		case Boolean, Character, Decimal, Integer, String:
			return true
		}
	case Comparable:
		switch source {
		case Character, Decimal, Integer, String:
			return true
		}
	}
	return false
}

// IsOrderable reports whether values of t support < and >.
func IsOrderable(t Type) bool {
	switch t {
	case Integer, Decimal, Character, String:
		return true
	}
	return false
}
