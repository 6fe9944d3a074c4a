package runtime

import (
	"fmt"
	"sort"

	"plc/interpreter-go/pkg/types"
)

// Callable is the host implementation behind a Function entry.
type Callable func(args []Value) (Value, error)

// Variable is a named value cell.
type Variable struct {
	Name    string
	Type    types.Type
	Mutable bool
	value   Value
}

// NewVariable constructs a variable cell; a nil value is stored as Nil.
func NewVariable(name string, typ types.Type, mutable bool, value Value) *Variable {
	if value == nil {
		value = NilValue{}
	}
	return &Variable{Name: name, Type: typ, Mutable: mutable, value: value}
}

// Value returns the current contents of the cell.
func (v *Variable) Value() Value {
	return v.value
}

// SetValue overwrites the cell. Mutability is the caller's concern.
func (v *Variable) SetValue(value Value) {
	if value == nil {
		value = NilValue{}
	}
	v.value = value
}

// Function is a callable symbol keyed by name and arity.
type Function struct {
	Name           string
	ParameterTypes []types.Type
	ReturnType     types.Type
	body           Callable
}

// NewFunction builds a function entry. body may be nil for signatures that
// are only type checked.
func NewFunction(name string, params []types.Type, ret types.Type, body Callable) *Function {
	return &Function{Name: name, ParameterTypes: params, ReturnType: ret, body: body}
}

// Arity is the number of declared parameters.
func (f *Function) Arity() int {
	return len(f.ParameterTypes)
}

// Invoke runs the function body with already-evaluated arguments.
func (f *Function) Invoke(args []Value) (Value, error) {
	if f.body == nil {
		return nil, fmt.Errorf("function '%s/%d' has no body", f.Name, f.Arity())
	}
	if len(args) != f.Arity() {
		return nil, fmt.Errorf("function '%s/%d' called with %d arguments", f.Name, f.Arity(), len(args))
	}
	return f.body(args)
}

type functionKey struct {
	name  string
	arity int
}

// Scope maps names to variables and (name, arity) to functions. The parent
// pointer is non-owning: a child never outlives the call frame that created
// it, and the parent always outlives the child.
type Scope struct {
	parent    *Scope
	variables map[string]*Variable
	functions map[functionKey]*Function
}

// NewScope creates a new scope, optionally nested under a parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:    parent,
		variables: make(map[string]*Variable),
		functions: make(map[functionKey]*Function),
	}
}

// Parent exposes the enclosing scope (nil at the root).
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Extend creates a child scope.
func (s *Scope) Extend() *Scope {
	return NewScope(s)
}

// DefineVariable binds a variable in this scope. Redeclaring a name already
// bound in this scope (not a parent) is an error.
func (s *Scope) DefineVariable(v *Variable) error {
	if _, exists := s.variables[v.Name]; exists {
		return fmt.Errorf("variable '%s' is already defined in this scope", v.Name)
	}
	s.variables[v.Name] = v
	return nil
}

// LookupVariable searches outward through the scope chain.
func (s *Scope) LookupVariable(name string) (*Variable, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// HasLocalVariable reports whether name is bound in this scope only.
func (s *Scope) HasLocalVariable(name string) bool {
	_, ok := s.variables[name]
	return ok
}

// DefineFunction binds a function in this scope under (name, arity).
func (s *Scope) DefineFunction(fn *Function) error {
	key := functionKey{name: fn.Name, arity: fn.Arity()}
	if _, exists := s.functions[key]; exists {
		return fmt.Errorf("function '%s/%d' is already defined in this scope", fn.Name, fn.Arity())
	}
	s.functions[key] = fn
	return nil
}

// LookupFunction searches outward for a function with the given arity.
func (s *Scope) LookupFunction(name string, arity int) (*Function, bool) {
	key := functionKey{name: name, arity: arity}
	for cur := s; cur != nil; cur = cur.parent {
		if fn, ok := cur.functions[key]; ok {
			return fn, true
		}
	}
	return nil, false
}

// FunctionArities returns the arities visible for name, sorted ascending.
func (s *Scope) FunctionArities(name string) []int {
	seen := make(map[int]struct{})
	for cur := s; cur != nil; cur = cur.parent {
		for key := range cur.functions {
			if key.name == name {
				seen[key.arity] = struct{}{}
			}
		}
	}
	out := make([]int, 0, len(seen))
	for arity := range seen {
		out = append(out, arity)
	}
	sort.Ints(out)
	return out
}

// VariableNames returns this scope's own bindings in sorted order (useful for
// determinism in tests).
func (s *Scope) VariableNames() []string {
	keys := make([]string, 0, len(s.variables))
	for k := range s.variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
