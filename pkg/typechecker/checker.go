package typechecker

import (
	"errors"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/types"
)

// Program is a Source that passed analysis. Every resolved-type and
// resolved-symbol slot in it is populated. Only Check constructs one.
type Program struct {
	source *ast.Source
	main   *ast.Function
}

// Source returns the annotated tree.
func (p *Program) Source() *ast.Source {
	return p.source
}

// Main returns the entry point declaration.
func (p *Program) Main() *ast.Function {
	return p.main
}

// Check analyzes src, annotating it in place, and stops at the first error.
func Check(src *ast.Source) (*Program, error) {
	return New().Check(src)
}

// Checker holds the root scope used during one analysis.
type Checker struct {
	root *runtime.Scope
}

// New returns a checker whose root scope holds the builtins.
func New() *Checker {
	root := runtime.NewScope(nil)
	for _, fn := range Builtins() {
		_ = root.DefineFunction(fn)
	}
	return &Checker{root: root}
}

// Builtins returns the signatures available to every program.
func Builtins() []*runtime.Function {
	return []*runtime.Function{
		runtime.NewFunction("print", []types.Type{types.Any}, types.Nil, nil),
	}
}

// frame is threaded through every visit in place of a shared current
// scope.
type frame struct {
	scope      *runtime.Scope
	returnType types.Type
}

func (ctx frame) child() frame {
	return frame{scope: ctx.scope.Extend(), returnType: ctx.returnType}
}

// Check runs the analysis with this checker's root scope.
func (c *Checker) Check(src *ast.Source) (*Program, error) {
	if src == nil {
		return nil, errors.New("typechecker: source is nil")
	}
	global := frame{scope: c.root.Extend(), returnType: types.Nil}
	for _, g := range src.Globals {
		if err := c.checkGlobal(global, g); err != nil {
			return nil, err
		}
	}
	for _, fn := range src.Functions {
		if err := c.declareFunction(global, fn); err != nil {
			return nil, err
		}
	}
	main, err := findMain(global, src)
	if err != nil {
		return nil, err
	}
	for _, fn := range src.Functions {
		if err := c.checkFunction(global, fn); err != nil {
			return nil, err
		}
	}
	return &Program{source: src, main: main}, nil
}

func resolveType(node ast.Node, name string) (types.Type, error) {
	typ, ok := types.Lookup(name)
	if !ok {
		return types.Nil, newError(ErrUnknownType, node, "unknown type '%s'", name)
	}
	return typ, nil
}

func (c *Checker) checkGlobal(ctx frame, g *ast.Global) error {
	typ, err := resolveType(g, g.TypeName)
	if err != nil {
		return err
	}
	if g.Value != nil {
		valueType, err := c.checkExpression(ctx, g.Value)
		if err != nil {
			return err
		}
		if err := requireAssignable(g.Value, typ, valueType); err != nil {
			return err
		}
	} else if !g.Mutable {
		return newError(ErrIncompleteDeclaration, g, "immutable global '%s' needs an initializer", g.Name)
	}
	variable := runtime.NewVariable(g.Name, typ, g.Mutable, nil)
	if err := ctx.scope.DefineVariable(variable); err != nil {
		return newError(ErrDuplicateDeclaration, g, "global '%s' is already declared", g.Name)
	}
	g.Variable = variable
	return nil
}

func (c *Checker) declareFunction(ctx frame, fn *ast.Function) error {
	params := make([]types.Type, len(fn.ParameterTypeNames))
	for i, name := range fn.ParameterTypeNames {
		if name == "" {
			return newError(ErrUnknownType, fn, "parameter '%s' of function '%s' needs a type", fn.Parameters[i], fn.Name)
		}
		typ, err := resolveType(fn, name)
		if err != nil {
			return err
		}
		params[i] = typ
	}
	ret := types.Nil
	if fn.ReturnTypeName != nil {
		typ, err := resolveType(fn, *fn.ReturnTypeName)
		if err != nil {
			return err
		}
		ret = typ
	}
	signature := runtime.NewFunction(fn.Name, params, ret, nil)
	if err := ctx.scope.DefineFunction(signature); err != nil {
		return newError(ErrDuplicateDeclaration, fn, "function '%s/%d' is already declared", fn.Name, len(params))
	}
	fn.Function = signature
	return nil
}

func findMain(ctx frame, src *ast.Source) (*ast.Function, error) {
	sig, ok := ctx.scope.LookupFunction("main", 0)
	if !ok {
		return nil, newError(ErrUnresolvedMain, src, "program must declare FUN main(): Integer")
	}
	if sig.ReturnType != types.Integer {
		return nil, newError(ErrUnresolvedMain, src, "main must return Integer, not %s", sig.ReturnType)
	}
	for _, fn := range src.Functions {
		if fn.Function == sig {
			return fn, nil
		}
	}
	return nil, newError(ErrUnresolvedMain, src, "program must declare FUN main(): Integer")
}

func (c *Checker) checkFunction(global frame, fn *ast.Function) error {
	ctx := frame{scope: global.scope.Extend(), returnType: fn.Function.ReturnType}
	for i, name := range fn.Parameters {
		param := runtime.NewVariable(name, fn.Function.ParameterTypes[i], true, nil)
		if err := ctx.scope.DefineVariable(param); err != nil {
			return newError(ErrDuplicateDeclaration, fn, "parameter '%s' is declared twice in function '%s'", name, fn.Name)
		}
	}
	return c.checkBlock(ctx, fn.Statements)
}

func requireAssignable(node ast.Node, target, source types.Type) error {
	if types.IsAssignable(target, source) {
		return nil
	}
	return newError(ErrNotAssignable, node, "%s is not assignable to %s", source, target)
}
