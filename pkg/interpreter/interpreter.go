package interpreter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/typechecker"
	"plc/interpreter-go/pkg/types"
)

// Interpreter evaluates analyzed programs by walking the tree.
type Interpreter struct {
	out    io.Writer
	logger *slog.Logger
}

// New returns an interpreter whose print builtin writes to out. A nil
// writer discards output.
func New(out io.Writer) *Interpreter {
	if out == nil {
		out = io.Discard
	}
	return &Interpreter{out: out, logger: slog.New(slog.DiscardHandler)}
}

// SetLogger routes evaluation trace records (function calls at debug level)
// to logger.
func (i *Interpreter) SetLogger(logger *slog.Logger) {
	if logger != nil {
		i.logger = logger
	}
}

// completion is the result of running a statement: either normal
// completion or a return carrying its value.
type completion struct {
	returned bool
	value    runtime.Value
}

var normal = completion{}

func returned(v runtime.Value) completion {
	return completion{returned: true, value: v}
}

// Run binds globals and functions, invokes main and returns its result.
func (i *Interpreter) Run(prog *typechecker.Program) (runtime.Value, error) {
	if prog == nil || prog.Source() == nil {
		return nil, errors.New("runtime: program is nil")
	}
	root := runtime.NewScope(nil)
	if err := i.defineBuiltins(root); err != nil {
		return nil, err
	}
	scope := root.Extend()
	src := prog.Source()
	for _, g := range src.Globals {
		if err := i.bindGlobal(g, scope); err != nil {
			return nil, err
		}
	}
	for _, fn := range src.Functions {
		if err := scope.DefineFunction(i.closure(fn, scope)); err != nil {
			return nil, runtimeError(ErrUnresolvedSymbol, "%v", err)
		}
	}
	main, ok := scope.LookupFunction("main", 0)
	if !ok {
		return nil, runtimeError(ErrUnresolvedSymbol, "function 'main/0' is not defined")
	}
	return main.Invoke(nil)
}

func (i *Interpreter) defineBuiltins(scope *runtime.Scope) error {
	printFn := runtime.NewFunction("print", []types.Type{types.Any}, types.Nil, func(args []runtime.Value) (runtime.Value, error) {
		if _, err := fmt.Fprintln(i.out, runtime.Stringify(args[0])); err != nil {
			return nil, fmt.Errorf("runtime: print: %w", err)
		}
		return runtime.NilValue{}, nil
	})
	return scope.DefineFunction(printFn)
}

func (i *Interpreter) bindGlobal(g *ast.Global, scope *runtime.Scope) error {
	var value runtime.Value = runtime.NilValue{}
	if g.Value != nil {
		v, err := i.evaluateExpression(g.Value, scope)
		if err != nil {
			return err
		}
		value = v
	}
	typ := types.Any
	if g.Variable != nil {
		typ = g.Variable.Type
	}
	if err := scope.DefineVariable(runtime.NewVariable(g.Name, typ, g.Mutable, value)); err != nil {
		return runtimeError(ErrUnresolvedSymbol, "%v", err)
	}
	return nil
}

// closure builds the callable for fn. Each invocation runs in a fresh child
// of the defining scope, never the caller's.
func (i *Interpreter) closure(fn *ast.Function, defining *runtime.Scope) *runtime.Function {
	sig := fn.Function
	return runtime.NewFunction(fn.Name, sig.ParameterTypes, sig.ReturnType, func(args []runtime.Value) (runtime.Value, error) {
		i.logger.Debug("call", "function", fn.Name, "arity", len(args))
		scope := defining.Extend()
		for idx, name := range fn.Parameters {
			param := runtime.NewVariable(name, sig.ParameterTypes[idx], true, args[idx])
			if err := scope.DefineVariable(param); err != nil {
				return nil, runtimeError(ErrUnresolvedSymbol, "%v", err)
			}
		}
		result, err := i.executeStatements(fn.Statements, scope)
		if err != nil {
			return nil, err
		}
		if result.returned {
			return result.value, nil
		}
		return runtime.NilValue{}, nil
	})
}

func runtimeError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
