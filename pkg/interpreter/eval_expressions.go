package interpreter

import (
	"math/big"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, scope *runtime.Scope) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NilLiteral:
		return runtime.NilValue{}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.CharacterLiteral:
		return runtime.CharValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: new(big.Int).Set(n.Value)}, nil
	case *ast.DecimalLiteral:
		return runtime.DecimalValue{Val: n.Value}, nil
	case *ast.GroupExpression:
		return i.evaluateExpression(n.Expression, scope)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, scope)
	case *ast.AccessExpression:
		return i.evaluateAccess(n, scope)
	case *ast.CallExpression:
		return i.evaluateCall(n, scope)
	case *ast.ListLiteral:
		elements := make([]runtime.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			v, err := i.evaluateExpression(el, scope)
			if err != nil {
				return nil, err
			}
			elements = append(elements, v)
		}
		return runtime.NewList(elements...), nil
	default:
		return nil, runtimeError(ErrTypeMismatch, "unsupported expression type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateAccess(n *ast.AccessExpression, scope *runtime.Scope) (runtime.Value, error) {
	variable, ok := scope.LookupVariable(n.Name)
	if !ok {
		return nil, runtimeError(ErrUnresolvedSymbol, "undefined variable '%s'", n.Name)
	}
	if n.Index == nil {
		return variable.Value(), nil
	}
	list, idx, err := i.resolveElement(n, variable, scope)
	if err != nil {
		return nil, err
	}
	return list.Elements[idx], nil
}

// resolveElement evaluates the index of an indexed access and bounds-checks
// it against the list currently held by variable.
func (i *Interpreter) resolveElement(n *ast.AccessExpression, variable *runtime.Variable, scope *runtime.Scope) (*runtime.ListValue, int, error) {
	list, ok := variable.Value().(*runtime.ListValue)
	if !ok {
		return nil, 0, runtimeError(ErrTypeMismatch, "'%s' is not a list (got %s)", n.Name, variable.Value().Kind())
	}
	v, err := i.evaluateExpression(n.Index, scope)
	if err != nil {
		return nil, 0, err
	}
	index, ok := v.(runtime.IntegerValue)
	if !ok {
		return nil, 0, runtimeError(ErrTypeMismatch, "list index must be an integer, got %s", v.Kind())
	}
	if index.Val.Sign() < 0 || !index.Val.IsInt64() || index.Val.Int64() >= int64(len(list.Elements)) {
		return nil, 0, runtimeError(ErrIndexOutOfBounds, "index %s out of bounds for '%s' of length %d", index.Val, n.Name, len(list.Elements))
	}
	return list, int(index.Val.Int64()), nil
}

func (i *Interpreter) evaluateCall(n *ast.CallExpression, scope *runtime.Scope) (runtime.Value, error) {
	fn, ok := scope.LookupFunction(n.Name, len(n.Arguments))
	if !ok {
		return nil, runtimeError(ErrUnresolvedSymbol, "undefined function '%s/%d'", n.Name, len(n.Arguments))
	}
	args := make([]runtime.Value, 0, len(n.Arguments))
	for _, arg := range n.Arguments {
		v, err := i.evaluateExpression(arg, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return fn.Invoke(args)
}
