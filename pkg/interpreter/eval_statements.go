package interpreter

import (
	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
)

// executeStatements runs stmts in scope, stopping at the first return.
func (i *Interpreter) executeStatements(stmts []ast.Statement, scope *runtime.Scope) (completion, error) {
	for _, stmt := range stmts {
		result, err := i.evaluateStatement(stmt, scope)
		if err != nil {
			return normal, err
		}
		if result.returned {
			return result, nil
		}
	}
	return normal, nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement, scope *runtime.Scope) (completion, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, scope)
		return normal, err
	case *ast.Declaration:
		return normal, i.evaluateDeclaration(n, scope)
	case *ast.Assignment:
		return normal, i.evaluateAssignment(n, scope)
	case *ast.IfStatement:
		return i.evaluateIf(n, scope)
	case *ast.SwitchStatement:
		return i.evaluateSwitch(n, scope)
	case *ast.WhileStatement:
		return i.evaluateWhile(n, scope)
	case *ast.ReturnStatement:
		if n.Value == nil {
			return returned(runtime.NilValue{}), nil
		}
		v, err := i.evaluateExpression(n.Value, scope)
		if err != nil {
			return normal, err
		}
		return returned(v), nil
	default:
		return normal, runtimeError(ErrTypeMismatch, "unsupported statement type: %s", node.NodeType())
	}
}

func (i *Interpreter) evaluateDeclaration(n *ast.Declaration, scope *runtime.Scope) error {
	var value runtime.Value = runtime.NilValue{}
	if n.Value != nil {
		v, err := i.evaluateExpression(n.Value, scope)
		if err != nil {
			return err
		}
		value = v
	}
	typ := n.Variable.Type
	if err := scope.DefineVariable(runtime.NewVariable(n.Name, typ, true, value)); err != nil {
		return runtimeError(ErrUnresolvedSymbol, "%v", err)
	}
	return nil
}

func (i *Interpreter) evaluateAssignment(n *ast.Assignment, scope *runtime.Scope) error {
	receiver, ok := n.Receiver.(*ast.AccessExpression)
	if !ok {
		return runtimeError(ErrTypeMismatch, "cannot assign to %s", n.Receiver.NodeType())
	}
	variable, ok := scope.LookupVariable(receiver.Name)
	if !ok {
		return runtimeError(ErrUnresolvedSymbol, "undefined variable '%s'", receiver.Name)
	}
	if !variable.Mutable {
		return runtimeError(ErrImmutableAssignment, "cannot assign to immutable '%s'", receiver.Name)
	}
	if receiver.Index == nil {
		value, err := i.evaluateExpression(n.Value, scope)
		if err != nil {
			return err
		}
		variable.SetValue(value)
		return nil
	}
	list, idx, err := i.resolveElement(receiver, variable, scope)
	if err != nil {
		return err
	}
	value, err := i.evaluateExpression(n.Value, scope)
	if err != nil {
		return err
	}
	list.Elements[idx] = value
	return nil
}

func (i *Interpreter) requireBoolean(cond ast.Expression, scope *runtime.Scope, keyword string) (bool, error) {
	v, err := i.evaluateExpression(cond, scope)
	if err != nil {
		return false, err
	}
	b, ok := v.(runtime.BoolValue)
	if !ok {
		return false, runtimeError(ErrTypeMismatch, "%s condition must be a boolean, got %s", keyword, v.Kind())
	}
	return b.Val, nil
}

func (i *Interpreter) evaluateIf(n *ast.IfStatement, scope *runtime.Scope) (completion, error) {
	cond, err := i.requireBoolean(n.Condition, scope, "IF")
	if err != nil {
		return normal, err
	}
	if cond {
		return i.executeStatements(n.Then, scope.Extend())
	}
	return i.executeStatements(n.Else, scope.Extend())
}

// evaluateSwitch evaluates the condition once and runs at most one arm: the
// first case whose value equals the condition, else the default.
func (i *Interpreter) evaluateSwitch(n *ast.SwitchStatement, scope *runtime.Scope) (completion, error) {
	cond, err := i.evaluateExpression(n.Condition, scope)
	if err != nil {
		return normal, err
	}
	for _, cs := range n.Cases {
		caseScope := scope.Extend()
		if !cs.IsDefault() {
			v, err := i.evaluateExpression(cs.Value, caseScope)
			if err != nil {
				return normal, err
			}
			if !runtime.Equal(cond, v) {
				continue
			}
		}
		return i.executeStatements(cs.Statements, caseScope)
	}
	return normal, nil
}

func (i *Interpreter) evaluateWhile(n *ast.WhileStatement, scope *runtime.Scope) (completion, error) {
	for {
		cond, err := i.requireBoolean(n.Condition, scope, "WHILE")
		if err != nil {
			return normal, err
		}
		if !cond {
			return normal, nil
		}
		result, err := i.executeStatements(n.Statements, scope.Extend())
		if err != nil || result.returned {
			return result, err
		}
	}
}
