package typechecker

import (
	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/types"
)

func (c *Checker) checkBlock(ctx frame, stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := c.checkStatement(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkStatement(ctx frame, stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return c.checkExpressionStatement(ctx, s)
	case *ast.Declaration:
		return c.checkDeclaration(ctx, s)
	case *ast.Assignment:
		return c.checkAssignment(ctx, s)
	case *ast.IfStatement:
		return c.checkIf(ctx, s)
	case *ast.SwitchStatement:
		return c.checkSwitch(ctx, s)
	case *ast.WhileStatement:
		return c.checkWhile(ctx, s)
	case *ast.ReturnStatement:
		return c.checkReturn(ctx, s)
	default:
		return newError(ErrInvalidStatement, stmt, "unsupported statement %T", stmt)
	}
}

func (c *Checker) checkExpressionStatement(ctx frame, s *ast.ExpressionStatement) error {
	if _, ok := s.Expression.(*ast.CallExpression); !ok {
		return newError(ErrInvalidStatement, s, "expression statement must be a function call")
	}
	_, err := c.checkExpression(ctx, s.Expression)
	return err
}

func (c *Checker) checkDeclaration(ctx frame, s *ast.Declaration) error {
	if s.TypeName == nil && s.Value == nil {
		return newError(ErrIncompleteDeclaration, s, "declaration of '%s' needs a type or an initial value", s.Name)
	}
	if ctx.scope.HasLocalVariable(s.Name) {
		return newError(ErrDuplicateDeclaration, s, "variable '%s' is already declared in this scope", s.Name)
	}
	var typ types.Type
	if s.TypeName != nil {
		t, err := resolveType(s, *s.TypeName)
		if err != nil {
			return err
		}
		typ = t
	}
	if s.Value != nil {
		valueType, err := c.checkExpression(ctx, s.Value)
		if err != nil {
			return err
		}
		if s.TypeName == nil {
			typ = valueType
		} else if err := requireAssignable(s.Value, typ, valueType); err != nil {
			return err
		}
	}
	variable := runtime.NewVariable(s.Name, typ, true, nil)
	if err := ctx.scope.DefineVariable(variable); err != nil {
		return newError(ErrDuplicateDeclaration, s, "variable '%s' is already declared in this scope", s.Name)
	}
	s.Variable = variable
	return nil
}

func (c *Checker) checkAssignment(ctx frame, s *ast.Assignment) error {
	receiver, ok := s.Receiver.(*ast.AccessExpression)
	if !ok {
		return newError(ErrInvalidTarget, s, "assignment target must be a variable or list element")
	}
	targetType, err := c.checkExpression(ctx, receiver)
	if err != nil {
		return err
	}
	if !receiver.Variable.Mutable {
		return newError(ErrImmutableAssignment, s, "cannot assign to immutable '%s'", receiver.Name)
	}
	valueType, err := c.checkExpression(ctx, s.Value)
	if err != nil {
		return err
	}
	return requireAssignable(s.Value, targetType, valueType)
}

func (c *Checker) requireCondition(ctx frame, cond ast.Expression, keyword string) error {
	typ, err := c.checkExpression(ctx, cond)
	if err != nil {
		return err
	}
	if typ != types.Boolean {
		return newError(ErrTypeMismatch, cond, "%s condition must be Boolean, found %s", keyword, typ)
	}
	return nil
}

func (c *Checker) checkIf(ctx frame, s *ast.IfStatement) error {
	if err := c.requireCondition(ctx, s.Condition, "IF"); err != nil {
		return err
	}
	if len(s.Then) == 0 {
		return newError(ErrEmptyThenBlock, s, "IF requires at least one statement before ELSE/END")
	}
	if err := c.checkBlock(ctx.child(), s.Then); err != nil {
		return err
	}
	return c.checkBlock(ctx.child(), s.Else)
}

func (c *Checker) checkSwitch(ctx frame, s *ast.SwitchStatement) error {
	condType, err := c.checkExpression(ctx, s.Condition)
	if err != nil {
		return err
	}
	if len(s.Cases) == 0 || !s.Cases[len(s.Cases)-1].IsDefault() {
		return newError(ErrMissingDefault, s, "SWITCH requires a trailing DEFAULT case")
	}
	for i, cs := range s.Cases {
		if cs.IsDefault() && i != len(s.Cases)-1 {
			return newError(ErrMissingDefault, cs, "DEFAULT must be the last case")
		}
		caseCtx := ctx.child()
		if !cs.IsDefault() {
			valueType, err := c.checkExpression(caseCtx, cs.Value)
			if err != nil {
				return err
			}
			if valueType != condType {
				return newError(ErrTypeMismatch, cs, "CASE value has type %s, SWITCH condition has type %s", valueType, condType)
			}
		}
		if err := c.checkBlock(caseCtx, cs.Statements); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkWhile(ctx frame, s *ast.WhileStatement) error {
	if err := c.requireCondition(ctx, s.Condition, "WHILE"); err != nil {
		return err
	}
	return c.checkBlock(ctx.child(), s.Statements)
}

func (c *Checker) checkReturn(ctx frame, s *ast.ReturnStatement) error {
	valueType := types.Nil
	if s.Value != nil {
		typ, err := c.checkExpression(ctx, s.Value)
		if err != nil {
			return err
		}
		valueType = typ
	}
	if !types.IsAssignable(ctx.returnType, valueType) {
		return newError(ErrNotAssignable, s, "cannot return %s from a function returning %s", valueType, ctx.returnType)
	}
	return nil
}
