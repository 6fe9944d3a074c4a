package typechecker

import (
	"fmt"
	"math"
	"math/big"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/types"
)

var (
	minInteger = big.NewInt(math.MinInt32)
	maxInteger = big.NewInt(math.MaxInt32)
)

// checkExpression resolves expr's static type, records it in the node and
// returns it.
func (c *Checker) checkExpression(ctx frame, expr ast.Expression) (types.Type, error) {
	typ, err := c.inferExpression(ctx, expr)
	if err != nil {
		return types.Nil, err
	}
	expr.SetStaticType(typ)
	return typ, nil
}

func (c *Checker) inferExpression(ctx frame, expr ast.Expression) (types.Type, error) {
	switch e := expr.(type) {
	case *ast.NilLiteral:
		return types.Nil, nil
	case *ast.BooleanLiteral:
		return types.Boolean, nil
	case *ast.CharacterLiteral:
		return types.Character, nil
	case *ast.StringLiteral:
		return types.String, nil
	case *ast.IntegerLiteral:
		if e.Value == nil || e.Value.Cmp(minInteger) < 0 || e.Value.Cmp(maxInteger) > 0 {
			return types.Nil, newError(ErrLiteralOutOfRange, e, "integer literal %s does not fit in 32 bits", e.Value)
		}
		return types.Integer, nil
	case *ast.DecimalLiteral:
		if e.Value == nil {
			return types.Nil, newError(ErrLiteralOutOfRange, e, "decimal literal has no value")
		}
		f, err := e.Value.Float64()
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return types.Nil, newError(ErrLiteralOutOfRange, e, "decimal literal %s is not a finite double", e.Value)
		}
		return types.Decimal, nil
	case *ast.GroupExpression:
		if _, ok := e.Expression.(*ast.BinaryExpression); !ok {
			return types.Nil, newError(ErrInvalidGroup, e, "parentheses must enclose a binary expression")
		}
		return c.checkExpression(ctx, e.Expression)
	case *ast.BinaryExpression:
		return c.checkBinaryExpression(ctx, e)
	case *ast.AccessExpression:
		return c.checkAccess(ctx, e)
	case *ast.CallExpression:
		return c.checkCall(ctx, e)
	case *ast.ListLiteral:
		return c.checkList(ctx, e)
	default:
		return types.Nil, newError(ErrInvalidStatement, expr, "unsupported expression %T", expr)
	}
}

func (c *Checker) checkAccess(ctx frame, e *ast.AccessExpression) (types.Type, error) {
	variable, ok := ctx.scope.LookupVariable(e.Name)
	if !ok {
		return types.Nil, newError(ErrUnknownSymbol, e, "undefined variable '%s'", e.Name)
	}
	if e.Index != nil {
		indexType, err := c.checkExpression(ctx, e.Index)
		if err != nil {
			return types.Nil, err
		}
		if indexType != types.Integer {
			return types.Nil, newError(ErrTypeMismatch, e.Index, "list index must be Integer, found %s", indexType)
		}
	}
	e.Variable = variable
	return variable.Type, nil
}

func (c *Checker) checkCall(ctx frame, e *ast.CallExpression) (types.Type, error) {
	fn, ok := ctx.scope.LookupFunction(e.Name, len(e.Arguments))
	if !ok {
		if arities := ctx.scope.FunctionArities(e.Name); len(arities) > 0 {
			return types.Nil, newError(ErrArityMismatch, e, "function '%s' takes %s, called with %d", e.Name, describeArities(arities), len(e.Arguments))
		}
		return types.Nil, newError(ErrUnknownSymbol, e, "undefined function '%s/%d'", e.Name, len(e.Arguments))
	}
	for i, arg := range e.Arguments {
		argType, err := c.checkExpression(ctx, arg)
		if err != nil {
			return types.Nil, err
		}
		if err := requireAssignable(arg, fn.ParameterTypes[i], argType); err != nil {
			return types.Nil, err
		}
	}
	e.Function = fn
	return fn.ReturnType, nil
}

func describeArities(arities []int) string {
	if len(arities) == 1 {
		if arities[0] == 1 {
			return "1 argument"
		}
		return fmt.Sprintf("%d arguments", arities[0])
	}
	return fmt.Sprintf("%v arguments", arities)
}

func (c *Checker) checkList(ctx frame, e *ast.ListLiteral) (types.Type, error) {
	if len(e.Elements) == 0 {
		return types.Nil, newError(ErrEmptyList, e, "list literal needs at least one element")
	}
	var elementType types.Type
	for i, el := range e.Elements {
		typ, err := c.checkExpression(ctx, el)
		if err != nil {
			return types.Nil, err
		}
		if i == 0 {
			elementType = typ
			continue
		}
		if typ != elementType {
			return types.Nil, newError(ErrTypeMismatch, el, "list element has type %s, expected %s", typ, elementType)
		}
	}
	return elementType, nil
}
