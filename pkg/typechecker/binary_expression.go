package typechecker

import (
	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/types"
)

func (c *Checker) checkBinaryExpression(ctx frame, expr *ast.BinaryExpression) (types.Type, error) {
	left, err := c.checkExpression(ctx, expr.Left)
	if err != nil {
		return types.Nil, err
	}
	right, err := c.checkExpression(ctx, expr.Right)
	if err != nil {
		return types.Nil, err
	}
	switch expr.Operator {
	case "&&", "||":
		if left != types.Boolean || right != types.Boolean {
			return types.Nil, mismatch(expr, "requires Boolean operands", left, right)
		}
		return types.Boolean, nil
	case "<", ">":
		if left != right || !types.IsOrderable(left) {
			return types.Nil, mismatch(expr, "requires matching Integer, Decimal, Character or String operands", left, right)
		}
		return types.Boolean, nil
	case "==", "!=":
		if left != right {
			return types.Nil, mismatch(expr, "requires operands of the same type", left, right)
		}
		return types.Boolean, nil
	case "+":
		if left == types.String || right == types.String {
			return types.String, nil
		}
		return numeric(expr, left, right)
	case "-", "*", "/":
		return numeric(expr, left, right)
	case "^":
		if left != types.Integer || right != types.Integer {
			return types.Nil, mismatch(expr, "requires Integer operands", left, right)
		}
		return types.Integer, nil
	default:
		return types.Nil, newError(ErrTypeMismatch, expr, "unknown operator '%s'", expr.Operator)
	}
}

func numeric(expr *ast.BinaryExpression, left, right types.Type) (types.Type, error) {
	if left == right && (left == types.Integer || left == types.Decimal) {
		return left, nil
	}
	return types.Nil, mismatch(expr, "requires two Integer or two Decimal operands", left, right)
}

func mismatch(expr *ast.BinaryExpression, requirement string, left, right types.Type) error {
	return newError(ErrTypeMismatch, expr, "operator '%s' %s, found %s and %s", expr.Operator, requirement, left, right)
}
