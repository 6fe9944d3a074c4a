package interpreter

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, scope *runtime.Scope) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, scope)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "&&", "||":
		lb, ok := left.(runtime.BoolValue)
		if !ok {
			return nil, runtimeError(ErrTypeMismatch, "operator '%s' requires booleans, got %s", expr.Operator, left.Kind())
		}
		if (expr.Operator == "&&" && !lb.Val) || (expr.Operator == "||" && lb.Val) {
			return lb, nil
		}
		right, err := i.evaluateExpression(expr.Right, scope)
		if err != nil {
			return nil, err
		}
		rb, ok := right.(runtime.BoolValue)
		if !ok {
			return nil, runtimeError(ErrTypeMismatch, "operator '%s' requires booleans, got %s", expr.Operator, right.Kind())
		}
		return rb, nil
	}
	right, err := i.evaluateExpression(expr.Right, scope)
	if err != nil {
		return nil, err
	}
	return applyBinary(expr.Operator, left, right)
}

func applyBinary(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "==":
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case "<", ">":
		cmp, err := compare(op, left, right)
		if err != nil {
			return nil, err
		}
		if op == "<" {
			return runtime.BoolValue{Val: cmp < 0}, nil
		}
		return runtime.BoolValue{Val: cmp > 0}, nil
	case "+":
		if left.Kind() == runtime.KindString || right.Kind() == runtime.KindString {
			return runtime.StringValue{Val: runtime.Stringify(left) + runtime.Stringify(right)}, nil
		}
		return arithmetic(op, left, right)
	case "-", "*", "/":
		return arithmetic(op, left, right)
	case "^":
		base, ok1 := left.(runtime.IntegerValue)
		exp, ok2 := right.(runtime.IntegerValue)
		if !ok1 || !ok2 {
			return nil, runtimeError(ErrTypeMismatch, "operator '^' requires integers, got %s and %s", left.Kind(), right.Kind())
		}
		if exp.Val.Sign() < 0 {
			return nil, runtimeError(ErrNegativeExponent, "exponent %s is negative", exp.Val)
		}
		return runtime.IntegerValue{Val: new(big.Int).Exp(base.Val, exp.Val, nil)}, nil
	default:
		return nil, runtimeError(ErrTypeMismatch, "unknown operator '%s'", op)
	}
}

func compare(op string, left, right runtime.Value) (int, error) {
	if left.Kind() != right.Kind() {
		return 0, runtimeError(ErrTypeMismatch, "operator '%s' requires operands of the same type, got %s and %s", op, left.Kind(), right.Kind())
	}
	switch lv := left.(type) {
	case runtime.IntegerValue:
		return lv.Val.Cmp(right.(runtime.IntegerValue).Val), nil
	case runtime.DecimalValue:
		return lv.Val.Cmp(right.(runtime.DecimalValue).Val), nil
	case runtime.CharValue:
		rv := right.(runtime.CharValue).Val
		switch {
		case lv.Val < rv:
			return -1, nil
		case lv.Val > rv:
			return 1, nil
		}
		return 0, nil
	case runtime.StringValue:
		return strings.Compare(lv.Val, right.(runtime.StringValue).Val), nil
	}
	return 0, runtimeError(ErrTypeMismatch, "operator '%s' cannot order %s values", op, left.Kind())
}

func arithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	switch lv := left.(type) {
	case runtime.IntegerValue:
		rv, ok := right.(runtime.IntegerValue)
		if !ok {
			break
		}
		return integerArithmetic(op, lv.Val, rv.Val)
	case runtime.DecimalValue:
		rv, ok := right.(runtime.DecimalValue)
		if !ok {
			break
		}
		return decimalArithmetic(op, lv.Val, rv.Val)
	}
	return nil, runtimeError(ErrTypeMismatch, "operator '%s' requires two integers or two decimals, got %s and %s", op, left.Kind(), right.Kind())
}

func integerArithmetic(op string, l, r *big.Int) (runtime.Value, error) {
	result := new(big.Int)
	switch op {
	case "+":
		result.Add(l, r)
	case "-":
		result.Sub(l, r)
	case "*":
		result.Mul(l, r)
	case "/":
		if r.Sign() == 0 {
			return nil, runtimeError(ErrDivideByZero, "integer division by zero")
		}
		// Quo truncates toward zero.
		result.Quo(l, r)
	}
	return runtime.IntegerValue{Val: result}, nil
}

func decimalArithmetic(op string, l, r *apd.Decimal) (runtime.Value, error) {
	if op == "/" {
		if r.IsZero() {
			return nil, runtimeError(ErrDivideByZero, "decimal division by zero")
		}
		return runtime.DecimalValue{Val: divideHalfEven(l, r)}, nil
	}
	result := new(apd.Decimal)
	var err error
	switch op {
	case "+":
		_, err = apd.BaseContext.Add(result, l, r)
	case "-":
		_, err = apd.BaseContext.Sub(result, l, r)
	case "*":
		_, err = apd.BaseContext.Mul(result, l, r)
	}
	if err != nil {
		return nil, runtimeError(ErrTypeMismatch, "decimal %s failed: %v", op, err)
	}
	return runtime.DecimalValue{Val: result}, nil
}

// divideHalfEven returns l / r rounded half-to-even at the left operand's
// scale, so 1.0 / 3.0 is 0.3 and 5.00 / 2.0 is 2.50.
func divideHalfEven(l, r *apd.Decimal) *apd.Decimal {
	num := signedCoefficient(l)
	den := signedCoefficient(r)
	if r.Exponent >= 0 {
		den.Mul(den, pow10(int64(r.Exponent)))
	} else {
		num.Mul(num, pow10(-int64(r.Exponent)))
	}
	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() != 0 {
		twice := new(big.Int).Abs(rem)
		twice.Lsh(twice, 1)
		cmp := twice.Cmp(new(big.Int).Abs(den))
		if cmp > 0 || (cmp == 0 && quo.Bit(0) == 1) {
			if num.Sign()*den.Sign() < 0 {
				quo.Sub(quo, big.NewInt(1))
			} else {
				quo.Add(quo, big.NewInt(1))
			}
		}
	}
	return apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(quo), l.Exponent)
}

func signedCoefficient(d *apd.Decimal) *big.Int {
	n := d.Coeff.MathBigInt()
	if d.Negative {
		n.Neg(n)
	}
	return n
}

func pow10(exp int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil)
}
