package ast

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// Literal helpers.

func Nil() *NilLiteral {
	return NewNilLiteral()
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Chr(value rune) *CharacterLiteral {
	return NewCharacterLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(big.NewInt(value))
}

func IntBig(value *big.Int) *IntegerLiteral {
	return NewIntegerLiteral(new(big.Int).Set(value))
}

// Dec builds coeff * 10^exponent, so Dec(15, -1) is 1.5.
func Dec(coeff int64, exponent int32) *DecimalLiteral {
	return NewDecimalLiteral(apd.New(coeff, exponent))
}

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(elements)
}

// Expression helpers.

func Var(name string) *AccessExpression {
	return NewAccessExpression(name, nil)
}

func Index(name string, index Expression) *AccessExpression {
	return NewAccessExpression(name, index)
}

func Call(name string, args ...Expression) *CallExpression {
	return NewCallExpression(name, args)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Group(expr Expression) *GroupExpression {
	return NewGroupExpression(expr)
}

// Statement helpers.

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Let(name string, typeName string, value Expression) *Declaration {
	var tn *string
	if typeName != "" {
		tn = &typeName
	}
	return NewDeclaration(name, tn, value)
}

func Assign(receiver, value Expression) *Assignment {
	return NewAssignment(receiver, value)
}

func If(cond Expression, then []Statement, els ...Statement) *IfStatement {
	return NewIfStatement(cond, then, els)
}

func Block(stmts ...Statement) []Statement {
	return stmts
}

func Switch(cond Expression, cases ...*Case) *SwitchStatement {
	return NewSwitchStatement(cond, cases)
}

func When(value Expression, body ...Statement) *Case {
	return NewCase(value, body)
}

func Default(body ...Statement) *Case {
	return NewCase(nil, body)
}

func While(cond Expression, body ...Statement) *WhileStatement {
	return NewWhileStatement(cond, body)
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(value)
}

// Declaration helpers.

func Val(name, typeName string, value Expression) *Global {
	return NewGlobal(name, typeName, GlobalVal, value)
}

func VarGlobal(name, typeName string, value Expression) *Global {
	return NewGlobal(name, typeName, GlobalVar, value)
}

func ListGlobal(name, typeName string, elements ...Expression) *Global {
	return NewGlobal(name, typeName, GlobalList, NewListLiteral(elements))
}

// Param is one name:type pair for Fn.
type Param struct {
	Name, Type string
}

func P(name, typeName string) Param {
	return Param{Name: name, Type: typeName}
}

func Fn(name string, params []Param, returnType string, body ...Statement) *Function {
	names := make([]string, len(params))
	typeNames := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
		typeNames[i] = p.Type
	}
	var rt *string
	if returnType != "" {
		rt = &returnType
	}
	return NewFunction(name, names, typeNames, rt, body)
}

func Program(globals []*Global, functions ...*Function) *Source {
	return NewSource(globals, functions)
}
