package ast

import "plc/interpreter-go/pkg/runtime"

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type Declaration struct {
	nodeImpl
	statementMarker

	Name     string            `json:"name"`
	TypeName *string           `json:"typeName,omitempty"`
	Value    Expression        `json:"value,omitempty"`
	Variable *runtime.Variable `json:"-"`
}

func NewDeclaration(name string, typeName *string, value Expression) *Declaration {
	return &Declaration{nodeImpl: newNodeImpl(NodeDeclaration), Name: name, TypeName: typeName, Value: value}
}

type Assignment struct {
	nodeImpl
	statementMarker

	Receiver Expression `json:"receiver"`
	Value    Expression `json:"value"`
}

func NewAssignment(receiver, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Receiver: receiver, Value: value}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression  `json:"condition"`
	Then      []Statement `json:"then"`
	Else      []Statement `json:"else,omitempty"`
}

func NewIfStatement(cond Expression, then, els []Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: cond, Then: then, Else: els}
}

type SwitchStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Cases     []*Case    `json:"cases"`
}

func NewSwitchStatement(cond Expression, cases []*Case) *SwitchStatement {
	return &SwitchStatement{nodeImpl: newNodeImpl(NodeSwitchStatement), Condition: cond, Cases: cases}
}

// Case is one arm of a switch. A nil Value marks the default arm.
type Case struct {
	nodeImpl

	Value      Expression  `json:"value,omitempty"`
	Statements []Statement `json:"statements"`
}

func NewCase(value Expression, body []Statement) *Case {
	return &Case{nodeImpl: newNodeImpl(NodeCase), Value: value, Statements: body}
}

// IsDefault reports whether this is the DEFAULT arm.
func (c *Case) IsDefault() bool {
	return c.Value == nil
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition  Expression  `json:"condition"`
	Statements []Statement `json:"statements"`
}

func NewWhileStatement(cond Expression, body []Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: cond, Statements: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value,omitempty"`
}

func NewReturnStatement(value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Value: value}
}
