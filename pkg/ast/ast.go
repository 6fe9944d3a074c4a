package ast

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"

	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/types"
)

type NodeType string

const (
	NodeSource              NodeType = "Source"
	NodeGlobal              NodeType = "Global"
	NodeFunction            NodeType = "Function"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeDeclaration         NodeType = "Declaration"
	NodeAssignment          NodeType = "Assignment"
	NodeIfStatement         NodeType = "IfStatement"
	NodeSwitchStatement     NodeType = "SwitchStatement"
	NodeCase                NodeType = "Case"
	NodeWhileStatement      NodeType = "WhileStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeNilLiteral          NodeType = "NilLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeCharacterLiteral    NodeType = "CharacterLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeIntegerLiteral      NodeType = "IntegerLiteral"
	NodeDecimalLiteral      NodeType = "DecimalLiteral"
	NodeGroupExpression     NodeType = "GroupExpression"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeAccessExpression    NodeType = "AccessExpression"
	NodeCallExpression      NodeType = "CallExpression"
	NodeListLiteral         NodeType = "ListLiteral"
)

type Node interface {
	NodeType() NodeType
	Position() int
	SetPosition(offset int)
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Pos  int      `json:"offset"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Position() int      { return n.Pos }
func (n *nodeImpl) SetPosition(offset int) {
	n.Pos = offset
}
func (nodeImpl) isNode() {}

// Marker interfaces.

// Expression nodes carry a resolved static type filled in by the type
// checker. Reading it before a successful check yields Nil.
type Expression interface {
	Node
	expressionNode()
	StaticType() types.Type
	SetStaticType(types.Type)
}

type expressionMarker struct {
	resolved types.Type
}

func (expressionMarker) expressionNode()              {}
func (m expressionMarker) StaticType() types.Type     { return m.resolved }
func (m *expressionMarker) SetStaticType(t types.Type) { m.resolved = t }

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Literals

type NilLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type CharacterLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value rune `json:"value"`
}

func NewCharacterLiteral(value rune) *CharacterLiteral {
	return &CharacterLiteral{nodeImpl: newNodeImpl(NodeCharacterLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value *big.Int `json:"value"`
}

func NewIntegerLiteral(value *big.Int) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type DecimalLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value *apd.Decimal `json:"value"`
}

func NewDecimalLiteral(value *apd.Decimal) *DecimalLiteral {
	return &DecimalLiteral{nodeImpl: newNodeImpl(NodeDecimalLiteral), Value: value}
}

// Compound expressions

type GroupExpression struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewGroupExpression(expr Expression) *GroupExpression {
	return &GroupExpression{nodeImpl: newNodeImpl(NodeGroupExpression), Expression: expr}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// AccessExpression reads a variable, or one element of a list variable
// when Index is set.
type AccessExpression struct {
	nodeImpl
	expressionMarker

	Name     string            `json:"name"`
	Index    Expression        `json:"index,omitempty"`
	Variable *runtime.Variable `json:"-"`
}

func NewAccessExpression(name string, index Expression) *AccessExpression {
	return &AccessExpression{nodeImpl: newNodeImpl(NodeAccessExpression), Name: name, Index: index}
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Name      string            `json:"name"`
	Arguments []Expression      `json:"arguments"`
	Function  *runtime.Function `json:"-"`
}

func NewCallExpression(name string, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Name: name, Arguments: args}
}

type ListLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewListLiteral(elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Elements: elements}
}
