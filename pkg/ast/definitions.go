package ast

import "plc/interpreter-go/pkg/runtime"

// Source is the root of a parsed program. Globals always precede functions.
type Source struct {
	nodeImpl

	Globals   []*Global   `json:"globals"`
	Functions []*Function `json:"functions"`
}

func NewSource(globals []*Global, functions []*Function) *Source {
	return &Source{nodeImpl: newNodeImpl(NodeSource), Globals: globals, Functions: functions}
}

// GlobalKind records which keyword introduced a global.
type GlobalKind string

const (
	GlobalList GlobalKind = "LIST"
	GlobalVar  GlobalKind = "VAR"
	GlobalVal  GlobalKind = "VAL"
)

type Global struct {
	nodeImpl

	Name     string            `json:"name"`
	TypeName string            `json:"typeName"`
	Kind     GlobalKind        `json:"kind"`
	Mutable  bool              `json:"mutable"`
	Value    Expression        `json:"value,omitempty"`
	Variable *runtime.Variable `json:"-"`
}

func NewGlobal(name, typeName string, kind GlobalKind, value Expression) *Global {
	return &Global{
		nodeImpl: newNodeImpl(NodeGlobal),
		Name:     name,
		TypeName: typeName,
		Kind:     kind,
		Mutable:  kind != GlobalVal,
		Value:    value,
	}
}

type Function struct {
	nodeImpl

	Name               string            `json:"name"`
	Parameters         []string          `json:"parameters"`
	ParameterTypeNames []string          `json:"parameterTypeNames"`
	ReturnTypeName     *string           `json:"returnTypeName,omitempty"`
	Statements         []Statement       `json:"statements"`
	Function           *runtime.Function `json:"-"`
}

func NewFunction(name string, params, paramTypes []string, returnType *string, body []Statement) *Function {
	return &Function{
		nodeImpl:           newNodeImpl(NodeFunction),
		Name:               name,
		Parameters:         params,
		ParameterTypeNames: paramTypes,
		ReturnTypeName:     returnType,
		Statements:         body,
	}
}
