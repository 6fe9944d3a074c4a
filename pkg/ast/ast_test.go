package ast

import (
	"encoding/json"
	"strings"
	"testing"

	"plc/interpreter-go/pkg/types"
)

func TestStaticTypeSlot(t *testing.T) {
	expr := Bin("+", Int(1), Int(2))
	if expr.StaticType() != types.Nil {
		t.Fatalf("fresh expression should report Nil, got %s", expr.StaticType())
	}
	expr.SetStaticType(types.Integer)
	var e Expression = expr
	if e.StaticType() != types.Integer {
		t.Fatalf("slot not updated: %s", e.StaticType())
	}
}

func TestGlobalMutability(t *testing.T) {
	if Val("x", "Integer", Int(1)).Mutable {
		t.Fatalf("VAL globals must be immutable")
	}
	if !VarGlobal("x", "Integer", nil).Mutable {
		t.Fatalf("VAR globals must be mutable")
	}
	if !ListGlobal("xs", "Integer", Int(1)).Mutable {
		t.Fatalf("LIST globals must be mutable")
	}
}

func TestNodeJSONCarriesType(t *testing.T) {
	body, err := json.Marshal(Call("print", Str("hi")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"type":"CallExpression"`) {
		t.Fatalf("missing node type in %s", body)
	}
}

func TestDefaultCase(t *testing.T) {
	if !Default().IsDefault() || When(Int(1)).IsDefault() {
		t.Fatalf("IsDefault misreports")
	}
}
