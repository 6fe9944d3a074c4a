package types

import "testing"

func TestIsAssignable(t *testing.T) {
	cases := []struct {
		target, source Type
		want           bool
	}{
		{Any, Integer, true},
		{Comparable, Integer, true},
		{Boolean, Integer, false},
		{Comparable, Boolean, false},
		{Any, Boolean, true},
		{Any, Any, true},
		{Comparable, Comparable, true},
		{Any, Comparable, false},
		{Any, Nil, false},
		{Nil, Nil, true},
		{Integer, Decimal, false},
		{Decimal, Integer, false},
		{String, Character, false},
		{Comparable, Any, false},
	}
	for _, tc := range cases {
		if got := IsAssignable(tc.target, tc.source); got != tc.want {
			t.Fatalf("IsAssignable(%s, %s) = %v, want %v", tc.target, tc.source, got, tc.want)
		}
	}
}

func TestLookup(t *testing.T) {
	for _, typ := range All() {
		got, ok := Lookup(typ.String())
		if !ok || got != typ {
			t.Fatalf("Lookup(%q) = %v, %v", typ.String(), got, ok)
		}
	}
	if _, ok := Lookup("Float"); ok {
		t.Fatalf("expected unknown type name to fail")
	}
	if _, ok := Lookup("integer"); ok {
		t.Fatalf("type names are case sensitive")
	}
}

func TestJVMName(t *testing.T) {
	if Integer.JVMName() != "int" || Any.JVMName() != "Object" || Nil.JVMName() != "Void" {
		t.Fatalf("unexpected JVM names: %s %s %s", Integer.JVMName(), Any.JVMName(), Nil.JVMName())
	}
}
