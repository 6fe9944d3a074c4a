package lexer

import (
	"errors"
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v3"
)

func TestLexSingleTokens(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
	}{
		{"getName", KindIdentifier},
		{"@thing", KindIdentifier},
		{"thelegend27", KindIdentifier},
		{"a-b_c", KindIdentifier},
		{"1", KindInteger},
		{"0", KindInteger},
		{"-0", KindInteger},
		{"-42", KindInteger},
		{"1.5", KindDecimal},
		{"0.25", KindDecimal},
		{"-0.5", KindDecimal},
		{"'c'", KindCharacter},
		{`'\n'`, KindCharacter},
		{`'\''`, KindCharacter},
		{`""`, KindString},
		{`"Hello, World!"`, KindString},
		{`"1\t2\"3\\"`, KindString},
		{"&&", KindOperator},
		{"||", KindOperator},
		{"==", KindOperator},
		{"!=", KindOperator},
		{"(", KindOperator},
		{"$", KindOperator},
		{"=", KindOperator},
	}
	for _, tc := range cases {
		tokens, err := Lex(tc.src)
		if err != nil {
			t.Fatalf("Lex(%q) error: %v", tc.src, err)
		}
		if len(tokens) != 1 {
			t.Fatalf("Lex(%q) produced %d tokens: %v", tc.src, len(tokens), tokens)
		}
		tok := tokens[0]
		if tok.Kind != tc.kind || tok.Literal != tc.src || tok.Offset != 0 {
			t.Fatalf("Lex(%q) = %v, want %s", tc.src, tok, tc.kind)
		}
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		src    string
		offset int
	}{
		{"01", 1},
		{"-01", 2},
		{"1.", 2},
		{"1.a", 2},
		{"''", 1},
		{"'a", 2},
		{"'ab'", 2},
		{"'", 1},
		{`"unterminated`, 13},
		{"\"line\nbreak\"", 5},
		{`"bad\q"`, 5},
		{`'\x'`, 2},
	}
	for _, tc := range cases {
		_, err := Lex(tc.src)
		if err == nil {
			t.Fatalf("Lex(%q) expected error", tc.src)
		}
		if !errors.Is(err, ErrLex) {
			t.Fatalf("Lex(%q) error %v does not match ErrLex", tc.src, err)
		}
		var lexErr *Error
		if !errors.As(err, &lexErr) {
			t.Fatalf("Lex(%q) error is %T", tc.src, err)
		}
		if lexErr.Offset != tc.offset {
			t.Fatalf("Lex(%q) offset = %d, want %d (%v)", tc.src, lexErr.Offset, tc.offset, err)
		}
	}
}

func TestLexSequenceAndWhitespace(t *testing.T) {
	src := "LET x = 5;\n\tprint(x != -1 && y);"
	tokens, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	want := []Token{
		{KindIdentifier, "LET", 0},
		{KindIdentifier, "x", 4},
		{KindOperator, "=", 6},
		{KindInteger, "5", 8},
		{KindOperator, ";", 9},
		{KindIdentifier, "print", 12},
		{KindOperator, "(", 17},
		{KindIdentifier, "x", 18},
		{KindOperator, "!=", 20},
		{KindInteger, "-1", 23},
		{KindOperator, "&&", 26},
		{KindIdentifier, "y", 29},
		{KindOperator, ")", 30},
		{KindOperator, ";", 31},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, tokens[i], want[i])
		}
	}
}

func TestLexMinusWithoutDigitIsOperator(t *testing.T) {
	tokens, err := Lex("a - b")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	if len(tokens) != 3 || tokens[1].Kind != KindOperator || tokens[1].Literal != "-" {
		t.Fatalf("unexpected tokens %v", tokens)
	}
	tokens, err = Lex("== =")
	if err != nil || len(tokens) != 2 || tokens[0].Literal != "==" || tokens[1].Literal != "=" {
		t.Fatalf("unexpected tokens %v (%v)", tokens, err)
	}
}

func TestLexNumberRoundTrip(t *testing.T) {
	for _, src := range []string{"0", "7", "-0", "123456789012345678901234567890", "-98"} {
		tokens, err := Lex(src)
		if err != nil || len(tokens) != 1 {
			t.Fatalf("Lex(%q) = %v, %v", src, tokens, err)
		}
		want, _ := new(big.Int).SetString(src, 10)
		got, ok := new(big.Int).SetString(tokens[0].Literal, 10)
		if !ok || got.Cmp(want) != 0 {
			t.Fatalf("integer %q reconstructed as %v", src, got)
		}
	}
	for _, src := range []string{"0.0", "3.14159", "-2.50", "100.001"} {
		tokens, err := Lex(src)
		if err != nil || len(tokens) != 1 || tokens[0].Kind != KindDecimal {
			t.Fatalf("Lex(%q) = %v, %v", src, tokens, err)
		}
		want, _, _ := apd.NewFromString(src)
		got, _, err := apd.NewFromString(tokens[0].Literal)
		if err != nil || got.Cmp(want) != 0 {
			t.Fatalf("decimal %q reconstructed as %v (%v)", src, got, err)
		}
	}
}

func TestLexNegativeZeroIsIntegerZero(t *testing.T) {
	tokens, err := Lex("-0")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	n, ok := new(big.Int).SetString(tokens[0].Literal, 10)
	if !ok || n.Sign() != 0 {
		t.Fatalf("-0 should denote zero, got %v", n)
	}
}
