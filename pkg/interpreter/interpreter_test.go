package interpreter

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v3"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/parser"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/typechecker"
)

func runSource(t *testing.T, src string) (runtime.Value, string, error) {
	t.Helper()
	source, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	prog, err := typechecker.Check(source)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var out bytes.Buffer
	value, err := New(&out).Run(prog)
	return value, out.String(), err
}

func mustRun(t *testing.T, src string) (runtime.Value, string) {
	t.Helper()
	value, out, err := runSource(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return value, out
}

func wantInteger(t *testing.T, value runtime.Value, want int64) {
	t.Helper()
	iv, ok := value.(runtime.IntegerValue)
	if !ok {
		t.Fatalf("expected integer, got %#v", value)
	}
	if iv.Val.Cmp(big.NewInt(want)) != 0 {
		t.Fatalf("expected %d, got %s", want, iv.Val)
	}
}

func TestRunEndToEnd(t *testing.T) {
	value, out := mustRun(t, "VAL x: Integer = 40; FUN main(): Integer DO RETURN x + 2; END")
	wantInteger(t, value, 42)
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestRunShortCircuit(t *testing.T) {
	src := `
FUN sideEffect(): Boolean DO print("evaluated"); RETURN TRUE; END
FUN main(): Integer DO
    IF FALSE && sideEffect() DO print("and"); END
    IF TRUE || sideEffect() DO print("or"); END
    RETURN 0;
END`
	_, out := mustRun(t, src)
	if out != "or\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunSwitchExecutesOneCase(t *testing.T) {
	src := `
FUN main(): Integer DO
    SWITCH 2
        CASE 1: print("one");
        CASE 2: print("two");
        CASE 2: print("again");
        DEFAULT: print("default");
    END
    SWITCH 9
        CASE 1: print("one");
        DEFAULT print("fallback");
    END
    RETURN 0;
END`
	_, out := mustRun(t, src)
	if out != "two\nfallback\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunSwitchEvaluatesConditionOnce(t *testing.T) {
	src := `
VAR calls: Integer = 0;
FUN next(): Integer DO calls = calls + 1; RETURN calls; END
FUN main(): Integer DO
    SWITCH next()
        CASE 5: print(5);
        CASE 1: print(1);
        DEFAULT: print(0);
    END
    RETURN calls;
END`
	value, out := mustRun(t, src)
	wantInteger(t, value, 1)
	if out != "1\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunIntegerDivisionTruncates(t *testing.T) {
	value, _ := mustRun(t, "FUN main(): Integer DO RETURN 10 / 4; END")
	wantInteger(t, value, 2)
	value, _ = mustRun(t, "FUN main(): Integer DO RETURN -10 / 4; END")
	wantInteger(t, value, -2)

	// A parenthesized literal is rejected by the checker, so evaluate the
	// tree directly.
	value, err := New(nil).evaluateExpression(ast.Bin("/", ast.Group(ast.Int(-10)), ast.Int(4)), runtime.NewScope(nil))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	wantInteger(t, value, -2)
}

func TestRunPowerIsExact(t *testing.T) {
	_, out := mustRun(t, "FUN main(): Integer DO print(2 ^ 100); RETURN 0; END")
	if out != "1267650600228229401496703205376\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunDecimalArithmetic(t *testing.T) {
	src := `
FUN main(): Integer DO
    print(1.5 + 2.25);
    print(3.0 - 4.5);
    print(1.5 * 1.5);
    print(1.0 / 3.0);
    print(2.0 / 3.0);
    print(5.00 / 2.0);
    print(0.5 / 2.0);
    print(1.5 / 2.0);
    print(-1.5 / 2.0);
    RETURN 0;
END`
	_, out := mustRun(t, src)
	want := "3.75\n-1.5\n2.25\n0.3\n0.7\n2.50\n0.2\n0.8\n-0.8\n"
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestRunPrintRendering(t *testing.T) {
	src := `
LIST xs: Integer = [1, 2, 3];
FUN main(): Integer DO
    print(TRUE);
    print(NIL == NIL);
    print('c');
    print("s\tq");
    print(xs);
    print("n=" + 1);
    print(1.5 + "!");
    RETURN 0;
END`
	_, out := mustRun(t, src)
	want := "TRUE\nTRUE\nc\ns\tq\n[1, 2, 3]\nn=1\n1.5!\n"
	if out != want {
		t.Fatalf("unexpected output %q, want %q", out, want)
	}
}

func TestRunWhileAndAssignment(t *testing.T) {
	src := `
VAR total: Integer = 0;
FUN main(): Integer DO
    LET i = 0;
    WHILE i < 5 DO
        LET step = i * 2;
        total = total + step;
        i = i + 1;
    END
    RETURN total;
END`
	value, _ := mustRun(t, src)
	wantInteger(t, value, 20)
}

func TestRunListMutation(t *testing.T) {
	src := `
LIST xs: Integer = [1, 2, 3];
FUN main(): Integer DO
    xs[1] = 20;
    RETURN xs[0] + xs[1] + xs[2];
END`
	value, _ := mustRun(t, src)
	wantInteger(t, value, 24)
}

func TestRunRecursionAndReturnBoundary(t *testing.T) {
	src := `
FUN fib(n: Integer): Integer DO
    IF n < 2 DO RETURN n; END
    RETURN fib(n - 1) + fib(n - 2);
END
FUN first(): Integer DO
    WHILE TRUE DO
        IF TRUE DO RETURN 7; END
    END
    RETURN 0;
END
FUN main(): Integer DO
    print(first());
    RETURN fib(10);
END`
	value, out := mustRun(t, src)
	wantInteger(t, value, 55)
	if out != "7\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunLexicalScoping(t *testing.T) {
	src := `
VAR x: Integer = 1;
FUN show(): Integer DO RETURN x; END
FUN main(): Integer DO
    LET x = 99;
    IF TRUE DO LET x = 5; print(x); END
    print(x);
    RETURN show();
END`
	value, out := mustRun(t, src)
	wantInteger(t, value, 1)
	if out != "5\n99\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunOverloadByArity(t *testing.T) {
	src := `
FUN f(): Integer DO RETURN 1; END
FUN f(a: Integer): Integer DO RETURN a * 10; END
FUN main(): Integer DO RETURN f() + f(2); END`
	value, _ := mustRun(t, src)
	wantInteger(t, value, 21)
}

func TestRunComparisons(t *testing.T) {
	src := `
FUN main(): Integer DO
    print(1 < 2);
    print(2.5 > 2.25);
    print('a' < 'b');
    print("abc" > "abd");
    print([1, 2] == [1, 2]);
    print(1.0 == 1.00);
    print("a" != "a");
    RETURN 0;
END`
	_, out := mustRun(t, src)
	if out != "TRUE\nTRUE\nTRUE\nFALSE\nTRUE\nTRUE\nFALSE\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunRuntimeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"integer divide by zero", "FUN main(): Integer DO RETURN 1 / 0; END", ErrDivideByZero},
		{"decimal divide by zero", "FUN main(): Integer DO print(1.0 / 0.0); RETURN 0; END", ErrDivideByZero},
		{"index out of bounds", "LIST xs: Integer = [1]; FUN main(): Integer DO RETURN xs[1]; END", ErrIndexOutOfBounds},
		{"negative index", "LIST xs: Integer = [1]; FUN main(): Integer DO RETURN xs[-1]; END", ErrIndexOutOfBounds},
		{"assign out of bounds", "LIST xs: Integer = [1]; FUN main(): Integer DO xs[3] = 1; RETURN 0; END", ErrIndexOutOfBounds},
		{"index non-list", "VAR x: Integer = 1; FUN main(): Integer DO RETURN x[0]; END", ErrTypeMismatch},
		{"negative exponent", "FUN main(): Integer DO RETURN 2 ^ -1; END", ErrNegativeExponent},
	}
	for _, tc := range cases {
		_, _, err := runSource(t, tc.src)
		if !errors.Is(err, tc.want) || !errors.Is(err, ErrRuntime) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestRunAbortsOnFirstError(t *testing.T) {
	_, out, err := runSource(t, `FUN main(): Integer DO print("before"); print(1 / 0); print("after"); RETURN 0; END`)
	if !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("expected divide by zero, got %v", err)
	}
	if out != "before\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEvaluateExpressionDirect(t *testing.T) {
	interp := New(nil)
	scope := runtime.NewScope(nil)
	cases := []struct {
		name string
		expr ast.Expression
		want runtime.Value
	}{
		{"add", ast.Bin("+", ast.Int(2), ast.Int(3)), runtime.NewInteger(5)},
		{"group", ast.Group(ast.Bin("*", ast.Int(2), ast.Int(3))), runtime.NewInteger(6)},
		{"decimal", ast.Bin("-", ast.Dec(25, -1), ast.Dec(5, -1)), runtime.NewDecimal(20, -1)},
		{"list", ast.List(ast.Str("a"), ast.Chr('b')), runtime.NewList(runtime.StringValue{Val: "a"}, runtime.CharValue{Val: 'b'})},
		{"or", ast.Bin("||", ast.Bool(false), ast.Bool(true)), runtime.BoolValue{Val: true}},
	}
	for _, tc := range cases {
		got, err := interp.evaluateExpression(tc.expr, scope)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !runtime.Equal(got, tc.want) {
			t.Fatalf("%s: got %s, want %s", tc.name, runtime.Stringify(got), runtime.Stringify(tc.want))
		}
	}
}

func TestApplyBinaryRuntimeChecks(t *testing.T) {
	cases := []struct {
		op          string
		left, right runtime.Value
	}{
		{"<", runtime.NewInteger(1), runtime.CharValue{Val: 'c'}},
		{">", runtime.BoolValue{Val: true}, runtime.BoolValue{Val: false}},
		{"-", runtime.StringValue{Val: "a"}, runtime.NewInteger(1)},
		{"*", runtime.NewInteger(1), runtime.NewDecimal(1, 0)},
		{"^", runtime.NewDecimal(2, 0), runtime.NewInteger(2)},
	}
	for _, tc := range cases {
		if _, err := applyBinary(tc.op, tc.left, tc.right); !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("%s %s %s: expected type mismatch, got %v", runtime.Stringify(tc.left), tc.op, runtime.Stringify(tc.right), err)
		}
	}
}

func TestDivideHalfEven(t *testing.T) {
	cases := []struct {
		l, r, want string
	}{
		{"1.0", "4.0", "0.2"},
		{"3.0", "4.0", "0.8"},
		{"2.5", "1", "2.5"},
		{"25", "10", "2"},
		{"35", "10", "4"},
		{"-25", "10", "-2"},
		{"1.00", "0.3", "3.33"},
		{"10", "0.5", "20"},
	}
	for _, tc := range cases {
		l, _, _ := apd.NewFromString(tc.l)
		r, _, _ := apd.NewFromString(tc.r)
		got := divideHalfEven(l, r).Text('f')
		if got != tc.want {
			t.Fatalf("%s / %s = %s, want %s", tc.l, tc.r, got, tc.want)
		}
	}
}

func TestRunNilProgram(t *testing.T) {
	if _, err := New(nil).Run(nil); err == nil {
		t.Fatalf("expected error for nil program")
	}
}
