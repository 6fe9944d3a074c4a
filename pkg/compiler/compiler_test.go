package compiler

import (
	"strings"
	"testing"

	"plc/interpreter-go/pkg/parser"
	"plc/interpreter-go/pkg/typechecker"
)

func compileSource(t *testing.T, opts Options, src string) *Result {
	t.Helper()
	source, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	prog, err := typechecker.Check(source)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	result, err := New(opts).Compile(prog)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return result
}

func TestCompileProgramLayout(t *testing.T) {
	src := `
VAL limit: Integer = 3;
LIST xs: Integer = [1, 2];
FUN main(): Integer DO
    LET i = 0;
    WHILE i < limit DO
        print(i);
        i = i + 1;
    END
    RETURN 0;
END`
	want := `public class Main {

    final int limit = 3;
    int[] xs = {1, 2};

    public static void main(String[] args) {
        System.exit(new Main().main());
    }

    int main() {
        int i = 0;
        while (i < limit) {
            System.out.println(i);
            i = i + 1;
        }
        return 0;
    }

}
`
	result := compileSource(t, Options{}, src)
	if result.Source != want {
		t.Fatalf("unexpected source:\n%s", result.Source)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
}

func TestCompileSwitchAndEscapes(t *testing.T) {
	src := `
FUN main(): Integer DO
    SWITCH 'a'
        CASE 'b': print("q\"\n");
        DEFAULT print('\'');
    END
    RETURN 0;
END`
	want := `        switch ('a') {
            case 'b':
                System.out.println("q\"\n");
                break;
            default:
                System.out.println('\'');
        }
`
	result := compileSource(t, Options{}, src)
	if !strings.Contains(result.Source, want) {
		t.Fatalf("switch not rendered as expected:\n%s", result.Source)
	}
}

func TestCompileKeywordsAndPower(t *testing.T) {
	src := `
FUN new(x: Integer): Integer DO
    RETURN x ^ 2;
END
FUN noop() DO END
FUN main(): Integer DO
    noop();
    RETURN new(3);
END`
	result := compileSource(t, Options{ClassName: "demo"}, src)
	for _, want := range []string{
		"public class Demo {",
		"System.exit(new Demo().main());",
		"int new_(int x) {",
		"return (int) Math.pow(x, 2);",
		"void noop() {}",
		"noop();",
		"return new_(3);",
	} {
		if !strings.Contains(result.Source, want) {
			t.Fatalf("expected %q in:\n%s", want, result.Source)
		}
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "Math.pow") {
		t.Fatalf("expected a single Math.pow warning, got %v", result.Warnings)
	}
}

func TestCompileIfElseAndLiterals(t *testing.T) {
	src := `
VAR flag: Boolean = TRUE;
FUN main(): Integer DO
    LET d: Decimal = 1.50;
    IF flag && d > 1.0 DO
        print("on");
    ELSE
        flag = FALSE;
    END
    RETURN 0;
END`
	result := compileSource(t, Options{}, src)
	for _, want := range []string{
		"    boolean flag = true;\n",
		"double d = 1.50;",
		"if (flag && d > 1.0) {",
		"System.out.println(\"on\");",
		"} else {",
		"flag = false;",
	} {
		if !strings.Contains(result.Source, want) {
			t.Fatalf("expected %q in:\n%s", want, result.Source)
		}
	}
}

func TestCompileMissingProgram(t *testing.T) {
	if _, err := New(Options{}).Compile(nil); err == nil {
		t.Fatalf("expected error for nil program")
	}
}

func TestSanitizeIdent(t *testing.T) {
	cases := map[string]string{
		"plain":  "plain",
		"@x":     "_x",
		"a-b":    "a_b",
		"class":  "class_",
		"while_": "while_",
	}
	for in, want := range cases {
		if got := sanitizeIdent(in); got != want {
			t.Fatalf("sanitizeIdent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNameManglerUnique(t *testing.T) {
	m := newNameMangler()
	got := []string{m.unique("x"), m.unique("x"), m.unique("x"), m.unique("y")}
	want := []string{"x", "x_a", "x_b", "y"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unique #%d = %q, want %q", i, got[i], want[i])
		}
	}
}
