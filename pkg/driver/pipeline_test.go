package driver

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"plc/interpreter-go/pkg/compiler"
	"plc/interpreter-go/pkg/lexer"
	"plc/interpreter-go/pkg/logs"
	"plc/interpreter-go/pkg/parser"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/typechecker"
)

const helloSource = `
VAL greeting: String = "hello";
FUN main(): Integer DO
    print(greeting);
    RETURN 7;
END`

func TestPipelineRun(t *testing.T) {
	var logBuf bytes.Buffer
	logger, _, err := logs.New(logs.Options{Level: "debug", Writer: &logBuf})
	if err != nil {
		t.Fatalf("logs.New: %v", err)
	}
	var out bytes.Buffer
	p := &Pipeline{Logger: logger}
	value, err := p.Run(context.Background(), helloSource, &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := runtime.Stringify(value); got != "7" {
		t.Fatalf("result = %s", got)
	}
	if out.String() != "hello\n" {
		t.Fatalf("output = %q", out.String())
	}
	logged := logBuf.String()
	for _, stage := range []string{"stage=lex", "stage=parse", "stage=check", "stage=run"} {
		if !strings.Contains(logged, stage) {
			t.Fatalf("expected %s in logs:\n%s", stage, logged)
		}
	}
}

func TestPipelineGenerate(t *testing.T) {
	var p Pipeline
	result, err := p.Generate(context.Background(), helloSource, compiler.Options{ClassName: "Hello"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{"public class Hello {", `final String greeting = "hello";`, "System.out.println(greeting);"} {
		if !strings.Contains(result.Source, want) {
			t.Fatalf("expected %q in:\n%s", want, result.Source)
		}
	}
}

func TestPipelineStageErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   error
	}{
		{"lex", `FUN main(): Integer DO RETURN 01; END`, lexer.ErrLex},
		{"parse", `FUN main(): Integer DO RETURN 1 END`, parser.ErrParse},
		{"check", `FUN main(): Integer DO RETURN TRUE; END`, typechecker.ErrSemantic},
	}
	var p Pipeline
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Run(context.Background(), tc.source, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPipelineCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var p Pipeline
	if _, err := p.Tokens(ctx, helloSource); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPipelineTokens(t *testing.T) {
	var p Pipeline
	tokens, err := p.Tokens(context.Background(), "LET x = 1;")
	if err != nil {
		t.Fatalf("Tokens: %v", err)
	}
	if len(tokens) != 5 {
		t.Fatalf("expected 5 tokens, got %d", len(tokens))
	}
}
