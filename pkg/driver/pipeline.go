package driver

import (
	"context"
	"io"
	"log/slog"
	"time"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/compiler"
	"plc/interpreter-go/pkg/interpreter"
	"plc/interpreter-go/pkg/lexer"
	"plc/interpreter-go/pkg/logs"
	"plc/interpreter-go/pkg/parser"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/typechecker"
)

// Pipeline wires the lexer, parser, analyzer and the two back ends together.
// The context is consulted before each stage; evaluation itself is not
// interruptible.
type Pipeline struct {
	Logger *slog.Logger
}

func (p *Pipeline) logger() *slog.Logger {
	if p == nil || p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

func (p *Pipeline) stage(ctx context.Context, name string) (context.Context, func(args ...any), error) {
	if err := ctx.Err(); err != nil {
		return ctx, nil, err
	}
	ctx = logs.WithStage(ctx, name)
	started := time.Now()
	done := func(args ...any) {
		args = append(args, "elapsed", time.Since(started))
		p.logger().DebugContext(ctx, "stage finished", args...)
	}
	return ctx, done, nil
}

func (p *Pipeline) Tokens(ctx context.Context, text string) ([]lexer.Token, error) {
	_, done, err := p.stage(ctx, "lex")
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.Lex(text)
	if err != nil {
		return nil, err
	}
	done("tokens", len(tokens))
	return tokens, nil
}

func (p *Pipeline) Parse(ctx context.Context, text string) (*ast.Source, error) {
	tokens, err := p.Tokens(ctx, text)
	if err != nil {
		return nil, err
	}
	_, done, err := p.stage(ctx, "parse")
	if err != nil {
		return nil, err
	}
	source, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	done("globals", len(source.Globals), "functions", len(source.Functions))
	return source, nil
}

func (p *Pipeline) Check(ctx context.Context, text string) (*typechecker.Program, error) {
	source, err := p.Parse(ctx, text)
	if err != nil {
		return nil, err
	}
	_, done, err := p.stage(ctx, "check")
	if err != nil {
		return nil, err
	}
	program, err := typechecker.Check(source)
	if err != nil {
		return nil, err
	}
	done()
	return program, nil
}

// Run analyzes text and executes its main function, writing print output to
// stdout.
func (p *Pipeline) Run(ctx context.Context, text string, stdout io.Writer) (runtime.Value, error) {
	program, err := p.Check(ctx, text)
	if err != nil {
		return nil, err
	}
	stageCtx, done, err := p.stage(ctx, "run")
	if err != nil {
		return nil, err
	}
	interp := interpreter.New(stdout)
	interp.SetLogger(p.logger().With("stage", "run"))
	value, err := interp.Run(program)
	if err != nil {
		p.logger().DebugContext(stageCtx, "run failed", "error", err)
		return nil, err
	}
	done("result", runtime.Stringify(value))
	return value, nil
}

// Generate analyzes text and renders it as Java source.
func (p *Pipeline) Generate(ctx context.Context, text string, opts compiler.Options) (*compiler.Result, error) {
	program, err := p.Check(ctx, text)
	if err != nil {
		return nil, err
	}
	stageCtx, done, err := p.stage(ctx, "generate")
	if err != nil {
		return nil, err
	}
	result, err := compiler.New(opts).Compile(program)
	if err != nil {
		return nil, err
	}
	for _, warning := range result.Warnings {
		p.logger().WarnContext(stageCtx, warning)
	}
	done("bytes", len(result.Source), "warnings", len(result.Warnings))
	return result, nil
}
