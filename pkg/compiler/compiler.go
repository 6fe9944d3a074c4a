package compiler

import (
	"fmt"

	"plc/interpreter-go/pkg/typechecker"
)

// Options controls Java rendering.
type Options struct {
	// ClassName names the generated class; defaults to Main.
	ClassName string
}

// Result carries the rendered Java source and any portability warnings.
type Result struct {
	Source   string
	Warnings []string
}

type Compiler struct {
	opts Options
}

func New(opts Options) *Compiler {
	if opts.ClassName == "" {
		opts.ClassName = "Main"
	}
	opts.ClassName = className(opts.ClassName)
	return &Compiler{opts: opts}
}

// Compile renders an analyzed program as a single Java class.
func (c *Compiler) Compile(program *typechecker.Program) (*Result, error) {
	if program == nil || program.Source() == nil {
		return nil, fmt.Errorf("compiler: missing program")
	}
	gen := newGenerator(c.opts)
	if err := gen.renderSource(program.Source()); err != nil {
		return nil, err
	}
	return &Result{Source: gen.buf.String(), Warnings: gen.warnings}, nil
}
