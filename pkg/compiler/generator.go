package compiler

import (
	"bytes"
	"fmt"
	"strings"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/runtime"
	"plc/interpreter-go/pkg/types"
)

type generator struct {
	opts     Options
	buf      bytes.Buffer
	indent   int
	warnings []string
	warned   map[string]bool
	globals  map[*runtime.Variable]string
	mangler  *nameMangler
}

func newGenerator(opts Options) *generator {
	return &generator{
		opts:    opts,
		warned:  make(map[string]bool),
		globals: make(map[*runtime.Variable]string),
		mangler: newNameMangler(),
	}
}

func (g *generator) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if g.warned[msg] {
		return
	}
	g.warned[msg] = true
	g.warnings = append(g.warnings, msg)
}

// line writes one indented line.
func (g *generator) line(format string, args ...any) {
	g.buf.WriteString(strings.Repeat("    ", g.indent))
	fmt.Fprintf(&g.buf, format, args...)
	g.buf.WriteByte('\n')
}

func (g *generator) blank() {
	g.buf.WriteByte('\n')
}

func (g *generator) renderSource(src *ast.Source) error {
	g.line("public class %s {", g.opts.ClassName)
	g.blank()
	g.indent++
	if len(src.Globals) > 0 {
		for _, global := range src.Globals {
			if err := g.renderGlobal(global); err != nil {
				return err
			}
		}
		g.blank()
	}
	g.line("public static void main(String[] args) {")
	g.indent++
	g.line("System.exit(new %s().main());", g.opts.ClassName)
	g.indent--
	g.line("}")
	for _, fn := range src.Functions {
		g.blank()
		if err := g.renderFunction(fn); err != nil {
			return err
		}
	}
	g.blank()
	g.indent--
	g.line("}")
	return nil
}

func (g *generator) renderGlobal(global *ast.Global) error {
	if global.Variable == nil {
		return fmt.Errorf("compiler: global '%s' is not resolved", global.Name)
	}
	name := g.mangler.unique(sanitizeIdent(global.Name))
	g.globals[global.Variable] = name
	var b strings.Builder
	if !global.Mutable {
		b.WriteString("final ")
	}
	b.WriteString(g.javaType(global.Variable.Type))
	if _, ok := global.Value.(*ast.ListLiteral); ok {
		b.WriteString("[]")
	}
	b.WriteString(" ")
	b.WriteString(name)
	if global.Value != nil {
		value, err := g.expression(global.Value)
		if err != nil {
			return err
		}
		b.WriteString(" = ")
		b.WriteString(value)
	}
	g.line("%s;", b.String())
	return nil
}

func (g *generator) javaType(t types.Type) string {
	switch t {
	case types.Comparable:
		g.warn("Comparable values render as raw java.lang.Comparable")
	case types.Nil:
		g.warn("Nil-typed variables render as java.lang.Void")
	}
	return t.JVMName()
}

func (g *generator) renderFunction(fn *ast.Function) error {
	sig := fn.Function
	if sig == nil {
		return fmt.Errorf("compiler: function '%s' is not resolved", fn.Name)
	}
	returnType := "void"
	if fn.ReturnTypeName != nil && sig.ReturnType != types.Nil {
		returnType = g.javaType(sig.ReturnType)
	}
	params := make([]string, len(fn.Parameters))
	for i, name := range fn.Parameters {
		params[i] = g.javaType(sig.ParameterTypes[i]) + " " + sanitizeIdent(name)
	}
	header := fmt.Sprintf("%s %s(%s) {", returnType, sanitizeIdent(fn.Name), strings.Join(params, ", "))
	if len(fn.Statements) == 0 {
		g.line("%s}", header)
		return nil
	}
	g.line("%s", header)
	if err := g.renderBlock(fn.Statements); err != nil {
		return err
	}
	g.line("}")
	return nil
}

func (g *generator) renderBlock(stmts []ast.Statement) error {
	g.indent++
	defer func() { g.indent-- }()
	for _, stmt := range stmts {
		if err := g.renderStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}
