package compiler

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/types"
)

func (g *generator) expression(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.NilLiteral:
		return "null", nil
	case *ast.BooleanLiteral:
		if e.Value {
			return "true", nil
		}
		return "false", nil
	case *ast.CharacterLiteral:
		return "'" + escapeJava(string(e.Value), '\'') + "'", nil
	case *ast.StringLiteral:
		return `"` + escapeJava(e.Value, '"') + `"`, nil
	case *ast.IntegerLiteral:
		return e.Value.String(), nil
	case *ast.DecimalLiteral:
		return e.Value.Text('f'), nil
	case *ast.GroupExpression:
		inner, err := g.expression(e.Expression)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case *ast.BinaryExpression:
		return g.binary(e)
	case *ast.AccessExpression:
		name := sanitizeIdent(e.Name)
		if global, ok := g.globals[e.Variable]; ok && e.Variable != nil {
			name = global
		}
		if e.Index == nil {
			return name, nil
		}
		index, err := g.expression(e.Index)
		if err != nil {
			return "", err
		}
		return name + "[" + index + "]", nil
	case *ast.CallExpression:
		args, err := g.expressions(e.Arguments)
		if err != nil {
			return "", err
		}
		name := sanitizeIdent(e.Name)
		if e.Name == "print" && len(e.Arguments) == 1 {
			name = "System.out.println"
		}
		return name + "(" + strings.Join(args, ", ") + ")", nil
	case *ast.ListLiteral:
		elements, err := g.expressions(e.Elements)
		if err != nil {
			return "", err
		}
		return "{" + strings.Join(elements, ", ") + "}", nil
	default:
		return "", fmt.Errorf("compiler: unsupported expression %s", expr.NodeType())
	}
}

func (g *generator) expressions(exprs []ast.Expression) ([]string, error) {
	var firstErr error
	out := lo.Map(exprs, func(expr ast.Expression, _ int) string {
		if firstErr != nil {
			return ""
		}
		s, err := g.expression(expr)
		if err != nil {
			firstErr = err
		}
		return s
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (g *generator) binary(e *ast.BinaryExpression) (string, error) {
	left, err := g.expression(e.Left)
	if err != nil {
		return "", err
	}
	right, err := g.expression(e.Right)
	if err != nil {
		return "", err
	}
	switch e.Operator {
	case "^":
		g.warn("'^' renders through Math.pow and is truncated back to int")
		return fmt.Sprintf("(int) Math.pow(%s, %s)", left, right), nil
	case "==", "!=":
		if t := e.Left.StaticType(); t == types.String {
			g.warn("String equality renders as reference comparison")
		}
	}
	return left + " " + e.Operator + " " + right, nil
}

// escapeJava re-escapes a literal body for a Java literal delimited by quote.
func escapeJava(s string, quote rune) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\b':
			b.WriteString(`\b`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case quote:
			b.WriteRune('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
