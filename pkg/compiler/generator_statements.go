package compiler

import (
	"fmt"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/types"
)

func (g *generator) renderStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		expr, err := g.expression(s.Expression)
		if err != nil {
			return err
		}
		g.line("%s;", expr)
	case *ast.Declaration:
		return g.renderDeclaration(s)
	case *ast.Assignment:
		receiver, err := g.expression(s.Receiver)
		if err != nil {
			return err
		}
		value, err := g.expression(s.Value)
		if err != nil {
			return err
		}
		g.line("%s = %s;", receiver, value)
	case *ast.IfStatement:
		return g.renderIf(s)
	case *ast.SwitchStatement:
		return g.renderSwitch(s)
	case *ast.WhileStatement:
		cond, err := g.expression(s.Condition)
		if err != nil {
			return err
		}
		if len(s.Statements) == 0 {
			g.line("while (%s) {}", cond)
			return nil
		}
		g.line("while (%s) {", cond)
		if err := g.renderBlock(s.Statements); err != nil {
			return err
		}
		g.line("}")
	case *ast.ReturnStatement:
		if s.Value == nil {
			g.line("return;")
			return nil
		}
		value, err := g.expression(s.Value)
		if err != nil {
			return err
		}
		g.line("return %s;", value)
	default:
		return fmt.Errorf("compiler: unsupported statement %s", stmt.NodeType())
	}
	return nil
}

func (g *generator) renderDeclaration(s *ast.Declaration) error {
	if s.Variable == nil {
		return fmt.Errorf("compiler: variable '%s' is not resolved", s.Name)
	}
	typ := g.javaType(s.Variable.Type)
	if _, ok := s.Value.(*ast.ListLiteral); ok {
		typ += "[]"
	}
	name := sanitizeIdent(s.Name)
	if s.Value == nil {
		g.line("%s %s;", typ, name)
		return nil
	}
	value, err := g.expression(s.Value)
	if err != nil {
		return err
	}
	g.line("%s %s = %s;", typ, name, value)
	return nil
}

func (g *generator) renderIf(s *ast.IfStatement) error {
	cond, err := g.expression(s.Condition)
	if err != nil {
		return err
	}
	g.line("if (%s) {", cond)
	if err := g.renderBlock(s.Then); err != nil {
		return err
	}
	if len(s.Else) == 0 {
		g.line("}")
		return nil
	}
	g.line("} else {")
	if err := g.renderBlock(s.Else); err != nil {
		return err
	}
	g.line("}")
	return nil
}

func (g *generator) renderSwitch(s *ast.SwitchStatement) error {
	cond, err := g.expression(s.Condition)
	if err != nil {
		return err
	}
	if t := s.Condition.StaticType(); t == types.Decimal || t == types.Boolean {
		g.warn("Java cannot switch on %s values", t.JVMName())
	}
	g.line("switch (%s) {", cond)
	g.indent++
	for _, cs := range s.Cases {
		if cs.IsDefault() {
			g.line("default:")
			if err := g.renderBlock(cs.Statements); err != nil {
				return err
			}
			continue
		}
		value, err := g.expression(cs.Value)
		if err != nil {
			return err
		}
		g.line("case %s:", value)
		if err := g.renderBlock(cs.Statements); err != nil {
			return err
		}
		g.indent++
		g.line("break;")
		g.indent--
	}
	g.indent--
	g.line("}")
	return nil
}
