package parser

import (
	"plc/interpreter-go/pkg/ast"
)

// parseBlock reads statements until one of the terminator keywords (left
// unconsumed) or the end of input.
func (p *parser) parseBlock(terminators ...string) ([]ast.Statement, error) {
	var stmts []ast.Statement
	for p.has(0) {
		for _, term := range terminators {
			if p.peekKeyword(term) {
				return stmts, nil
			}
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.peekKeyword("LET"):
		return p.parseDeclaration()
	case p.peekKeyword("IF"):
		return p.parseIf()
	case p.peekKeyword("SWITCH"):
		return p.parseSwitch()
	case p.peekKeyword("WHILE"):
		return p.parseWhile()
	case p.peekKeyword("RETURN"):
		return p.parseReturn()
	default:
		return p.parseExpressionOrAssignment()
	}
}

func (p *parser) parseDeclaration() (ast.Statement, error) {
	start := p.advance().Offset
	name, err := p.expectIdentifier("variable name")
	if err != nil {
		return nil, err
	}
	var typeName *string
	if p.acceptOperator(":") {
		tn, err := p.expectIdentifier("type name")
		if err != nil {
			return nil, err
		}
		typeName = &tn
	}
	var value ast.Expression
	if p.acceptOperator("=") {
		if value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectOperator(";"); err != nil {
		return nil, err
	}
	return at(ast.NewDeclaration(name, typeName, value), start), nil
}

func (p *parser) parseIf() (ast.Statement, error) {
	start := p.advance().Offset
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("DO"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock("ELSE", "END")
	if err != nil {
		return nil, err
	}
	var els []ast.Statement
	if p.peekKeyword("ELSE") {
		p.advance()
		if els, err = p.parseBlock("END"); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	return at(ast.NewIfStatement(cond, then, els), start), nil
}

func (p *parser) parseSwitch() (ast.Statement, error) {
	start := p.advance().Offset
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var cases []*ast.Case
	for p.peekKeyword("CASE") {
		caseStart := p.advance().Offset
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOperator(":"); err != nil {
			return nil, err
		}
		body, err := p.parseBlock("CASE", "DEFAULT", "END")
		if err != nil {
			return nil, err
		}
		cases = append(cases, at(ast.NewCase(value, body), caseStart))
	}
	if p.peekKeyword("DEFAULT") {
		caseStart := p.advance().Offset
		p.acceptOperator(":")
		body, err := p.parseBlock("CASE", "END")
		if err != nil {
			return nil, err
		}
		cases = append(cases, at(ast.NewCase(nil, body), caseStart))
	}
	if _, err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	return at(ast.NewSwitchStatement(cond, cases), start), nil
}

func (p *parser) parseWhile() (ast.Statement, error) {
	start := p.advance().Offset
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("DO"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock("END")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	return at(ast.NewWhileStatement(cond, body), start), nil
}

func (p *parser) parseReturn() (ast.Statement, error) {
	start := p.advance().Offset
	var value ast.Expression
	if !p.peekOperator(";") {
		var err error
		if value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectOperator(";"); err != nil {
		return nil, err
	}
	return at(ast.NewReturnStatement(value), start), nil
}

func (p *parser) parseExpressionOrAssignment() (ast.Statement, error) {
	start := p.offset()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.acceptOperator("=") {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOperator(";"); err != nil {
			return nil, err
		}
		return at(ast.NewAssignment(expr, value), start), nil
	}
	if _, err := p.expectOperator(";"); err != nil {
		return nil, err
	}
	return at(ast.NewExpressionStatement(expr), start), nil
}
