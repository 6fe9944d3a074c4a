package parser

import (
	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/lexer"
)

func (p *parser) parseExpression() (ast.Expression, error) {
	return p.parseLogical()
}

// parseBinaryLevel folds a left-associative chain of operators at one
// precedence level.
func (p *parser) parseBinaryLevel(next func() (ast.Expression, error), operators ...string) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchAnyOperator(operators)
		if !ok {
			return left, nil
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = at(ast.NewBinaryExpression(op.Literal, left, right), op.Offset)
	}
}

func (p *parser) matchAnyOperator(operators []string) (lexer.Token, bool) {
	for _, op := range operators {
		if p.peekOperator(op) {
			return p.advance(), true
		}
	}
	return lexer.Token{}, false
}

func (p *parser) parseLogical() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseComparison, "&&", "||")
}

func (p *parser) parseComparison() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseAdditive, "<", ">", "==", "!=")
}

func (p *parser) parseAdditive() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, "+", "-")
}

func (p *parser) parseMultiplicative() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parsePrimary, "*", "/", "^")
}

func (p *parser) parsePrimary() (ast.Expression, error) {
	if !p.has(0) {
		return nil, p.expected("expression")
	}
	tok := p.tokens[p.pos]
	switch tok.Kind {
	case lexer.KindInteger:
		p.advance()
		return p.integerLiteral(tok)
	case lexer.KindDecimal:
		p.advance()
		return p.decimalLiteral(tok)
	case lexer.KindCharacter:
		p.advance()
		return p.characterLiteral(tok)
	case lexer.KindString:
		p.advance()
		return p.stringLiteral(tok)
	case lexer.KindIdentifier:
		return p.parseIdentifierExpression()
	}
	switch {
	case p.peekOperator("("):
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOperator(")"); err != nil {
			return nil, err
		}
		return at(ast.NewGroupExpression(inner), tok.Offset), nil
	case p.peekOperator("["):
		p.advance()
		elements, err := p.parseExpressionList("]", true)
		if err != nil {
			return nil, err
		}
		return at(ast.NewListLiteral(elements), tok.Offset), nil
	}
	return nil, p.expected("expression")
}

func (p *parser) parseIdentifierExpression() (ast.Expression, error) {
	tok := p.advance()
	switch tok.Literal {
	case "NIL":
		return at(ast.NewNilLiteral(), tok.Offset), nil
	case "TRUE":
		return at(ast.NewBooleanLiteral(true), tok.Offset), nil
	case "FALSE":
		return at(ast.NewBooleanLiteral(false), tok.Offset), nil
	}
	switch {
	case p.peekOperator("("):
		p.advance()
		args, err := p.parseExpressionList(")", true)
		if err != nil {
			return nil, err
		}
		return at(ast.NewCallExpression(tok.Literal, args), tok.Offset), nil
	case p.peekOperator("["):
		p.advance()
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOperator("]"); err != nil {
			return nil, err
		}
		return at(ast.NewAccessExpression(tok.Literal, index), tok.Offset), nil
	}
	return at(ast.NewAccessExpression(tok.Literal, nil), tok.Offset), nil
}

// parseExpressionList reads comma-separated expressions up to and including
// the closing operator. The opening delimiter is already consumed.
func (p *parser) parseExpressionList(closing string, allowEmpty bool) ([]ast.Expression, error) {
	var exprs []ast.Expression
	if p.acceptOperator(closing) {
		if !allowEmpty {
			p.pos--
			return nil, p.expected("expression")
		}
		return exprs, nil
	}
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if !p.acceptOperator(",") {
			break
		}
		if p.peekOperator(closing) {
			return nil, p.errorf("parser: trailing comma before '%s'", closing)
		}
	}
	if _, err := p.expectOperator(closing); err != nil {
		return nil, err
	}
	return exprs, nil
}
