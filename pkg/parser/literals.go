package parser

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/lexer"
)

func (p *parser) integerLiteral(tok lexer.Token) (ast.Expression, error) {
	value, ok := new(big.Int).SetString(tok.Literal, 10)
	if !ok {
		return nil, &ParseError{Message: fmt.Sprintf("parser: invalid integer literal %q", tok.Literal), Offset: tok.Offset}
	}
	return at(ast.NewIntegerLiteral(value), tok.Offset), nil
}

func (p *parser) decimalLiteral(tok lexer.Token) (ast.Expression, error) {
	value, _, err := apd.NewFromString(tok.Literal)
	if err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("parser: invalid decimal literal %q: %v", tok.Literal, err), Offset: tok.Offset}
	}
	return at(ast.NewDecimalLiteral(value), tok.Offset), nil
}

func (p *parser) characterLiteral(tok lexer.Token) (ast.Expression, error) {
	unquoted, err := unescapeQuotedLiteral(tok.Literal)
	if err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("parser: invalid character literal %q: %v", tok.Literal, err), Offset: tok.Offset}
	}
	runes := []rune(unquoted)
	if len(runes) != 1 {
		return nil, &ParseError{Message: fmt.Sprintf("parser: character literal %q must resolve to a single character", tok.Literal), Offset: tok.Offset}
	}
	return at(ast.NewCharacterLiteral(runes[0]), tok.Offset), nil
}

func (p *parser) stringLiteral(tok lexer.Token) (ast.Expression, error) {
	unquoted, err := unescapeQuotedLiteral(tok.Literal)
	if err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("parser: invalid string literal %q: %v", tok.Literal, err), Offset: tok.Offset}
	}
	return at(ast.NewStringLiteral(unquoted), tok.Offset), nil
}

// unescapeQuotedLiteral strips the surrounding quotes and resolves the
// escapes the lexer accepts.
func unescapeQuotedLiteral(raw string) (string, error) {
	if len(raw) < 2 {
		return "", fmt.Errorf("literal is too short")
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("dangling escape")
		}
		switch body[i] {
		case 'b':
			b.WriteByte('\b')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\'', '"', '\\':
			b.WriteByte(body[i])
		default:
			return "", fmt.Errorf("unknown escape \\%c", body[i])
		}
	}
	return b.String(), nil
}
