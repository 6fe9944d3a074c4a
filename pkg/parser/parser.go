package parser

import (
	"errors"
	"fmt"

	"plc/interpreter-go/pkg/ast"
	"plc/interpreter-go/pkg/lexer"
)

// ErrParse matches every parse failure under errors.Is.
var ErrParse = errors.New("parse error")

// ParseError includes a message plus the offset of the offending token, or
// the offset just past the last token when input ran out.
type ParseError struct {
	Message string
	Offset  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Message, e.Offset)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// ParseSource lexes and parses text in one step.
func ParseSource(text string) (*ast.Source, error) {
	tokens, err := lexer.Lex(text)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse builds a Source from a complete token sequence.
func Parse(tokens []lexer.Token) (*ast.Source, error) {
	p := &parser{tokens: tokens}
	return p.parseSource()
}

// ParseExpression parses a single expression that must consume every token.
func ParseExpression(tokens []lexer.Token) (ast.Expression, error) {
	p := &parser{tokens: tokens}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.has(0) {
		return nil, p.errorf("parser: unexpected token %q after expression", p.tokens[p.pos].Literal)
	}
	return expr, nil
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

func (p *parser) has(offset int) bool {
	return p.pos+offset < len(p.tokens)
}

// peekLiteral reports whether the token offset places ahead has the given
// literal text.
func (p *parser) peekLiteral(offset int, literal string) bool {
	return p.has(offset) && p.tokens[p.pos+offset].Literal == literal
}

func (p *parser) peekKind(offset int, kind lexer.Kind) bool {
	return p.has(offset) && p.tokens[p.pos+offset].Kind == kind
}

// peekKeyword matches identifier tokens only, so a string "DO" never reads
// as the keyword.
func (p *parser) peekKeyword(keyword string) bool {
	return p.peekKind(0, lexer.KindIdentifier) && p.peekLiteral(0, keyword)
}

func (p *parser) peekOperator(op string) bool {
	return p.peekKind(0, lexer.KindOperator) && p.peekLiteral(0, op)
}

func (p *parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// acceptOperator consumes op if it is next.
func (p *parser) acceptOperator(op string) bool {
	if p.peekOperator(op) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectKeyword(keyword string) (lexer.Token, error) {
	if !p.peekKeyword(keyword) {
		return lexer.Token{}, p.expected(keyword)
	}
	return p.advance(), nil
}

func (p *parser) expectOperator(op string) (lexer.Token, error) {
	if !p.peekOperator(op) {
		return lexer.Token{}, p.expected(fmt.Sprintf("'%s'", op))
	}
	return p.advance(), nil
}

func (p *parser) expectIdentifier(what string) (string, error) {
	if !p.peekKind(0, lexer.KindIdentifier) {
		return "", p.expected(what)
	}
	return p.advance().Literal, nil
}

// offset is where an error at the current position is reported.
func (p *parser) offset() int {
	if p.has(0) {
		return p.tokens[p.pos].Offset
	}
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].End()
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Offset: p.offset()}
}

func (p *parser) expected(what string) error {
	if !p.has(0) {
		return p.errorf("parser: expected %s, reached end of input", what)
	}
	return p.errorf("parser: expected %s, found %q", what, p.tokens[p.pos].Literal)
}

func at[T ast.Node](node T, offset int) T {
	node.SetPosition(offset)
	return node
}
