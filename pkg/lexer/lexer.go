package lexer

import (
	"errors"
	"fmt"
)

// ErrLex matches every lexing failure under errors.Is.
var ErrLex = errors.New("lex error")

// Error reports an invalid character or sequence at a source offset.
type Error struct {
	Message string
	Offset  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexer: %s at offset %d", e.Message, e.Offset)
}

func (e *Error) Unwrap() error { return ErrLex }

// Lex splits text into tokens, discarding whitespace.
func Lex(text string) ([]Token, error) {
	l := &lexer{chars: newCharStream(text)}
	return l.lex()
}

type lexer struct {
	chars *charStream
}

func (l *lexer) fail(offset int, format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...), Offset: offset}
}

func (l *lexer) lex() ([]Token, error) {
	var tokens []Token
	for l.chars.has(0) {
		if isWhitespace(l.chars.peek(0)) {
			l.chars.advance()
			l.chars.skip()
			continue
		}
		tok, err := l.lexToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func (l *lexer) lexToken() (Token, error) {
	ch := l.chars.peek(0)
	switch {
	case isLetter(ch) || (ch == '@' && isLetter(l.chars.peek(1))):
		return l.lexIdentifier(), nil
	case isDigit(ch) || (ch == '-' && isDigit(l.chars.peek(1))):
		return l.lexNumber()
	case ch == '\'':
		return l.lexCharacter()
	case ch == '"':
		return l.lexString()
	default:
		return l.lexOperator(), nil
	}
}

func (l *lexer) lexIdentifier() Token {
	if l.chars.peek(0) == '@' {
		l.chars.advance()
	}
	l.chars.advance()
	for l.chars.has(0) {
		ch := l.chars.peek(0)
		if !isLetter(ch) && !isDigit(ch) && ch != '_' && ch != '-' {
			break
		}
		l.chars.advance()
	}
	return l.chars.emit(KindIdentifier)
}

func (l *lexer) lexNumber() (Token, error) {
	if l.chars.peek(0) == '-' {
		l.chars.advance()
	}
	if l.chars.peek(0) == '0' {
		l.chars.advance()
		if isDigit(l.chars.peek(0)) {
			return Token{}, l.fail(l.chars.index(), "leading zero in number")
		}
	} else {
		for isDigit(l.chars.peek(0)) {
			l.chars.advance()
		}
	}
	if l.chars.peek(0) != '.' {
		return l.chars.emit(KindInteger), nil
	}
	l.chars.advance()
	if !isDigit(l.chars.peek(0)) {
		return Token{}, l.fail(l.chars.index(), "expected digit after decimal point")
	}
	for isDigit(l.chars.peek(0)) {
		l.chars.advance()
	}
	return l.chars.emit(KindDecimal), nil
}

func (l *lexer) lexCharacter() (Token, error) {
	l.chars.advance()
	switch ch := l.chars.peek(0); {
	case !l.chars.has(0) || ch == '\n' || ch == '\r':
		return Token{}, l.fail(l.chars.index(), "unterminated character literal")
	case ch == '\'':
		return Token{}, l.fail(l.chars.index(), "empty character literal")
	case ch == '\\':
		if err := l.lexEscape(); err != nil {
			return Token{}, err
		}
	default:
		l.chars.advance()
	}
	if l.chars.peek(0) != '\'' || !l.chars.has(0) {
		return Token{}, l.fail(l.chars.index(), "unterminated character literal")
	}
	l.chars.advance()
	return l.chars.emit(KindCharacter), nil
}

func (l *lexer) lexString() (Token, error) {
	l.chars.advance()
	for {
		if !l.chars.has(0) {
			return Token{}, l.fail(l.chars.index(), "unterminated string literal")
		}
		switch ch := l.chars.peek(0); ch {
		case '"':
			l.chars.advance()
			return l.chars.emit(KindString), nil
		case '\n', '\r':
			return Token{}, l.fail(l.chars.index(), "unterminated string literal")
		case '\\':
			if err := l.lexEscape(); err != nil {
				return Token{}, err
			}
		default:
			l.chars.advance()
		}
	}
}

func (l *lexer) lexEscape() error {
	l.chars.advance()
	if !isEscape(l.chars.peek(0)) || !l.chars.has(0) {
		return l.fail(l.chars.index(), "invalid escape sequence")
	}
	l.chars.advance()
	return nil
}

func (l *lexer) lexOperator() Token {
	first, second := l.chars.peek(0), l.chars.peek(1)
	l.chars.advance()
	switch {
	case first == '&' && second == '&',
		first == '|' && second == '|',
		first == '=' && second == '=',
		first == '!' && second == '=':
		l.chars.advance()
	}
	return l.chars.emit(KindOperator)
}

func isWhitespace(ch rune) bool {
	switch ch {
	case ' ', '\b', '\n', '\r', '\t':
		return true
	}
	return false
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isEscape(ch rune) bool {
	switch ch {
	case 'b', 'n', 'r', 't', '\'', '"', '\\':
		return true
	}
	return false
}
