package lexer

import "fmt"

// Kind classifies a token.
type Kind uint8

const (
	KindIdentifier Kind = iota
	KindInteger
	KindDecimal
	KindCharacter
	KindString
	KindOperator
)

func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "Identifier"
	case KindInteger:
		return "Integer"
	case KindDecimal:
		return "Decimal"
	case KindCharacter:
		return "Character"
	case KindString:
		return "String"
	case KindOperator:
		return "Operator"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Token is one lexeme. Literal is the raw source text, quotes and escapes
// included; Offset is the character index of its first character.
type Token struct {
	Kind    Kind
	Literal string
	Offset  int
}

// End is the offset one past the token's last character.
func (t Token) End() int {
	return t.Offset + len([]rune(t.Literal))
}

func (t Token) String() string {
	return fmt.Sprintf("%d %s %s", t.Offset, t.Kind, t.Literal)
}
