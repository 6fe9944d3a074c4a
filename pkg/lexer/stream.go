package lexer

// charStream is the cursor over source characters. It keeps a pending
// lexeme window starting at start; emit slices the window into a token and
// resets it.
type charStream struct {
	chars  []rune
	start  int
	length int
}

func newCharStream(text string) *charStream {
	return &charStream{chars: []rune(text)}
}

// index is the offset of the next unread character.
func (s *charStream) index() int {
	return s.start + s.length
}

// has reports whether a character exists offset places past the cursor.
func (s *charStream) has(offset int) bool {
	return s.index()+offset < len(s.chars)
}

// peek returns the character offset places past the cursor, or 0 when
// out of range.
func (s *charStream) peek(offset int) rune {
	if !s.has(offset) {
		return 0
	}
	return s.chars[s.index()+offset]
}

// advance extends the pending window by one character.
func (s *charStream) advance() {
	s.length++
}

// skip drops the pending window without producing a token.
func (s *charStream) skip() {
	s.start += s.length
	s.length = 0
}

func (s *charStream) emit(kind Kind) Token {
	tok := Token{
		Kind:    kind,
		Literal: string(s.chars[s.start : s.start+s.length]),
		Offset:  s.start,
	}
	s.skip()
	return tok
}
