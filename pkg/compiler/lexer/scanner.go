// Package lexer turns .noisy source text into a stream of tokens.
// Identifiers, keywords and hex digits are matched case-insensitively
// by downstream consumers; the scanner only records offsets into the
// source so tokens stay allocation-free.
package lexer

import (
	"bytes"

	"github.com/noisylang/noisy/pkg/compiler/diag"
)

// Scanner performs lexical analysis on .noisy source.
type Scanner struct {
	source []byte
	cursor int
	line   int
	err    *diag.Error
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source []byte) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
	}
}

// Reset re-initializes the scanner with new source for reuse.
func (s *Scanner) Reset(source []byte) {
	s.source = source
	s.cursor = 0
	s.line = 1
	s.err = nil
}

// Err returns the lex error recorded when Next produced a KindError
// token, or nil.
func (s *Scanner) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// Next returns the next token from the source.
func (s *Scanner) Next() Token {
	s.skipWhitespace()

	if s.cursor >= len(s.source) {
		return Token{Kind: KindEOF, Line: uint32(s.line)}
	}

	start := s.cursor
	ch := s.source[s.cursor]

	// Line comments: // to end of line.
	if ch == '/' && s.peek() == '/' {
		s.skipComment()
		return s.Next()
	}

	if ch == '#' {
		return s.scanHash()
	}

	if isDigit(ch) {
		return s.scanInt()
	}

	if isAlpha(ch) || ch == '_' {
		return s.scanIdentifier()
	}

	s.cursor++
	kind := KindError
	switch ch {
	case '=':
		kind = KindAssign
	case '+':
		kind = KindPlus
	case '-':
		kind = KindMinus
	case '*':
		kind = KindStar
	case '/':
		kind = KindSlash
	case '{':
		kind = KindLBrace
	case '}':
		kind = KindRBrace
	case '(':
		kind = KindLParen
	case ')':
		kind = KindRParen
	case ',':
		kind = KindComma
	}

	if kind == KindError {
		s.fail("unrecognized character %q", ch)
	}
	return Token{Kind: kind, Offset: uint32(start), Length: 1, Line: uint32(s.line)}
}

// Literal returns the source bytes a token covers.
func (s *Scanner) Literal(tok Token) []byte {
	return s.source[tok.Offset : tok.Offset+tok.Length]
}

func (s *Scanner) skipWhitespace() {
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			s.cursor++
		} else if ch == '\n' {
			s.line++
			s.cursor++
		} else {
			break
		}
	}
}

func (s *Scanner) skipComment() {
	for s.cursor < len(s.source) && s.source[s.cursor] != '\n' {
		s.cursor++
	}
}

// scanHash handles the three '#'-prefixed forms: the #const and #define
// markers and #rrggbb color literals. Anything else after '#' is an
// unterminated hex literal.
func (s *Scanner) scanHash() Token {
	start := s.cursor
	s.cursor++ // skip '#'

	wordStart := s.cursor
	for s.cursor < len(s.source) && (isAlpha(s.source[s.cursor]) || isDigit(s.source[s.cursor])) {
		s.cursor++
	}
	word := s.source[wordStart:s.cursor]

	if bytes.EqualFold(word, []byte("const")) {
		return Token{Kind: KindConst, Offset: uint32(start), Length: uint32(s.cursor - start), Line: uint32(s.line)}
	}
	if bytes.EqualFold(word, []byte("define")) {
		return Token{Kind: KindDefine, Offset: uint32(start), Length: uint32(s.cursor - start), Line: uint32(s.line)}
	}
	if len(word) == 6 && isHex(word) {
		// Offset points at the digits, not the '#'.
		return Token{Kind: KindHexColor, Offset: uint32(wordStart), Length: 6, Line: uint32(s.line)}
	}

	s.fail("unterminated hex literal #%s: expected exactly 6 hex digits", word)
	return Token{Kind: KindError, Offset: uint32(start), Length: uint32(s.cursor - start), Line: uint32(s.line)}
}

func (s *Scanner) scanInt() Token {
	start := s.cursor
	for s.cursor < len(s.source) && isDigit(s.source[s.cursor]) {
		s.cursor++
	}
	return Token{Kind: KindInt, Offset: uint32(start), Length: uint32(s.cursor - start), Line: uint32(s.line)}
}

func (s *Scanner) scanIdentifier() Token {
	start := s.cursor
	for s.cursor < len(s.source) && (isAlpha(s.source[s.cursor]) || isDigit(s.source[s.cursor]) || s.source[s.cursor] == '_') {
		s.cursor++
	}
	return Token{Kind: KindIdentifier, Offset: uint32(start), Length: uint32(s.cursor - start), Line: uint32(s.line)}
}

func (s *Scanner) peek() byte {
	if s.cursor+1 >= len(s.source) {
		return 0
	}
	return s.source[s.cursor+1]
}

func (s *Scanner) fail(format string, args ...any) {
	if s.err == nil {
		s.err = diag.New(diag.ErrLex, uint32(s.line), format, args...)
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isHex(word []byte) bool {
	for _, ch := range word {
		if !isDigit(ch) && !(ch >= 'a' && ch <= 'f') && !(ch >= 'A' && ch <= 'F') {
			return false
		}
	}
	return true
}
