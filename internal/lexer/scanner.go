// Package lexer turns source bytes into a token stream, then runs the
// context-sensitive EOL inference pass over it.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/livy-lang/livy/internal/diagnostic"
	"github.com/livy-lang/livy/internal/span"
	"github.com/livy-lang/livy/internal/token"
)

// Scanner walks a source buffer byte by byte, producing raw tokens: every
// lexeme the source contains, including whitespace runs and comments. EOL
// inference (see eol.go) consumes this raw stream and produces the final
// one the parser sees.
type Scanner struct {
	src  string
	pos  int
	errs []*diagnostic.Diagnostic
}

// NewScanner wraps an already-decoded source string.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

// ScanAll drains the scanner, returning every raw token plus any lexical
// diagnostics encountered. Scanning never stops early: an illegal
// character is recorded and skipped so later errors still surface.
func (s *Scanner) ScanAll() ([]token.Token, []*diagnostic.Diagnostic) {
	var toks []token.Token
	for {
		tok, ok := s.next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	toks = append(toks, token.Token{Span: span.Span{Start: uint32(len(s.src)), End: uint32(len(s.src))}, Kind: token.EOF})
	return toks, s.errs
}

func (s *Scanner) next() (token.Token, bool) {
	if s.pos >= len(s.src) {
		return token.Token{}, false
	}
	start := s.pos
	c := s.src[s.pos]

	switch {
	case isDigit(c):
		return s.lexNumber(start), true
	case isNameStart(c):
		return s.lexName(start), true
	case c == '"':
		return s.lexString(start), true
	case c == token.CommentMarker:
		return s.lexComment(start), true
	case isSpace(c):
		return s.lexWhitespace(start), true
	}

	if kind, ok := s.matchDoubleChar(); ok {
		return token.Token{Span: s.spanFrom(start), Kind: kind, Lexeme: s.src[start:s.pos]}, true
	}
	if kind, ok := token.SingleCharTokens[c]; ok {
		s.pos++
		return token.Token{Span: s.spanFrom(start), Kind: kind, Lexeme: s.src[start:s.pos]}, true
	}

	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	sp := s.spanFrom(start)
	s.errs = append(s.errs, diagnostic.NewIllegalChar(sp, string(r)))
	return token.Token{Span: sp, Kind: token.Illegal, Lexeme: string(r)}, true
}

func (s *Scanner) spanFrom(start int) span.Span {
	return span.Span{Start: uint32(start), End: uint32(s.pos)}
}

func (s *Scanner) matchDoubleChar() (token.Kind, bool) {
	if s.pos+2 > len(s.src) {
		return 0, false
	}
	two := s.src[s.pos : s.pos+2]
	if kind, ok := token.DoubleCharTokens[two]; ok {
		s.pos += 2
		return kind, true
	}
	return 0, false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameCont(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// lexNumber consumes an Integer, upgrading to Float on seeing a '.' that is
// itself followed by a digit (so the range operator "a..b" is never eaten).
func (s *Scanner) lexNumber(start int) token.Token {
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}
	kind := token.Integer
	if s.pos+1 < len(s.src) && s.src[s.pos] == '.' && isDigit(s.src[s.pos+1]) {
		kind = token.Float
		s.pos++
		for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
			s.pos++
		}
	}
	return token.Token{Span: s.spanFrom(start), Kind: kind, Lexeme: s.src[start:s.pos]}
}

func (s *Scanner) lexName(start int) token.Token {
	for s.pos < len(s.src) && isNameCont(s.src[s.pos]) {
		s.pos++
	}
	text := s.src[start:s.pos]
	if kind, ok := token.Keywords[text]; ok {
		return token.Token{Span: s.spanFrom(start), Kind: kind, Lexeme: text}
	}
	return token.Token{Span: s.spanFrom(start), Kind: token.Name, Lexeme: text}
}

// lexString consumes a double-quoted literal. Escape sequences are left
// untouched here; internal/strescape expands them once a complete AST
// exists. An unterminated literal is reported as an IllegalChar at the
// opening quote, matching the reference lexer's behavior.
func (s *Scanner) lexString(start int) token.Token {
	s.pos++ // opening quote
	inEscape := false
	terminated := false
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if inEscape {
			inEscape = false
			s.pos++
			continue
		}
		if c == '\\' {
			inEscape = true
			s.pos++
			continue
		}
		if c == '"' {
			s.pos++
			terminated = true
			break
		}
		s.pos++
	}
	sp := s.spanFrom(start)
	if !terminated {
		s.errs = append(s.errs, diagnostic.NewIllegalChar(sp, `"`))
		return token.Token{Span: sp, Kind: token.Illegal, Lexeme: s.src[start:s.pos]}
	}
	return token.Token{Span: sp, Kind: token.String, Lexeme: s.src[start+1 : s.pos-1]}
}

func (s *Scanner) lexComment(start int) token.Token {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
	return token.Token{Span: s.spanFrom(start), Kind: token.Comment, Lexeme: s.src[start:s.pos]}
}

func (s *Scanner) lexWhitespace(start int) token.Token {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
	return token.Token{Span: s.spanFrom(start), Kind: token.Whitespace, Lexeme: s.src[start:s.pos]}
}

// countsAsNewline reports whether a whitespace lexeme contains a literal
// line break, the trigger EOL inference keys off.
func countsAsNewline(lexeme string) bool {
	return strings.ContainsRune(lexeme, '\n')
}
