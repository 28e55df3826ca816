package lexer

import (
	"github.com/livy-lang/livy/internal/diagnostic"
	"github.com/livy-lang/livy/internal/token"
)

// ValidEndings are the token kinds that can legally precede an inferred
// EOL: the tail of a complete expression.
var ValidEndings = map[token.Kind]bool{
	token.Integer: true, token.Float: true, token.Name: true, token.String: true,
	token.True: true, token.False: true, token.End: true,
	token.RParen: true, token.RBracket: true,
}

// ValidStarters are the token kinds that can legally open a new top-level
// expression, and so can legally follow an inferred EOL.
var ValidStarters = map[token.Kind]bool{
	token.Integer: true, token.Float: true, token.Name: true, token.String: true,
	token.True: true, token.False: true, token.If: true, token.Let: true,
	token.Match: true, token.Trait: true, token.Impl: true, token.End: true,
	token.LParen: true, token.LBracket: true,
	token.Backslash: true, token.Tilde: true, token.Dash: true,
}

// InferEOLs consumes the scanner's raw token stream (which still contains
// Whitespace and Comment tokens) and produces the final stream the parser
// sees: comments and non-newline whitespace are dropped outright, a
// newline-carrying whitespace run becomes a single EOL token when it sits
// at paren/bracket depth 0 and falls between a valid ending and a valid
// starter, and a trailing EOL is synthesized before EOF if the source's
// last significant token could end a line.
func InferEOLs(raw []token.Token) []token.Token {
	var out []token.Token
	depth := 0
	var lastSignificant *token.Token

	emitEOL := func(at token.Token) {
		out = append(out, token.Token{Span: at.Span, Kind: token.EOL})
	}

	for i := 0; i < len(raw); i++ {
		tok := raw[i]
		switch tok.Kind {
		case token.Comment:
			continue
		case token.Whitespace:
			if depth != 0 || !countsAsNewline(tok.Lexeme) {
				continue
			}
			if lastSignificant == nil || !ValidEndings[lastSignificant.Kind] {
				continue
			}
			next := nextSignificant(raw, i+1)
			if next == nil || !ValidStarters[next.Kind] {
				continue
			}
			emitEOL(tok)
			continue
		case token.EOF:
			if lastSignificant != nil && ValidEndings[lastSignificant.Kind] {
				if len(out) == 0 || out[len(out)-1].Kind != token.EOL {
					emitEOL(tok)
				}
			}
			out = append(out, tok)
			continue
		}

		if token.OpeningPairs[tok.Kind] {
			depth++
		} else if token.ClosingPairs[tok.Kind] {
			if depth > 0 {
				depth--
			}
		}
		out = append(out, tok)
		t := tok
		lastSignificant = &t
	}
	return out
}

func nextSignificant(raw []token.Token, from int) *token.Token {
	for i := from; i < len(raw); i++ {
		switch raw[i].Kind {
		case token.Comment, token.Whitespace:
			continue
		default:
			t := raw[i]
			return &t
		}
	}
	return nil
}

// Lex runs the scanner and EOL inference in sequence, the entry point the
// rest of the pipeline calls.
func Lex(src string) ([]token.Token, []*diagnostic.Diagnostic) {
	raw, errs := NewScanner(src).ScanAll()
	return InferEOLs(raw), errs
}
