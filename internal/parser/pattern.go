package parser

import (
	"github.com/livy-lang/livy/internal/ast"
	"github.com/livy-lang/livy/internal/diagnostic"
	"github.com/livy-lang/livy/internal/span"
	"github.com/livy-lang/livy/internal/token"
)

// parsePattern parses a single pattern, folding a postfix pair-pattern
// comma chain right-nested, the same shape parseExpr's pair parselet gives
// expression pairs.
func (p *Parser) parsePattern() (ast.Pattern, bool) {
	first, ok := p.parsePatternPrimary()
	if !ok {
		return nil, false
	}
	if !p.check(token.Comma) {
		return first, true
	}
	elems := []ast.Pattern{first}
	for p.check(token.Comma) {
		p.advance()
		next, ok := p.parsePatternPrimary()
		if !ok {
			return nil, false
		}
		elems = append(elems, next)
	}
	return foldPairPatterns(elems), true
}

func foldPairPatterns(elems []ast.Pattern) ast.Pattern {
	last := elems[len(elems)-1]
	for i := len(elems) - 2; i >= 0; i-- {
		last = &ast.PairPattern{Sp: span.Merge(elems[i].Span(), last.Span()), First: elems[i], Second: last}
	}
	return last
}

func (p *Parser) parsePatternPrimary() (ast.Pattern, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Name:
		p.advance()
		return &ast.FreeName{Sp: tok.Span, Value: tok.Lexeme}, true
	case token.Caret:
		p.advance()
		nameTok, ok := p.expect(token.Name, "a name")
		if !ok {
			return nil, false
		}
		return &ast.PinnedName{Sp: span.Merge(tok.Span, nameTok.Span), Value: nameTok.Lexeme}, true
	case token.Integer:
		p.advance()
		n, err := parseInt(tok.Lexeme)
		if err != nil {
			p.errs = append(p.errs, diagnostic.NewNumberOverflow(tok.Span))
		}
		return &ast.ScalarPattern{Sp: tok.Span, Kind: ast.ScalarInt, Int: n}, true
	case token.Float:
		p.advance()
		f, err := parseFloat(tok.Lexeme)
		if err != nil {
			p.errs = append(p.errs, diagnostic.NewNumberOverflow(tok.Span))
		}
		return &ast.ScalarPattern{Sp: tok.Span, Kind: ast.ScalarFloat, Float: f}, true
	case token.String:
		p.advance()
		return &ast.ScalarPattern{Sp: tok.Span, Kind: ast.ScalarString, String: tok.Lexeme}, true
	case token.True:
		p.advance()
		return &ast.ScalarPattern{Sp: tok.Span, Kind: ast.ScalarBool, Bool: true}, true
	case token.False:
		p.advance()
		return &ast.ScalarPattern{Sp: tok.Span, Kind: ast.ScalarBool, Bool: false}, true
	case token.LParen:
		p.advance()
		if p.check(token.RParen) {
			close := p.advance()
			return &ast.UnitPattern{Sp: span.Merge(tok.Span, close.Span)}, true
		}
		inner, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, ")"); !ok {
			return nil, false
		}
		return inner, true
	case token.LBracket:
		return p.parseListPattern()
	default:
		p.unexpected(tok, "a pattern")
		return nil, false
	}
}

func (p *Parser) parseListPattern() (ast.Pattern, bool) {
	open := p.advance()
	var initial []ast.Pattern
	var rest ast.Pattern
	if !p.check(token.RBracket) {
		for {
			if p.check(token.Ellipsis) {
				p.advance()
				r, ok := p.parsePatternPrimary()
				if !ok {
					return nil, false
				}
				rest = r
				break
			}
			pat, ok := p.parsePatternPrimary()
			if !ok {
				return nil, false
			}
			initial = append(initial, pat)
			if !p.check(token.Comma) {
				break
			}
			p.advance()
		}
	}
	close, ok := p.expect(token.RBracket, "]")
	if !ok {
		return nil, false
	}
	return &ast.ListPattern{Sp: span.Merge(open.Span, close.Span), Initial: initial, Rest: rest}, true
}
