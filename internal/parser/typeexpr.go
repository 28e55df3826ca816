package parser

import (
	"unicode"

	"github.com/livy-lang/livy/internal/ast"
	"github.com/livy-lang/livy/internal/span"
	"github.com/livy-lang/livy/internal/token"
)

// parseTypeExpr parses a surface type expression: a chain of type
// applications, with "->" desugaring to the curried Apply(Apply(->, from),
// to) shape at the ast.TypeExpr level, right-associative as function
// arrows conventionally are.
func (p *Parser) parseTypeExpr() (ast.TypeExpr, bool) {
	left, ok := p.parseTypeApply()
	if !ok {
		return nil, false
	}
	if p.check(token.Arrow) {
		p.advance()
		right, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		arrow := &ast.TypeName{Sp: left.Span(), Value: "->"}
		inner := &ast.TypeApply{Sp: span.Merge(arrow.Span(), left.Span()), Func: arrow, Arg: left}
		return &ast.TypeApply{Sp: span.Merge(inner.Span(), right.Span()), Func: inner, Arg: right}, true
	}
	return left, true
}

func (p *Parser) parseTypeApply() (ast.TypeExpr, bool) {
	left, ok := p.parseTypePrimary()
	if !ok {
		return nil, false
	}
	for p.check(token.Name) || p.check(token.LParen) {
		arg, ok := p.parseTypePrimary()
		if !ok {
			return nil, false
		}
		left = &ast.TypeApply{Sp: span.Merge(left.Span(), arg.Span()), Func: left, Arg: arg}
	}
	return left, true
}

func (p *Parser) parseTypePrimary() (ast.TypeExpr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Name:
		p.advance()
		if isTypeVarName(tok.Lexeme) {
			return &ast.TypeVar{Sp: tok.Span, Value: tok.Lexeme}, true
		}
		return &ast.TypeName{Sp: tok.Span, Value: tok.Lexeme}, true
	case token.LParen:
		p.advance()
		inner, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, ")"); !ok {
			return nil, false
		}
		return inner, true
	default:
		p.unexpected(tok, "a type")
		return nil, false
	}
}

// isTypeVarName follows the surface convention that a lowercase initial
// letter names a type variable, an uppercase one a nominal type.
func isTypeVarName(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsLower(rune(name[0]))
}

