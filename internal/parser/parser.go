// Package parser turns a token stream into a surface ast.Node tree via a
// Pratt (operator-precedence) expression parser layered with statement-
// level constructs (let, if, match, lambda).
package parser

import (
	"fmt"

	"github.com/livy-lang/livy/internal/ast"
	"github.com/livy-lang/livy/internal/diagnostic"
	"github.com/livy-lang/livy/internal/span"
	"github.com/livy-lang/livy/internal/token"
)

// Parser holds the token stream and cursor. Use New then Parse.
type Parser struct {
	toks []token.Token
	pos  int
	errs []*diagnostic.Diagnostic
}

// New builds a Parser over an already EOL-inferred token stream.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse consumes the whole token stream, returning the program as a
// top-level Block and any diagnostics raised along the way. Parsing never
// stops at the first error: on an unexpected token, the parser records
// the diagnostic, skips to the next EOL, and keeps going so later errors
// still surface in one pass.
func (p *Parser) Parse() (*ast.Block, []*diagnostic.Diagnostic) {
	start := p.peek().Span
	var body []ast.Node
	for !p.atEnd() {
		for p.check(token.EOL) {
			p.advance()
		}
		if p.atEnd() {
			break
		}
		item, ok := p.parseTopLevel()
		if ok {
			body = append(body, item)
		}
		if !p.check(token.EOL) && !p.atEnd() {
			p.syncToEOL()
		}
	}
	end := start
	if len(body) > 0 {
		end = body[len(body)-1].Span()
	}
	return &ast.Block{Sp: span.Merge(start, end), Body: body}, p.errs
}

func (p *Parser) syncToEOL() {
	for !p.atEnd() && !p.check(token.EOL) {
		p.advance()
	}
}

func (p *Parser) parseTopLevel() (ast.Node, bool) {
	switch p.peek().Kind {
	case token.Let:
		return p.parseLet()
	case token.Trait:
		return p.parseTrait()
	case token.Impl:
		return p.parseImpl()
	default:
		return p.parseAnnotation()
	}
}

// parseAnnotation parses an ordinary expression, then promotes it to an
// `ast.Annotation` if it turns out to be a bare name followed by `::`: a
// standalone `name :: Type` statement, the only place `::` appears in the
// grammar.
func (p *Parser) parseAnnotation() (ast.Node, bool) {
	expr, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	target, isName := expr.(*ast.Name)
	if !isName || !p.check(token.DoubleColon) {
		return expr, true
	}
	p.advance()
	typ, ok := p.parseTypeExpr()
	if !ok {
		return nil, false
	}
	return &ast.Annotation{Sp: span.Merge(target.Sp, typ.Span()), Target: target, Type: typ}, true
}

// --- core Pratt loop ---

func (p *Parser) parseExpr(minBP int) (ast.Node, bool) {
	left, ok := p.parsePrefix()
	if !ok {
		return nil, false
	}

	// Bounded iteration guard: the loop can advance at most once per
	// remaining token, so a parselet bug can never spin forever.
	guard := len(p.toks) - p.pos + 1
	for i := 0; i < guard; i++ {
		if op, ok := infixOps[p.peek().Kind]; ok && op.bp >= minBP {
			p.advance()
			nextMin := op.bp + 1
			if op.assoc == rightAssoc {
				nextMin = op.bp
			}
			right, ok := p.parseExpr(nextMin)
			if !ok {
				return left, true // partial-result recovery
			}
			left = applyBinary(op.name, left, right)
			continue
		}

		if p.check(token.Comma) && pairBP >= minBP {
			p.advance()
			right, ok := p.parseExpr(pairBP) // right-assoc: same bp
			if !ok {
				return left, true
			}
			left = &ast.Pair{Sp: span.Merge(left.Span(), right.Span()), First: left, Second: right}
			continue
		}

		if applyBP >= minBP && primaryStarters[p.peek().Kind] {
			arg, ok := p.parseExpr(applyBP + 1)
			if !ok {
				return left, true
			}
			left = &ast.Apply{Sp: span.Merge(left.Span(), arg.Span()), Func: left, Arg: arg}
			continue
		}

		break
	}
	return left, true
}

func applyBinary(name string, left, right ast.Node) ast.Node {
	op := &ast.Name{Sp: left.Span(), Value: name}
	inner := &ast.Apply{Sp: span.Merge(op.Span(), left.Span()), Func: op, Arg: left}
	return &ast.Apply{Sp: span.Merge(inner.Span(), right.Span()), Func: inner, Arg: right}
}

func (p *Parser) parsePrefix() (ast.Node, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Integer:
		p.advance()
		return p.scalarInt(tok)
	case token.Float:
		p.advance()
		return p.scalarFloat(tok)
	case token.String:
		p.advance()
		return &ast.Scalar{Sp: tok.Span, Kind: ast.ScalarString, String: tok.Lexeme}, true
	case token.True:
		p.advance()
		return &ast.Scalar{Sp: tok.Span, Kind: ast.ScalarBool, Bool: true}, true
	case token.False:
		p.advance()
		return &ast.Scalar{Sp: tok.Span, Kind: ast.ScalarBool, Bool: false}, true
	case token.Name:
		p.advance()
		return &ast.Name{Sp: tok.Span, Value: tok.Lexeme}, true
	case token.LParen:
		return p.parseParen()
	case token.LBracket:
		return p.parseList()
	case token.Backslash:
		return p.parseLambda()
	case token.If:
		return p.parseIf()
	case token.Match:
		return p.parseMatch()
	case token.Tilde:
		p.advance()
		operand, ok := p.parseExpr(unaryBP)
		if !ok {
			return nil, false
		}
		return &ast.Apply{Sp: span.Merge(tok.Span, operand.Span()), Func: &ast.Name{Sp: tok.Span, Value: "~"}, Arg: operand}, true
	case token.Dash:
		p.advance()
		operand, ok := p.parseExpr(unaryBP)
		if !ok {
			return nil, false
		}
		return &ast.Apply{Sp: span.Merge(tok.Span, operand.Span()), Func: &ast.Name{Sp: tok.Span, Value: "~"}, Arg: operand}, true
	default:
		p.unexpected(tok, "an expression")
		return nil, false
	}
}

func (p *Parser) scalarInt(tok token.Token) (ast.Node, bool) {
	n, err := parseInt(tok.Lexeme)
	if err != nil {
		p.errs = append(p.errs, diagnostic.NewNumberOverflow(tok.Span))
		return &ast.Scalar{Sp: tok.Span, Kind: ast.ScalarInt, Int: 0}, true
	}
	return &ast.Scalar{Sp: tok.Span, Kind: ast.ScalarInt, Int: n}, true
}

func (p *Parser) scalarFloat(tok token.Token) (ast.Node, bool) {
	f, err := parseFloat(tok.Lexeme)
	if err != nil {
		p.errs = append(p.errs, diagnostic.NewNumberOverflow(tok.Span))
		return &ast.Scalar{Sp: tok.Span, Kind: ast.ScalarFloat, Float: 0}, true
	}
	return &ast.Scalar{Sp: tok.Span, Kind: ast.ScalarFloat, Float: f}, true
}

// parseParen parses `()` (Unit) or `( expr )`. A comma inside the
// parens is handled by parseExpr's own pair parselet, which folds the
// whole comma-chain into nested ast.Pair nodes without any help from
// here; this only needs to re-span the result to cover the parens.
func (p *Parser) parseParen() (ast.Node, bool) {
	open := p.advance()
	if p.check(token.RParen) {
		close := p.advance()
		return &ast.Unit{Sp: span.Merge(open.Span, close.Span)}, true
	}
	inner, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	close, ok := p.expect(token.RParen, ")")
	if !ok {
		return nil, false
	}
	if pair, ok := inner.(*ast.Pair); ok {
		pair.Sp = span.Merge(open.Span, close.Span)
	}
	return inner, true
}

func (p *Parser) parseList() (ast.Node, bool) {
	open := p.advance()
	var elems []ast.Node
	if !p.check(token.RBracket) {
		for {
			// Stop one above pairBP so the element parse doesn't itself
			// swallow the separator comma as a pair-forming operator.
			el, ok := p.parseExpr(pairBP + 1)
			if !ok {
				return nil, false
			}
			elems = append(elems, el)
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
	return &ast.List{Sp: span.Merge(open.Span, close.Span), Elements: elems}, true
}

// parseLambda parses `\p1 p2 ... -> body`, folding multiple parameters
// into nested Functions right-to-left (the same curry fold parseLet uses
// for `let f p1 p2 = body`).
func (p *Parser) parseLambda() (ast.Node, bool) {
	start := p.advance() // backslash
	var params []ast.Pattern
	for !p.check(token.Arrow) {
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		params = append(params, pat)
		if p.atEnd() {
			break
		}
	}
	if _, ok := p.expect(token.Arrow, "->"); !ok {
		return nil, false
	}
	body, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	return curry(start.Span, params, body), true
}

// curry folds a parameter list right-to-left into nested single-parameter
// Functions, one per argument.
func curry(start span.Span, params []ast.Pattern, body ast.Node) ast.Node {
	result := body
	for i := len(params) - 1; i >= 0; i-- {
		result = &ast.Function{Sp: span.Merge(start, result.Span()), Param: params[i], Body: result}
	}
	return result
}

func (p *Parser) parseIf() (ast.Node, bool) {
	start := p.advance()
	pred, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Then, "then"); !ok {
		return nil, false
	}
	cons, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Else, "else"); !ok {
		return nil, false
	}
	alt, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	return &ast.Cond{Sp: span.Merge(start.Span, alt.Span()), Pred: pred, Cons: cons, Alt: alt}, true
}

func (p *Parser) parseMatch() (ast.Node, bool) {
	start := p.advance()
	subject, ok := p.parseExpr(0)
	if !ok {
		return nil, false
	}
	var cases []ast.MatchCase
	for p.check(token.Pipe) {
		p.advance()
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Arrow, "->"); !ok {
			return nil, false
		}
		body, ok := p.parseExpr(0)
		if !ok {
			return nil, false
		}
		cases = append(cases, ast.MatchCase{Pattern: pat, Body: body})
	}
	p.skipEOL()
	end, ok := p.expect(token.End, "end")
	if !ok {
		return nil, false
	}
	return &ast.Match{Sp: span.Merge(start.Span, end.Span), Subject: subject, Cases: cases}, true
}

// parseLet parses `let target [param...] = value` or
// `let target [param...] := stmt... end`, folding extra parameters
// (beyond the first, the definition's own target pattern) into nested
// Functions. Body is left nil; the enclosing Block fills the
// block-sequencing relationship implicitly by what follows.
func (p *Parser) parseLet() (ast.Node, bool) {
	start := p.advance()
	target, ok := p.parsePattern()
	if !ok {
		return nil, false
	}
	var extra []ast.Pattern
	for !p.check(token.Equal) && !p.check(token.ColonEqual) && !p.atEnd() {
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		extra = append(extra, pat)
	}
	value, ok := p.parseBodyClause()
	if !ok {
		return nil, false
	}
	if len(extra) > 0 {
		value = curry(value.Span(), extra, value)
	}
	return &ast.Define{Sp: span.Merge(start.Span, value.Span()), Target: target, Value: value}, true
}

// parseBodyClause parses the two equivalent forms a definition's body can
// take: the shorthand `= expr`, or the long form `:= stmt... end`, a block
// of EOL-separated statements closed by `end`, mirrored on
// `original_source/hasdrubal/parse_.py`'s `_body_clause`.
func (p *Parser) parseBodyClause() (ast.Node, bool) {
	if p.check(token.ColonEqual) {
		p.advance()
		block, ok := p.parseBlockUntil(token.End)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.End, "end"); !ok {
			return nil, false
		}
		return block, true
	}
	if _, ok := p.expect(token.Equal, "="); !ok {
		return nil, false
	}
	return p.parseExpr(0)
}

// parseBlockUntil parses a sequence of EOL-separated top-level statements,
// the same way Parse does for the whole program, stopping as soon as
// stopAt is the next significant token (left unconsumed for the caller).
func (p *Parser) parseBlockUntil(stopAt token.Kind) (ast.Node, bool) {
	start := p.peek().Span
	var body []ast.Node
	for !p.atEnd() && !p.check(stopAt) {
		for p.check(token.EOL) {
			p.advance()
		}
		if p.atEnd() || p.check(stopAt) {
			break
		}
		item, ok := p.parseTopLevel()
		if ok {
			body = append(body, item)
		}
		if !p.check(token.EOL) && !p.check(stopAt) && !p.atEnd() {
			p.syncToEOL()
		}
	}
	end := start
	if len(body) > 0 {
		end = body[len(body)-1].Span()
	}
	return &ast.Block{Sp: span.Merge(start, end), Body: body}, true
}

func (p *Parser) parseTrait() (ast.Node, bool) {
	start := p.advance()
	nameTok, ok := p.expect(token.Name, "a trait name")
	if !ok {
		return nil, false
	}
	var methods []ast.TraitMethod
	for p.check(token.Name) {
		mName := p.advance()
		if _, ok := p.expect(token.DoubleColon, "::"); !ok {
			return nil, false
		}
		typ, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		methods = append(methods, ast.TraitMethod{Name: mName.Lexeme, Type: typ})
	}
	p.skipEOL()
	end, ok := p.expect(token.End, "end")
	if !ok {
		return nil, false
	}
	return &ast.Trait{Sp: span.Merge(start.Span, end.Span), Name: nameTok.Lexeme, Methods: methods}, true
}

func (p *Parser) parseImpl() (ast.Node, bool) {
	start := p.advance()
	nameTok, ok := p.expect(token.Name, "a trait name")
	if !ok {
		return nil, false
	}
	typ, ok := p.parseTypeExpr()
	if !ok {
		return nil, false
	}
	var methods []*ast.Define
	for p.check(token.Let) {
		def, ok := p.parseLet()
		if !ok {
			return nil, false
		}
		methods = append(methods, def.(*ast.Define))
	}
	p.skipEOL()
	end, ok := p.expect(token.End, "end")
	if !ok {
		return nil, false
	}
	return &ast.Impl{Sp: span.Merge(start.Span, end.Span), Trait: nameTok.Lexeme, Type: typ, Methods: methods}, true
}

// --- token-stream helpers ---

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(k token.Kind) bool { return p.peek().Kind == k }

// skipEOL consumes any run of EOL tokens sitting at the cursor, the way
// Parse and parseBlockUntil already do between top-level statements.
// match/trait/impl's closing `end` needs the same treatment: now that
// token.End is a valid EOL starter, an ordinary multi-line body leaves an
// EOL directly before it.
func (p *Parser) skipEOL() {
	for p.check(token.EOL) {
		p.advance()
	}
}

func (p *Parser) atEnd() bool { return p.peek().Kind == token.EOF }

func (p *Parser) expect(k token.Kind, desc string) (token.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	p.unexpected(p.peek(), desc)
	return token.Token{}, false
}

func (p *Parser) unexpected(tok token.Token, expected string) {
	if tok.Kind == token.EOF {
		p.errs = append(p.errs, diagnostic.NewUnexpectedEOF(expected))
		return
	}
	p.errs = append(p.errs, diagnostic.NewUnexpectedToken(tok.Span, fmt.Sprint(tok.Kind), expected))
}
