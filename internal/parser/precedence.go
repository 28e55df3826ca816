package parser

import "github.com/livy-lang/livy/internal/token"

// assoc records whether an infix operator's right operand is parsed at
// the same binding power (right-associative) or one higher
// (left-associative).
type assoc int

const (
	leftAssoc assoc = iota
	rightAssoc
)

type opInfo struct {
	bp    int
	assoc assoc
	name  string // the Name bound in scope this operator desugars to
}

// infixOps is the single global precedence table the Pratt loop consults;
// every binary operator is sugar for an Apply(Apply(Name(op), left), right)
// chain, not a dedicated AST node. Operator names are ordinary scope
// bindings, so this table only needs to know their precedence and
// associativity.
var infixOps = map[token.Kind]opInfo{
	token.Or:           {10, leftAssoc, "or"},
	token.And:          {20, leftAssoc, "and"},
	token.Equal:        {30, leftAssoc, "="},
	token.Diamond:      {30, leftAssoc, "<>"},
	token.Less:         {30, leftAssoc, "<"},
	token.Greater:      {30, leftAssoc, ">"},
	token.LessEqual:    {30, leftAssoc, "<="},
	token.GreaterEqual: {30, leftAssoc, ">="},
	token.FSlashEqual:  {30, leftAssoc, "/="},
	token.Plus:         {50, leftAssoc, "+"},
	token.Dash:         {50, leftAssoc, "-"},
	token.Asterisk:     {60, leftAssoc, "*"},
	token.FSlash:       {60, rightAssoc, "/"},
	token.Percent:      {60, leftAssoc, "%"},
	token.Caret:        {70, rightAssoc, "^"},
}

// pairBP is the binding power of the pair-forming comma: looser than
// every named infix operator (even `or`), right-associative like `/`, so
// `a, b, c` folds into `Pair(a, Pair(b, c))`. It builds an ast.Pair node
// directly rather than going through applyBinary, so it isn't part of
// infixOps.
const pairBP = 5

// applyBP is the binding power juxtaposition-based application parses at:
// higher than every named infix operator, so `f x + y` is `(f x) + y` and
// `f x y` is `(f x) y`.
const applyBP = 80

// unaryBP is the binding power a prefix operator's operand parses at.
const unaryBP = 90

// primaryStarters are the token kinds that can open a new primary
// expression; seeing one of these where an infix operator could otherwise
// appear signals juxtaposition application.
var primaryStarters = map[token.Kind]bool{
	token.Integer: true, token.Float: true, token.String: true,
	token.Name: true, token.True: true, token.False: true,
	token.LParen: true, token.LBracket: true, token.Backslash: true,
	token.Tilde: true, token.Dash: true,
}
