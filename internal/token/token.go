// Package token enumerates the lexical token kinds produced by the lexer
// and the EOL inference pass, and the Token type built on top of them.
package token

import (
	"fmt"

	"github.com/livy-lang/livy/internal/span"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	Illegal Kind = iota

	// Literal-carrying kinds.
	Integer
	Float
	Name
	String
	Comment

	// Keywords.
	And
	Else
	End
	False
	If
	Impl
	Let
	Match
	Or
	Then
	Trait
	True

	// Pseudo tokens: not produced directly by the scanner, but inserted by
	// EOL inference or the lexer's own boundary handling.
	EOL
	EOF
	Whitespace

	// Punctuation and operators.
	Arrow        // ->
	Asterisk     // *
	Backslash    // \
	Caret        // ^
	Colon        // :
	ColonEqual   // :=
	Comma        // ,
	Dash         // -
	Diamond      // <>
	DoubleColon  // ::
	Ellipsis     // ..
	Equal        // =
	FSlash       // /
	FSlashEqual  // /=
	Greater      // >
	GreaterEqual // >=
	LBracket     // [
	Less         // <
	LessEqual    // <=
	LParen       // (
	Percent      // %
	Pipe         // |
	Plus         // +
	RBracket     // ]
	RParen       // )
	Tilde        // ~
)

var names = map[Kind]string{
	Illegal: "illegal", Integer: "integer", Float: "float", Name: "name",
	String: "string", Comment: "comment", And: "and", Else: "else", End: "end",
	False: "False", If: "if", Impl: "impl", Let: "let", Match: "match", Or: "or",
	Then: "then", Trait: "trait", True: "True", EOL: ";;", EOF: "eof",
	Whitespace: "whitespace", Arrow: "->",
	Asterisk: "*", Backslash: "\\", Caret: "^", Colon: ":", ColonEqual: ":=",
	Comma: ",", Dash: "-", Diamond: "<>", DoubleColon: "::", Ellipsis: "..",
	Equal: "=", FSlash: "/", FSlashEqual: "/=", Greater: ">", GreaterEqual: ">=",
	LBracket: "[", Less: "<", LessEqual: "<=", LParen: "(", Percent: "%",
	Pipe: "|", Plus: "+", RBracket: "]", RParen: ")", Tilde: "~",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps the reserved-word spelling to its kind.
var Keywords = map[string]Kind{
	"and": And, "else": Else, "end": End, "False": False, "if": If,
	"impl": Impl, "let": Let, "match": Match, "or": Or, "then": Then,
	"trait": Trait, "True": True,
}

// DoubleCharTokens must be matched before SingleCharTokens to avoid
// ambiguity (e.g. ">=" vs ">").
var DoubleCharTokens = map[string]Kind{
	"->": Arrow, ":=": ColonEqual, "<>": Diamond, "..": Ellipsis,
	">=": GreaterEqual, "<=": LessEqual, "/=": FSlashEqual, "::": DoubleColon,
}

// SingleCharTokens are the one-byte punctuation/operator tokens.
var SingleCharTokens = map[byte]Kind{
	'*': Asterisk, '\\': Backslash, '^': Caret, ':': Colon, ',': Comma,
	'-': Dash, '=': Equal, '/': FSlash, '>': Greater, '[': LBracket,
	'<': Less, '(': LParen, '%': Percent, '|': Pipe, '+': Plus,
	']': RBracket, ')': RParen, '~': Tilde,
}

// OpeningPairs/ClosingPairs feed the depth tracking used by EOL inference.
var OpeningPairs = map[Kind]bool{LBracket: true, LParen: true}
var ClosingPairs = map[Kind]bool{RBracket: true, RParen: true}

const CommentMarker = '#'

// Token is a single lexeme: its span, its kind, and (for kinds that carry
// one) its literal text.
type Token struct {
	Span   span.Span
	Kind   Kind
	Lexeme string
}

func (t Token) String() string {
	if t.Lexeme == "" {
		return fmt.Sprintf("[ #%s %s ]", t.Span, t.Kind)
	}
	return fmt.Sprintf("[ #%s %s %q ]", t.Span, t.Kind, t.Lexeme)
}
