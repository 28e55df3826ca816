package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livy-lang/livy/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanAllBasicTokens(t *testing.T) {
	toks, errs := NewScanner(`let x = 42 + 1.5`).ScanAll()
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{
		token.Let, token.Whitespace, token.Name, token.Whitespace, token.Equal,
		token.Whitespace, token.Integer, token.Whitespace, token.Plus,
		token.Whitespace, token.Float, token.EOF,
	}, kinds(toks))
}

func TestScanAllIllegalChar(t *testing.T) {
	_, errs := NewScanner("let x = @").ScanAll()
	require.Len(t, errs, 1)
	require.Equal(t, "@", errs[0].Char)
}

func TestScanAllUnterminatedString(t *testing.T) {
	_, errs := NewScanner(`"abc`).ScanAll()
	require.Len(t, errs, 1)
	require.Equal(t, `"`, errs[0].Char)
}

func TestInferEOLsBetweenDefinitions(t *testing.T) {
	toks, errs := Lex("let x = 1\nlet y = 2")
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{
		token.Let, token.Name, token.Equal, token.Integer, token.EOL,
		token.Let, token.Name, token.Equal, token.Integer, token.EOL, token.EOF,
	}, kinds(toks))
}

func TestInferEOLsSuppressedInsideParens(t *testing.T) {
	toks, errs := Lex("(1\n2)")
	require.Empty(t, errs)
	require.Equal(t, []token.Kind{
		token.LParen, token.Integer, token.Integer, token.RParen, token.EOL, token.EOF,
	}, kinds(toks))
}

func TestInferEOLsFinalSynthesized(t *testing.T) {
	toks, _ := Lex("let x = 1")
	require.Equal(t, []token.Kind{token.Let, token.Name, token.Equal, token.Integer, token.EOL, token.EOF}, kinds(toks))
}
