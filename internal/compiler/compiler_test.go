package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livy-lang/livy/internal/diagnostic"
)

func defaultOpts() Options {
	return Options{Encoding: "UTF-8", Compress: true, ExpansionLevel: 1, ReportFormat: diagnostic.FormatLong}
}

func TestRunEncodesSimpleProgram(t *testing.T) {
	result := Run([]byte("let f x = x + 1"), defaultOpts())
	require.Empty(t, result.Message)
	require.NotEmpty(t, result.Bytecode)
}

func TestRunReportsLexError(t *testing.T) {
	result := Run([]byte(`let x = "unterminated`), defaultOpts())
	require.Nil(t, result.Bytecode)
	require.Contains(t, result.Message, "unterminated string")
}

func TestRunReportsTypeMismatch(t *testing.T) {
	result := Run([]byte("let x = 1 + True"), defaultOpts())
	require.Nil(t, result.Bytecode)
	require.Contains(t, result.Message, "TypeMismatch")
}

func TestRunRejectsTraitBeforeLowering(t *testing.T) {
	opts := defaultOpts()
	result := Run([]byte("trait Eq eq :: a -> a -> Bool end"), opts)
	require.Nil(t, result.Bytecode)
	require.Contains(t, result.Message, "trait")
}

func TestRunShowTokensStopsAfterLexing(t *testing.T) {
	opts := defaultOpts()
	opts.ShowTokens = true
	result := Run([]byte("let x = 1"), opts)
	require.Nil(t, result.Bytecode)
	require.Contains(t, result.Message, "let")
}

func TestRunShowASTStopsAfterParsing(t *testing.T) {
	opts := defaultOpts()
	opts.ShowAST = true
	result := Run([]byte("let x = 1"), opts)
	require.Nil(t, result.Bytecode)
	require.Contains(t, result.Message, "let x = 1")
}

func TestRunShowTypesStopsAfterTypeChecking(t *testing.T) {
	opts := defaultOpts()
	opts.ShowTypes = true
	result := Run([]byte("let x = 1"), opts)
	require.Nil(t, result.Bytecode)
	require.Contains(t, result.Message, "Int")
}
