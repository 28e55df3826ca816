package typecheck

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livy-lang/livy/internal/ast"
	"github.com/livy-lang/livy/internal/diagnostic"
	"github.com/livy-lang/livy/internal/idgen"
	"github.com/livy-lang/livy/internal/lexer"
	"github.com/livy-lang/livy/internal/parser"
	"github.com/livy-lang/livy/internal/typed"
	"github.com/livy-lang/livy/internal/types"
)

func parseSource(t *testing.T, src string) *ast.Block {
	t.Helper()
	toks, lexErrs := lexer.Lex(src)
	require.Empty(t, lexErrs)
	block, errs := parser.New(toks).Parse()
	require.Empty(t, errs)
	return block
}

func infer(t *testing.T, src string) (typed.Node, []*diagnostic.Diagnostic) {
	t.Helper()
	block := parseSource(t, src)
	return Infer(idgen.New(), block)
}

func lastDefine(t *testing.T, tree typed.Node) *typed.Define {
	t.Helper()
	block, ok := tree.(*typed.Block)
	require.True(t, ok)
	def, ok := block.Body[len(block.Body)-1].(*typed.Define)
	require.True(t, ok)
	return def
}

func TestInferArithmeticLiteralsToInt(t *testing.T) {
	tree, errs := infer(t, "let x = 1 + 2")
	require.Empty(t, errs)
	def := lastDefine(t, tree)
	require.Equal(t, "Int", def.Target.Type().String())
}

func TestInferIdentityLambdaIsPolymorphic(t *testing.T) {
	tree, errs := infer(t, `\x -> x`)
	require.Empty(t, errs)
	block, ok := tree.(*typed.Block)
	require.True(t, ok)
	fn, ok := block.Body[0].(*typed.Function)
	require.True(t, ok)

	from, to, ok := types.AsFunc(fn.Type())
	require.True(t, ok)
	require.Equal(t, from.String(), to.String())

	param, ok := fn.Param.(*typed.FreeName)
	require.True(t, ok)
	require.Equal(t, from.String(), param.Type().String())
}

func TestInferPairDestructuringGeneralizesBothHalves(t *testing.T) {
	tree, errs := infer(t, "let pair (a, b) = a")
	require.Empty(t, errs)
	def := lastDefine(t, tree)

	scheme, ok := def.Target.Type().(*types.Scheme)
	require.True(t, ok, "expected pair's inferred type to generalize, got %s", def.Target.Type())
	require.Len(t, scheme.Bound, 2)

	from, to, ok := types.AsFunc(scheme.Body)
	require.True(t, ok)

	pairT, ok := from.(*types.Apply)
	require.True(t, ok)
	inner, ok := pairT.Func.(*types.Apply)
	require.True(t, ok)
	first := inner.Arg

	require.Equal(t, first.String(), to.String())
}

func TestInferCondBranchesMustAgree(t *testing.T) {
	tree, errs := infer(t, "if True then 1 else 2")
	require.Empty(t, errs)
	block := tree.(*typed.Block)
	require.Equal(t, "Int", block.Body[0].Type().String())
}

func TestInferUndefinedNameSuggestsNearMatch(t *testing.T) {
	// "an" is a fuzzy subsequence of both "and" (distance 1) and "main"
	// (distance 2), so the rank should settle on the closer "and".
	_, errs := infer(t, "let z = an")
	require.Len(t, errs, 1)
	require.Equal(t, diagnostic.UndefinedName, errs[0].Kind)
	require.Equal(t, "an", errs[0].Name)
	require.Equal(t, "and", errs[0].Suggest)
}

func TestInferUndefinedNameWithNoCloseMatch(t *testing.T) {
	_, errs := infer(t, "let x = qqqqqqqq")
	require.Len(t, errs, 1)
	require.Equal(t, diagnostic.UndefinedName, errs[0].Kind)
	require.Equal(t, "", errs[0].Suggest)
}

func TestInferTypeMismatchOnBadApply(t *testing.T) {
	_, errs := infer(t, "let x = 1 + True")
	require.Len(t, errs, 1)
	require.Equal(t, diagnostic.TypeMismatch, errs[0].Kind)
}

func TestInferListPatternElementsShareType(t *testing.T) {
	tree, errs := infer(t, "match [1, 2]\n| [a, ..rest] -> a\nend")
	require.Empty(t, errs)
	block := tree.(*typed.Block)
	require.Equal(t, "Int", block.Body[0].Type().String())
}

func TestInferAnnotationConstrainsValue(t *testing.T) {
	tree, errs := infer(t, "let x = 1\nx :: Int")
	require.Empty(t, errs)
	block := tree.(*typed.Block)
	require.Len(t, block.Body, 2)
	require.Equal(t, "Int", block.Body[1].Type().String())
}

func TestInferAnnotationMismatchIsReported(t *testing.T) {
	_, errs := infer(t, "let x = 1\nx :: Bool")
	require.Len(t, errs, 1)
	require.Equal(t, diagnostic.TypeMismatch, errs[0].Kind)
}
