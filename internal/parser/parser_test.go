package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livy-lang/livy/internal/ast"
	"github.com/livy-lang/livy/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Block {
	t.Helper()
	toks, lexErrs := lexer.Lex(src)
	require.Empty(t, lexErrs)
	block, errs := New(toks).Parse()
	require.Empty(t, errs)
	return block
}

func TestParseLetBindsScalar(t *testing.T) {
	block := parseSource(t, "let x = 42")
	require.Len(t, block.Body, 1)
	def, ok := block.Body[0].(*ast.Define)
	require.True(t, ok)
	target, ok := def.Target.(*ast.FreeName)
	require.True(t, ok)
	require.Equal(t, "x", target.Value)
	value, ok := def.Value.(*ast.Scalar)
	require.True(t, ok)
	require.Equal(t, int64(42), value.Int)
}

func TestParseCurriedLet(t *testing.T) {
	block := parseSource(t, "let add a b = a + b")
	def := block.Body[0].(*ast.Define)
	fn, ok := def.Value.(*ast.Function)
	require.True(t, ok)
	inner, ok := fn.Body.(*ast.Function)
	require.True(t, ok)
	_, ok = inner.Body.(*ast.Apply)
	require.True(t, ok)
}

func TestParseBinaryPrecedence(t *testing.T) {
	block := parseSource(t, "1 + 2 * 3")
	outer, ok := block.Body[0].(*ast.Apply)
	require.True(t, ok)
	outerFunc := outer.Func.(*ast.Apply)
	opName := outerFunc.Func.(*ast.Name)
	require.Equal(t, "+", opName.Value)
	// the right operand of + must itself be the "*" application
	mulApply, ok := outer.Arg.(*ast.Apply)
	require.True(t, ok)
	mulOp := mulApply.Func.(*ast.Apply).Func.(*ast.Name)
	require.Equal(t, "*", mulOp.Value)
}

func TestParseApplicationBindsTighterThanOperators(t *testing.T) {
	block := parseSource(t, "f x + 1")
	outer := block.Body[0].(*ast.Apply)
	// outer is "+" applied to (f x) and 1
	addFunc := outer.Func.(*ast.Apply)
	left := addFunc.Arg.(*ast.Apply)
	_, ok := left.Func.(*ast.Name)
	require.True(t, ok)
}

func TestParseIfThenElse(t *testing.T) {
	block := parseSource(t, "if True then 1 else 2")
	cond, ok := block.Body[0].(*ast.Cond)
	require.True(t, ok)
	require.NotNil(t, cond.Pred)
	require.NotNil(t, cond.Cons)
	require.NotNil(t, cond.Alt)
}

func TestParseMatchExpression(t *testing.T) {
	block := parseSource(t, "match x\n| 0 -> 1\n| y -> y\nend")
	m, ok := block.Body[0].(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)
}

func TestParseListLiteralAndPattern(t *testing.T) {
	block := parseSource(t, "let [a, b, ..rest] = [1, 2, 3]")
	def := block.Body[0].(*ast.Define)
	lp, ok := def.Target.(*ast.ListPattern)
	require.True(t, ok)
	require.Len(t, lp.Initial, 2)
	require.NotNil(t, lp.Rest)
	lst, ok := def.Value.(*ast.List)
	require.True(t, ok)
	require.Len(t, lst.Elements, 3)
}

func TestParseLambdaMultiParam(t *testing.T) {
	block := parseSource(t, `\a b -> a + b`)
	fn, ok := block.Body[0].(*ast.Function)
	require.True(t, ok)
	_, ok = fn.Body.(*ast.Function)
	require.True(t, ok)
}

func TestParseAnnotationStatement(t *testing.T) {
	block := parseSource(t, "let id = 1\nid :: Int")
	require.Len(t, block.Body, 2)
	ann, ok := block.Body[1].(*ast.Annotation)
	require.True(t, ok)
	target, ok := ann.Target.(*ast.Name)
	require.True(t, ok)
	require.Equal(t, "id", target.Value)
	typ, ok := ann.Type.(*ast.TypeName)
	require.True(t, ok)
	require.Equal(t, "Int", typ.Value)
}

func TestParseAnnotationOnFunctionType(t *testing.T) {
	block := parseSource(t, "compose :: (a -> b) -> a -> b")
	ann, ok := block.Body[0].(*ast.Annotation)
	require.True(t, ok)
	_, ok = ann.Type.(*ast.TypeApply)
	require.True(t, ok)
}

func TestParseLetBodyClauseBlock(t *testing.T) {
	block := parseSource(t, "let x :=\n1\n2\nend")
	def := block.Body[0].(*ast.Define)
	body, ok := def.Value.(*ast.Block)
	require.True(t, ok)
	require.Len(t, body.Body, 2)
}

func TestParseLetBodyClauseCurriedFunction(t *testing.T) {
	block := parseSource(t, "let add a b :=\na + b\nend")
	def := block.Body[0].(*ast.Define)
	fn, ok := def.Value.(*ast.Function)
	require.True(t, ok)
	inner, ok := fn.Body.(*ast.Function)
	require.True(t, ok)
	_, ok = inner.Body.(*ast.Block)
	require.True(t, ok)
}

func TestParseBarePairFormingComma(t *testing.T) {
	block := parseSource(t, "let p = 1, 2")
	def := block.Body[0].(*ast.Define)
	pair, ok := def.Value.(*ast.Pair)
	require.True(t, ok)
	first := pair.First.(*ast.Scalar)
	require.Equal(t, int64(1), first.Int)
	second := pair.Second.(*ast.Scalar)
	require.Equal(t, int64(2), second.Int)
}

func TestParsePairFormingCommaIsRightAssociative(t *testing.T) {
	block := parseSource(t, "let p = 1, 2, 3")
	def := block.Body[0].(*ast.Define)
	outer := def.Value.(*ast.Pair)
	require.Equal(t, int64(1), outer.First.(*ast.Scalar).Int)
	inner, ok := outer.Second.(*ast.Pair)
	require.True(t, ok)
	require.Equal(t, int64(2), inner.First.(*ast.Scalar).Int)
	require.Equal(t, int64(3), inner.Second.(*ast.Scalar).Int)
}

func TestParseParenPairStillParsesAsPair(t *testing.T) {
	block := parseSource(t, "let p = (1, 2)")
	def := block.Body[0].(*ast.Define)
	_, ok := def.Value.(*ast.Pair)
	require.True(t, ok)
}

func TestParseMatchCaseBodyClauseBlockEndsOnOwnLine(t *testing.T) {
	block := parseSource(t, "let f x :=\nmatch x\n| 0 -> 1\n| y -> y\nend\nend")
	def := block.Body[0].(*ast.Define)
	fn := def.Value.(*ast.Function)
	body := fn.Body.(*ast.Block)
	m, ok := body.Body[0].(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)
}
