package defsort_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livy-lang/livy/internal/ast"
	"github.com/livy-lang/livy/internal/defsort"
	"github.com/livy-lang/livy/internal/span"
)

func name(v string) *ast.Name { return &ast.Name{Value: v} }

func TestSortMovesDefinitionBeforeUse(t *testing.T) {
	useBeforeDef := &ast.Block{
		Body: []ast.Node{
			&ast.Apply{Func: name("double"), Arg: &ast.Scalar{Kind: ast.ScalarInt, Int: 2}},
			&ast.Define{Target: &ast.FreeName{Value: "double"}, Value: &ast.Function{
				Param: &ast.FreeName{Value: "x"},
				Body:  &ast.Apply{Func: &ast.Apply{Func: name("*"), Arg: name("x")}, Arg: &ast.Scalar{Kind: ast.ScalarInt, Int: 2}},
			}},
		},
	}

	sorted := defsort.Sort(useBeforeDef).(*ast.Block)
	require.Len(t, sorted.Body, 2)
	_, firstIsDefine := sorted.Body[0].(*ast.Define)
	require.True(t, firstIsDefine, "definition should be hoisted before its use")
}

func TestSortLeavesIndependentExprsInPlace(t *testing.T) {
	block := &ast.Block{
		Body: []ast.Node{
			&ast.Define{Target: &ast.FreeName{Value: "a"}, Value: &ast.Scalar{Kind: ast.ScalarInt, Int: 1}},
			&ast.Define{Target: &ast.FreeName{Value: "b"}, Value: &ast.Scalar{Kind: ast.ScalarInt, Int: 2}},
		},
	}
	sorted := defsort.Sort(block).(*ast.Block)
	require.Len(t, sorted.Body, 2)
	require.Equal(t, "a", sorted.Body[0].(*ast.Define).Target.(*ast.FreeName).Value)
	require.Equal(t, "b", sorted.Body[1].(*ast.Define).Target.(*ast.FreeName).Value)
}

func TestSortPreservesSpan(t *testing.T) {
	sp := span.Span{Start: 1, End: 2}
	block := &ast.Block{Sp: sp, Body: []ast.Node{&ast.Unit{Sp: sp}}}
	sorted := defsort.Sort(block).(*ast.Block)
	require.Equal(t, sp, sorted.Sp)
}
