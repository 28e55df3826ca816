package codegen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livy-lang/livy/internal/codegen"
	"github.com/livy-lang/livy/internal/lowered"
	"github.com/livy-lang/livy/internal/span"
)

func TestGenerateScalarEmitsSingleLoad(t *testing.T) {
	tree := lowered.NewScalarInt(span.Zero, 3)
	instrs := codegen.New().Run(tree)
	require.Len(t, instrs, 1)
	require.Equal(t, codegen.LoadInt, instrs[0].OpCode)
	require.Equal(t, int64(3), instrs[0].Operands[0])
}

func TestGenerateDefineEmitsStoreAfterValue(t *testing.T) {
	tree := lowered.NewDefine(span.Zero, "x", lowered.NewScalarInt(span.Zero, 3))
	instrs := codegen.New().Run(tree)
	require.Len(t, instrs, 2)
	require.Equal(t, codegen.LoadInt, instrs[0].OpCode)
	require.Equal(t, codegen.StoreName, instrs[1].OpCode)
	require.Equal(t, 0, instrs[1].Operands[0])
}

func TestGenerateNativeOpEmitsRightThenLeftThenNative(t *testing.T) {
	tree := lowered.NewNativeOp(span.Zero, lowered.ADD, lowered.NewScalarInt(span.Zero, 1), lowered.NewScalarInt(span.Zero, 2))
	instrs := codegen.New().Run(tree)
	require.Len(t, instrs, 3)
	require.Equal(t, int64(2), instrs[0].Operands[0])
	require.Equal(t, int64(1), instrs[1].Operands[0])
	require.Equal(t, codegen.Native, instrs[2].OpCode)
	require.Equal(t, 1, instrs[2].Operands[0])
}

func TestGenerateCondLayout(t *testing.T) {
	tree := lowered.NewCond(span.Zero,
		lowered.NewScalarBool(span.Zero, true),
		lowered.NewScalarInt(span.Zero, 1),
		lowered.NewScalarInt(span.Zero, 2),
	)
	instrs := codegen.New().Run(tree)
	require.Equal(t, codegen.LoadBool, instrs[0].OpCode)
	require.Equal(t, codegen.Branch, instrs[1].OpCode)
	require.Equal(t, 2, instrs[1].Operands[0])
	require.Equal(t, codegen.LoadInt, instrs[2].OpCode)
	require.Equal(t, codegen.Jump, instrs[3].OpCode)
	require.Equal(t, 1, instrs[3].Operands[0])
	require.Equal(t, codegen.LoadInt, instrs[4].OpCode)
}
