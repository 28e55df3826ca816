package bytecode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livy-lang/livy/internal/bytecode"
	"github.com/livy-lang/livy/internal/codegen"
)

func TestEncodeLoadIntSlot(t *testing.T) {
	encoded, err := bytecode.Encode([]codegen.Instruction{
		{OpCode: codegen.LoadInt, Operands: []any{int64(-4200)}},
	}, false)
	require.NoError(t, err)

	// format tag (2) + header (32) + separator (3) + empty pools (0) + one 8-byte slot
	require.Len(t, encoded, 2+32+3+8)
	slot := encoded[len(encoded)-8:]
	// -4200 as a 7-byte big-endian two's complement mantissa: 0x10 68 is
	// 4200's magnitude, so the high 5 bytes carry the sign extension.
	require.Equal(t, []byte{0x03, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xEF, 0x98}, slot)
}

func TestEncodeUncompressedTag(t *testing.T) {
	encoded, err := bytecode.Encode([]codegen.Instruction{{OpCode: codegen.LoadUnit}}, false)
	require.NoError(t, err)
	require.Equal(t, byte('C'), encoded[0])
	require.Equal(t, byte(0x00), encoded[1])
}

func TestRunLengthRoundTrips(t *testing.T) {
	original := []byte{1, 1, 1, 2, 2, 3, 3, 3, 3, 3}
	compressed := bytecode.RunLengthEncode(original)
	require.Equal(t, original, bytecode.RunLengthDecode(compressed))
}

func TestRunLengthSplitsLongRuns(t *testing.T) {
	original := make([]byte, 300)
	for i := range original {
		original[i] = 7
	}
	compressed := bytecode.RunLengthEncode(original)
	require.Equal(t, original, bytecode.RunLengthDecode(compressed))
	require.True(t, len(compressed) > 2) // single run > 0xFF must be split into multiple pairs
}

func TestStreamLengthIsMultipleOfEight(t *testing.T) {
	encoded, err := bytecode.Encode([]codegen.Instruction{
		{OpCode: codegen.LoadInt, Operands: []any{int64(1)}},
		{OpCode: codegen.StoreName, Operands: []any{0}},
	}, false)
	require.NoError(t, err)
	// 2 (tag) + 32 (header) + 3 (sep) + 0 (pools) + 16 (two slots) = 53
	require.Equal(t, 53, len(encoded))
}
