package srcenc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livy-lang/livy/internal/srcenc"
)

func TestDecodeUTF8Passthrough(t *testing.T) {
	text, err := srcenc.Decode([]byte("let x = 1"), "UTF-8")
	require.NoError(t, err)
	require.Equal(t, "let x = 1", text)
}

func TestDecodeDefaultsToUTF8WhenNameEmpty(t *testing.T) {
	text, err := srcenc.Decode([]byte("let x = 1"), "")
	require.NoError(t, err)
	require.Equal(t, "let x = 1", text)
}

func TestDecodeUnknownEncodingNameFallsBackToHostDefault(t *testing.T) {
	text, err := srcenc.Decode([]byte("let x = 1"), "not-a-real-encoding")
	require.NoError(t, err)
	require.Equal(t, "let x = 1", text)
}

func TestDecodeLatin1(t *testing.T) {
	// 0xE9 is e-acute in ISO-8859-1, invalid as a standalone UTF-8 byte.
	text, err := srcenc.Decode([]byte{'c', 0xE9}, "ISO-8859-1")
	require.NoError(t, err)
	require.Equal(t, "cé", text)
}
