package strescape_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livy-lang/livy/internal/strescape"
)

func TestExpandSpecialEscapes(t *testing.T) {
	require.Equal(t, "a\nb\tc", strescape.Expand(`a\nb\tc`))
}

func TestExpandByteEscape(t *testing.T) {
	require.Equal(t, "A", strescape.Expand(`\41`))
}

func TestExpandUnicodeEscape(t *testing.T) {
	require.Equal(t, "eée", strescape.Expand("e\\u00e9e"))
}

func TestExpandLeavesPlainStringsUntouched(t *testing.T) {
	require.Equal(t, "no escapes here", strescape.Expand("no escapes here"))
}

func TestExpandLeavesUnrecognizedEscapeAlone(t *testing.T) {
	require.Equal(t, `\q`, strescape.Expand(`\q`))
}
