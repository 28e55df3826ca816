package diagnostic_test

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/livy-lang/livy/internal/diagnostic"
	"github.com/livy-lang/livy/internal/span"
)

func TestRenderShortIncludesColumn(t *testing.T) {
	source := "let x = y"
	d := diagnostic.NewUndefinedName(span.Span{Start: 8, End: 9}, "y", "")
	out := d.Render(diagnostic.FormatShort, source)
	require.Contains(t, out, "9 |")
	require.Contains(t, out, `"y" is not defined here`)
}

func TestRenderLongQuotesSourceLineWithCaret(t *testing.T) {
	color.NoColor = true
	source := "let x = y\nlet z = 1"
	d := diagnostic.NewUndefinedName(span.Span{Start: 8, End: 9}, "y", "x")
	out := d.Render(diagnostic.FormatLong, source)
	lines := strings.Split(out, "\n")
	require.Contains(t, lines[2], "let x = y")
	require.True(t, strings.HasSuffix(lines[3], "^"))
	require.Contains(t, out, `did you mean "x"?`)
}

func TestRenderJSONRoundTripsKindAndMessage(t *testing.T) {
	d := diagnostic.NewNumberOverflow(span.Span{Start: 0, End: 3})
	out := d.Render(diagnostic.FormatJSON, "123456789012345678901")
	require.Contains(t, out, `"kind":"NumberOverflow"`)
	require.Contains(t, out, `"run_id"`)
}

func TestParseFormatRejectsUnknown(t *testing.T) {
	_, ok := diagnostic.ParseFormat("xml")
	require.False(t, ok)
}
