package diagnostic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/livy-lang/livy/internal/span"
)

// Format selects one of the three report renderings.
type Format int

const (
	FormatLong Format = iota
	FormatShort
	FormatJSON
)

func ParseFormat(s string) (Format, bool) {
	switch s {
	case "long":
		return FormatLong, true
	case "short":
		return FormatShort, true
	case "json":
		return FormatJSON, true
	}
	return 0, false
}

const wrapWidth = 88

var (
	headerColor = color.New(color.FgRed, color.Bold)
	caretColor  = color.New(color.FgRed, color.Bold)
	ruleColor   = color.New(color.FgHiBlack)
)

// Render produces the Diagnostic's report in the given format. source is
// the original file text, used by long and short to locate and quote the
// offending line; it may be empty for diagnostics with no span (e.g. a
// CMDError encountered before the file was read).
func (d *Diagnostic) Render(f Format, source string) string {
	switch f {
	case FormatJSON:
		return d.renderJSON()
	case FormatShort:
		return d.renderShort(source)
	default:
		return d.renderLong(source)
	}
}

type jsonReport struct {
	RunID   string  `json:"run_id"`
	Kind    string  `json:"kind"`
	Message string  `json:"message"`
	Spans   []jsonSpan `json:"spans,omitempty"`
}

type jsonSpan struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Line  int    `json:"line,omitempty"`
	Col   int    `json:"col,omitempty"`
}

func (d *Diagnostic) renderJSON() string {
	report := jsonReport{RunID: RunID, Kind: d.Kind.String(), Message: d.Error()}
	for _, s := range d.Spans {
		report.Spans = append(report.Spans, jsonSpan{Start: s.Start, End: s.End})
	}
	b, err := json.Marshal(report)
	if err != nil {
		return fmt.Sprintf(`{"kind":"FatalInternal","message":%q}`, err.Error())
	}
	return string(b)
}

func (d *Diagnostic) renderShort(source string) string {
	msg := d.Error()
	if len(d.Spans) == 0 {
		return fmt.Sprintf("%s: %s", d.Kind, msg)
	}
	_, col, _ := lineCol(source, d.Spans[0].Start)
	return fmt.Sprintf("%d | %s: %s", col, d.Kind, msg)
}

func (d *Diagnostic) renderLong(source string) string {
	var b strings.Builder
	rule := strings.Repeat("-", wrapWidth)

	b.WriteString(colorize(ruleColor, !color.NoColor, rule))
	b.WriteByte('\n')
	b.WriteString(colorize(headerColor, !color.NoColor, fmt.Sprintf("error[%s]", d.Kind)))
	b.WriteByte('\n')

	if len(d.Spans) > 0 {
		line, col, text := lineCol(source, d.Spans[0].Start)
		gutter := fmt.Sprintf("%d | ", line)
		b.WriteString(gutter)
		b.WriteString(text)
		b.WriteByte('\n')
		pad := strings.Repeat(" ", len(gutter)+col-1)
		caretWidth := caretLen(d.Spans[0])
		caret := pad + colorize(caretColor, !color.NoColor, strings.Repeat("^", caretWidth))
		b.WriteString(caret)
		b.WriteByte('\n')
	}

	b.WriteString(wrap(d.Error(), wrapWidth))
	b.WriteByte('\n')
	b.WriteString(colorize(ruleColor, !color.NoColor, rule))
	return b.String()
}

func caretLen(s span.Span) int {
	if n := s.Len(); n > 0 {
		return n
	}
	return 1
}

// lineCol resolves a byte offset into a 1-based line, 1-based column, and
// the full text of that line (without its trailing newline).
func lineCol(source string, offset uint32) (line, col int, lineText string) {
	line, col = 1, 1
	lineStart := 0
	for i := 0; i < int(offset) && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			col = 1
			lineStart = i + 1
			continue
		}
		col++
	}
	lineEnd := strings.IndexByte(source[lineStart:], '\n')
	if lineEnd == -1 {
		lineText = source[lineStart:]
	} else {
		lineText = source[lineStart : lineStart+lineEnd]
	}
	return line, col, lineText
}

// wrap greedily reflows s to width-character lines, breaking on spaces.
func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
