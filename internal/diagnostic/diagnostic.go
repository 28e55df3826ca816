// Package diagnostic implements the compiler's error taxonomy and its three
// wire/human report formats (json, short, long).
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/livy-lang/livy/internal/span"
)

// Kind identifies which member of the error taxonomy a Diagnostic is.
type Kind int

const (
	BadEncoding Kind = iota
	IllegalChar
	UnexpectedToken
	UnexpectedEOF
	UndefinedName
	TypeMismatch
	CircularType
	RefutablePattern
	NumberOverflow
	CMDError
	FatalInternal
)

func (k Kind) String() string {
	switch k {
	case BadEncoding:
		return "BadEncoding"
	case IllegalChar:
		return "IllegalChar"
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case UndefinedName:
		return "UndefinedName"
	case TypeMismatch:
		return "TypeMismatch"
	case CircularType:
		return "CircularType"
	case RefutablePattern:
		return "RefutablePattern"
	case NumberOverflow:
		return "NumberOverflow"
	case CMDError:
		return "CMDError"
	case FatalInternal:
		return "FatalInternal"
	}
	return "Unknown"
}

// CMDReason narrows a CMDError to its specific cause.
type CMDReason int

const (
	NotFound CMDReason = iota
	IsFolder
	NoPermission
)

// PatternPosition records where a refutable pattern was found.
type PatternPosition int

const (
	PositionCase PatternPosition = iota
	PositionParameter
	PositionTarget
)

func (p PatternPosition) String() string {
	switch p {
	case PositionParameter:
		return "function parameter"
	case PositionTarget:
		return "definition target"
	default:
		return "match case"
	}
}

// Diagnostic is a single compiler error. Exactly one Kind-specific field
// group is populated, matching the Kind.
type Diagnostic struct {
	Kind    Kind
	Spans   []span.Span
	Message string

	// Kind-specific detail, used to build the long/short/json bodies.
	Found     string // UnexpectedToken
	Expected  []string
	Char      string            // IllegalChar
	Name      string            // UndefinedName
	Suggest   string            // UndefinedName "did you mean"
	Left      string            // TypeMismatch / CircularType
	Right     string            // TypeMismatch / CircularType
	Position  PatternPosition   // RefutablePattern
	Pattern   string            // RefutablePattern
	CMDReason CMDReason         // CMDError
	Path      string            // CMDError
	Cause     error             // FatalInternal wrapped cause
}

func (d *Diagnostic) Error() string {
	if d.Message != "" {
		return d.Message
	}
	return d.buildMessage()
}

func (d *Diagnostic) buildMessage() string {
	switch d.Kind {
	case BadEncoding:
		return fmt.Sprintf("could not decode the source file using %q", d.Name)
	case IllegalChar:
		if d.Char == `"` {
			return "found an unterminated string literal"
		}
		return fmt.Sprintf("found an illegal character %q", d.Char)
	case UnexpectedToken:
		return fmt.Sprintf("expected %s but found %s", joinQuoted(d.Expected), d.Found)
	case UnexpectedEOF:
		if len(d.Expected) > 0 {
			return fmt.Sprintf("expected %s but the source ended", joinQuoted(d.Expected))
		}
		return "the source ended unexpectedly"
	case UndefinedName:
		if d.Suggest != "" {
			return fmt.Sprintf("%q is not defined here, did you mean %q?", d.Name, d.Suggest)
		}
		return fmt.Sprintf("%q is not defined here", d.Name)
	case TypeMismatch:
		return fmt.Sprintf("expected type %s but found %s", d.Left, d.Right)
	case CircularType:
		return fmt.Sprintf("the type %s occurs inside %s, which would require an infinite type", d.Left, d.Right)
	case RefutablePattern:
		return fmt.Sprintf("the pattern %s in a %s must always match, but it can fail", d.Pattern, d.Position)
	case NumberOverflow:
		return "this numeral is too large to represent"
	case CMDError:
		switch d.CMDReason {
		case IsFolder:
			return fmt.Sprintf("%s is a directory, not a source file", d.Path)
		case NoPermission:
			return fmt.Sprintf("permission denied while accessing %s", d.Path)
		default:
			return fmt.Sprintf("%s could not be found", d.Path)
		}
	case FatalInternal:
		if d.Cause != nil {
			return fmt.Sprintf("an internal error occurred: %v", d.Cause)
		}
		return "an internal error occurred"
	}
	return "unknown error"
}

func joinQuoted(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	switch len(quoted) {
	case 0:
		return "something else"
	case 1:
		return quoted[0]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
	}
}

// Constructors, one per diagnostic kind.

func NewIllegalChar(s span.Span, char string) *Diagnostic {
	return &Diagnostic{Kind: IllegalChar, Spans: []span.Span{s}, Char: char}
}

func NewUnexpectedToken(s span.Span, found string, expected ...string) *Diagnostic {
	return &Diagnostic{Kind: UnexpectedToken, Spans: []span.Span{s}, Found: found, Expected: expected}
}

func NewUnexpectedEOF(expected ...string) *Diagnostic {
	return &Diagnostic{Kind: UnexpectedEOF, Expected: expected}
}

func NewUndefinedName(s span.Span, name, suggest string) *Diagnostic {
	return &Diagnostic{Kind: UndefinedName, Spans: []span.Span{s}, Name: name, Suggest: suggest}
}

func NewTypeMismatch(left, right span.Span, leftType, rightType string) *Diagnostic {
	return &Diagnostic{Kind: TypeMismatch, Spans: []span.Span{left, right}, Left: leftType, Right: rightType}
}

func NewCircularType(s span.Span, inner, outer string) *Diagnostic {
	return &Diagnostic{Kind: CircularType, Spans: []span.Span{s}, Left: inner, Right: outer}
}

func NewRefutablePattern(pos PatternPosition, s span.Span, pattern string) *Diagnostic {
	return &Diagnostic{Kind: RefutablePattern, Spans: []span.Span{s}, Position: pos, Pattern: pattern}
}

// EmptyMatch builds the RefutablePattern diagnostic for a zero-case match
// expression whose subject type is reachable (not Never).
func EmptyMatch(s span.Span) *Diagnostic {
	return &Diagnostic{Kind: RefutablePattern, Spans: []span.Span{s}, Position: PositionCase, Pattern: "<empty match>"}
}

func NewNumberOverflow(s span.Span) *Diagnostic {
	return &Diagnostic{Kind: NumberOverflow, Spans: []span.Span{s}}
}

func NewCMDError(reason CMDReason, path string) *Diagnostic {
	return &Diagnostic{Kind: CMDError, CMDReason: reason, Path: path}
}

func NewFatalInternal(cause error) *Diagnostic {
	return &Diagnostic{Kind: FatalInternal, Cause: cause}
}

func NewBadEncoding(encodingName string) *Diagnostic {
	return &Diagnostic{Kind: BadEncoding, Name: encodingName}
}

// RunID is a process-wide correlation id, generated once, attached to every
// JSON report so batch tooling can correlate a run with its diagnostics.
var RunID = uuid.NewString()

func colorize(c *color.Color, useColor bool, s string) string {
	if !useColor {
		return s
	}
	return c.Sprint(s)
}
