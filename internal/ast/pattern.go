package ast

import "github.com/livy-lang/livy/internal/span"

// Pattern is the left-hand side of a Define, Function parameter, or Match
// case.
type Pattern interface {
	Span() span.Span
	AcceptPattern(v PatternVisitor) any
}

// PatternVisitor dispatches over the six pattern kinds.
type PatternVisitor interface {
	VisitFreeName(*FreeName) any
	VisitPinnedName(*PinnedName) any
	VisitScalarPattern(*ScalarPattern) any
	VisitPairPattern(*PairPattern) any
	VisitListPattern(*ListPattern) any
	VisitUnitPattern(*UnitPattern) any
}

// FreeName binds the matched value to a fresh name. The name "_" binds
// nothing.
type FreeName struct {
	Sp    span.Span
	Value string
}

func (p *FreeName) Span() span.Span                    { return p.Sp }
func (p *FreeName) AcceptPattern(v PatternVisitor) any { return v.VisitFreeName(p) }

// PinnedName requires the matched value to equal the current binding of
// an already-defined name (written `^name` at the surface).
type PinnedName struct {
	Sp    span.Span
	Value string
}

func (p *PinnedName) Span() span.Span                    { return p.Sp }
func (p *PinnedName) AcceptPattern(v PatternVisitor) any { return v.VisitPinnedName(p) }

// ScalarPattern requires the matched value to equal a literal.
type ScalarPattern struct {
	Sp     span.Span
	Kind   ScalarKind
	Int    int64
	Float  float64
	String string
	Bool   bool
}

func (p *ScalarPattern) Span() span.Span                    { return p.Sp }
func (p *ScalarPattern) AcceptPattern(v PatternVisitor) any { return v.VisitScalarPattern(p) }

// PairPattern destructures a Pair.
type PairPattern struct {
	Sp     span.Span
	First  Pattern
	Second Pattern
}

func (p *PairPattern) Span() span.Span                    { return p.Sp }
func (p *PairPattern) AcceptPattern(v PatternVisitor) any { return v.VisitPairPattern(p) }

// ListPattern destructures a List: Initial matches a fixed-length prefix,
// and Rest (if non-nil) binds the remaining tail.
type ListPattern struct {
	Sp      span.Span
	Initial []Pattern
	Rest    Pattern
}

func (p *ListPattern) Span() span.Span                    { return p.Sp }
func (p *ListPattern) AcceptPattern(v PatternVisitor) any { return v.VisitListPattern(p) }

// UnitPattern matches only `()`. It binds nothing.
type UnitPattern struct {
	Sp span.Span
}

func (p *UnitPattern) Span() span.Span                    { return p.Sp }
func (p *UnitPattern) AcceptPattern(v PatternVisitor) any { return v.VisitUnitPattern(p) }
