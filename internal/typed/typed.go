// Package typed mirrors internal/ast but with every node carrying its
// inferred internal/types.Type, the tree the constraint generator and
// substitutor produce.
package typed

import (
	"github.com/livy-lang/livy/internal/span"
	"github.com/livy-lang/livy/internal/types"
)

// Node is any typed-tier expression.
type Node interface {
	Span() span.Span
	Type() types.Type
	Accept(v Visitor) any
}

// Visitor dispatches over the typed-tier node kinds. There is no
// VisitPattern/VisitAnnotation/VisitType here: annotations are consumed
// during constraint generation and patterns carry their type inline on
// each binding occurrence instead of as a separate visited node.
type Visitor interface {
	VisitApply(*Apply) any
	VisitBlock(*Block) any
	VisitCond(*Cond) any
	VisitDefine(*Define) any
	VisitFunction(*Function) any
	VisitImpl(*Impl) any
	VisitList(*List) any
	VisitMatch(*Match) any
	VisitPair(*Pair) any
	VisitName(*Name) any
	VisitScalar(*Scalar) any
	VisitTrait(*Trait) any
	VisitUnit(*Unit) any
}

type base struct {
	Sp span.Span
	Ty types.Type
}

func (b *base) Span() span.Span  { return b.Sp }
func (b *base) Type() types.Type { return b.Ty }

type Apply struct {
	base
	Func Node
	Arg  Node
}

func (n *Apply) Accept(v Visitor) any { return v.VisitApply(n) }

type Block struct {
	base
	Body []Node
}

func (n *Block) Accept(v Visitor) any { return v.VisitBlock(n) }

type Cond struct {
	base
	Pred, Cons, Alt Node
}

func (n *Cond) Accept(v Visitor) any { return v.VisitCond(n) }

// Pattern mirrors ast.Pattern but every binding occurrence now carries its
// inferred Type, which is all the checker needs downstream (lowering
// decomposes these same typed patterns).
type Pattern interface {
	Span() span.Span
	Type() types.Type
}

type patternBase struct {
	Sp span.Span
	Ty types.Type
}

func (p *patternBase) Span() span.Span  { return p.Sp }
func (p *patternBase) Type() types.Type { return p.Ty }

type FreeName struct {
	patternBase
	Value string
}

type PinnedName struct {
	patternBase
	Value string
}

type ScalarPattern struct {
	patternBase
	Kind   ScalarKind
	Int    int64
	Float  float64
	String string
	Bool   bool
}

type PairPattern struct {
	patternBase
	First, Second Pattern
}

type ListPattern struct {
	patternBase
	Initial []Pattern
	Rest    Pattern
}

type UnitPattern struct {
	patternBase
}

type Define struct {
	base
	Target Pattern
	Value  Node
	Body   Node
}

func (n *Define) Accept(v Visitor) any { return v.VisitDefine(n) }

type Function struct {
	base
	Param Pattern
	Body  Node
}

func (n *Function) Accept(v Visitor) any { return v.VisitFunction(n) }

type Impl struct {
	base
	Trait   string
	Methods []*Define
}

func (n *Impl) Accept(v Visitor) any { return v.VisitImpl(n) }

type List struct {
	base
	Elements []Node
}

func (n *List) Accept(v Visitor) any { return v.VisitList(n) }

type MatchCase struct {
	Pattern Pattern
	Body    Node
}

type Match struct {
	base
	Subject Node
	Cases   []MatchCase
}

func (n *Match) Accept(v Visitor) any { return v.VisitMatch(n) }

type Pair struct {
	base
	First, Second Node
}

func (n *Pair) Accept(v Visitor) any { return v.VisitPair(n) }

type Name struct {
	base
	Value string
}

func (n *Name) Accept(v Visitor) any { return v.VisitName(n) }

type ScalarKind int

const (
	ScalarInt ScalarKind = iota
	ScalarFloat
	ScalarString
	ScalarBool
	ScalarUnit
)

type Scalar struct {
	base
	Kind   ScalarKind
	Int    int64
	Float  float64
	String string
	Bool   bool
}

func (n *Scalar) Accept(v Visitor) any { return v.VisitScalar(n) }

type TraitMethod struct {
	Name string
	Type types.Type
}

type Trait struct {
	base
	Name    string
	Methods []TraitMethod
}

func (n *Trait) Accept(v Visitor) any { return v.VisitTrait(n) }

type Unit struct {
	base
}

func (n *Unit) Accept(v Visitor) any { return v.VisitUnit(n) }

// New* helpers build a node stamping its base fields, cutting down on the
// boilerplate every visit_* method in the constraint generator would
// otherwise repeat.

func NewBase(sp span.Span, ty types.Type) base { return base{Sp: sp, Ty: ty} }

func newPatternBase(sp span.Span, ty types.Type) patternBase {
	return patternBase{Sp: sp, Ty: ty}
}

func NewApply(sp span.Span, ty types.Type, fn, arg Node) *Apply {
	return &Apply{base: NewBase(sp, ty), Func: fn, Arg: arg}
}

func NewBlock(sp span.Span, ty types.Type, body []Node) *Block {
	return &Block{base: NewBase(sp, ty), Body: body}
}

func NewCond(sp span.Span, ty types.Type, pred, cons, alt Node) *Cond {
	return &Cond{base: NewBase(sp, ty), Pred: pred, Cons: cons, Alt: alt}
}

func NewDefine(sp span.Span, ty types.Type, target Pattern, value, body Node) *Define {
	return &Define{base: NewBase(sp, ty), Target: target, Value: value, Body: body}
}

func NewFunction(sp span.Span, ty types.Type, param Pattern, body Node) *Function {
	return &Function{base: NewBase(sp, ty), Param: param, Body: body}
}

func NewImpl(sp span.Span, ty types.Type, trait string, methods []*Define) *Impl {
	return &Impl{base: NewBase(sp, ty), Trait: trait, Methods: methods}
}

func NewList(sp span.Span, ty types.Type, elements []Node) *List {
	return &List{base: NewBase(sp, ty), Elements: elements}
}

func NewMatch(sp span.Span, ty types.Type, subject Node, cases []MatchCase) *Match {
	return &Match{base: NewBase(sp, ty), Subject: subject, Cases: cases}
}

func NewPair(sp span.Span, ty types.Type, first, second Node) *Pair {
	return &Pair{base: NewBase(sp, ty), First: first, Second: second}
}

func NewName(sp span.Span, ty types.Type, value string) *Name {
	return &Name{base: NewBase(sp, ty), Value: value}
}

func NewScalarInt(sp span.Span, ty types.Type, v int64) *Scalar {
	return &Scalar{base: NewBase(sp, ty), Kind: ScalarInt, Int: v}
}

func NewScalarFloat(sp span.Span, ty types.Type, v float64) *Scalar {
	return &Scalar{base: NewBase(sp, ty), Kind: ScalarFloat, Float: v}
}

func NewScalarString(sp span.Span, ty types.Type, v string) *Scalar {
	return &Scalar{base: NewBase(sp, ty), Kind: ScalarString, String: v}
}

func NewScalarBool(sp span.Span, ty types.Type, v bool) *Scalar {
	return &Scalar{base: NewBase(sp, ty), Kind: ScalarBool, Bool: v}
}

func NewTrait(sp span.Span, ty types.Type, name string, methods []TraitMethod) *Trait {
	return &Trait{base: NewBase(sp, ty), Name: name, Methods: methods}
}

func NewUnit(sp span.Span, ty types.Type) *Unit { return &Unit{base: NewBase(sp, ty)} }

func NewFreeName(sp span.Span, ty types.Type, value string) *FreeName {
	return &FreeName{patternBase: newPatternBase(sp, ty), Value: value}
}

func NewPinnedName(sp span.Span, ty types.Type, value string) *PinnedName {
	return &PinnedName{patternBase: newPatternBase(sp, ty), Value: value}
}

func NewScalarPatternInt(sp span.Span, ty types.Type, v int64) *ScalarPattern {
	return &ScalarPattern{patternBase: newPatternBase(sp, ty), Kind: ScalarInt, Int: v}
}

func NewScalarPatternFloat(sp span.Span, ty types.Type, v float64) *ScalarPattern {
	return &ScalarPattern{patternBase: newPatternBase(sp, ty), Kind: ScalarFloat, Float: v}
}

func NewScalarPatternString(sp span.Span, ty types.Type, v string) *ScalarPattern {
	return &ScalarPattern{patternBase: newPatternBase(sp, ty), Kind: ScalarString, String: v}
}

func NewScalarPatternBool(sp span.Span, ty types.Type, v bool) *ScalarPattern {
	return &ScalarPattern{patternBase: newPatternBase(sp, ty), Kind: ScalarBool, Bool: v}
}

func NewPairPattern(sp span.Span, ty types.Type, first, second Pattern) *PairPattern {
	return &PairPattern{patternBase: newPatternBase(sp, ty), First: first, Second: second}
}

func NewListPattern(sp span.Span, ty types.Type, initial []Pattern, rest Pattern) *ListPattern {
	return &ListPattern{patternBase: newPatternBase(sp, ty), Initial: initial, Rest: rest}
}

func NewUnitPattern(sp span.Span, ty types.Type) *UnitPattern {
	return &UnitPattern{patternBase: newPatternBase(sp, ty)}
}
