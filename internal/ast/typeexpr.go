package ast

import "github.com/livy-lang/livy/internal/span"

// TypeExpr is a type written out in source, e.g. in an Annotation or a
// Trait/Impl head. It is distinct from internal/types.Type, which is the
// inferred representation the type checker works with.
type TypeExpr interface {
	Span() span.Span
	AcceptType(v TypeVisitor) any
}

// TypeVisitor dispatches over the three surface type-expression kinds.
type TypeVisitor interface {
	VisitTypeName(*TypeName) any
	VisitTypeApply(*TypeApply) any
	VisitTypeVar(*TypeVar) any
}

// TypeName is a nominal type reference: `Int`, `String`, `List`.
type TypeName struct {
	Sp    span.Span
	Value string
}

func (t *TypeName) Span() span.Span                 { return t.Sp }
func (t *TypeName) AcceptType(v TypeVisitor) any     { return v.VisitTypeName(t) }

// TypeApply applies one type to another: `List[Int]`, or curried as
// `(->) A B` for function types.
type TypeApply struct {
	Sp   span.Span
	Func TypeExpr
	Arg  TypeExpr
}

func (t *TypeApply) Span() span.Span             { return t.Sp }
func (t *TypeApply) AcceptType(v TypeVisitor) any { return v.VisitTypeApply(t) }

// TypeVar is a lowercase type variable in an explicit annotation, e.g. the
// `a` in `id :: a -> a`.
type TypeVar struct {
	Sp    span.Span
	Value string
}

func (t *TypeVar) Span() span.Span             { return t.Sp }
func (t *TypeVar) AcceptType(v TypeVisitor) any { return v.VisitTypeVar(t) }
