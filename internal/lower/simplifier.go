// Package lower implements the simplifier: the pass that turns a typed
// AST into the lowered IR, replacing trait/impl (already rejected earlier
// in the pipeline), pattern matching, and operator sugar with NativeOp
// nodes, Cond cascades, and plain function application.
package lower

import (
	"github.com/livy-lang/livy/internal/idgen"
	"github.com/livy-lang/livy/internal/lowered"
	"github.com/livy-lang/livy/internal/span"
	"github.com/livy-lang/livy/internal/typed"
)

// Simplifier walks a typed tree bottom-up, producing lowered.Node.
type Simplifier struct {
	ids *idgen.Generator
}

// New builds a Simplifier. ids mints the fresh parameter names needed to
// decompose non-trivial function-parameter patterns.
func New(ids *idgen.Generator) *Simplifier {
	return &Simplifier{ids: ids}
}

// Run lowers a single typed node.
func (s *Simplifier) Run(n typed.Node) lowered.Node {
	return n.Accept(s).(lowered.Node)
}

func (s *Simplifier) VisitApply(n *typed.Apply) any {
	if op, operand, ok := asUnary(n); ok {
		return lowered.NewNativeOp(n.Sp, op, s.Run(operand), nil)
	}
	if op, left, right, ok := asBinary(n); ok {
		return s.lowerBinary(n.Sp, op, left, right)
	}
	if name, arg, ok := asLogical(n); ok {
		return s.lowerLogical(n.Sp, name, arg)
	}
	return lowered.NewApply(n.Sp, s.Run(n.Func), s.Run(n.Arg))
}

// lowerBinary handles both the eleven NativeOp primitives directly and the
// comparison sugar (>=, <=, /=) that desugars to a Cond built from them.
func (s *Simplifier) lowerBinary(sp span.Span, name string, left, right typed.Node) lowered.Node {
	l, r := s.Run(left), s.Run(right)
	switch name {
	case ">=":
		return lowered.NewCond(sp, lowered.NewNativeOp(sp, lowered.GREATER, l, r),
			lowered.NewScalarBool(sp, true), lowered.NewNativeOp(sp, lowered.EQUAL, l, r))
	case "<=":
		return lowered.NewCond(sp, lowered.NewNativeOp(sp, lowered.LESS, l, r),
			lowered.NewScalarBool(sp, true), lowered.NewNativeOp(sp, lowered.EQUAL, l, r))
	case "/=":
		return lowered.NewCond(sp, lowered.NewNativeOp(sp, lowered.EQUAL, l, r),
			lowered.NewScalarBool(sp, false), lowered.NewScalarBool(sp, true))
	}
	op := lowered.OperatorSymbols[name]
	return lowered.NewNativeOp(sp, op, l, r)
}

// lowerLogical desugars "and"/"or" to short-circuiting Conds and "not" to
// a boolean flip, none of which are NativeOp primitives.
func (s *Simplifier) lowerLogical(sp span.Span, name string, rawArgs []typed.Node) lowered.Node {
	switch name {
	case "and":
		l, r := s.Run(rawArgs[0]), s.Run(rawArgs[1])
		return lowered.NewCond(sp, l, r, lowered.NewScalarBool(sp, false))
	case "or":
		l, r := s.Run(rawArgs[0]), s.Run(rawArgs[1])
		return lowered.NewCond(sp, l, lowered.NewScalarBool(sp, true), r)
	case "not":
		p := s.Run(rawArgs[0])
		return lowered.NewCond(sp, p, lowered.NewScalarBool(sp, false), lowered.NewScalarBool(sp, true))
	}
	panic("lower: unreachable logical operator " + name)
}

func (s *Simplifier) VisitBlock(n *typed.Block) any {
	body := make([]lowered.Node, len(n.Body))
	for i, c := range n.Body {
		body[i] = s.Run(c)
	}
	return lowered.NewBlock(n.Sp, body)
}

func (s *Simplifier) VisitCond(n *typed.Cond) any {
	return lowered.NewCond(n.Sp, s.Run(n.Pred), s.Run(n.Cons), s.Run(n.Alt))
}

func (s *Simplifier) VisitDefine(n *typed.Define) any {
	value := s.Run(n.Value)
	decomposed := s.decomposeIrrefutable(n.Target, value, n.Sp)
	if n.Body == nil {
		return decomposed
	}
	body := s.Run(n.Body)
	return lowered.NewBlock(n.Sp, []lowered.Node{decomposed, body})
}

func (s *Simplifier) VisitFunction(n *typed.Function) any {
	if free, ok := n.Param.(*typed.FreeName); ok {
		name := free.Value
		if name == "" {
			name = "_"
		}
		return lowered.NewFunction(n.Sp, name, s.Run(n.Body))
	}
	// A non-trivial parameter pattern: bind a synthetic name and
	// decompose it as the first thing the function body does.
	paramName := s.ids.Name("p")
	decomposed := s.decomposeIrrefutable(n.Param, lowered.NewName(n.Sp, paramName), n.Sp)
	body := lowered.NewBlock(n.Sp, []lowered.Node{decomposed, s.Run(n.Body)})
	return lowered.NewFunction(n.Sp, paramName, body)
}

func (s *Simplifier) VisitImpl(n *typed.Impl) any {
	panic("lower: impl should have been rejected before lowering")
}

func (s *Simplifier) VisitList(n *typed.List) any {
	elems := make([]lowered.Node, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = s.Run(e)
	}
	return lowered.NewList(n.Sp, elems)
}

func (s *Simplifier) VisitPair(n *typed.Pair) any {
	return lowered.NewPair(n.Sp, s.Run(n.First), s.Run(n.Second))
}

func (s *Simplifier) VisitName(n *typed.Name) any {
	return lowered.NewName(n.Sp, n.Value)
}

func (s *Simplifier) VisitScalar(n *typed.Scalar) any {
	switch n.Kind {
	case typed.ScalarInt:
		return lowered.NewScalarInt(n.Sp, n.Int)
	case typed.ScalarFloat:
		return lowered.NewScalarFloat(n.Sp, n.Float)
	case typed.ScalarString:
		return lowered.NewScalarString(n.Sp, n.String)
	case typed.ScalarBool:
		return lowered.NewScalarBool(n.Sp, n.Bool)
	default:
		return lowered.NewUnit(n.Sp)
	}
}

func (s *Simplifier) VisitTrait(n *typed.Trait) any {
	panic("lower: trait should have been rejected before lowering")
}

func (s *Simplifier) VisitUnit(n *typed.Unit) any {
	return lowered.NewUnit(n.Sp)
}

var _ typed.Visitor = (*Simplifier)(nil)
