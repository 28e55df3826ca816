package lower

import (
	"github.com/livy-lang/livy/internal/lowered"
	"github.com/livy-lang/livy/internal/span"
	"github.com/livy-lang/livy/internal/typed"
)

// decomposeIrrefutable binds value according to an irrefutable pattern:
// one guaranteed to match, the only kind legal in a Define target or
// Function parameter (internal/exhaustive rejects anything else before
// lowering ever runs).
func (s *Simplifier) decomposeIrrefutable(pattern typed.Pattern, value lowered.Node, sp span.Span) lowered.Node {
	switch p := pattern.(type) {
	case *typed.UnitPattern:
		return value
	case *typed.FreeName:
		if p.Value == "_" {
			return value
		}
		return lowered.NewDefine(sp, p.Value, value)
	case *typed.PairPattern:
		first := s.decomposeIrrefutable(p.First, projectFirst(sp, value), sp)
		second := s.decomposeIrrefutable(p.Second, projectSecond(sp, value), sp)
		return lowered.NewBlock(sp, []lowered.Node{first, second})
	case *typed.ListPattern:
		if len(p.Initial) == 0 && p.Rest != nil {
			return s.decomposeIrrefutable(p.Rest, value, sp)
		}
		panic("lower: non-empty-prefix list pattern is refutable, not irrefutable")
	default:
		panic("lower: refutable pattern reached an irrefutable position")
	}
}

func projectFirst(sp span.Span, subject lowered.Node) lowered.Node {
	return lowered.NewApply(sp, lowered.NewName(sp, "first"), subject)
}

func projectSecond(sp span.Span, subject lowered.Node) lowered.Node {
	return lowered.NewApply(sp, lowered.NewName(sp, "second"), subject)
}

func lengthOf(sp span.Span, subject lowered.Node) lowered.Node {
	return lowered.NewApply(sp, lowered.NewName(sp, "length"), subject)
}

func at(sp span.Span, subject lowered.Node, i int) lowered.Node {
	index := lowered.NewApply(sp, lowered.NewName(sp, "at"), subject)
	return lowered.NewApply(sp, index, lowered.NewScalarInt(sp, int64(i)))
}

func drop(sp span.Span, subject lowered.Node, n int) lowered.Node {
	d := lowered.NewApply(sp, lowered.NewName(sp, "drop"), subject)
	return lowered.NewApply(sp, d, lowered.NewScalarInt(sp, int64(n)))
}

// branch pairs a case's match predicate with the bindings (possibly nil)
// it introduces when the predicate holds.
type branch struct {
	pred     lowered.Node
	bindings lowered.Node
}

var trueLit = func(sp span.Span) lowered.Node { return lowered.NewScalarBool(sp, true) }

func andPred(sp span.Span, l, r lowered.Node) lowered.Node {
	if isTrueLiteral(l) {
		return r
	}
	if isTrueLiteral(r) {
		return l
	}
	return lowered.NewCond(sp, l, r, lowered.NewScalarBool(sp, false))
}

func isTrueLiteral(n lowered.Node) bool {
	s, ok := n.(*lowered.Scalar)
	return ok && s.Kind == lowered.ScalarBool && s.Bool
}

// buildBranch computes the (predicate, bindings) pair for one case,
// structurally recursing over the pattern shape.
func (s *Simplifier) buildBranch(sp span.Span, subject lowered.Node, pattern typed.Pattern) branch {
	switch p := pattern.(type) {
	case *typed.UnitPattern:
		return branch{pred: trueLit(sp)}
	case *typed.FreeName:
		if p.Value == "_" {
			return branch{pred: trueLit(sp)}
		}
		return branch{pred: trueLit(sp), bindings: lowered.NewDefine(sp, p.Value, subject)}
	case *typed.PinnedName:
		return branch{pred: lowered.NewNativeOp(sp, lowered.EQUAL, lowered.NewName(sp, p.Value), subject)}
	case *typed.ScalarPattern:
		return branch{pred: scalarPatternPred(sp, subject, p)}
	case *typed.PairPattern:
		first := s.buildBranch(sp, projectFirst(sp, subject), p.First)
		second := s.buildBranch(sp, projectSecond(sp, subject), p.Second)
		return branch{
			pred:     andPred(sp, first.pred, second.pred),
			bindings: mergeBindings(sp, first.bindings, second.bindings),
		}
	case *typed.ListPattern:
		return s.buildListBranch(sp, subject, p)
	default:
		panic("lower: unknown pattern kind in match")
	}
}

func scalarPatternPred(sp span.Span, subject lowered.Node, p *typed.ScalarPattern) lowered.Node {
	// ScalarPattern's own Type()/value fields live on the typed node; the
	// constraint generator stamps the literal payload into base via the
	// same fields as typed.Scalar would carry. Bool patterns compile to a
	// direct (or negated) truth test; everything else is an EQUAL test.
	lit := scalarLiteralOf(sp, p)
	if b, ok := lit.(*lowered.Scalar); ok && b.Kind == lowered.ScalarBool {
		if b.Bool {
			return subject
		}
		return lowered.NewCond(sp, subject, lowered.NewScalarBool(sp, false), lowered.NewScalarBool(sp, true))
	}
	return lowered.NewNativeOp(sp, lowered.EQUAL, subject, lit)
}

func (s *Simplifier) buildListBranch(sp span.Span, subject lowered.Node, p *typed.ListPattern) branch {
	if len(p.Initial) == 0 && p.Rest == nil {
		pred := lowered.NewNativeOp(sp, lowered.EQUAL, lengthOf(sp, subject), lowered.NewScalarInt(sp, 0))
		return branch{pred: pred}
	}
	var pred lowered.Node
	if p.Rest != nil {
		pred = lowered.NewNativeOp(sp, lowered.GREATER, lengthOf(sp, subject), lowered.NewScalarInt(sp, int64(len(p.Initial)-1)))
	} else {
		pred = lowered.NewNativeOp(sp, lowered.EQUAL, lengthOf(sp, subject), lowered.NewScalarInt(sp, int64(len(p.Initial))))
	}
	var bindings lowered.Node
	for i, elemPattern := range p.Initial {
		b := s.buildBranch(sp, at(sp, subject, i), elemPattern)
		pred = andPred(sp, pred, b.pred)
		bindings = mergeBindings(sp, bindings, b.bindings)
	}
	if p.Rest != nil {
		restBranch := s.buildBranch(sp, drop(sp, subject, len(p.Initial)), p.Rest)
		pred = andPred(sp, pred, restBranch.pred)
		bindings = mergeBindings(sp, bindings, restBranch.bindings)
	}
	return branch{pred: pred, bindings: bindings}
}

func mergeBindings(sp span.Span, a, b lowered.Node) lowered.Node {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return lowered.NewBlock(sp, []lowered.Node{a, b})
}

// toDecisionTree folds every case's (predicate, bindings, body) triple
// into a right-associated Cond cascade.
func (s *Simplifier) toDecisionTree(sp span.Span, subject lowered.Node, cases []typed.MatchCase) lowered.Node {
	results := make([]lowered.Node, len(cases))
	preds := make([]lowered.Node, len(cases))
	for i, c := range cases {
		b := s.buildBranch(sp, subject, c.Pattern)
		body := s.Run(c.Body)
		if b.bindings != nil {
			body = lowered.NewBlock(sp, []lowered.Node{b.bindings, body})
		}
		results[i] = body
		preds[i] = b.pred
	}
	acc := results[len(results)-1]
	for i := len(cases) - 2; i >= 0; i-- {
		if isTrueLiteral(preds[i]) {
			acc = results[i]
			continue
		}
		acc = lowered.NewCond(sp, preds[i], results[i], acc)
	}
	return acc
}

func (s *Simplifier) VisitMatch(n *typed.Match) any {
	subject := s.Run(n.Subject)
	return s.toDecisionTree(n.Sp, subject, n.Cases)
}

// scalarLiteralOf reconstructs the lowered literal a ScalarPattern
// matches against.
func scalarLiteralOf(sp span.Span, p *typed.ScalarPattern) lowered.Node {
	switch p.Kind {
	case typed.ScalarInt:
		return lowered.NewScalarInt(sp, p.Int)
	case typed.ScalarFloat:
		return lowered.NewScalarFloat(sp, p.Float)
	case typed.ScalarString:
		return lowered.NewScalarString(sp, p.String)
	default:
		return lowered.NewScalarBool(sp, p.Bool)
	}
}
