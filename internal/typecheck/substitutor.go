package typecheck

import (
	"github.com/livy-lang/livy/internal/typed"
	"github.com/livy-lang/livy/internal/types"
)

// Substitutor replaces every type variable in a generator's typed tree
// with what the unifier resolved it to. Ported from the reference's
// Substitutor, widened to walk the richer pattern grammar alongside the
// expression tree.
type Substitutor struct {
	sub types.Substitution
}

// NewSubstitutor builds a Substitutor that applies sub.
func NewSubstitutor(sub types.Substitution) *Substitutor {
	return &Substitutor{sub: sub}
}

// Run substitutes every type in tree.
func (s *Substitutor) Run(tree typed.Node) typed.Node {
	return tree.Accept(s).(typed.Node)
}

func (s *Substitutor) run(n typed.Node) typed.Node { return n.Accept(s).(typed.Node) }

func (s *Substitutor) ty(t types.Type) types.Type { return types.Substitute(s.sub, t) }

func (s *Substitutor) pattern(p typed.Pattern) typed.Pattern {
	switch n := p.(type) {
	case *typed.FreeName:
		return typed.NewFreeName(n.Sp, s.ty(n.Ty), n.Value)
	case *typed.PinnedName:
		return typed.NewPinnedName(n.Sp, s.ty(n.Ty), n.Value)
	case *typed.ScalarPattern:
		clone := *n
		clone.Ty = s.ty(n.Ty)
		return &clone
	case *typed.PairPattern:
		return typed.NewPairPattern(n.Sp, s.ty(n.Ty), s.pattern(n.First), s.pattern(n.Second))
	case *typed.ListPattern:
		initial := make([]typed.Pattern, len(n.Initial))
		for i, elem := range n.Initial {
			initial[i] = s.pattern(elem)
		}
		var rest typed.Pattern
		if n.Rest != nil {
			rest = s.pattern(n.Rest)
		}
		return typed.NewListPattern(n.Sp, s.ty(n.Ty), initial, rest)
	case *typed.UnitPattern:
		return typed.NewUnitPattern(n.Sp, s.ty(n.Ty))
	default:
		return p
	}
}

func (s *Substitutor) VisitApply(n *typed.Apply) any {
	return typed.NewApply(n.Sp, s.ty(n.Ty), s.run(n.Func), s.run(n.Arg))
}

func (s *Substitutor) VisitBlock(n *typed.Block) any {
	body := make([]typed.Node, len(n.Body))
	for i, c := range n.Body {
		body[i] = s.run(c)
	}
	return typed.NewBlock(n.Sp, s.ty(n.Ty), body)
}

func (s *Substitutor) VisitCond(n *typed.Cond) any {
	return typed.NewCond(n.Sp, s.ty(n.Ty), s.run(n.Pred), s.run(n.Cons), s.run(n.Alt))
}

// VisitDefine mirrors the reference Substitutor's visit_define: a simple
// name target is re-generalised over the now-substituted value type
// (a variable the generator quantified over may have resolved to a
// concrete type by the time unification finished), rather than merely
// substituting the Scheme the generator built before solving. A
// destructured target (this port's wider pattern grammar) has no
// generation-time generalisation to redo, so it's just substituted.
func (s *Substitutor) VisitDefine(n *typed.Define) any {
	value := s.run(n.Value)

	var target typed.Pattern
	if simple, ok := n.Target.(*typed.FreeName); ok {
		target = typed.NewFreeName(simple.Sp, generalise(value.Type()), simple.Value)
	} else {
		target = s.pattern(n.Target)
	}

	var body typed.Node
	resultType := target.Type()
	if n.Body != nil {
		body = s.run(n.Body)
		resultType = body.Type()
	}
	return typed.NewDefine(n.Sp, resultType, target, value, body)
}

func (s *Substitutor) VisitFunction(n *typed.Function) any {
	return typed.NewFunction(n.Sp, s.ty(n.Ty), s.pattern(n.Param), s.run(n.Body))
}

func (s *Substitutor) VisitImpl(n *typed.Impl) any {
	methods := make([]*typed.Define, len(n.Methods))
	for i, m := range n.Methods {
		methods[i] = s.run(m).(*typed.Define)
	}
	return typed.NewImpl(n.Sp, s.ty(n.Ty), n.Trait, methods)
}

func (s *Substitutor) VisitList(n *typed.List) any {
	elements := make([]typed.Node, len(n.Elements))
	for i, e := range n.Elements {
		elements[i] = s.run(e)
	}
	return typed.NewList(n.Sp, s.ty(n.Ty), elements)
}

func (s *Substitutor) VisitMatch(n *typed.Match) any {
	subject := s.run(n.Subject)
	cases := make([]typed.MatchCase, len(n.Cases))
	for i, c := range n.Cases {
		cases[i] = typed.MatchCase{Pattern: s.pattern(c.Pattern), Body: s.run(c.Body)}
	}
	return typed.NewMatch(n.Sp, s.ty(n.Ty), subject, cases)
}

func (s *Substitutor) VisitPair(n *typed.Pair) any {
	return typed.NewPair(n.Sp, s.ty(n.Ty), s.run(n.First), s.run(n.Second))
}

func (s *Substitutor) VisitName(n *typed.Name) any {
	return typed.NewName(n.Sp, s.ty(n.Ty), n.Value)
}

func (s *Substitutor) VisitScalar(n *typed.Scalar) any { return n }

func (s *Substitutor) VisitTrait(n *typed.Trait) any { return n }

func (s *Substitutor) VisitUnit(n *typed.Unit) any {
	return typed.NewUnit(n.Sp, s.ty(n.Ty))
}

var _ typed.Visitor = (*Substitutor)(nil)
