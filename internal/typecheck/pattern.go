package typecheck

import (
	"github.com/livy-lang/livy/internal/ast"
	"github.com/livy-lang/livy/internal/typed"
	"github.com/livy-lang/livy/internal/types"
)

// inferPattern assigns a type to p, binding every name it introduces into
// the generator's current scope, and returns the matching typed.Pattern.
// Ported from the reference's pattern_infer/_list_pattern_infer, widened
// to cover the richer pattern grammar this port's parser accepts (the
// reference's patterns never nest beyond a bare name).
func (g *ConstraintGenerator) inferPattern(p ast.Pattern) typed.Pattern {
	return p.AcceptPattern(&patternInferer{g: g}).(typed.Pattern)
}

type patternInferer struct {
	g *ConstraintGenerator
}

func (pi *patternInferer) VisitFreeName(p *ast.FreeName) any {
	t := pi.g.fresh()
	if p.Value != "_" {
		pi.g.current.Bind(p.Value, t)
	}
	return typed.NewFreeName(p.Sp, t, p.Value)
}

func (pi *patternInferer) VisitPinnedName(p *ast.PinnedName) any {
	t, ok := pi.g.current.Get(p.Value)
	if !ok {
		pi.g.undefined(p.Sp, p.Value)
		t = pi.g.fresh()
	} else {
		t = pi.g.instantiate(t)
	}
	return typed.NewPinnedName(p.Sp, t, p.Value)
}

func (pi *patternInferer) VisitScalarPattern(p *ast.ScalarPattern) any {
	switch p.Kind {
	case ast.ScalarInt:
		return typed.NewScalarPatternInt(p.Sp, name("Int"), p.Int)
	case ast.ScalarFloat:
		return typed.NewScalarPatternFloat(p.Sp, name("Float"), p.Float)
	case ast.ScalarString:
		return typed.NewScalarPatternString(p.Sp, name("String"), p.String)
	default:
		return typed.NewScalarPatternBool(p.Sp, name("Bool"), p.Bool)
	}
}

func (pi *patternInferer) VisitPairPattern(p *ast.PairPattern) any {
	first := pi.g.inferPattern(p.First)
	second := pi.g.inferPattern(p.Second)
	return typed.NewPairPattern(p.Sp, pairType(first.Type(), second.Type()), first, second)
}

func (pi *patternInferer) VisitListPattern(p *ast.ListPattern) any {
	var expected types.Type = pi.g.fresh()
	initial := make([]typed.Pattern, len(p.Initial))
	for i, elem := range p.Initial {
		bound := pi.g.inferPattern(elem)
		initial[i] = bound
		sub, err := types.Unify(expected, bound.Type(), pi.g.ids)
		if err != nil {
			pi.g.typeError(elem.Span(), err)
			continue
		}
		expected = types.Substitute(sub, expected)
	}

	listT := listType(expected)
	var rest typed.Pattern
	if p.Rest != nil {
		if free, ok := p.Rest.(*ast.FreeName); ok {
			if free.Value != "_" {
				pi.g.current.Bind(free.Value, listT)
			}
			rest = typed.NewFreeName(free.Sp, listT, free.Value)
		} else {
			bound := pi.g.inferPattern(p.Rest)
			pi.g.equate(p.Rest.Span(), bound.Type(), listT)
			rest = bound
		}
	}
	return typed.NewListPattern(p.Sp, listT, initial, rest)
}

func (pi *patternInferer) VisitUnitPattern(p *ast.UnitPattern) any {
	return typed.NewUnitPattern(p.Sp, name("Unit"))
}

var _ ast.PatternVisitor = (*patternInferer)(nil)
