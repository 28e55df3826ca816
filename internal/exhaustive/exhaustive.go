// Package exhaustive checks that every pattern a Define target or
// Function parameter uses is irrefutable, and that every Match covers its
// subject's type, before lowering ever has to consider what happens when
// a pattern fails to match.
package exhaustive

import (
	"github.com/livy-lang/livy/internal/diagnostic"
	"github.com/livy-lang/livy/internal/typed"
	"github.com/livy-lang/livy/internal/types"
)

// Checker walks a typed tree collecting RefutablePattern diagnostics. It
// never stops at the first problem: every Define, Function, and Match in
// the tree is checked in one pass.
type Checker struct {
	errs []*diagnostic.Diagnostic
}

// Check walks node and returns every exhaustiveness diagnostic found.
func Check(node typed.Node) []*diagnostic.Diagnostic {
	c := &Checker{}
	node.Accept(c)
	return c.errs
}

func (c *Checker) visit(n typed.Node) {
	if n != nil {
		n.Accept(c)
	}
}

func (c *Checker) VisitApply(n *typed.Apply) any {
	c.visit(n.Func)
	c.visit(n.Arg)
	return nil
}

func (c *Checker) VisitBlock(n *typed.Block) any {
	for _, child := range n.Body {
		c.visit(child)
	}
	return nil
}

func (c *Checker) VisitCond(n *typed.Cond) any {
	c.visit(n.Pred)
	c.visit(n.Cons)
	c.visit(n.Alt)
	return nil
}

func (c *Checker) VisitDefine(n *typed.Define) any {
	if bad := nonExhaustive(n.Target); bad != nil {
		c.errs = append(c.errs, diagnostic.NewRefutablePattern(diagnostic.PositionTarget, bad.Span(), describe(bad)))
	}
	c.visit(n.Value)
	c.visit(n.Body)
	return nil
}

func (c *Checker) VisitFunction(n *typed.Function) any {
	if bad := nonExhaustive(n.Param); bad != nil {
		c.errs = append(c.errs, diagnostic.NewRefutablePattern(diagnostic.PositionParameter, bad.Span(), describe(bad)))
	}
	c.visit(n.Body)
	return nil
}

func (c *Checker) VisitImpl(n *typed.Impl) any {
	for _, m := range n.Methods {
		c.visit(m)
	}
	return nil
}

func (c *Checker) VisitList(n *typed.List) any {
	for _, e := range n.Elements {
		c.visit(e)
	}
	return nil
}

func (c *Checker) VisitMatch(n *typed.Match) any {
	c.visit(n.Subject)
	if len(n.Cases) == 0 {
		if subj, ok := n.Subject.Type().(*types.Name); !ok || subj.Value != "Never" {
			c.errs = append(c.errs, diagnostic.EmptyMatch(n.Sp))
		}
		return nil
	}
	patterns := make([]typed.Pattern, len(n.Cases))
	hasCatchAll := false
	for i, cs := range n.Cases {
		patterns[i] = cs.Pattern
		if nonExhaustive(cs.Pattern) == nil {
			hasCatchAll = true
		}
		c.visit(cs.Body)
	}
	if !hasCatchAll && !listPatternsExhaustive(patterns) {
		last := n.Cases[len(n.Cases)-1]
		c.errs = append(c.errs, diagnostic.NewRefutablePattern(diagnostic.PositionCase, last.Pattern.Span(), describe(last.Pattern)))
	}
	return nil
}

func (c *Checker) VisitPair(n *typed.Pair) any {
	c.visit(n.First)
	c.visit(n.Second)
	return nil
}

func (c *Checker) VisitName(n *typed.Name) any   { return nil }
func (c *Checker) VisitScalar(n *typed.Scalar) any { return nil }
func (c *Checker) VisitTrait(n *typed.Trait) any   { return nil }
func (c *Checker) VisitUnit(n *typed.Unit) any     { return nil }

// nonExhaustive returns the inner refutable pattern if p can fail to
// match, or nil if p is irrefutable.
func nonExhaustive(p typed.Pattern) typed.Pattern {
	switch n := p.(type) {
	case *typed.FreeName, *typed.UnitPattern:
		return nil
	case *typed.PairPattern:
		if bad := nonExhaustive(n.First); bad != nil {
			return bad
		}
		return nonExhaustive(n.Second)
	case *typed.ListPattern:
		if len(n.Initial) == 0 && n.Rest != nil {
			return nonExhaustive(n.Rest)
		}
		return p
	default:
		return p
	}
}

// listPatternsExhaustive reports whether a match's case patterns, taken
// together, cover every possible list: both the empty-list case and a
// pattern with a rest-binding (any length from its prefix upward) must be
// present.
func listPatternsExhaustive(patterns []typed.Pattern) bool {
	emptyCase, unknownLengthCase := false, false
	for _, p := range patterns {
		lp, ok := p.(*typed.ListPattern)
		if !ok {
			continue
		}
		if len(lp.Initial) == 0 && lp.Rest == nil {
			emptyCase = true
		}
		if lp.Rest != nil {
			unknownLengthCase = true
		}
	}
	return emptyCase && unknownLengthCase
}

func describe(p typed.Pattern) string {
	switch p.(type) {
	case *typed.PinnedName:
		return "a pinned name"
	case *typed.ScalarPattern:
		return "a literal"
	case *typed.ListPattern:
		return "a fixed-length list"
	default:
		return "this pattern"
	}
}

var _ typed.Visitor = (*Checker)(nil)
