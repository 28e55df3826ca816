package strescape

import "github.com/livy-lang/livy/internal/ast"

// ExpandTree walks every string literal in tree, expanding backslash
// escapes in place. It is run once, immediately after parsing.
func ExpandTree(tree ast.Node) ast.Node {
	e := &expander{}
	return e.run(tree)
}

type expander struct{}

func (e *expander) run(n ast.Node) ast.Node {
	if n == nil {
		return nil
	}
	return n.Accept(e).(ast.Node)
}

func (e *expander) runPattern(p ast.Pattern) ast.Pattern {
	if p == nil {
		return nil
	}
	return p.AcceptPattern(e).(ast.Pattern)
}

func (e *expander) VisitAnnotation(n *ast.Annotation) any { return n }

func (e *expander) VisitApply(n *ast.Apply) any {
	return &ast.Apply{Sp: n.Sp, Func: e.run(n.Func), Arg: e.run(n.Arg)}
}

func (e *expander) VisitBlock(n *ast.Block) any {
	body := make([]ast.Node, len(n.Body))
	for i, c := range n.Body {
		body[i] = e.run(c)
	}
	return &ast.Block{Sp: n.Sp, Body: body}
}

func (e *expander) VisitCond(n *ast.Cond) any {
	return &ast.Cond{Sp: n.Sp, Pred: e.run(n.Pred), Cons: e.run(n.Cons), Alt: e.run(n.Alt)}
}

func (e *expander) VisitDefine(n *ast.Define) any {
	return &ast.Define{Sp: n.Sp, Target: e.runPattern(n.Target), Value: e.run(n.Value), Body: e.run(n.Body)}
}

func (e *expander) VisitFunction(n *ast.Function) any {
	return &ast.Function{Sp: n.Sp, Param: e.runPattern(n.Param), Body: e.run(n.Body)}
}

func (e *expander) VisitImpl(n *ast.Impl) any { return n }

func (e *expander) VisitList(n *ast.List) any {
	elems := make([]ast.Node, len(n.Elements))
	for i, el := range n.Elements {
		elems[i] = e.run(el)
	}
	return &ast.List{Sp: n.Sp, Elements: elems}
}

func (e *expander) VisitMatch(n *ast.Match) any {
	cases := make([]ast.MatchCase, len(n.Cases))
	for i, c := range n.Cases {
		cases[i] = ast.MatchCase{Pattern: e.runPattern(c.Pattern), Body: e.run(c.Body)}
	}
	return &ast.Match{Sp: n.Sp, Subject: e.run(n.Subject), Cases: cases}
}

func (e *expander) VisitPair(n *ast.Pair) any {
	return &ast.Pair{Sp: n.Sp, First: e.run(n.First), Second: e.run(n.Second)}
}

func (e *expander) VisitName(n *ast.Name) any { return n }

func (e *expander) VisitScalar(n *ast.Scalar) any {
	if n.Kind != ast.ScalarString {
		return n
	}
	return &ast.Scalar{Sp: n.Sp, Kind: n.Kind, String: Expand(n.String)}
}

func (e *expander) VisitTrait(n *ast.Trait) any { return n }

func (e *expander) VisitUnit(n *ast.Unit) any { return n }

var _ ast.Visitor = (*expander)(nil)

func (e *expander) VisitFreeName(n *ast.FreeName) any     { return n }
func (e *expander) VisitPinnedName(n *ast.PinnedName) any { return n }

func (e *expander) VisitScalarPattern(n *ast.ScalarPattern) any {
	if n.Kind != ast.ScalarString {
		return n
	}
	return &ast.ScalarPattern{Sp: n.Sp, Kind: n.Kind, String: Expand(n.String)}
}

func (e *expander) VisitPairPattern(n *ast.PairPattern) any {
	return &ast.PairPattern{Sp: n.Sp, First: e.runPattern(n.First), Second: e.runPattern(n.Second)}
}

func (e *expander) VisitListPattern(n *ast.ListPattern) any {
	initial := make([]ast.Pattern, len(n.Initial))
	for i, p := range n.Initial {
		initial[i] = e.runPattern(p)
	}
	var rest ast.Pattern
	if n.Rest != nil {
		rest = e.runPattern(n.Rest)
	}
	return &ast.ListPattern{Sp: n.Sp, Initial: initial, Rest: rest}
}

func (e *expander) VisitUnitPattern(n *ast.UnitPattern) any { return n }

var _ ast.PatternVisitor = (*expander)(nil)
