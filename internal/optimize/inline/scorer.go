// Package inline expands calls to small functions at their call site,
// trading code size for the indirection a Function/Apply pair costs at
// runtime. A function is a target for inlining when its body's Scorer-rated
// size plus a fixed overhead (1 for a named definition, 3 for a bare
// lambda) is at or under the --expansion-level-derived threshold and it does
// not refer to itself (the self-reference guard; mutually recursive
// inlining is not attempted).
package inline

import "github.com/livy-lang/livy/internal/lowered"

// Scorer rates the structural size of a lowered node: control-flow and
// binding forms cost more than plain data.
type Scorer struct{}

// Run scores a single node.
func (Scorer) Run(n lowered.Node) int {
	if n == nil {
		return 0
	}
	return n.Accept(Scorer{}).(int)
}

func (s Scorer) VisitApply(n *lowered.Apply) any {
	return 2 + s.Run(n.Func) + s.Run(n.Arg)
}

func (s Scorer) VisitBlock(n *lowered.Block) any {
	total := 5
	for _, c := range n.Body {
		total += s.Run(c)
	}
	return total
}

func (s Scorer) VisitCond(n *lowered.Cond) any {
	return 6 + s.Run(n.Pred) + s.Run(n.Cons) + s.Run(n.Alt)
}

func (s Scorer) VisitDefine(n *lowered.Define) any {
	return 4 + s.Run(n.Value)
}

func (s Scorer) VisitFunction(n *lowered.Function) any {
	return 7 + s.Run(n.Body)
}

func (s Scorer) VisitList(n *lowered.List) any {
	if len(n.Elements) == 0 {
		return 1
	}
	total := 3
	for _, e := range n.Elements {
		total += s.Run(e)
	}
	return total
}

func (s Scorer) VisitNativeOp(n *lowered.NativeOp) any {
	right := 0
	if n.Right != nil {
		right = s.Run(n.Right)
	}
	return 1 + s.Run(n.Left) + right
}

func (s Scorer) VisitPair(n *lowered.Pair) any {
	return 2 + s.Run(n.First) + s.Run(n.Second)
}

func (s Scorer) VisitName(n *lowered.Name) any     { return 0 }
func (s Scorer) VisitScalar(n *lowered.Scalar) any { return 0 }
func (s Scorer) VisitUnit(n *lowered.Unit) any     { return 0 }

var _ lowered.Visitor = Scorer{}
