package inline

import "github.com/livy-lang/livy/internal/lowered"

// replacer substitutes newValue for every free occurrence of param in a
// function body, stopping at a nested Function that rebinds the same
// parameter name (that inner scope shadows the outer one).
type replacer struct {
	param    string
	newValue lowered.Node
}

func inlineFunction(fn *lowered.Function, arg lowered.Node) lowered.Node {
	r := &replacer{param: fn.Param, newValue: arg}
	return r.run(fn.Body)
}

func (r *replacer) run(n lowered.Node) lowered.Node {
	if n == nil {
		return nil
	}
	return n.Accept(r).(lowered.Node)
}

func (r *replacer) VisitApply(n *lowered.Apply) any {
	return lowered.NewApply(n.Sp, r.run(n.Func), r.run(n.Arg))
}

func (r *replacer) VisitBlock(n *lowered.Block) any {
	body := make([]lowered.Node, len(n.Body))
	for i, c := range n.Body {
		body[i] = r.run(c)
	}
	return lowered.NewBlock(n.Sp, body)
}

func (r *replacer) VisitCond(n *lowered.Cond) any {
	return lowered.NewCond(n.Sp, r.run(n.Pred), r.run(n.Cons), r.run(n.Alt))
}

func (r *replacer) VisitDefine(n *lowered.Define) any {
	return lowered.NewDefine(n.Sp, n.Name, r.run(n.Value))
}

func (r *replacer) VisitFunction(n *lowered.Function) any {
	if n.Param == r.param {
		return n // shadowed: stop substituting inside this nested scope
	}
	return lowered.NewFunction(n.Sp, n.Param, r.run(n.Body))
}

func (r *replacer) VisitList(n *lowered.List) any {
	elems := make([]lowered.Node, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = r.run(e)
	}
	return lowered.NewList(n.Sp, elems)
}

func (r *replacer) VisitNativeOp(n *lowered.NativeOp) any {
	var right lowered.Node
	if n.Right != nil {
		right = r.run(n.Right)
	}
	return lowered.NewNativeOp(n.Sp, n.Operation, r.run(n.Left), right)
}

func (r *replacer) VisitPair(n *lowered.Pair) any {
	return lowered.NewPair(n.Sp, r.run(n.First), r.run(n.Second))
}

func (r *replacer) VisitName(n *lowered.Name) any {
	if n.Value == r.param {
		return r.newValue
	}
	return n
}

func (r *replacer) VisitScalar(n *lowered.Scalar) any { return n }
func (r *replacer) VisitUnit(n *lowered.Unit) any     { return n }

var _ lowered.Visitor = (*replacer)(nil)
