package inline

import "github.com/livy-lang/livy/internal/lowered"

// Finder walks a tree collecting every Function literal and which of them
// are bound to a name by a Define (and so can be inlined by name
// reference, not just by immediate application of a literal lambda).
type Finder struct {
	Funcs        []*lowered.Function
	DefinedFuncs map[*lowered.Function]string
	NamesOf      map[*lowered.Function]string
}

// NewFinder returns an empty Finder ready to Run over a tree.
func NewFinder() *Finder {
	return &Finder{DefinedFuncs: map[*lowered.Function]string{}, NamesOf: map[*lowered.Function]string{}}
}

// Run walks n, recording every Function found.
func (f *Finder) Run(n lowered.Node) {
	if n == nil {
		return
	}
	n.Accept(f)
}

func (f *Finder) VisitApply(n *lowered.Apply) any {
	f.Run(n.Func)
	f.Run(n.Arg)
	return nil
}

func (f *Finder) VisitBlock(n *lowered.Block) any {
	for _, c := range n.Body {
		f.Run(c)
	}
	return nil
}

func (f *Finder) VisitCond(n *lowered.Cond) any {
	f.Run(n.Pred)
	f.Run(n.Cons)
	f.Run(n.Alt)
	return nil
}

func (f *Finder) VisitDefine(n *lowered.Define) any {
	if fn, ok := n.Value.(*lowered.Function); ok {
		f.DefinedFuncs[fn] = n.Name
		f.NamesOf[fn] = n.Name
	}
	f.Run(n.Value)
	return nil
}

func (f *Finder) VisitFunction(n *lowered.Function) any {
	f.Funcs = append(f.Funcs, n)
	f.Run(n.Body)
	return nil
}

func (f *Finder) VisitList(n *lowered.List) any {
	for _, e := range n.Elements {
		f.Run(e)
	}
	return nil
}

func (f *Finder) VisitNativeOp(n *lowered.NativeOp) any {
	f.Run(n.Left)
	f.Run(n.Right)
	return nil
}

func (f *Finder) VisitPair(n *lowered.Pair) any {
	f.Run(n.First)
	f.Run(n.Second)
	return nil
}

func (f *Finder) VisitName(n *lowered.Name) any     { return nil }
func (f *Finder) VisitScalar(n *lowered.Scalar) any { return nil }
func (f *Finder) VisitUnit(n *lowered.Unit) any     { return nil }

var _ lowered.Visitor = (*Finder)(nil)
