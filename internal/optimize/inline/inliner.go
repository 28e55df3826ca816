package inline

import (
	"github.com/livy-lang/livy/internal/lowered"
	"github.com/livy-lang/livy/internal/scope"
)

// Inliner replaces an Apply of a target function - whether a literal
// lambda or a Name bound to one - with that function's body, substituting
// the argument for the parameter.
type Inliner struct {
	targets map[*lowered.Function]bool
	scope   *scope.Scope[*lowered.Function]
}

// NewInliner builds an Inliner for the given target set.
func NewInliner(targets map[*lowered.Function]bool) *Inliner {
	return &Inliner{targets: targets, scope: scope.New[*lowered.Function]()}
}

// Run performs one inlining pass over n.
func (in *Inliner) Run(n lowered.Node) lowered.Node {
	if n == nil {
		return nil
	}
	return n.Accept(in).(lowered.Node)
}

func (in *Inliner) targetFuncOf(n lowered.Node) *lowered.Function {
	switch v := n.(type) {
	case *lowered.Function:
		if in.targets[v] {
			return v
		}
	case *lowered.Name:
		if fn, ok := in.scope.Get(v.Value); ok && in.targets[fn] {
			return fn
		}
	}
	return nil
}

func (in *Inliner) VisitApply(n *lowered.Apply) any {
	if fn := in.targetFuncOf(n.Func); fn != nil {
		arg := in.Run(n.Arg)
		return in.Run(inlineFunction(fn, arg))
	}
	return lowered.NewApply(n.Sp, in.Run(n.Func), in.Run(n.Arg))
}

func (in *Inliner) VisitBlock(n *lowered.Block) any {
	in.scope = in.scope.Down()
	defer func() { in.scope = in.scope.Up() }()
	body := make([]lowered.Node, len(n.Body))
	for i, c := range n.Body {
		body[i] = in.Run(c)
	}
	return lowered.NewBlock(n.Sp, body)
}

func (in *Inliner) VisitCond(n *lowered.Cond) any {
	return lowered.NewCond(n.Sp, in.Run(n.Pred), in.Run(n.Cons), in.Run(n.Alt))
}

func (in *Inliner) VisitDefine(n *lowered.Define) any {
	if fn, ok := n.Value.(*lowered.Function); ok && in.targets[fn] {
		in.scope.Bind(n.Name, fn)
	}
	return lowered.NewDefine(n.Sp, n.Name, in.Run(n.Value))
}

func (in *Inliner) VisitFunction(n *lowered.Function) any {
	in.scope = in.scope.Down()
	body := in.Run(n.Body)
	in.scope = in.scope.Up()
	return lowered.NewFunction(n.Sp, n.Param, body)
}

func (in *Inliner) VisitList(n *lowered.List) any {
	elems := make([]lowered.Node, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = in.Run(e)
	}
	return lowered.NewList(n.Sp, elems)
}

func (in *Inliner) VisitNativeOp(n *lowered.NativeOp) any {
	var right lowered.Node
	if n.Right != nil {
		right = in.Run(n.Right)
	}
	return lowered.NewNativeOp(n.Sp, n.Operation, in.Run(n.Left), right)
}

func (in *Inliner) VisitPair(n *lowered.Pair) any {
	return lowered.NewPair(n.Sp, in.Run(n.First), in.Run(n.Second))
}

func (in *Inliner) VisitName(n *lowered.Name) any     { return n }
func (in *Inliner) VisitScalar(n *lowered.Scalar) any { return n }
func (in *Inliner) VisitUnit(n *lowered.Unit) any     { return n }

var _ lowered.Visitor = (*Inliner)(nil)

// Expand runs the full inline-expansion pipeline at the given
// --expansion-level (1-3): find candidate functions, score them, and
// inline every call to one that clears the bar.
func Expand(tree lowered.Node, level int) lowered.Node {
	finder := NewFinder()
	finder.Run(tree)
	targets := GenerateTargets(finder, calcThreshold(level))
	return NewInliner(targets).Run(tree)
}
