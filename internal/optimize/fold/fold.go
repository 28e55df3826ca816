// Package fold implements constant folding over the lowered IR: NativeOp
// applications of literal operands collapse to their result, and a Define
// of a literal value is substituted at every later Name reference within
// its scope and then dropped.
package fold

import (
	"github.com/livy-lang/livy/internal/lowered"
	"github.com/livy-lang/livy/internal/scope"
)

var mathOps = map[lowered.OperationTypes]bool{
	lowered.ADD: true, lowered.SUB: true, lowered.MUL: true,
	lowered.DIV: true, lowered.EXP: true, lowered.MOD: true,
}

var compareOps = map[lowered.OperationTypes]bool{
	lowered.EQUAL: true, lowered.GREATER: true, lowered.LESS: true,
}

// Folder walks the lowered IR folding constants, threading a scope of
// known-literal bindings so a folded Define can substitute at every Name
// use downstream.
type Folder struct {
	scope *scope.Scope[*lowered.Scalar]
}

// New returns a Folder with an empty top-level scope.
func New() *Folder {
	return &Folder{scope: scope.New[*lowered.Scalar]()}
}

// Run folds a single node.
func (f *Folder) Run(n lowered.Node) lowered.Node {
	return n.Accept(f).(lowered.Node)
}

func (f *Folder) VisitApply(n *lowered.Apply) any {
	return lowered.NewApply(n.Sp, f.Run(n.Func), f.Run(n.Arg))
}

func (f *Folder) VisitBlock(n *lowered.Block) any {
	f.scope = f.scope.Down()
	defer func() { f.scope = f.scope.Up() }()

	var kept []lowered.Node
	for _, child := range n.Body {
		folded := f.Run(child)
		if def, ok := folded.(*lowered.Define); ok {
			if _, isDeleted := def.Metadata()["delete"]; isDeleted {
				continue
			}
		}
		kept = append(kept, folded)
	}
	return lowered.NewBlock(n.Sp, kept)
}

func (f *Folder) VisitCond(n *lowered.Cond) any {
	pred := f.Run(n.Pred)
	if s, ok := pred.(*lowered.Scalar); ok && s.Kind == lowered.ScalarBool {
		if s.Bool {
			return f.Run(n.Cons)
		}
		return f.Run(n.Alt)
	}
	return lowered.NewCond(n.Sp, pred, f.Run(n.Cons), f.Run(n.Alt))
}

func (f *Folder) VisitDefine(n *lowered.Define) any {
	value := f.Run(n.Value)
	def := lowered.NewDefine(n.Sp, n.Name, value)
	if s, ok := value.(*lowered.Scalar); ok {
		f.scope.Bind(n.Name, s)
		def.Metadata()["delete"] = true
	}
	return def
}

func (f *Folder) VisitFunction(n *lowered.Function) any {
	f.scope = f.scope.Down()
	body := f.Run(n.Body)
	f.scope = f.scope.Up()
	return lowered.NewFunction(n.Sp, n.Param, body)
}

func (f *Folder) VisitList(n *lowered.List) any {
	elems := make([]lowered.Node, len(n.Elements))
	for i, e := range n.Elements {
		elems[i] = f.Run(e)
	}
	return lowered.NewList(n.Sp, elems)
}

func (f *Folder) VisitNativeOp(n *lowered.NativeOp) any {
	left := f.Run(n.Left)
	var right lowered.Node
	if n.Right != nil {
		right = f.Run(n.Right)
	}

	if n.Operation == lowered.NEG {
		if s, ok := left.(*lowered.Scalar); ok {
			if folded, ok := foldNeg(n.Sp, s); ok {
				return folded
			}
		}
		return lowered.NewNativeOp(n.Sp, lowered.NEG, left, nil)
	}

	ls, lok := left.(*lowered.Scalar)
	rs, rok := right.(*lowered.Scalar)
	if lok && rok {
		if mathOps[n.Operation] {
			if folded, ok := foldMath(n.Sp, n.Operation, ls, rs); ok {
				return folded
			}
		}
		if compareOps[n.Operation] {
			if folded, ok := foldComparison(n.Sp, n.Operation, ls, rs); ok {
				return folded
			}
		}
	}
	return lowered.NewNativeOp(n.Sp, n.Operation, left, right)
}

func (f *Folder) VisitPair(n *lowered.Pair) any {
	return lowered.NewPair(n.Sp, f.Run(n.First), f.Run(n.Second))
}

func (f *Folder) VisitName(n *lowered.Name) any {
	if s, ok := f.scope.Get(n.Value); ok {
		return s
	}
	return n
}

func (f *Folder) VisitScalar(n *lowered.Scalar) any { return n }
func (f *Folder) VisitUnit(n *lowered.Unit) any     { return n }

var _ lowered.Visitor = (*Folder)(nil)
