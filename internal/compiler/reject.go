package compiler

import (
	"github.com/livy-lang/livy/internal/ast"
	"github.com/livy-lang/livy/internal/diagnostic"
)

// rejectUnsupported walks the freshly parsed tree looking for an Impl or
// Trait node. The parser still recognizes both so existing source
// round-trips through --parse, but §9's REDESIGN FLAGS call for catching
// them here instead of letting lowering's fatal-internal panic path do it:
// this way the failure is reported through the normal diagnostic sink
// rather than crashing the process. Only the first one found is reported,
// matching every other phase's fail-fast-on-first-phase-error shape.
func rejectUnsupported(n ast.Node) *diagnostic.Diagnostic {
	r := &rejector{}
	n.Accept(r)
	return r.found
}

type rejector struct {
	found *diagnostic.Diagnostic
}

func (r *rejector) visit(n ast.Node) {
	if r.found == nil && n != nil {
		n.Accept(r)
	}
}

func (r *rejector) VisitAnnotation(n *ast.Annotation) any { r.visit(n.Target); return nil }

func (r *rejector) VisitApply(n *ast.Apply) any {
	r.visit(n.Func)
	r.visit(n.Arg)
	return nil
}

func (r *rejector) VisitBlock(n *ast.Block) any {
	for _, e := range n.Body {
		r.visit(e)
	}
	return nil
}

func (r *rejector) VisitCond(n *ast.Cond) any {
	r.visit(n.Pred)
	r.visit(n.Cons)
	r.visit(n.Alt)
	return nil
}

func (r *rejector) VisitDefine(n *ast.Define) any {
	r.visit(n.Value)
	if n.Body != nil {
		r.visit(n.Body)
	}
	return nil
}

func (r *rejector) VisitFunction(n *ast.Function) any { r.visit(n.Body); return nil }

func (r *rejector) VisitImpl(n *ast.Impl) any {
	r.reject("impl")
	return nil
}

func (r *rejector) VisitList(n *ast.List) any {
	for _, e := range n.Elements {
		r.visit(e)
	}
	return nil
}

func (r *rejector) VisitMatch(n *ast.Match) any {
	r.visit(n.Subject)
	for _, c := range n.Cases {
		r.visit(c.Body)
	}
	return nil
}

func (r *rejector) VisitPair(n *ast.Pair) any {
	r.visit(n.First)
	r.visit(n.Second)
	return nil
}

func (r *rejector) VisitName(n *ast.Name) any     { return nil }
func (r *rejector) VisitScalar(n *ast.Scalar) any { return nil }

func (r *rejector) VisitTrait(n *ast.Trait) any {
	r.reject("trait")
	return nil
}

func (r *rejector) VisitUnit(n *ast.Unit) any { return nil }

func (r *rejector) reject(kind string) {
	r.found = diagnostic.NewFatalInternal(unsupportedError{kind: kind})
}

type unsupportedError struct{ kind string }

func (e unsupportedError) Error() string {
	return e.kind + " declarations are parsed but not supported by this compiler"
}

var _ ast.Visitor = (*rejector)(nil)
