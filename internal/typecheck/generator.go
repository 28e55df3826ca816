package typecheck

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/livy-lang/livy/internal/ast"
	"github.com/livy-lang/livy/internal/diagnostic"
	"github.com/livy-lang/livy/internal/idgen"
	"github.com/livy-lang/livy/internal/scope"
	"github.com/livy-lang/livy/internal/span"
	"github.com/livy-lang/livy/internal/typed"
	"github.com/livy-lang/livy/internal/types"
)

// suggestThreshold is the maximum Levenshtein distance an in-scope name
// can be from an undefined one and still be offered as a "did you mean".
const suggestThreshold = 3

// equation is one constraint the unifier solves after generation
// finishes: left and right must denote the same type. span records where
// the constraint came from, for the diagnostic raised if it fails.
type equation struct {
	left, right types.Type
	span        span.Span
}

// ConstraintGenerator walks the surface AST once, producing a typed tree
// whose nodes carry (possibly still unresolved) type variables, plus the
// equations the unifier solves afterward. Ported from the reference's
// ConstraintGenerator, generalized to the richer pattern grammar this
// port's parser/typed tier supports.
type ConstraintGenerator struct {
	ids       *idgen.Generator
	current   *scope.Scope[types.Type]
	equations []equation
	errs      []*diagnostic.Diagnostic
}

// NewGenerator builds a ConstraintGenerator with a freshly seeded root
// scope (operators plus `main`). ids is shared with every other stage of
// the same compilation run.
func NewGenerator(ids *idgen.Generator) *ConstraintGenerator {
	return &ConstraintGenerator{ids: ids, current: NewRootScope(ids)}
}

func (g *ConstraintGenerator) fresh() *types.Var { return &types.Var{ID: g.ids.Next()} }

// instantiate unwraps t if it's a Scheme, minting fresh variables for its
// bound vars; any other Type passes through unchanged.
func (g *ConstraintGenerator) instantiate(t types.Type) types.Type {
	if s, ok := t.(*types.Scheme); ok {
		return types.Instantiate(s, g.ids)
	}
	return t
}

func (g *ConstraintGenerator) equate(sp span.Span, left, right types.Type) {
	g.equations = append(g.equations, equation{left: left, right: right, span: sp})
}

func (g *ConstraintGenerator) undefined(sp span.Span, name string) {
	g.errs = append(g.errs, diagnostic.NewUndefinedName(sp, name, g.suggest(name)))
}

func (g *ConstraintGenerator) suggest(target string) string {
	candidates := g.current.AllNames()
	sort.Strings(candidates)
	best, ok := fuzzy.RankFind(target, candidates)
	if !ok || best.Distance > suggestThreshold || best.Distance == 0 {
		return ""
	}
	return best.Target
}

// typeError turns a unification failure into a diagnostic. Both branches
// report the specific pair the unifier actually choked on (err's own
// Left/Right or Var/Inner), which is often a narrower, more useful pair
// than the two top-level types the failing equation started from.
func (g *ConstraintGenerator) typeError(sp span.Span, err error) {
	switch e := err.(type) {
	case *types.OccursError:
		g.errs = append(g.errs, diagnostic.NewCircularType(sp, e.Var.String(), e.Inner.String()))
	case *types.MismatchError:
		g.errs = append(g.errs, diagnostic.NewTypeMismatch(sp, sp, e.Left.String(), e.Right.String()))
	default:
		g.errs = append(g.errs, diagnostic.NewFatalInternal(err))
	}
}

// generalise quantifies t over every variable still free in it, mirroring
// the reference's generalise/find_free_vars/fold_schemes trio exactly (no
// environment exclusion: the reference's generalise takes the type alone,
// so this calls types.Generalize with a nil envFree), except a type with
// no variables left to bind is returned bare rather than wrapped in a
// degenerate Scheme. Called once during generation (on the still-
// unresolved value type, same as the reference) and again by the
// Substitutor once unification has resolved it, since a var the generator
// quantified over may have turned out to be a concrete type all along.
func generalise(t types.Type) types.Type {
	if len(types.FreeVars(t)) == 0 {
		return t
	}
	return types.Generalize(t, nil)
}

func (g *ConstraintGenerator) run(n ast.Node) typed.Node {
	return n.Accept(g).(typed.Node)
}

// Run infers types over the whole tree, returning the typed tree (still
// carrying unresolved variables) and the equations collected along the
// way. Any UndefinedName diagnostics raised during generation are
// returned too; the caller decides whether to still attempt unification.
func (g *ConstraintGenerator) Run(tree ast.Node) (typed.Node, []equation, []*diagnostic.Diagnostic) {
	typedTree := g.run(tree)
	return typedTree, g.equations, g.errs
}

func (g *ConstraintGenerator) VisitAnnotation(n *ast.Annotation) any {
	target := g.run(n.Target)
	annotated := convertTypeExpr(g.ids, n.Type)
	g.equate(n.Sp, target.Type(), annotated)
	return target
}

func (g *ConstraintGenerator) VisitApply(n *ast.Apply) any {
	fn := g.run(n.Func)
	arg := g.run(n.Arg)
	result := g.fresh()
	g.equate(n.Sp, fn.Type(), types.Func(arg.Type(), result))
	return typed.NewApply(n.Sp, result, fn, arg)
}

func (g *ConstraintGenerator) VisitBlock(n *ast.Block) any {
	g.current = g.current.Down()
	body := make([]typed.Node, len(n.Body))
	for i, c := range n.Body {
		body[i] = g.run(c)
	}
	g.current = g.current.Up()
	return typed.NewBlock(n.Sp, body[len(body)-1].Type(), body)
}

func (g *ConstraintGenerator) VisitCond(n *ast.Cond) any {
	pred := g.run(n.Pred)
	cons := g.run(n.Cons)
	alt := g.run(n.Alt)
	g.equate(n.Pred.Span(), pred.Type(), name("Bool"))
	g.equate(n.Sp, cons.Type(), alt.Type())
	return typed.NewCond(n.Sp, cons.Type(), pred, cons, alt)
}

func (g *ConstraintGenerator) VisitDefine(n *ast.Define) any {
	simple, isSimple := n.Target.(*ast.FreeName)

	var initial types.Type
	if isSimple && simple.Value != "_" {
		if existing, ok := g.current.Get(simple.Value); ok {
			initial = existing
		} else {
			initial = g.fresh()
		}
		g.current.Bind(simple.Value, initial)
	}

	value := g.run(n.Value)

	var target typed.Pattern
	if isSimple {
		targetType := generalise(value.Type())
		if initial != nil {
			g.equate(n.Sp, initial, targetType)
		}
		target = typed.NewFreeName(simple.Sp, targetType, simple.Value)
		if simple.Value != "_" {
			g.current.Bind(simple.Value, targetType)
		}
	} else {
		target = g.inferPattern(n.Target)
		g.equate(n.Sp, target.Type(), value.Type())
	}

	var body typed.Node
	resultType := target.Type()
	if n.Body != nil {
		body = g.run(n.Body)
		resultType = body.Type()
	}
	return typed.NewDefine(n.Sp, resultType, target, value, body)
}

func (g *ConstraintGenerator) VisitFunction(n *ast.Function) any {
	g.current = g.current.Down()
	param := g.inferPattern(n.Param)
	body := g.run(n.Body)
	g.current = g.current.Up()
	return typed.NewFunction(n.Sp, types.Func(param.Type(), body.Type()), param, body)
}

func (g *ConstraintGenerator) VisitImpl(n *ast.Impl) any {
	panic("typecheck: impl should have been rejected before type checking")
}

func (g *ConstraintGenerator) VisitList(n *ast.List) any {
	elements := make([]typed.Node, len(n.Elements))
	var elemType types.Type
	if len(n.Elements) == 0 {
		elemType = g.fresh()
	}
	for i, e := range n.Elements {
		elements[i] = g.run(e)
		if i == 0 {
			elemType = elements[0].Type()
		} else {
			g.equate(e.Span(), elemType, elements[i].Type())
		}
	}
	return typed.NewList(n.Sp, listType(elemType), elements)
}

func (g *ConstraintGenerator) VisitMatch(n *ast.Match) any {
	subject := g.run(n.Subject)
	resultType := g.fresh()
	cases := make([]typed.MatchCase, len(n.Cases))
	for i, c := range n.Cases {
		g.current = g.current.Down()
		pattern := g.inferPattern(c.Pattern)
		g.equate(c.Pattern.Span(), pattern.Type(), subject.Type())
		body := g.run(c.Body)
		g.equate(c.Body.Span(), resultType, body.Type())
		g.current = g.current.Up()
		cases[i] = typed.MatchCase{Pattern: pattern, Body: body}
	}
	return typed.NewMatch(n.Sp, resultType, subject, cases)
}

func (g *ConstraintGenerator) VisitPair(n *ast.Pair) any {
	first := g.run(n.First)
	second := g.run(n.Second)
	return typed.NewPair(n.Sp, pairType(first.Type(), second.Type()), first, second)
}

func (g *ConstraintGenerator) VisitName(n *ast.Name) any {
	t, ok := g.current.Get(n.Value)
	if !ok {
		g.undefined(n.Sp, n.Value)
		return typed.NewName(n.Sp, g.fresh(), n.Value)
	}
	return typed.NewName(n.Sp, g.instantiate(t), n.Value)
}

func (g *ConstraintGenerator) VisitScalar(n *ast.Scalar) any {
	switch n.Kind {
	case ast.ScalarInt:
		return typed.NewScalarInt(n.Sp, name("Int"), n.Int)
	case ast.ScalarFloat:
		return typed.NewScalarFloat(n.Sp, name("Float"), n.Float)
	case ast.ScalarString:
		return typed.NewScalarString(n.Sp, name("String"), n.String)
	default:
		return typed.NewScalarBool(n.Sp, name("Bool"), n.Bool)
	}
}

func (g *ConstraintGenerator) VisitTrait(n *ast.Trait) any {
	panic("typecheck: trait should have been rejected before type checking")
}

func (g *ConstraintGenerator) VisitUnit(n *ast.Unit) any {
	return typed.NewUnit(n.Sp, name("Unit"))
}

var _ ast.Visitor = (*ConstraintGenerator)(nil)
