// Package defsort reorders the expressions inside a block so that every
// name is used only after its definition, when doing so is safe. It is
// an optional pass, enabled by --sort-defs, for source that defines
// helpers below the point they're used.
//
// Mutually recursive definitions are left in their original relative
// order: the dependency analysis below only removes an expression's own
// bound names from its dependency set, so a cycle between two Defines
// never reaches zero incoming edges and is never reordered.
package defsort

import "github.com/livy-lang/livy/internal/ast"

// Sort reorders every Block in node so expressions come after the
// definitions they depend on.
func Sort(node ast.Node) ast.Node {
	s := &sorter{}
	return s.run(node).node
}

type result struct {
	node ast.Node
	deps map[string]bool
}

func union(sets ...map[string]bool) map[string]bool {
	out := map[string]bool{}
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}

func diff(a, b map[string]bool) map[string]bool {
	out := map[string]bool{}
	for k := range a {
		if !b[k] {
			out[k] = true
		}
	}
	return out
}

type sorter struct {
	definitions map[string]*ast.Define
}

func (s *sorter) run(n ast.Node) result {
	if n == nil {
		return result{deps: map[string]bool{}}
	}
	return n.Accept(s).(result)
}

func (s *sorter) VisitAnnotation(n *ast.Annotation) any {
	return result{node: n, deps: map[string]bool{}}
}

func (s *sorter) VisitApply(n *ast.Apply) any {
	fn := s.run(n.Func)
	arg := s.run(n.Arg)
	return result{node: &ast.Apply{Sp: n.Sp, Func: fn.node, Arg: arg.node}, deps: union(fn.deps, arg.deps)}
}

func (s *sorter) VisitBlock(n *ast.Block) any {
	prevDefs := s.definitions
	s.definitions = map[string]*ast.Define{}

	type item struct {
		expr result
	}
	items := make([]item, len(n.Body))
	total := map[string]bool{}
	for i, e := range n.Body {
		items[i] = item{expr: s.run(e)}
		total = union(total, items[i].expr.deps)
	}

	ordered := topoSort(items, s.definitions)
	s.definitions = prevDefs
	return result{node: &ast.Block{Sp: n.Sp, Body: ordered}, deps: total}
}

func topoSort(items []struct{ expr result }, defs map[string]*ast.Define) []ast.Node {
	if len(items) < 2 {
		out := make([]ast.Node, len(items))
		for i, it := range items {
			out[i] = it.expr.node
		}
		return out
	}

	incomingCount := make([]int, len(items))
	outgoing := map[ast.Node][]int{}
	for i, it := range items {
		for name := range it.expr.deps {
			def, ok := defs[name]
			if !ok || ast.Node(def) == it.expr.node {
				continue
			}
			incomingCount[i]++
			outgoing[def] = append(outgoing[def], i)
		}
	}

	var ready []int
	for i, count := range incomingCount {
		if count == 0 {
			ready = append(ready, i)
		}
	}

	var sortedIdx []int
	seen := map[int]bool{}
	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]
		if seen[i] {
			continue
		}
		seen[i] = true
		sortedIdx = append(sortedIdx, i)
		for _, endpoint := range outgoing[items[i].expr.node] {
			incomingCount[endpoint]--
			if incomingCount[endpoint] == 0 {
				ready = append(ready, endpoint)
			}
		}
	}
	for i := range items {
		if !seen[i] {
			sortedIdx = append(sortedIdx, i)
		}
	}

	out := make([]ast.Node, len(sortedIdx))
	for i, idx := range sortedIdx {
		out[i] = items[idx].expr.node
	}
	return out
}

func (s *sorter) VisitCond(n *ast.Cond) any {
	pred := s.run(n.Pred)
	cons := s.run(n.Cons)
	alt := s.run(n.Alt)
	return result{
		node: &ast.Cond{Sp: n.Sp, Pred: pred.node, Cons: cons.node, Alt: alt.node},
		deps: union(pred.deps, cons.deps, alt.deps),
	}
}

func (s *sorter) VisitDefine(n *ast.Define) any {
	value := s.run(n.Value)
	free := freeNames(n.Target)
	deps := diff(value.deps, free)

	var body ast.Node
	if n.Body != nil {
		b := s.run(n.Body)
		body = b.node
		deps = union(deps, b.deps)
	}

	newNode := &ast.Define{Sp: n.Sp, Target: n.Target, Value: value.node, Body: body}
	for name := range free {
		s.definitions[name] = newNode
	}
	return result{node: newNode, deps: deps}
}

func (s *sorter) VisitFunction(n *ast.Function) any {
	body := s.run(n.Body)
	deps := diff(body.deps, freeNames(n.Param))
	return result{node: &ast.Function{Sp: n.Sp, Param: n.Param, Body: body.node}, deps: deps}
}

func (s *sorter) VisitImpl(n *ast.Impl) any {
	return result{node: n, deps: map[string]bool{}}
}

func (s *sorter) VisitList(n *ast.List) any {
	elems := make([]ast.Node, len(n.Elements))
	deps := map[string]bool{}
	for i, e := range n.Elements {
		r := s.run(e)
		elems[i] = r.node
		deps = union(deps, r.deps)
	}
	return result{node: &ast.List{Sp: n.Sp, Elements: elems}, deps: deps}
}

func (s *sorter) VisitMatch(n *ast.Match) any {
	subject := s.run(n.Subject)
	deps := subject.deps
	cases := make([]ast.MatchCase, len(n.Cases))
	for i, c := range n.Cases {
		body := s.run(c.Body)
		cases[i] = ast.MatchCase{Pattern: c.Pattern, Body: body.node}
		deps = union(deps, diff(body.deps, freeNames(c.Pattern)))
	}
	return result{node: &ast.Match{Sp: n.Sp, Subject: subject.node, Cases: cases}, deps: deps}
}

func (s *sorter) VisitPair(n *ast.Pair) any {
	first := s.run(n.First)
	second := s.run(n.Second)
	return result{node: &ast.Pair{Sp: n.Sp, First: first.node, Second: second.node}, deps: union(first.deps, second.deps)}
}

func (s *sorter) VisitName(n *ast.Name) any {
	return result{node: n, deps: map[string]bool{n.Value: true}}
}

func (s *sorter) VisitScalar(n *ast.Scalar) any {
	return result{node: n, deps: map[string]bool{}}
}

func (s *sorter) VisitTrait(n *ast.Trait) any {
	return result{node: n, deps: map[string]bool{}}
}

func (s *sorter) VisitUnit(n *ast.Unit) any {
	return result{node: n, deps: map[string]bool{}}
}

var _ ast.Visitor = (*sorter)(nil)

// freeNames collects the names a pattern binds.
func freeNames(p ast.Pattern) map[string]bool {
	switch v := p.(type) {
	case *ast.FreeName:
		return map[string]bool{v.Value: true}
	case *ast.PairPattern:
		return union(freeNames(v.First), freeNames(v.Second))
	case *ast.ListPattern:
		out := map[string]bool{}
		for _, e := range v.Initial {
			out = union(out, freeNames(e))
		}
		if rest, ok := v.Rest.(*ast.FreeName); ok {
			out[rest.Value] = true
		}
		return out
	default:
		return map[string]bool{}
	}
}
