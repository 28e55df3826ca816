// Package types is the inferred type representation the checker works
// with: nominal types, type application, type variables, and
// let-generalized schemes, plus the unifier that drives Hindley-Milner
// inference.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is any inferred type. Concrete kinds: Name, Apply, Var. Scheme
// wraps a Type with its generalized variables and is never itself the
// target of unification.
type Type interface {
	isType()
	String() string
}

// Name is a nominal type: Int, String, Bool, Unit, Never.
type Name struct {
	Value string
}

func (*Name) isType()          {}
func (n *Name) String() string { return n.Value }

// Apply applies one type to another, e.g. `List Int` or, curried,
// `(->) A B` for the function type `A -> B`.
type Apply struct {
	Func Type
	Arg  Type
}

func (*Apply) isType() {}
func (a *Apply) String() string {
	return fmt.Sprintf("(%s %s)", a.Func, a.Arg)
}

// Func builds the curried function-type Apply chain `(->) from to`.
func Func(from, to Type) Type {
	return &Apply{Func: &Apply{Func: &Name{Value: "->"}, Arg: from}, Arg: to}
}

// AsFunc reports whether t is a Func application, returning its domain and
// codomain.
func AsFunc(t Type) (from, to Type, ok bool) {
	outer, ok := t.(*Apply)
	if !ok {
		return nil, nil, false
	}
	inner, ok := outer.Func.(*Apply)
	if !ok {
		return nil, nil, false
	}
	name, ok := inner.Func.(*Name)
	if !ok || name.Value != "->" {
		return nil, nil, false
	}
	return inner.Arg, outer.Arg, true
}

// Var is an as-yet-unresolved type variable, identified by an id minted by
// the compilation run's internal/idgen.Generator (unique within that run).
type Var struct {
	ID uint64
}

func (*Var) isType() {}
func (v *Var) String() string {
	return showTypeVar(v.ID)
}

// Scheme is a let-generalized polytype: `forall Bound. Body`.
type Scheme struct {
	Bound []*Var
	Body  Type
}

func (*Scheme) isType() {}
func (s *Scheme) String() string {
	if len(s.Bound) == 0 {
		return s.Body.String()
	}
	names := make([]string, len(s.Bound))
	for i, v := range s.Bound {
		names[i] = v.String()
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(names, " "), s.Body)
}

// showTypeVar cycles an alphabet letter pool (a, b, ..., z, a1, b1, ...)
// so variable names stay short and readable.
func showTypeVar(id uint64) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	letter := letters[id%26]
	gen := id / 26
	if gen == 0 {
		return string(letter)
	}
	return fmt.Sprintf("%c%d", letter, gen)
}

// FreeVars returns the set of Vars occurring free in t (i.e. not bound by
// an enclosing Scheme), keyed by id.
func FreeVars(t Type) map[uint64]*Var {
	out := map[uint64]*Var{}
	freeVars(t, out)
	return out
}

func freeVars(t Type, out map[uint64]*Var) {
	switch n := t.(type) {
	case *Var:
		out[n.ID] = n
	case *Apply:
		freeVars(n.Func, out)
		freeVars(n.Arg, out)
	case *Scheme:
		inner := map[uint64]*Var{}
		freeVars(n.Body, inner)
		for _, b := range n.Bound {
			delete(inner, b.ID)
		}
		for id, v := range inner {
			out[id] = v
		}
	case *Name:
		// no free variables
	}
}

// FoldSchemes merges the free variables of many schemes/types into one
// set, the shape Generalize takes as envFree. The type checker does not
// call it: its generalise passes a nil envFree.
func FoldSchemes(ts []Type) map[uint64]*Var {
	out := map[uint64]*Var{}
	for _, t := range ts {
		for id, v := range FreeVars(t) {
			out[id] = v
		}
	}
	return out
}

// sortedVars returns vs sorted by id, for deterministic output.
func sortedVars(vs map[uint64]*Var) []*Var {
	out := make([]*Var, 0, len(vs))
	for _, v := range vs {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
