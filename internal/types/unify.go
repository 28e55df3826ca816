package types

import "fmt"

// MismatchError reports that two types could not be unified because their
// outermost shapes disagree.
type MismatchError struct {
	Left, Right Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}

// OccursError reports that a type variable occurs inside the type it is
// being unified with, which would require an infinite type.
type OccursError struct {
	Var   *Var
	Inner Type
}

func (e *OccursError) Error() string {
	return fmt.Sprintf("%s occurs inside %s", e.Var, e.Inner)
}

// Substitution maps type-variable ids to their resolved types.
type Substitution map[uint64]Type

func (s Substitution) clone() Substitution {
	out := make(Substitution, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Substitute replaces every free Var in t that s binds, recursively
// following chains (a var bound to another bound var). Named distinctly
// from the Apply type so both can live in this package.
func Substitute(s Substitution, t Type) Type {
	switch n := t.(type) {
	case *Var:
		if bound, ok := s[n.ID]; ok {
			if bound == t {
				return bound
			}
			return Substitute(s, bound)
		}
		return t
	case *Apply:
		return &Apply{Func: Substitute(s, n.Func), Arg: Substitute(s, n.Arg)}
	case *Scheme:
		inner := s.clone()
		for _, b := range n.Bound {
			delete(inner, b.ID)
		}
		return &Scheme{Bound: n.Bound, Body: Substitute(inner, n.Body)}
	default:
		return t
	}
}

// IDGenerator mints fresh type-variable ids, satisfied by
// *internal/idgen.Generator. Spelled out locally so internal/types does
// not need to import internal/idgen just for this one method signature.
type IDGenerator interface{ Next() uint64 }

// Merge composes two substitutions, applying the self-substitution to
// already-bound entries and unifying when both substitutions claim the
// same variable with different types (the "eager merge" the reference
// Scope/unifier uses to keep a single substitution map consistent as
// constraints accumulate).
func Merge(a, b Substitution, gen IDGenerator) (Substitution, error) {
	out := a.clone()
	for id, t := range b {
		resolved := Substitute(out, t)
		if existing, ok := out[id]; ok {
			unified, err := Unify(existing, resolved, gen)
			if err != nil {
				return nil, err
			}
			merged, err := Merge(out, unified, gen)
			if err != nil {
				return nil, err
			}
			out = merged
			continue
		}
		out[id] = resolved
	}
	return out, nil
}

// Unify computes the most general substitution making a and b equal. Both
// sides are instantiated first, so a Scheme unifies like any other type
// (the caller never needs to instantiate before pushing an equation).
func Unify(a, b Type, gen IDGenerator) (Substitution, error) {
	a, b = instantiateAny(a, gen), instantiateAny(b, gen)
	switch av := a.(type) {
	case *Var:
		return bind(av, b)
	case *Name:
		if bv, ok := b.(*Var); ok {
			return bind(bv, a)
		}
		bn, ok := b.(*Name)
		if !ok || bn.Value != av.Value {
			return nil, &MismatchError{Left: a, Right: b}
		}
		return Substitution{}, nil
	case *Apply:
		if bv, ok := b.(*Var); ok {
			return bind(bv, a)
		}
		ba, ok := b.(*Apply)
		if !ok {
			return nil, &MismatchError{Left: a, Right: b}
		}
		s1, err := Unify(av.Func, ba.Func, gen)
		if err != nil {
			return nil, err
		}
		s2, err := Unify(Substitute(s1, av.Arg), Substitute(s1, ba.Arg), gen)
		if err != nil {
			return nil, err
		}
		return Merge(s1, s2, gen)
	default:
		return nil, &MismatchError{Left: a, Right: b}
	}
}

func instantiateAny(t Type, gen IDGenerator) Type {
	if s, ok := t.(*Scheme); ok {
		return Instantiate(s, gen)
	}
	return t
}

func bind(v *Var, t Type) (Substitution, error) {
	if other, ok := t.(*Var); ok && other.ID == v.ID {
		return Substitution{}, nil
	}
	if occurs(v, t) {
		return nil, &OccursError{Var: v, Inner: t}
	}
	return Substitution{v.ID: t}, nil
}

func occurs(v *Var, t Type) bool {
	switch n := t.(type) {
	case *Var:
		return n.ID == v.ID
	case *Apply:
		return occurs(v, n.Func) || occurs(v, n.Arg)
	default:
		return false
	}
}

// Instantiate replaces a Scheme's bound variables with fresh ones, the
// step that turns a polytype back into a monotype at each use site.
func Instantiate(s *Scheme, gen IDGenerator) Type {
	if len(s.Bound) == 0 {
		return s.Body
	}
	fresh := make(Substitution, len(s.Bound))
	for _, b := range s.Bound {
		fresh[b.ID] = &Var{ID: gen.Next()}
	}
	return Substitute(fresh, s.Body)
}

// Generalize turns a monotype into a Scheme, quantifying over every
// variable free in t but not free in the surrounding environment (envFree
// can be built with types.FoldSchemes; a nil envFree quantifies over
// every free variable).
func Generalize(t Type, envFree map[uint64]*Var) *Scheme {
	free := FreeVars(t)
	for id := range envFree {
		delete(free, id)
	}
	return &Scheme{Bound: sortedVars(free), Body: t}
}
