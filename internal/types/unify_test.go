package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livy-lang/livy/internal/idgen"
)

func TestSubstituteReplacesBoundVar(t *testing.T) {
	v := &Var{ID: 0}
	sub := Substitution{0: &Name{Value: "Int"}}
	require.Equal(t, "Int", Substitute(sub, v).String())
}

func TestSubstituteLeavesUnboundVarAlone(t *testing.T) {
	v := &Var{ID: 7}
	sub := Substitution{0: &Name{Value: "Int"}}
	require.Equal(t, v, Substitute(sub, v))
}

func TestSubstituteFollowsChainOfBoundVars(t *testing.T) {
	a, b := &Var{ID: 0}, &Var{ID: 1}
	sub := Substitution{0: b, 1: &Name{Value: "Bool"}}
	require.Equal(t, "Bool", Substitute(sub, a).String())
}

func TestSubstituteRecursesIntoApply(t *testing.T) {
	v := &Var{ID: 0}
	listInt := &Apply{Func: &Name{Value: "List"}, Arg: v}
	sub := Substitution{0: &Name{Value: "Int"}}
	require.Equal(t, "(List Int)", Substitute(sub, listInt).String())
}

func TestSubstituteSkipsSchemeBoundVars(t *testing.T) {
	bound := &Var{ID: 0}
	scheme := &Scheme{Bound: []*Var{bound}, Body: bound}
	sub := Substitution{0: &Name{Value: "Int"}}
	result := Substitute(sub, scheme).(*Scheme)
	require.Equal(t, bound, result.Body)
}

func TestUnifyVarBindsToConcreteType(t *testing.T) {
	gen := idgen.New()
	v := &Var{ID: gen.Next()}
	sub, err := Unify(v, &Name{Value: "Int"}, gen)
	require.NoError(t, err)
	require.Equal(t, "Int", Substitute(sub, v).String())
}

func TestUnifyMatchingNamesProducesEmptySubstitution(t *testing.T) {
	gen := idgen.New()
	sub, err := Unify(&Name{Value: "Int"}, &Name{Value: "Int"}, gen)
	require.NoError(t, err)
	require.Empty(t, sub)
}

func TestUnifyMismatchedNamesFails(t *testing.T) {
	gen := idgen.New()
	_, err := Unify(&Name{Value: "Int"}, &Name{Value: "Bool"}, gen)
	require.Error(t, err)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestUnifyOccursCheckRejectsInfiniteType(t *testing.T) {
	gen := idgen.New()
	v := &Var{ID: gen.Next()}
	listV := &Apply{Func: &Name{Value: "List"}, Arg: v}
	_, err := Unify(v, listV, gen)
	require.Error(t, err)
	var occurs *OccursError
	require.ErrorAs(t, err, &occurs)
}

func TestUnifyAppliesLeftSubstitutionBeforeUnifyingRight(t *testing.T) {
	// (-> a a) unified with (-> Int Bool) should fail: once the left `a`
	// binds to Int, the right side's equation becomes Int = Bool.
	gen := idgen.New()
	v := &Var{ID: gen.Next()}
	from := &Apply{Func: &Apply{Func: &Name{Value: "->"}, Arg: v}, Arg: v}
	to := &Apply{Func: &Apply{Func: &Name{Value: "->"}, Arg: &Name{Value: "Int"}}, Arg: &Name{Value: "Bool"}}
	_, err := Unify(from, to, gen)
	require.Error(t, err)
}

func TestUnifyInstantiatesSchemesBeforeComparing(t *testing.T) {
	gen := idgen.New()
	bound := &Var{ID: gen.Next()}
	identity := &Scheme{Bound: []*Var{bound}, Body: Func(bound, bound)}
	target := Func(&Name{Value: "Int"}, &Name{Value: "Int"})
	_, err := Unify(identity, target, gen)
	require.NoError(t, err)
}

func TestInstantiateMintsFreshVarsPerCall(t *testing.T) {
	gen := idgen.New()
	bound := &Var{ID: gen.Next()}
	scheme := &Scheme{Bound: []*Var{bound}, Body: bound}

	first := Instantiate(scheme, gen)
	second := Instantiate(scheme, gen)

	require.NotEqual(t, first.(*Var).ID, second.(*Var).ID)
}

func TestInstantiateWithNoBoundVarsReturnsBodyUnchanged(t *testing.T) {
	gen := idgen.New()
	scheme := &Scheme{Body: &Name{Value: "Int"}}
	require.Equal(t, scheme.Body, Instantiate(scheme, gen))
}

func TestGeneralizeQuantifiesOverFreeVarsNotInEnv(t *testing.T) {
	free := &Var{ID: 0}
	envOnly := &Var{ID: 1}
	t_ := Func(free, envOnly)

	scheme := Generalize(t_, map[uint64]*Var{1: envOnly})

	require.Len(t, scheme.Bound, 1)
	require.Equal(t, uint64(0), scheme.Bound[0].ID)
}

func TestGeneralizeWithEmptyEnvQuantifiesEverything(t *testing.T) {
	a, b := &Var{ID: 0}, &Var{ID: 1}
	scheme := Generalize(Func(a, b), nil)
	require.Len(t, scheme.Bound, 2)
}

func TestMergeUnifiesOverlappingBindings(t *testing.T) {
	gen := idgen.New()
	a := Substitution{0: &Name{Value: "Int"}}
	b := Substitution{0: &Name{Value: "Int"}, 1: &Name{Value: "Bool"}}

	merged, err := Merge(a, b, gen)
	require.NoError(t, err)
	require.Equal(t, "Int", merged[0].String())
	require.Equal(t, "Bool", merged[1].String())
}

func TestMergeFailsOnConflictingBindings(t *testing.T) {
	gen := idgen.New()
	a := Substitution{0: &Name{Value: "Int"}}
	b := Substitution{0: &Name{Value: "Bool"}}

	_, err := Merge(a, b, gen)
	require.Error(t, err)
}
