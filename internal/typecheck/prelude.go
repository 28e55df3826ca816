// Package typecheck implements Hindley-Milner type inference: a
// constraint generator that walks the surface AST once, producing a
// typed tree and a list of equations, followed by a unification pass and
// a substitutor that stamps the solved types back onto that tree.
package typecheck

import (
	"github.com/livy-lang/livy/internal/idgen"
	"github.com/livy-lang/livy/internal/scope"
	"github.com/livy-lang/livy/internal/types"
)

func name(v string) types.Type { return &types.Name{Value: v} }

func listType(elem types.Type) types.Type {
	return &types.Apply{Func: name("List"), Arg: elem}
}

func pairType(first, second types.Type) types.Type {
	return &types.Apply{Func: &types.Apply{Func: name(","), Arg: first}, Arg: second}
}

// scheme quantifies body over vars, minting one fresh Var per name via
// gen and substituting it in wherever that name is used in build.
func scheme(gen *idgen.Generator, vars []string, build func(v map[string]types.Type) types.Type) types.Type {
	bound := make([]*types.Var, len(vars))
	lookup := make(map[string]types.Type, len(vars))
	for i, v := range vars {
		tv := &types.Var{ID: gen.Next()}
		bound[i] = tv
		lookup[v] = tv
	}
	body := build(lookup)
	if len(bound) == 0 {
		return body
	}
	return &types.Scheme{Bound: bound, Body: body}
}

// NewRootScope seeds a fresh scope with the type of every builtin
// operator the lexer/parser desugars Apply chains to (internal/lowered's
// OperatorSymbols plus the comparison and boolean sugar it also
// recognizes), plus the required `main` entry point binding. gen must be
// the same generator the rest of a single compilation run uses, so the
// fresh variables minted here never collide with ones minted later.
func NewRootScope(gen *idgen.Generator) *scope.Scope[types.Type] {
	s := scope.New[types.Type]()

	boolT := name("Bool")
	s.Bind("and", types.Func(boolT, types.Func(boolT, boolT)))
	s.Bind("or", types.Func(boolT, types.Func(boolT, boolT)))
	s.Bind("not", types.Func(boolT, boolT))

	for _, op := range []string{"=", "/=", ">", "<", ">=", "<="} {
		s.Bind(op, scheme(gen, []string{"x"}, func(v map[string]types.Type) types.Type {
			return types.Func(v["x"], types.Func(v["x"], boolT))
		}))
	}
	for _, op := range []string{"+", "-", "*", "/", "%", "^"} {
		s.Bind(op, scheme(gen, []string{"x"}, func(v map[string]types.Type) types.Type {
			return types.Func(v["x"], types.Func(v["x"], v["x"]))
		}))
	}
	s.Bind("~", scheme(gen, []string{"x"}, func(v map[string]types.Type) types.Type {
		return types.Func(v["x"], v["x"])
	}))
	s.Bind("<>", scheme(gen, []string{"x"}, func(v map[string]types.Type) types.Type {
		l := listType(v["x"])
		return types.Func(l, types.Func(l, l))
	}))
	s.Bind("main", types.Func(listType(name("String")), name("Int")))
	return s
}
