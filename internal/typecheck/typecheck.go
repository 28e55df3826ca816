package typecheck

import (
	"github.com/livy-lang/livy/internal/ast"
	"github.com/livy-lang/livy/internal/diagnostic"
	"github.com/livy-lang/livy/internal/idgen"
	"github.com/livy-lang/livy/internal/typed"
	"github.com/livy-lang/livy/internal/types"
)

// Infer runs the whole pipeline over tree: constraint generation,
// sequential unification of the resulting equations, and substitution of
// the solved types back onto the typed tree. ids is shared with whatever
// later stage (lowering) runs next in the same compilation.
//
// Generation runs to completion so a single compile reports as many
// undefined names as it can find in one pass; if it raised any, those
// diagnostics are returned and unification is not attempted.
// Unification stops at the first equation it can't solve, matching the
// reference's sequential reduce over generator.equations.
func Infer(ids *idgen.Generator, tree ast.Node) (typed.Node, []*diagnostic.Diagnostic) {
	gen := NewGenerator(ids)
	typedTree, equations, errs := gen.Run(tree)
	if len(errs) > 0 {
		return typedTree, errs
	}

	sub := types.Substitution{}
	for _, eq := range equations {
		solved, err := types.Unify(eq.left, eq.right, ids)
		if err != nil {
			gen.typeError(eq.span, err)
			return typedTree, gen.errs
		}
		sub, err = types.Merge(sub, solved, ids)
		if err != nil {
			gen.typeError(eq.span, err)
			return typedTree, gen.errs
		}
	}

	return NewSubstitutor(sub).Run(typedTree), nil
}
