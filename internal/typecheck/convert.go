package typecheck

import (
	"github.com/livy-lang/livy/internal/ast"
	"github.com/livy-lang/livy/internal/idgen"
	"github.com/livy-lang/livy/internal/types"
)

// convertTypeExpr turns a surface type expression (as written in an
// `expr :: Type` annotation) into the internal/types representation the
// unifier works with, minting a fresh Var per distinct lowercase type
// variable name it encounters.
func convertTypeExpr(ids *idgen.Generator, t ast.TypeExpr) types.Type {
	return t.AcceptType(&typeConverter{ids: ids, vars: map[string]*types.Var{}})
}

type typeConverter struct {
	ids  *idgen.Generator
	vars map[string]*types.Var
}

func (c *typeConverter) result(v any) types.Type { return v.(types.Type) }

func (c *typeConverter) VisitTypeName(t *ast.TypeName) any {
	return name(t.Value)
}

func (c *typeConverter) VisitTypeApply(t *ast.TypeApply) any {
	return &types.Apply{
		Func: c.result(t.Func.AcceptType(c)),
		Arg:  c.result(t.Arg.AcceptType(c)),
	}
}

func (c *typeConverter) VisitTypeVar(t *ast.TypeVar) any {
	if existing, ok := c.vars[t.Value]; ok {
		return existing
	}
	v := &types.Var{ID: c.ids.Next()}
	c.vars[t.Value] = v
	return v
}

var _ ast.TypeVisitor = (*typeConverter)(nil)
