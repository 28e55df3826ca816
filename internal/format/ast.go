// Package format renders the surface and typed ASTs back to readable text
// for the compiler's --parse/--type-check dump flags, the way the
// reference's format.py ASTPrinter/TypedASTPrinter do.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/livy-lang/livy/internal/ast"
)

const indentUnit = "  "

// AST renders n the way it would be written back out as source, with
// block bodies indented one level per nesting depth.
func AST(n ast.Node) string {
	p := &astPrinter{indent: -1}
	return n.Accept(p).(string)
}

type astPrinter struct {
	indent int
}

func (p *astPrinter) preface() string {
	return "\n" + strings.Repeat(indentUnit, p.indent)
}

func (p *astPrinter) run(n ast.Node) string { return n.Accept(p).(string) }

func (p *astPrinter) VisitAnnotation(n *ast.Annotation) any {
	return fmt.Sprintf("%s :: %s", p.run(n.Target), showTypeExpr(n.Type))
}

func (p *astPrinter) VisitApply(n *ast.Apply) any {
	return fmt.Sprintf("%s %s", p.run(n.Func), p.run(n.Arg))
}

func (p *astPrinter) VisitBlock(n *ast.Block) any {
	p.indent++
	preface := p.preface()
	parts := make([]string, len(n.Body))
	for i, e := range n.Body {
		parts[i] = p.run(e)
	}
	result := preface + strings.Join(parts, preface)
	p.indent--
	return result
}

func (p *astPrinter) VisitCond(n *ast.Cond) any {
	return fmt.Sprintf("if %s then %s else %s", p.run(n.Pred), p.run(n.Cons), p.run(n.Alt))
}

func (p *astPrinter) VisitDefine(n *ast.Define) any {
	return fmt.Sprintf("let %s = %s", showPattern(n.Target), p.run(n.Value))
}

func (p *astPrinter) VisitFunction(n *ast.Function) any {
	return fmt.Sprintf(`\%s -> %s`, showPattern(n.Param), p.run(n.Body))
}

func (p *astPrinter) VisitImpl(n *ast.Impl) any {
	p.indent++
	preface := p.preface()
	methods := make([]string, len(n.Methods))
	for i, m := range n.Methods {
		methods[i] = p.VisitDefine(m).(string)
	}
	body := preface + strings.Join(methods, preface)
	p.indent--
	return fmt.Sprintf("impl %s <: %s (%s\n%s)", n.Trait, showTypeExpr(n.Type), body, strings.Repeat(indentUnit, p.indent+1))
}

func (p *astPrinter) VisitList(n *ast.List) any {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = p.run(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (p *astPrinter) VisitMatch(n *ast.Match) any {
	cases := make([]string, len(n.Cases))
	for i, c := range n.Cases {
		cases[i] = fmt.Sprintf("%s -> %s", showPattern(c.Pattern), p.run(c.Body))
	}
	return fmt.Sprintf("match %s | %s end", p.run(n.Subject), strings.Join(cases, " | "))
}

func (p *astPrinter) VisitPair(n *ast.Pair) any {
	return fmt.Sprintf("(%s, %s)", p.run(n.First), p.run(n.Second))
}

func (p *astPrinter) VisitName(n *ast.Name) any { return n.Value }

func (p *astPrinter) VisitScalar(n *ast.Scalar) any { return showScalar(n.Kind, n.Int, n.Float, n.String, n.Bool) }

func (p *astPrinter) VisitTrait(n *ast.Trait) any {
	p.indent++
	preface := p.preface()
	methods := make([]string, len(n.Methods))
	for i, m := range n.Methods {
		methods[i] = fmt.Sprintf("%s :: %s", m.Name, showTypeExpr(m.Type))
	}
	body := preface + strings.Join(methods, preface)
	p.indent--
	return fmt.Sprintf("trait %s (%s\n%s)", n.Name, body, strings.Repeat(indentUnit, p.indent+1))
}

func (p *astPrinter) VisitUnit(n *ast.Unit) any { return "()" }

func showScalar(kind ast.ScalarKind, i int64, f float64, s string, b bool) string {
	switch kind {
	case ast.ScalarInt:
		return strconv.FormatInt(i, 10)
	case ast.ScalarFloat:
		return strconv.FormatFloat(f, 'g', -1, 64)
	case ast.ScalarString:
		return strconv.Quote(s)
	case ast.ScalarBool:
		return strconv.FormatBool(b)
	default:
		return "()"
	}
}

// showPattern renders any surface-AST pattern the way it was written.
func showPattern(p ast.Pattern) string {
	switch n := p.(type) {
	case *ast.FreeName:
		return n.Value
	case *ast.PinnedName:
		return "^" + n.Value
	case *ast.ScalarPattern:
		return showScalar(n.Kind, n.Int, n.Float, n.String, n.Bool)
	case *ast.PairPattern:
		return fmt.Sprintf("(%s, %s)", showPattern(n.First), showPattern(n.Second))
	case *ast.ListPattern:
		parts := make([]string, len(n.Initial))
		for i, e := range n.Initial {
			parts[i] = showPattern(e)
		}
		rest := ""
		if n.Rest != nil {
			rest = ", .." + showPattern(n.Rest)
		}
		return "[" + strings.Join(parts, ", ") + rest + "]"
	case *ast.UnitPattern:
		return "()"
	default:
		return "<pattern>"
	}
}

// showTypeExpr renders a surface type expression the way it was written.
func showTypeExpr(t ast.TypeExpr) string {
	switch n := t.(type) {
	case *ast.TypeName:
		return n.Value
	case *ast.TypeVar:
		return n.Value
	case *ast.TypeApply:
		var args []string
		var head ast.TypeExpr = n
		for {
			apply, ok := head.(*ast.TypeApply)
			if !ok {
				break
			}
			args = append([]string{showTypeExpr(apply.Arg)}, args...)
			head = apply.Func
		}
		if len(args) == 2 {
			if name, ok := head.(*ast.TypeName); ok && name.Value == "->" {
				return fmt.Sprintf("%s -> %s", args[0], args[1])
			}
		}
		return fmt.Sprintf("%s[%s]", showTypeExpr(head), strings.Join(args, ", "))
	default:
		return "<type>"
	}
}
