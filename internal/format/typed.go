package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/livy-lang/livy/internal/typed"
)

// Typed renders a typed-tier tree with every node's inferred type
// annotated inline, the way TypedASTPrinter does in the reference.
func Typed(n typed.Node) string {
	p := &typedPrinter{indent: -1}
	return n.Accept(p).(string)
}

type typedPrinter struct {
	indent int
}

func (p *typedPrinter) preface() string {
	return "\n" + strings.Repeat(indentUnit, p.indent)
}

func (p *typedPrinter) run(n typed.Node) string { return n.Accept(p).(string) }

func (p *typedPrinter) VisitApply(n *typed.Apply) any {
	return fmt.Sprintf("%s %s", p.run(n.Func), p.run(n.Arg))
}

func (p *typedPrinter) VisitBlock(n *typed.Block) any {
	p.indent++
	preface := p.preface()
	parts := make([]string, len(n.Body))
	for i, e := range n.Body {
		parts[i] = p.run(e)
	}
	body := strings.Join(parts, preface)
	result := preface + body + preface + "# type: " + n.Type().String()
	p.indent--
	return result
}

func (p *typedPrinter) VisitCond(n *typed.Cond) any {
	return fmt.Sprintf("if %s then %s else %s", p.run(n.Pred), p.run(n.Cons), p.run(n.Alt))
}

func (p *typedPrinter) VisitDefine(n *typed.Define) any {
	return fmt.Sprintf("let %s :: %s = %s", showTypedPattern(n.Target), n.Target.Type().String(), p.run(n.Value))
}

func (p *typedPrinter) VisitFunction(n *typed.Function) any {
	return fmt.Sprintf(`\%s -> %s`, showTypedPattern(n.Param), p.run(n.Body))
}

func (p *typedPrinter) VisitImpl(n *typed.Impl) any {
	p.indent++
	preface := p.preface()
	methods := make([]string, len(n.Methods))
	for i, m := range n.Methods {
		methods[i] = p.VisitDefine(m).(string)
	}
	body := preface + strings.Join(methods, preface)
	p.indent--
	return fmt.Sprintf("impl %s (%s\n%s)", n.Trait, body, strings.Repeat(indentUnit, p.indent+1))
}

func (p *typedPrinter) VisitList(n *typed.List) any {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = p.run(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (p *typedPrinter) VisitMatch(n *typed.Match) any {
	cases := make([]string, len(n.Cases))
	for i, c := range n.Cases {
		cases[i] = fmt.Sprintf("%s -> %s", showTypedPattern(c.Pattern), p.run(c.Body))
	}
	return fmt.Sprintf("match %s | %s end", p.run(n.Subject), strings.Join(cases, " | "))
}

func (p *typedPrinter) VisitPair(n *typed.Pair) any {
	return fmt.Sprintf("(%s, %s)", p.run(n.First), p.run(n.Second))
}

func (p *typedPrinter) VisitName(n *typed.Name) any {
	return fmt.Sprintf("[%s :: %s]", n.Value, n.Type().String())
}

func (p *typedPrinter) VisitScalar(n *typed.Scalar) any {
	return showTypedScalar(n.Kind, n.Int, n.Float, n.String, n.Bool)
}

func (p *typedPrinter) VisitTrait(n *typed.Trait) any {
	p.indent++
	preface := p.preface()
	methods := make([]string, len(n.Methods))
	for i, m := range n.Methods {
		methods[i] = fmt.Sprintf("%s :: %s", m.Name, m.Type.String())
	}
	body := preface + strings.Join(methods, preface)
	p.indent--
	return fmt.Sprintf("trait %s (%s\n%s)", n.Name, body, strings.Repeat(indentUnit, p.indent+1))
}

func (p *typedPrinter) VisitUnit(n *typed.Unit) any { return "()" }

// showTypedPattern renders a typed-tier pattern without its type (the
// caller typically appends the pattern's overall Type() separately).
func showTypedPattern(p typed.Pattern) string {
	switch n := p.(type) {
	case *typed.FreeName:
		return n.Value
	case *typed.PinnedName:
		return "^" + n.Value
	case *typed.ScalarPattern:
		return showTypedScalar(n.Kind, n.Int, n.Float, n.String, n.Bool)
	case *typed.PairPattern:
		return fmt.Sprintf("(%s, %s)", showTypedPattern(n.First), showTypedPattern(n.Second))
	case *typed.ListPattern:
		parts := make([]string, len(n.Initial))
		for i, e := range n.Initial {
			parts[i] = showTypedPattern(e)
		}
		rest := ""
		if n.Rest != nil {
			rest = ", .." + showTypedPattern(n.Rest)
		}
		return "[" + strings.Join(parts, ", ") + rest + "]"
	case *typed.UnitPattern:
		return "()"
	default:
		return "<pattern>"
	}
}

// showTypedScalar mirrors showScalar for the typed tier's own ScalarKind
// enum, which the constraint generator copies straight from ast.ScalarKind
// (same int ordering: int, float, string, bool, unit).
func showTypedScalar(kind typed.ScalarKind, i int64, f float64, s string, b bool) string {
	switch kind {
	case typed.ScalarInt:
		return strconv.FormatInt(i, 10)
	case typed.ScalarFloat:
		return strconv.FormatFloat(f, 'g', -1, 64)
	case typed.ScalarString:
		return strconv.Quote(s)
	case typed.ScalarBool:
		return strconv.FormatBool(b)
	default:
		return "()"
	}
}
