// Package compiler wires the phases — decode, lex, parse, expand string
// escapes, reject unsupported syntax, optionally sort definitions, type check, check
// exhaustiveness, lower, fold, inline, and encode — into the single pipeline
// the reference's run.py run_code drives. No phase recovers from another
// phase's diagnostics; the first phase to produce any stops the run there
// and those diagnostics are what gets reported.
package compiler

import (
	"strings"

	"github.com/livy-lang/livy/internal/ast"
	"github.com/livy-lang/livy/internal/bytecode"
	"github.com/livy-lang/livy/internal/defsort"
	"github.com/livy-lang/livy/internal/diagnostic"
	"github.com/livy-lang/livy/internal/exhaustive"
	"github.com/livy-lang/livy/internal/format"
	"github.com/livy-lang/livy/internal/idgen"
	"github.com/livy-lang/livy/internal/lexer"
	"github.com/livy-lang/livy/internal/lower"
	"github.com/livy-lang/livy/internal/optimize/fold"
	"github.com/livy-lang/livy/internal/optimize/inline"
	"github.com/livy-lang/livy/internal/parser"
	"github.com/livy-lang/livy/internal/srcenc"
	"github.com/livy-lang/livy/internal/strescape"
	"github.com/livy-lang/livy/internal/token"
	"github.com/livy-lang/livy/internal/typecheck"
)

// Options carries every flag that changes how the pipeline runs. It holds
// the same information as cli.Config, kept as its own type so this
// package never has to import the flag-parsing layer.
type Options struct {
	Encoding       string
	Compress       bool
	ExpansionLevel int
	SortDefs       bool
	ShowTokens     bool
	ShowAST        bool
	ShowTypes      bool
	ReportFormat   diagnostic.Format
}

// Result is the outcome of a single Run: exactly one of Message (a dump or
// rendered diagnostics, meant for the text sink) or Bytecode (meant for
// the output file) is non-empty/non-nil on success; a dump flag or a
// reported error always produces Message and leaves Bytecode nil.
type Result struct {
	Message  string
	Bytecode []byte
}

// Run decodes, compiles, and assembles raw source bytes into bytecode
// according to opts, stopping at the first phase that reports diagnostics
// or asks for an early dump.
func Run(raw []byte, opts Options) Result {
	source, err := srcenc.Decode(raw, opts.Encoding)
	if err != nil {
		return Result{Message: renderAll(opts.ReportFormat, "", asDiagnostics(err))}
	}

	tokens, lexErrs := lexer.Lex(source)
	if opts.ShowTokens {
		return Result{Message: showTokens(tokens)}
	}
	if len(lexErrs) > 0 {
		return Result{Message: renderAll(opts.ReportFormat, source, lexErrs)}
	}

	parsed, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		return Result{Message: renderAll(opts.ReportFormat, source, parseErrs)}
	}
	tree := strescape.ExpandTree(parsed).(*ast.Block)

	if opts.ShowAST {
		return Result{Message: format.AST(tree)}
	}

	if d := rejectUnsupported(tree); d != nil {
		return Result{Message: renderAll(opts.ReportFormat, source, []*diagnostic.Diagnostic{d})}
	}

	if opts.SortDefs {
		tree = defsort.Sort(tree).(*ast.Block)
	}

	ids := idgen.New()
	typedTree, typeErrs := typecheck.Infer(ids, tree)
	if opts.ShowTypes {
		return Result{Message: format.Typed(typedTree)}
	}
	if len(typeErrs) > 0 {
		return Result{Message: renderAll(opts.ReportFormat, source, typeErrs)}
	}

	if checkErrs := exhaustive.Check(typedTree); len(checkErrs) > 0 {
		return Result{Message: renderAll(opts.ReportFormat, source, checkErrs)}
	}

	loweredTree := lower.New(ids).Run(typedTree)
	loweredTree = fold.New().Run(loweredTree)
	loweredTree = inline.Expand(loweredTree, opts.ExpansionLevel)

	code, err := bytecode.FromTree(loweredTree, opts.Compress)
	if err != nil {
		return Result{Message: renderAll(opts.ReportFormat, source, asDiagnostics(err))}
	}
	return Result{Bytecode: code}
}

func asDiagnostics(err error) []*diagnostic.Diagnostic {
	if d, ok := err.(*diagnostic.Diagnostic); ok {
		return []*diagnostic.Diagnostic{d}
	}
	return []*diagnostic.Diagnostic{diagnostic.NewFatalInternal(err)}
}

func renderAll(f diagnostic.Format, source string, errs []*diagnostic.Diagnostic) string {
	rendered := make([]string, len(errs))
	for i, e := range errs {
		rendered[i] = e.Render(f, source)
	}
	return strings.Join(rendered, "\n")
}

func showTokens(tokens []token.Token) string {
	lines := make([]string, len(tokens))
	for i, t := range tokens {
		lines[i] = t.String()
	}
	return strings.Join(lines, "\n")
}
