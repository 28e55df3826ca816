// Package codegen turns a lowered, optimized tree into a flat sequence
// of bytecode instructions. It does not itself produce bytes; see
// internal/bytecode for the wire encoding.
package codegen

import (
	"github.com/livy-lang/livy/internal/lowered"
	"github.com/livy-lang/livy/internal/scope"
)

// OpCode identifies a bytecode instruction.
type OpCode uint8

const (
	LoadUnit OpCode = iota
	LoadBool
	LoadString
	LoadInt
	LoadFloat

	LoadFunc
	BuildPair
	BuildList

	LoadName
	StoreName

	Apply
	Native

	Jump
	Branch
)

// NativeOpCodes maps a lowered native operation to the 1-based index the
// VM's primitive-operation table expects.
var NativeOpCodes = map[lowered.OperationTypes]int{
	lowered.ADD:     1,
	lowered.DIV:     2,
	lowered.EQUAL:   3,
	lowered.EXP:     4,
	lowered.GREATER: 5,
	lowered.JOIN:    6,
	lowered.LESS:    7,
	lowered.MOD:     8,
	lowered.MUL:     9,
	lowered.NEG:     10,
	lowered.SUB:     11,
}

// Instruction is a single (opcode, operands) bytecode unit. Operand
// kinds vary by opcode; internal/bytecode interprets Operands
// positionally per opcode per the wire format.
type Instruction struct {
	OpCode   OpCode
	Operands []any
}

func instr(op OpCode, operands ...any) Instruction {
	return Instruction{OpCode: op, Operands: operands}
}

// Generator walks a lowered tree producing instructions, threading a
// Scope[int] that assigns each name a small per-scope integer index.
type Generator struct {
	currentIndex  int
	prevIndexes   []int
	currentScope  *scope.Scope[int]
	functionLevel int
}

// New returns a Generator ready to Run over a tree.
func New() *Generator {
	return &Generator{currentScope: scope.New[int]()}
}

func (g *Generator) pushScope() {
	g.currentScope = g.currentScope.Down()
	g.prevIndexes = append(g.prevIndexes, g.currentIndex)
	g.currentIndex = 0
}

func (g *Generator) popScope() {
	g.currentScope = g.currentScope.Up()
	last := len(g.prevIndexes) - 1
	g.currentIndex = g.prevIndexes[last]
	g.prevIndexes = g.prevIndexes[:last]
}

// Run emits the instruction sequence for n.
func (g *Generator) Run(n lowered.Node) []Instruction {
	if n == nil {
		return nil
	}
	return n.Accept(g).([]Instruction)
}

func (g *Generator) VisitApply(n *lowered.Apply) any {
	out := append(g.Run(n.Arg), g.Run(n.Func)...)
	return append(out, instr(Apply))
}

func (g *Generator) VisitBlock(n *lowered.Block) any {
	g.pushScope()
	var out []Instruction
	for _, c := range n.Body {
		out = append(out, g.Run(c)...)
	}
	g.popScope()
	return out
}

func (g *Generator) VisitCond(n *lowered.Cond) any {
	cons := g.Run(n.Cons)
	alt := g.Run(n.Alt)
	out := g.Run(n.Pred)
	out = append(out, instr(Branch, len(cons)+1))
	out = append(out, cons...)
	out = append(out, instr(Jump, len(alt)))
	out = append(out, alt...)
	return out
}

func (g *Generator) VisitDefine(n *lowered.Define) any {
	value := g.Run(n.Value)
	if !g.currentScope.Contains(n.Name) {
		g.currentScope.Bind(n.Name, g.currentIndex)
		g.currentIndex++
	}
	idx, _ := g.currentScope.Get(n.Name)
	return append(value, instr(StoreName, idx))
}

func (g *Generator) VisitFunction(n *lowered.Function) any {
	g.pushScope()
	g.functionLevel++
	g.currentScope.Bind(n.Param, 0)
	g.currentIndex++
	body := g.Run(n.Body)
	g.functionLevel--
	g.popScope()
	return []Instruction{instr(LoadFunc, body)}
}

func (g *Generator) VisitList(n *lowered.List) any {
	var out []Instruction
	for _, e := range n.Elements {
		out = append(out, g.Run(e)...)
	}
	return append(out, instr(BuildList, len(n.Elements)))
}

func (g *Generator) VisitPair(n *lowered.Pair) any {
	out := g.Run(n.Second)
	out = append(out, g.Run(n.First)...)
	return append(out, instr(BuildPair))
}

func (g *Generator) VisitName(n *lowered.Name) any {
	if !g.currentScope.Contains(n.Value) {
		g.currentScope.Bind(n.Value, g.currentIndex)
		g.currentIndex++
	}
	depth := g.currentScope.Depth(n.Value)
	if g.functionLevel > 0 && depth > 0 {
		depth = 0
	} else {
		depth++
	}
	position, _ := g.currentScope.Get(n.Value)
	return []Instruction{instr(LoadName, depth, position)}
}

func (g *Generator) VisitNativeOp(n *lowered.NativeOp) any {
	var right []Instruction
	if n.Right != nil {
		right = g.Run(n.Right)
	}
	out := append(right, g.Run(n.Left)...)
	return append(out, instr(Native, NativeOpCodes[n.Operation]))
}

func (g *Generator) VisitScalar(n *lowered.Scalar) any {
	switch n.Kind {
	case lowered.ScalarBool:
		return []Instruction{instr(LoadBool, n.Bool)}
	case lowered.ScalarFloat:
		return []Instruction{instr(LoadFloat, n.Float)}
	case lowered.ScalarInt:
		return []Instruction{instr(LoadInt, n.Int)}
	default:
		return []Instruction{instr(LoadString, n.String)}
	}
}

func (g *Generator) VisitUnit(n *lowered.Unit) any {
	return []Instruction{instr(LoadUnit)}
}

var _ lowered.Visitor = (*Generator)(nil)
