package lower

import (
	"github.com/livy-lang/livy/internal/lowered"
	"github.com/livy-lang/livy/internal/typed"
)

// asUnary recognizes Apply(Name("~"), operand), the only unary NativeOp.
func asUnary(n *typed.Apply) (lowered.OperationTypes, typed.Node, bool) {
	if name, ok := n.Func.(*typed.Name); ok && name.Value == "~" {
		return lowered.NEG, n.Arg, true
	}
	return 0, nil, false
}

var comparisonSugar = map[string]bool{">=": true, "<=": true, "/=": true}

// asBinary recognizes Apply(Apply(Name(op), left), right) where op is one
// of the ten binary NativeOp primitives or one of the three comparison
// sugars lowerBinary desugars inline.
func asBinary(n *typed.Apply) (string, typed.Node, typed.Node, bool) {
	outer, ok := n.Func.(*typed.Apply)
	if !ok {
		return "", nil, nil, false
	}
	name, ok := outer.Func.(*typed.Name)
	if !ok {
		return "", nil, nil, false
	}
	if _, isNative := lowered.OperatorSymbols[name.Value]; isNative {
		return name.Value, outer.Arg, n.Arg, true
	}
	if comparisonSugar[name.Value] {
		return name.Value, outer.Arg, n.Arg, true
	}
	return "", nil, nil, false
}

// asLogical recognizes the boolean sugar "and"/"or" (binary) and "not"
// (unary), none of which are NativeOp primitives.
func asLogical(n *typed.Apply) (string, []typed.Node, bool) {
	if name, ok := n.Func.(*typed.Name); ok && name.Value == "not" {
		return "not", []typed.Node{n.Arg}, true
	}
	outer, ok := n.Func.(*typed.Apply)
	if !ok {
		return "", nil, false
	}
	name, ok := outer.Func.(*typed.Name)
	if !ok {
		return "", nil, false
	}
	if name.Value == "and" || name.Value == "or" {
		return name.Value, []typed.Node{outer.Arg, n.Arg}, true
	}
	return "", nil, false
}
