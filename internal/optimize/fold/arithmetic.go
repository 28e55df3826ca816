package fold

import (
	"math"

	"github.com/livy-lang/livy/internal/lowered"
	"github.com/livy-lang/livy/internal/span"
)

func foldNeg(sp span.Span, s *lowered.Scalar) (lowered.Node, bool) {
	switch s.Kind {
	case lowered.ScalarInt:
		return lowered.NewScalarInt(sp, -s.Int), true
	case lowered.ScalarFloat:
		return lowered.NewScalarFloat(sp, -s.Float), true
	default:
		return nil, false
	}
}

// foldMath folds ADD/SUB/MUL/DIV/EXP/MOD over two literal operands of the
// same kind. DIV on two ints floors (integer division); every other
// numeric op and DIV on floats uses ordinary arithmetic.
func foldMath(sp span.Span, op lowered.OperationTypes, l, r *lowered.Scalar) (lowered.Node, bool) {
	if l.Kind != r.Kind {
		return nil, false
	}
	switch l.Kind {
	case lowered.ScalarInt:
		return foldIntMath(sp, op, l.Int, r.Int)
	case lowered.ScalarFloat:
		return foldFloatMath(sp, op, l.Float, r.Float)
	default:
		return nil, false
	}
}

func foldIntMath(sp span.Span, op lowered.OperationTypes, l, r int64) (lowered.Node, bool) {
	switch op {
	case lowered.ADD:
		return lowered.NewScalarInt(sp, l+r), true
	case lowered.SUB:
		return lowered.NewScalarInt(sp, l-r), true
	case lowered.MUL:
		return lowered.NewScalarInt(sp, l*r), true
	case lowered.DIV:
		if r == 0 {
			return nil, false
		}
		q := l / r
		if (l%r != 0) && ((l < 0) != (r < 0)) {
			q--
		}
		return lowered.NewScalarInt(sp, q), true
	case lowered.MOD:
		if r == 0 {
			return nil, false
		}
		m := l % r
		if m != 0 && ((l < 0) != (r < 0)) {
			m += r
		}
		return lowered.NewScalarInt(sp, m), true
	case lowered.EXP:
		return lowered.NewScalarInt(sp, int64(math.Pow(float64(l), float64(r)))), true
	}
	return nil, false
}

func foldFloatMath(sp span.Span, op lowered.OperationTypes, l, r float64) (lowered.Node, bool) {
	switch op {
	case lowered.ADD:
		return lowered.NewScalarFloat(sp, l+r), true
	case lowered.SUB:
		return lowered.NewScalarFloat(sp, l-r), true
	case lowered.MUL:
		return lowered.NewScalarFloat(sp, l*r), true
	case lowered.DIV:
		if r == 0 {
			return nil, false
		}
		return lowered.NewScalarFloat(sp, l/r), true
	case lowered.MOD:
		if r == 0 {
			return nil, false
		}
		return lowered.NewScalarFloat(sp, math.Mod(l, r)), true
	case lowered.EXP:
		return lowered.NewScalarFloat(sp, math.Pow(l, r)), true
	}
	return nil, false
}

// foldComparison folds EQUAL/GREATER/LESS; the other comparisons are
// already desugared to these by internal/lower before fold ever runs.
func foldComparison(sp span.Span, op lowered.OperationTypes, l, r *lowered.Scalar) (lowered.Node, bool) {
	if l.Kind != r.Kind {
		if op == lowered.EQUAL {
			return lowered.NewScalarBool(sp, false), true
		}
		return nil, false
	}
	var result bool
	switch l.Kind {
	case lowered.ScalarInt:
		result = compareOrdered(op, l.Int, r.Int)
	case lowered.ScalarFloat:
		result = compareOrdered(op, l.Float, r.Float)
	case lowered.ScalarString:
		result = compareOrdered(op, l.String, r.String)
	case lowered.ScalarBool:
		if op != lowered.EQUAL {
			return nil, false
		}
		result = l.Bool == r.Bool
	}
	return lowered.NewScalarBool(sp, result), true
}

func compareOrdered[T int64 | float64 | string](op lowered.OperationTypes, l, r T) bool {
	switch op {
	case lowered.EQUAL:
		return l == r
	case lowered.GREATER:
		return l > r
	case lowered.LESS:
		return l < r
	}
	return false
}
