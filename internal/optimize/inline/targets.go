package inline

import "github.com/livy-lang/livy/internal/lowered"

// calcThreshold scales the --expansion-level CLI flag (1, 2, or 3) into
// the Scorer-unit budget a candidate function's body must fit under.
func calcThreshold(level int) int {
	return level * 20
}

// GenerateTargets decides which of the functions a Finder collected are
// worth inlining: small enough per Scorer, and not self-referential,
// since inlining a recursive call would never terminate.
func GenerateTargets(finder *Finder, threshold int) map[*lowered.Function]bool {
	allowAll := threshold == 0
	targets := map[*lowered.Function]bool{}
	for _, fn := range finder.Funcs {
		if name, isDefined := finder.DefinedFuncs[fn]; isDefined && referencesName(fn.Body, name) {
			continue
		}
		score := Scorer{}.Run(fn.Body)
		bonus := 3
		if _, isDefined := finder.DefinedFuncs[fn]; isDefined {
			bonus = 1
		}
		if allowAll || score+bonus <= threshold {
			targets[fn] = true
		}
	}
	return targets
}

// referencesName reports whether name is referenced anywhere in n,
// without descending into a nested Function that rebinds the same
// parameter name (which would shadow, not recurse).
func referencesName(n lowered.Node, name string) bool {
	if n == nil {
		return false
	}
	switch v := n.(type) {
	case *lowered.Name:
		return v.Value == name
	case *lowered.Apply:
		return referencesName(v.Func, name) || referencesName(v.Arg, name)
	case *lowered.Block:
		for _, c := range v.Body {
			if referencesName(c, name) {
				return true
			}
		}
		return false
	case *lowered.Cond:
		return referencesName(v.Pred, name) || referencesName(v.Cons, name) || referencesName(v.Alt, name)
	case *lowered.Define:
		return referencesName(v.Value, name)
	case *lowered.Function:
		if v.Param == name {
			return false
		}
		return referencesName(v.Body, name)
	case *lowered.List:
		for _, e := range v.Elements {
			if referencesName(e, name) {
				return true
			}
		}
		return false
	case *lowered.NativeOp:
		return referencesName(v.Left, name) || referencesName(v.Right, name)
	case *lowered.Pair:
		return referencesName(v.First, name) || referencesName(v.Second, name)
	default:
		return false
	}
}
