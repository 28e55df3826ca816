package bytecode

import (
	"github.com/livy-lang/livy/internal/codegen"
	"github.com/livy-lang/livy/internal/lowered"
)

// FromTree generates instructions for tree with a fresh Generator and
// encodes them in one step.
func FromTree(tree lowered.Node, compress bool) ([]byte, error) {
	return Encode(codegen.New().Run(tree), compress)
}
