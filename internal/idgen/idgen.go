// Package idgen hands out integer ids unique within one Generator. It replaces the
// global/class-level monotonic counters the reference implementation uses
// for fresh type variables and synthesized pattern names with an explicit,
// threaded generator, so a compilation run never shares mutable state with
// another run in the same process.
package idgen

// Generator produces a strictly increasing sequence of ids starting at 0.
// It is not safe for concurrent use; each compilation run owns one.
type Generator struct {
	next uint64
}

// New returns a fresh Generator.
func New() *Generator {
	return &Generator{}
}

// Next returns the next unused id.
func (g *Generator) Next() uint64 {
	id := g.next
	g.next++
	return id
}

// Name synthesizes a fresh, human-debuggable identifier with the given
// prefix, used for pattern-decomposition temporaries and the like.
func (g *Generator) Name(prefix string) string {
	id := g.Next()
	return prefix + "$" + itoa(id)
}

func itoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
