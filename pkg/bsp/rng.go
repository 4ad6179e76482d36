package bsp

import "math/bits"

// Generator is a small deterministic 64-bit generator (wyrand). The same seed
// always yields the same sequence, on every platform.
type Generator struct {
	seed uint64
}

// NewGenerator returns a generator starting from seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{seed: seed}
}

// Next advances the generator and returns the next value.
func (g *Generator) Next() uint64 {
	g.seed += 0xA0761D6478BD642F
	hi, lo := bits.Mul64(g.seed, g.seed^0xE7037ED1A0B428DB)
	return hi ^ lo
}

// Intn returns a value in [0, n). It panics if n <= 0.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		panic("bsp: Intn called with n <= 0")
	}
	return int(g.Next() % uint64(n))
}

// Shuffle permutes s in place (Fisher-Yates, walking down from the end).
func Shuffle[T any](g *Generator, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
