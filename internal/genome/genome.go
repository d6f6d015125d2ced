// Package genome defines the input-sequence chromosome searched by the
// evolutionary engine and its compact interchange encoding.
package genome

import (
	"math/rand"

	"github.com/vovakirdan/jumpman/internal/core"
)

// Genome is an ordered sequence of input samples, one per simulation step.
// A scored genome is never modified; breeding always builds new slices.
type Genome []core.InputSample

// RandomSample draws one input sample. The horizontal intent is uniform over
// None, Left and Right; jump is an independent fair coin.
func RandomSample(rng *rand.Rand) core.InputSample {
	return core.InputSample{
		Horizontal: core.Horizontal(rng.Intn(3)),
		Jump:       rng.Intn(2) == 1,
	}
}

// Random returns a genome of n freshly drawn samples.
func Random(rng *rand.Rand, n int) Genome {
	g := make(Genome, n)
	for i := range g {
		g[i] = RandomSample(rng)
	}
	return g
}

// Extend returns a copy of g with n random samples appended.
func (g Genome) Extend(rng *rand.Rand, n int) Genome {
	out := make(Genome, len(g), len(g)+n)
	copy(out, g)
	for i := 0; i < n; i++ {
		out = append(out, RandomSample(rng))
	}
	return out
}

// Clone returns an independent copy of g.
func (g Genome) Clone() Genome {
	if g == nil {
		return nil
	}
	out := make(Genome, len(g))
	copy(out, g)
	return out
}

// Equal reports whether two genomes hold the same samples in the same order.
func (g Genome) Equal(o Genome) bool {
	if len(g) != len(o) {
		return false
	}
	for i := range g {
		if g[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders the genome in the compact per-sample notation, e.g. "R R+J -".
func (g Genome) String() string {
	if len(g) == 0 {
		return ""
	}
	buf := make([]byte, 0, len(g)*3)
	for i, s := range g {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, s.String()...)
	}
	return string(buf)
}
