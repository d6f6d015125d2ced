package evolution

import (
	"math/rand"
	"sort"

	"github.com/vovakirdan/jumpman/internal/genome"
)

// pair is one breeding assignment: two elite parents, the slice of the next
// population their children fill, and the seed of the task's generator.
type pair struct {
	p1, p2 genome.Genome
	offset int
	count  int
	seed   int64
}

// Crossover builds a child from two parents by multi-point crossover.
// The child has the length of the shorter parent. Between minPoints and
// maxPoints cut points are drawn; counts above the available positions are
// clamped. Gene i comes from the first parent when an even number of cut
// points lie at or below i, otherwise from the second.
func Crossover(rng *rand.Rand, p1, p2 genome.Genome, minPoints, maxPoints int) genome.Genome {
	if rng.Intn(2) == 1 {
		p1, p2 = p2, p1
	}

	n := min(len(p1), len(p2))
	child := make(genome.Genome, n)
	if n == 0 {
		return child
	}

	count := drawPointCount(rng, minPoints, maxPoints, n)
	points := make([]int, count)
	for i := range points {
		points[i] = rng.Intn(n)
	}
	sort.Ints(points)
	points = dedupe(points)

	// Walk the sorted points alongside i instead of recounting each time.
	cut := 0
	for i := 0; i < n; i++ {
		for cut < len(points) && points[cut] <= i {
			cut++
		}
		if cut%2 == 0 {
			child[i] = p1[i]
		} else {
			child[i] = p2[i]
		}
	}
	return child
}

func drawPointCount(rng *rand.Rand, lo, hi, n int) int {
	lo = max(lo, 0)
	hi = min(hi, n)
	if lo > hi {
		lo = hi
	}
	return lo + rng.Intn(hi-lo+1)
}

func dedupe(sorted []int) []int {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, v := range sorted[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// Mutate replaces each gene of g, in place, with a fresh random sample with
// probability 1/rate. It returns the number of replaced genes.
func Mutate(rng *rand.Rand, g genome.Genome, rate int) int {
	if rate < 1 {
		rate = 1
	}
	n := 0
	for i := range g {
		if rng.Intn(rate) == 0 {
			g[i] = genome.RandomSample(rng)
			n++
		}
	}
	return n
}

// elitePairs forms every unordered pair of the given elites in rank order.
func elitePairs(elites []genome.Genome) [][2]genome.Genome {
	pairs := make([][2]genome.Genome, 0, len(elites)*(len(elites)-1)/2)
	for i := 0; i < len(elites); i++ {
		for j := i + 1; j < len(elites); j++ {
			pairs = append(pairs, [2]genome.Genome{elites[i], elites[j]})
		}
	}
	return pairs
}

// planBreeding splits slots [start, total) across the elite pairs. Every pair
// gets (total-start)/len(pairs) children and the first pairs absorb the
// remainder, so the population size never drifts. Seeds are drawn from rng
// in pair order, which keeps results independent of scheduling.
func planBreeding(rng *rand.Rand, elites []genome.Genome, start, total int) []pair {
	parents := elitePairs(elites)
	slots := total - start
	per := slots / len(parents)
	extra := slots % len(parents)

	plan := make([]pair, 0, len(parents))
	offset := start
	for i, pp := range parents {
		count := per
		if i < extra {
			count++
		}
		plan = append(plan, pair{
			p1:     pp[0],
			p2:     pp[1],
			offset: offset,
			count:  count,
			seed:   rng.Int63(),
		})
		offset += count
	}
	return plan
}
