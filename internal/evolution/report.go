package evolution

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/jumpman/internal/genome"
)

// Report summarizes one completed generation.
type Report struct {
	Generation     int           // 1-based generation index
	MaxScore       float64       // Best score in the generation
	BestGenome     genome.Genome // Copy of the best genome; safe to keep
	MeanScore      float64
	StdDevScore    float64
	MedianScore    float64
	MutationRate   int // Rate in effect for the next generation
	GenomeLength   int // Length of the genomes that were evaluated
	PopulationSize int
	Grew           bool          // The next population received extra samples
	Elapsed        time.Duration // Wall time of the generation
}

func newReport(gen int, scores []float64, best genome.Genome, rate int, grew bool, size int, elapsed time.Duration) Report {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	r := Report{
		Generation:     gen,
		MaxScore:       sorted[len(sorted)-1],
		BestGenome:     best.Clone(),
		MeanScore:      stat.Mean(sorted, nil),
		MedianScore:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		MutationRate:   rate,
		GenomeLength:   len(best),
		PopulationSize: size,
		Grew:           grew,
		Elapsed:        elapsed,
	}
	if len(sorted) > 1 {
		r.StdDevScore = stat.StdDev(sorted, nil)
	}
	if math.IsNaN(r.StdDevScore) {
		r.StdDevScore = 0
	}
	return r
}
