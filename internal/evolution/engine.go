package evolution

import (
	"context"
	"io"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/vovakirdan/jumpman/internal/genome"
)

// Evaluator scores a genome. Implementations must be safe for concurrent
// use and return the same score for the same genome.
type Evaluator interface {
	Evaluate(g genome.Genome) float64
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(g genome.Genome) float64

// Evaluate calls f(g).
func (f EvaluatorFunc) Evaluate(g genome.Genome) float64 {
	return f(g)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine runs the generation loop. It is not safe for concurrent use;
// parallelism happens inside Step.
type Engine struct {
	cfg     Config
	eval    Evaluator
	log     *log.Logger
	rng     *rand.Rand
	workers int

	population   []genome.Genome
	generation   int
	mutationRate int

	prevBest   float64
	baseline   float64 // Best score at the last growth, for conditional growth
	bestScore  float64
	bestGenome genome.Genome
}

// New validates cfg and creates an engine with a random initial population.
func New(cfg Config, eval Evaluator, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if eval == nil {
		return nil, ErrNilEvaluator
	}

	e := &Engine{
		cfg:          cfg,
		eval:         eval,
		log:          log.New(io.Discard),
		rng:          rand.New(rand.NewSource(cfg.Seed)),
		workers:      cfg.Workers,
		mutationRate: cfg.InitialMutationRate,
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	for _, opt := range opts {
		opt(e)
	}

	e.population = make([]genome.Genome, cfg.PopulationSize)
	for i := range e.population {
		e.population[i] = genome.Random(e.rng, cfg.InitialGenomeLength)
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Generation returns the number of completed generations.
func (e *Engine) Generation() int {
	return e.generation
}

// MutationRate returns the rate that the next breeding phase will use.
func (e *Engine) MutationRate() int {
	return e.mutationRate
}

// Best returns the highest score seen so far and a copy of its genome.
func (e *Engine) Best() (float64, genome.Genome) {
	return e.bestScore, e.bestGenome.Clone()
}

// Step runs one generation: evaluate, rank, breed, adapt the mutation rate
// and grow. It returns the report for the generation just evaluated. The
// context is checked once, before evaluation starts.
func (e *Engine) Step(ctx context.Context) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	start := time.Now()
	e.generation++
	gen := e.generation

	scores := e.evaluate()
	order := rank(scores)

	best := scores[order[0]]
	bestGenome := e.population[order[0]]
	if gen == 1 || best > e.bestScore {
		e.bestScore = best
		e.bestGenome = bestGenome.Clone()
	}
	if gen == 1 {
		e.baseline = best
	}

	grow := e.growthAmount(gen, best)
	elites := make([]genome.Genome, e.cfg.Diversity)
	for i := range elites {
		elites[i] = e.population[order[i]]
	}
	e.population = e.breed(elites, grow)

	if gen > 1 {
		e.adaptMutationRate(best)
	}
	e.prevBest = best
	if grow > 0 {
		e.baseline = best
		e.log.Debug("genome grown", "generation", gen, "added", grow, "length", len(e.population[0]))
	}

	return newReport(gen, scores, bestGenome, e.mutationRate, grow > 0, e.cfg.PopulationSize, time.Since(start)), nil
}

// Run calls Step until the observer asks to stop or ctx is done. It returns
// the last completed report.
func (e *Engine) Run(ctx context.Context, obs Observer) (Report, error) {
	var last Report
	for {
		r, err := e.Step(ctx)
		if err != nil {
			return last, err
		}
		last = r
		if obs != nil && !obs.Observe(r) {
			return last, nil
		}
	}
}

func (e *Engine) evaluate() []float64 {
	scores := make([]float64, len(e.population))
	p := pool.New().WithMaxGoroutines(e.workers)
	for i, g := range e.population {
		i, g := i, g
		p.Go(func() {
			scores[i] = e.eval.Evaluate(g)
		})
	}
	p.Wait()
	return scores
}

// rank returns population indices by descending score. Ties keep
// population order.
func rank(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

func (e *Engine) breed(elites []genome.Genome, grow int) []genome.Genome {
	next := make([]genome.Genome, e.cfg.PopulationSize)

	start := 0
	if e.cfg.PreserveElite {
		next[0] = elites[0].Clone()
		if grow > 0 {
			next[0] = next[0].Extend(e.rng, grow)
		}
		start = 1
	}

	plan := planBreeding(e.rng, elites, start, len(next))
	rate := e.mutationRate
	minPts, maxPts := e.cfg.MinCrossovers, e.cfg.MaxCrossovers

	p := pool.New().WithMaxGoroutines(e.workers)
	for _, task := range plan {
		task := task
		p.Go(func() {
			rng := rand.New(rand.NewSource(task.seed))
			for k := 0; k < task.count; k++ {
				child := Crossover(rng, task.p1, task.p2, minPts, maxPts)
				Mutate(rng, child, rate)
				if grow > 0 {
					child = child.Extend(rng, grow)
				}
				next[task.offset+k] = child
			}
		})
	}
	p.Wait()
	return next
}

// adaptMutationRate halves the rate (more mutation) when the best score did
// not improve on the previous generation and doubles it otherwise.
func (e *Engine) adaptMutationRate(best float64) {
	old := e.mutationRate
	if best > e.prevBest {
		e.mutationRate = min(e.mutationRate*2, e.cfg.MaxMutationRate)
	} else {
		e.mutationRate = max(e.mutationRate/2, e.cfg.MinMutationRate)
	}
	if e.mutationRate != old {
		e.log.Debug("mutation rate changed", "generation", e.generation, "from", old, "to", e.mutationRate)
	}
}

// growthAmount returns how many samples to append to the next population.
// Forced growth always applies on its interval; conditional growth needs
// the best score to have improved by more than the threshold since the
// last growth.
func (e *Engine) growthAmount(gen int, best float64) int {
	forced := gen%e.cfg.ForcedGrowthInterval == 0
	periodic := gen%e.cfg.GrowthInterval == 0 && best-e.baseline > e.cfg.GrowthThreshold
	if !forced && !periodic {
		return 0
	}

	amount := e.cfg.GrowthAmount
	if e.cfg.MaxGenomeLength > 0 {
		current := len(e.population[0])
		amount = min(amount, e.cfg.MaxGenomeLength-current)
	}
	return max(amount, 0)
}
