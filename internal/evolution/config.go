// Package evolution implements the genetic search over input sequences:
// population initialization, parallel scoring, elite pairing, multi-point
// crossover, point mutation, adaptive mutation rate and genome growth.
package evolution

import (
	"errors"
	"fmt"
)

// Configuration errors returned by Validate and New.
var (
	ErrEmptyPopulation = errors.New("evolution: population size must be > 0")
	ErrNoElites        = errors.New("evolution: diversity must be >= 2 to form a breeding pair")
	ErrTooManyElites   = errors.New("evolution: diversity exceeds population size")
	ErrEmptyGenome     = errors.New("evolution: initial genome length must be > 0")
	ErrCrossoverBounds = errors.New("evolution: invalid crossover point bounds")
	ErrMutationRate    = errors.New("evolution: invalid mutation rate bounds")
	ErrGrowthSchedule  = errors.New("evolution: invalid growth schedule")
	ErrNilEvaluator    = errors.New("evolution: evaluator is required")
)

// Config holds the engine parameters.
//
// Mutation rates are denominators: each gene mutates with probability
// 1/rate, so a smaller rate means more mutation.
type Config struct {
	PopulationSize       int     `yaml:"population_size"`
	Diversity            int     `yaml:"diversity"`             // Number of elites kept for breeding
	InitialGenomeLength  int     `yaml:"initial_genome_length"` // Samples per genome in generation 1
	MinCrossovers        int     `yaml:"min_crossovers"`
	MaxCrossovers        int     `yaml:"max_crossovers"`
	InitialMutationRate  int     `yaml:"initial_mutation_rate"`
	MinMutationRate      int     `yaml:"min_mutation_rate"`
	MaxMutationRate      int     `yaml:"max_mutation_rate"`
	GrowthInterval       int     `yaml:"growth_interval"`        // Generations between conditional growth checks
	ForcedGrowthInterval int     `yaml:"forced_growth_interval"` // Generations between unconditional growth
	GrowthAmount         int     `yaml:"growth_amount"`          // Samples appended per growth
	GrowthThreshold      float64 `yaml:"growth_threshold"`       // Improvement since last growth required by conditional growth
	MaxGenomeLength      int     `yaml:"max_genome_length"`      // 0 means unbounded
	PreserveElite        bool    `yaml:"preserve_elite"`         // Copy the best genome into the next population
	Workers              int     `yaml:"workers"`                // 0 means GOMAXPROCS
	Seed                 int64   `yaml:"seed"`
}

// DefaultConfig returns the standard search parameters.
func DefaultConfig() Config {
	return Config{
		PopulationSize:       2500,
		Diversity:            10,
		InitialGenomeLength:  10,
		MinCrossovers:        1,
		MaxCrossovers:        100,
		InitialMutationRate:  200,
		MinMutationRate:      10,
		MaxMutationRate:      3200,
		GrowthInterval:       5,
		ForcedGrowthInterval: 50,
		GrowthAmount:         10,
		GrowthThreshold:      2.0,
		Seed:                 1,
	}
}

// Validate reports the first configuration problem, wrapped around one of
// the Err* sentinels.
func (c Config) Validate() error {
	switch {
	case c.PopulationSize <= 0:
		return ErrEmptyPopulation
	case c.Diversity < 2:
		return fmt.Errorf("%w (got %d)", ErrNoElites, c.Diversity)
	case c.Diversity > c.PopulationSize:
		return fmt.Errorf("%w (%d > %d)", ErrTooManyElites, c.Diversity, c.PopulationSize)
	case c.InitialGenomeLength <= 0:
		return ErrEmptyGenome
	case c.MinCrossovers < 0 || c.MinCrossovers > c.MaxCrossovers:
		return fmt.Errorf("%w: min %d, max %d", ErrCrossoverBounds, c.MinCrossovers, c.MaxCrossovers)
	case c.MinCrossovers > c.InitialGenomeLength:
		return fmt.Errorf("%w: min %d exceeds genome length %d", ErrCrossoverBounds, c.MinCrossovers, c.InitialGenomeLength)
	case c.MinMutationRate < 1 || c.MinMutationRate > c.MaxMutationRate:
		return fmt.Errorf("%w: min %d, max %d", ErrMutationRate, c.MinMutationRate, c.MaxMutationRate)
	case c.InitialMutationRate < c.MinMutationRate || c.InitialMutationRate > c.MaxMutationRate:
		return fmt.Errorf("%w: initial %d outside [%d, %d]", ErrMutationRate, c.InitialMutationRate, c.MinMutationRate, c.MaxMutationRate)
	case c.GrowthInterval <= 0 || c.ForcedGrowthInterval <= 0:
		return fmt.Errorf("%w: intervals must be > 0", ErrGrowthSchedule)
	case c.GrowthAmount < 0:
		return fmt.Errorf("%w: growth amount must be >= 0", ErrGrowthSchedule)
	case c.MaxGenomeLength != 0 && c.MaxGenomeLength < c.InitialGenomeLength:
		return fmt.Errorf("%w: max genome length %d below initial length %d", ErrGrowthSchedule, c.MaxGenomeLength, c.InitialGenomeLength)
	}
	return nil
}

// Pairs returns the number of unordered elite pairs, C(Diversity, 2).
func (c Config) Pairs() int {
	return c.Diversity * (c.Diversity - 1) / 2
}
