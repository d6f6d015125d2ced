package level

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/jumpman/internal/core"
)

// GenerateOptions controls procedural level generation.
type GenerateOptions struct {
	Width        int     `yaml:"width"`         // Number of columns
	Seed         int64   `yaml:"seed"`          // Noise seed; the same seed yields the same level
	SpawnFloor   int     `yaml:"spawn_floor"`   // Row of the floor under the spawn point
	SafeColumns  int     `yaml:"safe_columns"`  // Leading columns kept flat at SpawnFloor with no gaps
	Amplitude    float64 `yaml:"amplitude"`     // Maximum ground deviation from SpawnFloor, in rows
	Frequency    float64 `yaml:"frequency"`     // Noise sampling step per column
	GapThreshold float64 `yaml:"gap_threshold"` // Columns whose gap noise falls below this become pits
	MaxGapWidth  int     `yaml:"max_gap_width"` // Longest run of consecutive pit columns
	MaxStep      int     `yaml:"max_step"`      // Largest height change between neighbouring columns
}

// DefaultGenerateOptions returns options that produce a level the default
// physics can traverse: steps no higher than a jump, pits no wider than a
// running jump.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Width:        240,
		Seed:         1,
		SpawnFloor:   11,
		SafeColumns:  12,
		Amplitude:    3,
		Frequency:    0.08,
		GapThreshold: -0.35,
		MaxGapWidth:  3,
		MaxStep:      2,
	}
}

// Generate builds one LevelHeight-row level from Perlin noise.
func Generate(opts GenerateOptions) *Grid {
	if opts.Width <= 0 {
		opts.Width = DefaultGenerateOptions().Width
	}
	if opts.MaxStep <= 0 {
		opts.MaxStep = 1
	}

	// Two independent noise fields: terrain height and pit placement.
	terrain := perlin.NewPerlin(2, 2, 3, opts.Seed)
	pits := perlin.NewPerlin(2, 2, 3, opts.Seed+7919)

	cells := make([][]byte, LevelHeight)
	for y := range cells {
		cells[y] = make([]byte, opts.Width)
		for x := range cells[y] {
			cells[y][x] = Empty
		}
	}

	minFloor := LevelHeight / 2
	maxFloor := LevelHeight - 1
	prev := core.Clamp(opts.SpawnFloor, minFloor, maxFloor)
	gapRun := 0

	for x := 0; x < opts.Width; x++ {
		floor := prev
		if x >= opts.SafeColumns {
			n := terrain.Noise1D(float64(x) * opts.Frequency)
			target := opts.SpawnFloor + int(math.Round(n*opts.Amplitude*2))
			target = core.Clamp(target, minFloor, maxFloor)
			floor = core.Clamp(target, prev-opts.MaxStep, prev+opts.MaxStep)

			g := pits.Noise1D(float64(x) * opts.Frequency * 3)
			if g < opts.GapThreshold && gapRun < opts.MaxGapWidth {
				gapRun++
				continue
			}
		}
		gapRun = 0

		cells[floor][x] = Surface
		for y := floor + 1; y < LevelHeight; y++ {
			cells[y][x] = Solid
		}
		prev = floor
	}

	rows := make([]string, LevelHeight)
	for y := range cells {
		rows[y] = string(cells[y])
	}
	return NewGrid(rows)
}
