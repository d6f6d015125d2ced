// Package telemetry writes training output files: the per-generation CSV
// log, best-genome snapshots, the effective configuration and replay traces.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/jumpman/internal/config"
	"github.com/vovakirdan/jumpman/internal/evolution"
	"github.com/vovakirdan/jumpman/internal/fitness"
	"github.com/vovakirdan/jumpman/internal/genome"
)

// File names inside the output directory.
const (
	GenerationLogFile = "accuracy.csv"
	BestGenomeFile    = "bestGeneration.txt"
	ConfigFile        = "config.yaml"
)

// GenerationRow is one line of the generation log.
type GenerationRow struct {
	Generation   int     `csv:"generation"`
	MaxScore     float64 `csv:"max_score"`
	MeanScore    float64 `csv:"mean_score"`
	StdDevScore  float64 `csv:"stddev_score"`
	MedianScore  float64 `csv:"median_score"`
	MutationRate int     `csv:"mutation_rate"`
	GenomeLength int     `csv:"genome_length"`
	Grew         bool    `csv:"grew"`
	ElapsedMS    int64   `csv:"elapsed_ms"`
}

// RowFromReport converts an engine report to a log row.
func RowFromReport(r evolution.Report) GenerationRow {
	return GenerationRow{
		Generation:   r.Generation,
		MaxScore:     r.MaxScore,
		MeanScore:    r.MeanScore,
		StdDevScore:  r.StdDevScore,
		MedianScore:  r.MedianScore,
		MutationRate: r.MutationRate,
		GenomeLength: r.GenomeLength,
		Grew:         r.Grew,
		ElapsedMS:    r.Elapsed.Milliseconds(),
	}
}

// Output handles training output in one directory.
// A nil *Output is valid and discards everything.
type Output struct {
	dir     string
	logFile *os.File

	// Track if headers have been written
	logHeaderWritten bool
}

// NewOutput creates the output directory and opens the generation log.
// Returns nil if dir is empty (output disabled).
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, GenerationLogFile))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", GenerationLogFile, err)
	}

	return &Output{dir: dir, logFile: f}, nil
}

// Dir returns the output directory.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// WriteConfig saves the effective configuration as YAML.
func (o *Output) WriteConfig(cfg config.TrainConfig) error {
	if o == nil {
		return nil
	}
	return config.WriteYAML(filepath.Join(o.dir, ConfigFile), cfg)
}

// WriteGeneration appends a report to the generation log.
func (o *Output) WriteGeneration(r evolution.Report) error {
	if o == nil {
		return nil
	}

	records := []GenerationRow{RowFromReport(r)}

	if !o.logHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, o.logFile); err != nil {
			return fmt.Errorf("writing generation log: %w", err)
		}
		o.logHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, o.logFile); err != nil {
			return fmt.Errorf("writing generation log: %w", err)
		}
	}

	return nil
}

// WriteSnapshot saves the best genome of a generation as bestGeneration-N.txt.
func (o *Output) WriteSnapshot(generation int, g genome.Genome) (string, error) {
	if o == nil {
		return "", nil
	}
	path := filepath.Join(o.dir, fmt.Sprintf("bestGeneration-%d.txt", generation))
	return path, genome.WriteFile(path, g)
}

// WriteBest saves the final best genome as bestGeneration.txt.
func (o *Output) WriteBest(g genome.Genome) (string, error) {
	if o == nil {
		return "", nil
	}
	path := filepath.Join(o.dir, BestGenomeFile)
	return path, genome.WriteFile(path, g)
}

// Close closes the generation log.
func (o *Output) Close() error {
	if o == nil || o.logFile == nil {
		return nil
	}
	return o.logFile.Close()
}

// WriteTrace writes a replay trajectory as CSV.
func WriteTrace(path string, frames []fitness.Frame) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating trace directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.Marshal(frames, f); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// ReadGenerationLog loads a generation log written by Output.
func ReadGenerationLog(path string) ([]GenerationRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening generation log: %w", err)
	}
	defer f.Close()

	var rows []GenerationRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("reading generation log: %w", err)
	}
	return rows, nil
}
