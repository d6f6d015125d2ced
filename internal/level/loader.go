package level

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoLevels is returned when a level file contains no rows.
var ErrNoLevels = errors.New("level: no levels in input")

// Parse reads a plain-text level file. Each line is one row; every
// LevelHeight lines form one level. A trailing partial block is kept as a
// shorter level.
func Parse(r io.Reader) ([]*Grid, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		levels []*Grid
		block  []string
	)
	for scanner.Scan() {
		block = append(block, strings.TrimRight(scanner.Text(), "\r"))
		if len(block) == LevelHeight {
			levels = append(levels, NewGrid(block))
			block = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("level: reading rows: %w", err)
	}
	if len(block) > 0 {
		levels = append(levels, NewGrid(block))
	}

	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	return levels, nil
}

// Load reads and parses a level file from disk.
func Load(path string) ([]*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("level: opening %s: %w", path, err)
	}
	defer f.Close()

	levels, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("level: parsing %s: %w", path, err)
	}
	return levels, nil
}

// Select returns the level at index, or an error if it does not exist.
func Select(levels []*Grid, index int) (*Grid, error) {
	if index < 0 || index >= len(levels) {
		return nil, fmt.Errorf("level: index %d out of range (file has %d levels)", index, len(levels))
	}
	return levels[index], nil
}

// Write serializes levels back into the stacked text format.
// Each level is padded with empty rows up to LevelHeight so that the
// stacking stays aligned on reload.
func Write(w io.Writer, levels []*Grid) error {
	bw := bufio.NewWriter(w)
	for _, g := range levels {
		lines := g.Lines()
		for len(lines) < LevelHeight {
			lines = append(lines, strings.Repeat(string(Empty), g.Width()))
		}
		for _, line := range lines {
			if _, err := bw.WriteString(line + "\n"); err != nil {
				return fmt.Errorf("level: writing row: %w", err)
			}
		}
	}
	return bw.Flush()
}

// Save writes levels to a file, replacing any existing content.
func Save(path string, levels []*Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("level: creating %s: %w", path, err)
	}
	if err := Write(f, levels); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
