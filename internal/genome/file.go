package genome

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile stores g as base64 text at path, creating parent directories.
func WriteFile(path string, g Genome) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("genome: cannot create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(EncodeString(g)), 0o644); err != nil {
		return fmt.Errorf("genome: cannot write %s: %w", path, err)
	}
	return nil
}

// ReadFile loads a genome written by WriteFile. Surrounding whitespace is ignored.
func ReadFile(path string) (Genome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("genome: cannot read %s: %w", path, err)
	}
	g, err := DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
