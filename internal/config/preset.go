package config

import "fmt"

// Preset represents a named search budget.
type Preset string

const (
	PresetQuick    Preset = "quick"
	PresetStandard Preset = "standard"
	PresetThorough Preset = "thorough"
)

// ParsePreset converts a flag value to a Preset. The empty string means
// "keep the loaded configuration".
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetQuick, PresetStandard, PresetThorough:
		return Preset(s), nil
	default:
		return "", fmt.Errorf("unknown preset %q (expected quick, standard or thorough)", s)
	}
}

// ApplyPreset modifies the config based on a preset.
func ApplyPreset(cfg *TrainConfig, preset Preset) {
	switch preset {
	case PresetQuick:
		cfg.Evolution.PopulationSize = 500
		cfg.Evolution.Diversity = 6
		cfg.Run.MaxGenerations = 200
	case PresetStandard:
		cfg.Evolution.PopulationSize = 2500
		cfg.Evolution.Diversity = 10
		cfg.Run.MaxGenerations = 1000
	case PresetThorough:
		cfg.Evolution.PopulationSize = 5000
		cfg.Evolution.Diversity = 14
		cfg.Evolution.PreserveElite = true
		cfg.Run.MaxGenerations = 5000
	}
}
