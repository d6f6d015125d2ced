package config

import (
	_ "embed"

	"github.com/vovakirdan/jumpman/internal/evolution"
	"github.com/vovakirdan/jumpman/internal/physics"
)

//go:embed defaults/train.yaml
var defaultTrainYAML []byte

// DefaultTrainConfig returns the default training configuration.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Physics: physics.DefaultParams(),
		Spawn: SpawnConfig{
			X:      5,
			Y:      10,
			Scroll: 16,
		},
		Fitness: FitnessConfig{
			Target:       200,
			FinishBonus:  100,
			DeathPenalty: 2,
		},
		Evolution: evolution.DefaultConfig(),
		Run: RunConfig{
			MaxGenerations: 1000,
			Capture:        []int{1, 10, 100, 1000, 5000, 10000},
		},
	}
}

// DefaultYAML returns the embedded default training YAML.
func DefaultYAML() []byte {
	return defaultTrainYAML
}
