// Package config provides YAML-based training configuration: physics
// constants, spawn point, fitness shaping, evolution parameters and run
// limits, with presets for common search budgets.
package config

import (
	"github.com/vovakirdan/jumpman/internal/core"
	"github.com/vovakirdan/jumpman/internal/evolution"
	"github.com/vovakirdan/jumpman/internal/fitness"
	"github.com/vovakirdan/jumpman/internal/physics"
)

// TrainConfig contains all configuration for a training run.
type TrainConfig struct {
	Physics   physics.Params   `yaml:"physics"`
	Spawn     SpawnConfig      `yaml:"spawn"`
	Fitness   FitnessConfig    `yaml:"fitness"`
	Evolution evolution.Config `yaml:"evolution"`
	Run       RunConfig        `yaml:"run"`
}

// SpawnConfig defines where every replay starts.
type SpawnConfig struct {
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Scroll float32 `yaml:"scroll"` // Initial camera scroll in pixels
}

// FitnessConfig defines how a replay is scored.
type FitnessConfig struct {
	Target       float32 `yaml:"target"`        // Horizontal position that counts as finishing
	FinishBonus  float64 `yaml:"finish_bonus"`  // Speed bonus numerator
	DeathPenalty float64 `yaml:"death_penalty"` // Divisor for dead characters
	TrackCamera  bool    `yaml:"track_camera"`
}

// RunConfig defines when training stops and what gets captured.
type RunConfig struct {
	MaxGenerations int   `yaml:"max_generations"` // 0 means no limit
	Capture        []int `yaml:"capture"`         // Generations whose best genome is snapshotted
}

// PhysicsParams returns the reducer constants.
func (c TrainConfig) PhysicsParams() physics.Params {
	return c.Physics
}

// FitnessOptions returns the evaluator options.
func (c TrainConfig) FitnessOptions() fitness.Options {
	return fitness.Options{
		Spawn:         core.Vec2{X: c.Spawn.X, Y: c.Spawn.Y},
		InitialScroll: c.Spawn.Scroll,
		Target:        c.Fitness.Target,
		FinishBonus:   c.Fitness.FinishBonus,
		DeathPenalty:  c.Fitness.DeathPenalty,
		TrackCamera:   c.Fitness.TrackCamera,
	}
}

// EngineConfig returns the evolution parameters.
func (c TrainConfig) EngineConfig() evolution.Config {
	return c.Evolution
}

// ShouldCapture reports whether generation gen is in the capture list.
func (c TrainConfig) ShouldCapture(gen int) bool {
	for _, g := range c.Run.Capture {
		if g == gen {
			return true
		}
	}
	return false
}
