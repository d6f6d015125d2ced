package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	cfg, err := ParseTrain(DefaultYAML())
	if err != nil {
		t.Fatalf("ParseTrain() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTrainConfig()) {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultTrainConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestLoadTrainFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadTrain("")
	if err != nil {
		t.Fatalf("LoadTrain() failed: %v", err)
	}
	if cfg.Evolution.PopulationSize != 2500 {
		t.Errorf("PopulationSize = %d, expected 2500", cfg.Evolution.PopulationSize)
	}
}

func TestLoadTrainUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".jumpman", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "train.yaml"), []byte("evolution:\n  diversity: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTrain("")
	if err != nil {
		t.Fatalf("LoadTrain() failed: %v", err)
	}
	if cfg.Evolution.Diversity != 7 {
		t.Errorf("Diversity = %d, expected 7", cfg.Evolution.Diversity)
	}
}

func TestLoadTrainCustomPathKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.yaml")
	data := []byte("evolution:\n  population_size: 300\n  seed: 99\nfitness:\n  target: 120\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTrain(path)
	if err != nil {
		t.Fatalf("LoadTrain() failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"population", cfg.Evolution.PopulationSize, 300},
		{"seed", cfg.Evolution.Seed, int64(99)},
		{"target", cfg.Fitness.Target, float32(120)},
		{"diversity default", cfg.Evolution.Diversity, 10},
		{"jump force default", cfg.Physics.JumpForce, float32(0.45)},
		{"spawn default", cfg.Spawn.X, float32(5)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Errorf("got %v, expected %v", tc.got, tc.expected)
			}
		})
	}
}

func TestLoadTrainErrors(t *testing.T) {
	if _, err := LoadTrain(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadTrain() should fail for a missing custom path")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("evolution: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTrain(path); err == nil {
		t.Error("LoadTrain() should fail for malformed YAML")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := DefaultTrainConfig()
	cfg.Evolution.PopulationSize = 123
	cfg.Run.Capture = []int{1, 2, 3}

	path := filepath.Join(t.TempDir(), "out", "train.yaml")
	if err := WriteYAML(path, cfg); err != nil {
		t.Fatalf("WriteYAML() failed: %v", err)
	}
	back, err := LoadTrain(path)
	if err != nil {
		t.Fatalf("LoadTrain() failed: %v", err)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Errorf("round trip = %+v, expected %+v", back, cfg)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset     Preset
		population int
		diversity  int
		maxGens    int
	}{
		{PresetQuick, 500, 6, 200},
		{PresetStandard, 2500, 10, 1000},
		{PresetThorough, 5000, 14, 5000},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTrainConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Evolution.PopulationSize != tc.population {
				t.Errorf("PopulationSize = %d, expected %d", cfg.Evolution.PopulationSize, tc.population)
			}
			if cfg.Evolution.Diversity != tc.diversity {
				t.Errorf("Diversity = %d, expected %d", cfg.Evolution.Diversity, tc.diversity)
			}
			if cfg.Run.MaxGenerations != tc.maxGens {
				t.Errorf("MaxGenerations = %d, expected %d", cfg.Run.MaxGenerations, tc.maxGens)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}

	cfg := DefaultTrainConfig()
	ApplyPreset(&cfg, "")
	if !reflect.DeepEqual(cfg, DefaultTrainConfig()) {
		t.Error("empty preset should not change the config")
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "quick", "standard", "thorough"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) failed: %v", s, err)
		}
	}
	if _, err := ParsePreset("hard"); err == nil {
		t.Error("ParsePreset(\"hard\") should fail")
	}
}

func TestConverters(t *testing.T) {
	cfg := DefaultTrainConfig()
	cfg.Fitness.TrackCamera = true

	opts := cfg.FitnessOptions()
	if opts.Spawn.X != 5 || opts.Spawn.Y != 10 || opts.InitialScroll != 16 {
		t.Errorf("FitnessOptions() spawn = %+v scroll %v", opts.Spawn, opts.InitialScroll)
	}
	if !opts.TrackCamera || opts.Target != 200 {
		t.Errorf("FitnessOptions() = %+v", opts)
	}
	if cfg.EngineConfig() != cfg.Evolution {
		t.Error("EngineConfig() should return the evolution section")
	}
	if cfg.PhysicsParams() != cfg.Physics {
		t.Error("PhysicsParams() should return the physics section")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*TrainConfig)
	}{
		{"zero target", func(c *TrainConfig) { c.Fitness.Target = 0 }},
		{"zero penalty", func(c *TrainConfig) { c.Fitness.DeathPenalty = 0 }},
		{"negative generations", func(c *TrainConfig) { c.Run.MaxGenerations = -1 }},
		{"bad evolution", func(c *TrainConfig) { c.Evolution.PopulationSize = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTrainConfig()
			tc.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestShouldCapture(t *testing.T) {
	cfg := DefaultTrainConfig()
	if !cfg.ShouldCapture(100) {
		t.Error("generation 100 should be captured by default")
	}
	if cfg.ShouldCapture(2) {
		t.Error("generation 2 should not be captured by default")
	}
}

func TestMarshalParseTrain(t *testing.T) {
	cfg := DefaultTrainConfig()
	cfg.Fitness.TrackCamera = true
	cfg.Evolution.Seed = 99

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	back, err := ParseTrain(data)
	if err != nil {
		t.Fatalf("ParseTrain() failed: %v", err)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Errorf("ParseTrain(Marshal()) = %+v, expected %+v", back, cfg)
	}

	if _, err := ParseTrain([]byte("evolution: [not, a, map]")); err == nil {
		t.Error("ParseTrain() should reject malformed YAML")
	}
}
