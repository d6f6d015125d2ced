package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTrain loads the training configuration.
// Search order: customPath -> ~/.jumpman/configs/train.yaml -> ./configs/train.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadTrain(customPath string) (TrainConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTrainConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseTrain(data)
		if err != nil {
			return DefaultTrainConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("train.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseTrain(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "train.yaml")); err == nil {
		if cfg, err := ParseTrain(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseTrain(defaultTrainYAML)
	if err != nil {
		return DefaultTrainConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseTrain decodes YAML over the default configuration.
func ParseTrain(data []byte) (TrainConfig, error) {
	cfg := DefaultTrainConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg TrainConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// WriteYAML saves cfg to path, creating parent directories.
func WriteYAML(path string, cfg TrainConfig) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Validate checks the parts of the configuration that the engine does not.
func (c TrainConfig) Validate() error {
	if err := c.Evolution.Validate(); err != nil {
		return err
	}
	if c.Fitness.Target <= 0 {
		return fmt.Errorf("fitness target must be > 0, got %v", c.Fitness.Target)
	}
	if c.Fitness.DeathPenalty <= 0 {
		return fmt.Errorf("death penalty must be > 0, got %v", c.Fitness.DeathPenalty)
	}
	if c.Run.MaxGenerations < 0 {
		return fmt.Errorf("max generations must be >= 0, got %d", c.Run.MaxGenerations)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".jumpman", "configs", filename)
}
