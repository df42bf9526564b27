// Package config loads experiment settings from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"collapse/game"
)

type Config struct {
	// Games is how many self-play games to run.
	Games int `yaml:"games"`
	// Seed is the base seed; game i uses Seed+i.
	Seed uint64 `yaml:"seed"`
	// Lineup is "random" or "scripted".
	Lineup string `yaml:"lineup"`
	// OutputDir is the CSV metrics root.
	OutputDir string `yaml:"output_dir"`
	// MaxInitialSpades caps starting-frontier mines; -1 disables
	// (curriculum knob).
	MaxInitialSpades int `yaml:"max_initial_spades"`
	// FacilityGoal is the city-completion threshold per suit.
	FacilityGoal int `yaml:"facility_goal"`
}

func Default() Config {
	return Config{
		Games:            30,
		Seed:             1,
		Lineup:           "random",
		OutputDir:        "experiments-out",
		MaxInitialSpades: -1,
		FacilityGoal:     10,
	}
}

// Load reads a YAML config, filling unset fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Games <= 0 {
		return cfg, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	if cfg.Lineup != "random" && cfg.Lineup != "scripted" {
		return cfg, fmt.Errorf("unknown lineup %q", cfg.Lineup)
	}
	return cfg, nil
}

// GameParams converts the config into per-game engine parameters.
func (c Config) GameParams(seed uint64) game.Params {
	return game.Params{
		Seed:             seed,
		MaxInitialSpades: c.MaxInitialSpades,
		FacilityGoal:     c.FacilityGoal,
	}
}
