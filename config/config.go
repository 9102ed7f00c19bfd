// Package config loads the engine's flag/environment/file-driven settings:
// board size, komi, search budget, worker count, and the MCTS tunables,
// in flag > environment > YAML file > default precedence.
package config

import (
	"fmt"
	"os"

	"github.com/namsral/flag"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// knownYAMLKeys lists the top-level keys a settings file is allowed to set,
// drawn straight from Config's yaml tags.
var knownYAMLKeys = []string{
	"board_size", "komi", "simulations", "workers", "pattern_probability",
	"resign_threshold", "uct_constant", "seed", "log_level",
}

// Config holds every setting the engine needs before a Game can be
// constructed.
type Config struct {
	BoardSize          int     `yaml:"board_size"`
	Komi               int     `yaml:"komi"`
	Simulations        int     `yaml:"simulations"`
	Workers            int     `yaml:"workers"`
	PatternProbability float64 `yaml:"pattern_probability"`
	ResignThreshold    float64 `yaml:"resign_threshold"`
	UCTConstant        float64 `yaml:"uct_constant"`
	Seed               uint64  `yaml:"seed"`
	LogLevel           string  `yaml:"log_level"`
	ConfigFile         string  `yaml:"-"`
	CPUProfile         string  `yaml:"-"`
	Batch              bool    `yaml:"-"`
}

// Default returns the engine's out-of-the-box settings: a 9x9 board,
// komi 7, and the MCTS constants named in the design notes.
func Default() *Config {
	return &Config{
		BoardSize:          9,
		Komi:               7,
		Simulations:        500_000,
		Workers:            0,
		PatternProbability: 0.5,
		ResignThreshold:    0.1,
		UCTConstant:        0.70710678,
		Seed:               0,
		LogLevel:           "info",
		Batch:              false,
	}
}

// Load builds a namsral/flag flag set bound to both CLI flags and
// identically-named VPGO_* environment variables, applies any YAML
// ConfigFile over the defaults first so flags keep the highest
// precedence, parses args, and validates the result.
func Load(args []string) (*Config, error) {
	cfg := Default()

	// A first, lenient pass just to pick up -config-file before the real
	// flag set (which would otherwise reject an unrecognised flag from a
	// partial parse) runs.
	pre := flag.NewFlagSetWithEnvPrefix("vpgo", "VPGO", flag.ContinueOnError)
	pre.SetOutput(discardWriter{})
	pre.StringVar(&cfg.ConfigFile, "config-file", "", "optional YAML file overriding the defaults below")
	_ = pre.Parse(args)

	if cfg.ConfigFile != "" {
		if err := cfg.mergeYAML(cfg.ConfigFile); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", cfg.ConfigFile, err)
		}
	}

	fs := flag.NewFlagSetWithEnvPrefix("vpgo", "VPGO", flag.ContinueOnError)
	fs.IntVar(&cfg.BoardSize, "board-size", cfg.BoardSize, "board side length N (fixed for the life of the match)")
	fs.IntVar(&cfg.Komi, "komi", cfg.Komi, "integer komi added to white's area score")
	fs.IntVar(&cfg.Simulations, "simulations", cfg.Simulations, "MCTS playout budget per generated move")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "MCTS worker goroutine count, 0 = auto-detect")
	fs.Float64Var(&cfg.PatternProbability, "pattern-probability", cfg.PatternProbability, "chance a playout tries a pattern-biased move before falling back to random")
	fs.Float64Var(&cfg.ResignThreshold, "resign-threshold", cfg.ResignThreshold, "root win rate below which generate_move returns resign")
	fs.Float64Var(&cfg.UCTConstant, "uct-constant", cfg.UCTConstant, "UCT exploration constant")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "search seed; 0 draws a fresh seed per generate_move")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level: debug, info, warn, error")
	fs.StringVar(&cfg.ConfigFile, "config-file", cfg.ConfigFile, "optional YAML file overriding the defaults below")
	fs.StringVar(&cfg.CPUProfile, "cpu-profile", cfg.CPUProfile, "write a pprof CPU profile to this path")
	fs.BoolVar(&cfg.Batch, "batch", cfg.Batch, "speak the line protocol directly over stdin/stdout instead of an interactive shell")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range lo.Keys(raw) {
		if !lo.Contains(knownYAMLKeys, key) {
			return fmt.Errorf("config: unknown setting %q", key)
		}
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) validate() error {
	if c.BoardSize <= 0 {
		return fmt.Errorf("config: board-size must be positive, got %d", c.BoardSize)
	}
	if c.Simulations <= 0 {
		return fmt.Errorf("config: simulations must be positive, got %d", c.Simulations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

// discardWriter silences namsral/flag's default usage printing during the
// lenient pre-parse pass above.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
