// Package planner drives the MCVI search loop (spec §4.8, C8): it owns the
// belief tree, the FSC store, and the bound estimators, and repeatedly
// samples a traversal down the tree, backing nodes up on the way back.
package planner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config bundles every tunable of a planner run (spec §6's parameter
// table). Functional options configure it on top of sane defaults,
// mirroring the teacher's searcher.Option/NewMCTS pattern.
type Config struct {
	MaxIter          int     `yaml:"max_iter"`
	Epsilon          float64 `yaml:"epsilon"`
	MaxDepthSim      int     `yaml:"max_depth_sim"`
	EvalDepth        int     `yaml:"eval_depth"`
	EvalEpsilon      float64 `yaml:"eval_epsilon"`
	MaxBeliefSamples int     `yaml:"max_belief_samples"`
	MaxNodeSize      int     `yaml:"max_node_size"`
	MaxComputationMS int64   `yaml:"max_computation_ms"`
}

// DefaultConfig returns the spec's baseline parameters (spec §6, §8's
// boundary scenarios assume these unless stated otherwise).
func DefaultConfig() Config {
	return Config{
		MaxIter:          1000,
		Epsilon:          1e-3,
		MaxDepthSim:      50,
		EvalDepth:        50,
		EvalEpsilon:      0.05,
		MaxBeliefSamples: 20,
		MaxNodeSize:      0,
		MaxComputationMS: 0,
	}
}

// Option mutates a Config away from its defaults.
type Option func(*Config)

func WithMaxIter(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.MaxIter = n
		}
	}
}

func WithEpsilon(epsilon float64) Option {
	return func(c *Config) {
		if epsilon >= 0 {
			c.Epsilon = epsilon
		}
	}
}

func WithMaxDepthSim(depth int) Option {
	return func(c *Config) {
		if depth > 0 {
			c.MaxDepthSim = depth
		}
	}
}

func WithEvalDepth(depth int) Option {
	return func(c *Config) {
		if depth > 0 {
			c.EvalDepth = depth
		}
	}
}

func WithEvalEpsilon(epsilon float64) Option {
	return func(c *Config) {
		if epsilon > 0 {
			c.EvalEpsilon = epsilon
		}
	}
}

func WithMaxBeliefSamples(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxBeliefSamples = n
		}
	}
}

func WithMaxNodeSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxNodeSize = n
		}
	}
}

func WithMaxComputationMS(ms int64) Option {
	return func(c *Config) {
		if ms > 0 {
			c.MaxComputationMS = ms
		}
	}
}

// NewConfig applies options on top of DefaultConfig.
func NewConfig(options ...Option) Config {
	cfg := DefaultConfig()
	for _, option := range options {
		option(&cfg)
	}
	return cfg
}

// LoadConfigFile reads a YAML config file, starting from DefaultConfig for
// any field the file omits.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfigFile writes cfg to path as YAML.
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
