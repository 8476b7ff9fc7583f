package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	yaml "gopkg.in/yaml.v2"
)

// Config is the static block the simulation runs against. Loaded once,
// read-only afterwards.
type Config struct {
	Groups        []string `json:"groups" yaml:"groups"`
	TeamsPerGroup int      `json:"teamsPerGroup" yaml:"teamsPerGroup"`

	LargeConfederation string `json:"largeConfederation" yaml:"largeConfederation"`
	MaxLargePerGroup   int    `json:"maxLargePerGroup" yaml:"maxLargePerGroup"`
	MaxOtherPerGroup   int    `json:"maxOtherPerGroup" yaml:"maxOtherPerGroup"`

	SeededPot  string            `json:"seededPot" yaml:"seededPot"`
	DrawOrder  []string          `json:"drawOrder" yaml:"drawOrder"`
	FixedHosts map[string]string `json:"fixedHosts" yaml:"fixedHosts"`

	NumSimulations int    `json:"numSimulations" yaml:"numSimulations"`
	MaxAttempts    int    `json:"maxAttempts" yaml:"maxAttempts"`
	TargetTeam     string `json:"targetTeam" yaml:"targetTeam"`
	Workers        int    `json:"workers" yaml:"workers"`
	Seed           int64  `json:"seed" yaml:"seed"`
	ProgressEvery  int    `json:"progressEvery" yaml:"progressEvery"`

	PotsFile           string `json:"potsFile" yaml:"potsFile"`
	ConfederationsFile string `json:"confederationsFile" yaml:"confederationsFile"`
	OutputDir          string `json:"outputDir" yaml:"outputDir"`

	// Precomputed data
	fixedHostOrder []string // hosts in stable order for deterministic placement
	opponentPots   []string // non-seeded pots in combination-key order
}

// DefaultConfig mirrors the official 2026 draw procedure: 12 groups of 4,
// UEFA capped at 2 per group, everyone else at 1, the three hosts pinned,
// and pots drawn seeded-first then 4, 3, 2.
func DefaultConfig() *Config {
	return &Config{
		Groups:             []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"},
		TeamsPerGroup:      4,
		LargeConfederation: "UEFA",
		MaxLargePerGroup:   2,
		MaxOtherPerGroup:   1,
		SeededPot:          "Pot 1",
		DrawOrder:          []string{"Pot 4", "Pot 3", "Pot 2"},
		FixedHosts: map[string]string{
			"Mexico":        "A",
			"Canada":        "B",
			"United States": "D",
		},
		NumSimulations:     100_000,
		MaxAttempts:        1_000,
		TargetTeam:         "Argentina",
		ProgressEvery:      10_000,
		PotsFile:           "data/pots.csv",
		ConfederationsFile: "data/confederations.csv",
		OutputDir:          "output",
	}
}

// LoadConfig reads a JSON or YAML config file, picking the decoder by
// extension, and fills unset fields from the defaults.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c := DefaultConfig()
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("bad JSON in %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("bad YAML in %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks structural consistency and precomputes derived orderings.
// Called before the roster is loaded; roster-dependent checks live there.
func (c *Config) Validate() error {
	if len(c.Groups) == 0 {
		return fmt.Errorf("config: 'groups' cannot be empty")
	}
	seen := make(map[string]bool, len(c.Groups))
	for _, g := range c.Groups {
		if seen[g] {
			return fmt.Errorf("config: duplicate group label %q", g)
		}
		seen[g] = true
	}
	if c.TeamsPerGroup != len(c.DrawOrder)+1 {
		return fmt.Errorf("config: teamsPerGroup=%d but seeded pot + drawOrder yield %d pots",
			c.TeamsPerGroup, len(c.DrawOrder)+1)
	}
	if c.MaxLargePerGroup < 1 || c.MaxOtherPerGroup < 1 {
		return fmt.Errorf("config: confederation caps must be at least 1")
	}
	if c.SeededPot == "" {
		return fmt.Errorf("config: 'seededPot' cannot be empty")
	}
	for _, pot := range c.DrawOrder {
		if pot == c.SeededPot {
			return fmt.Errorf("config: seeded pot %q must not appear in drawOrder", pot)
		}
	}
	for host, group := range c.FixedHosts {
		if !seen[group] {
			return fmt.Errorf("config: fixed host %q mapped to unknown group %q", host, group)
		}
	}
	if c.NumSimulations <= 0 {
		return fmt.Errorf("config: 'numSimulations' must be positive")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("config: 'maxAttempts' must be positive")
	}
	if c.TargetTeam == "" {
		return fmt.Errorf("config: 'targetTeam' cannot be empty")
	}

	c.fixedHostOrder = make([]string, 0, len(c.FixedHosts))
	for host := range c.FixedHosts {
		c.fixedHostOrder = append(c.fixedHostOrder, host)
	}
	sort.Strings(c.fixedHostOrder)

	// Combination keys list opponents by ascending pot label regardless of
	// the order pots are drawn in.
	c.opponentPots = append([]string(nil), c.DrawOrder...)
	sort.Strings(c.opponentPots)
	return nil
}

// OpponentPots returns the non-seeded pots in the fixed order used for
// combination keys and reporting.
func (c *Config) OpponentPots() []string {
	return c.opponentPots
}
