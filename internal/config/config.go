// Package config loads randtool presets from an HCL file and applies
// environment overrides.
package config

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"

	"github.com/cynecx/rand/internal/engine"
	"github.com/cynecx/rand/internal/randutil"
)

// Environment variables read by FromEnv.
const (
	// EnvConfig is the path of the preset file.
	EnvConfig = "RANDTOOL_CONFIG"

	// EnvSeed is an integer seed expanded with SplitMix64.
	EnvSeed = "RANDTOOL_SEED"

	// EnvAlgorithm overrides the default algorithm.
	EnvAlgorithm = "RANDTOOL_ALGORITHM"
)

// DefaultPath is used when neither a flag nor EnvConfig names a file.
const DefaultPath = "randtool.hcl"

// Config is the contents of a preset file.
type Config struct {
	Defaults Defaults
	Presets  []Preset
}

// Defaults apply when a command names no preset.
type Defaults struct {
	Algorithm string  `hcl:"algorithm,optional"`
	Count     int     `hcl:"count,optional"`
	SeedU64   *uint64 `hcl:"seed_u64,optional"`
}

// Preset is a named, reproducible generator setup.
type Preset struct {
	Name      string  `hcl:"name,label"`
	Algorithm string  `hcl:"algorithm,optional"`
	Seed      string  `hcl:"seed,optional"`
	SeedU64   *uint64 `hcl:"seed_u64,optional"`
	Stream    *uint64 `hcl:"stream,optional"`
}

// file mirrors Config with an optional defaults block.
type file struct {
	Defaults *Defaults `hcl:"defaults,block"`
	Presets  []Preset  `hcl:"preset,block"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Defaults: Defaults{
			Algorithm: string(engine.Xoshiro256),
			Count:     16,
		},
	}
}

// Load reads filename. A missing file yields Default. Presets without an
// algorithm take the default one.
func Load(filename string, logger zerolog.Logger) (*Config, error) {
	cfg, err := load(filename, logger)
	if err != nil {
		return nil, err
	}
	cfg.fillPresets()
	return cfg, nil
}

func load(filename string, logger zerolog.Logger) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		logger.Debug().Str("path", filename).Msg("config file not found, using defaults")
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Defaults != nil {
		if raw.Defaults.Algorithm != "" {
			cfg.Defaults.Algorithm = raw.Defaults.Algorithm
		}
		if raw.Defaults.Count != 0 {
			cfg.Defaults.Count = raw.Defaults.Count
		}
		cfg.Defaults.SeedU64 = raw.Defaults.SeedU64
	}
	cfg.Presets = raw.Presets

	logger.Debug().Str("path", filename).Int("presets", len(cfg.Presets)).Msg("loaded config")
	return cfg, nil
}

func (c *Config) fillPresets() {
	for i := range c.Presets {
		if c.Presets[i].Algorithm == "" {
			c.Presets[i].Algorithm = c.Defaults.Algorithm
		}
	}
}

// FromEnv loads the file named by EnvConfig (or path when set, or
// DefaultPath) and applies EnvAlgorithm and EnvSeed. EnvAlgorithm also
// reaches presets that name no algorithm.
func FromEnv(path string, logger zerolog.Logger) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultPath
	}

	cfg, err := load(path, logger)
	if err != nil {
		return nil, err
	}

	if alg := os.Getenv(EnvAlgorithm); alg != "" {
		cfg.Defaults.Algorithm = alg
	}
	if seedStr := os.Getenv(EnvSeed); seedStr != "" {
		seed, err := strconv.ParseUint(seedStr, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		cfg.Defaults.SeedU64 = &seed
	}
	cfg.fillPresets()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks algorithms, seeds and preset names.
func (c *Config) Validate() error {
	if _, err := engine.ParseAlgorithm(c.Defaults.Algorithm); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if c.Defaults.Count < 0 {
		return fmt.Errorf("defaults: count must not be negative")
	}

	seen := make(map[string]bool)
	for _, p := range c.Presets {
		if seen[p.Name] {
			return fmt.Errorf("preset %s: defined more than once", p.Name)
		}
		seen[p.Name] = true

		alg, err := engine.ParseAlgorithm(p.Algorithm)
		if err != nil {
			return fmt.Errorf("preset %s: %w", p.Name, err)
		}
		if p.Seed != "" && p.SeedU64 != nil {
			return fmt.Errorf("preset %s: seed and seed_u64 are mutually exclusive", p.Name)
		}
		if p.Seed != "" {
			b, err := hex.DecodeString(p.Seed)
			if err != nil {
				return fmt.Errorf("preset %s: seed is not hex: %w", p.Name, err)
			}
			if len(b) != alg.SeedSize() {
				return fmt.Errorf("preset %s: %s seed must be %d bytes, got %d", p.Name, alg, alg.SeedSize(), len(b))
			}
		}
		if p.Stream != nil && alg != engine.PCG32 {
			return fmt.Errorf("preset %s: stream is only valid for %s", p.Name, engine.PCG32)
		}
	}
	return nil
}

// SeedBytes returns the preset's seed material for its algorithm.
func (p *Preset) SeedBytes() ([]byte, error) {
	alg, err := engine.ParseAlgorithm(p.Algorithm)
	if err != nil {
		return nil, err
	}

	var b []byte
	switch {
	case p.Seed != "":
		b, err = hex.DecodeString(p.Seed)
		if err != nil {
			return nil, fmt.Errorf("preset %s: seed is not hex: %w", p.Name, err)
		}
		if len(b) != alg.SeedSize() {
			return nil, fmt.Errorf("preset %s: %s seed must be %d bytes, got %d", p.Name, alg, alg.SeedSize(), len(b))
		}
	case p.SeedU64 != nil:
		b = make([]byte, alg.SeedSize())
		randutil.SeedBytes(b, *p.SeedU64)
	default:
		return nil, fmt.Errorf("preset %s: no seed or seed_u64", p.Name)
	}

	if p.Stream != nil && alg == engine.PCG32 {
		binary.LittleEndian.PutUint64(b[8:], *p.Stream)
	}
	return b, nil
}

// Generator builds the generator the preset describes.
func (p *Preset) Generator() (engine.Generator, error) {
	alg, err := engine.ParseAlgorithm(p.Algorithm)
	if err != nil {
		return nil, err
	}
	b, err := p.SeedBytes()
	if err != nil {
		return nil, err
	}
	return engine.FromSeed(alg, b)
}

// Preset returns the named preset, or nil.
func (c *Config) Preset(name string) *Preset {
	for i := range c.Presets {
		if c.Presets[i].Name == name {
			return &c.Presets[i]
		}
	}
	return nil
}
