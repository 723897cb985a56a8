package main

import (
	cryptorand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cynecx/rand"
	"github.com/cynecx/rand/internal/config"
	"github.com/cynecx/rand/internal/engine"
	"github.com/cynecx/rand/internal/snapshot"
)

var errNoSeed = errors.New("no seed given: use --seed, --seed-u64, --preset, --entropy or set " + config.EnvSeed)

// SourceFlags select and seed a generator. At most one seeding flag may be set.
type SourceFlags struct {
	Algorithm string  `short:"a" help:"Generator algorithm (pcg32|xoshiro256), defaults to the config file"`
	Seed      string  `help:"Seed as hex bytes (16 for pcg32, 32 for xoshiro256)" xor:"source"`
	SeedU64   *uint64 `name:"seed-u64" help:"Integer seed expanded with SplitMix64" xor:"source"`
	Preset    string  `short:"p" help:"Named preset from the config file" xor:"source"`
	Entropy   bool    `help:"Seed from the operating system entropy source" xor:"source"`
	Resume    string  `help:"Continue from a snapshot file" type:"existingfile" xor:"source"`
}

// resolve builds the generator the flags describe, falling back to the
// config defaults.
func (f *SourceFlags) resolve(cfg *config.Config, logger zerolog.Logger) (engine.Generator, engine.Algorithm, error) {
	if f.Resume != "" {
		snap, err := snapshot.Load(f.Resume)
		if err != nil {
			return nil, "", err
		}
		if f.Algorithm != "" {
			alg, err := engine.ParseAlgorithm(f.Algorithm)
			if err != nil {
				return nil, "", err
			}
			if alg != snap.Algorithm {
				return nil, "", fmt.Errorf("snapshot %s holds %s, not %s", f.Resume, snap.Algorithm, alg)
			}
		}
		logger.Debug().Str("path", f.Resume).Str("algorithm", string(snap.Algorithm)).Msg("resumed from snapshot")
		return snap.Generator, snap.Algorithm, nil
	}

	if f.Preset != "" {
		p := cfg.Preset(f.Preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset %q", f.Preset)
		}
		g, err := p.Generator()
		if err != nil {
			return nil, "", err
		}
		alg, err := engine.AlgorithmOf(g)
		if err != nil {
			return nil, "", err
		}
		logger.Debug().Str("preset", p.Name).Str("algorithm", string(alg)).Msg("using preset")
		return g, alg, nil
	}

	name := f.Algorithm
	if name == "" {
		name = cfg.Defaults.Algorithm
	}
	alg, err := engine.ParseAlgorithm(name)
	if err != nil {
		return nil, "", err
	}

	var g engine.Generator
	switch {
	case f.Seed != "":
		b, err := hex.DecodeString(f.Seed)
		if err != nil {
			return nil, "", fmt.Errorf("seed is not hex: %w", err)
		}
		g, err = engine.FromSeed(alg, b)
		if err != nil {
			return nil, "", err
		}
	case f.SeedU64 != nil:
		g, err = engine.FromUint64(alg, *f.SeedU64)
	case f.Entropy:
		g, err = engine.FromRNG(alg, rand.NewEntropy(cryptorand.Reader))
	case cfg.Defaults.SeedU64 != nil:
		g, err = engine.FromUint64(alg, *cfg.Defaults.SeedU64)
	default:
		return nil, "", errNoSeed
	}
	if err != nil {
		return nil, "", err
	}
	logger.Debug().Str("algorithm", string(alg)).Msg("seeded generator")
	return g, alg, nil
}
