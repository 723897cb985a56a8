// Package engine selects a generator by algorithm name and gives the command
// line tools one surface over both engines.
package engine

import (
	"fmt"
	"strings"

	"github.com/tinylib/msgp/msgp"

	"github.com/cynecx/rand"
	"github.com/cynecx/rand/pcg"
	"github.com/cynecx/rand/xoshiro"
)

// Algorithm names a generator.
type Algorithm string

const (
	PCG32      Algorithm = "pcg32"
	Xoshiro256 Algorithm = "xoshiro256"
)

// Algorithms lists every supported algorithm.
var Algorithms = []Algorithm{PCG32, Xoshiro256}

// Generator is a bit generator whose state can be persisted.
type Generator interface {
	rand.Source
	msgp.Encodable
	msgp.Decodable
	msgp.Marshaler
	msgp.Unmarshaler
}

type algorithmInfo struct {
	seedSize   int
	fromSeed   func(b []byte) Generator
	fromUint64 func(n uint64) Generator
	fromRNG    func(src rand.Source) (Generator, error)
	empty      func() Generator
	clone      func(g Generator) Generator
	skip       func(g Generator, n uint64) error
}

// MaxJumps bounds a single xoshiro256 Skip. Each jump costs 256 steps, so
// larger counts would not finish in practice.
const MaxJumps = 1 << 20

var registry = map[Algorithm]algorithmInfo{
	PCG32: {
		seedSize: pcg.SeedSize,
		fromSeed: func(b []byte) Generator {
			return pcg.FromSeed(pcg.Seed(b))
		},
		fromUint64: func(n uint64) Generator { return pcg.FromUint64(n) },
		fromRNG: func(src rand.Source) (Generator, error) {
			g, err := pcg.FromRNG(src)
			if err != nil {
				return nil, err
			}
			return g, nil
		},
		empty: func() Generator { return &pcg.PCG32{} },
		clone: func(g Generator) Generator { return g.(*pcg.PCG32).Clone() },
		skip: func(g Generator, n uint64) error {
			g.(*pcg.PCG32).Advance(n)
			return nil
		},
	},
	Xoshiro256: {
		seedSize: xoshiro.SeedSize,
		fromSeed: func(b []byte) Generator {
			return xoshiro.FromSeed(xoshiro.Seed(b))
		},
		fromUint64: func(n uint64) Generator { return xoshiro.FromUint64(n) },
		fromRNG: func(src rand.Source) (Generator, error) {
			g, err := xoshiro.FromRNG(src)
			if err != nil {
				return nil, err
			}
			return g, nil
		},
		empty: func() Generator { return &xoshiro.Xoshiro256StarStar{} },
		clone: func(g Generator) Generator { return g.(*xoshiro.Xoshiro256StarStar).Clone() },
		skip: func(g Generator, n uint64) error {
			if n > MaxJumps {
				return fmt.Errorf("xoshiro256 jump count %d exceeds limit %d", n, MaxJumps)
			}
			x := g.(*xoshiro.Xoshiro256StarStar)
			for i := uint64(0); i < n; i++ {
				x.Jump()
			}
			return nil
		},
	},
}

// ParseAlgorithm accepts an algorithm name, case-insensitively. "xoshiro" and
// "xoshiro256**" are accepted for xoshiro256.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pcg32", "pcg":
		return PCG32, nil
	case "xoshiro256", "xoshiro256**", "xoshiro":
		return Xoshiro256, nil
	}
	return "", fmt.Errorf("unknown algorithm %q (available: pcg32, xoshiro256)", s)
}

func (a Algorithm) info() (algorithmInfo, error) {
	info, ok := registry[a]
	if !ok {
		return algorithmInfo{}, fmt.Errorf("unknown algorithm %q", string(a))
	}
	return info, nil
}

// SeedSize returns the seed length in bytes, or 0 for an unknown algorithm.
func (a Algorithm) SeedSize() int {
	info, err := a.info()
	if err != nil {
		return 0
	}
	return info.seedSize
}

// FromSeed builds a generator from raw seed bytes, which must be exactly
// SeedSize long.
func FromSeed(a Algorithm, b []byte) (Generator, error) {
	info, err := a.info()
	if err != nil {
		return nil, err
	}
	if len(b) != info.seedSize {
		return nil, fmt.Errorf("%s seed must be %d bytes, got %d", a, info.seedSize, len(b))
	}
	return info.fromSeed(b), nil
}

// FromUint64 builds a generator from a SplitMix64-expanded integer seed.
func FromUint64(a Algorithm, n uint64) (Generator, error) {
	info, err := a.info()
	if err != nil {
		return nil, err
	}
	return info.fromUint64(n), nil
}

// FromRNG seeds a generator from src.
func FromRNG(a Algorithm, src rand.Source) (Generator, error) {
	info, err := a.info()
	if err != nil {
		return nil, err
	}
	return info.fromRNG(src)
}

// Empty returns a generator to decode persisted state into.
func Empty(a Algorithm) (Generator, error) {
	info, err := a.info()
	if err != nil {
		return nil, err
	}
	return info.empty(), nil
}

// AlgorithmOf reports which algorithm g implements.
func AlgorithmOf(g Generator) (Algorithm, error) {
	switch g.(type) {
	case *pcg.PCG32:
		return PCG32, nil
	case *xoshiro.Xoshiro256StarStar:
		return Xoshiro256, nil
	}
	return "", fmt.Errorf("unsupported generator %T", g)
}

// Clone copies g.
func Clone(g Generator) Generator {
	a, err := AlgorithmOf(g)
	if err != nil {
		panic(err)
	}
	return registry[a].clone(g)
}

// Skip moves g forward. For pcg32, n counts 32-bit outputs; for xoshiro256,
// n counts 2^128-step jumps and may not exceed MaxJumps.
func Skip(g Generator, n uint64) error {
	a, err := AlgorithmOf(g)
	if err != nil {
		return err
	}
	return registry[a].skip(g, n)
}

// Streams derives k non-overlapping generators from g. Stream i starts i
// strides after g; stride is a Skip count. g itself is not modified.
func Streams(g Generator, k int, stride uint64) ([]Generator, error) {
	if k < 1 {
		return nil, fmt.Errorf("stream count must be positive, got %d", k)
	}
	if stride == 0 {
		return nil, fmt.Errorf("stride must be positive")
	}

	out := make([]Generator, k)
	cur := Clone(g)
	for i := range out {
		if i > 0 {
			if err := Skip(cur, stride); err != nil {
				return nil, err
			}
		}
		out[i] = Clone(cur)
	}
	return out, nil
}
