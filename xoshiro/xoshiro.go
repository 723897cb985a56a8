// Package xoshiro implements xoshiro256**, a 256-bit linear generator with a
// multiply-rotate scrambler and a 2^128-step jump function.
//
// See David Blackman and Sebastiano Vigna, "Scrambled Linear Pseudorandom
// Number Generators", https://prng.di.unimi.it.
package xoshiro

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/cynecx/rand"
	"github.com/cynecx/rand/internal/randutil"
	"github.com/cynecx/rand/internal/seed"
)

// SeedSize is the length of a Seed in bytes.
const SeedSize = 32

// Seed is four little-endian state words.
type Seed [SeedSize]byte

// ZeroSeedState replaces an all-zero seed in FromSeed. The all-zero state is
// a fixed point of the generator.
var ZeroSeedState = [4]uint64{
	0x28EF3C47A831FD1C,
	0x8E975A1178A024DB,
	0x847707765ECFACC4,
	0xB35F3DAC565901B4,
}

// jumpPoly advances the state by 2^128 steps.
var jumpPoly = [4]uint64{
	0x180EC6D33CFD0ABA,
	0xD5A61266F0C9392C,
	0xA9582618E03FC9AA,
	0x39ABDC4529B1661C,
}

// Xoshiro256StarStar is a xoshiro256** generator. Its state is never all
// zero. The zero value is not usable; construct one with FromSeed,
// FromUint64 or FromRNG.
type Xoshiro256StarStar struct {
	s0, s1, s2, s3 uint64
}

var _ rand.Source = (*Xoshiro256StarStar)(nil)

// FromSeed decodes seed into the four state words. An all-zero seed is
// replaced with ZeroSeedState.
func FromSeed(s Seed) *Xoshiro256StarStar {
	var w [4]uint64
	seed.Decode(w[:], s[:])
	seed.Normalize(w[:], ZeroSeedState[:])
	return fromWords(w)
}

// FromUint64 expands n with SplitMix64 into a full seed.
func FromUint64(n uint64) *Xoshiro256StarStar {
	var s Seed
	randutil.SeedBytes(s[:], n)
	return FromSeed(s)
}

// FromRNG seeds a generator with bytes drawn from src, drawing again until
// the seed is not all zero. An error from src is returned unchanged.
func FromRNG(src rand.Source) (*Xoshiro256StarStar, error) {
	var w [4]uint64
	if err := seed.Draw(src, w[:], true); err != nil {
		return nil, err
	}
	return fromWords(w), nil
}

func fromWords(w [4]uint64) *Xoshiro256StarStar {
	return &Xoshiro256StarStar{s0: w[0], s1: w[1], s2: w[2], s3: w[3]}
}

// Clone returns an independent copy positioned at the same point in the
// stream.
func (x *Xoshiro256StarStar) Clone() *Xoshiro256StarStar {
	c := *x
	return &c
}

// Uint64 scrambles s1 into the output word and steps the state.
func (x *Xoshiro256StarStar) Uint64() uint64 {
	result := bits.RotateLeft64(x.s1*5, 7) * 9

	t := x.s1 << 17

	x.s2 ^= x.s0
	x.s3 ^= x.s1
	x.s1 ^= x.s2
	x.s0 ^= x.s3

	x.s2 ^= t
	x.s3 = bits.RotateLeft64(x.s3, 45)

	return result
}

// Uint32 returns the low half of one Uint64 draw.
func (x *Xoshiro256StarStar) Uint32() uint32 {
	return rand.Uint32ViaUint64(x)
}

// FillBytes fills dst from Uint64 outputs, little-endian.
func (x *Xoshiro256StarStar) FillBytes(dst []byte) {
	rand.FillBytesViaNext(x, dst)
}

// TryFillBytes never fails.
func (x *Xoshiro256StarStar) TryFillBytes(dst []byte) error {
	x.FillBytes(dst)
	return nil
}

// Jump advances the generator by 2^128 calls to Uint64. Successive jumps
// from one seed give 2^128 non-overlapping subsequences for parallel use.
func (x *Xoshiro256StarStar) Jump() {
	var s0, s1, s2, s3 uint64
	for _, word := range jumpPoly {
		for b := 0; b < 64; b++ {
			if word&(1<<b) != 0 {
				s0 ^= x.s0
				s1 ^= x.s1
				s2 ^= x.s2
				s3 ^= x.s3
			}
			x.Uint64()
		}
	}
	x.s0, x.s1, x.s2, x.s3 = s0, s1, s2, s3
}

// Format prints the type name only; the state stays private.
func (Xoshiro256StarStar) Format(f fmt.State, _ rune) {
	io.WriteString(f, "Xoshiro256StarStar{}")
}
