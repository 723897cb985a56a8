// Package pcg implements PCG32 (PCG-XSH-RR with 64-bit state and 32-bit
// output), a small, fast, statistically good generator with cheap
// jump-ahead. See https://www.pcg-random.org.
package pcg

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/cynecx/rand"
	"github.com/cynecx/rand/internal/randutil"
	"github.com/cynecx/rand/internal/seed"
)

// Multiplier is the LCG multiplier shared by every stream.
const Multiplier = 6364136223846793005

// SeedSize is the length of a Seed in bytes.
const SeedSize = 16

// Seed is two little-endian words: the initial state and the stream selector.
type Seed [SeedSize]byte

// PCG32 is a PCG-XSH-RR generator. The zero value is not usable; construct
// one with New, FromSeed, FromUint64 or FromRNG.
type PCG32 struct {
	state uint64
	inc   uint64 // odd, fixed after construction
}

var _ rand.Source = (*PCG32)(nil)

// New returns a generator for initial state and stream seq. Distinct seq
// values select distinct output sequences.
func New(state, seq uint64) *PCG32 {
	p := &PCG32{inc: seq<<1 | 1}
	p.Uint32()
	p.state += state
	p.Uint32()
	return p
}

// FromSeed decodes seed as [state, seq] and calls New.
func FromSeed(s Seed) *PCG32 {
	var w [2]uint64
	seed.Decode(w[:], s[:])
	return New(w[0], w[1])
}

// FromUint64 expands n with SplitMix64 into a full seed.
func FromUint64(n uint64) *PCG32 {
	var s Seed
	randutil.SeedBytes(s[:], n)
	return FromSeed(s)
}

// FromRNG seeds a generator with bytes drawn from src. An error from src is
// returned unchanged.
func FromRNG(src rand.Source) (*PCG32, error) {
	var w [2]uint64
	if err := seed.Draw(src, w[:], false); err != nil {
		return nil, err
	}
	return New(w[0], w[1]), nil
}

// Clone returns an independent copy positioned at the same point in the
// stream.
func (p *PCG32) Clone() *PCG32 {
	c := *p
	return &c
}

// Uint32 permutes the current state into an output word and steps the LCG.
func (p *PCG32) Uint32() uint32 {
	s := p.state
	p.state = s*Multiplier + p.inc

	xorshifted := uint32(((s >> 18) ^ s) >> 27)
	return bits.RotateLeft32(xorshifted, -int(s>>59))
}

// Uint64 combines two Uint32 outputs, the first one as the low half.
func (p *PCG32) Uint64() uint64 {
	return rand.Uint64ViaUint32(p)
}

// FillBytes fills dst from Uint64 outputs, little-endian.
func (p *PCG32) FillBytes(dst []byte) {
	rand.FillBytesViaNext(p, dst)
}

// TryFillBytes never fails.
func (p *PCG32) TryFillBytes(dst []byte) error {
	p.FillBytes(dst)
	return nil
}

// Advance moves the generator delta steps forward in O(log delta), as if
// Uint32 had been called delta times. delta wraps modulo 2^64, so
// Advance(-k) steps back k places.
func (p *PCG32) Advance(delta uint64) {
	curMult, curPlus := uint64(Multiplier), p.inc
	accMult, accPlus := uint64(1), uint64(0)

	for delta > 0 {
		if delta&1 != 0 {
			accMult *= curMult
			accPlus = accPlus*curMult + curPlus
		}
		curPlus = (curMult + 1) * curPlus
		curMult *= curMult
		delta >>= 1
	}

	p.state = accMult*p.state + accPlus
}

// Retreat moves the generator delta steps backward.
func (p *PCG32) Retreat(delta uint64) {
	p.Advance(-delta)
}

// Format prints the type name only; the state stays private.
func (PCG32) Format(f fmt.State, _ rune) {
	io.WriteString(f, "PCG32{}")
}
