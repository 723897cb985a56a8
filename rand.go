// Package rand defines the contract shared by the bit generators in this
// module and the helpers they use to implement it.
//
// The generators are deterministic and not suitable for cryptographic use.
// Each instance is owned by one goroutine at a time; share generators across
// goroutines only behind your own lock, or derive one generator per
// goroutine (see pcg.PCG32.Advance and xoshiro.Xoshiro256StarStar.Jump).
//
// Every Source also satisfies math/rand/v2.Source, so distributions are
// sampled with the standard library:
//
//	r := rand.New(xoshiro.FromSeed(seed))
//	r.NormFloat64()
package rand

import "errors"

// ErrEntropy is returned when an upstream entropy source cannot supply bytes.
// It is the only failure a generator can report, and only while seeding.
var ErrEntropy = errors.New("rand: entropy source failure")

// Source is a bit generator.
type Source interface {
	// Uint32 returns the next 32 pseudo-random bits.
	Uint32() uint32

	// Uint64 returns the next 64 pseudo-random bits.
	Uint64() uint64

	// FillBytes fills dst with pseudo-random bytes.
	FillBytes(dst []byte)

	// TryFillBytes fills dst like FillBytes but reports failures of an
	// underlying entropy source. Algorithmic generators never fail.
	TryFillBytes(dst []byte) error
}
