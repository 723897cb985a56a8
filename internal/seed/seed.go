// Package seed turns seed bytes into generator state words. Both engines
// route every seeding path through here so byte order and the all-zero rule
// are applied the same way.
package seed

import (
	"encoding/binary"
	"fmt"
)

// MaxWords is the widest state this package decodes (xoshiro256).
const MaxWords = 4

// Filler is the part of rand.Source needed to draw seed material.
type Filler interface {
	TryFillBytes(dst []byte) error
}

// Decode reads len(dst) little-endian words from b. b must hold exactly
// 8*len(dst) bytes.
func Decode(dst []uint64, b []byte) {
	if len(b) != 8*len(dst) {
		panic(fmt.Sprintf("seed: %d bytes cannot fill %d words", len(b), len(dst)))
	}
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint64(b[8*i:])
	}
}

// Encode writes words into b as little-endian words.
func Encode(b []byte, words []uint64) {
	if len(b) != 8*len(words) {
		panic(fmt.Sprintf("seed: %d bytes cannot hold %d words", len(b), len(words)))
	}
	for i, w := range words {
		binary.LittleEndian.PutUint64(b[8*i:], w)
	}
}

// IsZero reports whether every word is zero.
func IsZero(words []uint64) bool {
	for _, w := range words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Normalize replaces an all-zero state with fallback. It reports whether the
// substitution happened.
func Normalize(words, fallback []uint64) bool {
	if !IsZero(words) {
		return false
	}
	copy(words, fallback)
	return true
}

// Draw fills words from src. When rejectZero is set the draw repeats until
// at least one word is non-zero. Errors from src are returned unchanged.
func Draw(src Filler, words []uint64, rejectZero bool) error {
	if len(words) > MaxWords {
		panic(fmt.Sprintf("seed: %d words exceeds %d", len(words), MaxWords))
	}

	var buf [8 * MaxWords]byte
	b := buf[:8*len(words)]
	for {
		if err := src.TryFillBytes(b); err != nil {
			return err
		}
		Decode(words, b)
		if !rejectZero || !IsZero(words) {
			return nil
		}
	}
}
