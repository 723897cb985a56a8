// Package randutil expands a single 64-bit number into full-width seed
// bytes, so callers with a small integer seed still get well-mixed state.
package randutil

import "encoding/binary"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// SeedBytes fills dst with the SplitMix64 stream started at seed, written as
// little-endian words. A trailing partial word is truncated.
func SeedBytes(dst []byte, seed uint64) {
	state := seed
	var word [8]byte
	for len(dst) > 0 {
		state += goldenRatio64
		binary.LittleEndian.PutUint64(word[:], mix(state))
		n := copy(dst, word[:])
		dst = dst[n:]
	}
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
