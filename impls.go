package rand

import "encoding/binary"

// Uint64ViaUint32 builds a 64-bit word from two Uint32 draws. The first draw
// becomes the low half.
func Uint64ViaUint32(src Source) uint64 {
	lo := uint64(src.Uint32())
	hi := uint64(src.Uint32())
	return hi<<32 | lo
}

// Uint32ViaUint64 returns the low 32 bits of one Uint64 draw.
func Uint32ViaUint64(src Source) uint32 {
	return uint32(src.Uint64())
}

// FillBytesViaNext fills dst with little-endian Uint64 outputs. A trailing
// partial word of 5-7 bytes is cut from one more Uint64; a tail of 1-4 bytes
// is cut from a Uint32.
func FillBytesViaNext(src Source, dst []byte) {
	for len(dst) >= 8 {
		binary.LittleEndian.PutUint64(dst, src.Uint64())
		dst = dst[8:]
	}

	var tail [8]byte
	switch n := len(dst); {
	case n > 4:
		binary.LittleEndian.PutUint64(tail[:], src.Uint64())
		copy(dst, tail[:n])
	case n > 0:
		binary.LittleEndian.PutUint32(tail[:4], src.Uint32())
		copy(dst, tail[:n])
	}
}
