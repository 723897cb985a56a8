package rand

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Entropy adapts a byte stream such as crypto/rand.Reader into a Source so it
// can seed generators through FromRNG.
type Entropy struct {
	r io.Reader
}

var _ Source = (*Entropy)(nil)

// NewEntropy wraps r.
func NewEntropy(r io.Reader) *Entropy {
	return &Entropy{r: r}
}

// TryFillBytes reads exactly len(dst) bytes. Read failures are wrapped with
// ErrEntropy.
func (e *Entropy) TryFillBytes(dst []byte) error {
	if _, err := io.ReadFull(e.r, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrEntropy, err)
	}
	return nil
}

// FillBytes is TryFillBytes for callers that cannot handle a failure. It
// panics when the reader fails.
func (e *Entropy) FillBytes(dst []byte) {
	if err := e.TryFillBytes(dst); err != nil {
		panic(err)
	}
}

// Uint32 decodes four bytes from the reader, little-endian.
func (e *Entropy) Uint32() uint32 {
	var b [4]byte
	e.FillBytes(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

// Uint64 decodes eight bytes from the reader, little-endian.
func (e *Entropy) Uint64() uint64 {
	var b [8]byte
	e.FillBytes(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
