package xoshiro

import (
	"errors"

	"github.com/tinylib/msgp/msgp"

	"github.com/cynecx/rand/internal/seed"
)

const stateWords = 4

var errInvalidState = errors.New("xoshiro: invalid state encoding")

var (
	_ msgp.Marshaler   = (*Xoshiro256StarStar)(nil)
	_ msgp.Unmarshaler = (*Xoshiro256StarStar)(nil)
	_ msgp.Encodable   = (*Xoshiro256StarStar)(nil)
	_ msgp.Decodable   = (*Xoshiro256StarStar)(nil)
	_ msgp.Sizer       = (*Xoshiro256StarStar)(nil)
)

func (x *Xoshiro256StarStar) words() [stateWords]uint64 {
	return [stateWords]uint64{x.s0, x.s1, x.s2, x.s3}
}

// setWords refuses the all-zero state instead of substituting: a persisted
// zero state cannot come from a healthy generator.
func (x *Xoshiro256StarStar) setWords(w [stateWords]uint64) error {
	if seed.IsZero(w[:]) {
		return errInvalidState
	}
	x.s0, x.s1, x.s2, x.s3 = w[0], w[1], w[2], w[3]
	return nil
}

// MarshalBinary encodes the four state words little-endian.
func (x *Xoshiro256StarStar) MarshalBinary() ([]byte, error) {
	w := x.words()
	b := make([]byte, 8*stateWords)
	seed.Encode(b, w[:])
	return b, nil
}

// UnmarshalBinary restores a generator written by MarshalBinary.
func (x *Xoshiro256StarStar) UnmarshalBinary(data []byte) error {
	if len(data) != 8*stateWords {
		return errInvalidState
	}
	var w [stateWords]uint64
	seed.Decode(w[:], data)
	return x.setWords(w)
}

// MarshalMsg implements msgp.Marshaler
func (x *Xoshiro256StarStar) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, x.Msgsize())
	o = msgp.AppendArrayHeader(o, stateWords)
	for _, w := range x.words() {
		o = msgp.AppendUint64(o, w)
	}
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (x *Xoshiro256StarStar) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var sz uint32
	sz, bts, err = msgp.ReadArrayHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	if sz != stateWords {
		err = msgp.ArrayError{Wanted: stateWords, Got: sz}
		return
	}
	var w [stateWords]uint64
	for i := range w {
		w[i], bts, err = msgp.ReadUint64Bytes(bts)
		if err != nil {
			err = msgp.WrapError(err, i)
			return
		}
	}
	if err = x.setWords(w); err != nil {
		return
	}
	o = bts
	return
}

// EncodeMsg implements msgp.Encodable
func (x *Xoshiro256StarStar) EncodeMsg(en *msgp.Writer) (err error) {
	err = en.WriteArrayHeader(stateWords)
	if err != nil {
		return
	}
	for i, w := range x.words() {
		err = en.WriteUint64(w)
		if err != nil {
			err = msgp.WrapError(err, i)
			return
		}
	}
	return
}

// DecodeMsg implements msgp.Decodable
func (x *Xoshiro256StarStar) DecodeMsg(dc *msgp.Reader) (err error) {
	var sz uint32
	sz, err = dc.ReadArrayHeader()
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	if sz != stateWords {
		err = msgp.ArrayError{Wanted: stateWords, Got: sz}
		return
	}
	var w [stateWords]uint64
	for i := range w {
		w[i], err = dc.ReadUint64()
		if err != nil {
			err = msgp.WrapError(err, i)
			return
		}
	}
	return x.setWords(w)
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (x *Xoshiro256StarStar) Msgsize() int {
	return msgp.ArrayHeaderSize + stateWords*msgp.Uint64Size
}
