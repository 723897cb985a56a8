package pcg

import (
	"errors"

	"github.com/tinylib/msgp/msgp"

	"github.com/cynecx/rand/internal/seed"
)

// stateWords is the number of words persisted: state and inc.
const stateWords = 2

var errInvalidState = errors.New("pcg: invalid state encoding")

var (
	_ msgp.Marshaler   = (*PCG32)(nil)
	_ msgp.Unmarshaler = (*PCG32)(nil)
	_ msgp.Encodable   = (*PCG32)(nil)
	_ msgp.Decodable   = (*PCG32)(nil)
	_ msgp.Sizer       = (*PCG32)(nil)
)

func (p *PCG32) words() [stateWords]uint64 {
	return [stateWords]uint64{p.state, p.inc}
}

func (p *PCG32) setWords(w [stateWords]uint64) error {
	if w[1]&1 == 0 {
		return errInvalidState
	}
	p.state, p.inc = w[0], w[1]
	return nil
}

// MarshalBinary encodes the state and increment as two little-endian words.
func (p *PCG32) MarshalBinary() ([]byte, error) {
	w := p.words()
	b := make([]byte, 8*stateWords)
	seed.Encode(b, w[:])
	return b, nil
}

// UnmarshalBinary restores a generator written by MarshalBinary.
func (p *PCG32) UnmarshalBinary(data []byte) error {
	if len(data) != 8*stateWords {
		return errInvalidState
	}
	var w [stateWords]uint64
	seed.Decode(w[:], data)
	return p.setWords(w)
}

// MarshalMsg implements msgp.Marshaler
func (p *PCG32) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, p.Msgsize())
	o = msgp.AppendArrayHeader(o, stateWords)
	o = msgp.AppendUint64(o, p.state)
	o = msgp.AppendUint64(o, p.inc)
	return
}

// UnmarshalMsg implements msgp.Unmarshaler
func (p *PCG32) UnmarshalMsg(bts []byte) (o []byte, err error) {
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
	if err = p.setWords(w); err != nil {
		return
	}
	o = bts
	return
}

// EncodeMsg implements msgp.Encodable
func (p *PCG32) EncodeMsg(en *msgp.Writer) (err error) {
	err = en.WriteArrayHeader(stateWords)
	if err != nil {
		return
	}
	err = en.WriteUint64(p.state)
	if err != nil {
		err = msgp.WrapError(err, 0)
		return
	}
	err = en.WriteUint64(p.inc)
	if err != nil {
		err = msgp.WrapError(err, 1)
		return
	}
	return
}

// DecodeMsg implements msgp.Decodable
func (p *PCG32) DecodeMsg(dc *msgp.Reader) (err error) {
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
	return p.setWords(w)
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (p *PCG32) Msgsize() int {
	return msgp.ArrayHeaderSize + stateWords*msgp.Uint64Size
}
