// Package snapshot persists generator state to disk so a stream can be
// resumed exactly where it stopped.
package snapshot

import (
	"fmt"
	"io"
	"os"

	"github.com/tinylib/msgp/msgp"

	"github.com/cynecx/rand/internal/engine"
	"github.com/cynecx/rand/internal/fileutil"
)

const fileVersion = 1

// Snapshot is a generator together with the algorithm needed to restore it.
type Snapshot struct {
	Algorithm engine.Algorithm
	Generator engine.Generator
}

// Encode writes s as a msgpack map of version, algorithm and state.
func Encode(w io.Writer, s Snapshot) error {
	en := msgp.NewWriter(w)
	if err := en.WriteMapHeader(3); err != nil {
		return err
	}
	if err := en.WriteString("version"); err != nil {
		return err
	}
	if err := en.WriteInt(fileVersion); err != nil {
		return err
	}
	if err := en.WriteString("algorithm"); err != nil {
		return err
	}
	if err := en.WriteString(string(s.Algorithm)); err != nil {
		return err
	}
	if err := en.WriteString("state"); err != nil {
		return err
	}
	if err := s.Generator.EncodeMsg(en); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return en.Flush()
}

// Decode reads a snapshot written by Encode.
func Decode(r io.Reader) (Snapshot, error) {
	dc := msgp.NewReader(r)

	sz, err := dc.ReadMapHeader()
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	var (
		snap    Snapshot
		version int
		state   []byte
	)
	for i := uint32(0); i < sz; i++ {
		key, err := dc.ReadString()
		if err != nil {
			return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
		}
		switch key {
		case "version":
			version, err = dc.ReadInt()
		case "algorithm":
			var name string
			name, err = dc.ReadString()
			snap.Algorithm = engine.Algorithm(name)
		case "state":
			// State may precede the algorithm, so hold the raw message.
			var raw msgp.Raw
			err = raw.DecodeMsg(dc)
			state = raw
		default:
			err = dc.Skip()
		}
		if err != nil {
			return Snapshot{}, fmt.Errorf("decode snapshot field %q: %w", key, err)
		}
	}

	if version != fileVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version %d", version)
	}
	if state == nil {
		return Snapshot{}, fmt.Errorf("snapshot has no state")
	}

	snap.Generator, err = engine.Empty(snap.Algorithm)
	if err != nil {
		return Snapshot{}, err
	}
	if _, err := snap.Generator.UnmarshalMsg(state); err != nil {
		return Snapshot{}, fmt.Errorf("decode %s state: %w", snap.Algorithm, err)
	}
	return snap, nil
}

// Save writes g to path, replacing any previous snapshot. Readers see either
// the old file or the complete new one.
func Save(path string, g engine.Generator) error {
	alg, err := engine.AlgorithmOf(g)
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Encode(w, Snapshot{Algorithm: alg, Generator: g})
	})
}

// Load restores a generator saved with Save.
func Load(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()

	return Decode(f)
}
