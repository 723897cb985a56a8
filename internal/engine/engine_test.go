package engine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cynecx/rand"
	"github.com/cynecx/rand/pcg"
	"github.com/cynecx/rand/xoshiro"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{in: "pcg32", want: PCG32},
		{in: "PCG", want: PCG32},
		{in: " xoshiro256 ", want: Xoshiro256},
		{in: "xoshiro256**", want: Xoshiro256},
		{in: "mt19937", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeedSize(t *testing.T) {
	assert.Equal(t, 16, PCG32.SeedSize())
	assert.Equal(t, 32, Xoshiro256.SeedSize())
	assert.Equal(t, 0, Algorithm("nope").SeedSize())
}

func TestFromSeedMatchesEngines(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}

	g, err := FromSeed(Xoshiro256, seed)
	require.NoError(t, err)
	assert.Equal(t, uint64(13557399450712487245), g.Uint64())

	g, err = FromSeed(PCG32, seed[:16])
	require.NoError(t, err)
	assert.Equal(t, pcg.FromSeed(pcg.Seed(seed[:16])).Uint64(), g.Uint64())

	_, err = FromSeed(PCG32, seed)
	assert.Error(t, err)
	_, err = FromSeed("nope", seed)
	assert.Error(t, err)
}

func TestFromUint64(t *testing.T) {
	for _, a := range Algorithms {
		g1, err := FromUint64(a, 7)
		require.NoError(t, err)
		g2, err := FromUint64(a, 7)
		require.NoError(t, err)
		assert.Equal(t, g1.Uint64(), g2.Uint64(), string(a))
	}
}

func TestFromRNG(t *testing.T) {
	seed := bytes.Repeat([]byte{0xab}, 32)
	g, err := FromRNG(Xoshiro256, rand.NewEntropy(bytes.NewReader(seed)))
	require.NoError(t, err)
	assert.Equal(t, xoshiro.FromSeed(xoshiro.Seed(seed)).Uint64(), g.Uint64())

	_, err = FromRNG(PCG32, rand.NewEntropy(bytes.NewReader(nil)))
	assert.ErrorIs(t, err, rand.ErrEntropy)
}

func TestAlgorithmOfAndEmpty(t *testing.T) {
	for _, a := range Algorithms {
		g, err := Empty(a)
		require.NoError(t, err)
		got, err := AlgorithmOf(g)
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	for _, a := range Algorithms {
		g, err := FromUint64(a, 1)
		require.NoError(t, err)

		c := Clone(g)
		assert.Equal(t, g.Uint64(), c.Uint64(), string(a))
		c.Uint64()
		assert.NotEqual(t, g.Uint64(), c.Uint64(), string(a))
	}
}

func TestSkip(t *testing.T) {
	p := pcg.New(1, 2)
	g := Generator(p.Clone())
	require.NoError(t, Skip(g, 10))
	for i := 0; i < 10; i++ {
		p.Uint32()
	}
	assert.Equal(t, p.Uint64(), g.Uint64())

	x := xoshiro.FromUint64(3)
	h := Generator(x.Clone())
	require.NoError(t, Skip(h, 2))
	x.Jump()
	x.Jump()
	assert.Equal(t, x.Uint64(), h.Uint64())
}

func TestSkipJumpLimit(t *testing.T) {
	x := xoshiro.FromUint64(3)
	g := Generator(x.Clone())
	assert.ErrorContains(t, Skip(g, MaxJumps+1), "exceeds limit")
	assert.Equal(t, x.Uint64(), g.Uint64(), "rejected skip must not move the generator")

	_, err := Streams(Generator(xoshiro.FromUint64(3)), 2, 1e15)
	assert.Error(t, err)

	// Advance is logarithmic, so pcg32 accepts any count.
	assert.NoError(t, Skip(Generator(pcg.New(1, 2)), 1e15))
}

func TestStreams(t *testing.T) {
	base, err := FromUint64(Xoshiro256, 5)
	require.NoError(t, err)
	first := Clone(base).Uint64()

	streams, err := Streams(base, 3, 1)
	require.NoError(t, err)
	require.Len(t, streams, 3)

	// Stream 0 starts where the base generator is; base is untouched.
	assert.Equal(t, first, streams[0].Uint64())
	assert.Equal(t, first, base.Uint64())

	want := xoshiro.FromUint64(5)
	want.Jump()
	want.Jump()
	assert.Equal(t, want.Uint64(), streams[2].Uint64())

	_, err = Streams(base, 0, 1)
	assert.Error(t, err)
	_, err = Streams(base, 2, 0)
	assert.Error(t, err)
}
