package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cynecx/rand/internal/engine"
)

const refSeed = "2a000000000000003600000000000000"

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}

func TestGenFormats(t *testing.T) {
	isolate(t)

	t.Run("hex32", func(t *testing.T) {
		out, err := run(t, "gen", "-a", "pcg32", "--seed", refSeed, "-n", "3", "-w", "32", "-f", "hex")
		require.NoError(t, err)
		assert.Equal(t, []string{"a15c02b7", "7b47f409", "ba1d3330"}, lines(out))
	})

	t.Run("hex64", func(t *testing.T) {
		out, err := run(t, "gen", "-a", "pcg32", "--seed", refSeed, "-n", "1", "-f", "hex")
		require.NoError(t, err)
		assert.Equal(t, []string{"7b47f409a15c02b7"}, lines(out))
	})

	t.Run("dec", func(t *testing.T) {
		out, err := run(t, "gen", "--seed-u64", "5", "-n", "2")
		require.NoError(t, err)

		g, err := engine.FromUint64(engine.Xoshiro256, 5)
		require.NoError(t, err)
		assert.Equal(t, []string{
			formatWord(g.Uint64(), 64, "dec"),
			formatWord(g.Uint64(), 64, "dec"),
		}, lines(out))
	})

	t.Run("bytes", func(t *testing.T) {
		out, err := run(t, "gen", "--seed-u64", "5", "-n", "13", "-f", "bytes")
		require.NoError(t, err)

		g, err := engine.FromUint64(engine.Xoshiro256, 5)
		require.NoError(t, err)
		want := make([]byte, 13)
		g.FillBytes(want)
		assert.Equal(t, string(want), out)
	})

	t.Run("cbor", func(t *testing.T) {
		out, err := run(t, "gen", "-a", "pcg32", "--seed", refSeed, "-n", "2", "-w", "32", "-f", "cbor")
		require.NoError(t, err)

		var words []uint64
		require.NoError(t, cbor.Unmarshal([]byte(out), &words))
		assert.Equal(t, []uint64{0xa15c02b7, 0x7b47f409}, words)
	})
}

func TestGenRejectsBadInput(t *testing.T) {
	isolate(t)

	_, err := run(t, "gen", "--seed-u64", "1", "-w", "16")
	assert.ErrorContains(t, err, "width")

	_, err = run(t, "gen", "-a", "pcg32", "--seed", "zz")
	assert.ErrorContains(t, err, "hex")

	_, err = run(t, "gen", "-a", "pcg32", "--seed", "00ff")
	assert.Error(t, err)

	_, err = run(t, "gen", "-a", "mt19937", "--seed-u64", "1")
	assert.Error(t, err)
}

func TestGenAdvanceAndJump(t *testing.T) {
	isolate(t)
	out, err := run(t, "gen", "-a", "pcg32", "--seed", refSeed, "--advance", "4", "-n", "2", "-w", "32", "-f", "hex")
	require.NoError(t, err)
	assert.Equal(t, []string{"bfa4784b", "cbed606e"}, lines(out))

	seed := "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	out, err = run(t, "gen", "-a", "xoshiro256", "--seed", seed, "--jump", "1", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"13745676184895872781", "6558318295426599200"}, lines(out))

	_, err = run(t, "gen", "-a", "pcg32", "--seed-u64", "1", "--jump", "1")
	assert.ErrorContains(t, err, "--jump requires xoshiro256")

	_, err = run(t, "gen", "-a", "xoshiro256", "--seed-u64", "1", "--advance", "1")
	assert.ErrorContains(t, err, "--advance requires pcg32")

	_, err = run(t, "gen", "-a", "xoshiro256", "--seed-u64", "1", "--jump", "1000000000000000")
	assert.ErrorContains(t, err, "exceeds limit")
}

func TestGenSaveAndResume(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "state", "gen.msgp")

	for _, alg := range []string{"pcg32", "xoshiro256"} {
		t.Run(alg, func(t *testing.T) {
			full, err := run(t, "gen", "-a", alg, "--seed-u64", "11", "-n", "6")
			require.NoError(t, err)

			first, err := run(t, "gen", "-a", alg, "--seed-u64", "11", "-n", "3", "--save", path)
			require.NoError(t, err)
			rest, err := run(t, "gen", "--resume", path, "-n", "3")
			require.NoError(t, err)

			assert.Equal(t, lines(full), append(lines(first), lines(rest)...))
		})
	}

	_, err := run(t, "gen", "-a", "pcg32", "--resume", path, "-n", "1")
	assert.ErrorContains(t, err, "holds xoshiro256")
}
