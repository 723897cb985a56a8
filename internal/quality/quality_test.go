package quality

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cynecx/rand/pcg"
	"github.com/cynecx/rand/xoshiro"
)

func TestGeneratorsPass(t *testing.T) {
	const alpha = 1e-6

	t.Run("xoshiro256", func(t *testing.T) {
		data := make([]byte, 1<<16)
		xoshiro.FromUint64(1).FillBytes(data)
		results := Run(data, alpha)
		require.Len(t, results, 3)
		for _, r := range results {
			assert.True(t, r.Pass, "%s: p=%g", r.Name, r.PValue)
		}
	})

	t.Run("pcg32", func(t *testing.T) {
		data := make([]byte, 1<<16)
		pcg.New(42, 54).FillBytes(data)
		assert.True(t, Passed(Run(data, alpha)))
	})
}

func TestConstantStreamFails(t *testing.T) {
	data := make([]byte, 4096)
	results := Run(data, DefaultAlpha)
	assert.False(t, Passed(results))
	want := map[string]int{"byte-frequency": 4096, "monobit": 4096, "uniform-mean": 512}
	for _, r := range results {
		assert.False(t, r.Pass, r.Name)
		assert.Equal(t, want[r.Name], r.Samples, r.Name)
	}
}

func TestByteFrequencyPerfectlyUniform(t *testing.T) {
	var one [256]byte
	for i := range one {
		one[i] = byte(i)
	}
	data := bytes.Repeat(one[:], 16)

	r := ByteFrequency(data, DefaultAlpha)
	assert.Zero(t, r.Statistic)
	assert.InDelta(t, 1.0, r.PValue, 1e-9)
	assert.True(t, r.Pass)

	m := Monobit(data, DefaultAlpha)
	assert.Zero(t, m.Statistic)
	assert.True(t, m.Pass)
}

func TestMonobitDetectsBias(t *testing.T) {
	data := bytes.Repeat([]byte{0xff}, 1024)
	r := Monobit(data, DefaultAlpha)
	assert.False(t, r.Pass)
	assert.Less(t, r.PValue, 1e-12)
}

func TestRunOmitsUniformMeanForShortInput(t *testing.T) {
	for _, n := range []int{8, 15} {
		data := make([]byte, n)
		xoshiro.FromUint64(1).FillBytes(data)

		results := Run(data, 1e-6)
		require.Len(t, results, 2, "%d bytes", n)
		for _, r := range results {
			assert.NotEqual(t, "uniform-mean", r.Name)
		}
	}

	data := make([]byte, 16)
	xoshiro.FromUint64(1).FillBytes(data)
	assert.Len(t, Run(data, DefaultAlpha), 3)
}

func TestEmptyInput(t *testing.T) {
	for _, r := range Run(nil, DefaultAlpha) {
		assert.False(t, r.Pass, r.Name)
		assert.Zero(t, r.Samples, r.Name)
	}
}
