package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cynecx/rand"
	"github.com/cynecx/rand/internal/engine"
)

func TestGenerateStreamsMatchesSequential(t *testing.T) {
	for _, alg := range engine.Algorithms {
		t.Run(string(alg), func(t *testing.T) {
			g, err := engine.FromUint64(alg, 3)
			require.NoError(t, err)

			got, err := generateStreams(context.Background(), g, 5, defaultStride[alg], 4, 2)
			require.NoError(t, err)
			require.Len(t, got, 5)

			gens, err := engine.Streams(g, 5, defaultStride[alg])
			require.NoError(t, err)
			for i, sg := range gens {
				assert.Equal(t, draw(sg, 4, 64), got[i], "stream %d", i)
			}
			assert.NotEqual(t, got[0], got[1])
		})
	}
}

func TestGenerateStreamsRejectsBadCount(t *testing.T) {
	g, err := engine.FromUint64(engine.PCG32, 1)
	require.NoError(t, err)
	_, err = generateStreams(context.Background(), g, 0, 1, 4, 0)
	assert.Error(t, err)

	_, err = generateStreams(context.Background(), g, 2, 1, -1, 0)
	assert.ErrorContains(t, err, "count must not be negative")
}

func TestStreamsCommandRejectsNegativeCount(t *testing.T) {
	isolate(t)
	_, err := run(t, "streams", "--seed-u64", "9", "-k", "2", "-n", "-1")
	assert.ErrorContains(t, err, "count must not be negative")
}

func TestStreamsCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "streams", "--seed-u64", "9", "-k", "3", "-n", "2")
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Contains(t, row, "stream")
		assert.Len(t, strings.Fields(row)[2:], 2, "row %d", i)
	}
}

func TestCheckCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "check", "--seed-u64", "1", "--samples", "65536", "--alpha", "1e-6")
	require.NoError(t, err)
	assert.Contains(t, out, "byte-frequency")
	assert.Contains(t, out, "monobit")
	assert.Contains(t, out, "uniform-mean")
	assert.NotContains(t, out, "FAIL")

	_, err = run(t, "check", "--seed-u64", "1", "--samples", "0")
	assert.Error(t, err)
}

func TestCheckCommandShortSample(t *testing.T) {
	isolate(t)
	out, err := run(t, "check", "--seed-u64", "1", "--samples", "8", "--alpha", "1e-12")
	require.NoError(t, err)
	assert.NotContains(t, out, "uniform-mean")
	assert.NotContains(t, out, "FAIL")
}

func TestVerifyVectors(t *testing.T) {
	var buf bytes.Buffer
	assert.Zero(t, verifyVectors(&buf, vectors))
	assert.Equal(t, len(vectors), len(lines(buf.String())))

	broken := vector{
		name: "broken",
		run:  func(n int) []uint64 { return make([]uint64, n) },
		want: []uint64{1},
	}
	assert.Equal(t, 1, verifyVectors(io.Discard, []vector{broken}))
}

func TestVerifyCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS")
	assert.NotContains(t, out, "FAIL")
}

// tickingSource advances a mock clock by one nanosecond per draw.
type tickingSource struct {
	rand.Source
	clock *quartz.Mock
}

func (s *tickingSource) Uint32() uint32 {
	s.clock.Advance(time.Nanosecond)
	return s.Source.Uint32()
}

func (s *tickingSource) Uint64() uint64 {
	s.clock.Advance(time.Nanosecond)
	return s.Source.Uint64()
}

func TestRunBench(t *testing.T) {
	mockClock := quartz.NewMock(t)
	g, err := engine.FromUint64(engine.Xoshiro256, 0)
	require.NoError(t, err)
	src := &tickingSource{Source: g, clock: mockClock}

	r := runBench(mockClock, src, 64, 1000)
	assert.Equal(t, 1000*time.Nanosecond, r.Elapsed)
	assert.InDelta(t, 1.0, r.NsPerOp(), 1e-9)
	assert.InDelta(t, 8000.0, r.MBPerSec(), 1e-6)

	r = runBench(mockClock, src, 32, 500)
	assert.Equal(t, 500*time.Nanosecond, r.Elapsed)
	assert.InDelta(t, 4000.0, r.MBPerSec(), 1e-6)
}

func TestBenchResultZeroElapsed(t *testing.T) {
	r := benchResult{Width: 64, Draws: 10}
	assert.Zero(t, r.MBPerSec())
	assert.Zero(t, r.NsPerOp())
	assert.Zero(t, benchResult{}.NsPerOp())
}

func TestBenchCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "bench", "-i", "1000", "-a", "pcg32")
	require.NoError(t, err)
	assert.Contains(t, out, "pcg32")
	assert.NotContains(t, out, "xoshiro256")

	_, err = run(t, "bench", "-i", "0")
	assert.Error(t, err)
}
