// Package quality runs quick statistical smoke tests over generator output.
// A pass does not certify a generator; a failure at a small alpha reliably
// flags a broken one.
package quality

import (
	"encoding/binary"
	"math"
	"math/bits"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultAlpha is the significance level used when none is given.
const DefaultAlpha = 1e-4

// Result is the outcome of one test.
type Result struct {
	Name      string
	Samples   int
	Statistic float64
	PValue    float64
	Pass      bool
}

func newResult(name string, samples int, statistic, p, alpha float64) Result {
	return Result{
		Name:      name,
		Samples:   samples,
		Statistic: statistic,
		PValue:    p,
		Pass:      p >= alpha,
	}
}

// ByteFrequency is Pearson's chi-squared test of the 256 byte values against
// a uniform distribution.
func ByteFrequency(data []byte, alpha float64) Result {
	if len(data) == 0 {
		return Result{Name: "byte-frequency"}
	}

	observed := make([]float64, 256)
	for _, b := range data {
		observed[b]++
	}
	expected := make([]float64, 256)
	for i := range expected {
		expected[i] = float64(len(data)) / 256
	}

	chiSq := stat.ChiSquare(observed, expected)
	p := distuv.ChiSquared{K: 255}.Survival(chiSq)
	return newResult("byte-frequency", len(data), chiSq, p, alpha)
}

// Monobit checks that ones and zeros are balanced across all bits.
func Monobit(data []byte, alpha float64) Result {
	if len(data) == 0 {
		return Result{Name: "monobit"}
	}

	ones := 0
	for _, b := range data {
		ones += bits.OnesCount8(b)
	}
	n := float64(8 * len(data))
	z := math.Abs(2*float64(ones)-n) / math.Sqrt(n)
	p := 2 * distuv.UnitNormal.Survival(z)
	return newResult("monobit", len(data), z, p, alpha)
}

// UniformMean maps each word to [0, 1) and tests the sample mean against 1/2.
func UniformMean(words []uint64, alpha float64) Result {
	if len(words) < 2 {
		return Result{Name: "uniform-mean"}
	}

	xs := make([]float64, len(words))
	for i, w := range words {
		xs[i] = float64(w>>11) / (1 << 53)
	}
	mean := stat.Mean(xs, nil)

	// Standard deviation of U(0,1) is 1/sqrt(12).
	z := math.Abs(mean-0.5) / (1 / math.Sqrt(12*float64(len(xs))))
	p := 2 * distuv.UnitNormal.Survival(z)
	return newResult("uniform-mean", len(words), z, p, alpha)
}

// Run applies every test to data, read as bytes and as little-endian words.
// uniform-mean needs two words and is left out for shorter input.
func Run(data []byte, alpha float64) []Result {
	words := make([]uint64, len(data)/8)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(data[8*i:])
	}

	results := []Result{
		ByteFrequency(data, alpha),
		Monobit(data, alpha),
	}
	if len(words) >= 2 || len(data) == 0 {
		results = append(results, UniformMean(words, alpha))
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Pass {
			return false
		}
	}
	return true
}
