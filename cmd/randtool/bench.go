package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/coder/quartz"

	"github.com/cynecx/rand"
	"github.com/cynecx/rand/internal/engine"
)

type BenchCmd struct {
	Iterations int      `short:"i" default:"10000000" help:"Outputs to draw per generator"`
	Algorithm  []string `short:"a" help:"Algorithms to measure (default all)"`

	clock quartz.Clock
}

type benchResult struct {
	Algorithm engine.Algorithm
	Width     int
	Draws     int
	Elapsed   time.Duration
}

// NsPerOp is the mean time per draw.
func (r benchResult) NsPerOp() float64 {
	if r.Draws == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Draws)
}

// MBPerSec is the output rate. Zero when no time was measured.
func (r benchResult) MBPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	bytes := float64(r.Draws) * float64(r.Width/8)
	return bytes / r.Elapsed.Seconds() / 1e6
}

// sink keeps the compiler from discarding draws.
var sink uint64

func (c *BenchCmd) Run(globals *Globals) error {
	logger, _, err := globals.setup()
	if err != nil {
		return err
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	clock := c.clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	algs := engine.Algorithms
	if len(c.Algorithm) > 0 {
		algs = nil
		for _, name := range c.Algorithm {
			alg, err := engine.ParseAlgorithm(name)
			if err != nil {
				return err
			}
			algs = append(algs, alg)
		}
	}

	var results []benchResult
	for _, alg := range algs {
		g, err := engine.FromUint64(alg, 0)
		if err != nil {
			return err
		}
		for _, width := range []int{32, 64} {
			r := runBench(clock, g, width, c.Iterations)
			r.Algorithm = alg
			results = append(results, r)
			logger.Debug().
				Str("algorithm", string(alg)).
				Int("width", width).
				Dur("elapsed", r.Elapsed).
				Msg("Benchmark finished")
		}
	}

	return printBench(globals.out, results)
}

func runBench(clock quartz.Clock, src rand.Source, width, n int) benchResult {
	var acc uint64
	start := clock.Now()
	if width == 32 {
		for range n {
			acc += uint64(src.Uint32())
		}
	} else {
		for range n {
			acc += src.Uint64()
		}
	}
	elapsed := clock.Since(start)
	sink = acc
	return benchResult{Width: width, Draws: n, Elapsed: elapsed}
}

func printBench(w io.Writer, results []benchResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("ALGORITHM")+"\tWIDTH\tDRAWS\tNS/OP\tMB/S")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%s\n",
			nameStyle.Render(string(r.Algorithm)),
			r.Width,
			r.Draws,
			r.NsPerOp(),
			valueStyle.Render(fmt.Sprintf("%.1f", r.MBPerSec())))
	}
	return tw.Flush()
}
