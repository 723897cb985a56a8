package main

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cynecx/rand/internal/engine"
)

// Default distance between streams: 2^48 outputs for pcg32, one jump for
// xoshiro256.
var defaultStride = map[engine.Algorithm]uint64{
	engine.PCG32:      1 << 48,
	engine.Xoshiro256: 1,
}

type StreamsCmd struct {
	SourceFlags

	Streams int    `short:"k" default:"4" help:"Number of streams"`
	Count   int    `short:"n" help:"Values per stream, defaults to the config file"`
	Stride  uint64 `help:"Distance between streams: pcg32 outputs or xoshiro256 jumps (0 picks a default)"`
	Workers int    `default:"0" help:"Maximum concurrent streams (0 for one per stream)"`
}

func (c *StreamsCmd) Run(globals *Globals) error {
	logger, cfg, err := globals.setup()
	if err != nil {
		return err
	}
	count := c.Count
	if count == 0 {
		count = cfg.Defaults.Count
	}

	g, alg, err := c.resolve(cfg, logger)
	if err != nil {
		return err
	}
	stride := c.Stride
	if stride == 0 {
		stride = defaultStride[alg]
	}

	out, err := generateStreams(context.Background(), g, c.Streams, stride, count, c.Workers)
	if err != nil {
		return err
	}

	for i, words := range out {
		vals := make([]string, len(words))
		for j, v := range words {
			vals[j] = formatWord(v, 64, "hex")
		}
		fmt.Fprintf(globals.out, "%s %s\n", nameStyle.Render(fmt.Sprintf("stream %d:", i)), strings.Join(vals, " "))
	}

	logger.Info().
		Str("algorithm", string(alg)).
		Int("streams", c.Streams).
		Uint64("stride", stride).
		Msg("Generated streams")
	return nil
}

// generateStreams derives k streams from g and draws count words from each
// concurrently. Each goroutine owns its stream, so output is deterministic.
func generateStreams(ctx context.Context, g engine.Generator, k int, stride uint64, count, workers int) ([][]uint64, error) {
	if count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", count)
	}
	gens, err := engine.Streams(g, k, stride)
	if err != nil {
		return nil, err
	}

	out := make([][]uint64, k)
	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i, sg := range gens {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = draw(sg, count, 64)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
