package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fxamacker/cbor/v2"

	"github.com/cynecx/rand"
	"github.com/cynecx/rand/internal/engine"
	"github.com/cynecx/rand/internal/snapshot"
)

type GenCmd struct {
	SourceFlags

	Count   int    `short:"n" help:"Number of values (bytes for --format=bytes), defaults to the config file"`
	Width   int    `short:"w" default:"64" help:"Word width in bits (32|64)"`
	Format  string `short:"f" default:"dec" enum:"dec,hex,bytes,cbor" help:"Output format (dec|hex|bytes|cbor)"`
	Jump    uint64 `help:"Apply this many 2^128-step jumps before generating (xoshiro256, at most 1048576)"`
	Advance uint64 `help:"Skip this many outputs before generating (pcg32)"`
	Save    string `help:"Write a snapshot of the final state to this file" type:"path"`
}

func (c *GenCmd) Run(globals *Globals) error {
	logger, cfg, err := globals.setup()
	if err != nil {
		return err
	}
	if c.Width != 32 && c.Width != 64 {
		return fmt.Errorf("width must be 32 or 64, got %d", c.Width)
	}
	count := c.Count
	if count == 0 {
		count = cfg.Defaults.Count
	}
	if count < 0 {
		return fmt.Errorf("count must not be negative, got %d", count)
	}

	g, alg, err := c.resolve(cfg, logger)
	if err != nil {
		return err
	}
	if err := c.skip(g, alg); err != nil {
		return err
	}

	if err := writeValues(globals.out, g, count, c.Width, c.Format); err != nil {
		return err
	}

	logger.Info().
		Str("algorithm", string(alg)).
		Int("count", count).
		Str("format", c.Format).
		Msg("Generated values")

	if c.Save != "" {
		if err := snapshot.Save(c.Save, g); err != nil {
			return err
		}
		logger.Info().Str("path", c.Save).Msg("Saved generator state")
	}
	return nil
}

// skip applies --jump or --advance, each valid for one algorithm only.
func (c *GenCmd) skip(g engine.Generator, alg engine.Algorithm) error {
	if c.Jump > 0 {
		if alg != engine.Xoshiro256 {
			return fmt.Errorf("--jump requires %s, have %s", engine.Xoshiro256, alg)
		}
		return engine.Skip(g, c.Jump)
	}
	if c.Advance > 0 {
		if alg != engine.PCG32 {
			return fmt.Errorf("--advance requires %s, have %s", engine.PCG32, alg)
		}
		return engine.Skip(g, c.Advance)
	}
	return nil
}

// draw returns count words of the given width.
func draw(src rand.Source, count, width int) []uint64 {
	words := make([]uint64, count)
	for i := range words {
		if width == 32 {
			words[i] = uint64(src.Uint32())
		} else {
			words[i] = src.Uint64()
		}
	}
	return words
}

func writeValues(w io.Writer, src rand.Source, count, width int, format string) error {
	switch format {
	case "bytes":
		buf := make([]byte, count)
		src.FillBytes(buf)
		_, err := w.Write(buf)
		return err
	case "cbor":
		data, err := cbor.Marshal(draw(src, count, width))
		if err != nil {
			return fmt.Errorf("failed to encode CBOR: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "dec", "hex":
		for _, v := range draw(src, count, width) {
			if _, err := io.WriteString(w, formatWord(v, width, format)+"\n"); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func formatWord(v uint64, width int, format string) string {
	if format == "hex" {
		return fmt.Sprintf("%0*x", width/4, v)
	}
	return strconv.FormatUint(v, 10)
}
