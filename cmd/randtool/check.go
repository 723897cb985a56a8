package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cynecx/rand/internal/quality"
)

var errCheckFailed = errors.New("statistical checks failed")

type CheckCmd struct {
	SourceFlags

	Samples int     `default:"1048576" help:"Bytes of output to test"`
	Alpha   float64 `default:"0.0001" help:"Significance level below which a test fails"`
}

func (c *CheckCmd) Run(globals *Globals) error {
	logger, cfg, err := globals.setup()
	if err != nil {
		return err
	}
	if c.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", c.Samples)
	}

	g, alg, err := c.resolve(cfg, logger)
	if err != nil {
		return err
	}

	data := make([]byte, c.Samples)
	g.FillBytes(data)
	results := quality.Run(data, c.Alpha)

	fmt.Fprintln(globals.out, headerStyle.Render(fmt.Sprintf("%s: %d bytes, alpha %g", alg, c.Samples, c.Alpha)))
	if err := printResults(globals.out, results); err != nil {
		return err
	}

	passed := quality.Passed(results)
	logger.Info().Str("algorithm", string(alg)).Bool("passed", passed).Msg("Checks complete")
	if !passed {
		return errCheckFailed
	}
	return nil
}

func printResults(w io.Writer, results []quality.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TEST\tSAMPLES\tSTATISTIC\tP-VALUE\tRESULT")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%s\t%s\n",
			nameStyle.Render(r.Name),
			r.Samples,
			r.Statistic,
			valueStyle.Render(fmt.Sprintf("%.6f", r.PValue)),
			verdict(r.Pass))
	}
	return tw.Flush()
}
