package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/cynecx/rand/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"Preset file (defaults to $RANDTOOL_CONFIG, then randtool.hcl)" type:"path"`
	LogLevel string `default:"info" enum:"debug,info,warn,error" help:"Log level (debug|info|warn|error)"`
	LogJSON  bool   `help:"Output JSON logs instead of console format"`

	out    io.Writer
	stderr io.Writer
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Gen     GenCmd           `cmd:"" help:"Generate values from a seeded generator"`
	Streams StreamsCmd       `cmd:"" help:"Derive non-overlapping streams and generate from each in parallel"`
	Check   CheckCmd         `cmd:"" help:"Run statistical smoke tests over generator output"`
	Bench   BenchCmd         `cmd:"" help:"Measure generator throughput"`
	Verify  VerifyCmd        `cmd:"" help:"Check both generators against known-answer vectors"`
}

func main() {
	cli := CLI{Globals: Globals{out: os.Stdout, stderr: os.Stderr}}
	ctx := kong.Parse(&cli,
		kong.Name("randtool"),
		kong.Description("Deterministic PCG32 and xoshiro256** generators from the command line"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// setup builds the logger and loads the preset file.
func (g *Globals) setup() (zerolog.Logger, *config.Config, error) {
	logger := setupLogger(g.stderr, g.LogLevel, g.LogJSON)
	cfg, err := config.FromEnv(g.Config, logger)
	if err != nil {
		return logger, nil, err
	}
	return logger, cfg, nil
}
