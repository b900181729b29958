package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lox/basicstrategy/cmd/bjtrainer/shared"
	"github.com/lox/basicstrategy/internal/config"
	"github.com/rs/zerolog"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config string `short:"c" env:"BJTRAINER_CONFIG" default:"bjtrainer.hcl" help:"Path to HCL config file"`
	Seed   *int64 `env:"BJTRAINER_SEED" help:"Seed for the shoe (random when unset)"`
	Debug  bool   `env:"BJTRAINER_DEBUG" help:"Enable debug logging"`
}

// Logger returns the console logger for command output.
func (g *Globals) Logger() zerolog.Logger {
	return shared.SetupLogger(g.Debug)
}

// LoadConfig reads the config file, falling back to defaults when it does
// not exist.
func (g *Globals) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" default:"1" help:"Play hands in the terminal trainer"`
	Drill   DrillCmd         `cmd:"" help:"Simulate many hands and report decision accuracy"`
	Advise  AdviseCmd        `cmd:"" help:"Show the basic-strategy play for a hand"`
	Chart   ChartCmd         `cmd:"" help:"Print the strategy charts"`
	Demo    DemoCmd          `cmd:"" help:"Watch the engine play a few hands"`
	History HistoryCmd       `cmd:"" help:"Work with saved session history"`
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("bjtrainer"),
		kong.Description("Blackjack basic strategy trainer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
