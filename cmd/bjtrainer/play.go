package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/basicstrategy/cmd/bjtrainer/shared"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/internal/history"
	"github.com/lox/basicstrategy/internal/randutil"
	"github.com/lox/basicstrategy/internal/session"
	"github.com/lox/basicstrategy/internal/tui"
)

type PlayCmd struct {
	Hints     bool `help:"Show the optimal play while deciding"`
	NoHistory bool `name:"no-history" help:"Do not save played rounds"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	cfg, err := globals.LoadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := shared.OpenFileLogger(cfg.UI.LogFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	seed := randutil.Seed(globals.Seed)
	logger.Info("Starting trainer", "seed", seed, "rules", cfg.Rules(), "config", globals.Config)

	bus := game.NewEventBus()
	g := game.New(randutil.New(seed),
		game.WithRules(cfg.Rules()),
		game.WithLogger(logger),
		game.WithEventBus(bus),
	)

	tracker := session.NewTracker(session.WithPolicy(cfg.Policy()))
	bus.Subscribe(tracker)

	var recorder *history.Recorder
	if !c.NoHistory && cfg.Session.HistoryFile != "" {
		recorder = history.NewRecorder(cfg.Session.HistoryFile, logger)
		bus.Subscribe(recorder)
	}

	model := tui.New(g, tracker, tui.Options{
		DealerDelay: cfg.DealerDelay(),
		ShowHints:   c.Hints || cfg.UI.ShowHints,
		Logger:      logger,
	})
	bus.Subscribe(model)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running trainer: %w", err)
	}

	if recorder != nil {
		if err := recorder.Flush(); err != nil {
			return err
		}
	}

	stats := tracker.Stats()
	out := globals.Logger()
	out.Info().
		Int("hands", stats.HandsPlayed).
		Int("decisions", stats.DecisionsTotal).
		Float64("accuracy", stats.Accuracy).
		Str("skill", stats.SkillLevel.String()).
		Msg("Session complete")
	return nil
}
