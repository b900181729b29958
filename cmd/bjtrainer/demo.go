package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/basicstrategy/cmd/bjtrainer/shared"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/internal/randutil"
)

type DemoCmd struct {
	Hands int           `short:"n" default:"3" help:"Number of rounds to play"`
	Delay time.Duration `default:"600ms" help:"Pause between dealer cards"`
}

func (c *DemoCmd) Run(globals *Globals) error {
	cfg, err := globals.LoadConfig()
	if err != nil {
		return err
	}

	logger := globals.Logger()
	ctx := shared.SetupSignalHandler(logger)
	seed := randutil.Seed(globals.Seed)
	logger.Debug().Int64("seed", seed).Msg("Starting demo")

	g := game.New(randutil.New(seed), game.WithRules(cfg.Rules()))
	return runDemo(ctx, os.Stdout, g, game.NewPacer(quartz.NewReal(), c.Delay), c.Hands)
}

// runDemo plays rounds with perfect basic strategy and narrates them.
func runDemo(ctx context.Context, w io.Writer, g *game.Game, pacer *game.Pacer, rounds int) error {
	fmt.Fprintf(w, "Rules: %s\n", g.Rules())

	for i := 1; i <= rounds; i++ {
		if err := g.StartNewHand(); err != nil {
			return err
		}

		fmt.Fprintf(w, "\nRound %d\n", i)
		fmt.Fprintf(w, "  Dealer shows %s\n", g.Dealer().Upcard())
		for _, h := range g.PlayerHands() {
			fmt.Fprintf(w, "  Player has %v (%s)\n", h.Cards, total(h.HandValue, h.IsSoft))
		}

		for g.Phase() == game.PhasePlayerTurn {
			action, _ := g.Advice()
			entry, err := g.Act(action)
			if err != nil {
				return err
			}
			line := fmt.Sprintf("  Hand %d: %s", entry.HandID, action)
			if entry.CardDealt != nil {
				line += fmt.Sprintf(", draws %s", *entry.CardDealt)
			}
			fmt.Fprintf(w, "%s -> %d\n", line, entry.HandValueAfter)
		}

		err := pacer.Play(ctx, g.DealerSteps(), func(step game.DealerStep) {
			if step.Drawn == nil {
				fmt.Fprintf(w, "  Dealer reveals %v (%s)\n", step.Cards, total(step.Total, step.Soft))
				return
			}
			fmt.Fprintf(w, "  Dealer draws %s (%s)\n", *step.Drawn, total(step.Total, step.Soft))
		})
		if err != nil {
			return err
		}

		result, ok := g.Result()
		if !ok {
			return fmt.Errorf("round %d did not finish", i)
		}
		for _, h := range result.Hands {
			fmt.Fprintf(w, "  Hand %d: %s\n", h.HandID, h.Outcome)
		}
	}
	return nil
}

func total(v int, soft bool) string {
	if soft {
		return fmt.Sprintf("soft %d", v)
	}
	return fmt.Sprint(v)
}

