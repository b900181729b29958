package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/basicstrategy/blackjack"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/internal/tui"
	"github.com/lox/basicstrategy/strategy"
	"github.com/pterm/pterm"
)

type AdviseCmd struct {
	Player string `arg:"" help:"Player cards, e.g. 'Ts 6h'"`
	Dealer string `arg:"" help:"Dealer upcard, e.g. 'Kd'"`
	Action string `short:"a" help:"Grade this action instead of only advising"`
	Chart  bool   `help:"Print the chart with the cell highlighted"`
}

func (c *AdviseCmd) Run(globals *Globals) error {
	cfg, err := globals.LoadConfig()
	if err != nil {
		return err
	}
	return c.advise(os.Stdout, cfg.Rules())
}

func (c *AdviseCmd) advise(w io.Writer, rules game.Rules) error {
	hand, err := blackjack.ParseCards(c.Player)
	if err != nil {
		return fmt.Errorf("player cards: %w", err)
	}
	if len(hand) < 2 {
		return fmt.Errorf("player needs at least two cards, got %d", len(hand))
	}
	upcards, err := blackjack.ParseCards(c.Dealer)
	if err != nil {
		return fmt.Errorf("dealer upcard: %w", err)
	}
	if len(upcards) != 1 {
		return fmt.Errorf("dealer needs exactly one upcard, got %d", len(upcards))
	}
	upcard := upcards[0]

	available := game.OpeningActions(hand, rules)
	if len(available) == 0 {
		return fmt.Errorf("no decision to make with %v", hand)
	}

	played := strategy.OptimalAction(hand, upcard, available)
	if c.Action != "" {
		if played, err = strategy.ParseAction(c.Action); err != nil {
			return err
		}
	}
	d := strategy.EvaluateDecision(played, hand, upcard, available)

	var lines []string
	lines = append(lines,
		pterm.Sprintf("Hand:      %v vs %v", hand, upcard),
		pterm.Sprintf("Scenario:  %s", d.ScenarioKey()),
		pterm.Sprintf("Available: %s", joinActions(available)),
		pterm.Sprintf("Chart:     %s", d.ChartAction),
		pterm.Sprintf("Play:      %s", pterm.LightGreen(d.OptimalAction.String())),
	)
	if c.Action != "" {
		lines = append(lines, "", d.Explanation)
	}

	title := pterm.LightYellow("|ADVICE|")
	if c.Action != "" && !d.IsCorrect {
		title = pterm.LightRed("|MISTAKE|")
	} else if c.Action != "" {
		title = pterm.LightGreen("|CORRECT|")
	}
	box := pterm.DefaultBox.WithHorizontalPadding(2).WithTitle(title).WithTitleTopCenter().Sprint(strings.Join(lines, "\n"))
	fmt.Fprintln(w, box)

	if c.Chart {
		cell, ok := strategy.CellCoordinates(hand, upcard)
		if !ok {
			return nil
		}
		fmt.Fprintln(w, tui.RenderChart(cell.Table, &cell))
	}
	return nil
}

func joinActions(actions []strategy.Action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}
