package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/lox/basicstrategy/cmd/bjtrainer/shared"
	"github.com/lox/basicstrategy/internal/drill"
	"github.com/lox/basicstrategy/internal/randutil"
	"github.com/lox/basicstrategy/strategy"
	"github.com/pterm/pterm"
)

type DrillCmd struct {
	Hands     int     `short:"n" default:"10000" help:"Number of hands to play"`
	Workers   int     `short:"w" help:"Parallel workers (defaults to the number of CPUs)"`
	ErrorRate float64 `name:"error-rate" default:"0" help:"Probability the simulated player picks a wrong action"`
	Mistakes  int     `default:"5" help:"Number of top mistakes to list"`
}

func (c *DrillCmd) Run(globals *Globals) error {
	cfg, err := globals.LoadConfig()
	if err != nil {
		return err
	}
	if c.ErrorRate < 0 || c.ErrorRate > 1 {
		return fmt.Errorf("error rate must be between 0 and 1, got %v", c.ErrorRate)
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger := globals.Logger()
	ctx := shared.SetupSignalHandler(logger)

	seed := randutil.Seed(globals.Seed)
	logger.Info().Int64("seed", seed).Int("hands", c.Hands).Int("workers", workers).Str("rules", cfg.Rules().String()).Msg("Starting drill")

	runner := drill.New(drill.Config{
		Hands:     c.Hands,
		Workers:   workers,
		ErrorRate: c.ErrorRate,
		Seed:      seed,
		Rules:     cfg.Rules(),
		Policy:    cfg.Policy(),
	})

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Playing %d hands...", c.Hands))
	report, err := runner.Run(ctx)
	if err != nil {
		spinner.Fail(err.Error())
		return err
	}
	spinner.Success(fmt.Sprintf("Played %d hands in %s", report.Hands, report.Duration.Round(time.Millisecond)))

	return printReport(os.Stdout, report, c.Mistakes)
}

func printReport(w io.Writer, report drill.Report, topN int) error {
	s := report.Stats

	summary, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Hands", "Decisions", "Accuracy", "Skill", "Win rate", "Busts"},
		{
			fmt.Sprint(s.HandsPlayed),
			fmt.Sprintf("%d/%d", s.DecisionsCorrect, s.DecisionsTotal),
			fmt.Sprintf("%.2f%%", s.Accuracy),
			s.SkillLevel.String(),
			fmt.Sprintf("%.2f%%", s.WinRate()),
			fmt.Sprint(s.Busts),
		},
	}).Srender()
	if err != nil {
		return err
	}

	outcomes, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Wins", "Blackjacks", "Losses", "Pushes", "Surrenders"},
		{fmt.Sprint(s.Wins), fmt.Sprint(s.Blackjacks), fmt.Sprint(s.Losses), fmt.Sprint(s.Pushes), fmt.Sprint(s.Surrenders)},
	}).Srender()
	if err != nil {
		return err
	}

	tables := pterm.TableData{{"Chart", "Decisions", "Accuracy"}}
	for _, t := range []strategy.TableType{strategy.Hard, strategy.Soft, strategy.Pair} {
		acc := report.Tables[t]
		tables = append(tables, []string{t.String(), fmt.Sprint(acc.Total), fmt.Sprintf("%.2f%%", acc.Accuracy())})
	}
	byTable, err := pterm.DefaultTable.WithHasHeader().WithData(tables).Srender()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, summary)
	fmt.Fprintln(w)
	fmt.Fprintln(w, outcomes)
	fmt.Fprintln(w)
	fmt.Fprintln(w, byTable)

	if len(report.Mistakes) == 0 || topN <= 0 {
		return nil
	}

	mistakes := pterm.TableData{{"Scenario", "Played", "Correct", "Count"}}
	for _, p := range report.Mistakes[:min(topN, len(report.Mistakes))] {
		mistakes = append(mistakes, []string{p.Key, p.PlayerAction.String(), p.CorrectAction.String(), fmt.Sprint(p.Frequency)})
	}
	top, err := pterm.DefaultTable.WithHasHeader().WithData(mistakes).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, top)
	return nil
}
