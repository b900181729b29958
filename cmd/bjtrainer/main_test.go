package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/basicstrategy/blackjack"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/internal/history"
	"github.com/lox/basicstrategy/internal/randutil"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

func TestAdvise(t *testing.T) {
	t.Run("advises surrender on 16 against a ten", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := AdviseCmd{Player: "Ts 6h", Dealer: "Kd"}
		require.NoError(t, cmd.advise(&buf, game.DefaultRules()))

		out := buf.String()
		assert.Contains(t, out, "16-10-hard")
		assert.Contains(t, out, "Chart:     Rh")
		assert.Contains(t, out, "Play:      surrender")
	})

	t.Run("falls back to hit without surrender", func(t *testing.T) {
		rules := game.DefaultRules()
		rules.SurrenderAllowed = false

		var buf bytes.Buffer
		cmd := AdviseCmd{Player: "Ts 6h", Dealer: "Kd"}
		require.NoError(t, cmd.advise(&buf, rules))
		assert.Contains(t, buf.String(), "Play:      hit")
	})

	t.Run("grades an action", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := AdviseCmd{Player: "Ts 6h", Dealer: "Kd", Action: "stand"}
		require.NoError(t, cmd.advise(&buf, game.DefaultRules()))
		assert.Contains(t, buf.String(), "You chose to stand.")
	})

	t.Run("highlights the chart", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := AdviseCmd{Player: "8s 8h", Dealer: "6d", Chart: true}
		require.NoError(t, cmd.advise(&buf, game.DefaultRules()))
		assert.Contains(t, buf.String(), "Play:      split")
		assert.Contains(t, buf.String(), "PAIR TOTALS")
	})

	t.Run("rejects bad input", func(t *testing.T) {
		var buf bytes.Buffer
		for _, cmd := range []AdviseCmd{
			{Player: "Ts", Dealer: "Kd"},
			{Player: "Ts 6h", Dealer: "Kd 5c"},
			{Player: "Ts 6x", Dealer: "Kd"},
			{Player: "As Kh", Dealer: "5d"},
			{Player: "Ts 6h", Dealer: "5d", Action: "insure"},
		} {
			assert.Error(t, cmd.advise(&buf, game.DefaultRules()), "%s vs %s", cmd.Player, cmd.Dealer)
		}
	})
}

func TestChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&ChartCmd{}).print(&buf))
	out := buf.String()
	assert.Contains(t, out, "HARD TOTALS")
	assert.Contains(t, out, "SOFT TOTALS")
	assert.Contains(t, out, "PAIR TOTALS")

	buf.Reset()
	require.NoError(t, (&ChartCmd{Table: "soft"}).print(&buf))
	assert.Contains(t, buf.String(), "SOFT TOTALS")
	assert.NotContains(t, buf.String(), "HARD TOTALS")

	assert.Error(t, (&ChartCmd{Table: "insurance"}).print(&buf))
}

func TestDemo(t *testing.T) {
	g := game.New(randutil.New(1), game.WithShoe(game.StackedShoe(blackjack.MustParseCards("Ts Th 6d 6c 5h")...)))

	var buf bytes.Buffer
	require.NoError(t, runDemo(context.Background(), &buf, g, game.NewPacer(quartz.NewMock(t), 0), 1))

	out := buf.String()
	assert.Contains(t, out, "Dealer shows")
	assert.Contains(t, out, "Hand 1: surrender -> 16")
	assert.Contains(t, out, "Dealer reveals")
	assert.Contains(t, out, "Dealer draws")
	assert.Contains(t, out, "(21)")
	assert.Contains(t, out, "Hand 1: surrender\n")
}

func TestDemoStopsOnCancel(t *testing.T) {
	g := game.New(randutil.New(1), game.WithShoe(game.StackedShoe(blackjack.MustParseCards("Ts Th 6d 6c 5h")...)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := runDemo(ctx, &buf, g, game.NewPacer(quartz.NewMock(t), time.Second), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHistoryRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.toml")
	round := func(id string) history.Round {
		return history.Round{
			ID:     id,
			Rules:  "6D S17 DAS LS SP4",
			Dealer: history.DealerRecord{Cards: []string{"Th", "7c"}, Total: 17},
			Hands: []history.HandRecord{{
				ID: 1, Cards: []string{"Ts", "Kh"}, Total: 20, Outcome: "win",
				Actions: []history.ActionRecord{{Action: "stand", Optimal: "stand", Correct: true, Before: 20, After: 20}},
			}},
		}
	}
	require.NoError(t, history.Save(path, &history.File{Rounds: []history.Round{round("aaaaaaaa-1"), round("bbbbbbbb-2")}}))

	var buf bytes.Buffer
	require.NoError(t, (&HistoryRenderCmd{}).render(&buf, path))
	assert.Contains(t, buf.String(), "Round aaaaaaaa")
	assert.Contains(t, buf.String(), "2 rounds, 2 hands, 2/2 decisions correct (100.0%)")

	buf.Reset()
	require.NoError(t, (&HistoryRenderCmd{Limit: 1}).render(&buf, path))
	assert.NotContains(t, buf.String(), "Round aaaaaaaa")
	assert.Contains(t, buf.String(), "Round bbbbbbbb")

	assert.Error(t, (&HistoryRenderCmd{}).render(&buf, filepath.Join(t.TempDir(), "missing.toml")))
}
