package drill

import (
	"context"
	"testing"

	"github.com/lox/basicstrategy/blackjack"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/internal/randutil"
	"github.com/lox/basicstrategy/internal/session"
	"github.com/lox/basicstrategy/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerfectPlayer(t *testing.T) {
	report, err := New(Config{Hands: 300, Workers: 4, Seed: 42}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 300, report.Hands)
	assert.Equal(t, 300, report.Stats.HandsPlayed)
	assert.Equal(t, report.Stats.DecisionsTotal, report.Stats.DecisionsCorrect)
	assert.Equal(t, 100.0, report.Stats.Accuracy)
	assert.Equal(t, session.Advanced, report.Stats.SkillLevel)
	assert.Empty(t, report.Mistakes)

	var tableTotal int
	for _, acc := range report.Tables {
		tableTotal += acc.Total
	}
	assert.Equal(t, report.Stats.DecisionsTotal, tableTotal)
}

func TestAlwaysWrongPlayer(t *testing.T) {
	report, err := New(Config{Hands: 100, Workers: 3, Seed: 7, ErrorRate: 1}).Run(context.Background())
	require.NoError(t, err)

	assert.Greater(t, report.Stats.DecisionsTotal, 0)
	assert.Equal(t, 0, report.Stats.DecisionsCorrect)
	assert.Equal(t, session.Beginner, report.Stats.SkillLevel)
	require.NotEmpty(t, report.Mistakes)

	var freq int
	for i, m := range report.Mistakes {
		freq += m.Frequency
		if i > 0 {
			assert.GreaterOrEqual(t, report.Mistakes[i-1].Frequency, m.Frequency, "mistakes sorted by frequency")
		}
	}
	assert.Equal(t, report.Stats.DecisionsTotal, freq)
}

func TestDeterministic(t *testing.T) {
	cfg := Config{Hands: 120, Workers: 3, Seed: 99, ErrorRate: 0.3}
	a, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	b, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Stats, b.Stats)
	assert.Equal(t, len(a.Mistakes), len(b.Mistakes))
}

func TestOutcomeTotals(t *testing.T) {
	report, err := New(Config{Hands: 200, Workers: 2, Seed: 5}).Run(context.Background())
	require.NoError(t, err)

	s := report.Stats
	resolved := s.Wins + s.Losses + s.Pushes + s.Surrenders + s.Blackjacks
	assert.GreaterOrEqual(t, resolved, 200, "every round resolves at least one hand")
	assert.LessOrEqual(t, s.Busts, s.Losses)
}

func TestRunValidation(t *testing.T) {
	_, err := New(Config{Hands: 0}).Run(context.Background())
	assert.Error(t, err)

	_, err = New(Config{Hands: 10, ErrorRate: 1.5}).Run(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New(Config{Hands: 10, Workers: 2}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulatedPlayer(t *testing.T) {
	hand := blackjack.MustParseCards("10s 6h")
	upcard := blackjack.MustParseCards("Kd")[0]
	available := []strategy.Action{strategy.Hit, strategy.Stand, strategy.Double, strategy.Surrender}

	perfect := NewSimulatedPlayer(randutil.New(1), 0)
	for i := 0; i < 50; i++ {
		assert.Equal(t, strategy.Surrender, perfect.Choose(hand, upcard, available))
	}

	sloppy := NewSimulatedPlayer(randutil.New(1), 1)
	for i := 0; i < 50; i++ {
		got := sloppy.Choose(hand, upcard, available)
		assert.NotEqual(t, strategy.Surrender, got)
		assert.Contains(t, available, got)
	}

	assert.Equal(t, strategy.Hit, sloppy.Choose(hand, upcard, []strategy.Action{strategy.Hit}), "no wrong choice available")
	assert.Panics(t, func() { NewSimulatedPlayer(nil, 0) })
}

func TestWorkersCappedByHands(t *testing.T) {
	report, err := New(Config{Hands: 2, Workers: 8, Seed: 1, Rules: game.DefaultRules()}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Workers)
	assert.Equal(t, 2, report.Hands)
}
