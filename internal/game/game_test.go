package game

import (
	"errors"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/basicstrategy/blackjack"
	"github.com/lox/basicstrategy/internal/randutil"
	"github.com/lox/basicstrategy/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stacked deals player, dealer, player, dealer and then the rest in order.
func stacked(t *testing.T, shoe string, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithShoe(StackedShoe(blackjack.MustParseCards(shoe)...))}, opts...)
	g := New(randutil.New(1), opts...)
	require.NoError(t, g.StartNewHand())
	return g
}

func mustAct(t *testing.T, g *Game, a strategy.Action) ActionLogEntry {
	t.Helper()
	entry, err := g.Act(a)
	require.NoError(t, err, "act %s", a)
	return entry
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		g := New(randutil.New(42))
		assert.Equal(t, PhaseInitial, g.Phase())
		assert.Equal(t, DefaultRules(), g.Rules())
		assert.Empty(t, g.PlayerHands())
		assert.Empty(t, g.AvailableActions())
	})

	t.Run("requires RNG", func(t *testing.T) {
		assert.Panics(t, func() { New(nil) })
	})

	t.Run("rejects invalid rules", func(t *testing.T) {
		assert.Panics(t, func() { New(randutil.New(1), WithRules(Rules{Decks: 0, MaxSplitHands: 4})) })
	})
}

func TestStandOn16AgainstDealer17(t *testing.T) {
	g := stacked(t, "10s 7h 6d 10c")

	require.Equal(t, PhasePlayerTurn, g.Phase())
	dealer := g.Dealer()
	assert.True(t, dealer.HideHoleCard)
	assert.Len(t, dealer.Cards, 1, "hole card must not be exposed")
	assert.Equal(t, 7, dealer.HandValue)
	assert.Equal(t, []strategy.Action{strategy.Hit, strategy.Stand, strategy.Double, strategy.Surrender}, g.AvailableActions())

	entry := mustAct(t, g, strategy.Stand)
	assert.False(t, entry.WasCorrect)
	assert.Equal(t, strategy.Hit, entry.OptimalAction)
	assert.Equal(t, 16, entry.HandValueBefore)
	assert.Equal(t, 16, entry.HandValueAfter)
	assert.Nil(t, entry.CardDealt)

	require.Equal(t, PhaseGameOver, g.Phase())
	dealer = g.Dealer()
	assert.False(t, dealer.HideHoleCard)
	assert.Equal(t, 17, dealer.HandValue)

	steps := g.DealerSteps()
	require.Len(t, steps, 1)
	assert.Equal(t, 17, steps[0].Total)
	assert.True(t, steps[0].Final)

	result, ok := g.Result()
	require.True(t, ok)
	assert.Equal(t, OutcomeCounts{Losses: 1}, result.Counts)
	assert.Equal(t, OutcomeLoss, g.PlayerHands()[0].Outcome)
}

func TestPlayerBlackjackEndsRound(t *testing.T) {
	g := stacked(t, "As Kh Kd 9c")

	require.Equal(t, PhaseGameOver, g.Phase())
	hands := g.PlayerHands()
	require.Len(t, hands, 1)
	assert.True(t, hands[0].IsBlackjack)
	assert.True(t, hands[0].Finished())
	assert.Equal(t, OutcomeBlackjack, hands[0].Outcome)

	result, ok := g.Result()
	require.True(t, ok)
	assert.Equal(t, OutcomeCounts{Blackjacks: 1}, result.Counts)
	assert.Equal(t, 19, result.DealerTotal)
}

func TestBothBlackjackPush(t *testing.T) {
	g := stacked(t, "As Ah Kd Kc")
	result, ok := g.Result()
	require.True(t, ok)
	assert.Equal(t, OutcomeCounts{Pushes: 1}, result.Counts)
}

func TestDealerSoft17(t *testing.T) {
	tests := []struct {
		name      string
		hitSoft17 bool
		steps     int
		total     int
		outcome   HandOutcome
	}{
		{"stands on soft 17", false, 1, 17, OutcomeWin},
		{"hits soft 17", true, 3, 18, OutcomePush},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			rules.HitSoft17 = tt.hitSoft17
			g := stacked(t, "10s As 8d 6c 5h 6h", WithRules(rules))

			mustAct(t, g, strategy.Stand)
			require.Equal(t, PhaseGameOver, g.Phase())
			assert.Len(t, g.DealerSteps(), tt.steps)

			result, _ := g.Result()
			assert.Equal(t, tt.total, result.DealerTotal)
			assert.Equal(t, tt.outcome, result.Hands[0].Outcome)
		})
	}
}

func TestDealerShouldHit(t *testing.T) {
	s17 := DefaultRules()
	h17 := DefaultRules()
	h17.HitSoft17 = true

	tests := []struct {
		cards string
		rules Rules
		want  bool
	}{
		{"10s 6h", s17, true},
		{"10s 7h", s17, false},
		{"As 6h", s17, false},
		{"As 6h", h17, true},
		{"10s 7h", h17, false},
		{"As 7h", h17, false},
		{"As 5h Ad", h17, true},
	}
	for _, tt := range tests {
		v := blackjack.Value(blackjack.MustParseCards(tt.cards))
		assert.Equal(t, tt.want, DealerShouldHit(v, tt.rules), "%s h17=%v", tt.cards, tt.rules.HitSoft17)
	}
}

func TestHitToBust(t *testing.T) {
	g := stacked(t, "10s 7h 6d 10c 9h")

	entry := mustAct(t, g, strategy.Hit)
	require.NotNil(t, entry.CardDealt)
	assert.Equal(t, "9♥", entry.CardDealt.String())
	assert.Equal(t, 25, entry.HandValueAfter)

	require.Equal(t, PhaseGameOver, g.Phase())
	hand := g.PlayerHands()[0]
	assert.True(t, hand.Busted)
	assert.Equal(t, OutcomeLoss, hand.Outcome)

	result, _ := g.Result()
	assert.Equal(t, OutcomeCounts{Losses: 1, Busts: 1}, result.Counts)
}

func TestHitKeepsTurn(t *testing.T) {
	g := stacked(t, "2s Kh 3d 7c 2h")

	mustAct(t, g, strategy.Hit)
	require.Equal(t, PhasePlayerTurn, g.Phase())
	hand, ok := g.ActiveHand()
	require.True(t, ok)
	assert.Equal(t, 7, hand.HandValue)
	assert.Equal(t, []strategy.Action{strategy.Hit, strategy.Stand}, g.AvailableActions())
}

func TestDouble(t *testing.T) {
	g := stacked(t, "5s 7h 6d 10c 10h")

	entry := mustAct(t, g, strategy.Double)
	assert.True(t, entry.WasCorrect)
	assert.Equal(t, 21, entry.HandValueAfter)

	hand := g.PlayerHands()[0]
	assert.True(t, hand.Doubled)
	assert.True(t, hand.Stood)
	assert.Len(t, hand.Cards, 3)

	result, _ := g.Result()
	assert.Equal(t, OutcomeWin, result.Hands[0].Outcome)
	assert.True(t, result.Hands[0].Doubled)
}

func TestSurrender(t *testing.T) {
	g := stacked(t, "10s Kh 6d 7c")

	entry := mustAct(t, g, strategy.Surrender)
	assert.True(t, entry.WasCorrect)

	require.Equal(t, PhaseGameOver, g.Phase())
	assert.Equal(t, OutcomeSurrender, g.PlayerHands()[0].Outcome)
	result, _ := g.Result()
	assert.Equal(t, OutcomeCounts{Surrenders: 1}, result.Counts)
}

func TestSurrenderDisabledByRules(t *testing.T) {
	rules := DefaultRules()
	rules.SurrenderAllowed = false
	g := stacked(t, "10s Kh 6d 7c", WithRules(rules))

	assert.NotContains(t, g.AvailableActions(), strategy.Surrender)
	advice, ok := g.Advice()
	require.True(t, ok)
	assert.Equal(t, strategy.Hit, advice)
}

func TestRejectedActionsDoNotMutate(t *testing.T) {
	tests := []struct {
		name   string
		shoe   string
		setup  []strategy.Action
		action strategy.Action
		want   error
	}{
		{"surrender after hit", "2s Kh 3d 7c 2h", []strategy.Action{strategy.Hit}, strategy.Surrender, ErrIllegalAction},
		{"double on three cards", "2s Kh 3d 7c 2h", []strategy.Action{strategy.Hit}, strategy.Double, ErrIllegalAction},
		{"split a non-pair", "10s 7h 6d 10c", nil, strategy.Split, ErrMalformedHand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := stacked(t, tt.shoe)
			for _, a := range tt.setup {
				mustAct(t, g, a)
			}

			before := g.Snapshot()
			remaining := g.CardsRemaining()

			_, err := g.Act(tt.action)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, before, g.Snapshot())
			assert.Equal(t, remaining, g.CardsRemaining())
		})
	}
}

func TestWrongPhase(t *testing.T) {
	g := New(randutil.New(1))
	_, err := g.Act(strategy.Hit)
	assert.ErrorIs(t, err, ErrWrongPhase)

	require.NoError(t, g.StartNewHand())
	if g.Phase() == PhasePlayerTurn {
		assert.ErrorIs(t, g.StartNewHand(), ErrWrongPhase)
	}

	g = stacked(t, "As Kh Kd 9c")
	_, err = g.Act(strategy.Stand)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestSplit(t *testing.T) {
	g := stacked(t, "8s 10h 8d 7c 3h 10d 2h 9s")

	assert.Contains(t, g.AvailableActions(), strategy.Split)
	entry := mustAct(t, g, strategy.Split)
	assert.True(t, entry.WasCorrect)
	require.NotNil(t, entry.CardDealt)
	assert.Equal(t, 11, entry.HandValueAfter)

	hands := g.PlayerHands()
	require.Len(t, hands, 2)
	assert.Equal(t, []int{1, 2}, []int{hands[0].ID, hands[1].ID})
	assert.True(t, hands[0].SplitFromPair)
	assert.True(t, hands[1].SplitFromPair)
	assert.Len(t, hands[1].Cards, 1, "second hand waits for its card")

	active, ok := g.ActiveHand()
	require.True(t, ok)
	assert.Equal(t, 1, active.ID)
	assert.Equal(t, []strategy.Action{strategy.Hit, strategy.Stand, strategy.Double}, g.AvailableActions())

	mustAct(t, g, strategy.Double)

	active, ok = g.ActiveHand()
	require.True(t, ok)
	assert.Equal(t, 2, active.ID)
	assert.Equal(t, 10, active.HandValue)

	mustAct(t, g, strategy.Stand)
	require.Equal(t, PhaseGameOver, g.Phase())

	result, _ := g.Result()
	assert.Equal(t, OutcomeCounts{Wins: 1, Losses: 1}, result.Counts)
	assert.Equal(t, 1, g.CardsRemaining())
}

func TestResplitInsertsAfterSource(t *testing.T) {
	g := stacked(t, "8s 10h 8d 7c 8h 2c 3c 4c 5c 6c")

	mustAct(t, g, strategy.Split)
	assert.Contains(t, g.AvailableActions(), strategy.Split)
	mustAct(t, g, strategy.Split)

	var ids []int
	for _, h := range g.PlayerHands() {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []int{1, 3, 2}, ids)
}

func TestDoubleAfterSplitRule(t *testing.T) {
	rules := DefaultRules()
	rules.DoubleAfterSplit = false
	g := stacked(t, "8s 10h 8d 7c 3h", WithRules(rules))

	mustAct(t, g, strategy.Split)
	assert.NotContains(t, g.AvailableActions(), strategy.Double)
}

func TestMaxSplitHands(t *testing.T) {
	rules := DefaultRules()
	rules.MaxSplitHands = 2
	g := stacked(t, "8s 10h 8d 7c 8h 2c", WithRules(rules))

	mustAct(t, g, strategy.Split)
	assert.NotContains(t, g.AvailableActions(), strategy.Split)

	_, err := g.Act(strategy.Split)
	assert.ErrorIs(t, err, ErrIllegalAction)
}

func TestShoeExhausted(t *testing.T) {
	g := New(randutil.New(1), WithShoe(StackedShoe(blackjack.MustParseCards("As Kh Kd")...)))

	err := g.StartNewHand()
	assert.ErrorIs(t, err, ErrShoeExhausted)
	assert.Equal(t, PhaseInitial, g.Phase())
	assert.Empty(t, g.PlayerHands())
}

func TestEmptyShoeHitIsNoop(t *testing.T) {
	g := stacked(t, "10s 7h 2d 10c")

	entry := mustAct(t, g, strategy.Hit)
	assert.Nil(t, entry.CardDealt)
	assert.Equal(t, 12, entry.HandValueAfter)
	assert.Equal(t, PhasePlayerTurn, g.Phase())

	mustAct(t, g, strategy.Stand)
	result, _ := g.Result()
	assert.Equal(t, OutcomeLoss, result.Hands[0].Outcome)
}

func TestResetAbandonsRound(t *testing.T) {
	g := stacked(t, "10s 7h 6d 10c")
	g.Reset()

	assert.Equal(t, PhaseInitial, g.Phase())
	assert.Empty(t, g.PlayerHands())
	_, ok := g.LastAction()
	assert.False(t, ok)
	_, ok = g.Result()
	assert.False(t, ok)
}

func TestConsecutiveRounds(t *testing.T) {
	g := New(randutil.New(1), WithShoe(StackedShoes(
		blackjack.MustParseCards("10s 7h 6d 10c"),
		blackjack.MustParseCards("As Kh Kd 9c"),
	)))

	require.NoError(t, g.StartNewHand())
	first := g.RoundID()
	mustAct(t, g, strategy.Stand)
	result, _ := g.Result()
	assert.Equal(t, OutcomeLoss, result.Hands[0].Outcome)

	require.NoError(t, g.StartNewHand())
	assert.NotEqual(t, first, g.RoundID())
	result, _ = g.Result()
	assert.Equal(t, OutcomeBlackjack, result.Hands[0].Outcome)
	assert.Equal(t, 1, g.PlayerHands()[0].ID, "hand ids restart each round")
}

type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(e GameEvent) { r.events = append(r.events, e) }

func TestEventsAndTimestamps(t *testing.T) {
	mClock := quartz.NewMock(t)
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec)

	g := stacked(t, "10s 7h 6d 10c", WithClock(mClock), WithEventBus(bus))
	entry := mustAct(t, g, strategy.Stand)
	assert.Equal(t, mClock.Now(), entry.Timestamp)

	var types []EventType
	for _, e := range rec.events {
		types = append(types, e.EventType())
	}
	assert.Equal(t, []EventType{
		EventTypePhaseChange,
		EventTypeRoundStart,
		EventTypePhaseChange,
		EventTypeDecision,
		EventTypePhaseChange,
		EventTypeDealerStep,
		EventTypePhaseChange,
		EventTypeRoundComplete,
	}, types)

	decision := rec.events[3].(DecisionEvent)
	assert.Equal(t, "16-7-hard", decision.Evaluation.ScenarioKey())

	complete := rec.events[len(rec.events)-1].(RoundCompleteEvent)
	assert.Equal(t, g.RoundID(), complete.RoundID)
	assert.Equal(t, 1, complete.Result.Counts.Losses)
	assert.Len(t, complete.Dealer.Cards, 2)

	bus.Unsubscribe(rec)
	g.Reset()
	assert.Len(t, rec.events, len(types))
}

func TestRandomPlayKeepsStateConsistent(t *testing.T) {
	g := New(randutil.New(7), WithRules(Rules{Decks: 1, MaxSplitHands: 4, SurrenderAllowed: true, DoubleAfterSplit: true}))

	for round := 0; round < 500; round++ {
		require.NoError(t, g.StartNewHand())
		for g.Phase() == PhasePlayerTurn {
			advice, ok := g.Advice()
			require.True(t, ok)
			require.Contains(t, g.AvailableActions(), advice)
			entry := mustAct(t, g, advice)
			assert.True(t, entry.WasCorrect)
		}

		require.Equal(t, PhaseGameOver, g.Phase())
		result, ok := g.Result()
		require.True(t, ok)
		hands := g.PlayerHands()
		assert.Equal(t, len(hands), result.Counts.Hands())
		for _, h := range hands {
			v := blackjack.Value(h.Cards)
			assert.Equal(t, v.Total, h.HandValue)
			assert.Equal(t, v.Soft, h.IsSoft)
			assert.Equal(t, v.Total > 21, h.Busted)
			assert.True(t, h.Finished())
			assert.NotEqual(t, OutcomePending, h.Outcome)
		}
		dealer := blackjack.Value(g.Dealer().Cards)
		assert.False(t, DealerShouldHit(dealer, g.Rules()) && g.CardsRemaining() > 0, "dealer stopped early at %d", dealer.Total)
	}
}
