package game

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/basicstrategy/blackjack"
)

// DealerStep is a snapshot of the dealer's hand after the hole card is
// turned or a card is drawn.
type DealerStep struct {
	Cards  []blackjack.Card
	Total  int
	Soft   bool
	Drawn  *blackjack.Card
	Final  bool
	Busted bool
}

// DealerShouldHit reports whether the dealer draws to v under rules.
func DealerShouldHit(v blackjack.HandValue, rules Rules) bool {
	if v.Total < 17 {
		return true
	}
	return rules.HitSoft17 && v.Total == 17 && v.Soft
}

func (g *Game) playDealer() {
	g.setPhase(PhaseDealerTurn)
	g.dealer.reveal()
	g.steps = []DealerStep{g.dealerStep(nil)}
	g.logger.Debug("Dealer reveals", "round", g.roundID, "cards", g.dealer.Cards, "total", g.dealer.HandValue)

	for DealerShouldHit(blackjack.Value(g.dealer.Cards), g.rules) {
		card, ok := g.draw()
		if !ok {
			g.logger.Warn("Shoe exhausted during dealer play", "round", g.roundID, "total", g.dealer.HandValue)
			break
		}
		g.dealer.addCard(card)
		g.steps = append(g.steps, g.dealerStep(&card))
		g.logger.Debug("Dealer draws", "round", g.roundID, "card", card, "total", g.dealer.HandValue)
	}

	last := &g.steps[len(g.steps)-1]
	last.Final = true
	for _, step := range g.steps {
		g.bus.Publish(NewDealerStepEvent(g.roundID, step, g.clock.Now()))
	}

	g.resolve()
}

func (g *Game) dealerStep(drawn *blackjack.Card) DealerStep {
	v := blackjack.Value(g.dealer.Cards)
	return DealerStep{
		Cards:  append([]blackjack.Card(nil), g.dealer.Cards...),
		Total:  v.Total,
		Soft:   v.Soft,
		Drawn:  drawn,
		Busted: v.Total > 21,
	}
}

// Pacer replays dealer steps with a delay between them so a caller can
// animate the reveal.
type Pacer struct {
	clock quartz.Clock
	delay time.Duration
}

// NewPacer creates a pacer. A nil clock uses the real clock.
func NewPacer(clock quartz.Clock, delay time.Duration) *Pacer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Pacer{clock: clock, delay: delay}
}

// Play calls emit for each step, waiting the pacer's delay between steps.
// The wait for the next step starts before emit is called.
func (p *Pacer) Play(ctx context.Context, steps []DealerStep, emit func(DealerStep)) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		var fired chan struct{}
		var timer *quartz.Timer
		if i < len(steps)-1 && p.delay > 0 {
			fired = make(chan struct{})
			timer = p.clock.AfterFunc(p.delay, func() {
				close(fired)
			})
		}

		emit(step)

		if fired == nil {
			continue
		}
		select {
		case <-fired:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return nil
}
