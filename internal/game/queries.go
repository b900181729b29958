package game

import "github.com/lox/basicstrategy/strategy"

// Rules returns the table rules.
func (g *Game) Rules() Rules { return g.rules }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// RoundID returns the id of the current round, or "" before the first deal.
func (g *Game) RoundID() string { return g.roundID }

// PlayerHands returns copies of the player's hands in table order.
func (g *Game) PlayerHands() []PlayerHand {
	hands := make([]PlayerHand, len(g.hands))
	for i, h := range g.hands {
		hands[i] = h.clone()
	}
	return hands
}

// ActiveHand returns a copy of the hand awaiting a decision.
func (g *Game) ActiveHand() (PlayerHand, bool) {
	if g.phase != PhasePlayerTurn {
		return PlayerHand{}, false
	}
	h := g.activeHand()
	if h == nil {
		return PlayerHand{}, false
	}
	return h.clone(), true
}

// Dealer returns the dealer's hand as the player sees it. While the hole
// card is hidden only the upcard is included.
func (g *Game) Dealer() DealerHand {
	d := g.dealer.clone()
	d.Cards = d.Visible()
	return d
}

// AvailableActions returns the legal actions for the active hand.
func (g *Game) AvailableActions() []strategy.Action {
	return g.availableFor(g.activeHand())
}

// Advice returns the basic-strategy play for the active hand.
func (g *Game) Advice() (strategy.Action, bool) {
	hand := g.activeHand()
	available := g.availableFor(hand)
	if len(available) == 0 {
		return strategy.Hit, false
	}
	return strategy.OptimalAction(hand.Cards, g.dealer.Upcard(), available), true
}

// LastAction returns the most recent applied decision of this round.
func (g *Game) LastAction() (ActionLogEntry, bool) {
	if g.lastAction == nil {
		return ActionLogEntry{}, false
	}
	return *g.lastAction, true
}

// Result returns the round result once the phase is GameOver.
func (g *Game) Result() (GameResult, bool) {
	if g.phase != PhaseGameOver || g.result == nil {
		return GameResult{}, false
	}
	r := *g.result
	r.Hands = append([]HandResult(nil), g.result.Hands...)
	return r, true
}

// DealerSteps returns the dealer play of the last round, starting with the
// hole card reveal.
func (g *Game) DealerSteps() []DealerStep {
	return append([]DealerStep(nil), g.steps...)
}

// CardsRemaining returns the number of cards left in the shoe.
func (g *Game) CardsRemaining() int { return len(g.shoe) }

// Snapshot is a copy of everything a renderer needs.
type Snapshot struct {
	RoundID      string
	Phase        Phase
	Hands        []PlayerHand
	ActiveHandID int
	Dealer       DealerHand
	Available    []strategy.Action
	LastAction   *ActionLogEntry
	Result       *GameResult
	Cell         *strategy.Cell
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		RoundID:   g.roundID,
		Phase:     g.phase,
		Hands:     g.PlayerHands(),
		Dealer:    g.Dealer(),
		Available: g.AvailableActions(),
	}
	if h, ok := g.ActiveHand(); ok {
		s.ActiveHandID = h.ID
		if cell, ok := strategy.CellCoordinates(h.Cards, g.dealer.Upcard()); ok {
			s.Cell = &cell
		}
	}
	if entry, ok := g.LastAction(); ok {
		s.LastAction = &entry
	}
	if r, ok := g.Result(); ok {
		s.Result = &r
	}
	return s
}
