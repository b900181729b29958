package game

import "github.com/lox/basicstrategy/blackjack"

// OutcomeCounts tallies resolved hands. Every hand lands in exactly one of
// Wins, Losses, Pushes, Surrenders or Blackjacks; a busted hand is also
// counted in Busts.
type OutcomeCounts struct {
	Wins       int
	Losses     int
	Pushes     int
	Surrenders int
	Blackjacks int
	Busts      int
}

// Add counts one hand.
func (c *OutcomeCounts) Add(outcome HandOutcome, busted bool) {
	switch outcome {
	case OutcomeWin:
		c.Wins++
	case OutcomeLoss:
		c.Losses++
	case OutcomePush:
		c.Pushes++
	case OutcomeSurrender:
		c.Surrenders++
	case OutcomeBlackjack:
		c.Blackjacks++
	}
	if busted {
		c.Busts++
	}
}

// Merge adds other into c.
func (c *OutcomeCounts) Merge(other OutcomeCounts) {
	c.Wins += other.Wins
	c.Losses += other.Losses
	c.Pushes += other.Pushes
	c.Surrenders += other.Surrenders
	c.Blackjacks += other.Blackjacks
	c.Busts += other.Busts
}

// Hands returns the number of hands counted.
func (c OutcomeCounts) Hands() int {
	return c.Wins + c.Losses + c.Pushes + c.Surrenders + c.Blackjacks
}

// HandResult is the resolved state of one player hand.
type HandResult struct {
	HandID  int
	Outcome HandOutcome
	Total   int
	Busted  bool
	Doubled bool
}

// GameResult is the outcome of a finished round.
type GameResult struct {
	RoundID      string
	Hands        []HandResult
	DealerTotal  int
	DealerBusted bool
	Counts       OutcomeCounts
}

// DetermineOutcome resolves a player hand against the dealer's final cards.
func DetermineOutcome(hand PlayerHand, dealer []blackjack.Card) HandOutcome {
	if hand.Surrendered {
		return OutcomeSurrender
	}
	if hand.Busted {
		return OutcomeLoss
	}

	playerBJ := hand.IsBlackjack
	dealerBJ := blackjack.IsBlackjack(dealer)
	switch {
	case playerBJ && dealerBJ:
		return OutcomePush
	case playerBJ:
		return OutcomeBlackjack
	case dealerBJ:
		return OutcomeLoss
	}

	dealerTotal := blackjack.Value(dealer).Total
	switch {
	case dealerTotal > 21:
		return OutcomeWin
	case hand.HandValue > dealerTotal:
		return OutcomeWin
	case hand.HandValue < dealerTotal:
		return OutcomeLoss
	default:
		return OutcomePush
	}
}

func (g *Game) resolve() {
	dealer := blackjack.Value(g.dealer.Cards)
	result := GameResult{
		RoundID:      g.roundID,
		DealerTotal:  dealer.Total,
		DealerBusted: dealer.Total > 21,
	}

	for _, h := range g.hands {
		h.Outcome = DetermineOutcome(*h, g.dealer.Cards)
		result.Counts.Add(h.Outcome, h.Busted)
		result.Hands = append(result.Hands, HandResult{
			HandID:  h.ID,
			Outcome: h.Outcome,
			Total:   h.HandValue,
			Busted:  h.Busted,
			Doubled: h.Doubled,
		})
		g.logger.Debug("Resolved hand", "round", g.roundID, "hand", h.ID, "total", h.HandValue, "outcome", h.Outcome)
	}

	g.result = &result
	g.setPhase(PhaseGameOver)
	g.bus.Publish(NewRoundCompleteEvent(g.roundID, g.rules, result, g.PlayerHands(), g.dealer.clone(), g.clock.Now()))
}
