package drill

import (
	rand "math/rand/v2"

	"github.com/lox/basicstrategy/blackjack"
	"github.com/lox/basicstrategy/strategy"
)

// Player picks an action for the active hand.
type Player interface {
	Choose(hand []blackjack.Card, upcard blackjack.Card, available []strategy.Action) strategy.Action
}

// SimulatedPlayer plays basic strategy but, with probability ErrorRate,
// picks a random legal action other than the optimal one.
type SimulatedPlayer struct {
	rng       *rand.Rand
	errorRate float64
}

// NewSimulatedPlayer creates a simulated player.
func NewSimulatedPlayer(rng *rand.Rand, errorRate float64) *SimulatedPlayer {
	if rng == nil {
		panic("rng is required for simulated player")
	}
	return &SimulatedPlayer{rng: rng, errorRate: errorRate}
}

// Choose implements Player.
func (p *SimulatedPlayer) Choose(hand []blackjack.Card, upcard blackjack.Card, available []strategy.Action) strategy.Action {
	optimal := strategy.OptimalAction(hand, upcard, available)
	if p.errorRate <= 0 || p.rng.Float64() >= p.errorRate {
		return optimal
	}

	wrong := make([]strategy.Action, 0, len(available))
	for _, a := range available {
		if a != optimal {
			wrong = append(wrong, a)
		}
	}
	if len(wrong) == 0 {
		return optimal
	}
	return wrong[p.rng.IntN(len(wrong))]
}
