package strategy

import (
	"fmt"
	"strings"

	"github.com/lox/basicstrategy/blackjack"
)

func explain(d Decision, hand []blackjack.Card, upcard blackjack.Card) string {
	var b strings.Builder

	fmt.Fprintf(&b, "With %s against a dealer %s, basic strategy says %s.",
		describeHand(d.HandType, d.PlayerValue, hand), upcard.Rank, d.OptimalAction)

	if preferred := StrategyActionToAction(d.ChartAction); preferred != d.OptimalAction {
		fmt.Fprintf(&b, " The chart prefers %s, which is not available here.", preferred)
	}

	if d.IsCorrect {
		b.WriteString(" Correct.")
	} else {
		fmt.Fprintf(&b, " You chose to %s.", d.PlayerAction)
	}
	return b.String()
}

func describeHand(table TableType, total int, hand []blackjack.Card) string {
	switch table {
	case Pair:
		return fmt.Sprintf("a pair of %ss", hand[0].Rank)
	case Soft:
		return fmt.Sprintf("soft %d", total)
	default:
		return fmt.Sprintf("hard %d", total)
	}
}
