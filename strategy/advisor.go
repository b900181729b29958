package strategy

import (
	"fmt"

	"github.com/lox/basicstrategy/blackjack"
)

// fallbackPolicy lists, per chart code, the actions to try in order when
// the preferred one is not available. The first available candidate wins;
// if none is available the advisor answers Hit.
var fallbackPolicy = map[StrategyAction][]Action{
	H:  {Hit, Stand},
	S:  {Stand, Hit},
	D:  {Double, Hit, Stand},
	Ds: {Double, Stand, Hit},
	P:  {Split, Hit, Stand},
	Rh: {Surrender, Hit, Stand},
	Rs: {Surrender, Stand, Hit},
}

// Cell addresses one chart entry.
type Cell struct {
	Table TableType
	Row   int
	Col   int
}

// Decision is the advisor's verdict on a player's choice.
type Decision struct {
	PlayerAction  Action
	OptimalAction Action
	ChartAction   StrategyAction
	IsCorrect     bool
	Explanation   string
	HandType      TableType
	PlayerValue   int
	DealerUpcard  int
}

// ScenarioKey identifies the situation as playerValue-dealerUpcard-table,
// e.g. "16-5-hard".
func (d Decision) ScenarioKey() string {
	return ScenarioKey(d.PlayerValue, d.DealerUpcard, d.HandType)
}

// ScenarioKey formats a mistake-pattern key.
func ScenarioKey(playerValue, dealerUpcard int, table TableType) string {
	return fmt.Sprintf("%d-%d-%s", playerValue, dealerUpcard, table)
}

// Classify picks the chart for a hand. A pair only reads from the pairs
// chart while splitting is allowed.
func Classify(hand []blackjack.Card, available []Action) TableType {
	if blackjack.IsPair(hand) && Contains(available, Split) {
		return Pair
	}
	if blackjack.Value(hand).Soft {
		return Soft
	}
	return Hard
}

// DealerColumn maps the dealer upcard onto a chart column.
func DealerColumn(upcard blackjack.Card) int {
	if upcard.IsAce() {
		return 9
	}
	return clamp(min(upcard.Value(), 10)-2, 0, 8)
}

// Lookup returns the raw chart code for the hand, before availability is
// taken into account.
func Lookup(hand []blackjack.Card, upcard blackjack.Card, available []Action) StrategyAction {
	table := Classify(hand, available)
	_, cells := chartData(table)
	return cells[row(table, hand)][DealerColumn(upcard)]
}

// Resolve walks the fallback policy for code and returns the first
// available action.
func Resolve(code StrategyAction, available []Action) Action {
	for _, candidate := range fallbackPolicy[code] {
		if Contains(available, candidate) {
			return candidate
		}
	}
	return Hit
}

// OptimalAction returns the basic-strategy play restricted to the
// available actions.
func OptimalAction(hand []blackjack.Card, upcard blackjack.Card, available []Action) Action {
	return Resolve(Lookup(hand, upcard, available), available)
}

// EvaluateDecision grades playerAction against the optimal action.
func EvaluateDecision(playerAction Action, hand []blackjack.Card, upcard blackjack.Card, available []Action) Decision {
	code := Lookup(hand, upcard, available)
	optimal := Resolve(code, available)
	d := Decision{
		PlayerAction:  playerAction,
		OptimalAction: optimal,
		ChartAction:   code,
		IsCorrect:     playerAction == optimal,
		HandType:      Classify(hand, available),
		PlayerValue:   blackjack.Value(hand).Total,
		DealerUpcard:  upcard.Value(),
	}
	d.Explanation = explain(d, hand, upcard)
	return d
}

// CellCoordinates locates the chart cell for a hand so a UI can highlight
// it. It reports false for totals below 8 or above 21 and for soft 21.
// Two-card pairs always map to the pairs chart.
func CellCoordinates(hand []blackjack.Card, upcard blackjack.Card) (Cell, bool) {
	col := DealerColumn(upcard)
	if blackjack.IsPair(hand) {
		return Cell{Table: Pair, Row: row(Pair, hand), Col: col}, true
	}

	v := blackjack.Value(hand)
	if v.Total < 8 || v.Total > 21 {
		return Cell{}, false
	}
	if v.Soft {
		if v.Total == 21 {
			return Cell{}, false
		}
		return Cell{Table: Soft, Row: row(Soft, hand), Col: col}, true
	}
	return Cell{Table: Hard, Row: row(Hard, hand), Col: col}, true
}

func row(table TableType, hand []blackjack.Card) int {
	switch table {
	case Pair:
		if hand[0].IsAce() {
			return 9
		}
		return min(hand[0].Value(), 10) - 2
	case Soft:
		return clamp(blackjack.Value(hand).Total, 13, 20) - 13
	default:
		return clamp(blackjack.Value(hand).Total, 8, 17) - 8
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
