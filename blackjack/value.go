package blackjack

// HandValue is the best blackjack total of a set of cards.
type HandValue struct {
	Total int
	// Soft is true when an Ace is still counted as 11.
	Soft bool
}

// Value computes the blackjack total. Every Ace starts at 11 and is
// demoted to 1 while the total exceeds 21.
func Value(cards []Card) HandValue {
	total := 0
	aces := 0
	for _, c := range cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}

	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}

	return HandValue{Total: total, Soft: aces > 0 && total <= 21}
}

// IsBlackjack reports a two-card 21 made of an Ace and a ten-value card.
func IsBlackjack(cards []Card) bool {
	if len(cards) != 2 {
		return false
	}
	a, b := cards[0], cards[1]
	return (a.IsAce() && b.Value() == 10) || (b.IsAce() && a.Value() == 10)
}

// IsBusted reports a total over 21.
func IsBusted(cards []Card) bool {
	return Value(cards).Total > 21
}

// IsPair reports exactly two cards of the same rank. K-Q is not a pair.
func IsPair(cards []Card) bool {
	return len(cards) == 2 && cards[0].Rank == cards[1].Rank
}
