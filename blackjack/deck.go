package blackjack

import rand "math/rand/v2"

// DeckSize is the number of cards in a single deck.
const DeckSize = 52

// BuildDeck returns an ordered 52-card deck, suit by suit.
func BuildDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// BuildShoe returns n decks shuffled together. n below one yields an
// empty shoe.
func BuildShoe(rng *rand.Rand, n int) []Card {
	if n < 1 {
		return []Card{}
	}
	cards := make([]Card, 0, DeckSize*n)
	for i := 0; i < n; i++ {
		cards = append(cards, BuildDeck()...)
	}
	return Shuffle(rng, cards)
}

// Shuffle returns a uniformly permuted copy of cards using Fisher-Yates.
// The input slice is not modified.
func Shuffle(rng *rand.Rand, cards []Card) []Card {
	if rng == nil {
		panic("rng is required for shuffling")
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deal takes up to k cards from the front of cards. Dealing from a short
// or empty slice returns whatever is available; callers must check the
// length of drawn.
func Deal(cards []Card, k int) (drawn, remaining []Card) {
	if k < 0 {
		k = 0
	}
	if k > len(cards) {
		k = len(cards)
	}
	drawn = make([]Card, k)
	copy(drawn, cards[:k])
	return drawn, cards[k:]
}
