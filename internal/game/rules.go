package game

import "fmt"

// Rules are the table rules a round is played under.
type Rules struct {
	Decks            int
	HitSoft17        bool
	SurrenderAllowed bool
	MaxSplitHands    int
	DoubleAfterSplit bool
}

// DefaultRules returns a six-deck game where the dealer stands on soft 17,
// late surrender is offered, and up to four hands may be split to.
func DefaultRules() Rules {
	return Rules{
		Decks:            6,
		HitSoft17:        false,
		SurrenderAllowed: true,
		MaxSplitHands:    4,
		DoubleAfterSplit: true,
	}
}

// Validate checks the rules are playable.
func (r Rules) Validate() error {
	if r.Decks < 1 || r.Decks > 8 {
		return fmt.Errorf("decks must be between 1 and 8, got %d", r.Decks)
	}
	if r.MaxSplitHands < 1 || r.MaxSplitHands > 4 {
		return fmt.Errorf("max split hands must be between 1 and 4, got %d", r.MaxSplitHands)
	}
	return nil
}

// String summarises the rules in the usual table-felt shorthand.
func (r Rules) String() string {
	s := fmt.Sprintf("%dD", r.Decks)
	if r.HitSoft17 {
		s += " H17"
	} else {
		s += " S17"
	}
	if r.DoubleAfterSplit {
		s += " DAS"
	}
	if r.SurrenderAllowed {
		s += " LS"
	}
	return s + fmt.Sprintf(" SP%d", r.MaxSplitHands)
}
