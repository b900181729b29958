package game

import (
	"time"

	"github.com/lox/basicstrategy/blackjack"
	"github.com/lox/basicstrategy/strategy"
)

// HandOutcome is the result of one player hand against the dealer.
// OutcomePending means the hand has not been resolved yet.
type HandOutcome int

const (
	OutcomePending HandOutcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomePush
	OutcomeBlackjack
	OutcomeSurrender
)

// String returns the string representation of an outcome
func (o HandOutcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomePush:
		return "push"
	case OutcomeBlackjack:
		return "blackjack"
	case OutcomeSurrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// ActionLogEntry records one applied decision. Entries are never modified
// once appended.
type ActionLogEntry struct {
	HandID          int
	Action          strategy.Action
	OptimalAction   strategy.Action
	WasCorrect      bool
	HandValueBefore int
	HandValueAfter  int
	CardDealt       *blackjack.Card
	Timestamp       time.Time
}

// PlayerHand is one of the player's hands. HandValue, IsSoft, Busted and
// IsBlackjack are derived from Cards and only change through setCards.
type PlayerHand struct {
	ID            int
	Cards         []blackjack.Card
	Busted        bool
	Stood         bool
	Doubled       bool
	SplitFromPair bool
	Surrendered   bool
	IsBlackjack   bool
	Outcome       HandOutcome
	ActionLog     []ActionLogEntry
	HandValue     int
	IsSoft        bool
}

func newPlayerHand(id int, cards ...blackjack.Card) *PlayerHand {
	h := &PlayerHand{ID: id}
	h.setCards(cards)
	return h
}

// Finished reports whether the hand takes no further decisions.
func (h *PlayerHand) Finished() bool {
	return h.Busted || h.Stood || h.IsBlackjack || h.Surrendered
}

func (h *PlayerHand) setCards(cards []blackjack.Card) {
	h.Cards = cards
	v := blackjack.Value(cards)
	h.HandValue = v.Total
	h.IsSoft = v.Soft
	h.Busted = v.Total > 21
	h.IsBlackjack = blackjack.IsBlackjack(cards)
}

func (h *PlayerHand) addCard(c blackjack.Card) {
	cards := make([]blackjack.Card, len(h.Cards), len(h.Cards)+1)
	copy(cards, h.Cards)
	h.setCards(append(cards, c))
}

func (h *PlayerHand) clone() PlayerHand {
	c := *h
	c.Cards = append([]blackjack.Card(nil), h.Cards...)
	c.ActionLog = append([]ActionLogEntry(nil), h.ActionLog...)
	return c
}

// DealerHand is the dealer's hand. While HideHoleCard is set, HandValue
// and IsSoft describe the upcard alone.
type DealerHand struct {
	Cards        []blackjack.Card
	HandValue    int
	IsSoft       bool
	HideHoleCard bool
}

// Upcard returns the dealer's face-up card.
func (d DealerHand) Upcard() blackjack.Card {
	if len(d.Cards) == 0 {
		return blackjack.Card{}
	}
	return d.Cards[0]
}

// Visible returns the cards the player can see.
func (d DealerHand) Visible() []blackjack.Card {
	if d.HideHoleCard && len(d.Cards) > 1 {
		return d.Cards[:1]
	}
	return d.Cards
}

func (d *DealerHand) setCards(cards []blackjack.Card) {
	d.Cards = cards
	d.refresh()
}

func (d *DealerHand) addCard(c blackjack.Card) {
	cards := make([]blackjack.Card, len(d.Cards), len(d.Cards)+1)
	copy(cards, d.Cards)
	d.setCards(append(cards, c))
}

func (d *DealerHand) reveal() {
	d.HideHoleCard = false
	d.refresh()
}

func (d *DealerHand) refresh() {
	v := blackjack.Value(d.Visible())
	d.HandValue = v.Total
	d.IsSoft = v.Soft
}

func (d DealerHand) clone() DealerHand {
	d.Cards = append([]blackjack.Card(nil), d.Cards...)
	return d
}
