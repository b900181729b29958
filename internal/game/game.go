package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/basicstrategy/blackjack"
	"github.com/lox/basicstrategy/strategy"
)

// Game is a single-seat blackjack table. It is not safe for concurrent
// use; callers serialize intents.
type Game struct {
	rules  Rules
	rng    *rand.Rand
	logger *log.Logger
	clock  quartz.Clock
	bus    EventBus
	shoeFn ShoeFunc

	roundID    string
	phase      Phase
	shoe       []blackjack.Card
	hands      []*PlayerHand
	activeID   int
	nextHandID int
	dealer     DealerHand
	lastAction *ActionLogEntry
	result     *GameResult
	steps      []DealerStep
}

// StartNewHand shuffles a fresh shoe and deals two cards each to the
// player and dealer. It is allowed before the first round and after a
// round is over. If the player is dealt blackjack the round plays straight
// through to GameOver.
func (g *Game) StartNewHand() error {
	if g.phase != PhaseInitial && g.phase != PhaseGameOver {
		return fmt.Errorf("%w: cannot deal during %s", ErrWrongPhase, g.phase)
	}

	g.clear()
	g.setPhase(PhaseInitial)
	g.roundID = uuid.NewString()
	g.setPhase(PhaseDealing)

	g.shoe = g.shoeFn(g.rng, g.rules.Decks)
	if len(g.shoe) < 4 {
		g.logger.Warn("Shoe too short for initial deal", "round", g.roundID, "cards", len(g.shoe))
		g.clear()
		g.setPhase(PhaseInitial)
		return fmt.Errorf("%w: need 4 cards, have %d", ErrShoeExhausted, len(g.shoe))
	}

	var dealt []blackjack.Card
	dealt, g.shoe = blackjack.Deal(g.shoe, 4)

	hand := newPlayerHand(g.newHandID(), dealt[0], dealt[2])
	g.hands = []*PlayerHand{hand}
	g.dealer = DealerHand{HideHoleCard: true}
	g.dealer.setCards([]blackjack.Card{dealt[1], dealt[3]})

	g.logger.Debug("Dealt hand", "round", g.roundID, "player", hand.Cards, "upcard", g.dealer.Upcard(), "shoe", len(g.shoe))
	g.bus.Publish(NewRoundStartEvent(g.roundID, g.rules, hand.clone(), g.Dealer(), g.clock.Now()))

	g.setPhase(PhasePlayerTurn)
	g.advance()
	return nil
}

// Act grades and applies a player action to the active hand. Rejected
// actions leave the game untouched.
func (g *Game) Act(action strategy.Action) (ActionLogEntry, error) {
	if g.phase != PhasePlayerTurn {
		g.logger.Warn("Rejected action", "action", action, "phase", g.phase)
		return ActionLogEntry{}, fmt.Errorf("%w: cannot %s during %s", ErrWrongPhase, action, g.phase)
	}

	hand := g.activeHand()
	if hand == nil {
		return ActionLogEntry{}, fmt.Errorf("%w: no active hand", ErrWrongPhase)
	}
	available := g.availableFor(hand)
	if !strategy.Contains(available, action) {
		g.logger.Warn("Rejected action", "action", action, "hand", hand.ID, "available", available)
		if action == strategy.Split && !blackjack.IsPair(hand.Cards) {
			return ActionLogEntry{}, fmt.Errorf("%w: cannot split %v", ErrMalformedHand, hand.Cards)
		}
		return ActionLogEntry{}, fmt.Errorf("%w: %s", ErrIllegalAction, action)
	}

	decision := strategy.EvaluateDecision(action, hand.Cards, g.dealer.Upcard(), available)
	before := hand.HandValue

	var dealt *blackjack.Card
	switch action {
	case strategy.Hit:
		dealt = g.drawInto(hand)
	case strategy.Stand:
		hand.Stood = true
	case strategy.Double:
		dealt = g.drawInto(hand)
		hand.Doubled = true
		hand.Stood = true
	case strategy.Split:
		dealt = g.split(hand)
	case strategy.Surrender:
		hand.Surrendered = true
		hand.Outcome = OutcomeSurrender
	}

	entry := ActionLogEntry{
		HandID:          hand.ID,
		Action:          action,
		OptimalAction:   decision.OptimalAction,
		WasCorrect:      decision.IsCorrect,
		HandValueBefore: before,
		HandValueAfter:  hand.HandValue,
		CardDealt:       dealt,
		Timestamp:       g.clock.Now(),
	}
	hand.ActionLog = append(hand.ActionLog, entry)
	g.lastAction = &entry

	g.logger.Debug("Applied action",
		"round", g.roundID,
		"hand", hand.ID,
		"action", action,
		"optimal", decision.OptimalAction,
		"correct", decision.IsCorrect,
		"before", before,
		"after", hand.HandValue)
	g.bus.Publish(NewDecisionEvent(g.roundID, entry, decision))

	g.advance()
	return entry, nil
}

// Reset abandons any round in progress and returns to PhaseInitial.
func (g *Game) Reset() {
	g.clear()
	g.setPhase(PhaseInitial)
}

func (g *Game) clear() {
	g.roundID = ""
	g.shoe = nil
	g.hands = nil
	g.activeID = 0
	g.nextHandID = 0
	g.dealer = DealerHand{}
	g.lastAction = nil
	g.result = nil
	g.steps = nil
}

// advance moves play to the first unfinished hand, topping up a split hand
// with its second card as it becomes active. Once every hand is finished
// the dealer plays.
func (g *Game) advance() {
	for _, h := range g.hands {
		if h.Finished() {
			continue
		}
		if g.activeID != h.ID {
			g.logger.Debug("Hand active", "round", g.roundID, "hand", h.ID)
		}
		g.activeID = h.ID
		if len(h.Cards) < 2 {
			g.drawInto(h)
		}
		if !h.Finished() {
			return
		}
	}
	g.activeID = 0
	g.playDealer()
}

func (g *Game) split(hand *PlayerHand) *blackjack.Card {
	idx := g.indexOf(hand.ID)
	second := newPlayerHand(g.newHandID(), hand.Cards[1])
	second.SplitFromPair = true

	hand.SplitFromPair = true
	hand.setCards([]blackjack.Card{hand.Cards[0]})

	g.hands = append(g.hands, nil)
	copy(g.hands[idx+2:], g.hands[idx+1:])
	g.hands[idx+1] = second

	return g.drawInto(hand)
}

// drawInto deals the next card into hand. An empty shoe leaves the hand
// unchanged.
func (g *Game) drawInto(hand *PlayerHand) *blackjack.Card {
	card, ok := g.draw()
	if !ok {
		g.logger.Warn("Shoe exhausted", "round", g.roundID, "hand", hand.ID)
		return nil
	}
	hand.addCard(card)
	return &card
}

func (g *Game) draw() (blackjack.Card, bool) {
	drawn, rest := blackjack.Deal(g.shoe, 1)
	if len(drawn) == 0 {
		return blackjack.Card{}, false
	}
	g.shoe = rest
	return drawn[0], true
}

func (g *Game) setPhase(to Phase) {
	from := g.phase
	g.phase = to
	if from == to {
		return
	}
	g.logger.Debug("Phase change", "round", g.roundID, "from", from, "to", to)
	g.bus.Publish(NewPhaseChangeEvent(g.roundID, from, to, g.clock.Now()))
}

func (g *Game) newHandID() int {
	g.nextHandID++
	return g.nextHandID
}

func (g *Game) indexOf(id int) int {
	for i, h := range g.hands {
		if h.ID == id {
			return i
		}
	}
	return -1
}

func (g *Game) activeHand() *PlayerHand {
	if i := g.indexOf(g.activeID); i >= 0 {
		return g.hands[i]
	}
	return nil
}

// availableFor lists the legal actions for hand in display order.
func (g *Game) availableFor(hand *PlayerHand) []strategy.Action {
	if hand == nil || g.phase != PhasePlayerTurn || hand.Finished() || hand.Doubled {
		return nil
	}

	actions := []strategy.Action{strategy.Hit, strategy.Stand}
	twoCards := len(hand.Cards) == 2
	if twoCards && (!hand.SplitFromPair || g.rules.DoubleAfterSplit) {
		actions = append(actions, strategy.Double)
	}
	if twoCards && blackjack.IsPair(hand.Cards) && len(g.hands) < g.rules.MaxSplitHands {
		actions = append(actions, strategy.Split)
	}
	if g.rules.SurrenderAllowed && twoCards && len(g.hands) == 1 && !hand.SplitFromPair && len(hand.ActionLog) == 0 {
		actions = append(actions, strategy.Surrender)
	}
	return actions
}

// OpeningActions lists the legal actions for a freshly dealt, unsplit hand
// under rules. It returns nil for hands that take no decision.
func OpeningActions(hand []blackjack.Card, rules Rules) []strategy.Action {
	h := newPlayerHand(1, append([]blackjack.Card(nil), hand...)...)
	g := &Game{rules: rules, phase: PhasePlayerTurn, hands: []*PlayerHand{h}}
	return g.availableFor(h)
}
