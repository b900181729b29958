package game

import (
	"time"

	"github.com/lox/basicstrategy/strategy"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStart    EventType = "round_start"
	EventTypePhaseChange   EventType = "phase_change"
	EventTypeDecision      EventType = "decision"
	EventTypeDealerStep    EventType = "dealer_step"
	EventTypeRoundComplete EventType = "round_complete"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published once the initial four cards are dealt
type RoundStartEvent struct {
	RoundID   string
	Rules     Rules
	Hand      PlayerHand
	Upcard    DealerHand
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(roundID string, rules Rules, hand PlayerHand, dealer DealerHand, at time.Time) RoundStartEvent {
	return RoundStartEvent{
		RoundID:   roundID,
		Rules:     rules,
		Hand:      hand,
		Upcard:    dealer,
		timestamp: at,
	}
}

// PhaseChangeEvent is published on every phase transition
type PhaseChangeEvent struct {
	RoundID   string
	From      Phase
	To        Phase
	timestamp time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.timestamp }

// NewPhaseChangeEvent creates a new phase change event
func NewPhaseChangeEvent(roundID string, from, to Phase, at time.Time) PhaseChangeEvent {
	return PhaseChangeEvent{
		RoundID:   roundID,
		From:      from,
		To:        to,
		timestamp: at,
	}
}

// DecisionEvent is published after a player action has been graded and
// applied
type DecisionEvent struct {
	RoundID    string
	Entry      ActionLogEntry
	Evaluation strategy.Decision
	timestamp  time.Time
}

func (e DecisionEvent) EventType() EventType { return EventTypeDecision }
func (e DecisionEvent) Timestamp() time.Time { return e.timestamp }

// NewDecisionEvent creates a new decision event
func NewDecisionEvent(roundID string, entry ActionLogEntry, evaluation strategy.Decision) DecisionEvent {
	return DecisionEvent{
		RoundID:    roundID,
		Entry:      entry,
		Evaluation: evaluation,
		timestamp:  entry.Timestamp,
	}
}

// DealerStepEvent is published for the hole card reveal and each dealer draw
type DealerStepEvent struct {
	RoundID   string
	Step      DealerStep
	timestamp time.Time
}

func (e DealerStepEvent) EventType() EventType { return EventTypeDealerStep }
func (e DealerStepEvent) Timestamp() time.Time { return e.timestamp }

// NewDealerStepEvent creates a new dealer step event
func NewDealerStepEvent(roundID string, step DealerStep, at time.Time) DealerStepEvent {
	return DealerStepEvent{
		RoundID:   roundID,
		Step:      step,
		timestamp: at,
	}
}

// RoundCompleteEvent is published when every hand has been resolved
type RoundCompleteEvent struct {
	RoundID   string
	Rules     Rules
	Result    GameResult
	Hands     []PlayerHand
	Dealer    DealerHand
	timestamp time.Time
}

func (e RoundCompleteEvent) EventType() EventType { return EventTypeRoundComplete }
func (e RoundCompleteEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundCompleteEvent creates a new round complete event
func NewRoundCompleteEvent(roundID string, rules Rules, result GameResult, hands []PlayerHand, dealer DealerHand, at time.Time) RoundCompleteEvent {
	return RoundCompleteEvent{
		RoundID:   roundID,
		Rules:     rules,
		Result:    result,
		Hands:     hands,
		Dealer:    dealer,
		timestamp: at,
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers run on
// the publishing goroutine in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
