package game

import "errors"

var (
	// ErrIllegalAction is returned when an action is not currently available.
	ErrIllegalAction = errors.New("action not available")
	// ErrWrongPhase is returned when a command does not apply to the current phase.
	ErrWrongPhase = errors.New("wrong phase")
	// ErrMalformedHand is returned when an action does not fit the hand, such
	// as a split of two cards of different rank.
	ErrMalformedHand = errors.New("malformed hand")
	// ErrShoeExhausted is returned when the shoe cannot cover the initial deal.
	ErrShoeExhausted = errors.New("shoe exhausted")
)
