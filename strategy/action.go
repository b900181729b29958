package strategy

import (
	"fmt"
	"strings"
)

// Action is a player decision.
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
	Surrender
)

// AllActions lists every action in display order.
var AllActions = []Action{Hit, Stand, Double, Split, Surrender}

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// ParseAction converts a string to an Action. Single-letter shortcuts
// used by the terminal UI are accepted.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit", "h":
		return Hit, nil
	case "stand", "s":
		return Stand, nil
	case "double", "d":
		return Double, nil
	case "split", "p":
		return Split, nil
	case "surrender", "r":
		return Surrender, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// Contains reports whether a is in actions.
func Contains(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

// StrategyAction is a chart cell code. Double and surrender cells carry
// the action to take when the preferred one is not allowed.
type StrategyAction uint8

const (
	H  StrategyAction = iota // hit
	S                        // stand
	D                        // double, otherwise hit
	Ds                       // double, otherwise stand
	P                        // split
	Rh                       // surrender, otherwise hit
	Rs                       // surrender, otherwise stand
)

// String returns the chart notation for the code
func (s StrategyAction) String() string {
	switch s {
	case H:
		return "H"
	case S:
		return "S"
	case D:
		return "D"
	case Ds:
		return "Ds"
	case P:
		return "P"
	case Rh:
		return "Rh"
	case Rs:
		return "Rs"
	default:
		return "?"
	}
}

// ActionToStrategyAction maps a player action onto its chart code.
func ActionToStrategyAction(a Action) StrategyAction {
	switch a {
	case Stand:
		return S
	case Double:
		return D
	case Split:
		return P
	case Surrender:
		return Rh
	default:
		return H
	}
}

// StrategyActionToAction maps a chart code onto the preferred action.
func StrategyActionToAction(s StrategyAction) Action {
	switch s {
	case S:
		return Stand
	case D, Ds:
		return Double
	case P:
		return Split
	case Rh, Rs:
		return Surrender
	default:
		return Hit
	}
}
