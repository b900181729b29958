package game

// Phase is the stage of the current round.
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseDealing
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseGameOver
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseDealing:
		return "dealing"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseDealerTurn:
		return "dealer_turn"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
