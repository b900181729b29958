package history

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/basicstrategy/blackjack"
	"github.com/lox/basicstrategy/internal/game"
)

// Recorder collects finished rounds from a game's event bus and appends
// them to a history file on Flush. It is not safe for concurrent use.
type Recorder struct {
	path    string
	logger  *log.Logger
	pending []Round
}

// NewRecorder creates a recorder for path. A nil logger discards output.
func NewRecorder(path string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{path: path, logger: logger}
}

// OnEvent records RoundCompleteEvents and ignores everything else.
func (r *Recorder) OnEvent(event game.GameEvent) {
	e, ok := event.(game.RoundCompleteEvent)
	if !ok {
		return
	}
	r.pending = append(r.pending, NewRound(e))
	r.logger.Debug("Recorded round", "round", e.RoundID, "pending", len(r.pending))
}

// Pending returns the number of rounds not yet flushed.
func (r *Recorder) Pending() int { return len(r.pending) }

// Flush appends pending rounds to the history file.
func (r *Recorder) Flush() error {
	if len(r.pending) == 0 {
		return nil
	}
	f, err := Load(r.path)
	if err != nil {
		return err
	}
	f.Rounds = append(f.Rounds, r.pending...)
	if err := Save(r.path, f); err != nil {
		return err
	}
	r.logger.Info("Wrote history", "path", r.path, "rounds", len(r.pending), "total", len(f.Rounds))
	r.pending = nil
	return nil
}

// NewRound converts a finished round into its history record.
func NewRound(e game.RoundCompleteEvent) Round {
	round := Round{
		ID:       e.RoundID,
		PlayedAt: e.Timestamp(),
		Rules:    e.Rules.String(),
		Dealer: DealerRecord{
			Cards:  codes(e.Dealer.Cards),
			Total:  e.Result.DealerTotal,
			Busted: e.Result.DealerBusted,
		},
	}

	for _, h := range e.Hands {
		rec := HandRecord{
			ID:          h.ID,
			Cards:       codes(h.Cards),
			Total:       h.HandValue,
			Soft:        h.IsSoft,
			Outcome:     h.Outcome.String(),
			Doubled:     h.Doubled,
			Split:       h.SplitFromPair,
			Surrendered: h.Surrendered,
		}
		for _, a := range h.ActionLog {
			ar := ActionRecord{
				Action:  a.Action.String(),
				Optimal: a.OptimalAction.String(),
				Correct: a.WasCorrect,
				Before:  a.HandValueBefore,
				After:   a.HandValueAfter,
			}
			if a.CardDealt != nil {
				ar.Card = a.CardDealt.Code()
			}
			rec.Actions = append(rec.Actions, ar)
		}
		round.Hands = append(round.Hands, rec)
	}
	return round
}

func codes(cards []blackjack.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code()
	}
	return out
}
