package history

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/basicstrategy/blackjack"
)

// Summary aggregates a history file.
type Summary struct {
	Rounds    int
	Hands     int
	Decisions int
	Correct   int
	Outcomes  map[string]int
}

// Accuracy returns the percentage of correct decisions.
func (s Summary) Accuracy() float64 {
	if s.Decisions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Decisions) * 100
}

// Summarize totals every round in f.
func Summarize(f *File) Summary {
	s := Summary{Outcomes: make(map[string]int)}
	for _, r := range f.Rounds {
		s.Rounds++
		for _, h := range r.Hands {
			s.Hands++
			s.Outcomes[h.Outcome]++
			for _, a := range h.Actions {
				s.Decisions++
				if a.Correct {
					s.Correct++
				}
			}
		}
	}
	return s
}

// Render writes a plain-text transcript of every round in f.
func Render(w io.Writer, f *File) error {
	for _, r := range f.Rounds {
		if _, err := fmt.Fprintf(w, "Round %s  %s  [%s]\n", shortID(r.ID), r.PlayedAt.Format("2006-01-02 15:04:05"), r.Rules); err != nil {
			return err
		}
		fmt.Fprintf(w, "  Dealer: %s (%d)\n", pretty(r.Dealer.Cards), r.Dealer.Total)
		for _, h := range r.Hands {
			fmt.Fprintf(w, "  Hand %d: %s (%d) %s\n", h.ID, pretty(h.Cards), h.Total, strings.ToUpper(h.Outcome))
			for _, a := range h.Actions {
				mark := "ok"
				if !a.Correct {
					mark = "should " + a.Optimal
				}
				line := fmt.Sprintf("    %-9s %2d -> %2d", a.Action, a.Before, a.After)
				if a.Card != "" {
					line += " +" + pretty([]string{a.Card})
				}
				fmt.Fprintf(w, "%s  %s\n", line, mark)
			}
		}
	}

	s := Summarize(f)
	_, err := fmt.Fprintf(w, "%d rounds, %d hands, %d/%d decisions correct (%.1f%%)\n",
		s.Rounds, s.Hands, s.Correct, s.Decisions, s.Accuracy())
	return err
}

func pretty(codes []string) string {
	parts := make([]string, len(codes))
	for i, code := range codes {
		card, err := blackjack.ParseCard(code)
		if err != nil {
			parts[i] = code
			continue
		}
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
