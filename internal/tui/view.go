package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/basicstrategy/blackjack"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/strategy"
)

// View renders the trainer
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	snap := m.game.Snapshot()

	table := lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("Basic Strategy Trainer  "+m.game.Rules().String()),
		"",
		m.renderDealer(snap),
		"",
		m.renderHands(snap),
		"",
		m.renderPrompt(snap),
	)

	sections := []string{PanelStyle.Render(table)}

	side := []string{m.renderStats()}
	if m.showChart {
		side = append(side, m.renderChart(snap))
	}
	sections = append(sections, PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, side...)))

	body := lipgloss.JoinHorizontal(lipgloss.Top, sections...)
	if m.width > 0 && lipgloss.Width(body) > m.width {
		body = lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	parts := []string{body}
	if len(m.log) > 0 {
		parts = append(parts, InfoStyle.Render(strings.Join(m.log, "\n")))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderDealer(snap game.Snapshot) string {
	cards := snap.Dealer.Cards
	total := snap.Dealer.HandValue
	soft := snap.Dealer.IsSoft
	hidden := snap.Dealer.HideHoleCard

	if len(m.steps) > 0 {
		step := m.steps[max(m.revealed-1, 0)]
		cards, total, soft, hidden = step.Cards, step.Total, step.Soft, false
	}

	if len(cards) == 0 {
		return HandInfoStyle.Render("Dealer: ") + InfoStyle.Render("waiting for the deal")
	}

	line := HandInfoStyle.Render("Dealer: ") + formatCards(cards)
	if hidden {
		line += " " + HiddenCardStyle.Render("[??]")
	}
	return line + " " + InfoStyle.Render(describeTotal(total, soft))
}

func (m *Model) renderHands(snap game.Snapshot) string {
	if len(snap.Hands) == 0 {
		return ""
	}

	lines := make([]string, 0, len(snap.Hands))
	for _, h := range snap.Hands {
		label := "Hand"
		if len(snap.Hands) > 1 {
			label = fmt.Sprintf("Hand %d", h.ID)
		}
		style := HandInfoStyle
		marker := "  "
		if snap.Phase == game.PhasePlayerTurn && h.ID == snap.ActiveHandID {
			style = ActiveHandStyle
			marker = "> "
		}

		line := marker + style.Render(label+": ") + formatCards(h.Cards) + " " + InfoStyle.Render(describeTotal(h.HandValue, h.IsSoft))
		if tags := handTags(h); tags != "" {
			line += " " + WarningStyle.Render(tags)
		}
		if m.showOutcome() && h.Outcome != game.OutcomePending {
			line += " " + outcomeStyle(h.Outcome).Render(strings.ToUpper(h.Outcome.String()))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// showOutcome hides results until the dealer reveal finishes.
func (m *Model) showOutcome() bool {
	return m.game.Phase() == game.PhaseGameOver && !m.animating()
}

func (m *Model) renderPrompt(snap game.Snapshot) string {
	var lines []string

	if m.feedback != "" {
		if m.feedbackOK {
			lines = append(lines, SuccessStyle.Render("✓ ")+m.feedback)
		} else {
			lines = append(lines, ErrorStyle.Render("✗ ")+m.feedback)
		}
	}
	if m.errMsg != "" {
		lines = append(lines, ErrorStyle.Render(m.errMsg))
	}

	switch snap.Phase {
	case game.PhasePlayerTurn:
		lines = append(lines, renderAvailable(snap.Available))
		if m.showHints {
			if advice, ok := m.game.Advice(); ok {
				lines = append(lines, InfoStyle.Render("Hint: ")+ActionsStyle.Render(advice.String()))
			}
		}
	case game.PhaseGameOver:
		if m.animating() {
			lines = append(lines, InfoStyle.Render("Dealer is playing..."))
		} else {
			lines = append(lines, InfoStyle.Render("Press n to deal the next hand"))
		}
	default:
		lines = append(lines, InfoStyle.Render("Press n to deal"))
	}
	return strings.Join(lines, "\n")
}

func renderAvailable(actions []strategy.Action) string {
	if len(actions) == 0 {
		return ErrorStyle.Render("[no actions available]")
	}
	rendered := make([]string, len(actions))
	for i, a := range actions {
		rendered[i] = ActionsStyle.Render("[" + a.String() + "]")
	}
	return strings.Join(rendered, " ")
}

func (m *Model) renderStats() string {
	if m.tracker == nil {
		return InfoStyle.Render("No session tracking")
	}
	s := m.tracker.Stats()

	lines := []string{
		HandInfoStyle.Render("Session"),
		fmt.Sprintf("Hands     %d", s.HandsPlayed),
		fmt.Sprintf("Accuracy  %.1f%% (%d/%d)", s.Accuracy, s.DecisionsCorrect, s.DecisionsTotal),
		fmt.Sprintf("Skill     %s", s.SkillLevel),
		fmt.Sprintf("Trend     %+.1f", s.ImprovementTrend),
		fmt.Sprintf("W/L/P     %d/%d/%d", s.Wins+s.Blackjacks, s.Losses+s.Surrenders, s.Pushes),
	}

	if top := m.tracker.TopMistakes(3); len(top) > 0 {
		lines = append(lines, "", HandInfoStyle.Render("Top mistakes"))
		for _, p := range top {
			lines = append(lines, fmt.Sprintf("%-12s %s not %s x%d", p.Key, p.PlayerAction, p.CorrectAction, p.Frequency))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderChart(snap game.Snapshot) string {
	table := strategy.Hard
	if snap.Cell != nil {
		table = snap.Cell.Table
	}
	return RenderChart(table, snap.Cell)
}

// formatCards formats cards with colors
func formatCards(cards []blackjack.Card) string {
	if len(cards) == 0 {
		return ""
	}

	formatted := make([]string, len(cards))
	for i, card := range cards {
		if card.IsRed() {
			formatted[i] = RedCardStyle.Render(card.String())
		} else {
			formatted[i] = BlackCardStyle.Render(card.String())
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func describeTotal(total int, soft bool) string {
	if soft {
		return fmt.Sprintf("(soft %d)", total)
	}
	return fmt.Sprintf("(%d)", total)
}

func handTags(h game.PlayerHand) string {
	var tags []string
	switch {
	case h.IsBlackjack:
		tags = append(tags, "blackjack")
	case h.Busted:
		tags = append(tags, "bust")
	case h.Surrendered:
		tags = append(tags, "surrendered")
	}
	if h.Doubled {
		tags = append(tags, "doubled")
	}
	return strings.Join(tags, " ")
}

func outcomeStyle(o game.HandOutcome) lipgloss.Style {
	switch o {
	case game.OutcomeWin, game.OutcomeBlackjack:
		return SuccessStyle
	case game.OutcomeLoss, game.OutcomeSurrender:
		return ErrorStyle
	default:
		return WarningStyle
	}
}
