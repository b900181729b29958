package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/internal/session"
	"github.com/lox/basicstrategy/strategy"
)

const maxLogLines = 8

// Options configure the trainer UI.
type Options struct {
	DealerDelay time.Duration
	ShowHints   bool
	Logger      *log.Logger
}

// dealerTickMsg reveals the next dealer step.
type dealerTickMsg struct{}

// Model is the Bubble Tea model for the trainer. It sends intents to the
// game and renders from game snapshots; decisions reach it through the
// game's event bus.
type Model struct {
	game    *game.Game
	tracker *session.Tracker
	logger  *log.Logger
	keys    keyMap
	help    help.Model

	delay     time.Duration
	showHints bool
	showChart bool

	steps    []game.DealerStep
	revealed int

	feedback   string
	feedbackOK bool
	errMsg     string
	log        []string

	width    int
	height   int
	quitting bool
}

// New creates the UI model. Subscribe the returned model to the game's
// event bus so it sees graded decisions.
func New(g *game.Game, tracker *session.Tracker, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Model{
		game:      g,
		tracker:   tracker,
		logger:    logger.WithPrefix("tui"),
		keys:      defaultKeyMap(),
		help:      help.New(),
		delay:     opts.DealerDelay,
		showHints: opts.ShowHints,
	}
}

// OnEvent implements game.EventSubscriber.
func (m *Model) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.DecisionEvent:
		m.feedback = e.Evaluation.Explanation
		m.feedbackOK = e.Evaluation.IsCorrect
		m.addLog(fmt.Sprintf("%s: %s -> %s (%d)", e.Evaluation.ScenarioKey(), e.Entry.Action, correctness(e.Entry.WasCorrect), e.Entry.HandValueAfter))
	case game.RoundCompleteEvent:
		c := e.Result.Counts
		m.addLog(fmt.Sprintf("round over: %dW %dL %dP %dBJ %dR", c.Wins, c.Losses, c.Pushes, c.Blackjacks, c.Surrenders))
	}
}

func correctness(ok bool) string {
	if ok {
		return "correct"
	}
	return "mistake"
}

func (m *Model) addLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

// Init deals the first hand.
func (m *Model) Init() tea.Cmd {
	return m.deal()
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case dealerTickMsg:
		return m, m.revealNext()

	case tea.KeyMsg:
		pressed := func(b key.Binding) bool { return key.Matches(msg, b) }
		switch {
		case pressed(m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case pressed(m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case pressed(m.keys.Hint):
			m.showHints = !m.showHints
		case pressed(m.keys.Chart):
			m.showChart = !m.showChart
		case pressed(m.keys.Deal):
			return m, m.deal()
		default:
			if action, ok := m.keys.actionFor(pressed); ok {
				return m, m.act(action)
			}
		}
	}
	return m, nil
}

func (m *Model) animating() bool {
	return m.revealed < len(m.steps)
}

func (m *Model) deal() tea.Cmd {
	phase := m.game.Phase()
	if m.animating() || (phase != game.PhaseInitial && phase != game.PhaseGameOver) {
		return nil
	}

	m.feedback = ""
	m.errMsg = ""
	m.steps = nil
	m.revealed = 0
	if err := m.game.StartNewHand(); err != nil {
		m.logger.Error("Deal failed", "error", err)
		m.errMsg = err.Error()
		return nil
	}
	m.logger.Debug("Dealt", "round", m.game.RoundID())
	return m.afterMove()
}

func (m *Model) act(action strategy.Action) tea.Cmd {
	if m.animating() {
		return nil
	}
	m.errMsg = ""
	if _, err := m.game.Act(action); err != nil {
		m.logger.Warn("Rejected action", "action", action, "error", err)
		m.errMsg = fmt.Sprintf("Can't %s now", action)
		return nil
	}
	return m.afterMove()
}

// afterMove starts the dealer reveal once the round is over.
func (m *Model) afterMove() tea.Cmd {
	if m.game.Phase() != game.PhaseGameOver {
		return nil
	}
	m.steps = m.game.DealerSteps()
	m.revealed = 0
	return m.revealNext()
}

func (m *Model) revealNext() tea.Cmd {
	if !m.animating() {
		return nil
	}
	m.revealed++
	if m.delay <= 0 {
		m.revealed = len(m.steps)
		return nil
	}
	if !m.animating() {
		return nil
	}
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return dealerTickMsg{} })
}
