package session

import (
	"cmp"
	"slices"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/strategy"
)

// Policy controls skill classification and the rolling accuracy window.
type Policy struct {
	MinSkillSample int
	Window         int
}

// DefaultPolicy needs 20 decisions before grading and keeps the last 10
// hand accuracies.
func DefaultPolicy() Policy {
	return Policy{MinSkillSample: 20, Window: 10}
}

// Scenario identifies a decision point for mistake grouping.
type Scenario struct {
	PlayerValue  int
	DealerUpcard int
	Table        strategy.TableType
}

// Key returns the scenario key, e.g. "16-5-hard".
func (s Scenario) Key() string {
	return strategy.ScenarioKey(s.PlayerValue, s.DealerUpcard, s.Table)
}

// ScenarioOf extracts the scenario from an advisor decision.
func ScenarioOf(d strategy.Decision) Scenario {
	return Scenario{PlayerValue: d.PlayerValue, DealerUpcard: d.DealerUpcard, Table: d.HandType}
}

// MistakePattern is a repeated wrong decision in one scenario.
type MistakePattern struct {
	Key            string
	Scenario       Scenario
	PlayerAction   strategy.Action
	CorrectAction  strategy.Action
	Frequency      int
	LastOccurrence time.Time
}

// Statistics are the running totals for one session.
type Statistics struct {
	HandsPlayed      int
	DecisionsTotal   int
	DecisionsCorrect int
	Wins             int
	Losses           int
	Pushes           int
	Surrenders       int
	Blackjacks       int
	Busts            int
	Accuracy         float64
	RecentAccuracy   []float64
	ImprovementTrend float64
	SkillLevel       SkillLevel
}

// WinRate returns the percentage of resolved hands won, counting
// blackjacks as wins.
func (s Statistics) WinRate() float64 {
	hands := s.Wins + s.Losses + s.Pushes + s.Surrenders + s.Blackjacks
	if hands == 0 {
		return 0
	}
	return float64(s.Wins+s.Blackjacks) / float64(hands) * 100
}

func (s *Statistics) add(other Statistics) {
	s.HandsPlayed += other.HandsPlayed
	s.DecisionsTotal += other.DecisionsTotal
	s.DecisionsCorrect += other.DecisionsCorrect
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Surrenders += other.Surrenders
	s.Blackjacks += other.Blackjacks
	s.Busts += other.Busts
	s.Accuracy = accuracy(s.DecisionsCorrect, s.DecisionsTotal)
}

// AllTime accumulates archived sessions.
type AllTime struct {
	Sessions int
	Totals   Statistics
}

// TableAccuracy counts decisions read from one chart.
type TableAccuracy struct {
	Total   int
	Correct int
}

// Accuracy returns the percentage of correct decisions.
func (t TableAccuracy) Accuracy() float64 {
	return accuracy(t.Correct, t.Total)
}

// Tracker aggregates decisions and outcomes for the current session. It
// implements game.EventSubscriber so it can listen to a game's bus
// directly. A Tracker is not safe for concurrent use.
type Tracker struct {
	policy Policy
	clock  quartz.Clock

	sessionID string
	startedAt time.Time
	stats     Statistics
	tables    map[strategy.TableType]*TableAccuracy
	mistakes  []*MistakePattern
	index     map[string]*MistakePattern
	allTime   AllTime
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithPolicy sets the skill and window policy.
func WithPolicy(p Policy) Option {
	return func(t *Tracker) { t.policy = p }
}

// WithClock sets the clock used for mistake timestamps.
func WithClock(c quartz.Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

// NewTracker starts a new session.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		policy: DefaultPolicy(),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.policy.Window < 2 {
		t.policy.Window = DefaultPolicy().Window
	}
	t.start()
	return t
}

func (t *Tracker) start() {
	t.sessionID = uuid.NewString()
	t.startedAt = t.clock.Now()
	t.stats = Statistics{}
	t.tables = make(map[strategy.TableType]*TableAccuracy)
	t.mistakes = nil
	t.index = make(map[string]*MistakePattern)
}

// SessionID returns the id of the current session.
func (t *Tracker) SessionID() string { return t.sessionID }

// StartedAt returns when the current session began.
func (t *Tracker) StartedAt() time.Time { return t.startedAt }

// Policy returns the tracker's policy.
func (t *Tracker) Policy() Policy { return t.policy }

// Stats returns a copy of the session statistics.
func (t *Tracker) Stats() Statistics {
	s := t.stats
	s.RecentAccuracy = slices.Clone(t.stats.RecentAccuracy)
	return s
}

// AllTime returns the archive of finished sessions.
func (t *Tracker) AllTime() AllTime { return t.allTime }

// TableAccuracy returns the decision tally for one chart.
func (t *Tracker) TableAccuracy(table strategy.TableType) TableAccuracy {
	if ta, ok := t.tables[table]; ok {
		return *ta
	}
	return TableAccuracy{}
}

// RecordDecision counts one graded decision. Wrong decisions are grouped
// into mistake patterns by scenario.
func (t *Tracker) RecordDecision(wasCorrect bool, playerAction, optimalAction strategy.Action, scenario Scenario) {
	t.stats.DecisionsTotal++
	if wasCorrect {
		t.stats.DecisionsCorrect++
	}
	t.stats.Accuracy = accuracy(t.stats.DecisionsCorrect, t.stats.DecisionsTotal)

	ta, ok := t.tables[scenario.Table]
	if !ok {
		ta = &TableAccuracy{}
		t.tables[scenario.Table] = ta
	}
	ta.Total++
	if wasCorrect {
		ta.Correct++
		return
	}

	now := t.clock.Now()
	key := scenario.Key()
	if p, ok := t.index[key]; ok {
		p.Frequency++
		p.LastOccurrence = now
		p.PlayerAction = playerAction
		p.CorrectAction = optimalAction
		return
	}

	p := &MistakePattern{
		Key:            key,
		Scenario:       scenario,
		PlayerAction:   playerAction,
		CorrectAction:  optimalAction,
		Frequency:      1,
		LastOccurrence: now,
	}
	t.mistakes = append(t.mistakes, p)
	t.index[key] = p
}

// RecordGameResult counts one finished round and updates the rolling
// accuracy window and trend.
func (t *Tracker) RecordGameResult(counts game.OutcomeCounts) {
	t.stats.HandsPlayed++
	t.stats.Wins += counts.Wins
	t.stats.Losses += counts.Losses
	t.stats.Pushes += counts.Pushes
	t.stats.Surrenders += counts.Surrenders
	t.stats.Blackjacks += counts.Blackjacks
	t.stats.Busts += counts.Busts

	window := append(t.stats.RecentAccuracy, t.stats.Accuracy)
	if len(window) > t.policy.Window {
		window = window[len(window)-t.policy.Window:]
	}
	t.stats.RecentAccuracy = window

	if len(window) == t.policy.Window {
		half := len(window) / 2
		t.stats.ImprovementTrend = mean(window[len(window)-half:]) - mean(window[:len(window)-half])
	}
}

// UpdateSkillLevel reclassifies the player. The level is recomputed from
// scratch each time, so it can drop as well as rise once the minimum
// sample is reached.
func (t *Tracker) UpdateSkillLevel() SkillLevel {
	t.stats.SkillLevel = ClassifySkill(t.stats.Accuracy, t.stats.DecisionsTotal, t.policy.MinSkillSample)
	return t.stats.SkillLevel
}

// MistakePatterns returns the patterns in first-seen order.
func (t *Tracker) MistakePatterns() []MistakePattern {
	out := make([]MistakePattern, len(t.mistakes))
	for i, p := range t.mistakes {
		out[i] = *p
	}
	return out
}

// TopMistakes returns up to n patterns, most frequent first and most
// recent first among equals.
func (t *Tracker) TopMistakes(n int) []MistakePattern {
	out := t.MistakePatterns()
	slices.SortStableFunc(out, func(a, b MistakePattern) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return b.LastOccurrence.Compare(a.LastOccurrence)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ClearMistakePatterns forgets every mistake pattern.
func (t *Tracker) ClearMistakePatterns() {
	t.mistakes = nil
	t.index = make(map[string]*MistakePattern)
}

// RemoveMistakePattern forgets one pattern and reports whether it existed.
func (t *Tracker) RemoveMistakePattern(key string) bool {
	if _, ok := t.index[key]; !ok {
		return false
	}
	delete(t.index, key)
	t.mistakes = slices.DeleteFunc(t.mistakes, func(p *MistakePattern) bool {
		return p.Key == key
	})
	return true
}

// ResetSession archives the current totals and starts a new session.
// Sessions with no decisions and no hands are not archived.
func (t *Tracker) ResetSession() {
	if t.stats.DecisionsTotal > 0 || t.stats.HandsPlayed > 0 {
		t.allTime.Sessions++
		t.allTime.Totals.add(t.stats)
	}
	t.start()
}

// OnEvent records decisions and finished rounds published by a game.
func (t *Tracker) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.DecisionEvent:
		t.RecordDecision(e.Entry.WasCorrect, e.Entry.Action, e.Entry.OptimalAction, ScenarioOf(e.Evaluation))
		t.UpdateSkillLevel()
	case game.RoundCompleteEvent:
		t.RecordGameResult(e.Result.Counts)
	}
}

func accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
