package drill

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/internal/randutil"
	"github.com/lox/basicstrategy/internal/session"
	"github.com/lox/basicstrategy/strategy"
	"golang.org/x/sync/errgroup"
)

// playerStream offsets player seeds from game seeds so the two never share
// a stream.
const playerStream = 1 << 16

// Config holds configuration for running a drill
type Config struct {
	Hands     int
	Workers   int
	ErrorRate float64
	Seed      int64
	Rules     game.Rules
	Policy    session.Policy
	Logger    *log.Logger
}

// Report is the merged outcome of every worker.
type Report struct {
	Hands    int
	Workers  int
	Seed     int64
	Stats    session.Statistics
	Tables   map[strategy.TableType]session.TableAccuracy
	Mistakes []session.MistakePattern
	Duration time.Duration
}

// Runner plays drill hands through the game engine.
type Runner struct {
	config Config
}

// New creates a drill runner, filling in defaults for zero values.
func New(config Config) *Runner {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Workers > config.Hands && config.Hands > 0 {
		config.Workers = config.Hands
	}
	if config.Rules == (game.Rules{}) {
		config.Rules = game.DefaultRules()
	}
	if config.Policy == (session.Policy{}) {
		config.Policy = session.DefaultPolicy()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Runner{config: config}
}

type workerResult struct {
	hands    int
	stats    session.Statistics
	tables   map[strategy.TableType]session.TableAccuracy
	mistakes []session.MistakePattern
}

// Run plays the configured number of hands split across workers. Each
// worker owns its own game and tracker.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	cfg := r.config
	if cfg.Hands < 1 {
		return Report{}, fmt.Errorf("drill: hands must be positive, got %d", cfg.Hands)
	}
	if cfg.ErrorRate < 0 || cfg.ErrorRate > 1 {
		return Report{}, fmt.Errorf("drill: error rate must be between 0 and 1, got %g", cfg.ErrorRate)
	}
	if err := cfg.Rules.Validate(); err != nil {
		return Report{}, fmt.Errorf("drill: %w", err)
	}

	start := time.Now()
	results := make([]workerResult, cfg.Workers)
	perWorker := cfg.Hands / cfg.Workers
	remainder := cfg.Hands % cfg.Workers

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		hands := perWorker
		if w < remainder {
			hands++
		}
		g.Go(func() error {
			res, err := r.runWorker(ctx, w, hands)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := merge(results, cfg.Policy)
	report.Workers = cfg.Workers
	report.Seed = cfg.Seed
	report.Duration = time.Since(start)
	cfg.Logger.Info("Drill complete",
		"hands", report.Hands,
		"decisions", report.Stats.DecisionsTotal,
		"accuracy", fmt.Sprintf("%.1f", report.Stats.Accuracy),
		"duration", report.Duration)
	return report, nil
}

func (r *Runner) runWorker(ctx context.Context, worker, hands int) (workerResult, error) {
	cfg := r.config
	logger := cfg.Logger.With("worker", worker)

	tracker := session.NewTracker(session.WithPolicy(cfg.Policy))
	bus := game.NewEventBus()
	bus.Subscribe(tracker)

	g := game.New(randutil.New(randutil.Derive(cfg.Seed, worker)),
		game.WithRules(cfg.Rules),
		game.WithLogger(logger),
		game.WithEventBus(bus))
	player := NewSimulatedPlayer(randutil.New(randutil.Derive(cfg.Seed, playerStream+worker)), cfg.ErrorRate)

	for i := 0; i < hands; i++ {
		if err := ctx.Err(); err != nil {
			return workerResult{}, err
		}
		if err := g.StartNewHand(); err != nil {
			return workerResult{}, err
		}
		for g.Phase() == game.PhasePlayerTurn {
			hand, _ := g.ActiveHand()
			action := player.Choose(hand.Cards, g.Dealer().Upcard(), g.AvailableActions())
			if _, err := g.Act(action); err != nil {
				return workerResult{}, err
			}
		}
	}

	tables := make(map[strategy.TableType]session.TableAccuracy)
	for _, t := range []strategy.TableType{strategy.Hard, strategy.Soft, strategy.Pair} {
		tables[t] = tracker.TableAccuracy(t)
	}
	logger.Debug("Worker finished", "hands", hands, "accuracy", tracker.Stats().Accuracy)
	return workerResult{
		hands:    hands,
		stats:    tracker.Stats(),
		tables:   tables,
		mistakes: tracker.MistakePatterns(),
	}, nil
}

func merge(results []workerResult, policy session.Policy) Report {
	report := Report{Tables: make(map[strategy.TableType]session.TableAccuracy)}
	mistakes := make(map[string]*session.MistakePattern)

	for _, res := range results {
		report.Hands += res.hands
		s := &report.Stats
		s.HandsPlayed += res.stats.HandsPlayed
		s.DecisionsTotal += res.stats.DecisionsTotal
		s.DecisionsCorrect += res.stats.DecisionsCorrect
		s.Wins += res.stats.Wins
		s.Losses += res.stats.Losses
		s.Pushes += res.stats.Pushes
		s.Surrenders += res.stats.Surrenders
		s.Blackjacks += res.stats.Blackjacks
		s.Busts += res.stats.Busts

		for t, acc := range res.tables {
			total := report.Tables[t]
			total.Total += acc.Total
			total.Correct += acc.Correct
			report.Tables[t] = total
		}

		for _, m := range res.mistakes {
			if existing, ok := mistakes[m.Key]; ok {
				existing.Frequency += m.Frequency
				if m.LastOccurrence.After(existing.LastOccurrence) {
					existing.LastOccurrence = m.LastOccurrence
				}
				continue
			}
			mistakes[m.Key] = &m
		}
	}

	if report.Stats.DecisionsTotal > 0 {
		report.Stats.Accuracy = float64(report.Stats.DecisionsCorrect) / float64(report.Stats.DecisionsTotal) * 100
	}
	report.Stats.SkillLevel = session.ClassifySkill(report.Stats.Accuracy, report.Stats.DecisionsTotal, policy.MinSkillSample)

	for _, m := range mistakes {
		report.Mistakes = append(report.Mistakes, *m)
	}
	slices.SortFunc(report.Mistakes, func(a, b session.MistakePattern) int {
		if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return report
}
