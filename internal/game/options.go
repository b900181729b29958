package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/basicstrategy/blackjack"
)

// ShoeFunc builds the shoe for a new round.
type ShoeFunc func(rng *rand.Rand, decks int) []blackjack.Card

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	rules  Rules
	logger *log.Logger
	clock  quartz.Clock
	bus    EventBus
	shoe   ShoeFunc
}

// New creates a game with the required RNG and optional configuration.
// The RNG is required to make randomness explicit and testing deterministic.
//
// Example usage:
//
//	// Production
//	g := New(randutil.New(randutil.Seed(nil)))
//
//	// With options
//	g := New(rng,
//	    WithRules(Rules{Decks: 1, HitSoft17: true, MaxSplitHands: 2}),
//	    WithEventBus(bus))
func New(rng *rand.Rand, opts ...Option) *Game {
	if rng == nil {
		panic("rng is required for game creation")
	}

	cfg := &gameConfig{
		rules: DefaultRules(),
		shoe:  blackjack.BuildShoe,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.rules.Validate(); err != nil {
		panic("invalid rules: " + err.Error())
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}

	return &Game{
		rules:  cfg.rules,
		rng:    rng,
		logger: cfg.logger,
		clock:  cfg.clock,
		bus:    cfg.bus,
		shoeFn: cfg.shoe,
		phase:  PhaseInitial,
	}
}

// WithRules sets the table rules. Default is DefaultRules().
func WithRules(rules Rules) Option {
	return func(c *gameConfig) {
		c.rules = rules
	}
}

// WithLogger sets the logger. Logging is discarded by default.
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// WithClock sets the clock used for action timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(c *gameConfig) {
		c.clock = clock
	}
}

// WithEventBus sets the bus that decisions and results are published on.
func WithEventBus(bus EventBus) Option {
	return func(c *gameConfig) {
		c.bus = bus
	}
}

// WithShoe overrides how the shoe is built for each round.
func WithShoe(shoe ShoeFunc) Option {
	return func(c *gameConfig) {
		c.shoe = shoe
	}
}

// StackedShoe returns a ShoeFunc that always yields the given cards in
// order, ignoring the RNG and deck count.
func StackedShoe(cards ...blackjack.Card) ShoeFunc {
	return func(*rand.Rand, int) []blackjack.Card {
		return append([]blackjack.Card(nil), cards...)
	}
}

// StackedShoes returns a ShoeFunc that yields each shoe in turn, one per
// round, and an empty shoe once they run out.
func StackedShoes(shoes ...[]blackjack.Card) ShoeFunc {
	next := 0
	return func(*rand.Rand, int) []blackjack.Card {
		if next >= len(shoes) {
			return nil
		}
		shoe := append([]blackjack.Card(nil), shoes[next]...)
		next++
		return shoe
	}
}
