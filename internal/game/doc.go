// Package game implements the blackjack round state machine used by the
// trainer.
//
// The main type is Game, which owns the shoe, the player's hands and the
// dealer's hand for one round at a time. Callers drive it with intents and
// read state back through copy-returning queries.
//
// # Basic Usage
//
//	g := game.New(randutil.New(42))
//	if err := g.StartNewHand(); err != nil {
//	    return err
//	}
//	for g.Phase() == game.PhasePlayerTurn {
//	    entry, err := g.Act(strategy.Stand)
//	    ...
//	}
//	result, _ := g.Result()
//
// # Deterministic Testing
//
// The RNG is required so that shoes are reproducible. Tests that need an
// exact sequence of cards can stack the shoe instead:
//
//	g := game.New(rng, game.WithShoe(game.StackedShoe(
//	    blackjack.MustParseCards("10s 7h 6d 10c")...)))
//
// Cards are dealt player, dealer, player, dealer and then in order.
//
// # Architecture
//
// Game delegates to the strategy package to grade every decision before it
// is applied. Every decision, phase change and finished round is published
// on an EventBus so that session analytics and history recording stay out
// of the state machine. Dealer play runs to completion synchronously; the
// intermediate DealerStep snapshots can be replayed with a Pacer when a
// caller wants to animate the reveal.
package game
