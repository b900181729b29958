package history

import "time"

// File is the on-disk round history.
type File struct {
	Rounds []Round `toml:"rounds"`
}

// Round is one dealt round.
type Round struct {
	ID       string       `toml:"id"`
	PlayedAt time.Time    `toml:"played_at"`
	Rules    string       `toml:"rules"`
	Dealer   DealerRecord `toml:"dealer"`
	Hands    []HandRecord `toml:"hands"`
}

// DealerRecord is the dealer's final hand.
type DealerRecord struct {
	Cards  []string `toml:"cards"`
	Total  int      `toml:"total"`
	Busted bool     `toml:"busted,omitempty"`
}

// HandRecord is one resolved player hand.
type HandRecord struct {
	ID          int            `toml:"id"`
	Cards       []string       `toml:"cards"`
	Total       int            `toml:"total"`
	Soft        bool           `toml:"soft,omitempty"`
	Outcome     string         `toml:"outcome"`
	Doubled     bool           `toml:"doubled,omitempty"`
	Split       bool           `toml:"split,omitempty"`
	Surrendered bool           `toml:"surrendered,omitempty"`
	Actions     []ActionRecord `toml:"actions"`
}

// ActionRecord is one graded decision.
type ActionRecord struct {
	Action  string `toml:"action"`
	Optimal string `toml:"optimal"`
	Correct bool   `toml:"correct"`
	Before  int    `toml:"before"`
	After   int    `toml:"after"`
	Card    string `toml:"card,omitempty"`
}
