package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/internal/session"
)

// Config represents the complete trainer configuration
type Config struct {
	Table   *TableConfig   `hcl:"table,block"`
	Session *SessionConfig `hcl:"session,block"`
	UI      *UIConfig      `hcl:"ui,block"`
}

// TableConfig holds the table rules
type TableConfig struct {
	Decks            int   `hcl:"decks,optional"`
	HitSoft17        *bool `hcl:"hit_soft_17,optional"`
	Surrender        *bool `hcl:"surrender,optional"`
	MaxSplitHands    int   `hcl:"max_split_hands,optional"`
	DoubleAfterSplit *bool `hcl:"double_after_split,optional"`
}

// SessionConfig holds the analytics policy
type SessionConfig struct {
	MinSkillSample int    `hcl:"min_skill_sample,optional"`
	Window         int    `hcl:"window,optional"`
	HistoryFile    string `hcl:"history_file,optional"`
}

// UIConfig holds terminal UI settings
type UIConfig struct {
	DealerDelayMS int    `hcl:"dealer_delay_ms,optional"`
	ShowHints     bool   `hcl:"show_hints,optional"`
	LogFile       string `hcl:"log_file,optional"`
	LogLevel      string `hcl:"log_level,optional"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the default configuration
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes configuration from HCL source.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	rules := game.DefaultRules()
	policy := session.DefaultPolicy()

	if c.Table == nil {
		c.Table = &TableConfig{}
	}
	if c.Table.Decks == 0 {
		c.Table.Decks = rules.Decks
	}
	if c.Table.HitSoft17 == nil {
		c.Table.HitSoft17 = boolPtr(rules.HitSoft17)
	}
	if c.Table.Surrender == nil {
		c.Table.Surrender = boolPtr(rules.SurrenderAllowed)
	}
	if c.Table.MaxSplitHands == 0 {
		c.Table.MaxSplitHands = rules.MaxSplitHands
	}
	if c.Table.DoubleAfterSplit == nil {
		c.Table.DoubleAfterSplit = boolPtr(rules.DoubleAfterSplit)
	}

	if c.Session == nil {
		c.Session = &SessionConfig{}
	}
	if c.Session.MinSkillSample == 0 {
		c.Session.MinSkillSample = policy.MinSkillSample
	}
	if c.Session.Window == 0 {
		c.Session.Window = policy.Window
	}
	if c.Session.HistoryFile == "" {
		c.Session.HistoryFile = "bjtrainer-history.toml"
	}

	if c.UI == nil {
		c.UI = &UIConfig{}
	}
	if c.UI.DealerDelayMS == 0 {
		c.UI.DealerDelayMS = 600
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = "bjtrainer.log"
	}
	if c.UI.LogLevel == "" {
		c.UI.LogLevel = "info"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	if c.Session.MinSkillSample < 1 {
		return fmt.Errorf("session: min_skill_sample must be at least 1, got %d", c.Session.MinSkillSample)
	}
	if c.Session.Window < 2 || c.Session.Window > 50 || c.Session.Window%2 != 0 {
		return fmt.Errorf("session: window must be an even number between 2 and 50, got %d", c.Session.Window)
	}
	if c.UI.DealerDelayMS < 0 {
		return fmt.Errorf("ui: dealer_delay_ms must not be negative, got %d", c.UI.DealerDelayMS)
	}
	if !slices.Contains(logLevels, c.UI.LogLevel) {
		return fmt.Errorf("ui: invalid log_level %q (valid: %v)", c.UI.LogLevel, logLevels)
	}
	return nil
}

// Rules converts the table block into game rules.
func (c *Config) Rules() game.Rules {
	return game.Rules{
		Decks:            c.Table.Decks,
		HitSoft17:        *c.Table.HitSoft17,
		SurrenderAllowed: *c.Table.Surrender,
		MaxSplitHands:    c.Table.MaxSplitHands,
		DoubleAfterSplit: *c.Table.DoubleAfterSplit,
	}
}

// Policy converts the session block into a tracker policy.
func (c *Config) Policy() session.Policy {
	return session.Policy{
		MinSkillSample: c.Session.MinSkillSample,
		Window:         c.Session.Window,
	}
}

// DealerDelay is the pause between dealer cards in the UI.
func (c *Config) DealerDelay() time.Duration {
	return time.Duration(c.UI.DealerDelayMS) * time.Millisecond
}

func boolPtr(b bool) *bool { return &b }
