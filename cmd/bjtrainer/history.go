package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lox/basicstrategy/internal/history"
)

// HistoryCmd is the root command for session history files.
type HistoryCmd struct {
	Render HistoryRenderCmd `cmd:"" help:"Print a saved history as a transcript"`
}

// HistoryRenderCmd replays a history file as text.
type HistoryRenderCmd struct {
	File  string `arg:"" optional:"" name:"file" help:"Path to history file (defaults to the configured one)"`
	Limit int    `help:"Maximum number of rounds to render, most recent last (0 = all)"`
}

func (c *HistoryRenderCmd) Run(globals *Globals) error {
	path := c.File
	if path == "" {
		cfg, err := globals.LoadConfig()
		if err != nil {
			return err
		}
		path = cfg.Session.HistoryFile
	}
	if path == "" {
		return errors.New("no history file given and none configured")
	}
	return c.render(os.Stdout, path)
}

func (c *HistoryRenderCmd) render(w io.Writer, path string) error {
	f, err := history.Load(path)
	if err != nil {
		return err
	}
	if len(f.Rounds) == 0 {
		return fmt.Errorf("no rounds found in %s", path)
	}
	if c.Limit > 0 && c.Limit < len(f.Rounds) {
		f.Rounds = f.Rounds[len(f.Rounds)-c.Limit:]
	}
	return history.Render(w, f)
}
