package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/lox/basicstrategy/strategy"
)

type keyMap struct {
	Hit       key.Binding
	Stand     key.Binding
	Double    key.Binding
	Split     key.Binding
	Surrender key.Binding
	Deal      key.Binding
	Hint      key.Binding
	Chart     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Hit:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hit")),
		Stand:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stand")),
		Double:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "double")),
		Split:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "split")),
		Surrender: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "surrender")),
		Deal:      key.NewBinding(key.WithKeys("n", "enter", " "), key.WithHelp("n/enter", "deal")),
		Hint:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle hints")),
		Chart:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle chart")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hit, k.Stand, k.Double, k.Split, k.Surrender, k.Deal, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Hit, k.Stand, k.Double, k.Split, k.Surrender},
		{k.Deal, k.Hint, k.Chart},
		{k.Help, k.Quit},
	}
}

// actionFor maps a pressed binding to a player action.
func (k keyMap) actionFor(pressed func(key.Binding) bool) (strategy.Action, bool) {
	switch {
	case pressed(k.Hit):
		return strategy.Hit, true
	case pressed(k.Stand):
		return strategy.Stand, true
	case pressed(k.Double):
		return strategy.Double, true
	case pressed(k.Split):
		return strategy.Split, true
	case pressed(k.Surrender):
		return strategy.Surrender, true
	}
	return 0, false
}
