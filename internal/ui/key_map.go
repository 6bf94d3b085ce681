package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/chapters/internal/deck"
)

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	down   key.Binding
	pgDown key.Binding
	up     key.Binding
	pgUp   key.Binding
	home   key.Binding
	end    key.Binding
	jump   key.Binding
	mute   key.Binding
	help   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		pgDown: key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("pgdn/space", "next")),
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "back")),
		pgUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "back")),
		home:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "first")),
		end:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "last")),
		jump:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump")),
		mute:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sound")),
		help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.down, k.up, k.mute, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.down, k.pgDown, k.up, k.pgUp},
		{k.home, k.end, k.jump},
		{k.mute, k.help, k.quit},
	}
}

// deckKey maps a key press onto the controller's navigation keys.
func (k keyMap) deckKey(msg tea.KeyMsg) (deck.KeyCode, bool) {
	switch {
	case key.Matches(msg, k.down):
		return deck.KeyArrowDown, true
	case key.Matches(msg, k.pgDown):
		return deck.KeyPageDown, true
	case key.Matches(msg, k.up):
		return deck.KeyArrowUp, true
	case key.Matches(msg, k.pgUp):
		return deck.KeyPageUp, true
	case key.Matches(msg, k.home):
		return deck.KeyHome, true
	case key.Matches(msg, k.end):
		return deck.KeyEnd, true
	}
	return deck.KeyUnknown, false
}
