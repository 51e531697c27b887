package terminal

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Command is a user request decoded from a key press.
type Command int

const (
	CommandNone Command = iota
	CommandToggle
	CommandSkip
	CommandQuit
)

// keyMap lists the session bindings and feeds the help line.
type keyMap struct {
	Toggle key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys("p", "P", " "),
			key.WithHelp("p", "pause/resume"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "skip"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp satisfies help.KeyMap.
func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Toggle, keys.Skip, keys.Quit}
}

// FullHelp satisfies help.KeyMap.
func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{keys.ShortHelp()}
}

// CommandForKey maps a key press to its command.
func CommandForKey(msg tea.KeyMsg) Command {
	return defaultKeyMap().command(msg)
}

func (keys keyMap) command(msg tea.KeyMsg) Command {
	switch {
	case key.Matches(msg, keys.Toggle):
		return CommandToggle
	case key.Matches(msg, keys.Skip):
		return CommandSkip
	case key.Matches(msg, keys.Quit):
		return CommandQuit
	default:
		return CommandNone
	}
}
