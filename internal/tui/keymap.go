package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/pfassina/treemd/internal/config"
)

// KeyMap holds the navigator's bindings. Actions missing from the
// configuration stay as zero bindings, which never match.
type KeyMap struct {
	Down     key.Binding
	Up       key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Focus    key.Binding
	Follow   key.Binding
	Filter   key.Binding
	Reload   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var actionHelp = map[string]string{
	"down":     "down",
	"up":       "up",
	"top":      "top",
	"bottom":   "bottom",
	"expand":   "open",
	"collapse": "collapse",
	"focus":    "switch pane",
	"follow":   "follow link",
	"filter":   "filter",
	"reload":   "reload",
	"back":     "back",
	"quit":     "quit",
}

// NewKeyMap builds a KeyMap from configured bindings.
func NewKeyMap(binds []config.Keybind) KeyMap {
	var km KeyMap
	for _, kb := range binds {
		b := km.binding(kb.Action)
		if b == nil || len(kb.Keys) == 0 {
			continue
		}
		*b = key.NewBinding(
			key.WithKeys(kb.Keys...),
			key.WithHelp(strings.Join(kb.Keys, "/"), actionHelp[kb.Action]),
		)
	}
	return km
}

// DefaultKeyMap is the KeyMap for config.DefaultKeybinds.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultKeybinds())
}

func (k *KeyMap) binding(action string) *key.Binding {
	switch action {
	case "down":
		return &k.Down
	case "up":
		return &k.Up
	case "top":
		return &k.Top
	case "bottom":
		return &k.Bottom
	case "expand":
		return &k.Expand
	case "collapse":
		return &k.Collapse
	case "focus":
		return &k.Focus
	case "follow":
		return &k.Follow
	case "filter":
		return &k.Filter
	case "reload":
		return &k.Reload
	case "back":
		return &k.Back
	case "quit":
		return &k.Quit
	}
	return nil
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Follow, k.Filter, k.Back, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.Top, k.Bottom},
		{k.Expand, k.Collapse, k.Focus},
		{k.Follow, k.Back, k.Filter, k.Reload, k.Quit},
	}
}
