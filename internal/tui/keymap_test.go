package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/pfassina/treemd/internal/config"
)

func TestNewKeyMap_Defaults(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, key.Matches(runes("j"), km.Down))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyDown}, km.Down))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, km.Focus))
	assert.False(t, key.Matches(runes("x"), km.Quit))
	assert.Equal(t, "follow link", km.Follow.Help().Desc)
}

func TestNewKeyMap_Overrides(t *testing.T) {
	binds := []config.Keybind{
		{Keys: []string{"Q"}, Action: "quit"},
		{Keys: []string{"x"}, Action: "nonsense"},
		{Keys: nil, Action: "down"},
	}
	km := NewKeyMap(binds)

	assert.True(t, key.Matches(runes("Q"), km.Quit))
	assert.False(t, key.Matches(runes("q"), km.Quit))
	// Unbound actions never match.
	assert.False(t, key.Matches(runes("j"), km.Down))
}
