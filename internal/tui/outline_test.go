package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/treemd/internal/markdown"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleHeadings() []markdown.Heading {
	return []markdown.Heading{
		{Level: 1, Text: "Guide", Line: 1},
		{Level: 2, Text: "Install", Line: 3},
		{Level: 3, Text: "From Source", Line: 5},
		{Level: 2, Text: "Usage", Line: 7},
		{Level: 3, Text: "Flags", Line: 9},
	}
}

func newTestOutline() Outline {
	o := NewOutline(DefaultKeyMap())
	o.SetFocused(true)
	o.SetSize(30, 20)
	o.SetHeadings(sampleHeadings())
	return o
}

func TestOutline_GKey_EmptyEntries(t *testing.T) {
	o := Outline{
		keys:    DefaultKeyMap(),
		focused: true,
		height:  20,
		width:   30,
	}

	result, _ := o.Update(runes("G"))
	assert.Equal(t, 0, result.cursor)
}

func TestOutline_Enter_EmptyEntries(t *testing.T) {
	o := Outline{
		keys:    DefaultKeyMap(),
		focused: true,
		height:  20,
		width:   30,
	}

	result, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 0, result.cursor)
	assert.Nil(t, cmd)
}

func TestOutline_Depths(t *testing.T) {
	o := newTestOutline()

	depths := make([]int, len(o.entries))
	for i, e := range o.entries {
		depths[i] = e.depth
	}
	assert.Equal(t, []int{0, 1, 2, 1, 2}, depths)
	assert.True(t, o.entries[0].parent)
	assert.False(t, o.entries[2].parent)
}

func TestOutline_Navigate(t *testing.T) {
	o := newTestOutline()

	o, _ = o.Update(runes("j"))
	o, _ = o.Update(runes("j"))
	assert.Equal(t, "from-source", o.SelectedSlug())

	o, _ = o.Update(runes("G"))
	assert.Equal(t, "flags", o.SelectedSlug())

	// j at the bottom stays put
	o, _ = o.Update(runes("j"))
	assert.Equal(t, "flags", o.SelectedSlug())

	o, _ = o.Update(runes("g"))
	assert.Equal(t, "guide", o.SelectedSlug())
}

func TestOutline_Unfocused_IgnoresKeys(t *testing.T) {
	o := newTestOutline()
	o.SetFocused(false)

	o, _ = o.Update(runes("j"))
	assert.Equal(t, "guide", o.SelectedSlug())
}

func TestOutline_CollapseExpand(t *testing.T) {
	o := newTestOutline()
	o, _ = o.Update(runes("j")) // Install

	o, _ = o.Update(runes("h"))
	require.True(t, o.Collapsed()["install"])
	assert.Len(t, o.entries, 4)

	// h on a collapsed heading moves to its parent.
	o, _ = o.Update(runes("h"))
	assert.Equal(t, "guide", o.SelectedSlug())

	o, _ = o.Update(runes("j"))
	o, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, o.Collapsed()["install"])
	assert.Len(t, o.entries, 5)
}

func TestOutline_EnterOnLeafOpensSection(t *testing.T) {
	o := newTestOutline()
	o.Select("flags")

	_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SectionOpenedMsg{Slug: "flags"}, cmd())
}

func TestOutline_SelectExpandsAncestors(t *testing.T) {
	o := newTestOutline()
	o.SetCollapsed([]string{"guide"})
	require.Len(t, o.entries, 1)

	require.True(t, o.Select("flags"))
	assert.Equal(t, "flags", o.SelectedSlug())
	assert.False(t, o.Collapsed()["guide"])
	assert.Len(t, o.entries, 5)

	assert.False(t, o.Select("missing"))
}

func TestOutline_Filter(t *testing.T) {
	o := newTestOutline()
	o.SetCollapsed([]string{"install"})

	o.SetFilter("SOURCE")
	require.Len(t, o.entries, 1)
	h, idx, ok := o.Selected()
	require.True(t, ok)
	assert.Equal(t, "From Source", h.Text)
	assert.Equal(t, 2, idx)

	o.SetFilter("nothing")
	_, _, ok = o.Selected()
	assert.False(t, ok)
	assert.Contains(t, o.View(), "no matches")

	o.SetFilter("")
	assert.Len(t, o.entries, 4)
}

func TestOutline_ReloadKeepsCollapsed(t *testing.T) {
	o := newTestOutline()
	o.SetCollapsed([]string{"usage"})

	o.SetHeadings(sampleHeadings())
	assert.Len(t, o.entries, 4)
}

func TestOutline_ScrollFollowsCursor(t *testing.T) {
	o := newTestOutline()
	o.SetSize(30, 4) // two rows

	o, _ = o.Update(runes("G"))
	assert.Equal(t, 3, o.offset)

	o, _ = o.Update(runes("g"))
	assert.Equal(t, 0, o.offset)
}
