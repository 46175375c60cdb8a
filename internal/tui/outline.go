package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pfassina/treemd/internal/markdown"
	"github.com/pfassina/treemd/internal/ui"
)

type outlineEntry struct {
	index   int // position in document order
	heading markdown.Heading
	slug    string
	depth   int
	parent  bool
}

// Outline is the heading tree panel.
type Outline struct {
	keys      KeyMap
	all       []outlineEntry
	entries   []outlineEntry
	collapsed map[string]bool
	filter    string
	cursor    int
	offset    int
	width     int
	height    int
	focused   bool
}

func NewOutline(keys KeyMap) Outline {
	return Outline{
		keys:      keys,
		collapsed: make(map[string]bool),
	}
}

// SetHeadings replaces the outline with the headings of a document. Collapsed
// state is kept by slug so a reload does not reopen everything.
func (o *Outline) SetHeadings(headings []markdown.Heading) {
	all := make([]outlineEntry, 0, len(headings))
	var stack []int
	for i, h := range headings {
		for len(stack) > 0 && stack[len(stack)-1] >= h.Level {
			stack = stack[:len(stack)-1]
		}
		all = append(all, outlineEntry{
			index:   i,
			heading: h,
			slug:    markdown.Slugify(h.Text),
			depth:   len(stack),
			parent:  i+1 < len(headings) && headings[i+1].Level > h.Level,
		})
		stack = append(stack, h.Level)
	}
	o.all = all
	o.rebuildVisible()
}

// rebuildVisible filters all entries by collapsed state, or by the filter
// text when one is set.
func (o *Outline) rebuildVisible() {
	entries := make([]outlineEntry, 0, len(o.all))
	needle := strings.ToLower(o.filter)
	hideBelow := 0

	for _, e := range o.all {
		if needle != "" {
			if strings.Contains(strings.ToLower(e.heading.Text), needle) {
				entries = append(entries, e)
			}
			continue
		}
		if hideBelow > 0 {
			if e.heading.Level > hideBelow {
				continue
			}
			hideBelow = 0
		}
		entries = append(entries, e)
		if e.parent && o.collapsed[e.slug] {
			hideBelow = e.heading.Level
		}
	}
	o.entries = entries

	// Clamp cursor
	if o.cursor >= len(o.entries) {
		o.cursor = len(o.entries) - 1
	}
	if o.cursor < 0 {
		o.cursor = 0
	}
	o.scroll()
}

func (o *Outline) scroll() {
	rows := o.rows()
	if o.cursor < o.offset {
		o.offset = o.cursor
	}
	if rows > 0 && o.cursor-o.offset >= rows {
		o.offset = o.cursor - rows + 1
	}
	if o.offset < 0 {
		o.offset = 0
	}
}

func (o Outline) rows() int {
	return max(o.height-2, 0) // title + bottom padding
}

// Selected returns the heading under the cursor.
func (o Outline) Selected() (markdown.Heading, int, bool) {
	if o.cursor >= len(o.entries) {
		return markdown.Heading{}, 0, false
	}
	e := o.entries[o.cursor]
	return e.heading, e.index, true
}

// SelectedSlug returns the slug under the cursor, or "".
func (o Outline) SelectedSlug() string {
	if o.cursor >= len(o.entries) {
		return ""
	}
	return o.entries[o.cursor].slug
}

// Select moves the cursor to the first heading with slug, expanding its
// ancestors and dropping a filter that hides it.
func (o *Outline) Select(slug string) bool {
	pos := -1
	for i, e := range o.all {
		if e.slug == slug {
			pos = i
			break
		}
	}
	if pos < 0 {
		return false
	}

	level := o.all[pos].heading.Level
	for i := pos - 1; i >= 0 && level > 1; i-- {
		if o.all[i].heading.Level < level {
			delete(o.collapsed, o.all[i].slug)
			level = o.all[i].heading.Level
		}
	}
	if o.filter != "" && !strings.Contains(strings.ToLower(o.all[pos].heading.Text), strings.ToLower(o.filter)) {
		o.filter = ""
	}
	o.rebuildVisible()

	for i, e := range o.entries {
		if e.index == o.all[pos].index {
			o.cursor = i
			break
		}
	}
	o.scroll()
	return true
}

// SetFilter narrows the outline to headings containing text.
func (o *Outline) SetFilter(text string) {
	o.filter = text
	o.cursor = 0
	o.offset = 0
	o.rebuildVisible()
}

func (o Outline) Filter() string {
	return o.filter
}

// Collapsed returns the set of collapsed slugs.
func (o Outline) Collapsed() map[string]bool {
	return o.collapsed
}

// SetCollapsed restores collapsed slugs.
func (o *Outline) SetCollapsed(slugs []string) {
	o.collapsed = make(map[string]bool, len(slugs))
	for _, s := range slugs {
		o.collapsed[s] = true
	}
	o.rebuildVisible()
}

func (o Outline) Init() tea.Cmd {
	return nil
}

func (o Outline) Update(msg tea.Msg) (Outline, tea.Cmd) {
	if !o.focused {
		return o, nil
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch {
	case key.Matches(km, o.keys.Down):
		if o.cursor < len(o.entries)-1 {
			o.cursor++
			o.scroll()
		}
	case key.Matches(km, o.keys.Up):
		if o.cursor > 0 {
			o.cursor--
			o.scroll()
		}
	case key.Matches(km, o.keys.Top):
		o.cursor = 0
		o.offset = 0
	case key.Matches(km, o.keys.Bottom):
		if len(o.entries) == 0 {
			break
		}
		o.cursor = len(o.entries) - 1
		o.scroll()
	case key.Matches(km, o.keys.Expand):
		if o.cursor >= len(o.entries) {
			break
		}
		e := o.entries[o.cursor]
		if e.parent && o.collapsed[e.slug] {
			delete(o.collapsed, e.slug)
			o.rebuildVisible()
			break
		}
		return o, func() tea.Msg {
			return SectionOpenedMsg{Slug: e.slug}
		}
	case key.Matches(km, o.keys.Collapse):
		if o.cursor >= len(o.entries) {
			break
		}
		e := o.entries[o.cursor]
		if e.parent && !o.collapsed[e.slug] && o.filter == "" {
			o.collapsed[e.slug] = true
			o.rebuildVisible()
			break
		}
		// Otherwise jump to the parent heading.
		for i := o.cursor - 1; i >= 0; i-- {
			if o.entries[i].heading.Level < e.heading.Level {
				o.cursor = i
				o.scroll()
				break
			}
		}
	}

	return o, nil
}

func (o Outline) View() string {
	if o.width == 0 || o.height == 0 {
		return ""
	}

	var titleStyle lipgloss.Style
	if o.focused {
		titleStyle = ui.TitleStyle.
			Underline(true).
			Padding(0, 1)
	} else {
		titleStyle = ui.DimText.
			Bold(true).
			Padding(0, 1)
	}

	var b strings.Builder

	title := "Outline"
	if o.filter != "" {
		title += " /" + o.filter
	}
	b.WriteString(titleStyle.Render(ansi.Truncate(title, max(o.width-4, 1), "…")))
	b.WriteByte('\n')

	if len(o.entries) == 0 {
		msg := "no headings"
		if o.filter != "" {
			msg = "no matches"
		}
		b.WriteString(ui.DimText.Render("  " + msg))
		b.WriteByte('\n')
		return b.String()
	}

	inner := max(o.width-2, 1)
	for i := o.offset; i < len(o.entries) && i-o.offset < o.rows(); i++ {
		e := o.entries[i]
		depth := e.depth
		if o.filter != "" {
			depth = 0
		}
		indent := strings.Repeat("  ", depth)
		icon := "  "
		if e.parent && o.filter == "" {
			if o.collapsed[e.slug] {
				icon = "▸ "
			} else {
				icon = "▾ "
			}
		}

		line := ansi.Truncate(indent+icon+e.heading.Text, inner, "…")
		if pad := inner - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}

		if i == o.cursor && o.focused {
			b.WriteString(ui.SelectedItem.Render(line))
		} else if i == o.cursor {
			b.WriteString(ui.NormalItem.Bold(true).Render(line))
		} else {
			b.WriteString(ui.Level(e.heading.Level).Render(line))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func (o *Outline) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.scroll()
}

func (o *Outline) SetFocused(focused bool) {
	o.focused = focused
}
