package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/pfassina/treemd/internal/markdown"
	"github.com/pfassina/treemd/internal/ui"
)

// Content shows the selected section rendered with glamour, followed by a
// numbered list of its links.
type Content struct {
	keys     KeyMap
	viewport viewport.Model
	style    string
	renderer *glamour.TermRenderer
	wrap     int
	markdown string
	links    []markdown.Link
	width    int
	height   int
	focused  bool
}

func NewContent(keys KeyMap, style string) Content {
	return Content{
		keys:     keys,
		viewport: viewport.New(0, 0),
		style:    style,
	}
}

// SetSection shows a heading and its raw section body. A level of zero
// shows body alone, which is how documents without headings appear.
func (c *Content) SetSection(level int, title, body string) {
	var b strings.Builder
	if level > 0 {
		b.WriteString(strings.Repeat("#", level))
		b.WriteByte(' ')
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	b.WriteString(body)

	c.markdown = b.String()
	c.links = markdown.ExtractLinks(body)
	c.refresh()
	c.viewport.GotoTop()
}

// Links returns the links of the shown section in display order.
func (c Content) Links() []markdown.Link {
	return c.links
}

// Link returns the 1-based link n.
func (c Content) Link(n int) (markdown.Link, bool) {
	if n < 1 || n > len(c.links) {
		return markdown.Link{}, false
	}
	return c.links[n-1], true
}

func (c *Content) refresh() {
	rendered := c.render(c.markdown)
	if len(c.links) > 0 {
		rendered += "\n" + c.renderLinks()
	}
	c.viewport.SetContent(rendered)
}

// render falls back to the raw text when glamour fails, so a rendering bug
// never hides the document.
func (c *Content) render(md string) string {
	if strings.TrimSpace(md) == "" {
		return ui.DimText.Render("(empty section)")
	}

	wrap := max(c.width-4, 20)
	if c.renderer == nil || c.wrap != wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(c.style),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return md
		}
		c.renderer = r
		c.wrap = wrap
	}

	out, err := c.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (c Content) renderLinks() string {
	var b strings.Builder
	b.WriteString(ui.SubtitleStyle.Render("  Links"))
	b.WriteByte('\n')
	for i, l := range c.links {
		fmt.Fprintf(&b, "  %s %s %s\n",
			ui.TitleStyle.Render(fmt.Sprintf("[%d]", i+1)),
			ui.LinkText.Render(l.Text),
			ui.DimText.Render("→ "+l.Target.String()),
		)
	}
	return b.String()
}

func (c Content) Update(msg tea.Msg) (Content, tea.Cmd) {
	if !c.focused {
		return c, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, c.keys.Down):
			c.viewport.ScrollDown(1)
			return c, nil
		case key.Matches(km, c.keys.Up):
			c.viewport.ScrollUp(1)
			return c, nil
		case key.Matches(km, c.keys.Top):
			c.viewport.GotoTop()
			return c, nil
		case key.Matches(km, c.keys.Bottom):
			c.viewport.GotoBottom()
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

func (c Content) View() string {
	if c.width == 0 || c.height == 0 {
		return ""
	}
	return c.viewport.View()
}

func (c *Content) SetSize(width, height int) {
	changed := width != c.width
	c.width = width
	c.height = height
	c.viewport.Width = max(width-2, 0)
	c.viewport.Height = max(height-2, 0)
	if changed && c.markdown != "" {
		c.refresh()
	}
}

func (c *Content) SetFocused(focused bool) {
	c.focused = focused
}
