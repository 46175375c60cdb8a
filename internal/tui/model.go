// Package tui is the interactive outline navigator.
package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/treemd/internal/config"
	"github.com/pfassina/treemd/internal/logger"
	"github.com/pfassina/treemd/internal/markdown"
	"github.com/pfassina/treemd/internal/session"
	"github.com/pfassina/treemd/internal/ui"
	"github.com/pfassina/treemd/internal/watcher"
)

type focusedPane int

const (
	focusOutline focusedPane = iota
	focusContent
)

// Options configures a Model. Zero fields fall back to defaults; a nil
// Store disables session persistence.
type Options struct {
	Config config.Config
	Logger *logger.Logger
	Store  *session.Store
	Parser *markdown.Parser
	// Style is the glamour standard style ("dark", "light", "notty").
	Style string
	// Root, when set, confines link following to files beneath it.
	Root string
}

type historyEntry struct {
	path string
	slug string
}

// Model is the navigator's root bubbletea model.
type Model struct {
	cfg     config.Config
	log     *logger.Logger
	parser  *markdown.Parser
	store   *session.Store
	state   session.State
	root    string
	keys    KeyMap
	outline Outline
	content Content
	status  Status
	help    help.Model
	filter  textinput.Model

	path     string
	doc      *markdown.Document
	sections []markdown.Section // document order, parallel to doc.Headings
	shown    int
	history  []historyEntry

	filtering bool
	following bool
	followBuf string

	watcher *watcher.Watcher
	changes chan watcher.Event

	width   int
	height  int
	focused focusedPane
}

func New(path string, opts Options) *Model {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if opts.Root != "" {
		if abs, err := filepath.Abs(opts.Root); err == nil {
			opts.Root = abs
		}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Parser == nil {
		opts.Parser = markdown.NewParser()
	}
	if opts.Style == "" {
		opts.Style = "dark"
	}
	if len(opts.Config.Keybinds) == 0 {
		opts.Config.Keybinds = config.DefaultKeybinds()
	}
	if opts.Config.OutlineWidth <= 0 {
		opts.Config.OutlineWidth = config.Default().OutlineWidth
	}

	state := session.Default()
	if opts.Store != nil {
		loaded, err := opts.Store.Load()
		if err != nil {
			opts.Logger.Warn("session load failed", "path", opts.Store.Path(), "error", err)
		}
		state = loaded
	}

	keys := NewKeyMap(opts.Config.Keybinds)

	fi := textinput.New()
	fi.Prompt = "/"
	fi.Placeholder = "filter headings"

	m := &Model{
		cfg:     opts.Config,
		log:     opts.Logger,
		parser:  opts.Parser,
		store:   opts.Store,
		state:   state,
		root:    opts.Root,
		keys:    keys,
		outline: NewOutline(keys),
		content: NewContent(keys, opts.Style),
		status:  NewStatus(filepath.Base(path)),
		help:    help.New(),
		filter:  fi,
		path:    path,
		shown:   -1,
		changes: make(chan watcher.Event, 1),
	}
	m.setFocus(focusOutline)
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.load(m.path, "", false, false)
}

// load parses path off the update loop. anchor names the heading to select
// afterwards; push records the current position in the back history.
func (m *Model) load(path, anchor string, reload, push bool) tea.Cmd {
	parser, log := m.parser, m.log
	return func() tea.Msg {
		start := time.Now()
		doc, err := parser.ParseFile(path)
		if err != nil {
			return documentLoadedMsg{path: path, err: err}
		}
		out := parser.Build(doc, path)
		log.DocumentParsed(path, len(doc.Headings), time.Since(start))
		return documentLoadedMsg{
			path:   path,
			doc:    doc,
			output: out,
			slug:   anchor,
			reload: reload,
			push:   push,
		}
	}
}

func waitForChange(ch <-chan watcher.Event) tea.Cmd {
	return func() tea.Msg {
		return fileChangedMsg{event: <-ch}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Some terminals send transient 0x0 sizes during live resizes; ignore them.
		if msg.Width <= 0 || msg.Height <= 0 {
			return m, nil
		}
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case documentLoadedMsg:
		return m, m.handleLoaded(msg)

	case fileChangedMsg:
		next := waitForChange(m.changes)
		if msg.event.Path != m.path {
			return m, next
		}
		if msg.event.Removed {
			m.status.SetError("file removed: " + filepath.Base(m.path))
			return m, next
		}
		m.log.Reloaded(m.path)
		return m, tea.Batch(next, m.load(m.path, m.outline.SelectedSlug(), true, false))

	case SectionOpenedMsg:
		m.setFocus(focusContent)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Close()
			return m, tea.Quit
		}
		if m.filtering {
			return m, m.handleFilterKey(msg)
		}
		if m.following {
			return m, m.handleFollowKey(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		if m.focused == focusOutline {
			m.setFocus(focusContent)
		} else {
			m.setFocus(focusOutline)
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.SetValue(m.outline.Filter())
		m.status.SetMode("FILTER")
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.Follow):
		if len(m.content.Links()) == 0 {
			m.status.SetMessage("no links in this section")
			return m, nil
		}
		m.following = true
		m.followBuf = ""
		m.status.SetMode("FOLLOW")
		m.status.SetMessage(fmt.Sprintf("link number (1-%d)", len(m.content.Links())))
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.load(m.path, m.outline.SelectedSlug(), true, false)

	case key.Matches(msg, m.keys.Back):
		return m, m.goBack()
	}

	if m.focused == focusContent {
		if n, ok := digit(msg); ok && n > 0 {
			return m, m.follow(n)
		}
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.outline, cmd = m.outline.Update(msg)
	m.showSelected(false)
	return m, cmd
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.outline.SetFilter("")
		m.endFilter()
		m.showSelected(false)
		return nil
	case tea.KeyEnter:
		m.endFilter()
		return nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.outline.SetFilter(m.filter.Value())
	m.showSelected(false)
	return cmd
}

func (m *Model) endFilter() {
	m.filtering = false
	m.filter.Blur()
	m.setFocus(m.focused)
}

// handleFollowKey collects a link number. It follows as soon as no further
// digit could name another link.
func (m *Model) handleFollowKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.endFollow()
		m.status.Clear()
		return nil
	case tea.KeyBackspace:
		if m.followBuf != "" {
			m.followBuf = m.followBuf[:len(m.followBuf)-1]
		}
		return nil
	case tea.KeyEnter:
		n, err := strconv.Atoi(m.followBuf)
		m.endFollow()
		if err != nil {
			m.status.Clear()
			return nil
		}
		return m.follow(n)
	}

	d, ok := digit(msg)
	if !ok {
		return nil
	}
	m.followBuf += strconv.Itoa(d)
	n, _ := strconv.Atoi(m.followBuf)
	m.status.SetMessage("follow " + m.followBuf)
	if n*10 > len(m.content.Links()) {
		m.endFollow()
		return m.follow(n)
	}
	return nil
}

func (m *Model) endFollow() {
	m.following = false
	m.followBuf = ""
	m.setFocus(m.focused)
}

func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '0' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// follow jumps to link n of the shown section.
func (m *Model) follow(n int) tea.Cmd {
	link, ok := m.content.Link(n)
	if !ok {
		m.status.SetError(fmt.Sprintf("no link %d", n))
		return nil
	}

	switch link.Target.Kind {
	case markdown.LinkAnchor:
		m.selectAnchor(link.Target.Anchor)
		return nil

	case markdown.LinkRelativeFile, markdown.LinkWiki:
		target := markdown.ResolvePath(m.path, link.Target)
		anchor := markdown.JumpAnchor(link.Target)
		if target == "" {
			m.status.SetError("cannot resolve " + link.Target.String())
			return nil
		}
		if !m.allowed(target) {
			m.status.SetError("outside " + m.root + ": " + link.Target.String())
			return nil
		}
		if target == m.path {
			if anchor != "" {
				m.selectAnchor(anchor)
			}
			return nil
		}
		return m.load(target, anchor, false, true)

	default:
		m.log.Info("external link", "url", link.Target.URL)
		m.status.SetMessage("external: " + link.Target.URL)
		return nil
	}
}

func (m *Model) allowed(path string) bool {
	if m.root == "" {
		return true
	}
	rel, err := filepath.Rel(m.root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (m *Model) selectAnchor(anchor string) {
	if m.doc == nil {
		return
	}
	h, ok := markdown.FindSlug(m.doc.Headings, anchor)
	if !ok {
		m.status.SetError("no heading #" + anchor)
		return
	}
	m.outline.Select(markdown.Slugify(h.Text))
	m.showSelected(false)
}

func (m *Model) goBack() tea.Cmd {
	if len(m.history) == 0 {
		m.status.SetMessage("no previous location")
		return nil
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]

	if prev.path == m.path {
		m.outline.Select(prev.slug)
		m.showSelected(false)
		return nil
	}
	return m.load(prev.path, prev.slug, false, false)
}

func (m *Model) handleLoaded(msg documentLoadedMsg) tea.Cmd {
	if msg.err != nil {
		m.log.FileError(msg.path, msg.err)
		m.status.SetError(msg.err.Error())
		return nil
	}

	switching := msg.path != m.path || m.doc == nil
	if msg.path != m.path {
		m.remember()
		if msg.push {
			m.history = append(m.history, historyEntry{path: m.path, slug: m.outline.SelectedSlug()})
		}
	}

	m.path = msg.path
	m.doc = msg.doc
	m.sections = m.sections[:0]
	markdown.Walk(msg.output.Document.Sections, func(s *markdown.Section, _ int) bool {
		m.sections = append(m.sections, *s)
		return true
	})

	fileState := m.state.File(m.path)
	if switching {
		m.outline.SetCollapsed(fileState.Collapsed)
	}
	m.outline.SetHeadings(m.doc.Headings)

	slug := fileState.LastSlug
	if msg.slug != "" {
		slug = msg.slug
		if h, ok := markdown.FindSlug(m.doc.Headings, msg.slug); ok {
			slug = markdown.Slugify(h.Text)
		}
	}
	if slug != "" {
		m.outline.Select(slug)
	}

	m.status.SetFile(filepath.Base(m.path))
	if msg.reload {
		m.status.SetMessage("reloaded")
	} else {
		m.status.Clear()
	}
	m.showSelected(true)

	if switching {
		return m.watch()
	}
	return nil
}

// watch starts watching the current file, replacing any earlier watcher.
func (m *Model) watch() tea.Cmd {
	if !m.cfg.Watch {
		return nil
	}
	first := m.watcher == nil
	if m.watcher != nil {
		_ = m.watcher.Stop()
		m.watcher = nil
	}

	ch := m.changes
	w, err := watcher.NewFile(m.path, func(ev watcher.Event) {
		select {
		case ch <- ev:
		default:
			// A change is already pending; it will reload the latest content.
		}
	},
		watcher.WithDebounce(m.cfg.Debounce),
		watcher.WithErrorHandler(func(err error) {
			m.log.Error("watch failed", "path", m.path, "error", err)
		}),
	)
	if err != nil {
		m.log.FileError(m.path, err)
		m.status.SetError("watch: " + err.Error())
		return nil
	}
	m.watcher = w
	go w.Start()

	if first {
		return waitForChange(m.changes)
	}
	return nil
}

// showSelected renders the section under the outline cursor. Documents
// without headings show their whole content.
func (m *Model) showSelected(force bool) {
	if m.doc == nil {
		return
	}
	h, idx, ok := m.outline.Selected()
	if !ok {
		if len(m.doc.Headings) == 0 && (force || m.shown != -1) {
			m.content.SetSection(0, "", m.doc.Content)
			m.status.SetSection("")
			m.shown = -1
		}
		return
	}
	if idx == m.shown && !force {
		return
	}
	if idx < len(m.sections) {
		s := m.sections[idx]
		m.content.SetSection(s.Level, s.Title, s.Content.Raw)
	}
	m.status.SetSection(h.Text)
	m.shown = idx
}

// remember records the position in the current file for the session.
func (m *Model) remember() {
	if m.doc == nil {
		return
	}
	m.state.Remember(m.path, m.outline.SelectedSlug(), m.outline.Collapsed())
}

// Close saves the session and stops the watcher.
func (m *Model) Close() {
	m.remember()
	if m.store != nil {
		if err := m.store.Save(m.state); err != nil {
			m.log.Warn("session save failed", "path", m.store.Path(), "error", err)
		}
	}
	if m.watcher != nil {
		_ = m.watcher.Stop()
		m.watcher = nil
	}
}

// Path returns the file being shown.
func (m *Model) Path() string {
	return m.path
}

func (m *Model) setFocus(p focusedPane) {
	m.focused = p
	m.outline.SetFocused(p == focusOutline)
	m.content.SetFocused(p == focusContent)
	if p == focusOutline {
		m.status.SetMode("OUTLINE")
	} else {
		m.status.SetMode("CONTENT")
	}
}

func (m *Model) updateLayout() {
	l := ComputeLayout(m.width, m.height, m.cfg.OutlineWidth)
	m.outline.SetSize(l.OutlineWidth, max(l.Height-2, 0))
	m.content.SetSize(l.ContentWidth, l.Height)
	m.status.SetWidth(m.width)
	m.help.Width = m.width
	m.filter.Width = max(m.width-4, 1)
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := ComputeLayout(m.width, m.height, m.cfg.OutlineWidth)

	outlineStyle, contentStyle := ui.PanelBorder, ui.PanelBorder
	if m.focused == focusOutline {
		outlineStyle = ui.FocusedBorder
	} else {
		contentStyle = ui.FocusedBorder
	}

	var panes []string
	if l.OutlineWidth > 2 {
		panes = append(panes, outlineStyle.
			Width(l.OutlineWidth-2).
			Height(max(l.Height-2, 0)).
			Render(m.outline.View()))
	}
	panes = append(panes, contentStyle.
		Width(max(l.ContentWidth-2, 0)).
		Height(max(l.Height-2, 0)).
		Render(m.content.View()))

	bottom := m.help.View(m.keys)
	if m.filtering {
		bottom = m.filter.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, panes...),
		m.status.View(),
		bottom,
	)
}

// Run starts the navigator on path and blocks until the user quits.
func Run(path string, opts Options) error {
	m := New(path, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	m.Close()
	if err != nil {
		return fmt.Errorf("run navigator: %w", err)
	}
	return nil
}
