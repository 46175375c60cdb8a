package tui

import (
	"github.com/pfassina/treemd/internal/markdown"
	"github.com/pfassina/treemd/internal/watcher"
)

// documentLoadedMsg carries a freshly parsed file. slug, when set, is the
// heading to select once the document is shown.
type documentLoadedMsg struct {
	path   string
	doc    *markdown.Document
	output markdown.DocumentOutput
	slug   string
	reload bool
	push   bool
	err    error
}

// fileChangedMsg is sent when the watched file settles after a change.
type fileChangedMsg struct {
	event watcher.Event
}

// SectionOpenedMsg is sent when the user opens a leaf heading in the outline.
type SectionOpenedMsg struct {
	Slug string
}
