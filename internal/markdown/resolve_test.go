package markdown

import (
	"path/filepath"
	"testing"
)

func TestResolveWikiLinkTarget(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"note", "note.md"},
		{"folder/note", "folder/note.md"},
		{"note.md", "note.md"},
		{"note#section", "note.md"},
		{"  spaced  ", "spaced.md"},
		{"", ""},
		{"#only-section", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ResolveWikiLinkTarget(tt.input); got != tt.want {
				t.Errorf("ResolveWikiLinkTarget(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNoteNameFromPath(t *testing.T) {
	if got := NoteNameFromPath("folder/my-note.md"); got != "my-note" {
		t.Errorf("got %q, want %q", got, "my-note")
	}
}

func TestResolvePath(t *testing.T) {
	from := filepath.Join("docs", "guide", "index.md")

	tests := []struct {
		name   string
		target LinkTarget
		want   string
	}{
		{"relative", LinkTarget{Kind: LinkRelativeFile, Path: "../api.md", Anchor: "x"}, filepath.Join("docs", "api.md")},
		{"sibling", LinkTarget{Kind: LinkRelativeFile, Path: "setup.md"}, filepath.Join("docs", "guide", "setup.md")},
		{"wikilink", LinkTarget{Kind: LinkWiki, Target: "faq#top"}, filepath.Join("docs", "guide", "faq.md")},
		{"anchor", LinkTarget{Kind: LinkAnchor, Anchor: "x"}, ""},
		{"external", LinkTarget{Kind: LinkExternal, URL: "https://go.dev"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePath(from, tt.target); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJumpAnchor(t *testing.T) {
	tests := []struct {
		target LinkTarget
		want   string
	}{
		{LinkTarget{Kind: LinkAnchor, Anchor: "usage"}, "usage"},
		{LinkTarget{Kind: LinkRelativeFile, Path: "a.md", Anchor: "b"}, "b"},
		{LinkTarget{Kind: LinkWiki, Target: "Note#Getting Started"}, "getting-started"},
		{LinkTarget{Kind: LinkWiki, Target: "Note"}, ""},
		{LinkTarget{Kind: LinkExternal, URL: "https://x#y"}, ""},
	}
	for _, tt := range tests {
		if got := JumpAnchor(tt.target); got != tt.want {
			t.Errorf("JumpAnchor(%v) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestFindSlug(t *testing.T) {
	headings := Parse("# Intro\n\n## Install Steps\n").Headings

	h, ok := FindSlug(headings, "Install-Steps")
	if !ok || h.Text != "Install Steps" {
		t.Errorf("got %+v %v, want Install Steps", h, ok)
	}
	if _, ok := FindSlug(headings, "missing"); ok {
		t.Error("found a heading for a missing anchor")
	}
}
