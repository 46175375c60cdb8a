package markdown

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBuild_Empty(t *testing.T) {
	out := NewParser().Build(Parse(""), "")

	meta := out.Document.Metadata
	if meta.WordCount != 0 {
		t.Errorf("word count: got %d, want 0", meta.WordCount)
	}
	if meta.MaxDepth != 0 {
		t.Errorf("max depth: got %d, want 0", meta.MaxDepth)
	}
	if meta.HeadingCount != 0 {
		t.Errorf("heading count: got %d, want 0", meta.HeadingCount)
	}
	if len(out.Document.Sections) != 0 {
		t.Errorf("got %d sections, want 0", len(out.Document.Sections))
	}
}

func TestBuild_NoHeadings(t *testing.T) {
	out := NewParser().Build(Parse("just some words here"), "notes.md")

	if got := out.Document.Metadata.MaxDepth; got != 0 {
		t.Errorf("max depth: got %d, want 0", got)
	}
	if got := out.Document.Metadata.WordCount; got != 4 {
		t.Errorf("word count: got %d, want 4", got)
	}
	if got := out.Document.Metadata.Source; got != "notes.md" {
		t.Errorf("source: got %q, want %q", got, "notes.md")
	}
}

func TestBuild(t *testing.T) {
	source := `# Guide

Welcome.

## Install Steps

Run it:

` + "```sh\nmake install\n```" + `

## Usage

Use it.
`
	out := NewParser().Build(Parse(source), "guide.md")

	meta := out.Document.Metadata
	if meta.HeadingCount != 3 {
		t.Errorf("heading count: got %d, want 3", meta.HeadingCount)
	}
	if meta.MaxDepth != 2 {
		t.Errorf("max depth: got %d, want 2", meta.MaxDepth)
	}
	if want := len(strings.Fields(source)); meta.WordCount != want {
		t.Errorf("word count: got %d, want %d", meta.WordCount, want)
	}

	if len(out.Document.Sections) != 1 {
		t.Fatalf("got %d root sections, want 1", len(out.Document.Sections))
	}
	root := out.Document.Sections[0]
	if root.Title != "Guide" || root.Level != 1 || root.Position.Line != 2 {
		t.Errorf("root: got %q level %d line %d", root.Title, root.Level, root.Position.Line)
	}
	if len(root.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(root.Children))
	}

	install := root.Children[0]
	if install.Slug != "install-steps" || install.ID != install.Slug {
		t.Errorf("slug: got %q id %q, want %q", install.Slug, install.ID, "install-steps")
	}
	if install.Position.Line != 6 {
		t.Errorf("install line: got %d, want 6", install.Position.Line)
	}
	if want := strings.Index(source, "## Install Steps\n") + len("## Install Steps\n"); install.Position.Offset != want {
		t.Errorf("install offset: got %d, want %d", install.Position.Offset, want)
	}

	var code *Block
	for i := range install.Content.Blocks {
		if install.Content.Blocks[i].Type == BlockCode {
			code = &install.Content.Blocks[i]
		}
	}
	if code == nil {
		t.Fatalf("no code block in %+v", install.Content.Blocks)
	}
	if code.StartLine != 8 || code.EndLine != 10 {
		t.Errorf("code lines: got %d-%d, want 8-10", code.StartLine, code.EndLine)
	}
}

func TestBuild_Frontmatter(t *testing.T) {
	source := "---\ntitle: Notes\ntags: [a]\n---\n\n# Body\n"

	out := NewParser().Build(Parse(source), "")

	fm := out.Document.Metadata.Frontmatter
	if fm["title"] != "Notes" {
		t.Errorf("frontmatter title: got %v, want %q", fm["title"], "Notes")
	}
	if got := out.Document.Metadata.HeadingCount; got != 1 {
		t.Errorf("heading count: got %d, want 1", got)
	}
}

func TestBuild_FrontmatterCommentIsNotASection(t *testing.T) {
	source := "---\n# Notes\ntags: [a]\n---\n\n# Notes\n\nreal body\n"

	out := NewParser().Build(Parse(source), "")

	sections := out.Document.Sections
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	s := sections[0]
	if s.Content.Raw != "real body" {
		t.Errorf("raw: got %q, want %q", s.Content.Raw, "real body")
	}
	if s.Position.Line != 7 || s.Position.Offset != 35 {
		t.Errorf("position: got line %d offset %d, want line 7 offset 35", s.Position.Line, s.Position.Offset)
	}
}

func TestBuild_JSONShape(t *testing.T) {
	out := NewParser().Build(Parse("# A\n\ntext\n"), "")

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{
		`"document":`,
		`"metadata":`,
		`"heading_count":1`,
		`"sections":[`,
		`"slug":"a"`,
		`"position":{"line":2,`,
		`"type":"paragraph"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("json missing %s: %s", want, data)
		}
	}
}

func TestWalk(t *testing.T) {
	out := NewParser().Build(Parse("# A\n## B\n### C\n# D\n"), "")

	var got []string
	Walk(out.Document.Sections, func(s *Section, depth int) bool {
		got = append(got, strings.Repeat(">", depth)+s.Title)
		return true
	})
	if want := "A >B >>C D"; strings.Join(got, " ") != want {
		t.Errorf("got %q, want %q", strings.Join(got, " "), want)
	}

	count := 0
	Walk(out.Document.Sections, func(*Section, int) bool {
		count++
		return count < 2
	})
	if count != 2 {
		t.Errorf("early stop visited %d, want 2", count)
	}
}
