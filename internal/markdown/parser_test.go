package markdown

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("# One\n\n## Two\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(doc.Headings) != 2 {
		t.Fatalf("got %d headings, want 2", len(doc.Headings))
	}
	if tree := doc.Tree(); len(tree) != 1 || len(tree[0].Children) != 1 {
		t.Errorf("tree: got %+v, want one root with one child", tree)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.md"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want ErrNotExist", err)
	}
}

type fakeTokenizer struct {
	events []Event
}

func (f fakeTokenizer) Tokenize([]byte) []Event { return f.events }

func TestWithTokenizer(t *testing.T) {
	p := NewParser(WithTokenizer(fakeTokenizer{events: []Event{
		{Kind: EventHeading, Level: 2, Line: 4},
		{Kind: EventText, Text: "From "},
		{Kind: EventInlineCode, Text: "fake"},
		{Kind: EventHeading, End: true},
	}}))

	doc := p.Parse("ignored")

	if len(doc.Headings) != 1 {
		t.Fatalf("got %d headings, want 1", len(doc.Headings))
	}
	want := Heading{Level: 2, Text: "From fake", Line: 5}
	if doc.Headings[0] != want {
		t.Errorf("got %+v, want %+v", doc.Headings[0], want)
	}
}
