package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestIndexer(t *testing.T) (*Indexer, *DB, string) {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	root := t.TempDir()
	return NewIndexer(db, root, nil), db, root
}

func TestIndexAll(t *testing.T) {
	idx, db, root := newTestIndexer(t)

	writeFile(t, root, "guide.md", `---
title: User Guide
tags: [docs]
---

# Guide

## Installation

Run the installer twice.

See [[faq#Common Errors|the FAQ]] and [setup](setup/index.md#linux).
`)
	writeFile(t, root, "faq.md", "# FAQ\n\n## Common Errors\n\nCheck permissions.\n")
	writeFile(t, root, "setup/index.md", "# Setup\n\n## Linux\n\nBack to [guide](../guide.md).\n")
	writeFile(t, root, ".hidden/secret.md", "# Secret\n")
	writeFile(t, root, "notes.txt", "# Not markdown\n")

	stats, err := idx.IndexAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Indexed != 3 || stats.Failed != 0 {
		t.Errorf("stats: got %+v, want 3 indexed", stats)
	}

	docs, err := db.ListDocuments(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3: %+v", len(docs), docs)
	}
	for _, d := range docs {
		if d.Path == "guide.md" && d.Title != "User Guide" {
			t.Errorf("guide title: got %q, want frontmatter title", d.Title)
		}
		if d.Path == "faq.md" && d.Title != "FAQ" {
			t.Errorf("faq title: got %q, want first heading", d.Title)
		}
	}

	headings, err := db.SearchHeadings("install", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(headings) != 1 || headings[0].Slug != "installation" || headings[0].Line != 8 {
		t.Errorf("headings: got %+v", headings)
	}

	sections, err := db.SearchSections("installer", 10)
	if err != nil {
		t.Fatal(err)
	}
	// The enclosing "Guide" section contains the text as well.
	found := false
	for _, s := range sections {
		if s.Title == "Installation" && s.Path == "guide.md" {
			found = true
		}
	}
	if len(sections) != 2 || !found {
		t.Errorf("sections: got %+v", sections)
	}

	backlinks, err := db.Backlinks("faq.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(backlinks) != 1 {
		t.Fatalf("faq backlinks: got %d, want 1", len(backlinks))
	}
	if b := backlinks[0]; b.SourcePath != "guide.md" || b.Kind != "wikilink" || b.Anchor != "common-errors" || b.Text != "the FAQ" {
		t.Errorf("faq backlink: got %+v", b)
	}

	backlinks, _ = db.Backlinks("guide.md")
	if len(backlinks) != 1 || backlinks[0].SourcePath != "setup/index.md" {
		t.Errorf("guide backlinks: got %+v", backlinks)
	}
}

func TestIndexFile_SkipsUnchanged(t *testing.T) {
	idx, _, root := newTestIndexer(t)
	path := writeFile(t, root, "a.md", "# A\n")

	changed, err := idx.IndexFile(path)
	if err != nil || !changed {
		t.Fatalf("first index: changed=%v err=%v", changed, err)
	}
	changed, err = idx.IndexFile(path)
	if err != nil || changed {
		t.Errorf("second index: changed=%v err=%v, want unchanged", changed, err)
	}

	writeFile(t, root, "a.md", "# A\n\n## B\n")
	changed, err = idx.IndexFile(path)
	if err != nil || !changed {
		t.Errorf("after edit: changed=%v err=%v", changed, err)
	}
}

func TestIndexFile_ReplacesDerivedRows(t *testing.T) {
	idx, db, root := newTestIndexer(t)
	path := writeFile(t, root, "a.md", "# Old Title\n\nold words\n")
	if _, err := idx.IndexFile(path); err != nil {
		t.Fatal(err)
	}

	writeFile(t, root, "a.md", "# New Title\n\nnew words\n")
	if _, err := idx.IndexFile(path); err != nil {
		t.Fatal(err)
	}

	if got, _ := db.SearchHeadings("Old", 10); len(got) != 0 {
		t.Errorf("stale headings: %+v", got)
	}
	if got, _ := db.SearchSections("old", 10); len(got) != 0 {
		t.Errorf("stale sections: %+v", got)
	}
	if got, _ := db.SearchSections("new", 10); len(got) != 1 {
		t.Errorf("new sections: got %d, want 1", len(got))
	}
}

func TestRemoveFile(t *testing.T) {
	idx, db, root := newTestIndexer(t)
	path := writeFile(t, root, "a.md", "# A\n")
	if _, err := idx.IndexFile(path); err != nil {
		t.Fatal(err)
	}

	if err := idx.RemoveFile(path); err != nil {
		t.Fatal(err)
	}
	docs, _ := db.ListDocuments(0)
	if len(docs) != 0 {
		t.Errorf("got %+v, want no documents", docs)
	}
}

func TestIndexAll_Cancelled(t *testing.T) {
	idx, _, root := newTestIndexer(t)
	writeFile(t, root, "a.md", "# A\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := idx.IndexAll(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestTitleFromPath(t *testing.T) {
	if got := titleFromPath("dir/my_great-note.md"); got != "my great note" {
		t.Errorf("got %q, want %q", got, "my great note")
	}
}
