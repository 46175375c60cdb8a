package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "info")
	if err != nil {
		t.Fatal(err)
	}

	l.Skipped("a.md", "unchanged")
	if buf.Len() != 0 {
		t.Errorf("debug message written at info level: %q", buf.String())
	}

	l.Reloaded("a.md")
	if !strings.Contains(buf.String(), "document reloaded") {
		t.Errorf("got %q, want reload message", buf.String())
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestFileError(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "")
	if err != nil {
		t.Fatal(err)
	}

	l.FileError("b.md", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"file error", "b.md", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
