package ssh

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveSessionPath(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "docs"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"README.md", "docs/guide.md", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("# x\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default", nil, "README.md"},
		{"empty arg", []string{""}, "README.md"},
		{"nested", []string{"docs/guide.md"}, "docs/guide.md"},
		{"escape is clamped", []string{"../../docs/guide.md"}, "docs/guide.md"},
		{"absolute is rooted", []string{"/README.md"}, "README.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSessionPath(root, tt.args)
			if err != nil {
				t.Fatalf("ResolveSessionPath: %v", err)
			}
			if want := filepath.Join(root, tt.want); got != want {
				t.Errorf("got %q, want %q", got, want)
			}
		})
	}
}

func TestResolveSessionPath_Rejects(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "dir.md"), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := ResolveSessionPath(root, []string{"notes.txt"}); !errors.Is(err, ErrNotDocument) {
		t.Errorf("txt: err = %v, want ErrNotDocument", err)
	}
	if _, err := ResolveSessionPath(root, []string{"dir.md"}); !errors.Is(err, ErrNotDocument) {
		t.Errorf("dir: err = %v, want ErrNotDocument", err)
	}
	if _, err := ResolveSessionPath(root, []string{"missing.md"}); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing: err = %v, want ErrNotExist", err)
	}
}
