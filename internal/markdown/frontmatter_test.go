package markdown

import "testing"

func TestExtractFrontmatter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Frontmatter
	}{
		{
			name:  "no frontmatter",
			input: "# Hello\n\nWorld",
			want:  nil,
		},
		{
			name:  "basic frontmatter",
			input: "---\ntitle: My Note\ntags: [go, test]\nstatus: draft\n---\n\n# Content",
			want: &Frontmatter{
				Title:   "My Note",
				Tags:    []string{"go", "test"},
				EndLine: 5,
			},
		},
		{
			name:  "comma separated tags",
			input: "---\ntags: a, b\n---\n",
			want: &Frontmatter{
				Tags:    []string{"a", "b"},
				EndLine: 3,
			},
		},
		{
			name:  "unclosed frontmatter",
			input: "---\ntitle: Unclosed\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFrontmatter([]byte(tt.input))
			if tt.want == nil {
				if got != nil {
					t.Errorf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected non-nil frontmatter")
			}
			if got.Err != nil {
				t.Fatalf("unexpected error: %v", got.Err)
			}
			if got.Title != tt.want.Title {
				t.Errorf("title: got %q, want %q", got.Title, tt.want.Title)
			}
			if got.EndLine != tt.want.EndLine {
				t.Errorf("end line: got %d, want %d", got.EndLine, tt.want.EndLine)
			}
			if len(got.Tags) != len(tt.want.Tags) {
				t.Fatalf("tags: got %v, want %v", got.Tags, tt.want.Tags)
			}
			for i := range got.Tags {
				if got.Tags[i] != tt.want.Tags[i] {
					t.Errorf("tag %d: got %q, want %q", i, got.Tags[i], tt.want.Tags[i])
				}
			}
		})
	}
}

func TestExtractFrontmatter_InvalidYAML(t *testing.T) {
	fm := ExtractFrontmatter([]byte("---\n: : :\n  - [\n---\n# Body\n"))
	if fm == nil {
		t.Fatal("expected frontmatter with error, got nil")
	}
	if fm.Err == nil {
		t.Error("expected decode error")
	}
	if fm.EndLine != 4 {
		t.Errorf("end line: got %d, want 4", fm.EndLine)
	}
}

func TestParse_FrontmatterHasNoHeadings(t *testing.T) {
	doc := Parse("---\ntitle: Test\n---\n\n# Heading 1\n\n## Heading 2\n")
	if doc.Frontmatter == nil || doc.Frontmatter.Title != "Test" {
		t.Fatalf("frontmatter: got %+v", doc.Frontmatter)
	}
	if len(doc.Headings) != 2 {
		t.Fatalf("got %d headings, want 2: %+v", len(doc.Headings), doc.Headings)
	}
	if doc.Headings[0].Line != 5 {
		t.Errorf("first heading line: got %d, want 5", doc.Headings[0].Line)
	}
}
