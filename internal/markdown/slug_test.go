package markdown

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"My Note! (Draft)", "my-note-draft"},
		{"2024-01-01 Daily", "2024-01-01-daily"},
		{"a   b--c", "a-b-c"},
		{"  -Leading and trailing- ", "leading-and-trailing"},
		{"Café Über", "café-über"},
		{"", ""},
		{"Already-Slugged", "already-slugged"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Slugify(tt.input)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Hello, World!", "a   b--c", "Über -- Straße", "API v2.0 (beta)", "--"}
	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify(Slugify(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		line   string
		want   int
		wantOK bool
	}{
		{"# Title", 1, true},
		{"## Section", 2, true},
		{"### Subsection", 3, true},
		{"#### Level 4", 4, true},
		{"##### Level 5", 5, true},
		{"###### Six", 6, true},
		{"  ## Indented", 2, true},
		{"#\tTab", 1, true},
		{"####### Seven", 0, false},
		{"#NoSpace", 0, false},
		{"not a heading", 0, false},
		{"#", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := HeadingLevel(tt.line)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("HeadingLevel(%q) = (%d, %v), want (%d, %v)", tt.line, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStripInline(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"**bold**", "bold"},
		{"*italic*", "italic"},
		{"`code`", "code"},
		{"~~strike~~", "strike"},
		{"**turbocli-parser** (850 LOC)", "turbocli-parser (850 LOC)"},
	}

	for _, tt := range tests {
		if got := StripInline(tt.input); got != tt.want {
			t.Errorf("StripInline(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
