package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfassina/treemd/internal/markdown"
)

func TestFilterText(t *testing.T) {
	headings := markdown.Parse(doc).Headings

	got := FilterText(headings, "US")

	require.Len(t, got, 1)
	assert.Equal(t, "Usage", got[0].Text)
	assert.Empty(t, FilterText(headings, "nothing"))
}

func TestFilterLevel(t *testing.T) {
	headings := markdown.Parse(doc).Headings

	got, err := FilterLevel(headings, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	for _, bad := range []int{0, 7, -1} {
		_, err := FilterLevel(headings, bad)
		assert.ErrorIs(t, err, ErrInvalidLevel, "level %d", bad)
	}
}

func TestFindSection(t *testing.T) {
	out := markdown.Build(markdown.Parse(doc), "")

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"exact title", "Usage", "Usage"},
		{"case insensitive", "FLAGS", "Flags"},
		{"by slug", "install", "Install"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FindSection(out, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Title)
		})
	}

	_, err := FindSection(out, "Missing")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestHeadingAtLine(t *testing.T) {
	headings := markdown.Parse(doc).Headings

	tests := []struct {
		line int
		want string
	}{
		{1, "Guide"},
		{4, "Guide"},
		{5, "Install"},
		{12, "Usage"},
		{100, "Flags"},
	}
	for _, tt := range tests {
		h, err := HeadingAtLine(headings, tt.line)
		require.NoError(t, err)
		assert.Equal(t, tt.want, h.Text, "line %d", tt.line)
	}

	_, err := HeadingAtLine(markdown.Parse("text\n\n# Late\n").Headings, 1)
	assert.ErrorIs(t, err, ErrNoHeading)
}
