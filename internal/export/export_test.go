package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pfassina/treemd/internal/config"
	"github.com/pfassina/treemd/internal/markdown"
)

const doc = `# Guide

Intro with [a link](#usage).

## Install

Steps.

## Usage

See [[Reference|the reference]].

### Flags

Details.
`

func printer(t *testing.T, format string) (*Printer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	p, err := NewPrinter(&buf, format, false)
	require.NoError(t, err)
	return p, &buf
}

func TestNewPrinter_UnknownFormat(t *testing.T) {
	_, err := NewPrinter(&bytes.Buffer{}, "xml", false)
	assert.Error(t, err)
}

func TestHeadings_Plain(t *testing.T) {
	p, buf := printer(t, config.OutputPlain)

	require.NoError(t, p.Headings(markdown.Parse(doc).Headings))

	assert.Equal(t, "# Guide\n## Install\n## Usage\n### Flags\n", buf.String())
}

func TestTree(t *testing.T) {
	p, buf := printer(t, config.OutputTree)

	require.NoError(t, p.Tree(markdown.Parse(doc).Tree()))

	want := "└── # Guide\n" +
		"    ├── ## Install\n" +
		"    └── ## Usage\n" +
		"        └── ### Flags\n"
	assert.Equal(t, want, buf.String())
}

func TestHeadings_JSON(t *testing.T) {
	p, buf := printer(t, config.OutputJSON)

	require.NoError(t, p.Headings(markdown.Parse(doc).Headings))

	var got []markdown.Heading
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 4)
	assert.Equal(t, markdown.Heading{Level: 2, Text: "Usage", Line: 9}, got[2])
}

func TestHeadings_JSONEmpty(t *testing.T) {
	p, buf := printer(t, config.OutputJSON)

	require.NoError(t, p.Headings(nil))

	assert.JSONEq(t, "[]", buf.String())
}

func TestDocument_YAML(t *testing.T) {
	p, buf := printer(t, config.OutputYAML)
	out := markdown.Build(markdown.Parse(doc), "guide.md")

	require.NoError(t, p.Document(out))

	var got struct {
		Document struct {
			Metadata struct {
				Source       string `yaml:"source"`
				HeadingCount int    `yaml:"heading_count"`
				MaxDepth     int    `yaml:"max_depth"`
			} `yaml:"metadata"`
			Sections []struct {
				Title    string `yaml:"title"`
				Children []struct {
					Slug string `yaml:"slug"`
				} `yaml:"children"`
			} `yaml:"sections"`
		} `yaml:"document"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "guide.md", got.Document.Metadata.Source)
	assert.Equal(t, 4, got.Document.Metadata.HeadingCount)
	assert.Equal(t, 3, got.Document.Metadata.MaxDepth)
	require.Len(t, got.Document.Sections, 1)
	require.Len(t, got.Document.Sections[0].Children, 2)
	assert.Equal(t, "usage", got.Document.Sections[0].Children[1].Slug)
}

func TestDocument_Plain(t *testing.T) {
	p, buf := printer(t, config.OutputPlain)

	require.NoError(t, p.Document(markdown.Build(markdown.Parse(doc), "")))

	assert.Equal(t, "# Guide\n## Install\n## Usage\n### Flags\n", buf.String())
}

func TestSection_Plain(t *testing.T) {
	out := markdown.Build(markdown.Parse(doc), "")
	s, err := FindSection(out, "install")
	require.NoError(t, err)

	p, buf := printer(t, config.OutputPlain)
	require.NoError(t, p.Section(s))

	assert.Equal(t, "## Install\n\nSteps.\n", buf.String())
}

func TestCounts(t *testing.T) {
	p, buf := printer(t, config.OutputPlain)

	require.NoError(t, p.Counts(CountByLevel(markdown.Parse(doc).Headings)))

	assert.Equal(t, "H1: 1\nH2: 2\nH3: 1\nTotal: 4\n", buf.String())
}

func TestCounts_JSON(t *testing.T) {
	p, buf := printer(t, config.OutputJSON)

	require.NoError(t, p.Counts(CountByLevel(markdown.Parse(doc).Headings)))

	assert.JSONEq(t, `{"h1":1,"h2":2,"h3":1}`, buf.String())
}

func TestLinks_Plain(t *testing.T) {
	p, buf := printer(t, config.OutputPlain)

	require.NoError(t, p.Links(markdown.ExtractLinks(doc)))

	want := "[1] a link -> #usage (anchor)\n" +
		"[2] the reference -> [[Reference|the reference]] (wikilink)\n"
	assert.Equal(t, want, buf.String())
}

func TestStyledOutputKeepsText(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewPrinter(&buf, config.OutputTree, true)
	require.NoError(t, err)

	require.NoError(t, p.Tree(markdown.Parse(doc).Tree()))

	assert.Contains(t, buf.String(), "Flags")
}
