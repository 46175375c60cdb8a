package markdown

import (
	"fmt"
	"os"
)

// Parser turns markdown text into document structure. The zero value is not
// usable; construct one with NewParser. A Parser holds no per-document state
// and may be shared.
type Parser struct {
	tok Tokenizer
}

// Option configures a Parser.
type Option func(*Parser)

// WithTokenizer replaces the default goldmark tokenizer.
func WithTokenizer(t Tokenizer) Option {
	return func(p *Parser) {
		p.tok = t
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{tok: defaultTokenizer}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var (
	defaultTokenizer = NewTokenizer()
	defaultParser    = NewParser()
)

// Document is a parsed markdown file: its verbatim content and its headings
// in document order.
type Document struct {
	Content     string
	Headings    []Heading
	Frontmatter *Frontmatter
}

// Parse extracts the heading structure of content. A leading frontmatter
// block is decoded separately and never contributes headings.
func (p *Parser) Parse(content string) *Document {
	doc := &Document{Content: content}

	src := []byte(content)
	if fm := ExtractFrontmatter(src); fm != nil {
		doc.Frontmatter = fm
		src = blankLines(src, fm.EndLine)
	}
	doc.Headings = p.ExtractHeadings(src)

	return doc
}

// ParseFile reads and parses a markdown file.
func (p *Parser) ParseFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return p.Parse(string(content)), nil
}

// Tree builds the heading forest of the document.
func (d *Document) Tree() []*HeadingNode {
	return BuildTree(d.Headings)
}

// Parse parses content with the default parser.
func Parse(content string) *Document {
	return defaultParser.Parse(content)
}

// ParseFile reads and parses path with the default parser.
func ParseFile(path string) (*Document, error) {
	return defaultParser.ParseFile(path)
}

// ParseContent parses a fragment into blocks with the default parser.
func ParseContent(fragment string, startLine int) []Block {
	return defaultParser.ParseContent(fragment, startLine)
}

// ExtractLinks catalogs the links of a fragment with the default parser.
func ExtractLinks(fragment string) []Link {
	return defaultParser.ExtractLinks(fragment)
}

// Build assembles the exported tree with the default parser.
func Build(doc *Document, source string) DocumentOutput {
	return defaultParser.Build(doc, source)
}

// blankLines replaces every byte of the first n lines with a space, keeping
// newlines, so offsets and line numbers of the rest are unchanged.
func blankLines(src []byte, n int) []byte {
	out := make([]byte, len(src))
	copy(out, src)
	line := 0
	for i, b := range out {
		if line >= n {
			break
		}
		if b == '\n' {
			line++
			continue
		}
		out[i] = ' '
	}
	return out
}
