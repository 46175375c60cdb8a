package markdown

import "strings"

// DocumentOutput is the exported document tree.
type DocumentOutput struct {
	Document DocumentRoot `json:"document" yaml:"document"`
}

type DocumentRoot struct {
	Metadata Metadata  `json:"metadata" yaml:"metadata"`
	Sections []Section `json:"sections" yaml:"sections"`
}

type Metadata struct {
	Source       string         `json:"source,omitempty" yaml:"source,omitempty"`
	HeadingCount int            `json:"heading_count" yaml:"heading_count"`
	MaxDepth     int            `json:"max_depth" yaml:"max_depth"`
	WordCount    int            `json:"word_count" yaml:"word_count"`
	Frontmatter  map[string]any `json:"frontmatter,omitempty" yaml:"frontmatter,omitempty"`
}

// Section is one heading with its resolved position, parsed content and
// nested sections.
type Section struct {
	ID       string    `json:"id" yaml:"id"`
	Level    int       `json:"level" yaml:"level"`
	Title    string    `json:"title" yaml:"title"`
	Slug     string    `json:"slug" yaml:"slug"`
	Position Position  `json:"position" yaml:"position"`
	Content  Content   `json:"content" yaml:"content"`
	Children []Section `json:"children" yaml:"children"`
}

type Position struct {
	Line   int `json:"line" yaml:"line"`
	Offset int `json:"offset" yaml:"offset"`
}

type Content struct {
	Raw    string  `json:"raw" yaml:"raw"`
	Blocks []Block `json:"blocks" yaml:"blocks"`
}

// Build assembles the exported tree of doc. source names the input (a file
// path) and may be empty. Every section is located against the full document
// content so that positions stay absolute.
func (p *Parser) Build(doc *Document, source string) DocumentOutput {
	tree := doc.Tree()

	// Sections are located in the source with frontmatter blanked, like the
	// headings were, so a "# comment" in the YAML cannot match a heading.
	body := doc.Content
	if doc.Frontmatter != nil {
		body = string(blankLines([]byte(doc.Content), doc.Frontmatter.EndLine))
	}

	meta := Metadata{
		Source:       source,
		HeadingCount: len(doc.Headings),
		MaxDepth:     MaxDepth(tree),
		WordCount:    len(strings.Fields(doc.Content)),
	}
	if doc.Frontmatter != nil {
		meta.Frontmatter = doc.Frontmatter.Fields
	}

	sections := make([]Section, 0, len(tree))
	for _, node := range tree {
		sections = append(sections, p.buildSection(node, body))
	}

	return DocumentOutput{
		Document: DocumentRoot{Metadata: meta, Sections: sections},
	}
}

func (p *Parser) buildSection(node *HeadingNode, full string) Section {
	h := node.Heading
	span := ExtractSection(h, full)
	slug := Slugify(h.Text)

	children := make([]Section, 0, len(node.Children))
	for _, child := range node.Children {
		children = append(children, p.buildSection(child, full))
	}

	return Section{
		ID:       slug,
		Level:    h.Level,
		Title:    h.Text,
		Slug:     slug,
		Position: Position{Line: span.Line, Offset: span.Offset},
		Content: Content{
			Raw:    span.Content,
			Blocks: p.ParseContent(span.Content, span.Line),
		},
		Children: children,
	}
}

// Walk visits sections in pre-order with their depth (0 for roots). It stops
// early when fn returns false.
func Walk(sections []Section, fn func(s *Section, depth int) bool) {
	var walk func([]Section, int) bool
	walk = func(ss []Section, depth int) bool {
		for i := range ss {
			if !fn(&ss[i], depth) {
				return false
			}
			if !walk(ss[i].Children, depth+1) {
				return false
			}
		}
		return true
	}
	walk(sections, 0)
}
