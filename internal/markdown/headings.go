package markdown

import "strings"

// Heading is a heading as the tokenizer reports it. Text has inline markup
// removed.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
	Line  int    `json:"line" yaml:"line"` // 1-based line number, 0 when unknown
}

// HeadingNode is a heading together with the headings nested under it.
type HeadingNode struct {
	Heading  Heading
	Children []*HeadingNode
}

// ExtractHeadings returns every heading in content in document order.
func (p *Parser) ExtractHeadings(content []byte) []Heading {
	var headings []Heading
	var current *Heading
	var text strings.Builder

	for _, e := range p.tok.Tokenize(content) {
		switch e.Kind {
		case EventHeading:
			if !e.End {
				current = &Heading{Level: e.Level, Line: e.Line + 1}
				text.Reset()
				continue
			}
			if current != nil {
				current.Text = strings.TrimSpace(text.String())
				headings = append(headings, *current)
				current = nil
			}
		case EventText, EventInlineCode:
			if current != nil {
				text.WriteString(e.Text)
			}
		case EventSoftBreak:
			if current != nil {
				text.WriteByte(' ')
			}
		}
	}

	return headings
}

// BuildTree folds a flat heading sequence into a forest. A heading becomes a
// child of the nearest preceding heading with a strictly smaller level;
// headings of equal level are always siblings.
func BuildTree(headings []Heading) []*HeadingNode {
	var roots []*HeadingNode
	var stack []*HeadingNode

	for _, h := range headings {
		node := &HeadingNode{Heading: h}
		for len(stack) > 0 && stack[len(stack)-1].Heading.Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}

	return roots
}

// Flatten returns the forest's headings in pre-order.
func Flatten(forest []*HeadingNode) []Heading {
	var out []Heading
	var walk func([]*HeadingNode)
	walk = func(nodes []*HeadingNode) {
		for _, n := range nodes {
			out = append(out, n.Heading)
			walk(n.Children)
		}
	}
	walk(forest)
	return out
}

// MaxDepth is 1 + the deepest nesting in forest, or 0 for an empty forest.
func MaxDepth(forest []*HeadingNode) int {
	depth := 0
	for _, n := range forest {
		depth = max(depth, 1+MaxDepth(n.Children))
	}
	return depth
}
