package markdown

// BlockType discriminates the variants of Block.
type BlockType string

const (
	BlockHeading        BlockType = "heading"
	BlockParagraph      BlockType = "paragraph"
	BlockList           BlockType = "list"
	BlockCode           BlockType = "code"
	BlockBlockquote     BlockType = "blockquote"
	BlockTable          BlockType = "table"
	BlockImage          BlockType = "image"
	BlockHorizontalRule BlockType = "horizontal_rule"
	BlockDetails        BlockType = "details"
)

// Alignment is a table column alignment.
type Alignment string

const (
	AlignNone   Alignment = "none"
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Block is one parsed unit of section content. Only the fields belonging to
// Type are populated:
//
//	heading          Level, Content, Inline
//	paragraph        Content, Inline
//	list             Ordered, Items
//	code             Language, Content, StartLine, EndLine
//	blockquote       Content (raw quote body), Blocks
//	table            Headers, Alignments, Rows
//	image            Alt, Src, Title
//	horizontal_rule  (none)
//	details          Summary, Content (raw body), Blocks
type Block struct {
	Type BlockType `json:"type" yaml:"type"`

	Level   int             `json:"level,omitempty" yaml:"level,omitempty"`
	Content string          `json:"content,omitempty" yaml:"content,omitempty"`
	Inline  []InlineElement `json:"inline,omitempty" yaml:"inline,omitempty"`

	Ordered bool       `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Items   []ListItem `json:"items,omitempty" yaml:"items,omitempty"`

	Language  string `json:"language,omitempty" yaml:"language,omitempty"`
	StartLine int    `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty" yaml:"end_line,omitempty"`

	Blocks []Block `json:"blocks,omitempty" yaml:"blocks,omitempty"`

	Headers    []string    `json:"headers,omitempty" yaml:"headers,omitempty"`
	Alignments []Alignment `json:"alignments,omitempty" yaml:"alignments,omitempty"`
	Rows       [][]string  `json:"rows,omitempty" yaml:"rows,omitempty"`

	Alt   string `json:"alt,omitempty" yaml:"alt,omitempty"`
	Src   string `json:"src,omitempty" yaml:"src,omitempty"`
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// ListItem is one top-level item of a List block.
type ListItem struct {
	// Checked is nil unless the item carried a task-list marker.
	Checked *bool           `json:"checked,omitempty" yaml:"checked,omitempty"`
	Content string          `json:"content" yaml:"content"`
	Inline  []InlineElement `json:"inline,omitempty" yaml:"inline,omitempty"`
	// Blocks holds nested blocks beyond the item's leading text.
	Blocks []Block `json:"blocks,omitempty" yaml:"blocks,omitempty"`
}

// InlineType discriminates the variants of InlineElement.
type InlineType string

const (
	InlineText          InlineType = "text"
	InlineStrong        InlineType = "strong"
	InlineEmphasis      InlineType = "emphasis"
	InlineStrikethrough InlineType = "strikethrough"
	InlineCode          InlineType = "code"
	InlineLink          InlineType = "link"
	InlineImage         InlineType = "image"
)

// InlineElement is a single run of inline content. Styled runs carry Value;
// links carry Text, URL and Title; images carry Alt, Src and Title.
type InlineElement struct {
	Type  InlineType `json:"type" yaml:"type"`
	Value string     `json:"value,omitempty" yaml:"value,omitempty"`
	Text  string     `json:"text,omitempty" yaml:"text,omitempty"`
	URL   string     `json:"url,omitempty" yaml:"url,omitempty"`
	Alt   string     `json:"alt,omitempty" yaml:"alt,omitempty"`
	Src   string     `json:"src,omitempty" yaml:"src,omitempty"`
	Title string     `json:"title,omitempty" yaml:"title,omitempty"`
}

// PlainText returns the visible text of an inline element.
func (e InlineElement) PlainText() string {
	switch e.Type {
	case InlineLink:
		return e.Text
	case InlineImage:
		return e.Alt
	default:
		return e.Value
	}
}
