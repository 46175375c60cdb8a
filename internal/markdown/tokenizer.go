package markdown

// EventKind identifies the construct an Event opens, closes or carries.
type EventKind int

const (
	EventParagraph EventKind = iota
	EventHeading
	EventList
	EventItem
	EventTaskMarker
	EventCodeBlock
	EventBlockquote
	EventTable
	EventTableHead
	EventTableRow
	EventTableCell
	EventStrong
	EventEmphasis
	EventStrikethrough
	EventInlineCode
	EventLink
	EventImage
	EventText
	EventSoftBreak
	EventHardBreak
	EventRule
	EventHTML
)

var eventKindNames = map[EventKind]string{
	EventParagraph:     "paragraph",
	EventHeading:       "heading",
	EventList:          "list",
	EventItem:          "item",
	EventTaskMarker:    "task_marker",
	EventCodeBlock:     "code_block",
	EventBlockquote:    "blockquote",
	EventTable:         "table",
	EventTableHead:     "table_head",
	EventTableRow:      "table_row",
	EventTableCell:     "table_cell",
	EventStrong:        "strong",
	EventEmphasis:      "emphasis",
	EventStrikethrough: "strikethrough",
	EventInlineCode:    "inline_code",
	EventLink:          "link",
	EventImage:         "image",
	EventText:          "text",
	EventSoftBreak:     "soft_break",
	EventHardBreak:     "hard_break",
	EventRule:          "rule",
	EventHTML:          "html",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Event is one step of a flattened markdown token stream. Container kinds
// arrive as a start event followed later by a matching event with End set;
// leaf kinds (text, breaks, rules, task markers, inline code, HTML) arrive
// once with End unset.
type Event struct {
	Kind EventKind
	End  bool

	Level   int  // heading level
	Ordered bool // list
	Checked bool // task marker

	// Text is the payload of text, inline code and HTML events. For
	// blockquotes it holds the quote body with one level of '>' markers
	// removed.
	Text string

	Language   string      // fenced code info string
	Dest       string      // link or image destination
	Title      string      // link or image title
	Alignments []Alignment // table column alignments

	// Offset is the byte offset of the construct in the tokenized source.
	// Set for links (the opening bracket) and headings.
	Offset int

	// Line and EndLine are 0-based lines within the tokenized source. Set for
	// headings, code blocks and blockquotes.
	Line    int
	EndLine int
}

// Tokenizer turns markdown source into a flat, document-ordered event stream.
// Implementations must be safe for concurrent use.
type Tokenizer interface {
	Tokenize(src []byte) []Event
}
