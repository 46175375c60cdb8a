package markdown

import "strings"

// ParseContent parses a markdown fragment into blocks. startLine is the
// absolute line the fragment begins on and offsets code block line numbers.
func (p *Parser) ParseContent(fragment string, startLine int) []Block {
	processed, details := p.extractDetails(fragment)

	st := newContentState(p, startLine)
	var blocks []Block
	for _, e := range p.tok.Tokenize([]byte(processed)) {
		st.process(e, &blocks)
	}
	st.finalize(&blocks)

	if len(details) == 0 {
		return blocks
	}
	return substituteDetails(blocks, details)
}

// contentState is the mutable state of one ParseContent reduction. Exactly
// one of the paragraph, heading, code, blockquote and table buffers is being
// filled at any time.
type contentState struct {
	p    *Parser
	line int

	paragraph   string
	inline      []InlineElement
	inParagraph bool

	inHeading     bool
	headingLevel  int
	headingBuffer string
	headingInline []InlineElement

	inList      bool
	listOrdered bool
	listDepth   int
	listItems   []ListItem
	itemDepth   int
	itemBlocks  []Block
	itemIndent  bool // next nested-item text needs its indentation prefix
	taskMarker  *bool
	savedMarker []*bool

	inCode        bool
	code          strings.Builder
	codeLanguage  string
	codeStartLine int
	codeEndLine   int

	inQuote    bool
	quote      string
	quoteLine  int
	quoteDepth int // open blockquote events, counting nested quotes

	inTable         bool
	tableHeaders    []string
	tableAlignments []Alignment
	tableRows       [][]string
	currentRow      []string

	inStrong        bool
	inEmphasis      bool
	inStrikethrough bool
	inCodeInline    bool

	inLink      bool
	linkURL     string
	linkTitle   string
	linkText    string
	inImage     bool
	imageTitle  string
	imageInLink bool
	savedURL    string
}

func newContentState(p *Parser, startLine int) *contentState {
	return &contentState{p: p, line: startLine}
}

// emit places a finished block inside the current top-level list item when
// one is open, otherwise in the output sequence.
func (s *contentState) emit(blocks *[]Block, b Block) {
	if s.itemDepth >= 1 {
		s.itemBlocks = append(s.itemBlocks, b)
		return
	}
	*blocks = append(*blocks, b)
}

func (s *contentState) finalize(blocks *[]Block) {
	s.flushParagraph(blocks)
	s.flushList(blocks)
	s.flushCode(blocks)
	s.flushBlockquote(blocks)
	s.flushTable(blocks)
}

func (s *contentState) flushParagraph(blocks *[]Block) {
	if s.inParagraph && s.paragraph != "" {
		s.emit(blocks, Block{
			Type:    BlockParagraph,
			Content: s.paragraph,
			Inline:  s.inline,
		})
		s.paragraph = ""
		s.inline = nil
	}
	s.inParagraph = false
}

func (s *contentState) flushList(blocks *[]Block) {
	if s.inList && len(s.listItems) > 0 {
		*blocks = append(*blocks, Block{
			Type:    BlockList,
			Ordered: s.listOrdered,
			Items:   s.listItems,
		})
	}
	s.listItems = nil
	s.inList = false
}

func (s *contentState) flushCode(blocks *[]Block) {
	if s.inCode && s.code.Len() > 0 {
		s.emit(blocks, Block{
			Type:      BlockCode,
			Language:  s.codeLanguage,
			Content:   strings.TrimRight(s.code.String(), " \t\r\n"),
			StartLine: s.codeStartLine,
			EndLine:   s.codeEndLine,
		})
	}
	s.code.Reset()
	s.codeLanguage = ""
	s.inCode = false
}

func (s *contentState) flushBlockquote(blocks *[]Block) {
	if s.inQuote && s.quote != "" {
		s.emit(blocks, Block{
			Type:    BlockBlockquote,
			Content: s.quote,
			Blocks:  s.p.ParseContent(s.quote, s.line+s.quoteLine),
		})
	}
	s.quote = ""
	s.inQuote = false
	s.quoteDepth = 0
}

// skipQuoted drops the events inside an open blockquote. The quote body is
// parsed again from its text when the outermost quote closes.
func (s *contentState) skipQuoted(e Event, blocks *[]Block) {
	if e.Kind != EventBlockquote {
		return
	}
	if !e.End {
		s.quoteDepth++
		return
	}
	s.quoteDepth--
	if s.quoteDepth == 0 {
		s.flushBlockquote(blocks)
	}
}

func (s *contentState) flushTable(blocks *[]Block) {
	if s.inTable && len(s.tableHeaders) > 0 {
		s.emit(blocks, Block{
			Type:       BlockTable,
			Headers:    s.tableHeaders,
			Alignments: s.tableAlignments,
			Rows:       s.tableRows,
		})
	}
	s.tableHeaders = nil
	s.tableAlignments = nil
	s.tableRows = nil
	s.currentRow = nil
	s.paragraph = ""
	s.inline = nil
	s.inTable = false
}

// styled builds the inline element for a text run from the active style
// flags. Precedence: inline code, strong, emphasis, strikethrough, plain.
func (s *contentState) styled(text string) InlineElement {
	switch {
	case s.inCodeInline:
		return InlineElement{Type: InlineCode, Value: text}
	case s.inStrong:
		return InlineElement{Type: InlineStrong, Value: text}
	case s.inEmphasis:
		return InlineElement{Type: InlineEmphasis, Value: text}
	case s.inStrikethrough:
		return InlineElement{Type: InlineStrikethrough, Value: text}
	default:
		return InlineElement{Type: InlineText, Value: text}
	}
}

// appendInline adds an element and its textual form to whichever buffer is
// collecting inline content: the heading while one is open, else the
// paragraph buffer (shared by paragraphs, list item text and table cells).
func (s *contentState) appendInline(el InlineElement, text string) {
	if s.inHeading {
		s.headingInline = append(s.headingInline, el)
		s.headingBuffer += text
		return
	}
	s.inline = append(s.inline, el)
	s.paragraph += text
}

func (s *contentState) addInlineText(text string) {
	if text == "" {
		return
	}
	s.appendInline(s.styled(text), text)
}

func (s *contentState) process(e Event, blocks *[]Block) {
	if s.quoteDepth > 0 {
		s.skipQuoted(e, blocks)
		return
	}

	switch e.Kind {
	case EventParagraph:
		if !e.End {
			s.inParagraph = true
			return
		}
		s.flushParagraph(blocks)

	case EventHeading:
		if !e.End {
			s.flushParagraph(blocks)
			s.inHeading = true
			s.headingLevel = e.Level
			s.headingBuffer = ""
			s.headingInline = nil
			return
		}
		if s.inHeading && s.headingBuffer != "" {
			s.emit(blocks, Block{
				Type:    BlockHeading,
				Level:   s.headingLevel,
				Content: s.headingBuffer,
				Inline:  s.headingInline,
			})
		}
		s.inHeading = false
		s.headingLevel = 0
		s.headingBuffer = ""
		s.headingInline = nil

	case EventCodeBlock:
		if !e.End {
			s.flushParagraph(blocks)
			s.inCode = true
			s.codeLanguage = e.Language
			s.codeStartLine = s.line + e.Line
			s.codeEndLine = s.line + e.EndLine
			return
		}
		s.flushCode(blocks)

	case EventList:
		if !e.End {
			s.listDepth++
			if s.listDepth == 1 {
				s.flushParagraph(blocks)
				s.inList = true
				s.listOrdered = e.Ordered
			}
			return
		}
		if s.listDepth > 0 {
			s.listDepth--
		}
		if s.listDepth == 0 {
			s.flushList(blocks)
		}

	case EventItem:
		if !e.End {
			s.startItem()
			return
		}
		s.endItem()

	case EventTaskMarker:
		checked := e.Checked
		s.taskMarker = &checked

	case EventBlockquote:
		if !e.End {
			s.flushParagraph(blocks)
			s.inQuote = true
			s.quote = e.Text
			s.quoteLine = e.Line
			s.quoteDepth = 1
			return
		}
		s.flushBlockquote(blocks)

	case EventTable:
		if !e.End {
			s.flushParagraph(blocks)
			s.inTable = true
			s.tableAlignments = e.Alignments
			return
		}
		s.flushTable(blocks)

	case EventTableHead:
		if e.End {
			s.tableHeaders = s.currentRow
			s.currentRow = nil
		}

	case EventTableRow:
		if e.End {
			s.tableRows = append(s.tableRows, s.currentRow)
			s.currentRow = nil
		}

	case EventTableCell:
		if e.End {
			s.currentRow = append(s.currentRow, s.paragraph)
		}
		s.paragraph = ""
		s.inline = nil

	case EventStrong:
		s.inStrong = !e.End
	case EventEmphasis:
		s.inEmphasis = !e.End
	case EventStrikethrough:
		s.inStrikethrough = !e.End

	case EventInlineCode:
		if s.inLink || s.inImage {
			s.linkText += e.Text
			return
		}
		s.inCodeInline = true
		s.addInlineText(e.Text)
		s.inCodeInline = false

	case EventLink:
		if !e.End {
			s.inLink = true
			s.linkURL = e.Dest
			s.linkTitle = e.Title
			s.linkText = ""
			return
		}
		s.endLink()

	case EventImage:
		if !e.End {
			if s.inLink {
				// Badge pattern: keep the outer destination.
				s.imageInLink = true
				s.savedURL = s.linkURL
			}
			s.inImage = true
			s.linkURL = e.Dest
			s.linkText = ""
			s.imageTitle = e.Title
			return
		}
		s.endImage(blocks)

	case EventText:
		s.text(e.Text)

	case EventSoftBreak:
		s.lineBreak(" ")
	case EventHardBreak:
		s.lineBreak("\n")

	case EventRule:
		s.flushParagraph(blocks)
		s.emit(blocks, Block{Type: BlockHorizontalRule})
	}
}

func (s *contentState) text(text string) {
	switch {
	case s.inCode:
		s.code.WriteString(text)
	case s.inQuote:
		// Quote bodies arrive whole on the start event.
	case s.inLink || s.inImage:
		s.linkText += text
	default:
		if s.inList && s.itemDepth > 1 && !s.inHeading && s.itemIndent {
			s.indentNestedItem()
		}
		s.addInlineText(text)
	}
}

// indentNestedItem prefixes the first text of a nested item with a newline,
// two spaces per nesting level and any pending task marker. Nested lists are
// folded into the enclosing top-level item this way rather than becoming
// List blocks of their own.
func (s *contentState) indentNestedItem() {
	s.itemIndent = false
	if s.paragraph != "" && !strings.HasSuffix(s.paragraph, "\n") {
		s.paragraph += "\n"
	}
	s.paragraph += strings.Repeat("  ", s.itemDepth-1)
	if s.taskMarker != nil {
		if *s.taskMarker {
			s.paragraph += "[x] "
		} else {
			s.paragraph += "[ ] "
		}
		s.taskMarker = nil
	}
}

func (s *contentState) lineBreak(sep string) {
	switch {
	case s.inCode || s.inQuote:
	case s.inLink || s.inImage:
		s.linkText += sep
	case s.inParagraph || s.inHeading || s.itemDepth >= 1:
		s.appendInline(InlineElement{Type: InlineText, Value: sep}, sep)
	}
}

func (s *contentState) startItem() {
	s.itemDepth++
	if s.itemDepth > 1 {
		s.savedMarker = append(s.savedMarker, s.taskMarker)
		s.taskMarker = nil
		s.itemIndent = true
		return
	}
	s.paragraph = ""
	s.inline = nil
	s.itemBlocks = nil
}

func (s *contentState) endItem() {
	if s.itemDepth > 1 {
		if n := len(s.savedMarker); n > 0 {
			s.taskMarker = s.savedMarker[n-1]
			s.savedMarker = s.savedMarker[:n-1]
		}
		s.itemIndent = false
		s.itemDepth--
		return
	}
	if s.itemDepth == 0 {
		return
	}

	item := ListItem{Checked: s.taskMarker}
	switch {
	case s.paragraph != "":
		// Tight item: text arrived without a paragraph wrapper.
		item.Content = s.paragraph
		item.Inline = s.inline
		item.Blocks = s.itemBlocks
	case len(s.itemBlocks) > 0 && s.itemBlocks[0].Type == BlockParagraph:
		// Loose item: the leading paragraph is the item text.
		item.Content = s.itemBlocks[0].Content
		item.Inline = s.itemBlocks[0].Inline
		item.Blocks = s.itemBlocks[1:]
	default:
		item.Blocks = s.itemBlocks
	}
	if len(item.Blocks) == 0 {
		item.Blocks = nil
	}
	s.listItems = append(s.listItems, item)

	s.paragraph = ""
	s.inline = nil
	s.itemBlocks = nil
	s.taskMarker = nil
	s.itemDepth = 0
}

func (s *contentState) endLink() {
	s.inLink = false

	url := s.linkURL
	title := s.linkTitle
	if s.imageInLink {
		url = s.savedURL
		title = ""
	}
	s.appendInline(
		InlineElement{Type: InlineLink, Text: s.linkText, URL: url, Title: title},
		"["+s.linkText+"]("+url+")",
	)

	s.linkText = ""
	s.linkURL = ""
	s.linkTitle = ""
	s.savedURL = ""
	s.imageInLink = false
}

func (s *contentState) endImage(blocks *[]Block) {
	s.inImage = false
	if s.imageInLink {
		// The enclosing link emits one element using the alt text.
		return
	}

	if s.inParagraph || s.inHeading || s.inTable {
		s.appendInline(
			InlineElement{Type: InlineImage, Alt: s.linkText, Src: s.linkURL, Title: s.imageTitle},
			"["+s.linkText+"]",
		)
	} else {
		s.flushParagraph(blocks)
		s.emit(blocks, Block{
			Type:  BlockImage,
			Alt:   s.linkText,
			Src:   s.linkURL,
			Title: s.imageTitle,
		})
	}

	s.linkText = ""
	s.linkURL = ""
	s.imageTitle = ""
}
