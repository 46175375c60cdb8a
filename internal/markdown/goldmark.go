package markdown

import (
	"bytes"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// goldmarkTokenizer flattens a goldmark AST into start/end events.
type goldmarkTokenizer struct {
	md goldmark.Markdown
}

// NewTokenizer returns the default Tokenizer: goldmark with GitHub tables,
// strikethrough and task lists enabled.
func NewTokenizer() Tokenizer {
	return &goldmarkTokenizer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.TaskList,
			),
		),
	}
}

func (g *goldmarkTokenizer) Tokenize(src []byte) []Event {
	doc := g.md.Parser().Parse(text.NewReader(src))
	w := &eventWriter{src: src, newlines: newlineIndex(src)}
	_ = ast.Walk(doc, w.visit)
	return w.events
}

type eventWriter struct {
	src      []byte
	newlines []int
	events   []Event
	lastLine int // last source line a positioned node reached
}

func (w *eventWriter) emit(e Event) {
	w.events = append(w.events, e)
}

func (w *eventWriter) container(kind EventKind, entering bool) {
	w.emit(Event{Kind: kind, End: !entering})
}

func (w *eventWriter) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Paragraph:
		w.container(EventParagraph, entering)

	case *ast.Heading:
		e := Event{Kind: EventHeading, End: !entering, Level: node.Level}
		if lines := node.Lines(); lines.Len() > 0 {
			start := lines.At(0).Start
			e.Line = w.lineOf(start)
			e.Offset = w.lineStart(e.Line)
			w.lastLine = e.Line
		} else if entering {
			// An empty "#" heading has no segments.
			e.Line = w.emptyHeadingLine()
			e.Offset = w.lineStart(e.Line)
			w.lastLine = e.Line
		}
		w.emit(e)

	case *ast.ThematicBreak:
		if entering {
			w.emit(Event{Kind: EventRule})
		}

	case *ast.List:
		w.emit(Event{Kind: EventList, End: !entering, Ordered: node.IsOrdered()})

	case *ast.ListItem:
		w.container(EventItem, entering)

	case *east.TaskCheckBox:
		if entering {
			w.emit(Event{Kind: EventTaskMarker, Checked: node.IsChecked})
		}

	case *ast.FencedCodeBlock:
		if !entering {
			w.container(EventCodeBlock, false)
			return ast.WalkContinue, nil
		}
		e := Event{Kind: EventCodeBlock, Language: string(node.Language(w.src))}
		body := w.codeBody(node.Lines(), &e)
		// Fence lines sit just outside the content lines.
		if node.Lines().Len() > 0 {
			if e.Line > 0 {
				e.Line--
			}
			if e.EndLine+1 < len(w.newlines)+1 {
				e.EndLine++
			}
			w.lastLine = e.EndLine
		}
		w.emit(e)
		w.emit(Event{Kind: EventText, Text: body})
		return ast.WalkSkipChildren, nil

	case *ast.CodeBlock:
		if !entering {
			w.container(EventCodeBlock, false)
			return ast.WalkContinue, nil
		}
		e := Event{Kind: EventCodeBlock}
		body := w.codeBody(node.Lines(), &e)
		if node.Lines().Len() > 0 {
			w.lastLine = e.EndLine
		}
		w.emit(e)
		w.emit(Event{Kind: EventText, Text: body})
		return ast.WalkSkipChildren, nil

	case *ast.Blockquote:
		if !entering {
			w.container(EventBlockquote, false)
			return ast.WalkContinue, nil
		}
		body, first, last := w.quoteBody(node)
		w.emit(Event{Kind: EventBlockquote, Text: body, Line: first, EndLine: last})
		// Children still follow so headings and links inside quotes are seen.

	case *ast.HTMLBlock:
		if entering {
			var b strings.Builder
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(w.src))
			}
			if lines.Len() > 0 {
				w.lastLine = w.lineOf(lines.At(lines.Len() - 1).Start)
			}
			if node.HasClosure() {
				b.Write(node.ClosureLine.Value(w.src))
				w.lastLine = w.lineOf(node.ClosureLine.Start)
			}
			w.emit(Event{Kind: EventHTML, Text: b.String()})
		}
		return ast.WalkSkipChildren, nil

	case *ast.RawHTML:
		if entering {
			var b strings.Builder
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				b.Write(seg.Value(w.src))
			}
			w.emit(Event{Kind: EventHTML, Text: b.String()})
		}
		return ast.WalkSkipChildren, nil

	case *east.Table:
		e := Event{Kind: EventTable, End: !entering}
		if entering {
			e.Alignments = make([]Alignment, len(node.Alignments))
			for i, a := range node.Alignments {
				e.Alignments[i] = alignmentOf(a)
			}
		}
		w.emit(e)

	case *east.TableHeader:
		w.container(EventTableHead, entering)

	case *east.TableRow:
		w.container(EventTableRow, entering)

	case *east.TableCell:
		w.container(EventTableCell, entering)

	case *ast.Emphasis:
		if node.Level >= 2 {
			w.container(EventStrong, entering)
		} else {
			w.container(EventEmphasis, entering)
		}

	case *east.Strikethrough:
		w.container(EventStrikethrough, entering)

	case *ast.CodeSpan:
		if entering {
			var b strings.Builder
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				switch t := c.(type) {
				case *ast.Text:
					b.Write(t.Segment.Value(w.src))
				case *ast.String:
					b.Write(t.Value)
				}
			}
			w.emit(Event{Kind: EventInlineCode, Text: b.String()})
		}
		return ast.WalkSkipChildren, nil

	case *ast.Link:
		e := Event{Kind: EventLink, End: !entering}
		if entering {
			e.Dest = string(node.Destination)
			e.Title = string(node.Title)
			e.Offset = w.openingBracket(node)
		}
		w.emit(e)

	case *ast.AutoLink:
		if entering {
			w.emit(Event{
				Kind:   EventLink,
				Dest:   string(node.URL(w.src)),
				Offset: w.precedingOffset(node),
			})
			w.emit(Event{Kind: EventText, Text: string(node.Label(w.src))})
			w.emit(Event{Kind: EventLink, End: true})
		}
		return ast.WalkSkipChildren, nil

	case *ast.Image:
		e := Event{Kind: EventImage, End: !entering}
		if entering {
			e.Dest = string(node.Destination)
			e.Title = string(node.Title)
		}
		w.emit(e)

	case *ast.Text:
		if !entering {
			return ast.WalkContinue, nil
		}
		if v := node.Segment.Value(w.src); len(v) > 0 {
			w.emit(Event{Kind: EventText, Text: string(v)})
			w.lastLine = w.lineOf(node.Segment.Start)
		}
		if node.HardLineBreak() {
			w.emit(Event{Kind: EventHardBreak})
		} else if node.SoftLineBreak() {
			w.emit(Event{Kind: EventSoftBreak})
		}

	case *ast.String:
		if entering && len(node.Value) > 0 {
			w.emit(Event{Kind: EventText, Text: string(node.Value)})
		}
	}

	return ast.WalkContinue, nil
}

// codeBody concatenates the content lines of a code block and records their
// line span on e.
func (w *eventWriter) codeBody(lines *text.Segments, e *Event) string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(w.src))
	}
	if lines.Len() > 0 {
		e.Line = w.lineOf(lines.At(0).Start)
		e.EndLine = w.lineOf(max(lines.At(lines.Len()-1).Stop-1, lines.At(lines.Len()-1).Start))
	}
	return b.String()
}

// quoteBody reconstructs the source of a blockquote with one level of quote
// markers removed. goldmark keeps no position for the quote itself, so the
// span is derived from its descendants and widened over adjacent '>' lines.
func (w *eventWriter) quoteBody(n ast.Node) (string, int, int) {
	first, last := -1, -1
	mark := func(start, stop int) {
		if first < 0 || start < first {
			first = start
		}
		if stop > last {
			last = stop
		}
	}
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c == n {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			if t.Segment.Stop > t.Segment.Start {
				mark(t.Segment.Start, t.Segment.Stop)
			}
			return ast.WalkContinue, nil
		}
		if c.Type() == ast.TypeBlock {
			if lines := c.Lines(); lines != nil && lines.Len() > 0 {
				mark(lines.At(0).Start, lines.At(lines.Len()-1).Stop)
			}
		}
		return ast.WalkContinue, nil
	})
	if first < 0 {
		return "", 0, 0
	}

	startLine := w.lineOf(first)
	endLine := w.lineOf(max(last-1, first))
	for startLine > 0 && isQuoteLine(w.line(startLine-1)) {
		startLine--
	}
	total := len(w.newlines) + 1
	for endLine+1 < total && isQuoteLine(w.line(endLine+1)) {
		endLine++
	}

	var b strings.Builder
	for i := startLine; i <= endLine; i++ {
		ln := w.line(i)
		if i == startLine {
			// The first line may carry container markers ("- > text").
			if idx := strings.IndexByte(ln, '>'); idx >= 0 {
				ln = trimQuoteSpace(ln[idx+1:])
			}
		} else {
			trimmed := strings.TrimLeft(ln, " \t")
			if strings.HasPrefix(trimmed, ">") {
				ln = trimQuoteSpace(trimmed[1:])
			} else {
				ln = trimmed
			}
		}
		b.WriteString(ln)
		if i < endLine {
			b.WriteByte('\n')
		}
	}
	return b.String(), startLine, endLine
}

// emptyHeadingLine finds the line of a heading without text: the first line
// after the last positioned node that holds nothing but '#' markers.
func (w *eventWriter) emptyHeadingLine() int {
	total := len(w.newlines) + 1
	from := w.lastLine
	if len(w.events) > 0 {
		from++
	}
	for i := from; i < total; i++ {
		if isEmptyATX(w.line(i)) {
			return i
		}
	}
	return min(from, total-1)
}

func isEmptyATX(line string) bool {
	t := strings.TrimLeft(line, " \t>")
	return strings.HasPrefix(t, "#") && strings.Trim(t, "# \t") == ""
}

func isQuoteLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), ">")
}

func trimQuoteSpace(s string) string {
	if strings.HasPrefix(s, " ") || strings.HasPrefix(s, "\t") {
		return s[1:]
	}
	return s
}

// openingBracket finds the '[' that opens a link. Nested images and links
// along the first-child chain each add one more bracket to step over.
func (w *eventWriter) openingBracket(n ast.Node) int {
	depth := 0
	pos := -1
	for c := n.FirstChild(); c != nil; c = c.FirstChild() {
		if t, ok := c.(*ast.Text); ok {
			pos = t.Segment.Start
			break
		}
		if c.Kind() == ast.KindImage || c.Kind() == ast.KindLink {
			depth++
		}
	}
	if pos < 0 {
		return w.precedingOffset(n)
	}
	for ; depth >= 0 && pos > 0; depth-- {
		idx := bytes.LastIndexByte(w.src[:pos], '[')
		if idx < 0 {
			break
		}
		pos = idx
	}
	return pos
}

// precedingOffset approximates where an inline node starts: right after the
// previous text sibling, or at the start of the enclosing block.
func (w *eventWriter) precedingOffset(n ast.Node) int {
	if prev, ok := n.PreviousSibling().(*ast.Text); ok {
		return prev.Segment.Stop
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == ast.TypeBlock {
			if lines := p.Lines(); lines != nil && lines.Len() > 0 {
				return lines.At(0).Start
			}
		}
	}
	return 0
}

func alignmentOf(a east.Alignment) Alignment {
	switch a {
	case east.AlignLeft:
		return AlignLeft
	case east.AlignCenter:
		return AlignCenter
	case east.AlignRight:
		return AlignRight
	default:
		return AlignNone
	}
}

// newlineIndex returns the byte offsets of every '\n' in src.
func newlineIndex(src []byte) []int {
	var idx []int
	for i, b := range src {
		if b == '\n' {
			idx = append(idx, i)
		}
	}
	return idx
}

// lineOf returns the 0-based line containing byte offset off.
func (w *eventWriter) lineOf(off int) int {
	n, _ := slices.BinarySearch(w.newlines, off)
	return n
}

func (w *eventWriter) lineStart(line int) int {
	if line == 0 {
		return 0
	}
	return w.newlines[line-1] + 1
}

func (w *eventWriter) line(i int) string {
	start := w.lineStart(i)
	end := len(w.src)
	if i < len(w.newlines) {
		end = w.newlines[i]
	}
	return strings.TrimSuffix(string(w.src[start:end]), "\r")
}
