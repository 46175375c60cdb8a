package markdown

import "strings"

// SectionSpan locates a heading's section in the full document source.
type SectionSpan struct {
	Content string // trimmed section body, excluding the heading line
	Offset  int    // byte offset where the body starts
	Line    int    // 1-based line following the heading line
}

// ExtractSection finds the first occurrence of the heading's marker line
// ("## Text") in source and returns the text up to the next heading of the
// same or a shallower level. Lines inside ``` fences are never headings.
//
// When the marker is not found, for example because the heading repeats or
// its source used inline markup that the tokenizer stripped, the zero span is
// returned. That is the documented behaviour for ambiguous headings, not an
// error.
func ExtractSection(h Heading, source string) SectionSpan {
	marker := strings.Repeat("#", h.Level) + " " + h.Text
	offset := strings.Index(source, marker)
	if offset < 0 {
		return SectionSpan{}
	}

	line := strings.Count(source[:offset], "\n") + 1

	rest := source[offset:]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 {
		return SectionSpan{Offset: len(source), Line: line + 1}
	}
	bodyStart := offset + nl + 1
	body := source[bodyStart:]
	end := nextHeading(body, h.Level)

	return SectionSpan{
		Content: strings.TrimSpace(body[:end]),
		Offset:  bodyStart,
		Line:    line + 1,
	}
}

// nextHeading returns the offset in content of the first line that is a
// heading at level <= level outside fenced code, or len(content).
func nextHeading(content string, level int) int {
	inFence := false
	pos := 0
	for pos < len(content) {
		end := strings.IndexByte(content[pos:], '\n')
		next := len(content)
		if end >= 0 {
			next = pos + end + 1
		}
		line := strings.TrimRight(content[pos:next], "\r\n")

		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "```") {
			inFence = !inFence
		}
		if !inFence {
			if l, ok := markerRun(line); ok && l <= level {
				return pos
			}
		}
		pos = next
	}
	return len(content)
}
