package markdown

import (
	"strconv"
	"strings"
)

const (
	detailsOpen       = "<details"
	detailsClose      = "</details>"
	summaryOpen       = "<summary"
	summaryClose      = "</summary>"
	detailsMarkPrefix = "[DETAILS_BLOCK_"
	detailsMarkSuffix = "]"
)

// extractDetails cuts every <details>...</details> region out of markdown,
// parses its body into a Details block and leaves a placeholder paragraph in
// its place. Tag matching is literal: a details region cannot itself contain
// an unescaped <details>. Regions without a closing tag stay in the text.
func (p *Parser) extractDetails(markdown string) (string, []Block) {
	if !strings.Contains(markdown, detailsOpen) {
		return markdown, nil
	}

	var details []Block
	var out strings.Builder
	pos := 0

	for pos < len(markdown) {
		idx := strings.Index(markdown[pos:], detailsOpen)
		if idx < 0 {
			break
		}
		start := pos + idx

		tagEnd := strings.IndexByte(markdown[start:], '>')
		if tagEnd < 0 {
			break
		}
		bodyStart := start + tagEnd + 1

		closeIdx := strings.Index(markdown[bodyStart:], detailsClose)
		if closeIdx < 0 {
			break
		}
		bodyEnd := bodyStart + closeIdx
		regionEnd := bodyEnd + len(detailsClose)

		summary, body := splitSummary(markdown[bodyStart:bodyEnd])
		body = strings.TrimSpace(body)

		var nested []Block
		if body != "" {
			nested = p.ParseContent(body, 0)
		}
		details = append(details, Block{
			Type:    BlockDetails,
			Summary: summary,
			Content: body,
			Blocks:  nested,
		})

		out.WriteString(markdown[pos:start])
		out.WriteString(detailsPlaceholder(len(details)-1, strings.Count(markdown[start:regionEnd], "\n")))
		pos = regionEnd
	}
	out.WriteString(markdown[pos:])

	return out.String(), details
}

// splitSummary returns the trimmed <summary> text (empty when absent) and
// everything after </summary> (the whole region when absent).
func splitSummary(region string) (string, string) {
	summary := ""
	if open := strings.Index(region, summaryOpen); open >= 0 {
		if tagEnd := strings.IndexByte(region[open:], '>'); tagEnd >= 0 {
			textStart := open + tagEnd + 1
			if end := strings.Index(region[textStart:], summaryClose); end >= 0 {
				summary = strings.TrimSpace(region[textStart : textStart+end])
			}
		}
	}

	body := region
	if end := strings.Index(region, summaryClose); end >= 0 {
		body = region[end+len(summaryClose):]
	}
	return summary, body
}

// detailsPlaceholder renders placeholder i as its own paragraph. Extra blank
// lines keep the line count of the replaced region so that code blocks after
// it report the same lines.
func detailsPlaceholder(i, regionNewlines int) string {
	mark := detailsMarkPrefix + strconv.Itoa(i) + detailsMarkSuffix
	pad := max(regionNewlines-4, 0)
	return "\n\n" + mark + "\n\n" + strings.Repeat("\n", pad)
}

// substituteDetails swaps each placeholder paragraph for its Details block.
func substituteDetails(blocks []Block, details []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Type == BlockParagraph {
			if i, ok := placeholderIndex(b.Content); ok && i < len(details) {
				out = append(out, details[i])
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

func placeholderIndex(content string) (int, bool) {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, detailsMarkPrefix) || !strings.HasSuffix(s, detailsMarkSuffix) {
		return 0, false
	}
	n, err := strconv.Atoi(s[len(detailsMarkPrefix) : len(s)-len(detailsMarkSuffix)])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
