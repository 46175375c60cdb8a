package markdown

import "strings"

// ScanWikiLinks finds [[target]] and [[target|alias]] runs by scanning
// characters directly; the markdown grammar has no notion of them. A run with
// no closing ]] before the end of input yields nothing. Target and alias are
// trimmed and the link text is the alias when present, else the target.
func ScanWikiLinks(content string) []Link {
	var links []Link

	pos := 0
	for {
		idx := strings.Index(content[pos:], "[[")
		if idx < 0 {
			break
		}
		start := pos + idx
		bodyStart := start + 2

		end := strings.Index(content[bodyStart:], "]]")
		if end < 0 {
			break // unterminated
		}
		inner := content[bodyStart : bodyStart+end]
		pos = bodyStart + end + 2

		if inner == "" {
			continue
		}

		target, alias, hasAlias := strings.Cut(inner, "|")
		target = strings.TrimSpace(target)
		alias = strings.TrimSpace(alias)

		text := target
		if hasAlias {
			text = alias
		}
		links = append(links, Link{
			Text:   text,
			Target: LinkTarget{Kind: LinkWiki, Target: target, Alias: alias},
			Offset: start,
		})
	}

	return links
}

// SplitWikiTarget separates a wikilink target into note and section:
// "note#section" -> ("note", "section").
func SplitWikiTarget(target string) (string, string) {
	note, section, _ := strings.Cut(target, "#")
	return strings.TrimSpace(note), strings.TrimSpace(section)
}
