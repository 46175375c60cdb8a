package markdown

import "strings"

// LinkKind discriminates LinkTarget.
type LinkKind int

const (
	LinkAnchor LinkKind = iota
	LinkRelativeFile
	LinkWiki
	LinkExternal
)

func (k LinkKind) String() string {
	switch k {
	case LinkAnchor:
		return "anchor"
	case LinkRelativeFile:
		return "relative_file"
	case LinkWiki:
		return "wikilink"
	case LinkExternal:
		return "external"
	default:
		return "unknown"
	}
}

// LinkTarget is where a link points. Fields by kind:
//
//	anchor         Anchor
//	relative_file  Path, Anchor (empty when absent)
//	wikilink       Target, Alias (empty when absent)
//	external       URL
type LinkTarget struct {
	Kind   LinkKind
	Anchor string
	Path   string
	Target string
	Alias  string
	URL    string
}

// String renders the target the way it is written in markdown.
func (t LinkTarget) String() string {
	switch t.Kind {
	case LinkAnchor:
		return "#" + t.Anchor
	case LinkRelativeFile:
		if t.Anchor != "" {
			return t.Path + "#" + t.Anchor
		}
		return t.Path
	case LinkWiki:
		if t.Alias != "" {
			return "[[" + t.Target + "|" + t.Alias + "]]"
		}
		return "[[" + t.Target + "]]"
	default:
		return t.URL
	}
}

// Link is one link found in a markdown fragment.
type Link struct {
	Text   string
	Target LinkTarget
	Offset int // byte offset into the scanned fragment
}

// ClassifyURL maps a link destination to a target: "#..." is an anchor,
// http(s) URLs are external, anything else is a relative file with an
// optional "#anchor" suffix.
func ClassifyURL(url string) LinkTarget {
	switch {
	case strings.HasPrefix(url, "#"):
		return LinkTarget{Kind: LinkAnchor, Anchor: url[1:]}
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return LinkTarget{Kind: LinkExternal, URL: url}
	}
	path, anchor, _ := strings.Cut(url, "#")
	return LinkTarget{Kind: LinkRelativeFile, Path: path, Anchor: anchor}
}

// ExtractLinks catalogs the links of a markdown fragment. Standard links come
// first in document order, followed by [[wikilinks]] in document order; the
// combined result is therefore not sorted by Offset when both are present.
func (p *Parser) ExtractLinks(fragment string) []Link {
	var links []Link

	var (
		inLink bool
		text   strings.Builder
		dest   string
		offset int
	)
	for _, e := range p.tok.Tokenize([]byte(fragment)) {
		switch e.Kind {
		case EventLink:
			if !e.End {
				inLink = true
				dest = e.Dest
				offset = e.Offset
				text.Reset()
				continue
			}
			if inLink {
				links = append(links, Link{
					Text:   text.String(),
					Target: ClassifyURL(dest),
					Offset: offset,
				})
				inLink = false
			}
		case EventText, EventInlineCode:
			if inLink {
				text.WriteString(e.Text)
			}
		}
	}

	return append(links, ScanWikiLinks(fragment)...)
}
