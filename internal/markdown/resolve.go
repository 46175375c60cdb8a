package markdown

import (
	"path/filepath"
	"strings"
)

// ResolveWikiLinkTarget resolves a wiki link target to a file path.
// It handles:
//   - "note" -> "note.md"
//   - "folder/note" -> "folder/note.md"
//   - "note.md" -> "note.md" (already has extension)
//   - "note#section" -> "note.md" (section dropped)
func ResolveWikiLinkTarget(target string) string {
	note, _ := SplitWikiTarget(target)
	if note == "" {
		return ""
	}

	if strings.HasSuffix(note, ".md") {
		return note
	}
	return note + ".md"
}

// NoteNameFromPath extracts the note name from a file path.
// "folder/my-note.md" -> "my-note"
func NoteNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ResolvePath resolves the file a link points to, relative to the directory
// of the document containing it. Anchors and external links have no file and
// yield "".
func ResolvePath(from string, t LinkTarget) string {
	var rel string
	switch t.Kind {
	case LinkRelativeFile:
		rel = t.Path
	case LinkWiki:
		rel = ResolveWikiLinkTarget(t.Target)
	}
	if rel == "" {
		return ""
	}
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(filepath.Dir(from), filepath.FromSlash(rel))
}

// JumpAnchor returns the in-document anchor a link jumps to, if any: the
// anchor of an anchor or relative-file link, or the slug of a wikilink's
// "#section" part.
func JumpAnchor(t LinkTarget) string {
	switch t.Kind {
	case LinkAnchor, LinkRelativeFile:
		return t.Anchor
	case LinkWiki:
		if _, section := SplitWikiTarget(t.Target); section != "" {
			return Slugify(section)
		}
	}
	return ""
}

// FindSlug returns the first heading whose slug equals anchor. Anchors are
// compared after slugifying so "#Install-Steps" still finds "Install Steps".
func FindSlug(headings []Heading, anchor string) (Heading, bool) {
	want := Slugify(anchor)
	for _, h := range headings {
		if Slugify(h.Text) == want {
			return h, true
		}
	}
	return Heading{}, false
}
