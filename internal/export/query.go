package export

import (
	"fmt"
	"strings"

	"github.com/pfassina/treemd/internal/markdown"
)

// FilterText keeps headings whose text contains query, ignoring case.
func FilterText(headings []markdown.Heading, query string) []markdown.Heading {
	q := strings.ToLower(query)
	var out []markdown.Heading
	for _, h := range headings {
		if strings.Contains(strings.ToLower(h.Text), q) {
			out = append(out, h)
		}
	}
	return out
}

// FilterLevel keeps headings at exactly level.
func FilterLevel(headings []markdown.Heading, level int) ([]markdown.Heading, error) {
	if level < 1 || level > 6 {
		return nil, fmt.Errorf("level %d: %w", level, ErrInvalidLevel)
	}
	var out []markdown.Heading
	for _, h := range headings {
		if h.Level == level {
			out = append(out, h)
		}
	}
	return out, nil
}

// CountByLevel tallies headings per level; index 0 is level 1.
func CountByLevel(headings []markdown.Heading) [6]int {
	var counts [6]int
	for _, h := range headings {
		if h.Level >= 1 && h.Level <= 6 {
			counts[h.Level-1]++
		}
	}
	return counts
}

// FindSection returns the first section in pre-order whose title or slug
// matches name, ignoring case.
func FindSection(out markdown.DocumentOutput, name string) (*markdown.Section, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	slug := markdown.Slugify(name)

	var found *markdown.Section
	markdown.Walk(out.Document.Sections, func(s *markdown.Section, _ int) bool {
		if strings.ToLower(s.Title) == want || (slug != "" && s.Slug == slug) {
			found = s
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrSectionNotFound)
	}
	return found, nil
}

// HeadingAtLine returns the last heading that starts at or before line
// (1-based): the heading whose section contains that line.
func HeadingAtLine(headings []markdown.Heading, line int) (markdown.Heading, error) {
	var found *markdown.Heading
	for i := range headings {
		if headings[i].Line > line {
			break
		}
		found = &headings[i]
	}
	if found == nil {
		return markdown.Heading{}, fmt.Errorf("line %d: %w", line, ErrNoHeading)
	}
	return *found, nil
}
