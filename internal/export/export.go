// Package export renders parsed documents for non-interactive use: heading
// lists, box-drawn trees, JSON and YAML documents, level counts and section
// lookups.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pfassina/treemd/internal/config"
	"github.com/pfassina/treemd/internal/markdown"
	"github.com/pfassina/treemd/internal/ui"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrInvalidLevel    = errors.New("heading level must be between 1 and 6")
	ErrNoHeading       = errors.New("no heading at or before line")
)

// Printer writes document views in one output format.
type Printer struct {
	w      io.Writer
	format string
	styled bool
}

// NewPrinter returns a printer for format (see config.Output*). styled adds
// lipgloss colors to plain and tree output; it is ignored for JSON and YAML.
func NewPrinter(w io.Writer, format string, styled bool) (*Printer, error) {
	if !config.ValidOutput(format) {
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return &Printer{w: w, format: format, styled: styled}, nil
}

// Headings prints a flat heading list.
func (p *Printer) Headings(headings []markdown.Heading) error {
	switch p.format {
	case config.OutputJSON:
		return p.json(headingsOrEmpty(headings))
	case config.OutputYAML:
		return p.yaml(headingsOrEmpty(headings))
	case config.OutputTree:
		return p.Tree(markdown.BuildTree(headings))
	}

	for _, h := range headings {
		line := strings.Repeat("#", h.Level) + " " + h.Text
		if _, err := fmt.Fprintln(p.w, p.level(h.Level, line)); err != nil {
			return err
		}
	}
	return nil
}

// Tree prints the heading forest with box-drawing connectors.
func (p *Printer) Tree(forest []*markdown.HeadingNode) error {
	switch p.format {
	case config.OutputJSON, config.OutputYAML:
		return p.Headings(markdown.Flatten(forest))
	}

	var b strings.Builder
	var walk func(nodes []*markdown.HeadingNode, prefix string)
	walk = func(nodes []*markdown.HeadingNode, prefix string) {
		for i, n := range nodes {
			last := i == len(nodes)-1
			connector, indent := "├── ", "│   "
			if last {
				connector, indent = "└── ", "    "
			}
			label := strings.Repeat("#", n.Heading.Level) + " " + n.Heading.Text
			b.WriteString(p.dim(prefix + connector))
			b.WriteString(p.level(n.Heading.Level, label))
			b.WriteByte('\n')
			walk(n.Children, prefix+indent)
		}
	}
	walk(forest, "")

	_, err := io.WriteString(p.w, b.String())
	return err
}

// Document prints the assembled document tree.
func (p *Printer) Document(out markdown.DocumentOutput) error {
	switch p.format {
	case config.OutputJSON:
		return p.json(out)
	case config.OutputYAML:
		return p.yaml(out)
	}

	var headings []markdown.Heading
	markdown.Walk(out.Document.Sections, func(s *markdown.Section, _ int) bool {
		headings = append(headings, markdown.Heading{Level: s.Level, Text: s.Title})
		return true
	})
	if p.format == config.OutputTree {
		return p.Tree(markdown.BuildTree(headings))
	}
	return p.Headings(headings)
}

// Section prints one section: its heading line followed by the raw body.
func (p *Printer) Section(s *markdown.Section) error {
	switch p.format {
	case config.OutputJSON:
		return p.json(s)
	case config.OutputYAML:
		return p.yaml(s)
	}

	heading := strings.Repeat("#", s.Level) + " " + s.Title
	if _, err := fmt.Fprintln(p.w, p.level(s.Level, heading)); err != nil {
		return err
	}
	if s.Content.Raw == "" {
		return nil
	}
	_, err := fmt.Fprintf(p.w, "\n%s\n", s.Content.Raw)
	return err
}

// Counts prints the number of headings per level, skipping empty levels.
func (p *Printer) Counts(counts [6]int) error {
	switch p.format {
	case config.OutputJSON, config.OutputYAML:
		m := make(map[string]int)
		for i, n := range counts {
			if n > 0 {
				m[fmt.Sprintf("h%d", i+1)] = n
			}
		}
		if p.format == config.OutputJSON {
			return p.json(m)
		}
		return p.yaml(m)
	}

	total := 0
	for i, n := range counts {
		total += n
		if n == 0 {
			continue
		}
		label := fmt.Sprintf("H%d: %d", i+1, n)
		if _, err := fmt.Fprintln(p.w, p.level(i+1, label)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(p.w, "Total: %d\n", total)
	return err
}

// linkView is the exported shape of a link.
type linkView struct {
	Text   string `json:"text" yaml:"text"`
	Kind   string `json:"kind" yaml:"kind"`
	Target string `json:"target" yaml:"target"`
	Offset int    `json:"offset" yaml:"offset"`
}

// Links prints links numbered from 1 in extraction order.
func (p *Printer) Links(links []markdown.Link) error {
	views := make([]linkView, 0, len(links))
	for _, l := range links {
		views = append(views, linkView{
			Text:   l.Text,
			Kind:   l.Target.Kind.String(),
			Target: l.Target.String(),
			Offset: l.Offset,
		})
	}

	switch p.format {
	case config.OutputJSON:
		return p.json(views)
	case config.OutputYAML:
		return p.yaml(views)
	}

	for i, v := range views {
		text := v.Text
		if p.styled {
			text = ui.LinkText.Render(text)
		}
		if _, err := fmt.Fprintf(p.w, "[%d] %s -> %s (%s)\n", i+1, text, v.Target, v.Kind); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func (p *Printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func (p *Printer) level(level int, s string) string {
	if !p.styled {
		return s
	}
	return ui.Level(level).Render(s)
}

func (p *Printer) dim(s string) string {
	if !p.styled {
		return s
	}
	return ui.DimText.Render(s)
}

func headingsOrEmpty(hs []markdown.Heading) []markdown.Heading {
	if hs == nil {
		return []markdown.Heading{}
	}
	return hs
}
