package markdown

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is a leading YAML block delimited by --- lines.
type Frontmatter struct {
	Title   string
	Tags    []string
	Fields  map[string]any
	EndLine int // 1-based line of the closing delimiter
	Err     error
}

// ExtractFrontmatter decodes the frontmatter block at the top of content.
// It returns nil when there is none or when it is never closed. A block that
// is closed but not valid YAML is still returned, with Err set, so callers
// can skip over it.
func ExtractFrontmatter(content []byte) *Frontmatter {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)

	if !scanner.Scan() {
		return nil
	}
	if strings.TrimSpace(scanner.Text()) != "---" {
		return nil
	}

	var body strings.Builder
	lineNum := 1
	end := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			end = lineNum
			break
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	if end == 0 {
		return nil // unclosed frontmatter
	}

	fm := &Frontmatter{EndLine: end}
	if err := yaml.Unmarshal([]byte(body.String()), &fm.Fields); err != nil {
		fm.Err = fmt.Errorf("decode frontmatter: %w", err)
		fm.Fields = nil
		return fm
	}

	if title, ok := fm.Fields["title"].(string); ok {
		fm.Title = title
	}
	switch tags := fm.Fields["tags"].(type) {
	case []any:
		for _, t := range tags {
			if s := strings.TrimSpace(fmt.Sprint(t)); s != "" {
				fm.Tags = append(fm.Tags, s)
			}
		}
	case string:
		for _, t := range strings.Split(tags, ",") {
			if s := strings.TrimSpace(t); s != "" {
				fm.Tags = append(fm.Tags, s)
			}
		}
	}

	return fm
}
