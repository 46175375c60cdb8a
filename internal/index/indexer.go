package index

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfassina/treemd/internal/logger"
	"github.com/pfassina/treemd/internal/markdown"
)

// Indexer manages the document indexing pipeline.
type Indexer struct {
	db     *DB
	parser *markdown.Parser
	root   string
	log    *logger.Logger
}

// Stats summarizes an IndexAll run.
type Stats struct {
	Indexed int
	Skipped int
	Failed  int
}

func NewIndexer(db *DB, root string, log *logger.Logger) *Indexer {
	if log == nil {
		log = logger.Discard()
	}
	return &Indexer{
		db:     db,
		parser: markdown.NewParser(),
		root:   root,
		log:    log,
	}
}

// IndexAll indexes every markdown file under the root, skipping hidden
// directories. Files that fail are logged and counted; the walk goes on.
func (idx *Indexer) IndexAll(ctx context.Context) (Stats, error) {
	var stats Stats
	start := time.Now()

	err := filepath.WalkDir(idx.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			idx.log.FileError(path, err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		// Skip hidden directories
		if d.IsDir() && strings.HasPrefix(d.Name(), ".") && path != idx.root {
			return filepath.SkipDir
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		changed, err := idx.IndexFile(path)
		switch {
		case err != nil:
			stats.Failed++
			idx.log.FileError(path, err)
		case changed:
			stats.Indexed++
		default:
			stats.Skipped++
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("walk %s: %w", idx.root, err)
	}

	idx.log.IndexCompleted(idx.root, stats.Indexed, stats.Skipped, time.Since(start))
	return stats, nil
}

// IndexFile indexes a single markdown file. It reports false when the file
// is unchanged since it was last indexed.
func (idx *Indexer) IndexFile(absPath string) (bool, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", absPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", absPath, err)
	}

	relPath := idx.relPath(absPath)

	// Check if file has changed
	hash := fmt.Sprintf("%x", sha256.Sum256(content))
	existingHash, _ := idx.db.GetDocumentHash(relPath)
	if hash == existingHash {
		idx.log.Skipped(relPath, "unchanged")
		return false, nil
	}

	doc := idx.parser.Parse(string(content))
	out := idx.parser.Build(doc, relPath)
	meta := out.Document.Metadata

	docID, err := idx.db.UpsertDocument(Document{
		Path:         relPath,
		Title:        documentTitle(doc, relPath),
		Hash:         hash,
		ModTime:      info.ModTime().Unix(),
		Size:         info.Size(),
		HeadingCount: meta.HeadingCount,
		MaxDepth:     meta.MaxDepth,
		WordCount:    meta.WordCount,
	})
	if err != nil {
		return false, fmt.Errorf("upsert document: %w", err)
	}

	// Update headings
	if err := idx.db.ClearDocumentHeadings(docID); err != nil {
		return false, fmt.Errorf("clear headings: %w", err)
	}
	for _, h := range doc.Headings {
		if err := idx.db.InsertHeading(docID, h.Level, h.Text, markdown.Slugify(h.Text), h.Line); err != nil {
			return false, fmt.Errorf("insert heading %q: %w", h.Text, err)
		}
	}

	// Update sections
	if err := idx.db.ClearDocumentSections(docID); err != nil {
		return false, fmt.Errorf("clear sections: %w", err)
	}
	var sectionErr error
	markdown.Walk(out.Document.Sections, func(s *markdown.Section, _ int) bool {
		if err := idx.db.InsertSection(docID, s.Title, s.Slug, s.Content.Raw, s.Position.Line); err != nil {
			sectionErr = fmt.Errorf("insert section %q: %w", s.Title, err)
			return false
		}
		return true
	})
	if sectionErr != nil {
		return false, sectionErr
	}

	// Update tags
	if err := idx.db.ClearDocumentTags(docID); err != nil {
		return false, fmt.Errorf("clear tags: %w", err)
	}
	if doc.Frontmatter != nil {
		for _, tag := range doc.Frontmatter.Tags {
			tagID, err := idx.db.UpsertTag(tag)
			if err != nil {
				return false, fmt.Errorf("upsert tag %q: %w", tag, err)
			}
			if err := idx.db.LinkDocumentTag(docID, tagID); err != nil {
				return false, fmt.Errorf("link tag %q: %w", tag, err)
			}
		}
	}

	// Update links
	if err := idx.db.ClearDocumentLinks(docID); err != nil {
		return false, fmt.Errorf("clear links: %w", err)
	}
	links := idx.parser.ExtractLinks(doc.Content)
	for _, l := range links {
		rec := LinkRecord{
			Kind:   l.Target.Kind.String(),
			Text:   l.Text,
			Target: l.Target.String(),
			Anchor: markdown.JumpAnchor(l.Target),
			Alias:  l.Target.Alias,
			Offset: l.Offset,
		}
		if err := idx.db.InsertLink(docID, rec, markdown.ResolvePath(relPath, l.Target)); err != nil {
			return false, fmt.Errorf("insert link %q: %w", rec.Target, err)
		}
	}

	idx.log.FileIndexed(relPath, len(doc.Headings), len(links))
	return true, nil
}

// RemoveFile removes a file from the index.
func (idx *Indexer) RemoveFile(absPath string) error {
	return idx.db.DeleteDocument(idx.relPath(absPath))
}

func (idx *Indexer) relPath(absPath string) string {
	rel, err := filepath.Rel(idx.root, absPath)
	if err != nil {
		return filepath.ToSlash(absPath)
	}
	return filepath.ToSlash(rel)
}

// documentTitle prefers the frontmatter title, then the first level-1
// heading, then the file name.
func documentTitle(doc *markdown.Document, path string) string {
	if doc.Frontmatter != nil && doc.Frontmatter.Title != "" {
		return doc.Frontmatter.Title
	}
	for _, h := range doc.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return titleFromPath(path)
}

func titleFromPath(path string) string {
	name := markdown.NoteNameFromPath(path)
	// Convert hyphens/underscores to spaces
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return name
}
