package index

import (
	"database/sql"
	"path/filepath"
)

// SectionResult is a full-text match on one section.
type SectionResult struct {
	Path    string
	Title   string
	Slug    string
	Line    int
	Snippet string
	Rank    float64
}

// BacklinkResult represents a link from another document.
type BacklinkResult struct {
	SourcePath  string
	SourceTitle string
	Kind        string
	Text        string
	Anchor      string
	Offset      int
}

// HeadingResult represents a heading in a document.
type HeadingResult struct {
	Path  string
	Level int
	Text  string
	Slug  string
	Line  int
}

// DocumentResult is a listed document.
type DocumentResult struct {
	Path         string
	Title        string
	HeadingCount int
	WordCount    int
}

// SearchSections runs an FTS5 query over section titles and bodies.
func (db *DB) SearchSections(query string, limit int) ([]SectionResult, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(`
		SELECT d.path, sections_fts.title, sections_fts.slug, sections_fts.line,
		       snippet(sections_fts, 1, '[', ']', '…', 12), rank
		FROM sections_fts
		JOIN documents d ON d.id = sections_fts.document_id
		WHERE sections_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, err
	}

	var results []SectionResult
	for rows.Next() {
		var r SectionResult
		if err := rows.Scan(&r.Path, &r.Title, &r.Slug, &r.Line, &r.Snippet, &r.Rank); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// SearchHeadings searches headings across all documents.
func (db *DB) SearchHeadings(query string, limit int) ([]HeadingResult, error) {
	if limit <= 0 {
		limit = 50
	}

	pattern := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT d.path, h.level, h.text, h.slug, h.line
		FROM headings h
		JOIN documents d ON d.id = h.document_id
		WHERE h.text LIKE ?
		ORDER BY d.path, h.line
		LIMIT ?
	`, pattern, limit)
	if err != nil {
		return nil, err
	}

	var results []HeadingResult
	for rows.Next() {
		var r HeadingResult
		if err := rows.Scan(&r.Path, &r.Level, &r.Text, &r.Slug, &r.Line); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// Backlinks returns links from other documents to the given path.
// Matches by basename since wikilinks name files, not paths.
func (db *DB) Backlinks(targetPath string) ([]BacklinkResult, error) {
	rows, err := db.conn.Query(`
		SELECT d.path, d.title, l.kind, l.text, l.anchor, l.byte_offset
		FROM links l
		JOIN documents d ON d.id = l.source_id
		WHERE l.target_key = ?
		ORDER BY d.path, l.byte_offset
	`, canonicalBasenameKey(targetPath))
	if err != nil {
		return nil, err
	}

	var results []BacklinkResult
	for rows.Next() {
		var r BacklinkResult
		if err := rows.Scan(&r.SourcePath, &r.SourceTitle, &r.Kind, &r.Text, &r.Anchor, &r.Offset); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// ListDocuments returns all documents, sorted by path.
func (db *DB) ListDocuments(limit int) ([]DocumentResult, error) {
	if limit <= 0 {
		limit = 200
	}

	rows, err := db.conn.Query(`
		SELECT path, title, heading_count, word_count
		FROM documents
		ORDER BY path
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}

	var results []DocumentResult
	for rows.Next() {
		var r DocumentResult
		if err := rows.Scan(&r.Path, &r.Title, &r.HeadingCount, &r.WordCount); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// FindDocumentByBasename returns the relative path of a document matching
// the given basename, ignoring case. Returns empty string if no match is found.
func (db *DB) FindDocumentByBasename(basename string) (string, error) {
	var path string
	err := db.conn.QueryRow(
		`SELECT path FROM documents WHERE basename_key = ? ORDER BY path LIMIT 1`,
		canonicalBasenameKey(filepath.Base(basename)),
	).Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return path, err
}
