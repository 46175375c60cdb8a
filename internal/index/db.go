package index

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    basename_key TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    mod_time INTEGER NOT NULL,
    size INTEGER NOT NULL DEFAULT 0,
    hash TEXT NOT NULL DEFAULT '',
    heading_count INTEGER NOT NULL DEFAULT 0,
    max_depth INTEGER NOT NULL DEFAULT 0,
    word_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_documents_basename_key ON documents(basename_key);

CREATE TABLE IF NOT EXISTS headings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    level INTEGER NOT NULL,
    text TEXT NOT NULL,
    slug TEXT NOT NULL DEFAULT '',
    line INTEGER NOT NULL
);

CREATE VIRTUAL TABLE IF NOT EXISTS sections_fts USING fts5(
    title, content,
    document_id UNINDEXED, slug UNINDEXED, line UNINDEXED,
    tokenize='porter unicode61 remove_diacritics 2'
);

CREATE TABLE IF NOT EXISTS tags (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS document_tags (
    document_id INTEGER REFERENCES documents(id) ON DELETE CASCADE,
    tag_id INTEGER REFERENCES tags(id) ON DELETE CASCADE,
    PRIMARY KEY (document_id, tag_id)
);

CREATE TABLE IF NOT EXISTS links (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    kind TEXT NOT NULL,
    text TEXT NOT NULL DEFAULT '',
    target TEXT NOT NULL,
    target_key TEXT NOT NULL DEFAULT '',
    anchor TEXT NOT NULL DEFAULT '',
    alias TEXT NOT NULL DEFAULT '',
    byte_offset INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_links_target_key ON links(target_key);
`

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
}

// Document is the per-file row of the index.
type Document struct {
	Path         string
	Title        string
	Hash         string
	ModTime      int64
	Size         int64
	HeadingCount int
	MaxDepth     int
	WordCount    int
}

// Open opens or creates the database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return initDB(conn)
}

// OpenMemory opens an in-memory database (for testing).
func OpenMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Each pooled connection would get its own empty in-memory database.
	conn.SetMaxOpenConns(1)
	return initDB(conn)
}

func initDB(conn *sql.DB) (*DB, error) {
	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB for advanced queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// UpsertDocument inserts or updates a document and returns its ID.
func (db *DB) UpsertDocument(d Document) (int64, error) {
	_, err := db.conn.Exec(`
		INSERT INTO documents (path, basename_key, title, mod_time, size, hash, heading_count, max_depth, word_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			basename_key = excluded.basename_key,
			title = excluded.title,
			mod_time = excluded.mod_time,
			size = excluded.size,
			hash = excluded.hash,
			heading_count = excluded.heading_count,
			max_depth = excluded.max_depth,
			word_count = excluded.word_count
	`, d.Path, canonicalBasenameKey(d.Path), d.Title, d.ModTime, d.Size, d.Hash, d.HeadingCount, d.MaxDepth, d.WordCount)
	if err != nil {
		return 0, err
	}

	// Get the ID (either inserted or existing)
	var id int64
	err = db.conn.QueryRow("SELECT id FROM documents WHERE path = ?", d.Path).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// InsertSection adds one section to the full-text index.
func (db *DB) InsertSection(documentID int64, title, slug, content string, line int) error {
	_, err := db.conn.Exec(
		"INSERT INTO sections_fts (title, content, document_id, slug, line) VALUES (?, ?, ?, ?, ?)",
		title, content, documentID, slug, line)
	return err
}

// ClearDocumentSections removes a document's sections from the full-text index.
func (db *DB) ClearDocumentSections(documentID int64) error {
	_, err := db.conn.Exec("DELETE FROM sections_fts WHERE document_id = ?", documentID)
	return err
}

// UpsertTag ensures a tag exists and returns its ID.
func (db *DB) UpsertTag(name string) (int64, error) {
	_, err := db.conn.Exec("INSERT OR IGNORE INTO tags (name) VALUES (?)", name)
	if err != nil {
		return 0, err
	}
	var id int64
	err = db.conn.QueryRow("SELECT id FROM tags WHERE name = ?", name).Scan(&id)
	return id, err
}

// LinkDocumentTag associates a tag with a document.
func (db *DB) LinkDocumentTag(documentID, tagID int64) error {
	_, err := db.conn.Exec("INSERT OR IGNORE INTO document_tags (document_id, tag_id) VALUES (?, ?)", documentID, tagID)
	return err
}

// ClearDocumentTags removes all tag associations for a document.
func (db *DB) ClearDocumentTags(documentID int64) error {
	_, err := db.conn.Exec("DELETE FROM document_tags WHERE document_id = ?", documentID)
	return err
}

// LinkRecord is a stored link.
type LinkRecord struct {
	Kind   string
	Text   string
	Target string
	Anchor string
	Alias  string
	Offset int
}

// InsertLink adds a link record. Links that point at a file also get a
// target key (lowercased basename) so backlinks can be found by name.
func (db *DB) InsertLink(sourceID int64, l LinkRecord, targetFile string) error {
	key := ""
	if targetFile != "" {
		key = canonicalBasenameKey(targetFile)
	}
	_, err := db.conn.Exec(`
		INSERT INTO links (source_id, kind, text, target, target_key, anchor, alias, byte_offset)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sourceID, l.Kind, l.Text, l.Target, key, l.Anchor, l.Alias, l.Offset)
	return err
}

// ClearDocumentLinks removes all links from a document.
func (db *DB) ClearDocumentLinks(documentID int64) error {
	_, err := db.conn.Exec("DELETE FROM links WHERE source_id = ?", documentID)
	return err
}

// InsertHeading adds a heading record.
func (db *DB) InsertHeading(documentID int64, level int, text, slug string, line int) error {
	_, err := db.conn.Exec("INSERT INTO headings (document_id, level, text, slug, line) VALUES (?, ?, ?, ?, ?)",
		documentID, level, text, slug, line)
	return err
}

// ClearDocumentHeadings removes all headings for a document.
func (db *DB) ClearDocumentHeadings(documentID int64) error {
	_, err := db.conn.Exec("DELETE FROM headings WHERE document_id = ?", documentID)
	return err
}

// GetDocumentHash returns the stored hash for a document path.
func (db *DB) GetDocumentHash(path string) (string, error) {
	var hash string
	err := db.conn.QueryRow("SELECT hash FROM documents WHERE path = ?", path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}

// DeleteDocument removes a document and all its related data.
func (db *DB) DeleteDocument(path string) error {
	var id int64
	err := db.conn.QueryRow("SELECT id FROM documents WHERE path = ?", path).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	// FTS rows are not covered by foreign keys.
	if err := db.ClearDocumentSections(id); err != nil {
		return err
	}
	_, err = db.conn.Exec("DELETE FROM documents WHERE id = ?", id)
	return err
}

func canonicalBasenameKey(path string) string {
	return strings.ToLower(filepath.Base(path))
}
