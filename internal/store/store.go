// Package store persists documents and their segmented chapters in an
// embedded SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a document or chapter does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	filename    TEXT NOT NULL,
	granularity TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS chapters (
	id          TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	title       TEXT NOT NULL,
	content     TEXT NOT NULL,
	level       INTEGER NOT NULL,
	ord         INTEGER NOT NULL,
	part        INTEGER NOT NULL DEFAULT 0,
	number      INTEGER NOT NULL DEFAULT 0,
	token_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_chapters_document ON chapters(document_id, ord, part);
`

type Document struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Filename     string    `json:"filename"`
	Granularity  string    `json:"granularity"`
	CreatedAt    time.Time `json:"created_at"`
	ChapterCount int       `json:"chapter_count"`
}

type Chapter struct {
	ID         string `json:"id"`
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Level      int    `json:"level"`
	Ord        int    `json:"order"`
	Part       int    `json:"part"`
	Number     int    `json:"number,omitempty"`
	TokenCount int    `json:"token_count"`
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	if path == ":memory:" {
		dsn = ":memory:?_pragma=foreign_keys(1)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDocument inserts the document and all of its chapters in one
// transaction.
func (s *Store) SaveDocument(ctx context.Context, doc Document, chapters []Chapter) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, title, filename, granularity, created_at) VALUES (?, ?, ?, ?, ?)`,
		doc.ID, doc.Title, doc.Filename, doc.Granularity, doc.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	for _, ch := range chapters {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO chapters (id, document_id, title, content, level, ord, part, number, token_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ch.ID, doc.ID, ch.Title, ch.Content, ch.Level, ch.Ord, ch.Part, ch.Number, ch.TokenCount)
		if err != nil {
			return fmt.Errorf("insert chapter %q: %w", ch.Title, err)
		}
	}

	return tx.Commit()
}

func (s *Store) Document(ctx context.Context, id string) (Document, error) {
	var doc Document
	err := s.db.QueryRowContext(ctx,
		`SELECT d.id, d.title, d.filename, d.granularity, d.created_at,
		        (SELECT COUNT(*) FROM chapters c WHERE c.document_id = d.id)
		 FROM documents d WHERE d.id = ?`, id).
		Scan(&doc.ID, &doc.Title, &doc.Filename, &doc.Granularity, &doc.CreatedAt, &doc.ChapterCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("select document: %w", err)
	}
	return doc, nil
}

func (s *Store) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.title, d.filename, d.granularity, d.created_at,
		        (SELECT COUNT(*) FROM chapters c WHERE c.document_id = d.id)
		 FROM documents d ORDER BY d.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Filename, &doc.Granularity, &doc.CreatedAt, &doc.ChapterCount); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Chapters returns a document's chapters in reading order. Split parts
// sort inside their original chapter position.
func (s *Store) Chapters(ctx context.Context, documentID string) ([]Chapter, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document_id, title, content, level, ord, part, number, token_count
		 FROM chapters WHERE document_id = ? ORDER BY ord, part`, documentID)
	if err != nil {
		return nil, fmt.Errorf("select chapters: %w", err)
	}
	defer rows.Close()

	chapters := []Chapter{}
	for rows.Next() {
		var ch Chapter
		if err := rows.Scan(&ch.ID, &ch.DocumentID, &ch.Title, &ch.Content, &ch.Level, &ch.Ord, &ch.Part, &ch.Number, &ch.TokenCount); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

func (s *Store) Chapter(ctx context.Context, id string) (Chapter, error) {
	var ch Chapter
	err := s.db.QueryRowContext(ctx,
		`SELECT id, document_id, title, content, level, ord, part, number, token_count
		 FROM chapters WHERE id = ?`, id).
		Scan(&ch.ID, &ch.DocumentID, &ch.Title, &ch.Content, &ch.Level, &ch.Ord, &ch.Part, &ch.Number, &ch.TokenCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Chapter{}, ErrNotFound
	}
	if err != nil {
		return Chapter{}, fmt.Errorf("select chapter: %w", err)
	}
	return ch, nil
}

// ReplaceChapter atomically swaps one chapter for its split parts. The
// parts keep the original chapter's ord so reading order is preserved.
func (s *Store) ReplaceChapter(ctx context.Context, chapterID string, parts []Chapter) error {
	if len(parts) == 0 {
		return fmt.Errorf("no replacement parts given")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM chapters WHERE id = ?`, chapterID)
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	for _, ch := range parts {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO chapters (id, document_id, title, content, level, ord, part, number, token_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ch.ID, ch.DocumentID, ch.Title, ch.Content, ch.Level, ch.Ord, ch.Part, ch.Number, ch.TokenCount)
		if err != nil {
			return fmt.Errorf("insert part %q: %w", ch.Title, err)
		}
	}

	return tx.Commit()
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
