// Package meta is the per-document key/value store. Documents carry a type
// (e.g. "post") and any number of meta fields. Each field holds a JSON
// object that is always written as a whole.
package meta

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ziadkadry99/credind/internal/db"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is a piece of content that may carry indicator selections.
type Document struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store provides document and meta-field persistence.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// PutDocument creates or updates a document. An empty type defaults to
// "post".
func (s *Store) PutDocument(ctx context.Context, doc Document) error {
	if doc.ID == "" {
		return errors.New("document id is required")
	}
	if doc.Type == "" {
		doc.Type = "post"
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, type, title, content)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			content = excluded.content,
			updated_at = datetime('now')`,
		doc.ID, doc.Type, doc.Title, doc.Content,
	)
	if err != nil {
		return fmt.Errorf("upserting document %s: %w", doc.ID, err)
	}
	return nil
}

// GetDocument returns the document with the given id, or ErrNotFound.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx, selectDocuments+" WHERE id = ?", id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting document %s: %w", id, err)
	}
	return doc, nil
}

// ListDocuments returns documents ordered by id. An empty docType lists
// every type.
func (s *Store) ListDocuments(ctx context.Context, docType string) ([]Document, error) {
	query := selectDocuments
	var args []any
	if docType != "" {
		query += " WHERE type = ?"
		args = append(args, docType)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document and all its meta fields.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM document_meta WHERE document_id = ?", id); err != nil {
		return fmt.Errorf("deleting meta for %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// GetField returns the stored object for key on the document. A missing
// field, or one whose stored value is not a JSON object, yields an empty map.
func (s *Store) GetField(ctx context.Context, docID, key string) (map[string]any, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT meta_value FROM document_meta WHERE document_id = ? AND meta_key = ?",
		docID, key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s for %s: %w", key, docID, err)
	}

	out := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return map[string]any{}, nil
	}
	return out, nil
}

// SetField replaces the stored object for key on the document. The
// document must exist.
func (s *Store) SetField(ctx context.Context, docID, key string, value map[string]any) error {
	if value == nil {
		value = map[string]any{}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents WHERE id = ?", docID).Scan(&exists); err != nil {
		return fmt.Errorf("checking document %s: %w", docID, err)
	}
	if exists == 0 {
		return ErrNotFound
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO document_meta (document_id, meta_key, meta_value)
		VALUES (?, ?, ?)
		ON CONFLICT(document_id, meta_key) DO UPDATE SET
			meta_value = excluded.meta_value,
			updated_at = datetime('now')`,
		docID, key, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing %s for %s: %w", key, docID, err)
	}
	return nil
}

// SetRawField stores value verbatim, without checking that it is a JSON
// object. Reads tolerate whatever it stored.
func (s *Store) SetRawField(ctx context.Context, docID, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO document_meta (document_id, meta_key, meta_value)
		VALUES (?, ?, ?)
		ON CONFLICT(document_id, meta_key) DO UPDATE SET
			meta_value = excluded.meta_value,
			updated_at = datetime('now')`,
		docID, key, value,
	)
	if err != nil {
		return fmt.Errorf("writing raw %s for %s: %w", key, docID, err)
	}
	return nil
}

const selectDocuments = "SELECT id, type, title, content, created_at, updated_at FROM documents"

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(sc scanner) (*Document, error) {
	var (
		d                Document
		created, updated string
	)
	if err := sc.Scan(&d.ID, &d.Type, &d.Title, &d.Content, &created, &updated); err != nil {
		return nil, err
	}
	d.CreatedAt = parseTime(created)
	d.UpdatedAt = parseTime(updated)
	return &d, nil
}

func parseTime(ts string) time.Time {
	for _, layout := range []string{time.DateTime, time.RFC3339Nano} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}
