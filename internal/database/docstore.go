// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"devfolio/internal/document"
)

// DocStore is a document.Store over the documents table. The native key is
// the application id itself, so it needs no second lookup path.
type DocStore struct {
	db *sql.DB
}

// NewDocStore creates a DocStore on an already migrated database.
func NewDocStore(db *sql.DB) *DocStore {
	return &DocStore{db: db}
}

// Name identifies the backend in logs and metrics.
func (s *DocStore) Name() string { return "postgres" }

// Insert stores doc. created_at mirrors the document's createdAt so list
// queries can use the index.
func (s *DocStore) Insert(ctx context.Context, collection string, doc document.Doc) error {
	d := doc.Clone()
	id, _ := d[document.FieldID].(string)
	if id == "" {
		return fmt.Errorf("insert %s: document has no id", collection)
	}
	d[document.FieldKey] = id

	created := time.Now().UTC()
	if raw, ok := d[document.FieldCreatedAt].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			created = t
		}
	}

	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, doc, created_at)
		VALUES ($1, $2, $3::jsonb, $4)
	`, collection, id, string(b), created)
	if err != nil {
		return fmt.Errorf("insert %s: %w", collection, err)
	}
	return nil
}

// Find returns matching documents. Filters use JSONB containment.
func (s *DocStore) Find(ctx context.Context, collection string, filter document.Filter, opts document.FindOptions) ([]document.Doc, error) {
	f, err := filterJSON(filter)
	if err != nil {
		return nil, err
	}

	order := "created_at"
	args := []any{collection, f}
	if opts.SortField != "" && opts.SortField != document.FieldCreatedAt {
		args = append(args, opts.SortField)
		order = fmt.Sprintf("doc->>($%d::text)", len(args))
	}
	dir := "ASC"
	if opts.Descending {
		dir = "DESC"
	}

	var limit sql.NullInt64
	if opts.Limit > 0 {
		limit = sql.NullInt64{Int64: int64(opts.Limit), Valid: true}
	}
	args = append(args, limit, opts.Skip)

	query := fmt.Sprintf(`
		SELECT doc FROM documents
		WHERE collection = $1 AND doc @> $2::jsonb
		ORDER BY %s %s, id %s
		LIMIT $%d OFFSET $%d
	`, order, dir, dir, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []document.Doc
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		var d document.Doc
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", collection, err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// UpdateOne merges patch into the first matching document.
func (s *DocStore) UpdateOne(ctx context.Context, collection string, filter document.Filter, patch document.Doc) (bool, error) {
	f, err := filterJSON(filter)
	if err != nil {
		return false, err
	}
	p := patch.Clone()
	delete(p, document.FieldID)
	delete(p, document.FieldKey)
	b, err := json.Marshal(p)
	if err != nil {
		return false, fmt.Errorf("encode patch: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE documents SET doc = doc || $3::jsonb
		WHERE collection = $1 AND id = (
			SELECT id FROM documents
			WHERE collection = $1 AND doc @> $2::jsonb
			ORDER BY created_at
			LIMIT 1
		)
	`, collection, f, string(b))
	if err != nil {
		return false, fmt.Errorf("update %s: %w", collection, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// DeleteOne removes the first matching document.
func (s *DocStore) DeleteOne(ctx context.Context, collection string, filter document.Filter) (bool, error) {
	f, err := filterJSON(filter)
	if err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM documents
		WHERE collection = $1 AND id = (
			SELECT id FROM documents
			WHERE collection = $1 AND doc @> $2::jsonb
			ORDER BY created_at
			LIMIT 1
		)
	`, collection, f)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", collection, err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// Close closes the connection pool.
func (s *DocStore) Close(context.Context) error {
	return s.db.Close()
}

func filterJSON(f document.Filter) (string, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("encode filter: %w", err)
	}
	return string(b), nil
}
