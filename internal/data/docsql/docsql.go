// Package docsql stores catalog documents as JSON rows of a single SQL table.
// It serves both the Postgres (lib/pq) and SQLite (modernc.org/sqlite) drivers.
package docsql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aoideee/locallibrary/internal/data"
)

// Ensure Collection implements data.Collection.
var _ data.Collection[data.Book] = (*Collection[data.Book])(nil)

// Store wraps a database pool and the dialect used to talk to it.
type Store struct {
	DB      *sql.DB
	dialect Dialect
}

// New wraps db and creates the documents table if it does not exist.
func New(ctx context.Context, db *sql.DB, dialect Dialect) (*Store, error) {
	s := &Store{DB: db, dialect: dialect}
	if err := s.migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.schema() {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Models returns a data.Models whose collections share this store.
func (s *Store) Models() data.Models {
	return data.Models{
		Authors:       &Collection[data.Author]{store: s, name: data.AuthorCollection},
		Genres:        &Collection[data.Genre]{store: s, name: data.GenreCollection},
		Books:         &Collection[data.Book]{store: s, name: data.BookCollection},
		BookInstances: &Collection[data.BookInstance]{store: s, name: data.BookInstanceCollection},
	}
}

// Collection is a named slice of the documents table.
type Collection[T data.Document[T]] struct {
	store *Store
	name  string
}

func (c *Collection[T]) q(query string) string {
	return c.store.dialect.rebind(query)
}

// FindByID returns the document with id or data.ErrRecordNotFound.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	var body []byte
	err := c.store.DB.QueryRowContext(ctx,
		c.q(`SELECT body FROM documents WHERE collection = ? AND id = ?`),
		c.name, id,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, data.ErrRecordNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("failed to get %s %s: %w", c.name, id, err)
	}
	return decode[T](body, id)
}

// FindAll returns matching documents, sorted by q.Sort then insertion order.
func (c *Collection[T]) FindAll(ctx context.Context, q data.Query) ([]T, error) {
	query := `SELECT id, body FROM documents WHERE collection = ?`
	args := []any{c.name}
	if q.Filter != nil {
		query += ` AND ` + c.store.dialect.fieldMatch
		args = append(args, q.Filter.Field, q.Filter.Value)
	}
	query += ` ORDER BY `
	if q.Sort != nil {
		dir := "ASC"
		if q.Sort.Desc {
			dir = "DESC"
		}
		query += c.store.dialect.fieldSort + ` ` + dir + `, `
		args = append(args, q.Sort.Field)
	}
	query += `seq ASC`

	rows, err := c.store.DB.QueryContext(ctx, c.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.name, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", c.name, err)
		}
		doc, err := decode[T](body, id)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", c.name, err)
	}
	return out, nil
}

// Insert stores doc under a new UUID.
func (c *Collection[T]) Insert(ctx context.Context, doc T) (T, error) {
	var zero T
	stored := doc.WithID(uuid.NewString())
	body, err := json.Marshal(stored)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s: %w", c.name, err)
	}
	_, err = c.store.DB.ExecContext(ctx,
		c.q(`INSERT INTO documents (collection, id, body) VALUES (?, ?, ?)`),
		c.name, stored.GetID(), string(body),
	)
	if err != nil {
		return zero, c.writeErr("insert", err)
	}
	return stored, nil
}

// Update replaces the body of the document with doc.GetID().
func (c *Collection[T]) Update(ctx context.Context, doc T) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.name, err)
	}
	result, err := c.store.DB.ExecContext(ctx,
		c.q(`UPDATE documents SET body = ? WHERE collection = ? AND id = ?`),
		string(body), c.name, doc.GetID(),
	)
	if err != nil {
		return c.writeErr("update", err)
	}
	return affected(result)
}

// Remove deletes the document with id.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	result, err := c.store.DB.ExecContext(ctx,
		c.q(`DELETE FROM documents WHERE collection = ? AND id = ?`),
		c.name, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", c.name, id, err)
	}
	return affected(result)
}

// Count returns the number of documents matching f.
func (c *Collection[T]) Count(ctx context.Context, f *data.Filter) (int64, error) {
	query := `SELECT count(*) FROM documents WHERE collection = ?`
	args := []any{c.name}
	if f != nil {
		query += ` AND ` + c.store.dialect.fieldMatch
		args = append(args, f.Field, f.Value)
	}
	var n int64
	if err := c.store.DB.QueryRowContext(ctx, c.q(query), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c.name, err)
	}
	return n, nil
}

func (c *Collection[T]) writeErr(op string, err error) error {
	if c.store.dialect.uniqueViol(err) {
		return fmt.Errorf("failed to %s %s: %w", op, c.name, data.ErrDuplicateRecord)
	}
	return fmt.Errorf("failed to %s %s: %w", op, c.name, err)
}

func affected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return data.ErrRecordNotFound
	}
	return nil
}

func decode[T data.Document[T]](body []byte, id string) (T, error) {
	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return doc, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	return doc.WithID(id), nil
}
