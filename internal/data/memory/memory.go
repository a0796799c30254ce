// Package memory provides an in-process implementation of the data.Collection
// contract. It backs tests and the "memory" store driver.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/aoideee/locallibrary/internal/data"
)

// Ensure Collection implements data.Collection.
var _ data.Collection[data.Genre] = (*Collection[data.Genre])(nil)

// Collection keeps documents in a map and remembers insertion order.
type Collection[T data.Document[T]] struct {
	mu     sync.RWMutex
	name   string
	docs   map[string]T
	order  []string
	unique []string
	newID  func() string
}

// NewCollection creates an empty collection enforcing data.UniqueFields for name.
func NewCollection[T data.Document[T]](name string) *Collection[T] {
	return &Collection[T]{
		name:   name,
		docs:   make(map[string]T),
		unique: data.UniqueFields[name],
		newID:  uuid.NewString,
	}
}

// NewModels returns a data.Models whose collections all live in memory.
func NewModels() data.Models {
	return data.Models{
		Authors:       NewCollection[data.Author](data.AuthorCollection),
		Genres:        NewCollection[data.Genre](data.GenreCollection),
		Books:         NewCollection[data.Book](data.BookCollection),
		BookInstances: NewCollection[data.BookInstance](data.BookInstanceCollection),
	}
}

// FindByID returns a copy of the document with id.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[id]
	if !ok {
		return zero, data.ErrRecordNotFound
	}
	return doc.WithID(id), nil
}

// FindAll returns the documents matching q.Filter, ordered by q.Sort or by insertion.
func (c *Collection[T]) FindAll(ctx context.Context, q data.Query) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	type entry struct {
		doc  T
		view map[string]any
	}
	entries := make([]entry, 0, len(c.order))
	for _, id := range c.order {
		doc := c.docs[id]
		view, err := project(doc)
		if err != nil {
			return nil, fmt.Errorf("project %s/%s: %w", c.name, id, err)
		}
		if q.Filter != nil && !matches(view, q.Filter) {
			continue
		}
		entries = append(entries, entry{doc: doc.WithID(id), view: view})
	}

	if q.Sort != nil {
		field, desc := q.Sort.Field, q.Sort.Desc
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := fmt.Sprint(entries[i].view[field]), fmt.Sprint(entries[j].view[field])
			if desc {
				return a > b
			}
			return a < b
		})
	}

	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.doc
	}
	return out, nil
}

// Insert stores doc under a new id.
func (c *Collection[T]) Insert(ctx context.Context, doc T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := doc.WithID(c.newID())
	if err := c.checkUnique(stored); err != nil {
		return zero, err
	}
	c.docs[stored.GetID()] = stored
	c.order = append(c.order, stored.GetID())
	return stored.WithID(stored.GetID()), nil
}

// Update replaces the stored document with the same id.
func (c *Collection[T]) Update(ctx context.Context, doc T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	id := doc.GetID()
	if _, ok := c.docs[id]; !ok {
		return data.ErrRecordNotFound
	}
	if err := c.checkUnique(doc); err != nil {
		return err
	}
	c.docs[id] = doc.WithID(id)
	return nil
}

// Remove deletes the document with id.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return data.ErrRecordNotFound
	}
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns how many documents match f.
func (c *Collection[T]) Count(ctx context.Context, f *data.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if f == nil {
		return int64(len(c.docs)), nil
	}
	var n int64
	for id, doc := range c.docs {
		view, err := project(doc)
		if err != nil {
			return 0, fmt.Errorf("project %s/%s: %w", c.name, id, err)
		}
		if matches(view, f) {
			n++
		}
	}
	return n, nil
}

// checkUnique must be called with c.mu held.
func (c *Collection[T]) checkUnique(doc T) error {
	if len(c.unique) == 0 {
		return nil
	}
	candidate, err := project(doc)
	if err != nil {
		return err
	}
	for id, existing := range c.docs {
		if id == doc.GetID() {
			continue
		}
		view, err := project(existing)
		if err != nil {
			return err
		}
		for _, field := range c.unique {
			if fmt.Sprint(view[field]) == fmt.Sprint(candidate[field]) {
				return fmt.Errorf("%s.%s %q: %w", c.name, field, fmt.Sprint(candidate[field]), data.ErrDuplicateRecord)
			}
		}
	}
	return nil
}

// project renders doc as its JSON field map, the same field names the
// SQL and Mongo backends filter on.
func project(doc any) (map[string]any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var view map[string]any
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, err
	}
	return view, nil
}

func matches(view map[string]any, f *data.Filter) bool {
	switch v := view[f.Field].(type) {
	case string:
		return v == f.Value
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == f.Value {
				return true
			}
		}
	}
	return false
}
