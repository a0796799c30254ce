// internal/data/models.go
package data

import (
	"context"
	"errors"
)

// Models is a top-level container that groups the catalog collections together.
// It is passed around the application via applicationDependencies so every handler
// reaches storage through the catalog controllers without importing a driver.
type Models struct {
	Authors       Collection[Author]
	Genres        Collection[Genre]
	Books         Collection[Book]
	BookInstances Collection[BookInstance]
}

// Collection names shared by every backend.
const (
	AuthorCollection       = "authors"
	GenreCollection        = "genres"
	BookCollection         = "books"
	BookInstanceCollection = "bookinstances"
)

var (
	// ErrRecordNotFound is returned when a lookup by id finds no matching document.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateRecord is returned when a write violates a unique field.
	ErrDuplicateRecord = errors.New("duplicate record")
)

// Record is implemented by every stored entity.
type Record interface {
	GetID() string
	URL() string
}

// Document is the constraint for collection element types: a record that can
// be copied with a store-assigned id.
type Document[T any] interface {
	Record
	WithID(id string) T
}

// Filter matches documents whose Field equals Value. When the field holds an
// array the filter matches if any element equals Value.
type Filter struct {
	Field string
	Value string
}

// Eq builds a Filter.
func Eq(field, value string) *Filter {
	return &Filter{Field: field, Value: value}
}

// Sort orders a FindAll result by a single field. Values are compared as strings.
type Sort struct {
	Field string
	Desc  bool
}

// Query narrows and orders FindAll. The zero value returns every document in
// insertion order.
type Query struct {
	Filter *Filter
	Sort   *Sort
}

// Collection is the contract each storage backend implements per entity kind.
type Collection[T Document[T]] interface {
	// FindByID returns ErrRecordNotFound when id does not resolve.
	FindByID(ctx context.Context, id string) (T, error)

	FindAll(ctx context.Context, q Query) ([]T, error)

	// Insert assigns a fresh id and returns the stored document.
	Insert(ctx context.Context, doc T) (T, error)

	// Update replaces every field of the document with doc.GetID().
	Update(ctx context.Context, doc T) error

	Remove(ctx context.Context, id string) error

	// Count returns the number of documents matching f; nil counts everything.
	Count(ctx context.Context, f *Filter) (int64, error)
}

// UniqueFields lists, per collection, the fields every backend must keep unique.
// The genre name index is the backstop for find-or-create by name.
var UniqueFields = map[string][]string{
	GenreCollection: {"name"},
}
