package catalog

import (
	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/validator"
)

// Form contexts carry the (sanitized) record being edited, the lists the form
// needs for its selects, and any validation errors. A form with errors must
// be shown again; one without is the stored result.

type AuthorForm struct {
	Author data.Author
	Errors validator.FieldErrors
}

func (f AuthorForm) Invalid() bool { return len(f.Errors) > 0 }

type GenreForm struct {
	Genre  data.Genre
	Errors validator.FieldErrors

	// Existing is set when create resolved to a genre that already had the
	// submitted name.
	Existing bool
}

func (f GenreForm) Invalid() bool { return len(f.Errors) > 0 }

type BookForm struct {
	Book    data.Book
	Authors []data.Author
	Genres  []data.Genre
	Errors  validator.FieldErrors
}

func (f BookForm) Invalid() bool { return len(f.Errors) > 0 }

type BookInstanceForm struct {
	Instance data.BookInstance
	Books    []data.Book
	Errors   validator.FieldErrors
}

func (f BookInstanceForm) Invalid() bool { return len(f.Errors) > 0 }

// Detail results.

type AuthorDetail struct {
	Author data.Author
	Books  []data.Book
}

type GenreDetail struct {
	Genre data.Genre
	Books []data.Book
}

// BookDetail holds the book with its author and genres resolved. Author is
// nil and Genres is short when a reference no longer resolves.
type BookDetail struct {
	Book      data.Book
	Author    *data.Author
	Genres    []data.Genre
	Instances []data.BookInstance
}

type BookInstanceDetail struct {
	Instance data.BookInstance
	Book     *data.Book
}

// List entries with their reference resolved.

type BookEntry struct {
	Book   data.Book
	Author *data.Author
}

type BookInstanceEntry struct {
	Instance data.BookInstance
	Book     *data.Book
}

// Deletion is the outcome of a delete form or a delete request. Deleted is
// false when dependents block the delete, or when only the form was fetched;
// Blocking lists the dependents in either case.
type Deletion[T data.Record, D data.Record] struct {
	Record   T
	Blocking []D
	Deleted  bool
}

// Blocked reports whether dependents prevent the delete.
func (d Deletion[T, D]) Blocked() bool { return len(d.Blocking) > 0 }
