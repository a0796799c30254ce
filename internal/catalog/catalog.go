// Package catalog implements the record lifecycle of the library catalog:
// list, detail, create, update and delete flows for authors, genres, books
// and book copies, with validation on every write and dependency checks on
// every delete.
//
// Controllers keep no record state between calls. Every check-then-write
// sequence here (dependency check before delete, name lookup before genre
// insert) runs without a cross-document transaction; the genre name race is
// closed by the store's unique index, the delete race is accepted.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aoideee/locallibrary/internal/data"
)

// Kind names an entity type.
type Kind string

const (
	KindAuthor       Kind = "author"
	KindGenre        Kind = "genre"
	KindBook         Kind = "book"
	KindBookInstance Kind = "bookinstance"
)

// Catalog bundles the four controllers over one set of collections.
type Catalog struct {
	Authors       *AuthorController
	Genres        *GenreController
	Books         *BookController
	BookInstances *BookInstanceController
	Guard         *Guard

	models data.Models
}

// Option customizes a Catalog.
type Option func(*deps)

type deps struct {
	models data.Models
	guard  *Guard
	logger *slog.Logger
	now    func() time.Time
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(d *deps) { d.logger = logger }
}

// WithClock replaces time.Now, which supplies default due dates.
func WithClock(now func() time.Time) Option {
	return func(d *deps) { d.now = now }
}

// New wires the controllers to models.
func New(models data.Models, opts ...Option) *Catalog {
	d := &deps{
		models: models,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.guard = &Guard{models: models}

	return &Catalog{
		Authors:       &AuthorController{deps: d},
		Genres:        &GenreController{deps: d},
		Books:         &BookController{deps: d},
		BookInstances: &BookInstanceController{deps: d},
		Guard:         d.guard,
		models:        models,
	}
}

// Summary holds the record counts shown on the catalog home page.
type Summary struct {
	Books              int64 `json:"book_count"`
	BookInstances      int64 `json:"book_instance_count"`
	AvailableInstances int64 `json:"book_instance_available_count"`
	Authors            int64 `json:"author_count"`
	Genres             int64 `json:"genre_count"`
}

// Summary counts every collection concurrently.
func (c *Catalog) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		s.Books, err = c.models.Books.Count(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		s.BookInstances, err = c.models.BookInstances.Count(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		s.AvailableInstances, err = c.models.BookInstances.Count(gctx, data.Eq("status", string(data.StatusAvailable)))
		return err
	})
	g.Go(func() (err error) {
		s.Authors, err = c.models.Authors.Count(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		s.Genres, err = c.models.Genres.Count(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return s, nil
}
