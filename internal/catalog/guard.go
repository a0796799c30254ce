package catalog

import (
	"context"
	"fmt"

	"github.com/aoideee/locallibrary/internal/data"
)

// Verdict is the outcome of a dependency check. Blocking lists the records
// that still reference the candidate; it is empty whenever Allowed is true.
type Verdict[D data.Record] struct {
	Allowed  bool
	Blocking []D
}

func verdict[D data.Record](blocking []D) Verdict[D] {
	return Verdict[D]{Allowed: len(blocking) == 0, Blocking: blocking}
}

// Guard finds the records that would be orphaned by a delete.
type Guard struct {
	models data.Models
}

// CanDeleteGenre blocks while any book lists the genre.
func (g *Guard) CanDeleteGenre(ctx context.Context, id string) (Verdict[data.Book], error) {
	books, err := g.models.Books.FindAll(ctx, data.Query{Filter: data.Eq("genre", id)})
	if err != nil {
		return Verdict[data.Book]{}, err
	}
	return verdict(books), nil
}

// CanDeleteAuthor blocks while any book credits the author.
func (g *Guard) CanDeleteAuthor(ctx context.Context, id string) (Verdict[data.Book], error) {
	books, err := g.models.Books.FindAll(ctx, data.Query{Filter: data.Eq("author", id)})
	if err != nil {
		return Verdict[data.Book]{}, err
	}
	return verdict(books), nil
}

// CanDeleteBook blocks while any copy of the book exists.
func (g *Guard) CanDeleteBook(ctx context.Context, id string) (Verdict[data.BookInstance], error) {
	copies, err := g.models.BookInstances.FindAll(ctx, data.Query{Filter: data.Eq("book", id)})
	if err != nil {
		return Verdict[data.BookInstance]{}, err
	}
	return verdict(copies), nil
}

// CanDelete dispatches on kind. Book copies have no dependents and are
// always allowed.
func (g *Guard) CanDelete(ctx context.Context, kind Kind, id string) (Verdict[data.Record], error) {
	switch kind {
	case KindGenre:
		v, err := g.CanDeleteGenre(ctx, id)
		return widen(v), err
	case KindAuthor:
		v, err := g.CanDeleteAuthor(ctx, id)
		return widen(v), err
	case KindBook:
		v, err := g.CanDeleteBook(ctx, id)
		return widen(v), err
	case KindBookInstance:
		return Verdict[data.Record]{Allowed: true}, nil
	}
	return Verdict[data.Record]{}, fmt.Errorf("unknown entity kind %q", kind)
}

func widen[D data.Record](v Verdict[D]) Verdict[data.Record] {
	out := Verdict[data.Record]{Allowed: v.Allowed}
	for _, r := range v.Blocking {
		out.Blocking = append(out.Blocking, r)
	}
	return out
}
