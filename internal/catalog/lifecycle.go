package catalog

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/aoideee/locallibrary/internal/data"
)

// deletion fetches the record and its dependents concurrently and, when
// commit is set and nothing blocks, removes the record. The dependents are
// read before the remove; a dependent created in between is not seen.
func deletion[T data.Document[T], D data.Record](ctx context.Context, c data.Collection[T], check func(context.Context, string) (Verdict[D], error), id string, commit bool) (Deletion[T, D], error) {
	var (
		out Deletion[T, D]
		v   Verdict[D]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Record, err = c.FindByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		v, err = check(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return Deletion[T, D]{}, err
	}
	out.Blocking = v.Blocking

	if !commit || !v.Allowed {
		return out, nil
	}
	if err := c.Remove(ctx, id); err != nil {
		return out, err
	}
	out.Deleted = true
	return out, nil
}

func noDependents(context.Context, string) (Verdict[data.BookInstance], error) {
	return Verdict[data.BookInstance]{Allowed: true}, nil
}

// resolve looks id up and reports a missing record as nil rather than as an
// error.
func resolve[T data.Document[T]](ctx context.Context, c data.Collection[T], id string) (*T, error) {
	rec, err := c.FindByID(ctx, id)
	switch {
	case errors.Is(err, data.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return &rec, nil
}

// exists reports whether id resolves in c.
func exists[T data.Document[T]](ctx context.Context, c data.Collection[T], id string) (bool, error) {
	rec, err := resolve(ctx, c, id)
	return rec != nil, err
}

// index maps records by id.
func index[T data.Record](records []T) map[string]T {
	m := make(map[string]T, len(records))
	for _, r := range records {
		m[r.GetID()] = r
	}
	return m
}
