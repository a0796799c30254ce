package catalog

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/validator"
)

type GenreDeletion = Deletion[data.Genre, data.Book]

var errGenreExists = validator.FieldError{Field: "name", Message: "Genre already exists"}

type GenreController struct {
	*deps
}

// List returns every genre ordered by name.
func (c *GenreController) List(ctx context.Context) ([]data.Genre, error) {
	return c.models.Genres.FindAll(ctx, data.Query{Sort: &data.Sort{Field: "name"}})
}

// Detail returns the genre with every book filed under it.
func (c *GenreController) Detail(ctx context.Context, id string) (GenreDetail, error) {
	var d GenreDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Genre, err = c.models.Genres.FindByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Books, err = c.models.Books.FindAll(gctx, data.Query{Filter: data.Eq("genre", id)})
		return err
	})
	if err := g.Wait(); err != nil {
		return GenreDetail{}, err
	}
	return d, nil
}

func (c *GenreController) CreateForm(context.Context) (GenreForm, error) {
	return GenreForm{}, nil
}

// Create is find-or-create by exact name. When a genre with the submitted
// name exists, it is returned with Existing set and nothing is written.
func (c *GenreController) Create(ctx context.Context, in data.GenreInput) (GenreForm, error) {
	genre, errs := validator.Genre(in)
	form := GenreForm{Genre: genre, Errors: errs}
	if form.Invalid() {
		return form, nil
	}

	found, err := c.findByName(ctx, genre.Name)
	if err != nil {
		return form, err
	}
	if found != nil {
		form.Genre, form.Existing = *found, true
		return form, nil
	}

	created, err := c.models.Genres.Insert(ctx, genre)
	switch {
	case errors.Is(err, data.ErrDuplicateRecord):
		// Lost the race against a concurrent create of the same name.
		found, err = c.findByName(ctx, genre.Name)
		if err != nil {
			return form, err
		}
		if found == nil {
			return form, data.ErrDuplicateRecord
		}
		form.Genre, form.Existing = *found, true
		return form, nil
	case err != nil:
		return form, err
	}
	c.logger.Info("genre created", "id", created.ID)
	form.Genre = created
	return form, nil
}

func (c *GenreController) findByName(ctx context.Context, name string) (*data.Genre, error) {
	genres, err := c.models.Genres.FindAll(ctx, data.Query{Filter: data.Eq("name", name)})
	if err != nil || len(genres) == 0 {
		return nil, err
	}
	return &genres[0], nil
}

func (c *GenreController) UpdateForm(ctx context.Context, id string) (GenreForm, error) {
	genre, err := c.models.Genres.FindByID(ctx, id)
	if err != nil {
		return GenreForm{}, err
	}
	return GenreForm{Genre: genre}, nil
}

// Update renames the genre. Taking the name of another genre is reported as
// a validation error.
func (c *GenreController) Update(ctx context.Context, id string, in data.GenreInput) (GenreForm, error) {
	genre, errs := validator.Genre(in)
	form := GenreForm{Genre: genre.WithID(id), Errors: errs}
	if form.Invalid() {
		return form, nil
	}

	err := c.models.Genres.Update(ctx, form.Genre)
	switch {
	case errors.Is(err, data.ErrDuplicateRecord):
		form.Errors = append(form.Errors, errGenreExists)
		return form, nil
	case err != nil:
		return form, err
	}
	c.logger.Info("genre updated", "id", id)
	return form, nil
}

// DeleteForm returns the genre and the books that would block its removal.
func (c *GenreController) DeleteForm(ctx context.Context, id string) (GenreDeletion, error) {
	return deletion(ctx, c.models.Genres, c.guard.CanDeleteGenre, id, false)
}

// Delete removes the genre unless books are still filed under it.
func (c *GenreController) Delete(ctx context.Context, id string) (GenreDeletion, error) {
	d, err := deletion(ctx, c.models.Genres, c.guard.CanDeleteGenre, id, true)
	if err != nil {
		return d, err
	}
	if d.Deleted {
		c.logger.Info("genre deleted", "id", id)
	} else {
		c.logger.Info("genre delete blocked", "id", id, "books", len(d.Blocking))
	}
	return d, nil
}
