package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/validator"
)

type AuthorDeletion = Deletion[data.Author, data.Book]

type AuthorController struct {
	*deps
}

// List returns every author in insertion order.
func (c *AuthorController) List(ctx context.Context) ([]data.Author, error) {
	return c.models.Authors.FindAll(ctx, data.Query{})
}

// Detail returns the author with every book crediting them.
func (c *AuthorController) Detail(ctx context.Context, id string) (AuthorDetail, error) {
	var d AuthorDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Author, err = c.models.Authors.FindByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Books, err = c.models.Books.FindAll(gctx, data.Query{Filter: data.Eq("author", id)})
		return err
	})
	if err := g.Wait(); err != nil {
		return AuthorDetail{}, err
	}
	return d, nil
}

func (c *AuthorController) CreateForm(context.Context) (AuthorForm, error) {
	return AuthorForm{}, nil
}

// Create stores the author when in is valid. An invalid submission comes
// back as a form carrying the sanitized values and the errors.
func (c *AuthorController) Create(ctx context.Context, in data.AuthorInput) (AuthorForm, error) {
	author, errs := validator.Author(in)
	form := AuthorForm{Author: author, Errors: errs}
	if form.Invalid() {
		return form, nil
	}

	created, err := c.models.Authors.Insert(ctx, author)
	if err != nil {
		return form, err
	}
	c.logger.Info("author created", "id", created.ID)
	form.Author = created
	return form, nil
}

func (c *AuthorController) UpdateForm(ctx context.Context, id string) (AuthorForm, error) {
	author, err := c.models.Authors.FindByID(ctx, id)
	if err != nil {
		return AuthorForm{}, err
	}
	return AuthorForm{Author: author}, nil
}

// Update replaces the author's fields, keeping its id.
func (c *AuthorController) Update(ctx context.Context, id string, in data.AuthorInput) (AuthorForm, error) {
	author, errs := validator.Author(in)
	form := AuthorForm{Author: author.WithID(id), Errors: errs}
	if form.Invalid() {
		return form, nil
	}

	if err := c.models.Authors.Update(ctx, form.Author); err != nil {
		return form, err
	}
	c.logger.Info("author updated", "id", id)
	return form, nil
}

// DeleteForm returns the author and the books that would block its removal.
func (c *AuthorController) DeleteForm(ctx context.Context, id string) (AuthorDeletion, error) {
	return deletion(ctx, c.models.Authors, c.guard.CanDeleteAuthor, id, false)
}

// Delete removes the author unless books still credit them.
func (c *AuthorController) Delete(ctx context.Context, id string) (AuthorDeletion, error) {
	d, err := deletion(ctx, c.models.Authors, c.guard.CanDeleteAuthor, id, true)
	if err != nil {
		return d, err
	}
	if d.Deleted {
		c.logger.Info("author deleted", "id", id)
	} else {
		c.logger.Info("author delete blocked", "id", id, "books", len(d.Blocking))
	}
	return d, nil
}
