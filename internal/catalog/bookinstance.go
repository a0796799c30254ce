package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/validator"
)

type BookInstanceDeletion = Deletion[data.BookInstance, data.BookInstance]

type BookInstanceController struct {
	*deps
}

// List returns every copy in insertion order with its book resolved.
func (c *BookInstanceController) List(ctx context.Context) ([]BookInstanceEntry, error) {
	var (
		copies []data.BookInstance
		books  []data.Book
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		copies, err = c.models.BookInstances.FindAll(gctx, data.Query{})
		return err
	})
	g.Go(func() (err error) {
		books, err = c.models.Books.FindAll(gctx, data.Query{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := index(books)
	entries := make([]BookInstanceEntry, 0, len(copies))
	for _, bi := range copies {
		e := BookInstanceEntry{Instance: bi}
		if b, ok := byID[bi.Book]; ok {
			e.Book = &b
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Detail returns the copy with its book resolved.
func (c *BookInstanceController) Detail(ctx context.Context, id string) (BookInstanceDetail, error) {
	instance, err := c.models.BookInstances.FindByID(ctx, id)
	if err != nil {
		return BookInstanceDetail{}, err
	}
	book, err := resolve(ctx, c.models.Books, instance.Book)
	if err != nil {
		return BookInstanceDetail{}, err
	}
	return BookInstanceDetail{Instance: instance, Book: book}, nil
}

// CreateForm returns a form preset to the default status with the book choices.
func (c *BookInstanceController) CreateForm(ctx context.Context) (BookInstanceForm, error) {
	form := BookInstanceForm{Instance: data.BookInstance{Status: data.DefaultStatus}}
	var err error
	form.Books, err = c.choices(ctx)
	return form, err
}

// Create stores the copy when in is valid and its book exists. Without a
// submitted due date the copy is due back now.
func (c *BookInstanceController) Create(ctx context.Context, in data.BookInstanceInput) (BookInstanceForm, error) {
	instance, errs := validator.BookInstance(in, c.now())
	errs, err := c.checkReferences(ctx, instance, errs)
	if err != nil {
		return BookInstanceForm{Instance: instance}, err
	}
	form := BookInstanceForm{Instance: instance, Errors: errs}
	if form.Invalid() {
		form.Books, err = c.choices(ctx)
		return form, err
	}

	created, err := c.models.BookInstances.Insert(ctx, instance)
	if err != nil {
		return form, err
	}
	c.logger.Info("book instance created", "id", created.ID, "book", created.Book)
	form.Instance = created
	return form, nil
}

// UpdateForm returns the stored copy with the book choices.
func (c *BookInstanceController) UpdateForm(ctx context.Context, id string) (BookInstanceForm, error) {
	var form BookInstanceForm
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		form.Instance, err = c.models.BookInstances.FindByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		form.Books, err = c.choices(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return BookInstanceForm{}, err
	}
	return form, nil
}

// Update replaces the copy's fields, keeping its id.
func (c *BookInstanceController) Update(ctx context.Context, id string, in data.BookInstanceInput) (BookInstanceForm, error) {
	instance, errs := validator.BookInstance(in, c.now())
	instance = instance.WithID(id)
	errs, err := c.checkReferences(ctx, instance, errs)
	if err != nil {
		return BookInstanceForm{Instance: instance}, err
	}
	form := BookInstanceForm{Instance: instance, Errors: errs}
	if form.Invalid() {
		form.Books, err = c.choices(ctx)
		return form, err
	}

	if err := c.models.BookInstances.Update(ctx, instance); err != nil {
		return form, err
	}
	c.logger.Info("book instance updated", "id", id)
	return form, nil
}

// DeleteForm returns the copy. Copies never have dependents.
func (c *BookInstanceController) DeleteForm(ctx context.Context, id string) (BookInstanceDeletion, error) {
	return deletion(ctx, c.models.BookInstances, noDependents, id, false)
}

// Delete removes the copy.
func (c *BookInstanceController) Delete(ctx context.Context, id string) (BookInstanceDeletion, error) {
	d, err := deletion(ctx, c.models.BookInstances, noDependents, id, true)
	if err != nil {
		return d, err
	}
	c.logger.Info("book instance deleted", "id", id)
	return d, nil
}

// choices returns the books ordered by title.
func (c *BookInstanceController) choices(ctx context.Context) ([]data.Book, error) {
	return c.models.Books.FindAll(ctx, data.Query{Sort: &data.Sort{Field: "title"}})
}

func (c *BookInstanceController) checkReferences(ctx context.Context, instance data.BookInstance, errs validator.FieldErrors) (validator.FieldErrors, error) {
	if instance.Book == "" || errs.Has("book") {
		return errs, nil
	}
	found, err := exists(ctx, c.models.Books, instance.Book)
	if err != nil {
		return errs, err
	}
	v := &validator.Validator{Errors: errs}
	v.Check(found, "book", "Book not found")
	return v.Errors, nil
}
