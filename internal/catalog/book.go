package catalog

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/validator"
)

type BookDeletion = Deletion[data.Book, data.BookInstance]

type BookController struct {
	*deps
}

// List returns every book in insertion order with its author resolved.
func (c *BookController) List(ctx context.Context) ([]BookEntry, error) {
	var (
		books   []data.Book
		authors []data.Author
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		books, err = c.models.Books.FindAll(gctx, data.Query{})
		return err
	})
	g.Go(func() (err error) {
		authors, err = c.models.Authors.FindAll(gctx, data.Query{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := index(authors)
	entries := make([]BookEntry, 0, len(books))
	for _, b := range books {
		e := BookEntry{Book: b}
		if a, ok := byID[b.Author]; ok {
			e.Author = &a
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Detail returns the book with its author, genres and copies.
func (c *BookController) Detail(ctx context.Context, id string) (BookDetail, error) {
	var d BookDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Book, err = c.models.Books.FindByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Instances, err = c.models.BookInstances.FindAll(gctx, data.Query{Filter: data.Eq("book", id)})
		return err
	})
	if err := g.Wait(); err != nil {
		return BookDetail{}, err
	}

	genres := make([]*data.Genre, len(d.Book.Genre))
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Author, err = resolve(gctx, c.models.Authors, d.Book.Author)
		return err
	})
	for i, gid := range d.Book.Genre {
		g.Go(func() (err error) {
			genres[i], err = resolve(gctx, c.models.Genres, gid)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return BookDetail{}, err
	}
	for _, genre := range genres {
		if genre != nil {
			d.Genres = append(d.Genres, *genre)
		}
	}
	return d, nil
}

// CreateForm returns an empty form with the author and genre choices.
func (c *BookController) CreateForm(ctx context.Context) (BookForm, error) {
	form := BookForm{Book: data.Book{Genre: []string{}}}
	var err error
	form.Authors, form.Genres, err = c.choices(ctx)
	return form, err
}

// Create stores the book when in is valid and its author and genres exist.
func (c *BookController) Create(ctx context.Context, in data.BookInput) (BookForm, error) {
	book, errs := validator.Book(in)
	errs, err := c.checkReferences(ctx, book, errs)
	if err != nil {
		return BookForm{Book: book}, err
	}
	form := BookForm{Book: book, Errors: errs}
	if form.Invalid() {
		form.Authors, form.Genres, err = c.choices(ctx)
		return form, err
	}

	created, err := c.models.Books.Insert(ctx, book)
	if err != nil {
		return form, err
	}
	c.logger.Info("book created", "id", created.ID)
	form.Book = created
	return form, nil
}

// UpdateForm returns the stored book with the author and genre choices.
func (c *BookController) UpdateForm(ctx context.Context, id string) (BookForm, error) {
	var form BookForm
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		form.Book, err = c.models.Books.FindByID(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		form.Authors, form.Genres, err = c.choices(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return BookForm{}, err
	}
	return form, nil
}

// Update replaces the book's fields, keeping its id.
func (c *BookController) Update(ctx context.Context, id string, in data.BookInput) (BookForm, error) {
	book, errs := validator.Book(in)
	book = book.WithID(id)
	errs, err := c.checkReferences(ctx, book, errs)
	if err != nil {
		return BookForm{Book: book}, err
	}
	form := BookForm{Book: book, Errors: errs}
	if form.Invalid() {
		form.Authors, form.Genres, err = c.choices(ctx)
		return form, err
	}

	if err := c.models.Books.Update(ctx, book); err != nil {
		return form, err
	}
	c.logger.Info("book updated", "id", id)
	return form, nil
}

// DeleteForm returns the book and the copies that would block its removal.
func (c *BookController) DeleteForm(ctx context.Context, id string) (BookDeletion, error) {
	return deletion(ctx, c.models.Books, c.guard.CanDeleteBook, id, false)
}

// Delete removes the book unless copies of it still exist.
func (c *BookController) Delete(ctx context.Context, id string) (BookDeletion, error) {
	d, err := deletion(ctx, c.models.Books, c.guard.CanDeleteBook, id, true)
	if err != nil {
		return d, err
	}
	if d.Deleted {
		c.logger.Info("book deleted", "id", id)
	} else {
		c.logger.Info("book delete blocked", "id", id, "copies", len(d.Blocking))
	}
	return d, nil
}

// choices returns authors by family name and genres by name.
func (c *BookController) choices(ctx context.Context) (authors []data.Author, genres []data.Genre, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		authors, err = c.models.Authors.FindAll(gctx, data.Query{Sort: &data.Sort{Field: "family_name"}})
		return err
	})
	g.Go(func() (err error) {
		genres, err = c.models.Genres.FindAll(gctx, data.Query{Sort: &data.Sort{Field: "name"}})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return authors, genres, nil
}

// checkReferences adds an error for an author or genre id that does not
// resolve. A missing author that already failed validation is not looked up.
func (c *BookController) checkReferences(ctx context.Context, book data.Book, errs validator.FieldErrors) (validator.FieldErrors, error) {
	authorFound := true
	genreFound := make([]bool, len(book.Genre))

	g, gctx := errgroup.WithContext(ctx)
	if book.Author != "" && !errs.Has("author") {
		g.Go(func() (err error) {
			authorFound, err = exists(gctx, c.models.Authors, book.Author)
			return err
		})
	}
	for i, id := range book.Genre {
		g.Go(func() (err error) {
			genreFound[i], err = exists(gctx, c.models.Genres, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return errs, err
	}

	v := &validator.Validator{Errors: errs}
	v.Check(authorFound, "author", "Author not found")
	v.Check(!slices.Contains(genreFound, false), "genre", "Genre not found")
	return v.Errors, nil
}
