package view

import (
	"github.com/aoideee/locallibrary/internal/catalog"
)

const (
	CreateBook = "Create Book"
	UpdateBook = "Update Book"

	bookList = "/catalog/books"
)

func BookList(entries []catalog.BookEntry, err error) Response {
	if err != nil {
		return ServerError(err)
	}
	return Page("book_list", Context{
		"title": "Book List",
		"book_list": each(entries, func(e catalog.BookEntry) Book {
			b := NewBook(e.Book)
			if e.Author != nil {
				b.AuthorName = e.Author.Name()
			}
			return b
		}),
	})
}

func BookDetail(d catalog.BookDetail, err error) Response {
	if err != nil {
		return Failure(err)
	}
	book := NewBook(d.Book)
	ctx := Context{
		"title":          book.Title,
		"genres":         each(d.Genres, NewGenre),
		"book_instances": each(d.Instances, NewBookInstance),
	}
	if d.Author != nil {
		book.AuthorName = d.Author.Name()
		ctx["author"] = NewAuthor(*d.Author)
	}
	ctx["book"] = book
	return Page("book_detail", ctx)
}

// BookForm renders the book form with every author and genre to choose from;
// the book's genres are checked.
func BookForm(title string, f catalog.BookForm, err error) Response {
	if err != nil {
		return Failure(err)
	}
	genres := each(f.Genres, NewGenre)
	for i := range genres {
		genres[i].Checked = f.Book.HasGenre(genres[i].ID)
	}
	return Page("book_form", Context{
		"title":   title,
		"book":    NewBook(f.Book),
		"authors": each(f.Authors, NewAuthor),
		"genres":  genres,
		"errors":  errorList(f.Errors),
	})
}

func BookSaved(title string, f catalog.BookForm, err error) Response {
	if err != nil {
		return Failure(err)
	}
	if f.Invalid() {
		return BookForm(title, f, nil)
	}
	return RedirectTo(f.Book.URL())
}

func BookDelete(d catalog.BookDeletion, err error) Response {
	if err != nil {
		return deleteFailure(err, bookList)
	}
	return Page("book_delete", Context{
		"title":          "Delete Book",
		"book":           NewBook(d.Record),
		"book_instances": each(d.Blocking, NewBookInstance),
	})
}

func BookDeleted(d catalog.BookDeletion, err error) Response {
	if err != nil {
		return deleteFailure(err, bookList)
	}
	if d.Deleted {
		return RedirectTo(bookList)
	}
	return BookDelete(d, nil)
}
