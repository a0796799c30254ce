package view

import (
	"github.com/aoideee/locallibrary/internal/catalog"
	"github.com/aoideee/locallibrary/internal/data"
)

const (
	CreateBookInstance = "Create BookInstance"
	UpdateBookInstance = "Update BookInstance"

	bookInstanceList = "/catalog/bookinstances"
)

func BookInstanceList(entries []catalog.BookInstanceEntry, err error) Response {
	if err != nil {
		return ServerError(err)
	}
	return Page("bookinstance_list", Context{
		"title": "Book Instance List",
		"bookinstance_list": each(entries, func(e catalog.BookInstanceEntry) BookInstance {
			return withBook(e.Instance, e.Book)
		}),
	})
}

func BookInstanceDetail(d catalog.BookInstanceDetail, err error) Response {
	if err != nil {
		return Failure(err)
	}
	return Page("bookinstance_detail", Context{
		"title":        "Book:",
		"bookinstance": withBook(d.Instance, d.Book),
	})
}

// BookInstanceForm renders the copy form with every book to choose from and
// the allowed statuses.
func BookInstanceForm(title string, f catalog.BookInstanceForm, err error) Response {
	if err != nil {
		return Failure(err)
	}
	statuses := make([]string, 0, len(data.Statuses))
	for _, s := range data.Statuses {
		statuses = append(statuses, string(s))
	}
	return Page("bookinstance_form", Context{
		"title":         title,
		"bookinstance":  NewBookInstance(f.Instance),
		"book_list":     each(f.Books, NewBook),
		"selected_book": f.Instance.Book,
		"statuses":      statuses,
		"errors":        errorList(f.Errors),
	})
}

func BookInstanceSaved(title string, f catalog.BookInstanceForm, err error) Response {
	if err != nil {
		return Failure(err)
	}
	if f.Invalid() {
		return BookInstanceForm(title, f, nil)
	}
	return RedirectTo(f.Instance.URL())
}

func BookInstanceDelete(d catalog.BookInstanceDeletion, err error) Response {
	if err != nil {
		return deleteFailure(err, bookInstanceList)
	}
	return Page("bookinstance_delete", Context{
		"title":        "Delete BookInstance",
		"bookinstance": NewBookInstance(d.Record),
	})
}

func BookInstanceDeleted(d catalog.BookInstanceDeletion, err error) Response {
	if err != nil {
		return deleteFailure(err, bookInstanceList)
	}
	if d.Deleted {
		return RedirectTo(bookInstanceList)
	}
	return BookInstanceDelete(d, nil)
}

func withBook(bi data.BookInstance, book *data.Book) BookInstance {
	v := NewBookInstance(bi)
	if book != nil {
		v.BookTitle = book.Title
	}
	return v
}
