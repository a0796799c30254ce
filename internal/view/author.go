package view

import (
	"github.com/aoideee/locallibrary/internal/catalog"
	"github.com/aoideee/locallibrary/internal/data"
)

const (
	CreateAuthor = "Create Author"
	UpdateAuthor = "Update Author"

	authorList = "/catalog/authors"
)

func AuthorList(authors []data.Author, err error) Response {
	if err != nil {
		return ServerError(err)
	}
	return Page("author_list", Context{
		"title":       "Author List",
		"author_list": each(authors, NewAuthor),
	})
}

func AuthorDetail(d catalog.AuthorDetail, err error) Response {
	if err != nil {
		return Failure(err)
	}
	return Page("author_detail", Context{
		"title":        "Author Detail",
		"author":       NewAuthor(d.Author),
		"author_books": each(d.Books, NewBook),
	})
}

func AuthorForm(title string, f catalog.AuthorForm, err error) Response {
	if err != nil {
		return Failure(err)
	}
	return Page("author_form", Context{
		"title":  title,
		"author": NewAuthor(f.Author),
		"errors": errorList(f.Errors),
	})
}

func AuthorSaved(title string, f catalog.AuthorForm, err error) Response {
	if err != nil {
		return Failure(err)
	}
	if f.Invalid() {
		return AuthorForm(title, f, nil)
	}
	return RedirectTo(f.Author.URL())
}

func AuthorDelete(d catalog.AuthorDeletion, err error) Response {
	if err != nil {
		return deleteFailure(err, authorList)
	}
	return Page("author_delete", Context{
		"title":        "Delete Author",
		"author":       NewAuthor(d.Record),
		"author_books": each(d.Blocking, NewBook),
	})
}

func AuthorDeleted(d catalog.AuthorDeletion, err error) Response {
	if err != nil {
		return deleteFailure(err, authorList)
	}
	if d.Deleted {
		return RedirectTo(authorList)
	}
	return AuthorDelete(d, nil)
}
