// cmd/api/books.go
// Handlers for the book pages.
package main

import (
	"net/http"
	"net/url"

	"github.com/aoideee/locallibrary/internal/catalog"
	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/view"
)

// bookInput reads the book fields. The genre field repeats once per selected genre.
func bookInput(form url.Values) data.BookInput {
	return data.BookInput{
		Title:   form.Get("title"),
		Author:  form.Get("author"),
		Summary: form.Get("summary"),
		ISBN:    form.Get("isbn"),
		Genre:   form["genre"],
	}
}

// listBooksHandler handles GET /catalog/books.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := app.catalog.Books.List(r.Context())
	app.respond(w, r, view.BookList(books, err))
}

// showBookHandler handles GET /catalog/book/:id.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	detail, err := app.catalog.Books.Detail(r.Context(), id)
	app.respond(w, r, view.BookDetail(detail, err))
}

// createBookFormHandler handles GET /catalog/books/create.
func (app *applicationDependencies) createBookFormHandler(w http.ResponseWriter, r *http.Request) {
	form, err := app.catalog.Books.CreateForm(r.Context())
	app.respond(w, r, view.BookForm(view.CreateBook, form, err))
}

// createBookHandler handles POST /catalog/books/create.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	fields, err := app.readForm(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form, err := app.catalog.Books.Create(r.Context(), bookInput(fields))
	app.respond(w, r, view.BookSaved(view.CreateBook, form, err))
}

// updateBookFormHandler handles GET /catalog/book/:id/update.
func (app *applicationDependencies) updateBookFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form, err := app.catalog.Books.UpdateForm(r.Context(), id)
	app.respond(w, r, view.BookForm(view.UpdateBook, form, err))
}

// updateBookHandler handles POST /catalog/book/:id/update.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	fields, err := app.readForm(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form, err := app.catalog.Books.Update(r.Context(), id, bookInput(fields))
	app.respond(w, r, view.BookSaved(view.UpdateBook, form, err))
}

// deleteBookFormHandler handles GET /catalog/book/:id/delete.
func (app *applicationDependencies) deleteBookFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	d, err := app.catalog.Books.DeleteForm(r.Context(), id)
	app.respond(w, r, view.BookDelete(d, err))
}

// deleteBookHandler handles POST /catalog/book/:id/delete.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	d, err := app.catalog.Books.Delete(r.Context(), id)
	if err == nil && !d.Deleted {
		app.metrics.BlockedDelete(string(catalog.KindBook))
	}
	app.respond(w, r, view.BookDeleted(d, err))
}
