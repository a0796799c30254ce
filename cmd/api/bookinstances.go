// cmd/api/bookinstances.go
// Handlers for the book copy pages. Copies have no dependents, so their
// delete is never blocked.
package main

import (
	"net/http"
	"net/url"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/view"
)

func bookInstanceInput(form url.Values) data.BookInstanceInput {
	return data.BookInstanceInput{
		Book:    form.Get("book"),
		Imprint: form.Get("imprint"),
		Status:  form.Get("status"),
		DueBack: form.Get("due_back"),
	}
}

// listBookInstancesHandler handles GET /catalog/bookinstances.
func (app *applicationDependencies) listBookInstancesHandler(w http.ResponseWriter, r *http.Request) {
	copies, err := app.catalog.BookInstances.List(r.Context())
	app.respond(w, r, view.BookInstanceList(copies, err))
}

// showBookInstanceHandler handles GET /catalog/bookinstance/:id.
func (app *applicationDependencies) showBookInstanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	detail, err := app.catalog.BookInstances.Detail(r.Context(), id)
	app.respond(w, r, view.BookInstanceDetail(detail, err))
}

// createBookInstanceFormHandler handles GET /catalog/bookinstances/create.
func (app *applicationDependencies) createBookInstanceFormHandler(w http.ResponseWriter, r *http.Request) {
	form, err := app.catalog.BookInstances.CreateForm(r.Context())
	app.respond(w, r, view.BookInstanceForm(view.CreateBookInstance, form, err))
}

// createBookInstanceHandler handles POST /catalog/bookinstances/create.
func (app *applicationDependencies) createBookInstanceHandler(w http.ResponseWriter, r *http.Request) {
	fields, err := app.readForm(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form, err := app.catalog.BookInstances.Create(r.Context(), bookInstanceInput(fields))
	app.respond(w, r, view.BookInstanceSaved(view.CreateBookInstance, form, err))
}

// updateBookInstanceFormHandler handles GET /catalog/bookinstance/:id/update.
func (app *applicationDependencies) updateBookInstanceFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form, err := app.catalog.BookInstances.UpdateForm(r.Context(), id)
	app.respond(w, r, view.BookInstanceForm(view.UpdateBookInstance, form, err))
}

// updateBookInstanceHandler handles POST /catalog/bookinstance/:id/update.
func (app *applicationDependencies) updateBookInstanceHandler(w http.ResponseWriter, r *http.Request) {
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
	form, err := app.catalog.BookInstances.Update(r.Context(), id, bookInstanceInput(fields))
	app.respond(w, r, view.BookInstanceSaved(view.UpdateBookInstance, form, err))
}

// deleteBookInstanceFormHandler handles GET /catalog/bookinstance/:id/delete.
func (app *applicationDependencies) deleteBookInstanceFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	d, err := app.catalog.BookInstances.DeleteForm(r.Context(), id)
	app.respond(w, r, view.BookInstanceDelete(d, err))
}

// deleteBookInstanceHandler handles POST /catalog/bookinstance/:id/delete.
func (app *applicationDependencies) deleteBookInstanceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	d, err := app.catalog.BookInstances.Delete(r.Context(), id)
	app.respond(w, r, view.BookInstanceDeleted(d, err))
}
