// cmd/api/authors.go
// Handlers for the author pages.
package main

import (
	"net/http"
	"net/url"

	"github.com/aoideee/locallibrary/internal/catalog"
	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/view"
)

func authorInput(form url.Values) data.AuthorInput {
	return data.AuthorInput{
		FirstName:   form.Get("first_name"),
		FamilyName:  form.Get("family_name"),
		DateOfBirth: form.Get("date_of_birth"),
		DateOfDeath: form.Get("date_of_death"),
	}
}

// listAuthorsHandler handles GET /catalog/authors.
func (app *applicationDependencies) listAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	authors, err := app.catalog.Authors.List(r.Context())
	app.respond(w, r, view.AuthorList(authors, err))
}

// showAuthorHandler handles GET /catalog/author/:id.
func (app *applicationDependencies) showAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	detail, err := app.catalog.Authors.Detail(r.Context(), id)
	app.respond(w, r, view.AuthorDetail(detail, err))
}

// createAuthorFormHandler handles GET /catalog/authors/create.
func (app *applicationDependencies) createAuthorFormHandler(w http.ResponseWriter, r *http.Request) {
	form, err := app.catalog.Authors.CreateForm(r.Context())
	app.respond(w, r, view.AuthorForm(view.CreateAuthor, form, err))
}

// createAuthorHandler handles POST /catalog/authors/create.
func (app *applicationDependencies) createAuthorHandler(w http.ResponseWriter, r *http.Request) {
	fields, err := app.readForm(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form, err := app.catalog.Authors.Create(r.Context(), authorInput(fields))
	app.respond(w, r, view.AuthorSaved(view.CreateAuthor, form, err))
}

// updateAuthorFormHandler handles GET /catalog/author/:id/update.
func (app *applicationDependencies) updateAuthorFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form, err := app.catalog.Authors.UpdateForm(r.Context(), id)
	app.respond(w, r, view.AuthorForm(view.UpdateAuthor, form, err))
}

// updateAuthorHandler handles POST /catalog/author/:id/update.
func (app *applicationDependencies) updateAuthorHandler(w http.ResponseWriter, r *http.Request) {
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
	form, err := app.catalog.Authors.Update(r.Context(), id, authorInput(fields))
	app.respond(w, r, view.AuthorSaved(view.UpdateAuthor, form, err))
}

// deleteAuthorFormHandler handles GET /catalog/author/:id/delete.
func (app *applicationDependencies) deleteAuthorFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	d, err := app.catalog.Authors.DeleteForm(r.Context(), id)
	app.respond(w, r, view.AuthorDelete(d, err))
}

// deleteAuthorHandler handles POST /catalog/author/:id/delete.
func (app *applicationDependencies) deleteAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	d, err := app.catalog.Authors.Delete(r.Context(), id)
	if err == nil && !d.Deleted {
		app.metrics.BlockedDelete(string(catalog.KindAuthor))
	}
	app.respond(w, r, view.AuthorDeleted(d, err))
}
