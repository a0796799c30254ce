// cmd/api/genres.go
// Handlers for the genre pages.
package main

import (
	"net/http"
	"net/url"

	"github.com/aoideee/locallibrary/internal/catalog"
	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/view"
)

func genreInput(form url.Values) data.GenreInput {
	return data.GenreInput{Name: form.Get("name")}
}

// listGenresHandler handles GET /catalog/genres.
func (app *applicationDependencies) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := app.catalog.Genres.List(r.Context())
	app.respond(w, r, view.GenreList(genres, err))
}

// showGenreHandler handles GET /catalog/genre/:id.
func (app *applicationDependencies) showGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	detail, err := app.catalog.Genres.Detail(r.Context(), id)
	app.respond(w, r, view.GenreDetail(detail, err))
}

// createGenreFormHandler handles GET /catalog/genres/create.
func (app *applicationDependencies) createGenreFormHandler(w http.ResponseWriter, r *http.Request) {
	form, err := app.catalog.Genres.CreateForm(r.Context())
	app.respond(w, r, view.GenreForm(view.CreateGenre, form, err))
}

// createGenreHandler handles POST /catalog/genres/create.
// A genre with the same name is reused instead of created twice.
func (app *applicationDependencies) createGenreHandler(w http.ResponseWriter, r *http.Request) {
	fields, err := app.readForm(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form, err := app.catalog.Genres.Create(r.Context(), genreInput(fields))
	app.respond(w, r, view.GenreSaved(view.CreateGenre, form, err))
}

// updateGenreFormHandler handles GET /catalog/genre/:id/update.
func (app *applicationDependencies) updateGenreFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form, err := app.catalog.Genres.UpdateForm(r.Context(), id)
	app.respond(w, r, view.GenreForm(view.UpdateGenre, form, err))
}

// updateGenreHandler handles POST /catalog/genre/:id/update.
func (app *applicationDependencies) updateGenreHandler(w http.ResponseWriter, r *http.Request) {
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
	form, err := app.catalog.Genres.Update(r.Context(), id, genreInput(fields))
	app.respond(w, r, view.GenreSaved(view.UpdateGenre, form, err))
}

// deleteGenreFormHandler handles GET /catalog/genre/:id/delete.
func (app *applicationDependencies) deleteGenreFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	d, err := app.catalog.Genres.DeleteForm(r.Context(), id)
	app.respond(w, r, view.GenreDelete(d, err))
}

// deleteGenreHandler handles POST /catalog/genre/:id/delete.
func (app *applicationDependencies) deleteGenreHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	d, err := app.catalog.Genres.Delete(r.Context(), id)
	if err == nil && !d.Deleted {
		app.metrics.BlockedDelete(string(catalog.KindGenre))
	}
	app.respond(w, r, view.GenreDeleted(d, err))
}
