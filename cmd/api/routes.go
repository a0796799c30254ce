// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router wrapped
// in the recoverPanic, requestID and rateLimit middlewares.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → requestID → rateLimit → router → instrument
//
// List and create pages sit under the plural prefix, so that the static
// segment never competes with the :id parameter of the singular prefix:
//
//	GET        /catalog                          – catalog summary
//	GET        /catalog/genres                   – list genres
//	GET, POST  /catalog/genres/create            – create form / create
//	GET        /catalog/genre/:id                – genre detail
//	GET, POST  /catalog/genre/:id/update         – update form / update
//	GET, POST  /catalog/genre/:id/delete         – delete form / delete
//
// and the same for authors, books and bookinstances.
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/metrics", app.metrics.Handler())

	handle := func(method, path string, h http.HandlerFunc) {
		router.HandlerFunc(method, path, app.instrument(path, h))
	}

	handle(http.MethodGet, "/catalog", app.homeHandler)

	// Genre routes
	handle(http.MethodGet, "/catalog/genres", app.listGenresHandler)
	handle(http.MethodGet, "/catalog/genres/create", app.createGenreFormHandler)
	handle(http.MethodPost, "/catalog/genres/create", app.createGenreHandler)
	handle(http.MethodGet, "/catalog/genre/:id", app.showGenreHandler)
	handle(http.MethodGet, "/catalog/genre/:id/update", app.updateGenreFormHandler)
	handle(http.MethodPost, "/catalog/genre/:id/update", app.updateGenreHandler)
	handle(http.MethodGet, "/catalog/genre/:id/delete", app.deleteGenreFormHandler)
	handle(http.MethodPost, "/catalog/genre/:id/delete", app.deleteGenreHandler)

	// Author routes
	handle(http.MethodGet, "/catalog/authors", app.listAuthorsHandler)
	handle(http.MethodGet, "/catalog/authors/create", app.createAuthorFormHandler)
	handle(http.MethodPost, "/catalog/authors/create", app.createAuthorHandler)
	handle(http.MethodGet, "/catalog/author/:id", app.showAuthorHandler)
	handle(http.MethodGet, "/catalog/author/:id/update", app.updateAuthorFormHandler)
	handle(http.MethodPost, "/catalog/author/:id/update", app.updateAuthorHandler)
	handle(http.MethodGet, "/catalog/author/:id/delete", app.deleteAuthorFormHandler)
	handle(http.MethodPost, "/catalog/author/:id/delete", app.deleteAuthorHandler)

	// Book routes
	handle(http.MethodGet, "/catalog/books", app.listBooksHandler)
	handle(http.MethodGet, "/catalog/books/create", app.createBookFormHandler)
	handle(http.MethodPost, "/catalog/books/create", app.createBookHandler)
	handle(http.MethodGet, "/catalog/book/:id", app.showBookHandler)
	handle(http.MethodGet, "/catalog/book/:id/update", app.updateBookFormHandler)
	handle(http.MethodPost, "/catalog/book/:id/update", app.updateBookHandler)
	handle(http.MethodGet, "/catalog/book/:id/delete", app.deleteBookFormHandler)
	handle(http.MethodPost, "/catalog/book/:id/delete", app.deleteBookHandler)

	// Book instance routes
	handle(http.MethodGet, "/catalog/bookinstances", app.listBookInstancesHandler)
	handle(http.MethodGet, "/catalog/bookinstances/create", app.createBookInstanceFormHandler)
	handle(http.MethodPost, "/catalog/bookinstances/create", app.createBookInstanceHandler)
	handle(http.MethodGet, "/catalog/bookinstance/:id", app.showBookInstanceHandler)
	handle(http.MethodGet, "/catalog/bookinstance/:id/update", app.updateBookInstanceFormHandler)
	handle(http.MethodPost, "/catalog/bookinstance/:id/update", app.updateBookInstanceHandler)
	handle(http.MethodGet, "/catalog/bookinstance/:id/delete", app.deleteBookInstanceFormHandler)
	handle(http.MethodPost, "/catalog/bookinstance/:id/delete", app.deleteBookInstanceHandler)

	// Wrap with middleware: recoverPanic is outermost so it catches panics
	// from every layer below it.
	return app.recoverPanic(app.requestID(app.rateLimit(router)))
}
