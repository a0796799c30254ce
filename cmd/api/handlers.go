// cmd/api/handlers.go
// This file contains the handlers that do not belong to one record kind.
// Each handler is a method on *applicationDependencies so it has access
// to the logger, the catalog controllers and the metrics.
//
// Record handlers follow one pattern: read the id and form fields, call the
// catalog controller, and hand its outcome to the view package, whose
// Response is written by respond().
package main

import (
	"net/http"

	"github.com/aoideee/locallibrary/internal/view"
)

// homeHandler handles GET /catalog.
// It responds with the record counts of every collection.
func (app *applicationDependencies) homeHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := app.catalog.Summary(r.Context())
	app.respond(w, r, view.Home(summary, err))
}

// healthcheckHandler handles GET /healthcheck.
// It reports that the server is up along with its environment, version and store driver.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	data := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.environment,
			"version":     appVersion,
			"store":       app.config.store.Driver,
		},
	}
	err := app.writeJSON(w, http.StatusOK, data, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
