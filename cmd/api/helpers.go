// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/locallibrary/internal/view"
)

// maxBodyBytes caps every request body at 1 MB.
const maxBodyBytes = 1_048_576

// envelope is the top-level JSON wrapper type used for all responses.
// Every response body is a JSON object with at least one named key,
// e.g. {"view": "genre_list", "context": {...}} or {"error": "..."}.
type envelope map[string]any

// readIDParam extracts the ":id" URL parameter added by httprouter.
// Ids are opaque strings chosen by the store; only an empty value is rejected.
func (app *applicationDependencies) readIDParam(r *http.Request) (string, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id := strings.TrimSpace(params.ByName("id"))
	if id == "" {
		return "", errors.New("invalid id parameter")
	}
	return id, nil
}

// readForm returns the submitted fields of a POST. URL-encoded and multipart
// forms are read as-is; a JSON object is flattened so that API clients can
// post the same fields.
func (app *applicationDependencies) readForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		return app.readJSON(r)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, err
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	}
	return r.PostForm, nil
}

// readJSON decodes a single JSON object from the request body into form
// values. Strings and numbers become single values; arrays become repeated
// values. It ensures the body contains exactly one JSON value (no trailing data).
func (app *applicationDependencies) readJSON(r *http.Request) (url.Values, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]any
	err := dec.Decode(&body)
	if err != nil {
		return nil, err
	}

	// Ensure there is no second JSON value in the body.
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return nil, errors.New("body must only contain a single JSON value")
	}

	form := url.Values{}
	for key, value := range body {
		switch v := value.(type) {
		case nil:
		case []any:
			for _, item := range v {
				form.Add(key, fmt.Sprint(item))
			}
		default:
			form.Set(key, fmt.Sprint(v))
		}
	}
	return form, nil
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n') // Trailing newline makes curl output nicer.

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// respond writes a view.Response: a rendered view becomes a JSON render
// context, a redirect sets Location, and an error goes through errorResponse.
func (app *applicationDependencies) respond(w http.ResponseWriter, r *http.Request, resp view.Response) {
	var err error
	switch resp.Kind {
	case view.Render:
		err = app.writeJSON(w, resp.Status, envelope{"view": resp.View, "context": resp.Context}, nil)
	case view.Redirect:
		headers := http.Header{"Location": []string{resp.Location}}
		err = app.writeJSON(w, resp.Status, envelope{"redirect": resp.Location}, headers)
	case view.Error:
		if resp.Status >= http.StatusInternalServerError {
			app.logError(r, resp.Err)
		}
		app.errorResponse(w, r, resp.Status, resp.Message)
	}
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
