// Package view turns catalog outcomes into transport-neutral responses: a
// named view with its render context, a redirect, or an error.
package view

import (
	"errors"
	"net/http"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/validator"
)

type Kind int

const (
	Render Kind = iota
	Redirect
	Error
)

func (k Kind) String() string {
	switch k {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case Error:
		return "error"
	}
	return "unknown"
}

// Context is the data handed to a view.
type Context map[string]any

// Response is what the transport writes back. Only the fields of its Kind
// are set. Err is the cause behind an Error response and is never shown.
type Response struct {
	Kind     Kind
	View     string
	Context  Context
	Location string
	Status   int
	Message  string
	Err      error
}

// Page renders view with ctx.
func Page(view string, ctx Context) Response {
	return Response{Kind: Render, View: view, Context: ctx, Status: http.StatusOK}
}

// RedirectTo sends the client to location.
func RedirectTo(location string) Response {
	return Response{Kind: Redirect, Location: location, Status: http.StatusFound}
}

// NotFound reports a missing record.
func NotFound() Response {
	return Response{
		Kind:    Error,
		Status:  http.StatusNotFound,
		Message: "the requested resource could not be found",
		Err:     data.ErrRecordNotFound,
	}
}

// ServerError reports a failure the client cannot fix. The message does not
// reveal err.
func ServerError(err error) Response {
	return Response{
		Kind:    Error,
		Status:  http.StatusInternalServerError,
		Message: "the server encountered a problem and could not process your request",
		Err:     err,
	}
}

// Failure maps err to NotFound or ServerError.
func Failure(err error) Response {
	if errors.Is(err, data.ErrRecordNotFound) {
		return NotFound()
	}
	return ServerError(err)
}

// deleteFailure sends a missing record back to its list, as delete pages do.
func deleteFailure(err error, list string) Response {
	if errors.Is(err, data.ErrRecordNotFound) {
		return RedirectTo(list)
	}
	return ServerError(err)
}

func errorList(errs validator.FieldErrors) validator.FieldErrors {
	if errs == nil {
		return validator.FieldErrors{}
	}
	return errs
}
