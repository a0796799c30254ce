// Package validator accumulates field-level validation errors for submitted
// catalog forms and sanitizes the submitted values.
package validator

import (
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

// FieldError is one failed rule for one submitted field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// FieldErrors preserves the order in which failures were found.
type FieldErrors []FieldError

// Has reports whether field has at least one error.
func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Map returns the first message per field.
func (fe FieldErrors) Map() map[string]string {
	m := make(map[string]string, len(fe))
	for _, e := range fe {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}

// Validator holds the errors collected while checking one submission.
// A Validator with no Errors is considered valid.
type Validator struct {
	Errors FieldErrors
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{}
}

// Valid returns true if no errors were recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records key as failing with the given message.
// If key already has an error it is not added again, so the first
// failure for a field is always the one that is reported.
func (v *Validator) AddError(key, message string) {
	if !v.Errors.Has(key) {
		v.Errors = append(v.Errors, FieldError{Field: key, Message: message})
	}
}

// Check adds an error for key with message only when ok is false.
// Use this as a single-line guard:
//
//	v.Check(len(title) > 0, "title", "must be provided")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Struct runs the `validate` tag rules of s and records each failure under
// the field's `form` name.
func (v *Validator) Struct(s any) {
	err := rules.Struct(s)
	if err == nil {
		return
	}
	verrs, ok := err.(playground.ValidationErrors)
	if !ok {
		v.AddError("_", err.Error())
		return
	}
	for _, fe := range verrs {
		v.AddError(fe.Field(), message(fe))
	}
}

// In returns true if value is present in the list slice.
func In[T comparable](value T, list ...T) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}

var rules = func() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// messages overrides the generic wording for specific field/rule pairs.
var messages = map[string]string{
	"name.required":    "Genre name required",
	"book.required":    "Book must be specified",
	"imprint.required": "Imprint must be specified",
	"author.required":  "Author must be specified",
}

func message(fe playground.FieldError) string {
	if m, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " must be specified"
	case "max":
		return label + " must be at most " + fe.Param() + " characters"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	case "oneof":
		return label + " must be one of " + fe.Param()
	}
	return label + " is invalid"
}

// humanize turns "family_name" into "Family name".
func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
