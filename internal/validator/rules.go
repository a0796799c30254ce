package validator

import (
	"strings"
	"time"

	"github.com/aoideee/locallibrary/internal/data"
)

// Rules run against the trimmed, unescaped values so that length limits
// count what the user typed; the returned records carry escaped values.
// Sanitization always happens, whatever the validation outcome.

// Author sanitizes in and checks it against the author rules.
func Author(in data.AuthorInput) (data.Author, FieldErrors) {
	v := New()
	v.Struct(data.AuthorInput{
		FirstName:  Unescape(in.FirstName),
		FamilyName: Unescape(in.FamilyName),
	})

	author := data.Author{
		FirstName:  Escape(in.FirstName),
		FamilyName: Escape(in.FamilyName),
	}

	var err error
	author.DateOfBirth, err = ParseDate(in.DateOfBirth)
	v.Check(err == nil, "date_of_birth", "Invalid date of birth")
	author.DateOfDeath, err = ParseDate(in.DateOfDeath)
	v.Check(err == nil, "date_of_death", "Invalid date of death")

	if author.DateOfBirth != nil && author.DateOfDeath != nil {
		v.Check(!author.DateOfDeath.Before(*author.DateOfBirth),
			"date_of_death", "Date of death must not precede date of birth")
	}
	return author, v.Errors
}

// Genre sanitizes in and checks it against the genre rules.
func Genre(in data.GenreInput) (data.Genre, FieldErrors) {
	v := New()
	v.Struct(data.GenreInput{Name: Unescape(in.Name)})
	return data.Genre{Name: Escape(in.Name)}, v.Errors
}

// Book sanitizes in and checks it against the book rules. Blank and repeated
// genre ids are dropped.
func Book(in data.BookInput) (data.Book, FieldErrors) {
	v := New()
	v.Struct(data.BookInput{
		Title:   Unescape(in.Title),
		Author:  Unescape(in.Author),
		Summary: Unescape(in.Summary),
		ISBN:    Unescape(in.ISBN),
	})

	book := data.Book{
		Title:   Escape(in.Title),
		Author:  Escape(in.Author),
		Summary: Escape(in.Summary),
		ISBN:    Escape(in.ISBN),
		Genre:   []string{},
	}
	for _, g := range in.Genre {
		g = Escape(g)
		if g == "" || In(g, book.Genre...) {
			continue
		}
		book.Genre = append(book.Genre, g)
	}
	return book, v.Errors
}

// BookInstance sanitizes in and checks it against the copy rules. now is the
// creation time used when no due date was submitted.
func BookInstance(in data.BookInstanceInput, now time.Time) (data.BookInstance, FieldErrors) {
	v := New()
	v.Struct(data.BookInstanceInput{
		Book:    Unescape(in.Book),
		Imprint: Unescape(in.Imprint),
	})

	instance := data.BookInstance{
		Book:    Escape(in.Book),
		Imprint: Escape(in.Imprint),
		Status:  data.DefaultStatus,
	}

	if status := strings.TrimSpace(in.Status); status != "" {
		instance.Status = data.Status(Escape(status))
		v.Check(In(data.Status(status), data.Statuses...),
			"status", "Status must be one of Available, Maintenance, Loaned, Reserved")
	}

	due, err := ParseDate(in.DueBack)
	v.Check(err == nil, "due_back", "Invalid date")
	if due != nil {
		instance.DueBack = *due
	} else {
		instance.DueBack = now.UTC().Truncate(time.Millisecond)
	}
	return instance, v.Errors
}
