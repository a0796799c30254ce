package view

import (
	"github.com/aoideee/locallibrary/internal/data"
)

// View models flatten records and add the derived fields templates use.

type Author struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	FirstName   string `json:"first_name"`
	FamilyName  string `json:"family_name"`
	Name        string `json:"name"`
	Lifespan    string `json:"lifespan"`
	DateOfBirth string `json:"date_of_birth"`
	DateOfDeath string `json:"date_of_death"`
}

func NewAuthor(a data.Author) Author {
	return Author{
		ID:          a.ID,
		URL:         a.URL(),
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		Name:        a.Name(),
		Lifespan:    a.Lifespan(),
		DateOfBirth: a.DateOfBirthInput(),
		DateOfDeath: a.DateOfDeathInput(),
	}
}

type Genre struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`

	// Checked marks the genre as selected on a book form.
	Checked bool `json:"checked,omitempty"`
}

func NewGenre(g data.Genre) Genre {
	return Genre{ID: g.ID, URL: g.URL(), Name: g.Name}
}

type Book struct {
	ID      string   `json:"id"`
	URL     string   `json:"url"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	ISBN    string   `json:"isbn"`
	Author  string   `json:"author"`
	Genre   []string `json:"genre"`

	// AuthorName is set where the author was resolved.
	AuthorName string `json:"author_name,omitempty"`
}

func NewBook(b data.Book) Book {
	genre := b.Genre
	if genre == nil {
		genre = []string{}
	}
	return Book{
		ID:      b.ID,
		URL:     b.URL(),
		Title:   b.Title,
		Summary: b.Summary,
		ISBN:    b.ISBN,
		Author:  b.Author,
		Genre:   genre,
	}
}

type BookInstance struct {
	ID               string `json:"id"`
	URL              string `json:"url"`
	Book             string `json:"book"`
	Imprint          string `json:"imprint"`
	Status           string `json:"status"`
	DueBack          string `json:"due_back"`
	DueBackFormatted string `json:"due_back_formatted"`

	// BookTitle is set where the book was resolved.
	BookTitle string `json:"book_title,omitempty"`
}

func NewBookInstance(bi data.BookInstance) BookInstance {
	return BookInstance{
		ID:               bi.ID,
		URL:              bi.URL(),
		Book:             bi.Book,
		Imprint:          bi.Imprint,
		Status:           string(bi.Status),
		DueBack:          bi.DueBackInput(),
		DueBackFormatted: bi.DueBackFormatted(),
	}
}

// each maps records to view models, never returning nil.
func each[R any, V any](records []R, fn func(R) V) []V {
	out := make([]V, 0, len(records))
	for _, r := range records {
		out = append(out, fn(r))
	}
	return out
}
