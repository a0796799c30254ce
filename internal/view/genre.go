package view

import (
	"github.com/aoideee/locallibrary/internal/catalog"
	"github.com/aoideee/locallibrary/internal/data"
)

const (
	CreateGenre = "Create Genre"
	UpdateGenre = "Update Genre"

	genreList = "/catalog/genres"
)

func GenreList(genres []data.Genre, err error) Response {
	if err != nil {
		return ServerError(err)
	}
	return Page("genre_list", Context{
		"title":      "Genre List",
		"genre_list": each(genres, NewGenre),
	})
}

func GenreDetail(d catalog.GenreDetail, err error) Response {
	if err != nil {
		return Failure(err)
	}
	return Page("genre_detail", Context{
		"title":       "Genre Detail",
		"genre":       NewGenre(d.Genre),
		"genre_books": each(d.Books, NewBook),
	})
}

// GenreForm renders an empty or prefilled genre form.
func GenreForm(title string, f catalog.GenreForm, err error) Response {
	if err != nil {
		return Failure(err)
	}
	return Page("genre_form", Context{
		"title":  title,
		"genre":  NewGenre(f.Genre),
		"errors": errorList(f.Errors),
	})
}

// GenreSaved redirects to the stored genre, or shows the form again when
// the submission was rejected.
func GenreSaved(title string, f catalog.GenreForm, err error) Response {
	if err != nil {
		return Failure(err)
	}
	if f.Invalid() {
		return GenreForm(title, f, nil)
	}
	return RedirectTo(f.Genre.URL())
}

func GenreDelete(d catalog.GenreDeletion, err error) Response {
	if err != nil {
		return deleteFailure(err, genreList)
	}
	return Page("genre_delete", Context{
		"title":       "Delete Genre",
		"genre":       NewGenre(d.Record),
		"genre_books": each(d.Blocking, NewBook),
	})
}

// GenreDeleted returns to the list, or to the delete page while books still
// use the genre.
func GenreDeleted(d catalog.GenreDeletion, err error) Response {
	if err != nil {
		return deleteFailure(err, genreList)
	}
	if d.Deleted {
		return RedirectTo(genreList)
	}
	return GenreDelete(d, nil)
}
