package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/data/memory"
	"github.com/aoideee/locallibrary/internal/validator"
)

var fixedNow = time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC)

func newTestCatalog(t *testing.T) (*Catalog, data.Models) {
	t.Helper()
	models := memory.NewModels()
	c := New(models,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return fixedNow }),
	)
	return c, models
}

// seed stores an author, two genres, a book filed under both genres and one
// copy of the book.
type seed struct {
	author  data.Author
	fantasy data.Genre
	horror  data.Genre
	book    data.Book
	copy    data.BookInstance
}

func seedCatalog(t *testing.T, c *Catalog) seed {
	t.Helper()
	ctx := context.Background()
	var s seed

	af, err := c.Authors.Create(ctx, data.AuthorInput{FirstName: "Patrick", FamilyName: "Rothfuss", DateOfBirth: "1973-06-06"})
	require.NoError(t, err)
	require.False(t, af.Invalid())
	s.author = af.Author

	s.fantasy = createGenre(t, c, "Fantasy")
	s.horror = createGenre(t, c, "Horror")

	bf, err := c.Books.Create(ctx, data.BookInput{
		Title:   "The Name of the Wind",
		Author:  s.author.ID,
		Summary: "A young man grows to be the most notorious magician.",
		ISBN:    "9780756404741",
		Genre:   []string{s.fantasy.ID, s.horror.ID},
	})
	require.NoError(t, err)
	require.False(t, bf.Invalid(), "%v", bf.Errors)
	s.book = bf.Book

	cf, err := c.BookInstances.Create(ctx, data.BookInstanceInput{Book: s.book.ID, Imprint: "DAW, 2007", Status: "Available"})
	require.NoError(t, err)
	require.False(t, cf.Invalid(), "%v", cf.Errors)
	s.copy = cf.Instance
	return s
}

func createGenre(t *testing.T, c *Catalog, name string) data.Genre {
	t.Helper()
	gf, err := c.Genres.Create(context.Background(), data.GenreInput{Name: name})
	require.NoError(t, err)
	require.False(t, gf.Invalid(), "%v", gf.Errors)
	return gf.Genre
}

func TestSummary(t *testing.T) {
	c, _ := newTestCatalog(t)
	s := seedCatalog(t, c)
	ctx := context.Background()

	_, err := c.BookInstances.Create(ctx, data.BookInstanceInput{Book: s.book.ID, Imprint: "Gollancz, 2008"})
	require.NoError(t, err)

	summary, err := c.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{
		Books:              1,
		BookInstances:      2,
		AvailableInstances: 1,
		Authors:            1,
		Genres:             2,
	}, summary)
}

func TestCreateThenDetailReturnsSanitizedFields(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	t.Run("author", func(t *testing.T) {
		form, err := c.Authors.Create(ctx, data.AuthorInput{
			FirstName:   "  Mary <Ann> ",
			FamilyName:  "Evans & Co",
			DateOfBirth: "1819-11-22",
			DateOfDeath: "1880-12-22",
		})
		require.NoError(t, err)
		require.False(t, form.Invalid())

		d, err := c.Authors.Detail(ctx, form.Author.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mary &lt;Ann&gt;", d.Author.FirstName)
		assert.Equal(t, "Evans &amp; Co", d.Author.FamilyName)
		assert.Equal(t, "1819-11-22 - 1880-12-22", d.Author.Lifespan())
		assert.Empty(t, d.Books)

		// Submitting the stored values again changes nothing.
		again, err := c.Authors.Create(ctx, data.AuthorInput{
			FirstName:  d.Author.FirstName,
			FamilyName: d.Author.FamilyName,
		})
		require.NoError(t, err)
		assert.Equal(t, d.Author.FirstName, again.Author.FirstName)
		assert.Equal(t, d.Author.FamilyName, again.Author.FamilyName)
	})

	t.Run("genre", func(t *testing.T) {
		form, err := c.Genres.Create(ctx, data.GenreInput{Name: " Sci/Fi "})
		require.NoError(t, err)
		require.False(t, form.Invalid())
		assert.False(t, form.Existing)

		d, err := c.Genres.Detail(ctx, form.Genre.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sci&#x2F;Fi", d.Genre.Name)
	})

	t.Run("book instance", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		s := seedCatalog(t, c)
		form, err := c.BookInstances.Create(ctx, data.BookInstanceInput{Book: s.book.ID, Imprint: " Tor "})
		require.NoError(t, err)
		require.False(t, form.Invalid())

		d, err := c.BookInstances.Detail(ctx, form.Instance.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tor", d.Instance.Imprint)
		assert.Equal(t, data.StatusMaintenance, d.Instance.Status)
		assert.True(t, fixedNow.Equal(d.Instance.DueBack))
		require.NotNil(t, d.Book)
		assert.Equal(t, s.book.ID, d.Book.ID)
	})
}

func TestCreateWithMissingFieldRevalidates(t *testing.T) {
	c, models := newTestCatalog(t)
	ctx := context.Background()
	s := seedCatalog(t, c)

	tests := []struct {
		name   string
		create func() (fieldsErr []string, err error)
		count  func() (int64, error)
		want   string
	}{
		{
			name: "author without family name",
			create: func() ([]string, error) {
				f, err := c.Authors.Create(ctx, data.AuthorInput{FirstName: "Ann"})
				return fieldsOf(f.Errors), err
			},
			count: func() (int64, error) { return models.Authors.Count(ctx, nil) },
			want:  "family_name",
		},
		{
			name: "genre without name",
			create: func() ([]string, error) {
				f, err := c.Genres.Create(ctx, data.GenreInput{})
				return fieldsOf(f.Errors), err
			},
			count: func() (int64, error) { return models.Genres.Count(ctx, nil) },
			want:  "name",
		},
		{
			name: "book without isbn",
			create: func() ([]string, error) {
				f, err := c.Books.Create(ctx, data.BookInput{Title: "t", Author: s.author.ID, Summary: "s"})
				return fieldsOf(f.Errors), err
			},
			count: func() (int64, error) { return models.Books.Count(ctx, nil) },
			want:  "isbn",
		},
		{
			name: "copy without imprint",
			create: func() ([]string, error) {
				f, err := c.BookInstances.Create(ctx, data.BookInstanceInput{Book: s.book.ID})
				return fieldsOf(f.Errors), err
			},
			count: func() (int64, error) { return models.BookInstances.Count(ctx, nil) },
			want:  "imprint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := tt.count()
			require.NoError(t, err)

			fields, err := tt.create()
			require.NoError(t, err)
			assert.Contains(t, fields, tt.want)

			after, err := tt.count()
			require.NoError(t, err)
			assert.Equal(t, before, after, "nothing may be stored")
		})
	}
}

func TestRevalidationCarriesChoices(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	s := seedCatalog(t, c)

	bf, err := c.Books.Create(ctx, data.BookInput{Title: "Untitled", Genre: []string{s.horror.ID}})
	require.NoError(t, err)
	require.True(t, bf.Invalid())
	assert.Len(t, bf.Authors, 1)
	assert.Equal(t, []string{"Fantasy", "Horror"}, []string{bf.Genres[0].Name, bf.Genres[1].Name})
	assert.True(t, bf.Book.HasGenre(s.horror.ID))

	cf, err := c.BookInstances.Create(ctx, data.BookInstanceInput{Book: s.book.ID, Status: "Lost"})
	require.NoError(t, err)
	require.True(t, cf.Invalid())
	require.Len(t, cf.Books, 1)
	assert.Equal(t, s.book.ID, cf.Books[0].ID)
}

func TestReferencesMustExist(t *testing.T) {
	c, models := newTestCatalog(t)
	ctx := context.Background()
	s := seedCatalog(t, c)

	bf, err := c.Books.Create(ctx, data.BookInput{
		Title: "Ghost", Author: "no-such-author", Summary: "s", ISBN: "1",
		Genre: []string{s.fantasy.ID, "no-such-genre"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"author": "Author not found",
		"genre":  "Genre not found",
	}, bf.Errors.Map())

	cf, err := c.BookInstances.Create(ctx, data.BookInstanceInput{Book: "no-such-book", Imprint: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Book not found", cf.Errors.Map()["book"])

	n, err := models.Books.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func fieldsOf(errs validator.FieldErrors) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}
