package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/locallibrary/internal/data"
)

func TestGenreListSortedByName(t *testing.T) {
	c, _ := newTestCatalog(t)
	for _, name := range []string{"Horror", "Drama", "Adventure"} {
		createGenre(t, c, name)
	}

	genres, err := c.Genres.List(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Adventure", "Drama", "Horror"}, names)
}

func TestGenreCreateResolvesToExisting(t *testing.T) {
	c, models := newTestCatalog(t)
	ctx := context.Background()
	first := createGenre(t, c, "Fantasy")

	form, err := c.Genres.Create(ctx, data.GenreInput{Name: "Fantasy"})
	require.NoError(t, err)
	assert.False(t, form.Invalid())
	assert.True(t, form.Existing)
	assert.Equal(t, first.ID, form.Genre.ID)

	n, err := models.Genres.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

// staleGenres hides every genre from name lookups until the first insert has
// been attempted, as if a concurrent create had stored the name in between.
type staleGenres struct {
	data.Collection[data.Genre]
	inserted atomic.Bool
}

func (s *staleGenres) FindAll(ctx context.Context, q data.Query) ([]data.Genre, error) {
	if !s.inserted.Load() {
		return nil, nil
	}
	return s.Collection.FindAll(ctx, q)
}

func (s *staleGenres) Insert(ctx context.Context, g data.Genre) (data.Genre, error) {
	defer s.inserted.Store(true)
	return s.Collection.Insert(ctx, g)
}

func TestGenreCreateRaceResolvesToWinner(t *testing.T) {
	_, models := newTestCatalog(t)
	ctx := context.Background()
	winner, err := models.Genres.Insert(ctx, data.Genre{Name: "Fantasy"})
	require.NoError(t, err)

	models.Genres = &staleGenres{Collection: models.Genres}
	c := New(models)

	form, err := c.Genres.Create(ctx, data.GenreInput{Name: "Fantasy"})
	require.NoError(t, err)
	assert.True(t, form.Existing)
	assert.Equal(t, winner.ID, form.Genre.ID)
}

func TestUpdatePreservesID(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	s := seedCatalog(t, c)

	t.Run("author", func(t *testing.T) {
		form, err := c.Authors.Update(ctx, s.author.ID, data.AuthorInput{FirstName: "Pat", FamilyName: "Rothfuss", DateOfDeath: "2100-01-01"})
		require.NoError(t, err)
		require.False(t, form.Invalid())

		d, err := c.Authors.Detail(ctx, s.author.ID)
		require.NoError(t, err)
		assert.Equal(t, s.author.ID, d.Author.ID)
		assert.Equal(t, "Pat", d.Author.FirstName)
		assert.Nil(t, d.Author.DateOfBirth, "fields left blank are cleared")
		assert.Equal(t, " - 2100-01-01", d.Author.Lifespan())
		require.Len(t, d.Books, 1)
	})

	t.Run("genre", func(t *testing.T) {
		form, err := c.Genres.Update(ctx, s.horror.ID, data.GenreInput{Name: "Gothic Horror"})
		require.NoError(t, err)
		require.False(t, form.Invalid())

		d, err := c.Genres.Detail(ctx, s.horror.ID)
		require.NoError(t, err)
		assert.Equal(t, s.horror.ID, d.Genre.ID)
		assert.Equal(t, "Gothic Horror", d.Genre.Name)
	})

	t.Run("book", func(t *testing.T) {
		form, err := c.Books.Update(ctx, s.book.ID, data.BookInput{
			Title: "The Wise Man's Fear", Author: s.author.ID, Summary: "Sequel", ISBN: "9780756407124",
			Genre: []string{s.fantasy.ID},
		})
		require.NoError(t, err)
		require.False(t, form.Invalid(), "%v", form.Errors)

		d, err := c.Books.Detail(ctx, s.book.ID)
		require.NoError(t, err)
		assert.Equal(t, s.book.ID, d.Book.ID)
		assert.Equal(t, "The Wise Man&#x27;s Fear", d.Book.Title)
		require.Len(t, d.Genres, 1)
		assert.Equal(t, s.fantasy.ID, d.Genres[0].ID)
		require.NotNil(t, d.Author)
		require.Len(t, d.Instances, 1)
	})

	t.Run("book instance", func(t *testing.T) {
		form, err := c.BookInstances.Update(ctx, s.copy.ID, data.BookInstanceInput{
			Book: s.book.ID, Imprint: "DAW, 2008", Status: "Loaned", DueBack: "2024-06-01",
		})
		require.NoError(t, err)
		require.False(t, form.Invalid())

		d, err := c.BookInstances.Detail(ctx, s.copy.ID)
		require.NoError(t, err)
		assert.Equal(t, s.copy.ID, d.Instance.ID)
		assert.Equal(t, data.StatusLoaned, d.Instance.Status)
		assert.Equal(t, "2024-06-01", d.Instance.DueBackInput())
	})
}

func TestUpdateGenreToTakenNameIsFieldError(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	createGenre(t, c, "Fantasy")
	horror := createGenre(t, c, "Horror")

	form, err := c.Genres.Update(ctx, horror.ID, data.GenreInput{Name: "Fantasy"})
	require.NoError(t, err)
	assert.Equal(t, "Genre already exists", form.Errors.Map()["name"])

	d, err := c.Genres.Detail(ctx, horror.ID)
	require.NoError(t, err)
	assert.Equal(t, "Horror", d.Genre.Name)
}

func TestMissingRecords(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	const id = "missing"

	_, err := c.Authors.Detail(ctx, id)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
	_, err = c.Genres.Detail(ctx, id)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
	_, err = c.Books.Detail(ctx, id)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
	_, err = c.BookInstances.Detail(ctx, id)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)

	_, err = c.Authors.UpdateForm(ctx, id)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
	_, err = c.Genres.Update(ctx, id, data.GenreInput{Name: "Fantasy"})
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
	_, err = c.Books.UpdateForm(ctx, id)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)

	_, err = c.Genres.DeleteForm(ctx, id)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
	_, err = c.BookInstances.Delete(ctx, id)
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

func TestDeleteGenre(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked while a book uses it", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		s := seedCatalog(t, c)

		form, err := c.Genres.DeleteForm(ctx, s.fantasy.ID)
		require.NoError(t, err)
		require.Len(t, form.Blocking, 1)
		assert.False(t, form.Deleted)

		d, err := c.Genres.Delete(ctx, s.fantasy.ID)
		require.NoError(t, err)
		assert.False(t, d.Deleted)
		assert.True(t, d.Blocked())
		require.Len(t, d.Blocking, 1)
		assert.Equal(t, s.book.ID, d.Blocking[0].ID)

		_, err = c.Genres.Detail(ctx, s.fantasy.ID)
		assert.NoError(t, err, "a blocked genre stays")
	})

	t.Run("deleted when unused", func(t *testing.T) {
		c, _ := newTestCatalog(t)
		g := createGenre(t, c, "Poetry")

		d, err := c.Genres.Delete(ctx, g.ID)
		require.NoError(t, err)
		assert.True(t, d.Deleted)
		assert.Empty(t, d.Blocking)

		_, err = c.Genres.Detail(ctx, g.ID)
		assert.ErrorIs(t, err, data.ErrRecordNotFound)
	})
}

func TestDeleteChain(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	s := seedCatalog(t, c)

	// The author and book are held by the book and its copy respectively.
	ad, err := c.Authors.Delete(ctx, s.author.ID)
	require.NoError(t, err)
	assert.False(t, ad.Deleted)
	require.Len(t, ad.Blocking, 1)
	assert.Equal(t, s.book.ID, ad.Blocking[0].ID)

	bd, err := c.Books.Delete(ctx, s.book.ID)
	require.NoError(t, err)
	assert.False(t, bd.Deleted)
	require.Len(t, bd.Blocking, 1)
	assert.Equal(t, s.copy.ID, bd.Blocking[0].ID)

	// Removing from the leaves up clears every block.
	cd, err := c.BookInstances.Delete(ctx, s.copy.ID)
	require.NoError(t, err)
	assert.True(t, cd.Deleted)

	bd, err = c.Books.Delete(ctx, s.book.ID)
	require.NoError(t, err)
	assert.True(t, bd.Deleted)

	ad, err = c.Authors.Delete(ctx, s.author.ID)
	require.NoError(t, err)
	assert.True(t, ad.Deleted)

	summary, err := c.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{Genres: 2}, summary)
}

func TestGuard(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	s := seedCatalog(t, c)
	poetry := createGenre(t, c, "Poetry")

	tests := []struct {
		kind     Kind
		id       string
		allowed  bool
		blocking []string
	}{
		{KindGenre, s.horror.ID, false, []string{s.book.ID}},
		{KindGenre, poetry.ID, true, nil},
		{KindAuthor, s.author.ID, false, []string{s.book.ID}},
		{KindBook, s.book.ID, false, []string{s.copy.ID}},
		{KindBookInstance, s.copy.ID, true, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			v, err := c.Guard.CanDelete(ctx, tt.kind, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, v.Allowed)

			var ids []string
			for _, r := range v.Blocking {
				ids = append(ids, r.GetID())
			}
			assert.Equal(t, tt.blocking, ids)
		})
	}

	_, err := c.Guard.CanDelete(ctx, Kind("shelf"), "x")
	assert.Error(t, err)
}

// failingBooks fails every read of the books collection.
type failingBooks struct {
	data.Collection[data.Book]
}

var errStore = errors.New("store unavailable")

func (failingBooks) FindAll(context.Context, data.Query) ([]data.Book, error) {
	return nil, errStore
}

func TestStoreErrorsPropagate(t *testing.T) {
	_, models := newTestCatalog(t)
	ctx := context.Background()
	g, err := models.Genres.Insert(ctx, data.Genre{Name: "Fantasy"})
	require.NoError(t, err)

	models.Books = failingBooks{Collection: models.Books}
	c := New(models)

	_, err = c.Genres.Detail(ctx, g.ID)
	assert.ErrorIs(t, err, errStore)

	d, err := c.Genres.Delete(ctx, g.ID)
	assert.ErrorIs(t, err, errStore)
	assert.False(t, d.Deleted)

	_, err = models.Genres.FindByID(ctx, g.ID)
	assert.NoError(t, err, "nothing is removed when the check fails")

	_, err = c.Summary(ctx)
	assert.NoError(t, err, "counting does not list books")
}
