// Package datatest holds the behavior every data.Collection backend must
// share, written once and run against each backend's test setup.
package datatest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/locallibrary/internal/data"
)

// RunContract exercises a backend. newModels must return empty collections
// on every call.
func RunContract(t *testing.T, newModels func(t *testing.T) data.Models) {
	ctx := context.Background()

	t.Run("Insert assigns an id and FindByID returns the stored record", func(t *testing.T) {
		m := newModels(t)
		born := time.Date(1920, time.January, 2, 0, 0, 0, 0, time.UTC)

		created, err := m.Authors.Insert(ctx, data.Author{FirstName: "Isaac", FamilyName: "Asimov", DateOfBirth: &born})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		got, err := m.Authors.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Asimov", got.FamilyName)
		require.NotNil(t, got.DateOfBirth)
		assert.True(t, born.Equal(*got.DateOfBirth))
		assert.Nil(t, got.DateOfDeath)
	})

	t.Run("FindByID reports a missing id", func(t *testing.T) {
		m := newModels(t)
		_, err := m.Genres.FindByID(ctx, "000000000000000000000000")
		assert.ErrorIs(t, err, data.ErrRecordNotFound)
	})

	t.Run("FindAll keeps insertion order without a sort", func(t *testing.T) {
		m := newModels(t)
		var ids []string
		for _, title := range []string{"Zeta", "Alpha", "Mu"} {
			b, err := m.Books.Insert(ctx, data.Book{Title: title, Author: "a", Summary: "s", ISBN: "i", Genre: []string{}})
			require.NoError(t, err)
			ids = append(ids, b.ID)
		}

		books, err := m.Books.FindAll(ctx, data.Query{})
		require.NoError(t, err)
		require.Len(t, books, 3)
		for i, b := range books {
			assert.Equal(t, ids[i], b.ID)
		}
	})

	t.Run("FindAll sorts by a field", func(t *testing.T) {
		m := newModels(t)
		for _, name := range []string{"Poetry", "Fantasy", "Horror"} {
			_, err := m.Genres.Insert(ctx, data.Genre{Name: name})
			require.NoError(t, err)
		}

		asc, err := m.Genres.FindAll(ctx, data.Query{Sort: &data.Sort{Field: "name"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Fantasy", "Horror", "Poetry"}, genreNames(asc))

		desc, err := m.Genres.FindAll(ctx, data.Query{Sort: &data.Sort{Field: "name", Desc: true}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Poetry", "Horror", "Fantasy"}, genreNames(desc))
	})

	t.Run("Filter matches scalar fields and array members", func(t *testing.T) {
		m := newModels(t)
		one, err := m.Books.Insert(ctx, data.Book{Title: "One", Author: "a1", Summary: "s", ISBN: "1", Genre: []string{"g1", "g2"}})
		require.NoError(t, err)
		_, err = m.Books.Insert(ctx, data.Book{Title: "Two", Author: "a2", Summary: "s", ISBN: "2", Genre: []string{"g2"}})
		require.NoError(t, err)

		byAuthor, err := m.Books.FindAll(ctx, data.Query{Filter: data.Eq("author", "a1")})
		require.NoError(t, err)
		require.Len(t, byAuthor, 1)
		assert.Equal(t, one.ID, byAuthor[0].ID)

		byGenre, err := m.Books.FindAll(ctx, data.Query{Filter: data.Eq("genre", "g2")})
		require.NoError(t, err)
		assert.Len(t, byGenre, 2)

		only1, err := m.Books.FindAll(ctx, data.Query{Filter: data.Eq("genre", "g1")})
		require.NoError(t, err)
		require.Len(t, only1, 1)
		assert.Equal(t, one.ID, only1[0].ID)
		assert.Equal(t, []string{"g1", "g2"}, only1[0].Genre)

		none, err := m.Books.FindAll(ctx, data.Query{Filter: data.Eq("genre", "g3")})
		require.NoError(t, err)
		assert.Empty(t, none)

		n, err := m.Books.Count(ctx, data.Eq("author", "a2"))
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("Count without a filter counts everything", func(t *testing.T) {
		m := newModels(t)
		now := time.Now().UTC().Truncate(time.Millisecond)
		for _, st := range []data.Status{data.StatusAvailable, data.StatusLoaned, data.StatusAvailable} {
			_, err := m.BookInstances.Insert(ctx, data.BookInstance{Book: "b", Imprint: "i", Status: st, DueBack: now})
			require.NoError(t, err)
		}

		all, err := m.BookInstances.Count(ctx, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 3, all)

		available, err := m.BookInstances.Count(ctx, data.Eq("status", string(data.StatusAvailable)))
		require.NoError(t, err)
		assert.EqualValues(t, 2, available)
	})

	t.Run("Genre names are unique", func(t *testing.T) {
		m := newModels(t)
		_, err := m.Genres.Insert(ctx, data.Genre{Name: "Fantasy"})
		require.NoError(t, err)
		other, err := m.Genres.Insert(ctx, data.Genre{Name: "Horror"})
		require.NoError(t, err)

		_, err = m.Genres.Insert(ctx, data.Genre{Name: "Fantasy"})
		assert.ErrorIs(t, err, data.ErrDuplicateRecord)

		other.Name = "Fantasy"
		err = m.Genres.Update(ctx, other)
		assert.ErrorIs(t, err, data.ErrDuplicateRecord)

		// Saving a genre under its own name is not a conflict.
		other.Name = "Horror"
		assert.NoError(t, m.Genres.Update(ctx, other))

		n, err := m.Genres.Count(ctx, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})

	t.Run("Update replaces every field and keeps the id", func(t *testing.T) {
		m := newModels(t)
		due := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
		bi, err := m.BookInstances.Insert(ctx, data.BookInstance{Book: "b1", Imprint: "First", Status: data.StatusMaintenance, DueBack: due})
		require.NoError(t, err)

		later := due.AddDate(0, 1, 0)
		err = m.BookInstances.Update(ctx, data.BookInstance{ID: bi.ID, Book: "b2", Imprint: "Second", Status: data.StatusLoaned, DueBack: later})
		require.NoError(t, err)

		got, err := m.BookInstances.FindByID(ctx, bi.ID)
		require.NoError(t, err)
		assert.Equal(t, bi.ID, got.ID)
		assert.Equal(t, "b2", got.Book)
		assert.Equal(t, "Second", got.Imprint)
		assert.Equal(t, data.StatusLoaned, got.Status)
		assert.True(t, later.Equal(got.DueBack))
	})

	t.Run("Update and Remove report a missing id", func(t *testing.T) {
		m := newModels(t)
		err := m.Authors.Update(ctx, data.Author{ID: "000000000000000000000000", FirstName: "x", FamilyName: "y"})
		assert.ErrorIs(t, err, data.ErrRecordNotFound)

		err = m.Authors.Remove(ctx, "000000000000000000000000")
		assert.ErrorIs(t, err, data.ErrRecordNotFound)
	})

	t.Run("Remove deletes the record", func(t *testing.T) {
		m := newModels(t)
		g, err := m.Genres.Insert(ctx, data.Genre{Name: "Satire"})
		require.NoError(t, err)

		require.NoError(t, m.Genres.Remove(ctx, g.ID))

		_, err = m.Genres.FindByID(ctx, g.ID)
		assert.ErrorIs(t, err, data.ErrRecordNotFound)

		// The name is free again.
		_, err = m.Genres.Insert(ctx, data.Genre{Name: "Satire"})
		assert.NoError(t, err)
	})
}

func genreNames(genres []data.Genre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}
