package docsql

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/aoideee/locallibrary/internal/data"
	"github.com/aoideee/locallibrary/internal/data/datatest"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open(SQLite.DriverName, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	store, err := New(context.Background(), db, SQLite)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	datatest.RunContract(t, func(t *testing.T) data.Models {
		return newSQLiteStore(t).Models()
	})
}

func TestSQLiteMigrationIsRepeatable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := sql.Open(SQLite.DriverName, path)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	store, err := New(ctx, db, SQLite)
	require.NoError(t, err)
	g, err := store.Models().Genres.Insert(ctx, data.Genre{Name: "Fantasy"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	db, err = sql.Open(SQLite.DriverName, path)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	store, err = New(ctx, db, SQLite)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Models().Genres.FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fantasy", got.Name)
}

func TestCollectionsShareTableWithoutMixing(t *testing.T) {
	ctx := context.Background()
	m := newSQLiteStore(t).Models()

	_, err := m.Genres.Insert(ctx, data.Genre{Name: "Fantasy"})
	require.NoError(t, err)
	_, err = m.Authors.Insert(ctx, data.Author{FirstName: "Ursula", FamilyName: "Le Guin"})
	require.NoError(t, err)

	n, err := m.Genres.Count(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	authors, err := m.Authors.FindAll(ctx, data.Query{})
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Le Guin", authors[0].FamilyName)
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "SELECT ? FROM t WHERE a = ?", SQLite.rebind("SELECT ? FROM t WHERE a = ?"))
	assert.Equal(t, "SELECT $1 FROM t WHERE a = $2", Postgres.rebind("SELECT ? FROM t WHERE a = ?"))
}

// TestPostgresStore runs against the database named by LOCALLIBRARY_TEST_POSTGRES_DSN.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("LOCALLIBRARY_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("LOCALLIBRARY_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	db, err := sql.Open(Postgres.DriverName, dsn)
	require.NoError(t, err)
	store, err := New(ctx, db, Postgres)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	datatest.RunContract(t, func(t *testing.T) data.Models {
		_, err := store.DB.ExecContext(ctx, `TRUNCATE documents`)
		require.NoError(t, err)
		return store.Models()
	})
}
