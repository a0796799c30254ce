package docsql

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/aoideee/locallibrary/internal/data"
)

// Dialect captures the SQL that differs between database engines. Queries are
// written with "?" placeholders and rebound per dialect.
type Dialect struct {
	Name       string
	DriverName string

	createTable string
	// uniqueIndex formats a partial unique index for (index name, collection, field).
	uniqueIndex string
	// fieldMatch is a predicate taking (field, value) that matches a scalar
	// field equal to value or an array field containing it.
	fieldMatch string
	// fieldSort is an ORDER BY expression taking (field).
	fieldSort  string
	numbered   bool
	uniqueViol func(error) bool
}

// Postgres stores documents as JSONB through lib/pq.
var Postgres = Dialect{
	Name:       "postgres",
	DriverName: "postgres",
	createTable: `CREATE TABLE IF NOT EXISTS documents (
		seq        BIGSERIAL,
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		body       JSONB NOT NULL,
		PRIMARY KEY (collection, id)
	)`,
	uniqueIndex: `CREATE UNIQUE INDEX IF NOT EXISTS %s ON documents ((body->>'%s')) WHERE collection = '%s'`,
	fieldMatch:  `body->(?::text) @> to_jsonb(?::text)`,
	fieldSort:   `body->>(?::text)`,
	numbered:    true,
	uniqueViol: func(err error) bool {
		var pqErr *pq.Error
		return errors.As(err, &pqErr) && pqErr.Code == "23505"
	},
}

// SQLite stores documents as JSON text through the pure Go modernc driver.
var SQLite = Dialect{
	Name:       "sqlite",
	DriverName: "sqlite",
	createTable: `CREATE TABLE IF NOT EXISTS documents (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		id         TEXT NOT NULL,
		body       TEXT NOT NULL,
		UNIQUE (collection, id)
	)`,
	uniqueIndex: `CREATE UNIQUE INDEX IF NOT EXISTS %s ON documents (json_extract(body, '$.%s')) WHERE collection = '%s'`,
	fieldMatch:  `EXISTS (SELECT 1 FROM json_each(documents.body, '$.' || ?) WHERE json_each.value = ?)`,
	fieldSort:   `json_extract(body, '$.' || ?)`,
	uniqueViol: func(err error) bool {
		var sqliteErr *sqlite.Error
		return errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	},
}

// schema returns the statements that create the documents table and its indexes.
func (d Dialect) schema() []string {
	stmts := []string{
		d.createTable,
		`CREATE INDEX IF NOT EXISTS documents_collection_seq ON documents (collection, seq)`,
	}
	collections := make([]string, 0, len(data.UniqueFields))
	for c := range data.UniqueFields {
		collections = append(collections, c)
	}
	sort.Strings(collections)
	for _, c := range collections {
		for _, field := range data.UniqueFields[c] {
			name := fmt.Sprintf("documents_%s_%s_key", c, field)
			stmts = append(stmts, fmt.Sprintf(d.uniqueIndex, name, field, c))
		}
	}
	return stmts
}

// rebind rewrites "?" placeholders to "$n" for dialects that number them.
func (d Dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
