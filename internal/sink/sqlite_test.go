package sink

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galpin/pluck/api"
	"github.com/galpin/pluck/internal/columnar"
	"github.com/galpin/pluck/internal/normalize"
	"github.com/galpin/pluck/internal/tree"
)

func makeBatch(t *testing.T, src string) api.Batch {
	t.Helper()
	doc, err := oj.Parse([]byte(src))
	require.NoError(t, err)
	rows, err := normalize.Normalize(tree.FromAny(doc), nil)
	require.NoError(t, err)
	batch, err := columnar.FromRows(rows)
	require.NoError(t, err)
	return batch
}

func TestWriteBatch(t *testing.T) {
	batch := makeBatch(t, `{
	  "launches": [
	    {"id": 1, "ok": true, "mass": 1.5, "name": "Falcon"},
	    {"id": 2, "ok": false, "mass": null, "name": "Heavy"}
	  ]
	}`)

	dbPath := filepath.Join(t.TempDir(), "out.db")
	require.NoError(t, WriteBatch(dbPath, "launches", batch))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "launches"`).Scan(&count))
	assert.Equal(t, 2, count)

	var (
		id   int64
		ok   bool
		name string
		mass sql.NullFloat64
	)
	row := db.QueryRow(`SELECT "launches.id", "launches.ok", "launches.name", "launches.mass" FROM "launches" WHERE "launches.id" = 2`)
	require.NoError(t, row.Scan(&id, &ok, &name, &mass))
	assert.Equal(t, int64(2), id)
	assert.False(t, ok)
	assert.Equal(t, "Heavy", name)
	assert.False(t, mass.Valid)
}

func TestWriteBatchReplacesTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "out.db")

	require.NoError(t, WriteBatch(dbPath, "t", makeBatch(t, `{"a": [1, 2, 3]}`)))
	require.NoError(t, WriteBatch(dbPath, "t", makeBatch(t, `{"a": [1]}`)))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "t"`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestWriteBatchQuotedIdentifiers(t *testing.T) {
	// JSON keys can contain double quotes; identifiers must be quoted by
	// doubling, not with Go string escapes.
	batch := makeBatch(t, `{"he said \"hi\"": [1, 2], "città": "x"}`)

	dbPath := filepath.Join(t.TempDir(), "out.db")
	require.NoError(t, WriteBatch(dbPath, `odd "table"`, batch))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "odd ""table"""`).Scan(&count))
	assert.Equal(t, 2, count)

	var v int64
	row := db.QueryRow(`SELECT "he said ""hi""" FROM "odd ""table""" ORDER BY "he said ""hi""" DESC LIMIT 1`)
	require.NoError(t, row.Scan(&v))
	assert.Equal(t, int64(2), v)
}

func TestWriteBatchEmptySchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "out.db")
	require.NoError(t, WriteBatch(dbPath, "t", api.Batch{}))
}
