package selector

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func setupTestDatabase(t *testing.T, setupQueries ...string) *sql.DB {
	// Create a temp file so that the sqlite file is not populating random directories.
	f, err := os.CreateTemp("", "selector-test-data")
	assert.NoError(t, err, "could not create database temp file")
	assert.NoError(t, f.Close())
	t.Cleanup(func() { _ = os.Remove(f.Name()) })

	db, err := sql.Open("sqlite3", f.Name())
	assert.NoError(t, err, "could not connect to sqlite3")
	t.Cleanup(func() { _ = db.Close() })

	// Run the provided queries as a setup step.
	for _, query := range setupQueries {
		_, err = db.Exec(query)
		assert.NoError(t, err, "failed to run setup queries")
	}

	return db
}

// recordingDriver remembers what it was asked to do, and reports affected as the row count.
type recordingDriver struct {
	calls []string

	params QueryParams

	table         string
	values        Values
	selection     string
	selectionArgs []any

	affected int64
	err      error
}

func (d *recordingDriver) Query(_ context.Context, p QueryParams) (*sql.Rows, error) {
	d.calls = append(d.calls, "query")
	d.params = p
	return nil, d.err
}

func (d *recordingDriver) Update(_ context.Context, table string, values Values, selection string, selectionArgs []any) (int64, error) {
	d.calls = append(d.calls, "update")
	d.table, d.values, d.selection, d.selectionArgs = table, values, selection, selectionArgs
	return d.affected, d.err
}

func (d *recordingDriver) Delete(_ context.Context, table string, selection string, selectionArgs []any) (int64, error) {
	d.calls = append(d.calls, "delete")
	d.table, d.selection, d.selectionArgs = table, selection, selectionArgs
	return d.affected, d.err
}
