package selector

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_buildQueryString(t *testing.T) {
	tests := []struct {
		name    string
		params  QueryParams
		want    string
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "all columns",
			params:  QueryParams{Table: "food"},
			want:    `SELECT * FROM "food";`,
			wantErr: assert.NoError,
		},
		{
			name: "columns and selection",
			params: QueryParams{
				Table:     "pantry.food",
				Columns:   []string{"name", "count(*) AS total"},
				Selection: "(kilojoules < ?)",
			},
			want:    `SELECT name, count(*) AS total FROM "pantry"."food" WHERE (kilojoules < ?);`,
			wantErr: assert.NoError,
		},
		{
			name: "every clause",
			params: QueryParams{
				Distinct:  true,
				Table:     "food",
				Columns:   []string{"name"},
				Selection: "(a = ?)",
				GroupBy:   "name",
				Having:    "count(*) > 1",
				OrderBy:   "name DESC",
				Limit:     "5, 10",
			},
			want:    `SELECT DISTINCT name FROM "food" WHERE (a = ?) GROUP BY name HAVING count(*) > 1 ORDER BY name DESC LIMIT 5, 10;`,
			wantErr: assert.NoError,
		},
		{
			name:    "join is not quoted",
			params:  QueryParams{Table: "a JOIN b ON a.id = b.a_id"},
			want:    `SELECT * FROM a JOIN b ON a.id = b.a_id;`,
			wantErr: assert.NoError,
		},
		{
			name:    "having without group by",
			params:  QueryParams{Table: "food", Having: "count(*) > 1"},
			wantErr: assert.Error,
		},
		{
			name:    "limit is not a number",
			params:  QueryParams{Table: "food", Limit: "1; DROP TABLE food"},
			wantErr: assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildQueryString(tt.params)
			if !tt.wantErr(t, err, fmt.Sprintf("buildQueryString(%v)", tt.params)) {
				return
			}
			assert.Equalf(t, tt.want, got, "buildQueryString(%v)", tt.params)
		})
	}
}

func TestBuildQueryStringErrors(t *testing.T) {
	_, err := buildQueryString(QueryParams{Table: "food", Having: "count(*) > 1"})
	assert.ErrorIs(t, err, ErrHavingWithoutGroupBy)

	_, err = buildQueryString(QueryParams{Table: "food", Limit: "ten"})
	assert.Equal(t, ErrInvalidLimit{"ten"}, err)
}

func TestBuildUpdateString(t *testing.T) {
	query, args, err := buildUpdateString(
		"bunny",
		Values{"Name": "king oliver", "EarLength": 30.0},
		"(Name = ?)",
		[]any{"mr. oliver"},
	)

	assert.NoError(t, err)
	assert.Equal(t, `UPDATE "bunny" SET "EarLength" = ?, "Name" = ? WHERE (Name = ?);`, query)
	assert.Equal(t, []any{30.0, "king oliver", "mr. oliver"}, args)
}

func TestBuildUpdateStringNoSelection(t *testing.T) {
	query, args, err := buildUpdateString("bunny", Values{"Name": "king oliver"}, "", nil)

	assert.NoError(t, err)
	assert.Equal(t, `UPDATE "bunny" SET "Name" = ?;`, query)
	assert.Equal(t, []any{"king oliver"}, args)
}

func TestBuildUpdateStringWithNoSetter(t *testing.T) {
	_, _, err := buildUpdateString("bunny", nil, "(Name = ?)", []any{"mr. oliver"})

	assert.ErrorIs(t, err, ErrNoSetStatement)
}

func TestBuildDeleteString(t *testing.T) {
	assert.Equal(t, `DELETE FROM "pantry";`, buildDeleteString("pantry", ""))
	assert.Equal(t, `DELETE FROM "store"."food" WHERE (Kilojoules < ?) AND (Name != ?);`,
		buildDeleteString("store.food", "(Kilojoules < ?) AND (Name != ?)"))
}

func TestBuildInsertString(t *testing.T) {
	query, args, err := buildInsertString("bunny", Values{"Name": "oliver", "EarLength": 20.0})

	assert.NoError(t, err)
	assert.Equal(t, `INSERT INTO "bunny" ("EarLength", "Name") VALUES (?, ?);`, query)
	assert.Equal(t, []any{20.0, "oliver"}, args)

	_, _, err = buildInsertString("bunny", Values{})
	assert.ErrorIs(t, err, ErrNoInsertValues)
}
