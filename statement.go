package selector

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// Values maps column names to the values written by an update or insert.
type Values map[string]any

// QueryParams is everything Driver.Query needs to render a SELECT.
// Empty strings leave the matching clause out, and no Columns selects "*".
type QueryParams struct {
	Distinct bool

	Table   string
	Columns []string

	Selection     string
	SelectionArgs []any

	GroupBy string
	Having  string
	OrderBy string
	Limit   string
}

var limitPattern = regexp.MustCompile(`^\s*\d+\s*(,\s*\d+\s*)?$`)

// buildQueryString renders the SELECT described by p.
//
// The resulting query should look something like:
//
//	SELECT "a", "b" FROM "table" WHERE (a > ?) GROUP BY a HAVING count(*) > 1 ORDER BY b LIMIT 10;
func buildQueryString(p QueryParams) (string, error) {
	if p.GroupBy == "" && p.Having != "" {
		return "", ErrHavingWithoutGroupBy
	}
	if p.Limit != "" && !limitPattern.MatchString(p.Limit) {
		return "", ErrInvalidLimit{p.Limit}
	}

	sb := strings.Builder{}
	sb.WriteString("SELECT ")
	if p.Distinct {
		sb.WriteString("DISTINCT ")
	}

	if len(p.Columns) == 0 {
		sb.WriteString("*")
	} else {
		// Columns may be expressions ("count(*)", "a.b AS b"), so they are written as given.
		sb.WriteString(strings.Join(p.Columns, ", "))
	}

	sb.WriteString(" FROM ")
	sb.WriteString(newTableName(p.Table).String())

	writeClause(&sb, " WHERE ", p.Selection)
	writeClause(&sb, " GROUP BY ", p.GroupBy)
	writeClause(&sb, " HAVING ", p.Having)
	writeClause(&sb, " ORDER BY ", p.OrderBy)
	writeClause(&sb, " LIMIT ", p.Limit)
	sb.WriteString(";")

	return sb.String(), nil
}

// buildUpdateString renders an UPDATE for values. Set arguments come before the selection arguments.
//
// The resulting query should look something like:
//
//	UPDATE "table" SET "field1" = ?, "field2" = ? WHERE (field1 = ?);
func buildUpdateString(table string, values Values, selection string, selectionArgs []any) (string, []any, error) {
	if len(values) == 0 {
		return "", nil, ErrNoSetStatement
	}

	columns := sortedColumns(values)
	args := make([]any, 0, len(columns)+len(selectionArgs))

	sb := strings.Builder{}
	sb.WriteString("UPDATE ")
	sb.WriteString(newTableName(table).String())
	sb.WriteString(" SET ")
	for i, column := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf(`"%s" = ?`, column))
		args = append(args, values[column])
	}

	writeClause(&sb, " WHERE ", selection)
	sb.WriteString(";")

	return sb.String(), append(args, selectionArgs...), nil
}

// buildDeleteString renders a DELETE. Without a selection every row is removed.
//
// The resulting query should look something like:
//
//	DELETE FROM "schema"."table" WHERE (field1 = ?);
func buildDeleteString(table string, selection string) string {
	sb := strings.Builder{}
	sb.WriteString("DELETE FROM ")
	sb.WriteString(newTableName(table).String())
	writeClause(&sb, " WHERE ", selection)
	sb.WriteString(";")
	return sb.String()
}

// buildInsertString renders a single row INSERT for values.
//
// The resulting query should look something like:
//
//	INSERT INTO "table" ("field1", "field2") VALUES (?, ?);
func buildInsertString(table string, values Values) (string, []any, error) {
	if len(values) == 0 {
		return "", nil, ErrNoInsertValues
	}

	columns := sortedColumns(values)
	args := make([]any, 0, len(columns))
	quoted := make([]string, 0, len(columns))
	for _, column := range columns {
		quoted = append(quoted, `"`+column+`"`)
		args = append(args, values[column])
	}

	// (?, ?)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s);",
		newTableName(table), strings.Join(quoted, ", "), placeholders,
	)
	return query, args, nil
}

func writeClause(sb *strings.Builder, keyword, clause string) {
	if clause == "" {
		return
	}
	sb.WriteString(keyword)
	sb.WriteString(clause)
}

// Map iteration order is random, sorting keeps the rendered SQL and its arguments stable.
func sortedColumns(values Values) []string {
	return slices.Sorted(maps.Keys(values))
}
