package selector

import (
	"regexp"
	"strings"
)

// Only plain identifiers are quoted. Anything else (joins, subqueries) is written as given.
var plainTableName = regexp.MustCompile(`^[a-zA-Z_][0-9a-zA-Z_]*(\.[a-zA-Z_][0-9a-zA-Z_]*)?$`)

type tableName struct {
	raw       string
	schema    string
	tableName string
}

func newTableName(s string) tableName {
	if !plainTableName.MatchString(s) {
		return tableName{raw: s}
	}

	var t tableName
	parts := strings.Split(s, ".")
	if len(parts) > 1 {
		// Schema was provided in tableName, it comes before the actual table name.
		t.schema = parts[0]
	}

	// Whether a schema is provided or not, the table name is always the last part.
	t.tableName = parts[len(parts)-1]

	return t
}

func (t tableName) String() string {
	if t.raw != "" {
		return t.raw
	}

	if t.schema != "" {
		return `"` + t.schema + `"."` + t.tableName + `"`
	}

	return `"` + t.tableName + `"`
}
