package selector

import (
	"database/sql"
	"reflect"
)

// ScanRows maps every row onto a new T, where each exported field of T is a column in the row.
// Columns must be in field order, see Columns. The rows are closed once read.
// ErrNotStruct is returned when T is not a struct.
func ScanRows[T any](rows *sql.Rows) ([]T, error) {
	defer rows.Close()

	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	// No way to determine the number of rows, other than by simply scanning one-by-one.
	var mapped []T
	for rows.Next() {
		mappedValue := reflect.ValueOf(new(T)).Elem()

		// Scan straight into the fields, unexported ones are skipped.
		var dest []any
		for i := range t.NumField() {
			if !t.Field(i).IsExported() {
				continue
			}
			dest = append(dest, mappedValue.Field(i).Addr().Interface())
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		mapped = append(mapped, mappedValue.Interface().(T))
	}

	return mapped, rows.Err()
}
