package selector

import "reflect"

func structFieldName(field reflect.StructField) string {
	if dbName, ok := field.Tag.Lookup("db"); ok {
		return dbName
	}
	return field.Name
}

// Columns lists the column names of T's exported fields, in field order.
// A "db" struct tag overrides the field name. The result lines up with what ScanRows expects.
// Columns panics if T is not a struct.
func Columns[T any]() []string {
	t := reflect.TypeFor[T]()

	var columns []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		columns = append(columns, structFieldName(f))
	}
	return columns
}
