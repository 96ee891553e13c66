package selector

import (
	"errors"
	"fmt"
)

var (
	// ErrSelectionRequired occurs when arguments are given to Where without a selection to bind them to.
	ErrSelectionRequired = errors.New("valid selection required when including arguments")

	// ErrTableNotSpecified occurs when a terminal call is made before SelectionBuilder.Table.
	ErrTableNotSpecified = errors.New("table not specified")

	ErrNoSetStatement = errors.New("update statement has no values to set")
	ErrNoInsertValues = errors.New("insert statement has no insert values")

	ErrHavingWithoutGroupBy = errors.New("having clauses are only permitted when using a group by clause")

	// ErrEmptyInList occurs when IN or NOT IN is given no values, which would match every row or none.
	ErrEmptyInList = errors.New("in operation has no values")

	ErrNotStruct = errors.New("rows can only be scanned into a struct")
)

// ErrInvalidLimit occurs when a limit is not of the form "n" or "offset, n".
type ErrInvalidLimit struct {
	Limit string
}

func (e ErrInvalidLimit) Error() string {
	return `"` + e.Limit + `" is not a valid limit clause`
}

// ErrInvalidInValue occurs when the value of an IN or NOT IN operation is not a slice or array.
type ErrInvalidInValue struct {
	FieldName string
	Value     any
}

func (e ErrInvalidInValue) Error() string {
	return fmt.Sprintf(`%T is not a valid list of values for "%s"`, e.Value, e.FieldName)
}
