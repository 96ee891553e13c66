package selector

import (
	"fmt"
	"reflect"
	"strings"
)

// FieldOperation is a single comparison against a column, for use with SelectionBuilder.WhereOp.
// For OperatorIn and OperatorNotIn, ValueRaw holds a slice or array of any element type.
type FieldOperation struct {
	Operator Operator

	FieldName string
	ValueRaw  any
}

// Selection renders the comparison with placeholders, along with the values bound to them.
func (f FieldOperation) Selection() (string, []any, error) {
	if !f.Operator.isList() {
		return fmt.Sprintf(`"%s" %s ?`, f.FieldName, f.Operator), []any{f.ValueRaw}, nil
	}

	args, err := f.listValues()
	if err != nil {
		return "", nil, err
	}

	// (?, ?, ?)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")
	return fmt.Sprintf(`"%s" %s (%s)`, f.FieldName, f.Operator, placeholders), args, nil
}

// listValues flattens ValueRaw so that []int, [3]string and []any all bind one value per placeholder.
func (f FieldOperation) listValues() ([]any, error) {
	if values, ok := f.ValueRaw.([]any); ok {
		if len(values) == 0 {
			return nil, ErrEmptyInList
		}
		return values, nil
	}

	v := reflect.ValueOf(f.ValueRaw)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, ErrInvalidInValue{FieldName: f.FieldName, Value: f.ValueRaw}
	}
	if v.Len() == 0 {
		return nil, ErrEmptyInList
	}

	values := make([]any, v.Len())
	for i := range v.Len() {
		values[i] = v.Index(i).Interface()
	}
	return values, nil
}

type Operator uint8

const (
	OperatorEqual Operator = iota
	OperatorNotEqual
	OperatorGreaterThan
	OperatorLessThan
	OperatorGreaterThanOrEqual
	OperatorLessThanOrEqual
	OperatorIn
	OperatorNotIn
)

var operatorSymbols = [...]string{
	OperatorEqual:              "=",
	OperatorNotEqual:           "!=",
	OperatorGreaterThan:        ">",
	OperatorLessThan:           "<",
	OperatorGreaterThanOrEqual: ">=",
	OperatorLessThanOrEqual:    "<=",
	OperatorIn:                 "IN",
	OperatorNotIn:              "NOT IN",
}

func (o Operator) String() string {
	if int(o) >= len(operatorSymbols) {
		return ""
	}
	return operatorSymbols[o]
}

func (o Operator) isList() bool {
	return o == OperatorIn || o == OperatorNotIn
}

func Equal(field string, v any) FieldOperation {
	return FieldOperation{OperatorEqual, field, v}
}

func NotEqual(field string, v any) FieldOperation {
	return FieldOperation{OperatorNotEqual, field, v}
}

func GreaterThan(field string, v any) FieldOperation {
	return FieldOperation{OperatorGreaterThan, field, v}
}

func LessThan(field string, v any) FieldOperation {
	return FieldOperation{OperatorLessThan, field, v}
}

func GreaterThanOrEqual(field string, v any) FieldOperation {
	return FieldOperation{OperatorGreaterThanOrEqual, field, v}
}

func LessThanOrEqual(field string, v any) FieldOperation {
	return FieldOperation{OperatorLessThanOrEqual, field, v}
}

// IsTrue and IsFalse compare against a boolean, which SQLite stores as 1 or 0.
func IsTrue(field string) FieldOperation {
	return Equal(field, true)
}

func IsFalse(field string) FieldOperation {
	return Equal(field, false)
}

// In matches rows whose field is one of values. At least one value is required.
func In(field string, values ...any) FieldOperation {
	return FieldOperation{OperatorIn, field, values}
}

// NotIn matches rows whose field is none of values. At least one value is required.
func NotIn(field string, values ...any) FieldOperation {
	return FieldOperation{OperatorNotIn, field, values}
}
