package selector

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// SelectionBuilder builds the WHERE clause of a query, update or delete, and hands it to a Driver.
// Each appended selection is surrounded with parentheses and combined using AND.
// Example:
//
//	rows, err := NewSelection().
//		Table("items").
//		Where("price > ?", 10).
//		WhereOp(Equal("name", "widget")).
//		QueryContext(ctx, db, []string{"id", "name"}, "price DESC")
//	if err != nil {
//		return err
//	}
//
// Methods return an updated copy and never modify the receiver.
// A SelectionBuilder is not safe for concurrent use.
type SelectionBuilder struct {
	table string

	projectionMap map[string]string

	selection     string
	selectionArgs []any

	err error
}

// NewSelection will construct a new, empty SelectionBuilder.
func NewSelection() SelectionBuilder {
	return SelectionBuilder{}
}

// Table sets the table the terminal calls operate on. The name is not validated.
func (b SelectionBuilder) Table(table string) SelectionBuilder {
	b.table = table
	return b
}

// Where appends selection, with the arguments bound to its placeholders.
// An empty selection is ignored, unless arguments were given for it, which is an ErrSelectionRequired.
func (b SelectionBuilder) Where(selection string, args ...any) SelectionBuilder {
	if b.err != nil {
		return b
	}

	if strings.TrimSpace(selection) == "" {
		if len(args) > 0 {
			b.err = errors.Wrapf(ErrSelectionRequired, "got %d arguments", len(args))
		}
		return b
	}

	if b.selection != "" {
		b.selection += " AND "
	}
	b.selection += "(" + selection + ")"

	if len(args) > 0 {
		// Clip so the receiver's backing array is never shared with the copy.
		b.selectionArgs = append(slices.Clip(b.selectionArgs), args...)
	}

	return b
}

// WhereOp appends a FieldOperation, see SelectionBuilder.Where.
// An IN or NOT IN without values, or with a value that is not a list, is recorded as the builder's error.
func (b SelectionBuilder) WhereOp(op FieldOperation) SelectionBuilder {
	if b.err != nil {
		return b
	}

	selection, args, err := op.Selection()
	if err != nil {
		b.err = errors.Wrapf(err, "where %s", op.Operator)
		return b
	}
	return b.Where(selection, args...)
}

// MapToTable makes queries request column as table.column, for example when selecting from a join.
func (b SelectionBuilder) MapToTable(column, table string) SelectionBuilder {
	return b.withProjection(column, table+"."+column)
}

// Map makes queries request fromColumn as the expression toClause, aliased back to fromColumn.
func (b SelectionBuilder) Map(fromColumn, toClause string) SelectionBuilder {
	return b.withProjection(fromColumn, toClause+" AS "+fromColumn)
}

func (b SelectionBuilder) withProjection(column, target string) SelectionBuilder {
	projectionMap := maps.Clone(b.projectionMap)
	if projectionMap == nil {
		projectionMap = make(map[string]string)
	}
	projectionMap[column] = target
	b.projectionMap = projectionMap
	return b
}

// Selection returns the selection built so far. The boolean is false when nothing was ever appended,
// which means no filter, as opposed to an empty one.
func (b SelectionBuilder) Selection() (string, bool) {
	if b.selection == "" {
		return "", false
	}
	return b.selection, true
}

// SelectionArgs returns the arguments for the placeholders of Selection, in order.
// Nil is returned when no arguments were appended.
func (b SelectionBuilder) SelectionArgs() []any {
	if len(b.selectionArgs) == 0 {
		return nil
	}
	return slices.Clone(b.selectionArgs)
}

// Err returns the first error recorded while building, if any.
func (b SelectionBuilder) Err() error {
	return b.err
}

func (b SelectionBuilder) String() string {
	selection, _ := b.Selection()
	return fmt.Sprintf(
		"SelectionBuilder[table=%s, selection=%s, selectionArgs=%v]",
		b.table, selection, b.SelectionArgs(),
	)
}

// Query wraps SelectionBuilder.QueryContext.
func (b SelectionBuilder) Query(db Driver, columns []string, orderBy string) (*sql.Rows, error) {
	return b.QueryContext(context.Background(), db, columns, orderBy)
}

// QueryContext will query the table using the current selection as the WHERE clause.
// Nil columns select every column. The caller must close the returned rows.
func (b SelectionBuilder) QueryContext(ctx context.Context, db Driver, columns []string, orderBy string) (*sql.Rows, error) {
	return b.query(ctx, db, columns, "", orderBy)
}

func (b SelectionBuilder) query(ctx context.Context, db Driver, columns []string, groupBy, orderBy string) (*sql.Rows, error) {
	if err := b.assertTable(); err != nil {
		return nil, err
	}

	selection, _ := b.Selection()
	return db.Query(ctx, QueryParams{
		Table:         b.table,
		Columns:       b.mapColumns(columns),
		Selection:     selection,
		SelectionArgs: b.SelectionArgs(),
		GroupBy:       groupBy,
		OrderBy:       orderBy,
	})
}

// Update wraps SelectionBuilder.UpdateContext.
func (b SelectionBuilder) Update(db Driver, values Values) (int64, error) {
	return b.UpdateContext(context.Background(), db, values)
}

// UpdateContext will update the table using the current selection as the WHERE clause.
// Without a selection every row is updated. The number of affected rows is returned.
func (b SelectionBuilder) UpdateContext(ctx context.Context, db Driver, values Values) (int64, error) {
	if err := b.assertTable(); err != nil {
		return 0, err
	}

	selection, _ := b.Selection()
	return db.Update(ctx, b.table, values, selection, b.SelectionArgs())
}

// Delete wraps SelectionBuilder.DeleteContext.
func (b SelectionBuilder) Delete(db Driver) (int64, error) {
	return b.DeleteContext(context.Background(), db)
}

// DeleteContext will delete from the table using the current selection as the WHERE clause.
// Without a selection every row is deleted. The number of affected rows is returned.
func (b SelectionBuilder) DeleteContext(ctx context.Context, db Driver) (int64, error) {
	if err := b.assertTable(); err != nil {
		return 0, err
	}

	selection, _ := b.Selection()
	return db.Delete(ctx, b.table, selection, b.SelectionArgs())
}

func (b SelectionBuilder) assertTable() error {
	if b.err != nil {
		return b.err
	}
	if b.table == "" {
		return errors.WithStack(ErrTableNotSpecified)
	}
	return nil
}

// mapColumns applies the projection map to a copy of columns.
func (b SelectionBuilder) mapColumns(columns []string) []string {
	if b.projectionMap == nil || columns == nil {
		return columns
	}

	mapped := make([]string, len(columns))
	for i, column := range columns {
		if target, ok := b.projectionMap[column]; ok {
			mapped[i] = target
			continue
		}
		mapped[i] = column
	}
	return mapped
}
